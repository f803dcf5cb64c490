package cmd

import (
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli"
)

// Parse an obj file and re-parse it whenever it or a material library next
// to it changes. Runs until interrupted.
func WatchShapes(ctx *cli.Context) error {
	cfg, err := setupLogging(ctx)
	if err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("watch expects exactly one obj file")
	}

	objFile, err := filepath.Abs(ctx.Args().First())
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace files instead of writing them in place so we
	// need to watch the parent folder.
	if err = watcher.Add(filepath.Dir(objFile)); err != nil {
		return err
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	reload := func() {
		shapes, err := readShapes(objFile, cfg)
		if err != nil {
			logger.Errorf("%s: %v", objFile, err)
			return
		}
		logger.Noticef("%s: shape information:\n%s", objFile, shapeStats(shapes))
	}

	reload()
	logger.Noticef("watching %s for changes; press ctrl+c to exit", objFile)
	for {
		select {
		case e, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if triggersReload(e, objFile) {
				logger.Infof("detected change to %s", e.Name)
				reload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warningf("watcher error: %v", err)
		case <-interrupt:
			return nil
		}
	}
}

// Returns true if e modifies the watched obj file or a material library in
// the same folder.
func triggersReload(e fsnotify.Event, objFile string) bool {
	if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return false
	}

	name := filepath.Clean(e.Name)
	if name == filepath.Clean(objFile) {
		return true
	}
	return filepath.Dir(name) == filepath.Dir(objFile) && strings.EqualFold(filepath.Ext(name), ".mtl")
}
