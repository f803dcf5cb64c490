package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/objloader/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "objloader"
	app.Usage = "parse wavefront obj/mtl files"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "objloader.toml",
			Usage: "load settings from a TOML file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "info",
			Usage: "display shape and material statistics",
			Description: `
Parse one or more wavefront obj files together with any material libraries
they reference and display per-shape geometry counts and bounds as well as the
properties of the materials in use.`,
			ArgsUsage: "scene_file1.obj scene_file2.obj ...",
			Action:    cmd.ShowInfo,
		},
		{
			Name:  "dump",
			Usage: "dump parsed shapes and materials as YAML",
			Description: `
Parse a wavefront obj file and write the shapes it defines to stdout or to a
file using YAML. Face indices are local to each shape and zero-based.`,
			ArgsUsage: "scene_file.obj",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "write output to this file instead of stdout",
				},
			},
			Action: cmd.DumpShapes,
		},
		{
			Name:  "watch",
			Usage: "re-parse an obj file whenever it changes",
			Description: `
Parse a wavefront obj file and keep watching it as well as any material
libraries in the same folder. Each time a change is detected the file is
parsed again and its statistics are displayed.`,
			ArgsUsage: "scene_file.obj",
			Action:    cmd.WatchShapes,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
