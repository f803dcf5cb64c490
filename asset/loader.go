package asset

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// The TextLoader interface is implemented by collaborators that fetch the
// contents of files referenced by other files (e.g. material libraries).
type TextLoader interface {
	// Load the full contents of the file at fullPath as text.
	LoadText(fullPath string) (string, error)
}

// The TextLoaderFunc type is an adapter for using plain functions as TextLoaders.
type TextLoaderFunc func(fullPath string) (string, error)

// LoadText calls f(fullPath).
func (f TextLoaderFunc) LoadText(fullPath string) (string, error) {
	return f(fullPath)
}

// FileLoader loads text from local files and, if enabled, from http/https URLs.
// Content is decoded as UTF-8 unless a UTF-16 byte order mark is present; a
// UTF-8 byte order mark is stripped.
type FileLoader struct {
	// Permit fetching remote resources.
	AllowRemote bool
}

// Create a new file loader.
func NewFileLoader(allowRemote bool) *FileLoader {
	return &FileLoader{AllowRemote: allowRemote}
}

// LoadText reads and decodes the resource at fullPath.
func (l *FileLoader) LoadText(fullPath string) (string, error) {
	if !l.AllowRemote && IsRemote(fullPath) {
		return "", fmt.Errorf("loader: remote resource '%s' not allowed", fullPath)
	}

	res, err := NewResource(fullPath, nil)
	if err != nil {
		return "", err
	}
	defer res.Close()

	return decodeText(res)
}

// Read all data from r converting it to a UTF-8 string.
func decodeText(r io.Reader) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return "", fmt.Errorf("loader: could not decode text: %s", err)
	}
	return string(data), nil
}
