package asset

import (
	"path"
	"path/filepath"
	"strings"
)

// JoinPath appends name to the base location. Base may be a filesystem
// directory or an http/https URL. Names that are themselves absolute paths
// or URLs are returned unchanged.
func JoinPath(base, name string) string {
	name = strings.Replace(name, `\`, `/`, -1)
	if base == "" || IsRemote(name) || path.IsAbs(name) || filepath.IsAbs(name) {
		return name
	}

	if IsRemote(base) {
		baseURL, err := parseLocation(base)
		if err != nil {
			return name
		}
		baseURL.Path = path.Join("/", baseURL.Path, name)
		return baseURL.String()
	}

	return filepath.Join(base, filepath.FromSlash(name))
}

// Dir returns the directory portion of a filesystem path or URL.
func Dir(location string) string {
	if IsRemote(location) {
		locURL, err := parseLocation(location)
		if err != nil {
			return location
		}
		locURL.Path = path.Dir(locURL.Path)
		locURL.RawQuery = ""
		locURL.Fragment = ""
		return locURL.String()
	}

	return filepath.Dir(location)
}
