package asset

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client used for fetching remote resources.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// The Resource class wraps a streamable file or remote Resource.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns true if the Resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Create a new Resource data stream. If relTo is specified and pathToResource
// does not define a scheme, then the path to the new Resource will be generated
// by concatenating the base path of relTo and pathToResource.
//
// This function can handle http/https URLs by delegating to the net/http package.
// The caller must make sure to close the returned Resource to prevent mem leaks.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	resURL, err := parseLocation(pathToResource)
	if err != nil {
		return nil, err
	}

	// If this is a relative url, resolve it against the parent's directory
	if resURL.Scheme == "" && relTo != nil && !filepath.IsAbs(resURL.Path) {
		resURL, err = parseLocation(JoinPath(Dir(relTo.Path()), resURL.Path))
		if err != nil {
			return nil, err
		}
	}

	var reader io.ReadCloser
	switch resURL.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(filepath.FromSlash(resURL.Path)))
		if err != nil {
			return nil, err
		}
	case "http", "https":
		resp, err := httpClient.Get(resURL.String())
		if err != nil {
			return nil, fmt.Errorf("resource: could not fetch '%s': %s", resURL.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("resource: could not fetch '%s': status %d", resURL.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", resURL.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        resURL,
	}, nil
}

// Create a resource from a reader.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	resURL, _ := url.Parse(name)
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        resURL,
	}
}

// Returns true if the location uses a URL scheme.
func IsRemote(location string) bool {
	resURL, err := parseLocation(location)
	return err == nil && resURL.Scheme != ""
}

// Parse a local path or URL. Backslashes are treated as path separators and
// single-letter schemes are interpreted as windows drive letters.
func parseLocation(location string) (*url.URL, error) {
	location = strings.Replace(location, `\`, `/`, -1)
	resURL, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("resource: invalid location '%s': %s", location, err)
	}

	if len(resURL.Scheme) == 1 {
		return &url.URL{Path: location}, nil
	}

	return resURL, nil
}
