package card

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Source identifies where a card document originated so the loader can read
// files, fs.FS entries, or URLs.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type fileSource struct{ path string }

func (s fileSource) Kind() SourceKind { return SourceKindFile }
func (s fileSource) Location() string { return s.path }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct{ name string }

func (s fsSource) Kind() SourceKind { return SourceKindFS }
func (s fsSource) Location() string { return s.name }

// SourceFromFS returns a Source naming an entry inside the loader's fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct{ raw string }

func (s urlSource) Kind() SourceKind { return SourceKindURL }
func (s urlSource) Location() string { return s.raw }

// SourceFromURL validates raw and returns a URL Source.
func SourceFromURL(raw string) (Source, error) {
	parsed, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("card: invalid url source %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("card: unsupported url scheme %q", parsed.Scheme)
	}
	return urlSource{raw: raw}, nil
}
