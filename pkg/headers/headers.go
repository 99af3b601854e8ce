// Package headers resolves import names to C++ header text.
//
// An import of "io" reads io.hpp from the header directory. Lookups try an
// on-disk directory first, when one is configured and exists, and fall back
// to the library embedded in the binary.
package headers

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/zurustar/intc/pkg/fileutil"
)

// Extension is appended to an import name to form the header file name.
const Extension = ".hpp"

// DefaultDir is the on-disk header directory, relative to the working
// directory.
const DefaultDir = "cppstd"

//go:embed cppstd/*.hpp
var embedded embed.FS

// Embedded returns the built-in header library.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, DefaultDir)
	if err != nil {
		// cppstd is embedded above, so Sub cannot fail.
		panic(err)
	}
	return sub
}

// Resolver looks import names up in an ordered list of file systems.
type Resolver struct {
	sources []fs.FS
}

// NewResolver creates a Resolver over the given file systems, searched in
// order.
func NewResolver(sources ...fs.FS) *Resolver {
	return &Resolver{sources: sources}
}

// NewDefaultResolver searches dir on disk, if it exists, and then the
// embedded library. An empty dir means DefaultDir.
func NewDefaultResolver(dir string) *Resolver {
	if dir == "" {
		dir = DefaultDir
	}
	var sources []fs.FS
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		sources = append(sources, os.DirFS(dir))
	}
	sources = append(sources, Embedded())
	return NewResolver(sources...)
}

// Resolve returns the contents of name.hpp from the first source that has it.
func (r *Resolver) Resolve(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid header name %q", name)
	}

	filename := name + Extension
	for _, src := range r.sources {
		data, err := fileutil.ReadFile(src, filename)
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to read %s: %w", filename, err)
		}
	}

	return "", fmt.Errorf("header %s not found (available: %s): %w",
		filename, strings.Join(r.Available(), ", "), fs.ErrNotExist)
}

// Available lists the import names every source can provide, without
// duplicates, in source order.
func (r *Resolver) Available() []string {
	seen := make(map[string]bool)
	var names []string
	for _, src := range r.sources {
		files, err := fileutil.ListFiles(src, ".", Extension)
		if err != nil {
			continue
		}
		for _, f := range files {
			name := strings.ToLower(f[:len(f)-len(Extension)])
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
