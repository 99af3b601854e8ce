// Package fileutil provides case-insensitive file access over fs.FS, so the
// same lookup works for a directory on disk (os.DirFS) and for embedded files.
package fileutil

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// FindFile searches dir for filename, ignoring case.
// The returned path uses forward slashes and is relative to fsys.
//
// Example:
//
//	p, err := FindFile(os.DirFS("cppstd"), ".", "IO.hpp")
//	// finds "io.hpp", "IO.HPP", "Io.hpp", etc.
func FindFile(fsys fs.FS, dir, filename string) (string, error) {
	// まず直接アクセスを試みる
	direct := path.Join(dir, filename)
	if info, err := fs.Stat(fsys, direct); err == nil && !info.IsDir() {
		return direct, nil
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	// 大文字小文字を無視して検索
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(entry.Name(), filename) {
			return path.Join(dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("file not found: %s (searched in %s): %w", filename, dir, fs.ErrNotExist)
}

// ReadFile reads name from fsys, matching the base name case-insensitively.
func ReadFile(fsys fs.FS, name string) ([]byte, error) {
	name = strings.TrimPrefix(strings.ReplaceAll(name, "\\", "/"), "/")
	actual, err := FindFile(fsys, path.Dir(name), path.Base(name))
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, actual)
}

// ListFiles returns the names of the files in dir whose extension matches
// ext (case-insensitive), sorted.
func ListFiles(fsys fs.FS, dir, ext string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(path.Ext(entry.Name()), ext) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
