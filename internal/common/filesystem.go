// Package common provides shared interfaces and utilities used across the
// rootwrap packages.
package common

import (
	"errors"
	"io/fs"
	"os"
)

// Error definitions for static error handling
var (
	ErrEmptyPath = errors.New("path cannot be empty")
)

// FileSystem defines the interface for file system operations performed while
// loading filter definitions. It allows the loader to be tested against a
// fake without touching the real filesystem.
type FileSystem interface {
	// IsDir checks if the path is a directory
	IsDir(path string) (bool, error)

	// ReadDir reads the named directory and returns its entries sorted by name
	ReadDir(path string) ([]fs.DirEntry, error)

	// ReadFile reads the named file and returns its contents
	ReadFile(path string) ([]byte, error)
}

// DefaultFileSystem implements FileSystem using standard os package functions
type DefaultFileSystem struct{}

// NewDefaultFileSystem creates a new DefaultFileSystem
func NewDefaultFileSystem() *DefaultFileSystem {
	return &DefaultFileSystem{}
}

// IsDir checks if the path is a directory
func (f *DefaultFileSystem) IsDir(path string) (bool, error) {
	if path == "" {
		return false, ErrEmptyPath
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// ReadDir reads the named directory and returns its entries sorted by name
func (f *DefaultFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// ReadFile reads the named file and returns its contents
func (f *DefaultFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
