// Package storage defines the data-directory file abstraction.
package storage

import "time"

// FileInfo describes one file in the data directory.
type FileInfo struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for data-directory file operations.
// All paths are relative to the data root.
type Provider interface {
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (tmp file, fsync, rename).
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
	// List returns info for every regular file directly under dir.
	List(dir string) ([]FileInfo, error)
	// Abs resolves path against the data root, rejecting traversal.
	Abs(path string) (string, error)
}
