package ports

import (
	"os"
	"time"
)

// FileInfo contains file metadata.
type FileInfo struct {
	Size    int64
	Mode    os.FileMode
	ModTime time.Time
	IsDir   bool
}

// FileSystem provides the file system operations the build bridge needs.
// Modification times matter here: the reconfiguration decision compares
// artifact and cache-marker timestamps, so implementations must report
// them faithfully and callers must avoid rewriting unchanged files.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	Exists(path string) bool
	Remove(path string) error
	MkdirAll(path string, perm os.FileMode) error
	FileHash(path string) (string, error)
	IsDir(path string) bool
	IsEmptyDir(path string) bool
	CopyFile(src, dest string) error
	GetFileInfo(path string) (FileInfo, error)
}
