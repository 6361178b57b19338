// Package mocks provides test doubles for testing.
package mocks

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dawret/framework-sdk-nrf/internal/ports"
)

// FileSystem is a thread-safe test double for ports.FileSystem. Every
// write advances an internal clock by one tick so modification-time
// comparisons behave like a real filesystem without sleeping in tests.
type FileSystem struct {
	mu       sync.RWMutex
	files    map[string][]byte
	modTimes map[string]time.Time
	dirs     map[string]bool
	clock    time.Time
}

// NewFileSystem creates a new FileSystem mock.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files:    make(map[string][]byte),
		modTimes: make(map[string]time.Time),
		dirs:     make(map[string]bool),
		clock:    time.Unix(1_000_000, 0),
	}
}

// tick advances the clock and returns the new time. Callers must hold mu.
func (fs *FileSystem) tick() time.Time {
	fs.clock = fs.clock.Add(time.Second)
	return fs.clock
}

// AddFile adds a file to the mock filesystem at the next clock tick.
func (fs *FileSystem) AddFile(path string, content string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[path] = []byte(content)
	fs.modTimes[path] = fs.tick()
}

// AddDir adds a directory to the mock filesystem.
func (fs *FileSystem) AddDir(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.dirs[path] = true
	fs.modTimes[path] = fs.tick()
}

// SetModTime pins a path's modification time directly.
func (fs *FileSystem) SetModTime(path string, t time.Time) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.modTimes[path] = t
}

// ModTime returns a path's recorded modification time.
func (fs *FileSystem) ModTime(path string) time.Time {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.modTimes[path]
}

// ReadFile reads a file from the mock filesystem.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if content, ok := fs.files[path]; ok {
		return content, nil
	}
	return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
}

// WriteFile writes a file to the mock filesystem, bumping its mtime.
func (fs *FileSystem) WriteFile(path string, data []byte, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[path] = data
	fs.modTimes[path] = fs.tick()
	return nil
}

// Exists checks if a path exists in the mock filesystem.
func (fs *FileSystem) Exists(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, fileExists := fs.files[path]
	_, dirExists := fs.dirs[path]
	return fileExists || dirExists
}

// Remove removes a path from the mock filesystem.
func (fs *FileSystem) Remove(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.files, path)
	delete(fs.dirs, path)
	delete(fs.modTimes, path)
	return nil
}

// MkdirAll creates a directory in the mock filesystem.
func (fs *FileSystem) MkdirAll(path string, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.dirs[path] = true
	return nil
}

// FileHash returns a SHA256 hash of a file's contents.
func (fs *FileSystem) FileHash(path string) (string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	content, ok := fs.files[path]
	if !ok {
		return "", fmt.Errorf("file not found: %s", path)
	}
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:]), nil
}

// IsDir checks if a path is a directory in the mock filesystem.
func (fs *FileSystem) IsDir(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.dirs[path]
}

// IsEmptyDir checks if a directory has no files under it. A missing path
// counts as empty.
func (fs *FileSystem) IsEmptyDir(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	prefix := strings.TrimSuffix(path, "/") + "/"
	for file := range fs.files {
		if strings.HasPrefix(file, prefix) {
			return false
		}
	}
	return true
}

// CopyFile copies a file within the mock filesystem.
func (fs *FileSystem) CopyFile(src, dest string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	content, ok := fs.files[src]
	if !ok {
		return fmt.Errorf("file not found: %s", src)
	}
	fs.files[dest] = append([]byte(nil), content...)
	fs.modTimes[dest] = fs.tick()
	return nil
}

// GetFileInfo returns metadata about a path.
func (fs *FileSystem) GetFileInfo(path string) (ports.FileInfo, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if content, ok := fs.files[path]; ok {
		return ports.FileInfo{
			Size:    int64(len(content)),
			Mode:    0o644,
			ModTime: fs.modTimes[path],
		}, nil
	}
	if fs.dirs[path] {
		return ports.FileInfo{
			Mode:    os.ModeDir | 0o755,
			ModTime: fs.modTimes[path],
			IsDir:   true,
		}, nil
	}
	return ports.FileInfo{}, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
}

// Files returns the paths of all files, for assertions.
func (fs *FileSystem) Files() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	paths := make([]string, 0, len(fs.files))
	for p := range fs.files {
		paths = append(paths, p)
	}
	return paths
}

// Ensure FileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*FileSystem)(nil)
