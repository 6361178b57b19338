package mocks

import (
	"testing"
)

func TestFileSystem_WriteBumpsModTime(t *testing.T) {
	fs := NewFileSystem()

	fs.AddFile("/a", "1")
	first := fs.ModTime("/a")

	if err := fs.WriteFile("/a", []byte("2"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if !fs.ModTime("/a").After(first) {
		t.Error("WriteFile should advance the mock clock")
	}
}

func TestFileSystem_LaterFilesAreNewer(t *testing.T) {
	fs := NewFileSystem()

	fs.AddFile("/older", "1")
	fs.AddFile("/newer", "2")

	if !fs.ModTime("/newer").After(fs.ModTime("/older")) {
		t.Error("files added later must have later mod times")
	}
}

func TestFileSystem_GetFileInfoMissingPath(t *testing.T) {
	fs := NewFileSystem()

	if _, err := fs.GetFileInfo("/missing"); err == nil {
		t.Error("GetFileInfo should fail for a missing path")
	}
}

func TestFileSystem_IsEmptyDir(t *testing.T) {
	fs := NewFileSystem()
	fs.AddDir("/src")

	if !fs.IsEmptyDir("/src") {
		t.Error("directory without files should be empty")
	}

	fs.AddFile("/src/main.c", "int main(void){}")
	if fs.IsEmptyDir("/src") {
		t.Error("directory with a file should not be empty")
	}
}
