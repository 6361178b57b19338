package filesystem

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestNewRealFileSystem(t *testing.T) {
	if NewRealFileSystem() == nil {
		t.Error("NewRealFileSystem() should not return nil")
	}
}

func TestRealFileSystem_Integration(t *testing.T) {
	fs := NewRealFileSystem()
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "west.yml")
	if err := fs.WriteFile(testFile, []byte("manifest:"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	content, err := fs.ReadFile(testFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(content, []byte("manifest:")) {
		t.Errorf("ReadFile() = %q", content)
	}

	if !fs.Exists(testFile) {
		t.Error("Exists() should return true for written file")
	}
	if fs.Exists(filepath.Join(tmpDir, "missing")) {
		t.Error("Exists() should return false for missing path")
	}

	nested := filepath.Join(tmpDir, "a", "b")
	if err := fs.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if !fs.IsDir(nested) {
		t.Error("IsDir() should return true for created directory")
	}
	if !fs.IsEmptyDir(nested) {
		t.Error("IsEmptyDir() should return true for empty directory")
	}
	if fs.IsEmptyDir(tmpDir) {
		t.Error("IsEmptyDir() should return false for populated directory")
	}
	if !fs.IsEmptyDir(filepath.Join(tmpDir, "missing")) {
		t.Error("IsEmptyDir() should treat a missing path as empty")
	}

	info, err := fs.GetFileInfo(testFile)
	if err != nil {
		t.Fatalf("GetFileInfo() error = %v", err)
	}
	if info.Size != int64(len("manifest:")) {
		t.Errorf("Size = %d", info.Size)
	}
	if info.ModTime.IsZero() {
		t.Error("ModTime should be set")
	}

	dest := filepath.Join(tmpDir, "copy.yml")
	if err := fs.CopyFile(testFile, dest); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}
	copied, err := fs.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile() after copy error = %v", err)
	}
	if !bytes.Equal(copied, content) {
		t.Error("CopyFile() should preserve content")
	}

	hash1, err := fs.FileHash(testFile)
	if err != nil {
		t.Fatalf("FileHash() error = %v", err)
	}
	hash2, err := fs.FileHash(dest)
	if err != nil {
		t.Fatalf("FileHash() error = %v", err)
	}
	if hash1 != hash2 {
		t.Error("identical content should hash identically")
	}

	if err := fs.Remove(dest); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if fs.Exists(dest) {
		t.Error("Remove() should delete the file")
	}
}
