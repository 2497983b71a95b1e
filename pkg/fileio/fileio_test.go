package fileio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileThenReadFileRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.mid")
	want := []byte{0x4D, 0x54, 0x68, 0x64, 0x00}

	if err := WriteFile(path, want); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("ReadFile() = % X, want % X", got, want)
	}
}

func TestReadFileMissingPath(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "does-not-exist.mid"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !os.IsNotExist(err) {
		t.Errorf("expected os.IsNotExist, got %v", err)
	}
}
