package fs

import (
	"os"
	"path/filepath"
	"testing"
)

// createTestFile creates a test file with given content
func createTestFile(t *testing.T, path, content string) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func TestCreateExclusive(t *testing.T) {
	dir := t.TempDir()
	testPath := filepath.Join(dir, "testfile.txt")

	// First create should succeed
	f, err := CreateExclusive(testPath, 0644)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	f.Close()

	// Second create should fail (file already exists)
	_, err = CreateExclusive(testPath, 0644)
	if err == nil {
		t.Fatal("Expected error when creating existing file, got nil")
	}
}

func TestMove(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "source.txt")
	dstPath := filepath.Join(dir, "destination.txt")
	content := "test content"

	createTestFile(t, srcPath, content)

	if err := Move(srcPath, dstPath, MoveOptions{}); err != nil {
		t.Fatalf("Failed to move file: %v", err)
	}

	if Exists(srcPath) {
		t.Fatal("Source file should not exist after move")
	}

	dstContent, err := os.ReadFile(dstPath)
	if err != nil {
		t.Fatalf("Failed to read destination file: %v", err)
	}
	if string(dstContent) != content {
		t.Fatalf("Destination file content mismatch. Expected %q, got %q", content, dstContent)
	}
}

func TestMoveDirectory(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	if err := os.MkdirAll(filepath.Join(srcDir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	createTestFile(t, filepath.Join(srcDir, "nested", "file.txt"), "nested")

	dstDir := filepath.Join(dir, "dst")
	if err := Move(srcDir, dstDir, MoveOptions{AllowCrossDev: true}); err != nil {
		t.Fatalf("Failed to move directory: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dstDir, "nested", "file.txt"))
	if err != nil {
		t.Fatalf("Failed to read moved file: %v", err)
	}
	if string(got) != "nested" {
		t.Fatalf("content mismatch: %q", got)
	}
}

func TestMoveDestinationExists(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "source.txt")
	dstPath := filepath.Join(dir, "destination.txt")
	createTestFile(t, srcPath, "src")
	createTestFile(t, dstPath, "dst")

	err := Move(srcPath, dstPath, MoveOptions{})
	if !IsDestinationExists(err) {
		t.Fatalf("expected ErrDestinationExists, got %v", err)
	}
	if !Exists(srcPath) {
		t.Fatal("source must be left in place")
	}
}

func TestMoveSourceNotFound(t *testing.T) {
	dir := t.TempDir()
	err := Move(filepath.Join(dir, "missing"), filepath.Join(dir, "dst"), MoveOptions{})
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if got := err.(*MoveError); got.Op != "stat" {
		t.Fatalf("unexpected op %q", got.Op)
	}
}

func TestCopyAndDelete(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "source.txt")
	dstPath := filepath.Join(dir, "destination.txt")
	createTestFile(t, srcPath, "copied")

	if err := copyAndDelete(srcPath, dstPath); err != nil {
		t.Fatalf("copyAndDelete failed: %v", err)
	}
	if Exists(srcPath) {
		t.Fatal("source should be removed")
	}
	got, err := os.ReadFile(dstPath)
	if err != nil || string(got) != "copied" {
		t.Fatalf("unexpected destination content %q (%v)", got, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary copy left behind: %v", entries)
	}
}

func TestIsUnsafePath(t *testing.T) {
	tests := []struct {
		path    string
		unsafe  bool
		wantErr bool
	}{
		{".", true, false},                 // original dot
		{"..", true, false},                // original double dot
		{"./", true, false},                // dot with slash
		{"./.", true, false},               // multiple dots
		{"./../../foo/../..", true, false}, // complex path to root
		{"/", true, false},                 // root
		{"//", true, false},                // double slash
		{"//foo", true, false},             // path with double slash
		{"/foo", false, false},             // normal absolute path
		{"foo", false, false},              // normal relative path
		{"foo/bar", false, false},          // normal nested path
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			unsafe, err := IsUnsafePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("IsUnsafePath() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if unsafe != tt.unsafe {
				t.Errorf("IsUnsafePath() = %v, want %v", unsafe, tt.unsafe)
			}
		})
	}
}

// Benchmark Move operation
func BenchmarkMove(b *testing.B) {
	dir := b.TempDir()
	srcPath := filepath.Join(dir, "benchsrc.txt")
	dstPath := filepath.Join(dir, "benchdst.txt")

	if err := os.WriteFile(srcPath, []byte("benchmark content"), 0644); err != nil {
		b.Fatalf("Failed to create source file: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Move(srcPath, dstPath, MoveOptions{}); err != nil {
			b.Fatalf("Move failed: %v", err)
		}
		srcPath, dstPath = dstPath, srcPath
	}
}
