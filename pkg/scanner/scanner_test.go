package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func createFiles(t *testing.T, root string, files []string) {
	t.Helper()
	for _, file := range files {
		fullPath := filepath.Join(root, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte("test content"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
}

func TestFileWalker_Walk_TopLevelOnly(t *testing.T) {
	tempDir := t.TempDir()

	createFiles(t, tempDir, []string{
		"file1.txt",
		"file2.txt",
		".hidden_file",
		"subdir/file3.txt",
		"Pictures/photo.png",
	})

	walker := NewFileWalker(afero.NewOsFs())
	visited := []string{}

	err := walker.Walk(tempDir, func(path string, info os.FileInfo) error {
		rel, _ := filepath.Rel(tempDir, path)
		visited = append(visited, rel)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []string{".hidden_file", "file1.txt", "file2.txt"}
	if len(visited) != len(want) {
		t.Fatalf("Expected %v, got %v", want, visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %s, want %s", i, visited[i], want[i])
		}
	}
}

func TestFileWalker_Walk_SkipsSymlinks(t *testing.T) {
	tempDir := t.TempDir()

	filePath := filepath.Join(tempDir, "file.txt")
	if err := os.WriteFile(filePath, []byte("test content"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	linkPath := filepath.Join(tempDir, "link.txt")
	if err := os.Symlink(filePath, linkPath); err != nil {
		t.Skipf("Skipping symlink test: %v", err)
	}

	files, err := NewFileWalker(afero.NewOsFs()).Files(tempDir)
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}

	if len(files) != 1 || files[0] != filePath {
		t.Errorf("Expected only the regular file, got %v", files)
	}
}

func TestFileWalker_Walk_NonExistentDir(t *testing.T) {
	walker := NewFileWalker(afero.NewMemMapFs())
	err := walker.Walk("/non/existent/directory", func(string, os.FileInfo) error { return nil })
	if err == nil {
		t.Error("Expected error for non-existent directory")
	}
}

func TestFileWalker_Walk_CallbackError(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, name := range []string{"/d/a", "/d/b"} {
		if err := afero.WriteFile(fs, name, []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	stop := fmt.Errorf("stop")
	calls := 0
	err := NewFileWalker(fs).Walk("/d", func(string, os.FileInfo) error {
		calls++
		return stop
	})
	if err != stop {
		t.Errorf("Expected callback error to propagate, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected walk to stop after first callback, got %d calls", calls)
	}
}

func TestFileWalker_Subdirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll("/d/Music", 0755)
	_ = fs.MkdirAll("/d/Videos", 0755)
	_ = afero.WriteFile(fs, "/d/file.txt", []byte("x"), 0644)

	dirs, err := NewFileWalker(fs).Subdirs("/d")
	if err != nil {
		t.Fatalf("Subdirs() error = %v", err)
	}
	if len(dirs) != 2 || dirs[0] != "Music" || dirs[1] != "Videos" {
		t.Errorf("Expected [Music Videos], got %v", dirs)
	}
}
