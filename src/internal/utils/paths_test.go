package utils

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestGetAbsolutePath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths")
	}

	tests := []struct {
		name    string
		path    string
		baseDir string
		want    string
	}{
		{"already absolute", "/var/lib/blocklist/drop.txt", "/etc/blocklist-sync", "/var/lib/blocklist/drop.txt"},
		{"relative", "lists/drop.txt", "/etc/blocklist-sync", "/etc/blocklist-sync/lists/drop.txt"},
		{"dot", "./drop.txt", "/etc/blocklist-sync", "/etc/blocklist-sync/drop.txt"},
		{"double dot", "../drop.txt", "/etc/blocklist-sync", "/etc/drop.txt"},
		{"empty path", "", "/etc/blocklist-sync", "/etc/blocklist-sync"},
		{"empty base", "drop.txt", "", "drop.txt"},
		{"needs cleaning", "a//b/../c/drop.txt", "/etc//blocklist-sync", "/etc/blocklist-sync/a/c/drop.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetAbsolutePath(tt.path, tt.baseDir); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestGetAbsolutePath_WithFilepathSeparator(t *testing.T) {
	relativePath := filepath.Join("subdir", "file.txt")
	baseDir := filepath.Join("/", "base", "dir")

	result := GetAbsolutePath(relativePath, baseDir)
	expected := filepath.Join("/", "base", "dir", "subdir", "file.txt")

	if result != expected {
		t.Errorf("Expected %s, got %s", expected, result)
	}
}

func TestIsStdout(t *testing.T) {
	if !IsStdout("-") {
		t.Error("Expected \"-\" to mean stdout")
	}
	if IsStdout("/tmp/-") || IsStdout("") {
		t.Error("Expected only \"-\" to mean stdout")
	}
}
