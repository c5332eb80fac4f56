package utils

import (
	"path/filepath"
	"testing"
)

func TestGetAbsolutePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		baseDir string
		want    string
	}{
		{"dotenv next to config", ".env", "/etc/updater", "/etc/updater/.env"},
		{"absolute env file is kept", "/run/secrets/updater.env", "/etc/updater", "/run/secrets/updater.env"},
		{"parent directory", "../secrets/updater.env", "/etc/updater", "/etc/secrets/updater.env"},
		{"unclean segments", "./conf//updater.env", "/etc//updater/", "/etc/updater/conf/updater.env"},
		{"empty base stays relative", ".env", "", ".env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetAbsolutePath(tt.path, tt.baseDir); got != tt.want {
				t.Errorf("GetAbsolutePath(%q, %q) = %q, want %q", tt.path, tt.baseDir, got, tt.want)
			}
		})
	}
}

func TestWorkingDir(t *testing.T) {
	wd := WorkingDir()
	if wd == "" {
		t.Fatal("Expected non-empty working directory")
	}

	if got := GetAbsolutePath(".env", wd); got != filepath.Join(wd, ".env") {
		t.Errorf("Expected %s, got %s", filepath.Join(wd, ".env"), got)
	}
}
