package pathutil

import (
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantDB    string
		wantCache string
	}{
		{
			name:      "defaults under root",
			config:    Config{DataRoot: "/data"},
			wantDB:    filepath.Join("/data", "history.db"),
			wantCache: filepath.Join("/data", "cache.db"),
		},
		{
			name:      "explicit paths win",
			config:    Config{DataRoot: "/data", DatabasePath: "/var/h.db", CachePath: "/var/c.db"},
			wantDB:    "/var/h.db",
			wantCache: "/var/c.db",
		},
		{
			name:      "empty root",
			config:    Config{},
			wantDB:    "history.db",
			wantCache: "cache.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.config)
			if got := p.GetDatabasePath(); got != tt.wantDB {
				t.Errorf("GetDatabasePath() = %q, expected %q", got, tt.wantDB)
			}
			if got := p.GetCachePath(); got != tt.wantCache {
				t.Errorf("GetCachePath() = %q, expected %q", got, tt.wantCache)
			}
		})
	}
}

func TestEnsureParentDir(t *testing.T) {
	root := t.TempDir()
	p := New(Config{DataRoot: root})
	if got := p.GetDataRoot(); got != root {
		t.Errorf("GetDataRoot() = %q, expected %q", got, root)
	}

	file := filepath.Join(root, "nested", "deeper", "history.db")
	if err := p.EnsureParentDir(file); err != nil {
		t.Fatalf("EnsureParentDir() error = %v", err)
	}
	if !FileExists(filepath.Dir(file)) {
		t.Errorf("expected %s to exist", filepath.Dir(file))
	}
	if FileExists(file) {
		t.Errorf("expected %s not to exist", file)
	}
}
