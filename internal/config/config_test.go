package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	s := Default()

	if !s.Enabled {
		t.Error("collection disabled by default")
	}
	if s.Capacity != 2000 {
		t.Errorf("Capacity = %d, want 2000", s.Capacity)
	}
	if s.ChannelDepth != 256 {
		t.Errorf("ChannelDepth = %d, want 256", s.ChannelDepth)
	}
	if s.SampleInterval.Std() != 5*time.Second {
		t.Errorf("SampleInterval = %s, want 5s", s.SampleInterval.Std())
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if s.Capacity != Default().Capacity {
		t.Errorf("Capacity = %d, want default %d", s.Capacity, Default().Capacity)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if s.Capacity != Default().Capacity {
		t.Errorf("Capacity = %d, want default %d", s.Capacity, Default().Capacity)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appdiag.toml")
	body := `
enabled = false
capacity = 500
sample_interval = "2s"
sensitive_patterns = ["secret-\\d+"]
export_dir = "/tmp/reports"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Enabled {
		t.Error("enabled = true, want false")
	}
	if s.Capacity != 500 {
		t.Errorf("Capacity = %d, want 500", s.Capacity)
	}
	if s.ChannelDepth != 256 {
		t.Errorf("ChannelDepth = %d, want default 256 (not set in file)", s.ChannelDepth)
	}
	if s.SampleInterval.Std() != 2*time.Second {
		t.Errorf("SampleInterval = %s, want 2s", s.SampleInterval.Std())
	}
	if len(s.SensitivePatterns) != 1 || s.SensitivePatterns[0] != `secret-\d+` {
		t.Errorf("SensitivePatterns = %v", s.SensitivePatterns)
	}
	if s.ExportDir != "/tmp/reports" {
		t.Errorf("ExportDir = %q", s.ExportDir)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("capacity = ["), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte(`sample_interval = "fast"`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unparseable duration")
	}
}
