package output

import "testing"

func TestNewProgress(t *testing.T) {
	p := NewProgress(true)
	if !p.enabled {
		t.Error("expected enabled")
	}
	if p.verbose {
		t.Error("expected verbose off")
	}

	q := NewProgress(false)
	if q.enabled {
		t.Error("expected disabled")
	}
}

func TestNewVerboseProgress_VerboseImpliesEnabled(t *testing.T) {
	p := NewVerboseProgress(false, true)
	if !p.enabled {
		t.Error("verbose must imply enabled")
	}
	if !p.verbose {
		t.Error("expected verbose")
	}
}

func TestLog_DisabledDoesNotPanic(t *testing.T) {
	p := NewProgress(false)
	p.Log("suppressed %d", 1)
	p.Debug("suppressed %d", 2)
	p.Warn("always printed %d", 3)
}
