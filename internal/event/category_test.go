package event

import "testing"

func TestResolveCategory_PatternRules(t *testing.T) {
	tests := []struct {
		key  string
		want Category
	}{
		{"viewer-network-timeout", NetworkError},
		{"network-unreachable", NetworkError},
		{"viewer-config-theme-missing", ConfigurationIssue},
		{"config-parse-failed", ConfigurationIssue},
		{"viewer-decode-failed", DecodeError},
		{"decode-unsupported-codec", DecodeError},
		{"viewer-export-write-failed", ExportError},
		{"viewer-ai-caption-failed", AIModelError},
		{"viewer-model-load-failed", AIModelError},
		{"viewer-permission-denied", PermissionDenied},
		{"viewer-file-not-found", FileNotFound},
		{"viewer-thumbnail-missing", FileNotFound},
		{"viewer-io-read-failed", IoError},
		{"io-short-write", IoError},
		{"viewer-file-locked", IoError},
		{"viewer-format-unknown", UnsupportedFormat},
		{"viewer-unsupported-colorspace", UnsupportedFormat},
		{"something-else-entirely", Other},
		{"", Other},
	}

	for _, tt := range tests {
		if got := ResolveCategory(tt.key, ""); got != tt.want {
			t.Errorf("ResolveCategory(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestResolveCategory_ExplicitWinsOverPattern(t *testing.T) {
	// The key would pattern-match network_error, but the explicit tag must win.
	got := ResolveCategory("viewer-network-timeout", ConfigurationIssue)
	if got != ConfigurationIssue {
		t.Errorf("explicit category ignored: got %q, want %q", got, ConfigurationIssue)
	}
}

func TestWarningCategory_ExplicitType(t *testing.T) {
	w := Warning{MessageKey: "viewer-network-timeout", Type: ConfigurationIssue}
	if got := w.Category(); got != ConfigurationIssue {
		t.Errorf("Warning.Category() = %q, want %q", got, ConfigurationIssue)
	}
}

func TestErrorCategory_FallbackAndDefault(t *testing.T) {
	e := Error{MessageKey: "viewer-decode-failed"}
	if got := e.Category(); got != DecodeError {
		t.Errorf("Error.Category() fallback = %q, want %q", got, DecodeError)
	}

	e = Error{MessageKey: "no-rule-matches-this"}
	if got := e.Category(); got != Other {
		t.Errorf("Error.Category() default = %q, want %q", got, Other)
	}
}

func TestSizeCategoryOf(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  SizeCategory
	}{
		{0, SizeSmall},
		{1<<20 - 1, SizeSmall},
		{1 << 20, SizeMedium},
		{10<<20 - 1, SizeMedium},
		{10 << 20, SizeLarge},
		{100<<20 - 1, SizeLarge},
		{100 << 20, SizeVeryLarge},
		{5 << 30, SizeVeryLarge},
	}

	for _, tt := range tests {
		if got := SizeCategoryOf(tt.bytes); got != tt.want {
			t.Errorf("SizeCategoryOf(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
