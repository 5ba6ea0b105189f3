// Package anonymize implements the privacy transform applied to event
// snapshots before export. Absolute file paths become opaque tokens, exact
// byte sizes become coarse SizeCategory buckets, and free-text argument
// values matching the sensitive patterns are redacted. The transform is
// pure and idempotent; resource-sample numerics are never touched.
package anonymize

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/baikal/appdiag/internal/event"
)

const redacted = "[redacted]"

// tokenForm matches an opaque path token produced by a previous pass.
// Recognizing it is what makes the transform idempotent.
var tokenForm = regexp.MustCompile(`^path-\d{2,}$`)

// DefaultPatterns are the built-in sensitive-value rules: anything that
// identifies a user outside of their file layout.
var DefaultPatterns = []string{
	`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`, // email address
	`\b\d{1,3}(?:\.\d{1,3}){3}\b`,                    // IPv4 address
}

// pathKeys name argument fields that always hold a path, even when the
// value does not look absolute.
var pathKeys = map[string]bool{
	"path":        true,
	"file":        true,
	"file_path":   true,
	"source":      true,
	"destination": true,
	"dir":         true,
	"directory":   true,
	"folder":      true,
}

// sizeKeys name argument fields that hold an exact byte count.
var sizeKeys = map[string]bool{
	"size":            true,
	"bytes":           true,
	"size_bytes":      true,
	"file_size":       true,
	"file_size_bytes": true,
}

// Anonymizer rewrites privacy-sensitive event fields. Construct with New
// or Default; the zero value applies no sensitive-pattern rules but still
// tokenizes paths and buckets sizes.
type Anonymizer struct {
	sensitive []*regexp.Regexp
}

// New compiles the given sensitive-value patterns.
func New(patterns []string) (*Anonymizer, error) {
	a := &Anonymizer{}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile sensitive pattern %q: %w", p, err)
		}
		a.sensitive = append(a.sensitive, re)
	}
	return a, nil
}

// Default returns an Anonymizer with the built-in patterns.
func Default() *Anonymizer {
	a, err := New(DefaultPatterns)
	if err != nil {
		// DefaultPatterns are compile-tested; this cannot happen.
		panic(err)
	}
	return a
}

// Anonymize returns a scrubbed copy of events. The input is never mutated;
// event count, relative order, and field shapes are preserved. Applying the
// transform twice yields the same result as applying it once.
func (a *Anonymizer) Anonymize(events []event.Event) []event.Event {
	out := make([]event.Event, len(events))
	tok := &tokenTable{byPath: make(map[string]string)}
	for i, ev := range events {
		out[i] = ev
		out[i].Body = a.scrubBody(ev.Body, tok)
	}
	return out
}

// tokenTable assigns opaque tokens to paths in first-seen order within a
// single Anonymize call, so the same path always maps to the same token
// inside one report.
type tokenTable struct {
	byPath map[string]string
	next   int
}

func (t *tokenTable) token(p string) string {
	if tk, ok := t.byPath[p]; ok {
		return tk
	}
	t.next++
	tk := fmt.Sprintf("path-%02d", t.next)
	t.byPath[p] = tk
	return tk
}

func (a *Anonymizer) scrubBody(body event.Body, tok *tokenTable) event.Body {
	switch b := body.(type) {
	case event.UserAction:
		b.Payload = a.scrubValue("", b.Payload, tok)
		return b
	case event.AppState:
		b.Context = a.scrubValue("", b.Context, tok)
		return b
	case event.Warning:
		b.Args = a.scrubArgs(b.Args, tok)
		return b
	case event.Error:
		b.Args = a.scrubArgs(b.Args, tok)
		return b
	default:
		// Operation and ResourceSnapshot carry nothing identifying.
		return body
	}
}

// scrubArgs returns a scrubbed copy of args. Keys are visited in sorted
// order so path-token numbering is deterministic.
func (a *Anonymizer) scrubArgs(args map[string]string, tok *tokenTable) map[string]string {
	if len(args) == 0 {
		return args
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]string, len(args))
	for _, k := range keys {
		out[k] = a.scrubValue(k, args[k], tok)
	}
	return out
}

func (a *Anonymizer) scrubValue(key, val string, tok *tokenTable) string {
	if val == "" || val == redacted || tokenForm.MatchString(val) || isSizeLabel(val) {
		return val
	}
	if pathKeys[key] || isPathLike(val) {
		return tok.token(val)
	}
	if sizeKeys[key] {
		if n, err := strconv.ParseUint(val, 10, 64); err == nil {
			return string(event.SizeCategoryOf(n))
		}
	}
	for _, re := range a.sensitive {
		if re.MatchString(val) {
			return redacted
		}
	}
	return val
}

// isPathLike reports whether a value is an absolute filesystem path on any
// platform the viewer ships on.
func isPathLike(s string) bool {
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "~") {
		return true
	}
	if strings.HasPrefix(s, `\\`) { // UNC share
		return true
	}
	if len(s) >= 3 && s[1] == ':' && (s[2] == '\\' || s[2] == '/') { // drive letter
		return true
	}
	return false
}

func isSizeLabel(s string) bool {
	switch event.SizeCategory(s) {
	case event.SizeSmall, event.SizeMedium, event.SizeLarge, event.SizeVeryLarge:
		return true
	}
	return false
}
