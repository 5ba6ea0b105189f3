package event

import "path"

// Category classifies warnings and errors. The enumeration is closed;
// anything that does not fit a specific category is Other.
type Category string

const (
	ConfigurationIssue Category = "configuration_issue"
	IoError            Category = "io_error"
	DecodeError        Category = "decode_error"
	ExportError        Category = "export_error"
	AIModelError       Category = "ai_model_error"
	InternalError      Category = "internal_error"
	UnsupportedFormat  Category = "unsupported_format"
	PermissionDenied   Category = "permission_denied"
	FileNotFound       Category = "file_not_found"
	NetworkError       Category = "network_error"
	Other              Category = "other"
)

// categoryRules maps message-key glob patterns to categories. The table is
// ordered: the first matching pattern wins, so more specific categories
// (file_not_found) sit above broader ones (io_error).
var categoryRules = []struct {
	pattern  string
	category Category
}{
	{"*-network-*", NetworkError},
	{"network-*", NetworkError},
	{"*-config-*", ConfigurationIssue},
	{"config-*", ConfigurationIssue},
	{"*-decode-*", DecodeError},
	{"decode-*", DecodeError},
	{"*-export-*", ExportError},
	{"export-*", ExportError},
	{"*-ai-*", AIModelError},
	{"*-model-*", AIModelError},
	{"*-permission-*", PermissionDenied},
	{"permission-*", PermissionDenied},
	{"*-not-found*", FileNotFound},
	{"*-missing*", FileNotFound},
	{"*-unsupported*", UnsupportedFormat},
	{"*-format*", UnsupportedFormat},
	{"*-io-*", IoError},
	{"io-*", IoError},
	{"*-file-*", IoError},
	{"file-*", IoError},
}

// ResolveCategory returns the effective category for a warning or error:
// the explicit tag when set, otherwise the first message-key rule that
// matches, otherwise Other. It is pure and total; an unmatched key is not
// an error condition.
func ResolveCategory(messageKey string, explicit Category) Category {
	if explicit != "" {
		return explicit
	}
	for _, r := range categoryRules {
		if ok, _ := path.Match(r.pattern, messageKey); ok {
			return r.category
		}
	}
	return Other
}

// SizeCategory is an irreversible generalization of a byte count, used in
// place of exact file sizes wherever privacy requires it.
type SizeCategory string

const (
	SizeSmall     SizeCategory = "small"      // under 1 MB
	SizeMedium    SizeCategory = "medium"     // 1-10 MB
	SizeLarge     SizeCategory = "large"      // 10-100 MB
	SizeVeryLarge SizeCategory = "very_large" // over 100 MB
)

const mib = 1 << 20

// SizeCategoryOf buckets an exact byte count. The mapping cannot be
// reversed: reports carry the bucket, never the bytes.
func SizeCategoryOf(bytes uint64) SizeCategory {
	switch {
	case bytes < 1*mib:
		return SizeSmall
	case bytes < 10*mib:
		return SizeMedium
	case bytes < 100*mib:
		return SizeLarge
	default:
		return SizeVeryLarge
	}
}
