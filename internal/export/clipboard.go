package export

import "github.com/atotto/clipboard"

// ClipboardSink receives a serialized report as UTF-8 text.
type ClipboardSink interface {
	Write(text string) error
}

// SystemClipboard is the platform clipboard.
type SystemClipboard struct{}

func (SystemClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}
