package editor

import "github.com/atotto/clipboard"

// Clipboard is the system clipboard as seen by the editor. Writes are
// best-effort; a failure never changes buffer state.
type Clipboard interface {
	WriteText(s string) error
}

// SystemClipboard writes through xclip/xsel/pbcopy/clip.exe as available.
type SystemClipboard struct{}

func (SystemClipboard) WriteText(s string) error {
	return clipboard.WriteAll(s)
}

// Copy writes CopyText to cb. It is a no-op when CanCopy is false.
func (b *Buffer) Copy(cb Clipboard) error {
	if !b.CanCopy() || cb == nil {
		return nil
	}
	return cb.WriteText(b.CopyText())
}
