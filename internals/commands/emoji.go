package commands

import (
	"os"
	"runtime"
)

var emojiSupport = true

// EmojiEnabled can be used to turn off emojis (for example with --no-color)
var EmojiEnabled = true

func init() {
	// everything that is not windows usually has emoji support
	if runtime.GOOS != "windows" {
		return
	}

	// windows terminal does not set this, but raw cmd or powershell do
	if os.Getenv("SESSIONNAME") != "" {
		emojiSupport = false
	}
}

// EmojiSupported reports if the terminal (probably) can render emojis
func EmojiSupported() bool {
	return emojiSupport
}

// Emoji returns the given string (usually a emoji) if the current terminal
// (probably) supports it
func Emoji(e string) string {
	if emojiSupport && EmojiEnabled {
		return e
	}
	return ""
}
