// Package clipboardx writes through the system clipboard when one is
// reachable and keeps an in-process fallback so copy/paste always works,
// SSH sessions included (via OSC 52).
package clipboardx

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
)

var internal string

// Write stores text in every clipboard it can reach. Returns true when at
// least the system clipboard or the terminal accepted it.
func Write(text string) bool {
	internal = text

	ok := clipboard.WriteAll(text) == nil
	if writeOSC52(text) {
		ok = true
	}
	return ok
}

// Read prefers the system clipboard and falls back to the last Write from
// this process.
func Read() string {
	if text, err := clipboard.ReadAll(); err == nil && text != "" {
		return text
	}
	return internal
}

// writeOSC52 escapes text to the controlling terminal's clipboard. Only
// attempted when stdout is a terminal.
func writeOSC52(text string) bool {
	if text == "" {
		return false
	}
	if fi, err := os.Stdout.Stat(); err != nil || (fi.Mode()&os.ModeCharDevice) == 0 {
		return false
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(os.Stdout, "\x1b]52;c;%s\x07", encoded)
	return err == nil
}
