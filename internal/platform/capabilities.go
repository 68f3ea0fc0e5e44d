// Package platform is the best-effort capability surface: clipboard
// and haptics. Every failure here is caught and logged, never surfaced
// to the user.
package platform

import (
	"os"

	"reel/internal/log"

	"github.com/atotto/clipboard"
)

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) {
	defer swallow("clipboard")
	if err := clipboard.WriteAll(text); err != nil {
		log.Debug("clipboard write failed: %v", err)
	}
}

// HapticPulse approximates haptic feedback with the terminal bell.
func HapticPulse() {
	defer swallow("haptics")
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return
	}
	defer tty.Close()
	tty.Write([]byte("\a"))
}

// swallow absorbs panics from capability libraries on unsupported
// platforms.
func swallow(capability string) {
	if r := recover(); r != nil {
		log.Debug("capability %s unavailable: %v", capability, r)
	}
}
