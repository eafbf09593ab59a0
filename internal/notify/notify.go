// Package notify dispatches best-effort desktop notifications. Delivery
// is never guaranteed: an unavailable notifier degrades silently and the
// core timers stay correct regardless.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog"
)

// Desktop sends notifications through the platform notifier
// (osascript on macOS, notify-send elsewhere).
type Desktop struct {
	log zerolog.Logger
}

// NewDesktop returns a notifier that logs failed deliveries at debug.
func NewDesktop(log zerolog.Logger) *Desktop {
	return &Desktop{log: log}
}

// Notify displays a notification. Failures are swallowed.
func (d *Desktop) Notify(title, body string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		cmd = exec.Command("osascript", "-e", script)
	default:
		cmd = exec.Command("notify-send", title, body)
	}
	if err := cmd.Run(); err != nil {
		d.log.Debug().Err(err).Str("title", title).Msg("notification not delivered")
	}
}
