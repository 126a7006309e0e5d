package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/AlecAivazis/survey/v2"
)

// TerminalAlerter prints alerts as a bordered box.
type TerminalAlerter struct {
	mu       sync.Mutex
	out      io.Writer
	dark     func() bool
	blocking bool
}

// NewTerminalAlerter writes alerts to out using the palette reported by
// dark. A blocking alerter waits for Enter after each alert.
func NewTerminalAlerter(out io.Writer, dark func() bool, blocking bool) *TerminalAlerter {
	if dark == nil {
		dark = func() bool { return false }
	}
	return &TerminalAlerter{out: out, dark: dark, blocking: blocking}
}

func (a *TerminalAlerter) Alert(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fmt.Fprintln(a.out, PaletteFor(a.dark()).Alert.Render("⚠️  "+message))
	if !a.blocking {
		return
	}
	var ack string
	_ = survey.AskOne(&survey.Input{Message: "Press Enter to continue"}, &ack)
}

// Info prints a neutral status line.
func Info(w io.Writer, dark bool, message string) {
	fmt.Fprintln(w, PaletteFor(dark).Info.Render("ℹ️  "+message))
}

// Success prints a confirmation line.
func Success(w io.Writer, dark bool, message string) {
	fmt.Fprintln(w, PaletteFor(dark).Success.Render("✅ "+message))
}
