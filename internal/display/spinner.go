package display

import (
	"io"

	"github.com/pterm/pterm"
)

// Spinner shows a pterm spinner while the dashboard is loading. A disabled
// spinner does nothing, which keeps non-interactive output clean.
type Spinner struct {
	enabled bool
	writer  io.Writer
	printer *pterm.SpinnerPrinter
}

func NewSpinner(w io.Writer, enabled bool) *Spinner {
	return &Spinner{enabled: enabled, writer: w}
}

func (s *Spinner) Start(text string) {
	if !s.enabled || s.printer != nil {
		return
	}
	printer, err := pterm.DefaultSpinner.
		WithRemoveWhenDone(true).
		WithWriter(s.writer).
		Start(text)
	if err != nil {
		return
	}
	s.printer = printer
}

func (s *Spinner) Stop() {
	if s.printer == nil {
		return
	}
	_ = s.printer.Stop()
	s.printer = nil
}
