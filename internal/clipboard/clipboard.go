// Package clipboard copies codes to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when the system clipboard cannot be written
var ErrUnavailable = errors.New("unable to copy to clipboard")

// Writer puts text on a clipboard
type Writer interface {
	WriteText(text string) error
}

// System writes to the OS clipboard (pbcopy, xclip/xsel/wl-copy, or the Windows API)
type System struct{}

func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility found", ErrUnavailable)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	slog.Debug("copied code to clipboard")
	return nil
}

// Memory keeps the last written text in process
type Memory struct {
	Text string
	Err  error
}

func (m *Memory) WriteText(text string) error {
	if m.Err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, m.Err)
	}
	m.Text = text
	return nil
}
