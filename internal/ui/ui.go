// Package ui renders accounts and messages for the terminal.
package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/vulnetix/totp/internal/config"
	"github.com/vulnetix/totp/internal/store"
)

var (
	blue  = lipgloss.Color("#57AAF7")
	green = lipgloss.Color("#0DBC79")
	cyan  = lipgloss.Color("14")
	red   = lipgloss.Color("9")
	amber = lipgloss.Color("11")
)

// Theme holds the styles for one output stream
type Theme struct {
	renderer *lipgloss.Renderer

	index  lipgloss.Style
	name   lipgloss.Style
	plain  lipgloss.Style
	header lipgloss.Style
	code   lipgloss.Style
	warn   lipgloss.Style
	danger lipgloss.Style
}

// NewTheme builds styles for w. ColorAuto detects the profile from w.
func NewTheme(w io.Writer, mode config.ColorMode) *Theme {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case config.ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}

	return &Theme{
		renderer: r,
		index:    r.NewStyle().Foreground(blue).Padding(0, 1),
		name:     r.NewStyle().Foreground(green).Padding(0, 1),
		plain:    r.NewStyle().Padding(0, 1),
		header:   r.NewStyle().Bold(true).Padding(0, 1),
		code:     r.NewStyle().Foreground(cyan).Bold(true),
		warn:     r.NewStyle().Foreground(amber),
		danger:   r.NewStyle().Foreground(red).Bold(true),
	}
}

// Name renders an account name
func (t *Theme) Name(s string) string { return t.name.UnsetPadding().Render(s) }

// Code renders a one-time code or a path
func (t *Theme) Code(s string) string { return t.code.Render(s) }

// Warn renders an abort notice
func (t *Theme) Warn(s string) string { return t.warn.Render(s) }

// Danger renders an irreversible outcome
func (t *Theme) Danger(s string) string { return t.danger.Render(s) }

// AccountTable renders accounts with their row index, which is the value
// accepted by the interactive selection of the get command.
func (t *Theme) AccountTable(accounts []store.Account, withSecrets bool) string {
	headers := []string{"", "name"}
	if withSecrets {
		headers = append(headers, "secret")
	}

	rows := make([][]string, 0, len(accounts))
	for i, acc := range accounts {
		row := []string{strconv.Itoa(i), acc.Name}
		if withSecrets {
			row = append(row, acc.Secret)
		}
		rows = append(rows, row)
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(t.renderer.NewStyle()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return t.header
			case col == 0:
				return t.index
			case col == 1:
				return t.name
			default:
				return t.plain
			}
		})
	return tbl.String()
}

// CodeMessage formats a code with its remaining lifetime
func (t *Theme) CodeMessage(name, code string, remaining uint64) string {
	unit := "seconds"
	if remaining == 1 {
		unit = "second"
	}
	return fmt.Sprintf("%s: %s\nExpires in %s %s.",
		t.Name(name), t.Code(code), t.Name(strconv.FormatUint(remaining, 10)), unit)
}
