package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0891b2", Dark: "#22d3ee"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	ColorText    = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f3f4f6"}
)

// styled is off until Init sees a terminal, so output written to pipes,
// files and test buffers stays plain ASCII.
var styled bool

// Init enables colours and unicode icons when out is a terminal.
func Init(out *os.File) {
	fd := out.Fd()
	styled = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Styled reports whether styled output is enabled.
func Styled() bool {
	return styled
}

// ─── Icons ───────────────────────────────────────────────────────────────────

func IconSuccess() string { return pick("✓", "+") }
func IconSkip() string    { return pick("·", "-") }
func IconArrow() string   { return pick("›", ">") }

func pick(fancy, plain string) string {
	if styled {
		return fancy
	}
	return plain
}

// ─── Renderers ───────────────────────────────────────────────────────────────

func render(style lipgloss.Style, s string) string {
	if !styled {
		return s
	}
	return style.Render(s)
}

// Title renders the run banner.
func Title(s string) string {
	return render(lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary), s)
}

// SectionHeader renders a category heading.
func SectionHeader(s string) string {
	return render(lipgloss.NewStyle().Bold(true).Foreground(ColorText), IconArrow()+" "+s)
}

// Success renders a completed-action line.
func Success(s string) string {
	return render(lipgloss.NewStyle().Foreground(ColorSuccess), "  "+IconSuccess()+" "+s)
}

// Muted renders secondary information.
func Muted(s string) string {
	return render(lipgloss.NewStyle().Foreground(ColorMuted), s)
}

// Error renders a failure line.
func Error(s string) string {
	return render(lipgloss.NewStyle().Bold(true).Foreground(ColorError), s)
}

// Warning renders an attention line.
func Warning(s string) string {
	return render(lipgloss.NewStyle().Foreground(ColorWarning), s)
}

// TableBorder returns the border used by report tables.
func TableBorder() lipgloss.Border {
	if styled {
		return lipgloss.RoundedBorder()
	}
	return lipgloss.ASCIIBorder()
}

// HeaderStyle is applied to table header cells.
func HeaderStyle() lipgloss.Style {
	if !styled {
		return lipgloss.NewStyle().Padding(0, 1)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1)
}

// CellStyle is applied to table body cells.
func CellStyle() lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 1)
}
