package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Foxcapades/kps/pkg/buffer"
)

// Theme defines the color scheme for terminal views.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Data    lipgloss.Color // Occupied cells
	Dim     lipgloss.Color // Free cells and help text
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Data:    lipgloss.Color("#e6edf3"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Border lipgloss.Style
	Help   lipgloss.Style
	Data   lipgloss.Style
	Head   lipgloss.Style
	Free   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Label:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Border: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Primary).Padding(0, 1),
		Help:   lipgloss.NewStyle().Foreground(t.Dim),
		Data:   lipgloss.NewStyle().Foreground(t.Data),
		Head:   lipgloss.NewStyle().Bold(true).Underline(true).Foreground(t.Primary),
		Free:   lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// RingView renders the physical storage of a byte ring: every storage cell
// in index order, with the head cell marked and free cells dimmed.
type RingView struct {
	Styles Styles
	Title  string
	Ring   *buffer.ByteRing

	// Columns is the number of cells per row. Zero means 16.
	Columns int

	// Steps are shown below the cells, e.g. the log of how the ring got
	// into its current state.
	Steps []string
}

// Render renders the view to a string.
func (v RingView) Render() string {
	rb := v.Ring
	cols := v.Columns
	if cols <= 0 {
		cols = 16
	}

	var lines []string
	lines = append(lines, v.Styles.Title.Render(v.Title)+" "+v.Styles.Help.Render(fmt.Sprintf(
		"[cap %d, len %d, head %d, %s, %s]",
		rb.Cap(), rb.Len(), rb.Head(), rb.Layout(), FormatRatio(rb.Len(), rb.Cap()),
	)))

	c := rb.Cap()
	if c == 0 {
		lines = append(lines, v.Styles.Free.Render("(no storage)"))
	}
	for row := 0; row < c; row += cols {
		cells := make([]string, 0, cols)
		for i := row; i < min(row+cols, c); i++ {
			cells = append(cells, v.cell(i))
		}
		lines = append(lines, v.Styles.Help.Render(fmt.Sprintf("%04x", row))+"  "+strings.Join(cells, " "))
	}

	if len(v.Steps) > 0 {
		lines = append(lines, "", v.Styles.Label.Render("steps"))
		lines = append(lines, v.Steps...)
	}
	return v.Styles.Border.Render(strings.Join(lines, "\n"))
}

// cell renders storage index i.
func (v RingView) cell(i int) string {
	rb := v.Ring
	c := rb.Cap()
	logical := i - rb.Head()
	if logical < 0 {
		logical += c
	}
	if logical >= rb.Len() {
		if i == rb.Head() {
			return v.Styles.Head.Render("··")
		}
		return v.Styles.Free.Render("··")
	}
	b, _ := rb.At(logical)
	s := fmt.Sprintf("%02x", b)
	if logical == 0 {
		return v.Styles.Head.Render(s)
	}
	return v.Styles.Data.Render(s)
}
