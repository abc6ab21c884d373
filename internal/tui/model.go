// Package tui implements the interactive parse prompt: the input is parsed
// on every keystroke and the recognized spans are highlighted.
package tui

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ccollicutt/datefind/pkg/dateparse"
	"github.com/ccollicutt/datefind/pkg/parser"
)

// maxHistory bounds the list of submitted inputs shown under the prompt.
const maxHistory = 10

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	spanStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea model of the prompt.
type Model struct {
	parsing  *dateparse.Configuration
	clock    func() time.Time
	language string

	editBuffer []rune
	editCursor int

	result  *dateparse.Result
	history []*dateparse.Result
	width   int
}

// New returns a prompt that parses with parsing. clock supplies the
// reference time for every keystroke; nil means time.Now.
func New(parsing *dateparse.Configuration, clock func() time.Time, language string) Model {
	if clock == nil {
		clock = time.Now
	}
	m := Model{parsing: parsing, clock: clock, language: language}
	m.reparse()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.insert(msg.Runes)
		m.reparse()
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		if len(m.editBuffer) > 0 {
			m.history = append([]*dateparse.Result{m.result}, m.history...)
			if len(m.history) > maxHistory {
				m.history = m.history[:maxHistory]
			}
			m.editBuffer = nil
			m.editCursor = 0
		}

	case "backspace", "ctrl+h":
		if m.editCursor > 0 {
			m.editBuffer = slices.Delete(m.editBuffer, m.editCursor-1, m.editCursor)
			m.editCursor--
		}

	case "delete", "ctrl+d":
		if m.editCursor < len(m.editBuffer) {
			m.editBuffer = slices.Delete(m.editBuffer, m.editCursor, m.editCursor+1)
		}

	case "left", "ctrl+b":
		if m.editCursor > 0 {
			m.editCursor--
		}

	case "right", "ctrl+f":
		if m.editCursor < len(m.editBuffer) {
			m.editCursor++
		}

	case "home", "ctrl+a":
		m.editCursor = 0

	case "end", "ctrl+e":
		m.editCursor = len(m.editBuffer)

	case "ctrl+u":
		m.editBuffer = nil
		m.editCursor = 0

	default:
		return m, nil
	}

	m.reparse()
	return m, nil
}

func (m *Model) insert(runes []rune) {
	m.editBuffer = slices.Insert(slices.Clone(m.editBuffer), m.editCursor, runes...)
	m.editCursor += len(runes)
}

func (m *Model) reparse() {
	m.result = m.parsing.Parse(string(m.editBuffer), m.clock())
}

// Input returns the current prompt text.
func (m Model) Input() string {
	return string(m.editBuffer)
}

// Result returns the result for the current prompt text.
func (m Model) Result() *dateparse.Result {
	return m.result
}

// History returns submitted results, newest first.
func (m Model) History() []*dateparse.Result {
	return slices.Clone(m.history)
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("datefind (%s)", m.language)))
	b.WriteString("\n\n> ")
	b.WriteString(m.renderInput())
	b.WriteString("\n  ")
	b.WriteString(renderValue(m.result))
	b.WriteString("\n")

	if len(m.history) > 0 {
		b.WriteString("\n")
		for _, res := range m.history {
			fmt.Fprintf(&b, "  %s  %s\n", highlight(res), renderValue(res))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: keep  ctrl+u: clear  esc: quit"))
	b.WriteString("\n")
	return b.String()
}

// renderInput highlights recognized spans and draws the cursor.
func (m Model) renderInput() string {
	text := string(m.editBuffer)
	inSpan := spanMask(m.result, len(text))

	var b strings.Builder
	offset := 0
	for i, r := range m.editBuffer {
		s := string(r)
		switch {
		case i == m.editCursor:
			b.WriteString(cursorStyle.Render(s))
		case inSpan[offset]:
			b.WriteString(spanStyle.Render(s))
		default:
			b.WriteString(s)
		}
		offset += len(s)
	}
	if m.editCursor == len(m.editBuffer) {
		b.WriteString(cursorStyle.Render(" "))
	}
	return b.String()
}

// spanMask marks the bytes covered by a contributing component.
func spanMask(res *dateparse.Result, n int) []bool {
	mask := make([]bool, n+1)
	if res == nil {
		return mask
	}
	for _, c := range res.Components() {
		for i := c.Start(); i < c.End() && i < n; i++ {
			mask[i] = true
		}
	}
	return mask
}

func highlight(res *dateparse.Result) string {
	comps := res.Components()
	slices.SortFunc(comps, func(a, b *parser.ParsedComponent) int { return a.Start() - b.Start() })

	src := res.Source()
	var b strings.Builder
	last := 0
	for _, c := range comps {
		if c.Start() < last {
			continue
		}
		b.WriteString(src[last:c.Start()])
		b.WriteString(spanStyle.Render(c.Text()))
		last = c.End()
	}
	b.WriteString(src[last:])
	return b.String()
}

func renderValue(res *dateparse.Result) string {
	if res == nil || res.IsEmpty() {
		return missingStyle.Render("no date or time")
	}
	at, _ := res.Resolve(nil)
	return valueStyle.Render("=> " + at.Format("Mon 2006-01-02 15:04:05 MST"))
}

// Run starts the prompt on the given terminal streams.
func Run(m Model, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out))
	_, err := p.Run()
	return err
}
