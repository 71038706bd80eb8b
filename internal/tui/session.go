package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trknhr/ghosttext/internal/logger"
	"github.com/trknhr/ghosttext/internal/model/charlm"
)

// Generator is the part of a trained model the session needs.
type Generator interface {
	Run(seed string, n int) charlm.Generation
	WindowLength() int
}

// RunHook is told about every accepted generation, e.g. to journal it.
// Seeds shorter than the window are rejected before the hook runs.
type RunHook func(seed string, n int, g charlm.Generation)

type tuiModel struct {
	input   textinput.Model
	list    list.Model
	gen     Generator
	length  int
	onRun   RunHook
	width   int
	height  int
	status  string
	samples []sampleItem
}

// compactDelegate renders items in a single-line compact form.
type compactDelegate struct{}

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	seedStyle     = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (d compactDelegate) Height() int                               { return 1 }
func (d compactDelegate) Spacing() int                              { return 0 }
func (d compactDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d compactDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(sampleItem)
	if !ok {
		return
	}
	generated := strings.TrimPrefix(i.text, i.seed)
	str := seedStyle.Render(i.seed) + oneLine(generated)
	if index == m.Index() {
		str = selectedStyle.Render("> ") + str
	} else {
		str = "  " + str
	}
	fmt.Fprint(w, str)
}

type sampleItem struct {
	seed string
	text string
	stop charlm.StopReason
}

func (i sampleItem) Title() string       { return i.text }
func (i sampleItem) Description() string { return i.stop.String() }
func (i sampleItem) FilterValue() string { return i.text }

func oneLine(s string) string {
	return strings.NewReplacer("\n", "⏎", "\t", " ").Replace(s)
}

func NewTuiModel(gen Generator, initialInput string, length int, onRun RunHook) *tuiModel {
	input := textinput.New()
	input.Placeholder = fmt.Sprintf("Type at least %d characters of seed text...", gen.WindowLength())
	input.SetValue(initialInput)
	input.Focus()

	l := list.New([]list.Item{}, &compactDelegate{}, 40, 10)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)

	return &tuiModel{
		input:  input,
		list:   l,
		gen:    gen,
		length: length,
		onRun:  onRun,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) generate() {
	seed := m.input.Value()
	g := m.gen.Run(seed, m.length)
	logger.Debug("tui generated %d characters, stop=%s", len([]rune(g.Text))-len([]rune(seed)), g.Stop)

	switch g.Stop {
	case charlm.StopSeedTooShort:
		m.status = fmt.Sprintf("seed needs at least %d characters", m.gen.WindowLength())
		return
	case charlm.StopUnknownWindow:
		m.status = "stopped early: window never seen in corpus"
	default:
		m.status = ""
	}

	if m.onRun != nil {
		m.onRun(seed, m.length, g)
	}

	m.samples = append([]sampleItem{{seed: seed, text: g.Text, stop: g.Stop}}, m.samples...)
	items := make([]list.Item, len(m.samples))
	for i, s := range m.samples {
		items[i] = s
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-6)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			m.generate()
			return m, nil

		case tea.KeyUp, tea.KeyDown:
			m.input.Blur()
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd

		default:
			if !m.input.Focused() {
				m.input.Focus()
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *tuiModel) View() string {
	s := "Ghosttext\n\n"
	s += m.input.View() + "\n"
	s += statusStyle.Render(m.status) + "\n\n"
	s += m.list.View() + "\n"
	s += "(enter = generate, esc = quit)"
	return s
}

// Samples returns the generated texts, newest first.
func (m *tuiModel) Samples() []string {
	out := make([]string, len(m.samples))
	for i, s := range m.samples {
		out[i] = s.text
	}
	return out
}

func (m *tuiModel) Status() string {
	return m.status
}
