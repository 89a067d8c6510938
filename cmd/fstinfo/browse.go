package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/katalvlaran/lvfst/fst"
)

// browseModel shows the arcs of one state at a time. Arrow keys move
// between states, enter jumps to the id typed in the input, and f follows
// the first arc.
type browseModel struct {
	f     *fst.Fst
	name  string
	state fst.StateID
	input textinput.Model
	err   error
}

func newBrowseModel(name string, f *fst.Fst) *browseModel {
	ti := textinput.New()
	ti.Placeholder = "state id"
	ti.Prompt = "goto: "
	ti.Width = 12
	ti.Focus()
	start := f.Start()
	if start == fst.NoStateID {
		start = 0
	}
	return &browseModel{f: f, name: name, state: start, input: ti}
}

func (m *browseModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "up", "k":
			m.move(m.state - 1)
			return m, nil
		case "down", "j":
			m.move(m.state + 1)
			return m, nil
		case "f":
			if arcs := m.f.Arcs(m.state); len(arcs) > 0 {
				m.move(arcs[0].NextState)
			}
			return m, nil
		case "enter":
			m.jump(m.input.Value())
			m.input.SetValue("")
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *browseModel) move(s fst.StateID) {
	if s < 0 || int(s) >= m.f.NumStates() {
		return
	}
	m.state = s
	m.err = nil
}

func (m *browseModel) jump(text string) {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
	if err != nil {
		m.err = fmt.Errorf("not a state id: %q", text)
		return
	}
	if id < 0 || int(id) >= m.f.NumStates() {
		m.err = fmt.Errorf("%w: %d", fst.ErrStateNotFound, id)
		return
	}
	m.move(fst.StateID(id))
}

func (m *browseModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("fstinfo"))
	b.WriteString(" ")
	b.WriteString(m.name)
	b.WriteString("\n\n")

	if m.f.NumStates() == 0 {
		b.WriteString("(no states)\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	header := fmt.Sprintf("state %d of %d", m.state, m.f.NumStates())
	if m.state == m.f.Start() {
		header += "  [start]"
	}
	if m.f.IsFinal(m.state) {
		header += "  [final " + m.f.Final(m.state).String() + "]"
	}
	b.WriteString(selectedStyle.Render(header))
	b.WriteString("\n\n")

	arcs := m.f.Arcs(m.state)
	if len(arcs) == 0 {
		b.WriteString(helpStyle.Render("  no arcs"))
		b.WriteString("\n")
	}
	for _, a := range arcs {
		fmt.Fprintf(&b, "  %s %s\n",
			keyStyle.Render(fmt.Sprintf("%d:%d", a.ILabel, a.OLabel)),
			valueStyle.Render(fmt.Sprintf("/%s -> %d", a.Weight, a.NextState)))
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ state • f follow first arc • enter goto • q quit"))
	return b.String()
}

func runBrowse(name string, f *fst.Fst) error {
	p := tea.NewProgram(newBrowseModel(name, f), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
