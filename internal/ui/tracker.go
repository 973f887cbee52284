package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/habitctl/internal/habit"
)

// Session is the update loop the TUI drives. *tracker.Session implements it.
type Session interface {
	State() habit.Tracker
	Dispatch(ev habit.Event) error
}

// TUIConfig holds configuration needed by the TUI.
type TUIConfig struct {
	MaxWidth int   // maximum content width (0 = no limit)
	Theme    Theme // resolved theme
}

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Toggle    key.Binding
	Enter     key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	NewHabit  key.Binding
	Leave     key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous habit")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next habit")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous day")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle day")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "toggle / add")),
		NextFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next control")),
		PrevFocus: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous control")),
		NewHabit:  key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "new habit")),
		Leave:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to grid")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.NextFocus, k.NewHabit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.Enter, k.NewHabit},
		{k.NextFocus, k.PrevFocus, k.Leave},
		{k.Help, k.Quit},
	}
}

// trackerModel is the Bubble Tea model for the habit grid.
type trackerModel struct {
	session Session
	cfg     TUIConfig
	keys    keyMap
	help    help.Model
	input   textinput.Model
	focus   Focus
	row     int
	col     int
	notice  string
	width   int
	height  int
	ready   bool
}

func newTrackerModel(session Session, cfg TUIConfig) trackerModel {
	state := session.State()

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Enter new habit..."
	input.SetValue(state.NewHabitName)
	input.PromptStyle = cfg.Theme.AccentStyle()
	input.TextStyle = cfg.Theme.ViewPaneStyle()
	input.PlaceholderStyle = cfg.Theme.HelpStyle()

	h := help.New()
	h.Styles.ShortKey = cfg.Theme.AccentStyle()
	h.Styles.ShortDesc = cfg.Theme.HelpStyle()
	h.Styles.ShortSeparator = cfg.Theme.HelpStyle()
	h.Styles.FullKey = cfg.Theme.AccentStyle()
	h.Styles.FullDesc = cfg.Theme.HelpStyle()
	h.Styles.FullSeparator = cfg.Theme.HelpStyle()

	m := trackerModel{
		session: session,
		cfg:     cfg,
		keys:    newKeyMap(),
		help:    h,
		input:   input,
	}
	if len(state.Habits) == 0 {
		m.setFocus(FocusInput)
	}
	return m
}

func (m trackerModel) Init() tea.Cmd {
	if m.focus == FocusInput {
		return textinput.Blink
	}
	return nil
}

func (m trackerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = m.contentWidth()
		m.input.Width = max(m.contentWidth()-len(m.input.Prompt)-1, 10)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch {
		case key.Matches(msg, m.keys.NextFocus):
			m.setFocus((m.focus + 1) % 3)
			return m, m.focusCmd()
		case key.Matches(msg, m.keys.PrevFocus):
			m.setFocus((m.focus + 2) % 3)
			return m, m.focusCmd()
		}

		switch m.focus {
		case FocusInput:
			return m.updateInput(msg)
		case FocusButton:
			return m.updateButton(msg)
		default:
			return m.updateGrid(msg)
		}
	}

	// Cursor blink and other input-internal messages
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m trackerModel) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	habits := len(m.session.State().Habits)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.row = max(m.row-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.row = max(min(m.row+1, habits-1), 0)
	case key.Matches(msg, m.keys.Left):
		m.col = max(m.col-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.col = min(m.col+1, habit.Days-1)
	case key.Matches(msg, m.keys.Toggle), key.Matches(msg, m.keys.Enter):
		if habits > 0 {
			m.dispatch(habit.ToggleHabit{Habit: m.row, Day: m.col})
		}
	case key.Matches(msg, m.keys.NewHabit):
		m.setFocus(FocusInput)
		return m, m.focusCmd()
	}
	return m, nil
}

func (m trackerModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		m.submit(habit.SubmitHabit{})
		return m, nil
	case key.Matches(msg, m.keys.Leave):
		m.setFocus(FocusGrid)
		return m, nil
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != prev {
		m.dispatch(habit.UpdateNewHabitName{Name: v})
	}
	return m, cmd
}

func (m trackerModel) updateButton(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Leave):
		m.setFocus(FocusGrid)
	case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Toggle):
		m.submit(habit.AddHabit{})
	}
	return m, nil
}

// submit dispatches an add event, then mirrors the cleared staging buffer
// into the text entry and moves the cursor onto the new habit.
func (m *trackerModel) submit(ev habit.Event) {
	before := len(m.session.State().Habits)
	m.dispatch(ev)
	state := m.session.State()
	m.input.SetValue(state.NewHabitName)
	if len(state.Habits) > before {
		m.row = len(state.Habits) - 1
	}
}

func (m *trackerModel) dispatch(ev habit.Event) {
	if err := m.session.Dispatch(ev); err != nil {
		m.notice = fmt.Sprintf("Changes not saved: %v", err)
		return
	}
	m.notice = ""
}

func (m *trackerModel) setFocus(f Focus) {
	m.focus = f
	if f == FocusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m trackerModel) focusCmd() tea.Cmd {
	if m.focus == FocusInput {
		return textinput.Blink
	}
	return nil
}

// contentWidth returns the effective content width, respecting MaxWidth.
func (m trackerModel) contentWidth() int {
	if m.cfg.MaxWidth > 0 && m.width > m.cfg.MaxWidth {
		return m.cfg.MaxWidth
	}
	return m.width
}

func (m trackerModel) View() string {
	if !m.ready {
		// No PaintScreen here: dimensions are unknown until the first WindowSizeMsg.
		return "Loading..."
	}

	body := RenderTracker(m.session.State(), GridView{
		Row:    m.row,
		Col:    m.col,
		Focus:  m.focus,
		Input:  m.input.View(),
		Notice: m.notice,
	}, m.cfg.Theme)

	result := body + "\n\n" + m.help.View(m.keys)
	return m.cfg.Theme.PaintScreen(result, m.width, m.height, m.contentWidth())
}

// RunTUI launches the interactive habit grid.
func RunTUI(session Session, cfg TUIConfig) error {
	m := newTrackerModel(session, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
