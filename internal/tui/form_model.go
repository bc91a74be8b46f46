package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/baghouse/internal/design"
	"github.com/rshade/baghouse/internal/logging"
	"github.com/rshade/baghouse/internal/scenario"
	"github.com/rshade/baghouse/internal/session"
)

// FormState is the current mode of the form.
type FormState int

const (
	// FormStateBrowsing moves between fields.
	FormStateBrowsing FormState = iota
	// FormStateEditing edits the focused field in the text input.
	FormStateEditing
	// FormStateSaving prompts for a scenario file path.
	FormStateSaving
	// FormStateResults shows the full results panel.
	FormStateResults
	// FormStateQuitting indicates the program is exiting.
	FormStateQuitting
)

// Table column widths.
const (
	colGroupWidth = 12
	colFieldWidth = 44
	colValueWidth = 18
	colUnitWidth  = 10
)

// FormModel is the Bubble Tea model for the interactive design form. Every
// committed edit is applied to the session, which recomputes synchronously.
type FormModel struct {
	ctx  context.Context
	sess *session.Session
	keys []session.KeyInfo

	table table.Model
	input textinput.Model

	state    FormState
	snap     session.Snapshot
	savePath string

	// status is the outcome of the last action; statusErr marks it as an error.
	status    string
	statusErr bool

	width  int
	height int
}

// NewFormModel wraps sess in a form. savePath is the default scenario file
// offered by the save prompt.
func NewFormModel(ctx context.Context, sess *session.Session, savePath string) *FormModel {
	m := &FormModel{
		ctx:      ctx,
		sess:     sess,
		keys:     session.Keys(),
		input:    newTextInput(),
		state:    FormStateBrowsing,
		snap:     sess.Snapshot(),
		savePath: savePath,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.table = m.buildTable()
	return m
}

// Init initializes the model.
func (m *FormModel) Init() tea.Cmd {
	return nil
}

// Snapshot returns the latest session snapshot.
func (m *FormModel) Snapshot() session.Snapshot {
	return m.snap
}

// State returns the current form mode.
func (m *FormModel) State() FormState {
	return m.state
}

// Update handles messages and updates the model state.
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(m.tableHeight())
		return m, nil
	case tea.KeyMsg:
		switch m.state {
		case FormStateEditing:
			return m.handleEditKey(msg)
		case FormStateSaving:
			return m.handleSaveKey(msg)
		case FormStateResults:
			return m.handleResultsKey(msg)
		case FormStateBrowsing, FormStateQuitting:
			return m.handleBrowseKey(msg)
		}
	}
	return m, nil
}

func (m *FormModel) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.state = FormStateQuitting
		return m, tea.Quit
	case keyEnter:
		return m.startEdit()
	case keyX, keyDelete:
		info := m.focused()
		if len(info.Choices) == 0 {
			m.apply(info.Key, "")
		}
		return m, nil
	case keyD:
		m.cycleDesign()
		return m, nil
	case keyO:
		m.snap = m.sess.SetOverride(!m.sess.Override())
		m.setStatus(fmt.Sprintf("ceiling override %s", onOff(m.snap.Override)), false)
		m.refresh()
		return m, nil
	case keyTab:
		m.state = FormStateResults
		return m, nil
	case keyW, keyCtrlS:
		m.state = FormStateSaving
		m.input.SetValue(m.savePath)
		m.input.CursorEnd()
		return m, m.input.Focus()
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
}

// startEdit cycles enumerated fields in place and opens the text input for the rest.
func (m *FormModel) startEdit() (tea.Model, tea.Cmd) {
	info := m.focused()
	if len(info.Choices) > 0 {
		m.apply(info.Key, nextChoice(info.Choices, m.sess.Text(info.Key)))
		return m, nil
	}
	m.state = FormStateEditing
	m.input.SetValue(m.sess.Text(info.Key))
	m.input.CursorEnd()
	m.table.Blur()
	return m, m.input.Focus()
}

func (m *FormModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		m.apply(m.focused().Key, m.input.Value())
		m.endInput()
		return m, nil
	case keyEsc:
		m.endInput()
		return m, nil
	case keyCtrlC:
		m.state = FormStateQuitting
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *FormModel) handleSaveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		m.save(strings.TrimSpace(m.input.Value()))
		m.endInput()
		return m, nil
	case keyEsc:
		m.endInput()
		return m, nil
	case keyCtrlC:
		m.state = FormStateQuitting
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *FormModel) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.state = FormStateQuitting
		return m, tea.Quit
	case keyTab, keyEsc:
		m.state = FormStateBrowsing
	}
	return m, nil
}

func (m *FormModel) endInput() {
	m.state = FormStateBrowsing
	m.input.Blur()
	m.input.SetValue("")
	m.table.Focus()
}

// apply routes raw text to the session and refreshes the table.
func (m *FormModel) apply(key session.Key, raw string) {
	snap, err := m.sess.Apply(string(key), raw)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.snap = snap
	m.setStatus(fmt.Sprintf("%s updated", key), false)
	logging.FromContext(m.ctx).Debug().
		Str("component", "tui").
		Str("key", string(key)).
		Int("revision", snap.Revision).
		Msg("field applied")
	m.refresh()
}

func (m *FormModel) cycleDesign() {
	types := design.Types()
	next := types[(slices.Index(types, m.sess.DesignType())+1)%len(types)]
	m.snap = m.sess.SetDesignType(next)
	m.setStatus(fmt.Sprintf("design type %s", next), false)
	m.refresh()
}

func (m *FormModel) save(path string) {
	if path == "" {
		m.setStatus("save cancelled: no path", true)
		return
	}
	name := m.snap.Name
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := scenario.FromSession(name, m.sess).Save(path); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.savePath = path
	m.setStatus("saved "+path, false)
}

func (m *FormModel) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m *FormModel) focused() session.KeyInfo {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.keys) {
		return m.keys[0]
	}
	return m.keys[i]
}

// refresh rebuilds the table rows from the session, keeping the cursor.
func (m *FormModel) refresh() {
	m.table.SetRows(m.rows())
}

func (m *FormModel) rows() []table.Row {
	rows := make([]table.Row, len(m.keys))
	for i, info := range m.keys {
		rows[i] = table.Row{
			string(info.Group),
			info.Label,
			m.sess.Text(info.Key),
			info.Unit,
		}
	}
	return rows
}

func (m *FormModel) buildTable() table.Model {
	columns := []table.Column{
		{Title: "Group", Width: colGroupWidth},
		{Title: "Field", Width: colFieldWidth},
		{Title: "Value", Width: colValueWidth},
		{Title: "Unit", Width: colUnitWidth},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(m.rows()),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

func (m *FormModel) tableHeight() int {
	h := m.height/2 - panelReserve
	if h < minTableRows {
		h = minTableRows
	}
	return h
}

// View renders the current view.
func (m *FormModel) View() string {
	if m.state == FormStateQuitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(RenderHeader(m.snap))
	sb.WriteString("\n")
	sb.WriteString(RenderFlapStatus(m.snap))
	sb.WriteString("\n\n")

	switch m.state {
	case FormStateResults:
		sb.WriteString(RenderResults(m.snap.Report, m.width))
	case FormStateSaving:
		sb.WriteString(m.table.View())
		sb.WriteString("\n")
		sb.WriteString(LabelStyle.Render("Save scenario to:"))
		sb.WriteString("\n")
		sb.WriteString(m.input.View())
	case FormStateEditing:
		sb.WriteString(m.table.View())
		sb.WriteString("\n")
		info := m.focused()
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%s (%s):", info.Label, info.Key)))
		sb.WriteString("\n")
		sb.WriteString(m.input.View())
	case FormStateBrowsing, FormStateQuitting:
		sb.WriteString(m.table.View())
	}

	if adv := RenderAdvisories(m.snap.Advisories); adv != "" {
		sb.WriteString("\n\n")
		sb.WriteString(adv)
	}
	if m.status != "" {
		sb.WriteString("\n\n")
		if m.statusErr {
			sb.WriteString(ErrorStyle.Render(m.status))
		} else {
			sb.WriteString(OKStyle.Render(m.status))
		}
	}
	sb.WriteString("\n\n")
	sb.WriteString(RenderHelp(m.state == FormStateEditing || m.state == FormStateSaving))
	return sb.String()
}

// nextChoice returns the choice after current, wrapping around.
func nextChoice(choices []string, current string) string {
	i := slices.IndexFunc(choices, func(c string) bool { return strings.EqualFold(c, current) })
	return choices[(i+1)%len(choices)]
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// Run starts the form on the terminal and returns the final snapshot.
func Run(ctx context.Context, sess *session.Session, savePath string, opts ...tea.ProgramOption) (session.Snapshot, error) {
	model := NewFormModel(ctx, sess, savePath)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return model.Snapshot(), fmt.Errorf("failed to run interactive form: %w", err)
	}
	return model.Snapshot(), nil
}
