// Package tui is the terminal presentation of the counter engine. Mouse
// drags are fed to the gesture tracker as pointer samples; keys map to
// synthetic taps and swipes.
package tui

import (
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rpggio/swipecount/internal/domain/counter"
	"github.com/rpggio/swipecount/internal/engine"
	"github.com/rpggio/swipecount/internal/feedback"
	"github.com/rpggio/swipecount/internal/gesture"
)

// Pointer units per terminal cell. Gesture thresholds are expressed in
// these units.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Synthetic swipe distances for keyboard input.
const (
	keySwipe     = 60
	keyLongSwipe = 500
	keySwitch    = 200
)

// Engine is the subset of engine.Engine the UI drives.
type Engine interface {
	View() engine.View
	Tap() engine.Result
	Swipe(movement, velocity gesture.Vector) engine.Result
	HandlePointer(p gesture.Pointer) engine.Result
	Add() (counter.Counter, error)
	Remove(id string) (bool, error)
	SetTarget(id, raw string) error
	SetLabel(id string, name, color *string) error
	BeginEdit()
	EndEdit()
}

// FeedbackExpiredMsg tells the model a feedback hint has cleared.
type FeedbackExpiredMsg struct {
	Token feedback.Token
}

// LabelHitTest reports whether a pointer position, in pointer units, lies
// on the value label row. Presses there open the edit form instead of
// starting a gesture.
func LabelHitTest(_, y float64) bool {
	return y >= 0 && int(y/CellHeight) == labelRow
}

const (
	fieldTarget = iota
	fieldName
	fieldColor
)

type editForm struct {
	counterID string
	inputs    []textinput.Model
	focus     int
	err       string
}

func newEditForm(c engine.CounterView, focus int) *editForm {
	labels := []string{"Target", "Name", "Color"}
	values := []string{strconv.Itoa(c.TargetValue), c.Name, c.Color}
	f := &editForm{counterID: c.ID, focus: focus}
	for i, label := range labels {
		in := textinput.New()
		in.Prompt = label + ": "
		in.CharLimit = 64
		in.SetValue(values[i])
		if i == focus {
			in.Focus()
		}
		f.inputs = append(f.inputs, in)
	}
	return f
}

func (f *editForm) value(field int) string {
	return f.inputs[field].Value()
}

func (f *editForm) move(dir int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + dir + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// Model is the bubbletea model.
type Model struct {
	engine Engine
	keys   keyMap
	help   help.Model
	now    func() time.Time

	width    int
	height   int
	form     *editForm
	status   string
	quitting bool
}

// New creates a Model driving eng.
func New(eng Engine) Model {
	return Model{
		engine: eng,
		keys:   defaultKeyMap(),
		help:   help.New(),
		now:    time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case FeedbackExpiredMsg:
		return m, nil
	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.updateKey(msg)
	case tea.MouseMsg:
		if m.form != nil {
			return m, nil
		}
		return m.updateMouse(msg)
	}

	if m.form != nil {
		var cmd tea.Cmd
		m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	m.syncBindings(m.engine.View())
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tap):
		m.engine.Tap()
	case key.Matches(msg, m.keys.Up):
		m.engine.Swipe(gesture.Vector{Y: -keySwipe}, gesture.Vector{})
	case key.Matches(msg, m.keys.Down):
		m.engine.Swipe(gesture.Vector{Y: keySwipe}, gesture.Vector{})
	case key.Matches(msg, m.keys.BigUp):
		m.engine.Swipe(gesture.Vector{Y: -keyLongSwipe}, gesture.Vector{})
	case key.Matches(msg, m.keys.BigDown):
		m.engine.Swipe(gesture.Vector{Y: keyLongSwipe}, gesture.Vector{})
	case key.Matches(msg, m.keys.Prev):
		m.engine.Swipe(gesture.Vector{X: keySwitch}, gesture.Vector{X: 1})
	case key.Matches(msg, m.keys.Next):
		m.engine.Swipe(gesture.Vector{X: -keySwitch}, gesture.Vector{X: -1})
	case key.Matches(msg, m.keys.Add):
		if _, err := m.engine.Add(); err != nil {
			m.status = err.Error()
		}
	case key.Matches(msg, m.keys.Remove):
		active := m.engine.View().Active()
		removed, err := m.engine.Remove(active.ID)
		switch {
		case err != nil:
			m.status = err.Error()
		case !removed:
			m.status = "the last counter cannot be removed"
		}
	case key.Matches(msg, m.keys.Edit):
		return m.openForm(fieldTarget)
	case key.Matches(msg, m.keys.Rename):
		return m.openForm(fieldName)
	}
	return m, nil
}

// syncBindings hides actions that cannot apply to v. Keyboard gestures
// wait while a mouse drag is in progress.
func (m *Model) syncBindings(v engine.View) {
	m.keys.Remove.SetEnabled(len(v.Counters) > 1 && !v.Dragging)
	for _, b := range []*key.Binding{
		&m.keys.Tap, &m.keys.Up, &m.keys.Down, &m.keys.BigUp, &m.keys.BigDown,
		&m.keys.Prev, &m.keys.Next, &m.keys.Add,
	} {
		b.SetEnabled(!v.Dragging)
	}
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x := float64(msg.X * CellWidth)
	y := float64(msg.Y * CellHeight)
	p := gesture.Pointer{X: x, Y: y, At: m.now()}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if LabelHitTest(x, y) {
			return m.openForm(fieldTarget)
		}
		p.Kind = gesture.PointerDown
	case msg.Action == tea.MouseActionMotion:
		p.Kind = gesture.PointerMove
	case msg.Action == tea.MouseActionRelease:
		p.Kind = gesture.PointerUp
	default:
		return m, nil
	}
	m.status = ""
	m.engine.HandlePointer(p)
	return m, nil
}

func (m Model) openForm(field int) (tea.Model, tea.Cmd) {
	m.engine.BeginEdit()
	m.form = newEditForm(m.engine.View().Active(), field)
	return m, textinput.Blink
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		return m, nil
	case key.Matches(msg, m.keys.NextItem):
		m.form.move(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevItem):
		m.form.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if err := m.submitForm(); err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.closeForm()
		return m, nil
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m *Model) submitForm() error {
	f := m.form
	if err := m.engine.SetTarget(f.counterID, f.value(fieldTarget)); err != nil {
		if errors.Is(err, counter.ErrInvalidTarget) {
			return errors.New("target must be a whole number greater than zero")
		}
		return err
	}
	name, color := f.value(fieldName), f.value(fieldColor)
	return m.engine.SetLabel(f.counterID, &name, &color)
}

func (m *Model) closeForm() {
	m.form = nil
	m.engine.EndEdit()
}
