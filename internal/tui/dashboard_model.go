package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/emimeter/internal/emissions"
	"github.com/rshade/emimeter/internal/session"
)

// DashboardState represents the current state of the dashboard TUI.
type DashboardState int

const (
	// DashboardStateEditing indicates the user is navigating or editing rows.
	DashboardStateEditing DashboardState = iota
	// DashboardStateQuitting indicates the application is exiting.
	DashboardStateQuitting
)

// editFieldWidth is the width of the inline edit field.
const editFieldWidth = 14

// editCharLimit bounds how many characters one value accepts.
const editCharLimit = 16

// sectionLevers is the section holding the optimization parameters.
// Rows in this section also respond to left/right stepping.
const sectionLevers = "Optimization levers"

// leverStep is how far one left/right keypress moves a lever.
const leverStep = 0.05

// dashboardField binds one editable row to a value in the working state.
// Parameters edit as fractions in [0,1]; the engine clamps out-of-range
// values on commit.
type dashboardField struct {
	section string
	label   string
	unit    string
	get     func(m *DashboardModel) float64
	set     func(m *DashboardModel, v float64)
}

// dashboardFields returns the editable rows in display order: activity
// inputs grouped by area, then the optimization levers.
func dashboardFields() []dashboardField {
	return []dashboardField{
		{"Fleet", "Cars", "count",
			func(m *DashboardModel) float64 { return m.inputs.Cars },
			func(m *DashboardModel, v float64) { m.inputs.Cars = v }},
		{"Fleet", "Car distance", "km/yr",
			func(m *DashboardModel) float64 { return m.inputs.CarKm },
			func(m *DashboardModel, v float64) { m.inputs.CarKm = v }},
		{"Fleet", "Trucks", "count",
			func(m *DashboardModel) float64 { return m.inputs.Trucks },
			func(m *DashboardModel, v float64) { m.inputs.Trucks = v }},
		{"Fleet", "Truck distance", "km/yr",
			func(m *DashboardModel) float64 { return m.inputs.TruckKm },
			func(m *DashboardModel, v float64) { m.inputs.TruckKm = v }},
		{"Fleet", "Buses", "count",
			func(m *DashboardModel) float64 { return m.inputs.Buses },
			func(m *DashboardModel, v float64) { m.inputs.Buses = v }},
		{"Fleet", "Bus distance", "km/yr",
			func(m *DashboardModel) float64 { return m.inputs.BusKm },
			func(m *DashboardModel, v float64) { m.inputs.BusKm = v }},
		{"Air freight", "Cargo flights", "count",
			func(m *DashboardModel) float64 { return m.inputs.PlaneFlights },
			func(m *DashboardModel, v float64) { m.inputs.PlaneFlights = v }},
		{"Air freight", "Flight distance", "km",
			func(m *DashboardModel) float64 { return m.inputs.PlaneKm },
			func(m *DashboardModel, v float64) { m.inputs.PlaneKm = v }},
		{"Equipment", "Forklift use", "h/yr",
			func(m *DashboardModel) float64 { return m.inputs.ForkliftHours },
			func(m *DashboardModel, v float64) { m.inputs.ForkliftHours = v }},
		{"Facility energy", "Lighting", "kWh/yr",
			func(m *DashboardModel) float64 { return m.inputs.LightingKWh },
			func(m *DashboardModel, v float64) { m.inputs.LightingKWh = v }},
		{"Facility energy", "Heating", "kWh/yr",
			func(m *DashboardModel) float64 { return m.inputs.HeatingKWh },
			func(m *DashboardModel, v float64) { m.inputs.HeatingKWh = v }},
		{"Facility energy", "Cooling", "kWh/yr",
			func(m *DashboardModel) float64 { return m.inputs.CoolingKWh },
			func(m *DashboardModel, v float64) { m.inputs.CoolingKWh = v }},
		{"Facility energy", "Computing", "kWh/yr",
			func(m *DashboardModel) float64 { return m.inputs.ComputingKWh },
			func(m *DashboardModel, v float64) { m.inputs.ComputingKWh = v }},
		{"Subcontractors", "Reported CO2e", "t/yr",
			func(m *DashboardModel) float64 { return m.inputs.SubcontractorTons },
			func(m *DashboardModel, v float64) { m.inputs.SubcontractorTons = v }},
		{sectionLevers, "EV share", "0-1",
			func(m *DashboardModel) float64 { return m.params.EVShare },
			func(m *DashboardModel, v float64) { m.params.EVShare = v }},
		{sectionLevers, "Distance reduction", "0-1",
			func(m *DashboardModel) float64 { return m.params.DistanceReduction },
			func(m *DashboardModel, v float64) { m.params.DistanceReduction = v }},
		{sectionLevers, "Load factor gain", "0-1",
			func(m *DashboardModel) float64 { return m.params.LoadFactorImprovement },
			func(m *DashboardModel, v float64) { m.params.LoadFactorImprovement = v }},
	}
}

// DashboardModel is the Bubble Tea model for the interactive emissions
// dashboard. Every committed edit recomputes both scenarios through the
// session and replaces the report snapshot.
type DashboardModel struct {
	ctx  context.Context
	sess *session.Session

	// Editable rows
	fields     []dashboardField
	focusedRow int
	editMode   bool
	editInput  textinput.Model

	// Working copies committed to the session on each edit
	inputs emissions.ActivityInputs
	params emissions.Parameters

	// Latest report snapshot
	report *emissions.Report

	// Last rejected input, shown until the next successful commit
	inputErr error

	// State management
	state DashboardState

	// Display dimensions
	width  int
	height int
}

// NewDashboardModel creates a dashboard model bound to a session. The
// model starts from the session's current state, so resuming a session
// shows the values it was left with.
func NewDashboardModel(ctx context.Context, sess *session.Session) *DashboardModel {
	return &DashboardModel{
		ctx:       ctx,
		sess:      sess,
		fields:    dashboardFields(),
		editInput: newEditInput(),
		inputs:    sess.Inputs(),
		params:    sess.Parameters(),
		report:    sess.Report(),
		state:     DashboardStateEditing,
		width:     defaultWidth,
		height:    defaultHeight,
	}
}

func newEditInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = editCharLimit
	ti.Width = editFieldWidth
	return ti
}

// Report returns the model's current report snapshot.
func (m *DashboardModel) Report() *emissions.Report {
	return m.report
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleKeyMsg processes keyboard input outside edit mode.
func (m *DashboardModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editMode {
		return m.handleEditModeKey(msg)
	}

	switch msg.String() {
	case keyCtrlC, keyQuit:
		m.state = DashboardStateQuitting
		return m, tea.Quit

	case keyUp:
		if m.focusedRow > 0 {
			m.focusedRow--
		}

	case keyDown:
		if m.focusedRow < len(m.fields)-1 {
			m.focusedRow++
		}

	case keyLeft:
		m.stepLever(-leverStep)

	case keyRight:
		m.stepLever(leverStep)

	case keyEnter:
		return m, m.startEdit()

	case keySample:
		m.applyPreset(m.sess.LoadSample)

	case keyReset:
		m.applyPreset(m.sess.Reset)
	}

	return m, nil
}

// handleEditModeKey processes keyboard input while editing a row. Enter
// commits, Esc cancels, everything else feeds the text input.
func (m *DashboardModel) handleEditModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyCtrlC:
		m.state = DashboardStateQuitting
		return m, tea.Quit

	case keyEnter:
		m.commitEdit()
		return m, nil

	case keyEsc:
		m.editMode = false
		m.editInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

// startEdit enters edit mode on the focused row, seeding the text input
// with the current value.
func (m *DashboardModel) startEdit() tea.Cmd {
	f := m.fields[m.focusedRow]
	m.editMode = true
	m.inputErr = nil
	m.editInput.SetValue(formatFieldValue(f.get(m)))
	m.editInput.CursorEnd()
	return m.editInput.Focus()
}

// commitEdit parses the edit buffer, writes it into the working state,
// and recomputes through the session. A rejected value rolls the working
// state back and surfaces the error without losing the last good report.
func (m *DashboardModel) commitEdit() {
	m.editMode = false
	m.editInput.Blur()

	raw := strings.TrimSpace(m.editInput.Value())
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		m.inputErr = fmt.Errorf("%q is not a number", raw)
		return
	}

	f := m.fields[m.focusedRow]
	prevInputs, prevParams := m.inputs, m.params
	f.set(m, v)
	m.applyWorkingState(prevInputs, prevParams)
}

// stepLever nudges the focused optimization lever by delta. Rows outside
// the lever section ignore left/right.
func (m *DashboardModel) stepLever(delta float64) {
	f := m.fields[m.focusedRow]
	if f.section != sectionLevers {
		return
	}

	prevInputs, prevParams := m.inputs, m.params
	f.set(m, f.get(m)+delta)
	m.applyWorkingState(prevInputs, prevParams)
}

// applyWorkingState commits the working copies to the session. On
// rejection the working state rolls back and the error is surfaced; on
// success the snapshot the engine computed (with levers clamped to
// [0,1]) replaces the working state.
func (m *DashboardModel) applyWorkingState(prevInputs emissions.ActivityInputs, prevParams emissions.Parameters) {
	rep, err := m.sess.Apply(m.ctx, m.inputs, m.params)
	if err != nil {
		m.inputs, m.params = prevInputs, prevParams
		m.inputErr = err
		return
	}
	m.refresh(rep)
}

// applyPreset loads a preset (sample data or all-zero reset) through the
// session and refreshes the working state from the result.
func (m *DashboardModel) applyPreset(load func(context.Context) (*emissions.Report, error)) {
	rep, err := load(m.ctx)
	if err != nil {
		m.inputErr = err
		return
	}
	m.refresh(rep)
}

// refresh replaces the working state with the snapshot the engine
// actually computed, picking up parameter clamping.
func (m *DashboardModel) refresh(rep *emissions.Report) {
	m.report = rep
	m.inputs = rep.Inputs
	m.params = rep.Parameters
	m.inputErr = nil
}

// formatFieldValue renders a value for editing without trailing zeros.
func formatFieldValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
