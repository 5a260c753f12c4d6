package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/emimeter/internal/emissions"
	"github.com/rshade/emimeter/internal/session"
)

func newSampleModel(t *testing.T) *DashboardModel {
	t.Helper()
	sess, err := session.NewWithSample(emissions.DefaultFactors())
	require.NoError(t, err)
	return NewDashboardModel(context.Background(), sess)
}

func newZeroModel(t *testing.T) *DashboardModel {
	t.Helper()
	sess, err := session.New(emissions.DefaultFactors())
	require.NoError(t, err)
	return NewDashboardModel(context.Background(), sess)
}

// evShareRow locates the EV share row so tests do not depend on a
// hard-coded index.
func evShareRow(t *testing.T, m *DashboardModel) int {
	t.Helper()
	for i, f := range m.fields {
		if f.label == "EV share" {
			return i
		}
	}
	t.Fatal("EV share row not found")
	return -1
}

// TestNewDashboardModel tests DashboardModel initialization.
func TestNewDashboardModel(t *testing.T) {
	t.Run("starts from session state", func(t *testing.T) {
		model := newSampleModel(t)

		require.NotNil(t, model)
		assert.Equal(t, DashboardStateEditing, model.state)
		assert.Equal(t, 0, model.focusedRow)
		assert.False(t, model.editMode)
		require.NotNil(t, model.report)
		assert.InDelta(t, 4285.2, model.report.BaselineTotal, 1e-6)
		assert.InDelta(t, 0.30, model.params.EVShare, 1e-9)
	})

	t.Run("has one row per input and lever", func(t *testing.T) {
		model := newSampleModel(t)
		assert.Len(t, model.fields, 17)
	})
}

// TestDashboardModel_Navigation tests focus movement.
func TestDashboardModel_Navigation(t *testing.T) {
	t.Run("down moves focus", func(t *testing.T) {
		model := newSampleModel(t)

		newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
		updated := newModel.(*DashboardModel)
		assert.Equal(t, 1, updated.focusedRow)
	})

	t.Run("up stops at the first row", func(t *testing.T) {
		model := newSampleModel(t)

		newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyUp})
		updated := newModel.(*DashboardModel)
		assert.Equal(t, 0, updated.focusedRow)
	})

	t.Run("down stops at the last row", func(t *testing.T) {
		model := newSampleModel(t)
		model.focusedRow = len(model.fields) - 1

		newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
		updated := newModel.(*DashboardModel)
		assert.Equal(t, len(model.fields)-1, updated.focusedRow)
	})
}

// TestDashboardModel_Quit tests exit handling.
func TestDashboardModel_Quit(t *testing.T) {
	t.Run("q quits", func(t *testing.T) {
		model := newSampleModel(t)

		newModel, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		updated := newModel.(*DashboardModel)
		assert.Equal(t, DashboardStateQuitting, updated.state)
		assert.NotNil(t, cmd)
		assert.Empty(t, updated.View())
	})

	t.Run("ctrl+c quits from edit mode", func(t *testing.T) {
		model := newSampleModel(t)
		model.Update(tea.KeyMsg{Type: tea.KeyEnter})

		newModel, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		updated := newModel.(*DashboardModel)
		assert.Equal(t, DashboardStateQuitting, updated.state)
		assert.NotNil(t, cmd)
	})
}

// TestDashboardModel_EditCommit tests the edit-commit-recompute loop.
func TestDashboardModel_EditCommit(t *testing.T) {
	t.Run("typed value recomputes the report", func(t *testing.T) {
		model := newSampleModel(t)

		// Enter edit mode on the Cars row, replace the value with 20.
		model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.True(t, model.editMode)
		model.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
		model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("20")})
		model.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.False(t, model.editMode)
		assert.NoError(t, model.inputErr)
		assert.Equal(t, 20.0, model.inputs.Cars)
		// 20 cars at 25,000 km and 0.18 kg/km
		assert.InDelta(t, 90.0, model.report.Baseline[emissions.CategoryCars], 1e-9)
	})

	t.Run("session sees the committed state", func(t *testing.T) {
		model := newSampleModel(t)

		model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model.editInput.SetValue("20")
		model.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Equal(t, 20.0, model.sess.Inputs().Cars)
	})

	t.Run("esc cancels without committing", func(t *testing.T) {
		model := newSampleModel(t)

		model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model.editInput.SetValue("999")
		model.Update(tea.KeyMsg{Type: tea.KeyEsc})

		assert.False(t, model.editMode)
		assert.Equal(t, 10.0, model.inputs.Cars)
		assert.InDelta(t, 4285.2, model.report.BaselineTotal, 1e-6)
	})
}

// TestDashboardModel_RejectedInput tests error surfacing and rollback.
func TestDashboardModel_RejectedInput(t *testing.T) {
	t.Run("non-numeric value is reported", func(t *testing.T) {
		model := newSampleModel(t)

		model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model.editInput.SetValue("abc")
		model.Update(tea.KeyMsg{Type: tea.KeyEnter})

		require.Error(t, model.inputErr)
		assert.Contains(t, model.inputErr.Error(), "is not a number")
		assert.Equal(t, 10.0, model.inputs.Cars)
	})

	t.Run("negative quantity rolls back", func(t *testing.T) {
		model := newSampleModel(t)

		model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model.editInput.SetValue("-5")
		model.Update(tea.KeyMsg{Type: tea.KeyEnter})

		require.Error(t, model.inputErr)
		assert.ErrorIs(t, model.inputErr, emissions.ErrNegativeQuantity)
		assert.Equal(t, 10.0, model.inputs.Cars)
		assert.InDelta(t, 4285.2, model.report.BaselineTotal, 1e-6)
	})

	t.Run("error clears on next successful commit", func(t *testing.T) {
		model := newSampleModel(t)

		model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model.editInput.SetValue("abc")
		model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.Error(t, model.inputErr)

		model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model.editInput.SetValue("12")
		model.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.NoError(t, model.inputErr)
		assert.Equal(t, 12.0, model.inputs.Cars)
	})
}

// TestDashboardModel_ParameterClamping tests that committed levers come
// back clamped from the engine.
func TestDashboardModel_ParameterClamping(t *testing.T) {
	model := newSampleModel(t)
	model.focusedRow = evShareRow(t, model)

	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model.editInput.SetValue("1.5")
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.NoError(t, model.inputErr)
	assert.Equal(t, 1.0, model.params.EVShare)
}

// TestDashboardModel_LeverStep tests left/right stepping on lever rows.
func TestDashboardModel_LeverStep(t *testing.T) {
	t.Run("right raises the lever one step", func(t *testing.T) {
		model := newSampleModel(t)
		model.focusedRow = evShareRow(t, model)

		model.Update(tea.KeyMsg{Type: tea.KeyRight})

		assert.InDelta(t, 0.35, model.params.EVShare, 1e-9)
		assert.Less(t, model.report.OptimizedTotal, 3466.04)
	})

	t.Run("left clamps at zero", func(t *testing.T) {
		model := newZeroModel(t)
		model.focusedRow = evShareRow(t, model)

		model.Update(tea.KeyMsg{Type: tea.KeyLeft})

		assert.Zero(t, model.params.EVShare)
		assert.NoError(t, model.inputErr)
	})

	t.Run("right clamps at one", func(t *testing.T) {
		model := newZeroModel(t)
		model.focusedRow = evShareRow(t, model)
		model.params.EVShare = 0.99

		model.Update(tea.KeyMsg{Type: tea.KeyRight})

		assert.Equal(t, 1.0, model.params.EVShare)
	})

	t.Run("input rows ignore left and right", func(t *testing.T) {
		model := newSampleModel(t)
		model.focusedRow = 0

		model.Update(tea.KeyMsg{Type: tea.KeyRight})

		assert.Equal(t, 10.0, model.inputs.Cars)
		assert.InDelta(t, 0.30, model.params.EVShare, 1e-9)
	})
}

// TestDashboardModel_Presets tests the sample and reset shortcuts.
func TestDashboardModel_Presets(t *testing.T) {
	t.Run("s loads the sample dataset", func(t *testing.T) {
		model := newZeroModel(t)

		newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
		updated := newModel.(*DashboardModel)
		assert.InDelta(t, 4285.2, updated.report.BaselineTotal, 1e-6)
		assert.Equal(t, 10.0, updated.inputs.Cars)
	})

	t.Run("r resets to zero", func(t *testing.T) {
		model := newSampleModel(t)

		newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
		updated := newModel.(*DashboardModel)
		assert.Zero(t, updated.report.BaselineTotal)
		assert.Zero(t, updated.inputs.Cars)
		assert.Zero(t, updated.params.EVShare)
	})
}

// TestDashboardModel_WindowSize tests resize handling.
func TestDashboardModel_WindowSize(t *testing.T) {
	model := newSampleModel(t)

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	updated := newModel.(*DashboardModel)
	assert.Equal(t, 120, updated.width)
	assert.Equal(t, 40, updated.height)
}

// TestDashboardModel_View tests the rendered dashboard content.
func TestDashboardModel_View(t *testing.T) {
	model := newSampleModel(t)
	view := model.View()

	assert.Contains(t, view, "EmiMeter")
	assert.Contains(t, view, "FLEET")
	assert.Contains(t, view, "OPTIMIZATION LEVERS")
	assert.Contains(t, view, "Cars")
	assert.Contains(t, view, "EV share")
	assert.Contains(t, view, "4,285.20")
	assert.Contains(t, view, "3,466.04")
	assert.Contains(t, view, "q: Quit")
}
