// Package introwizard renders the onboarding wizard with Bubbletea. All state
// lives in intro.Controller; this package only maps keys to intents and draws.
package introwizard

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/haleclipse/ccline/internal/intro"
	"github.com/haleclipse/ccline/internal/logger"
	"github.com/haleclipse/ccline/internal/tui/theme"
)

// Panel layout constants
const (
	maxPanelWidth = 84
	panelPadding  = 2 // Horizontal padding on each side
	panelBorder   = 1 // Border width on each side
	// Lines used by the panel around the body: border, padding, header, hint bar.
	panelChromeHeight = 2 + 2 + 2 + 2
	minBodyHeight     = 3
)

// WizardModel is the Bubbletea model for the onboarding wizard.
type WizardModel struct {
	ctrl     *intro.Controller
	keys     KeyMap
	viewport viewport.Model
	width    int
	height   int

	// Step and width the viewport content was rendered for.
	renderedStep  int
	renderedWidth int
}

// New creates a wizard model driving ctrl.
func New(ctrl *intro.Controller) *WizardModel {
	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(10),
	)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &WizardModel{
		ctrl:         ctrl,
		keys:         DefaultKeyMap(),
		viewport:     vp,
		renderedStep: -1,
	}
}

// Run shows the wizard until the controller is done and returns its outcome.
func Run(ctrl *intro.Controller, opts ...tea.ProgramOption) (intro.Outcome, error) {
	m := New(ctrl)
	p := tea.NewProgram(m, opts...)

	finalModel, err := p.Run()
	if err != nil {
		return ctrl.Outcome(), fmt.Errorf("intro wizard failed: %w", err)
	}

	wizModel, ok := finalModel.(*WizardModel)
	if !ok {
		return ctrl.Outcome(), fmt.Errorf("unexpected model type")
	}
	return wizModel.ctrl.Outcome(), nil
}

// Controller returns the wizard state.
func (m *WizardModel) Controller() *intro.Controller {
	return m.ctrl
}

// Init initializes the wizard model.
func (m *WizardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the wizard.
func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshBody()
		return m, nil

	case tea.KeyPressMsg:
		if !m.handleKey(msg) {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		if m.ctrl.Done() {
			logger.Debug("Intro finished: proceed=%v exited=%v", m.ctrl.Proceed(), m.ctrl.Exited())
			return m, tea.Quit
		}
		m.refreshBody()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKey maps a key to a controller intent. It reports false for keys
// the wizard does not use.
func (m *WizardModel) handleKey(msg tea.KeyPressMsg) bool {
	c := m.ctrl
	pending := c.Pending()

	switch {
	case key.Matches(msg, m.keys.Interrupt):
		c.Quit()
	case key.Matches(msg, m.keys.Exit):
		if pending == intro.PendingOverwrite {
			c.ResolveOverwrite(false)
		} else {
			c.Quit()
		}
	case key.Matches(msg, m.keys.Yes):
		switch pending {
		case intro.PendingOverwrite:
			c.ResolveOverwrite(true)
		case intro.PendingConfigChoice:
			c.Choose(intro.ChoiceYes)
		}
	case key.Matches(msg, m.keys.No):
		switch pending {
		case intro.PendingOverwrite:
			c.ResolveOverwrite(false)
		case intro.PendingConfigChoice:
			c.Choose(intro.ChoiceNo)
		}
	case key.Matches(msg, m.keys.Skip):
		if pending == intro.PendingConfigChoice {
			c.Choose(intro.ChoiceSkip)
		}
	case key.Matches(msg, m.keys.Next):
		if pending == intro.PendingNone {
			c.Advance()
		}
	case key.Matches(msg, m.keys.Back):
		if pending != intro.PendingOverwrite {
			c.Retreat()
		}
	default:
		return false
	}
	return true
}

// bodyWidth is the text width inside the panel.
func (m *WizardModel) bodyWidth() int {
	w := m.width - 4
	if w > maxPanelWidth {
		w = maxPanelWidth
	}
	w -= panelPadding*2 + panelBorder*2
	if w < 20 {
		w = 20
	}
	return w
}

// refreshBody re-renders the step markdown when the step or width changed and
// sizes the viewport to fit it.
func (m *WizardModel) refreshBody() {
	if m.width == 0 || m.height == 0 {
		return
	}
	step := m.ctrl.Step()
	width := m.bodyWidth()
	if step != m.renderedStep || width != m.renderedWidth {
		m.viewport.SetWidth(width)
		m.viewport.SetContent(renderMarkdown(intro.ScreenFor(step).Body, width))
		m.viewport.GotoTop()
		m.renderedStep = step
		m.renderedWidth = width
	}

	height := m.height - panelChromeHeight - 2
	if lines := m.viewport.TotalLineCount(); lines < height {
		height = lines
	}
	if height < minBodyHeight {
		height = minBodyHeight
	}
	m.viewport.SetHeight(height)
}

// Render returns the wizard panel, or the overwrite confirmation while it
// is open.
func (m *WizardModel) Render() string {
	if m.ctrl.Pending() == intro.PendingOverwrite {
		return lipgloss.JoinVertical(
			lipgloss.Center,
			RenderConfirmationModal(intro.OverwriteTitle, intro.OverwriteMessage),
			"",
			renderHintBar(m.ctrl.Hints()),
		)
	}

	s := theme.Current().S()
	step := m.ctrl.Step()

	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.Title.Render(intro.ScreenFor(step).Title),
		"  ",
		s.Muted.Render(fmt.Sprintf("%d/%d", step+1, intro.TotalSteps)),
		"  ",
		renderProgress(step, intro.TotalSteps),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		m.viewport.View(),
		"",
		renderHintBar(m.ctrl.Hints()),
	)
	return s.Panel.Render(content)
}

// placed returns Render centered in the terminal area.
func (m *WizardModel) placed() string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.Render(),
	)
}

// View renders the wizard centered on the screen.
func (m *WizardModel) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 {
		// Not ready to render
		view.Content = lipgloss.NewLayer("")
		return view
	}

	centered := m.placed()

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}
