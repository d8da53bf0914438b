// Package intro holds the onboarding wizard state machine. It knows nothing
// about terminals: a renderer maps key presses to the intent methods and
// draws whatever Step, Pending and the accessors report.
//
// Every intent is safe to call in any state. Intents that are not legal in
// the current state are ignored.
package intro

import "github.com/haleclipse/ccline/internal/logger"

// TotalSteps is the number of screens: Welcome, Nerd Font Test, Automatic
// Configuration.
const TotalSteps = 3

// FinalStep is the step that carries the configuration choice.
const FinalStep = TotalSteps - 1

// Pending is the overlay shown on top of the final step.
type Pending int

const (
	PendingNone Pending = iota
	// PendingConfigChoice waits for Yes, No or Skip.
	PendingConfigChoice
	// PendingOverwrite waits for confirmation to replace an existing entry.
	PendingOverwrite
)

func (p Pending) String() string {
	switch p {
	case PendingConfigChoice:
		return "config-choice"
	case PendingOverwrite:
		return "overwrite"
	default:
		return "none"
	}
}

// Choice answers the configuration question on the final step.
type Choice int

const (
	ChoiceYes Choice = iota
	ChoiceNo
	ChoiceSkip
)

// Configurer performs the configuration action. The controller always calls
// it with force=true because the user has already confirmed.
type Configurer interface {
	Configure(force bool) error
}

// ConfigureFunc adapts a function to Configurer.
type ConfigureFunc func(force bool) error

func (f ConfigureFunc) Configure(force bool) error { return f(force) }

// Controller is the wizard state.
type Controller struct {
	step       int
	pending    Pending
	exited     bool
	proceed    bool
	existing   bool
	configured bool
	configErr  error
	configurer Configurer
}

// New starts a wizard at step 0. existing is the snapshot of whether a
// statusLine entry is already present; it is not re-checked later.
func New(existing bool, configurer Configurer) *Controller {
	return &Controller{existing: existing, configurer: configurer}
}

// frozen reports whether navigation has ended.
func (c *Controller) frozen() bool {
	return c.exited || c.proceed
}

// Advance moves to the next step. Reaching the final step opens the
// configuration choice.
func (c *Controller) Advance() {
	if c.frozen() || c.pending != PendingNone {
		return
	}
	if c.step < FinalStep {
		c.step++
		if c.step == FinalStep {
			c.pending = PendingConfigChoice
		}
	}
}

// Retreat moves to the previous step and abandons any open overlay.
func (c *Controller) Retreat() {
	if c.frozen() || c.step == 0 {
		return
	}
	c.step--
	c.pending = PendingNone
}

// Choose answers the configuration choice.
func (c *Controller) Choose(choice Choice) {
	if c.frozen() || c.pending != PendingConfigChoice {
		return
	}
	switch choice {
	case ChoiceYes:
		if c.existing {
			c.pending = PendingOverwrite
			return
		}
		c.configure()
	case ChoiceNo, ChoiceSkip:
	default:
		return
	}
	c.proceed = true
	c.pending = PendingNone
}

// ResolveOverwrite answers the overwrite confirmation.
func (c *Controller) ResolveOverwrite(overwrite bool) {
	if c.frozen() || c.pending != PendingOverwrite {
		return
	}
	if overwrite {
		c.configure()
	}
	c.proceed = true
	c.pending = PendingNone
}

// Quit ends the wizard. An open overlay is abandoned without configuring.
func (c *Controller) Quit() {
	c.exited = true
	c.pending = PendingNone
}

// configure runs the action. A failure is recorded but does not change
// navigation.
func (c *Controller) configure() {
	if c.configurer == nil {
		return
	}
	if err := c.configurer.Configure(true); err != nil {
		logger.Error("Automatic statusLine configuration failed: %v", err)
		c.configErr = err
		return
	}
	c.configured = true
}

// Step returns the current step index.
func (c *Controller) Step() int { return c.step }

// Pending returns the open overlay.
func (c *Controller) Pending() Pending { return c.pending }

// Proceed reports whether the wizard finished and the configurator should start.
func (c *Controller) Proceed() bool { return c.proceed }

// Exited reports whether the user quit.
func (c *Controller) Exited() bool { return c.exited }

// Done reports whether the input loop should stop.
func (c *Controller) Done() bool { return c.exited || c.proceed }

// ExistingConfig returns the construction-time snapshot.
func (c *Controller) ExistingConfig() bool { return c.existing }

// Configured reports whether the configuration action ran successfully.
func (c *Controller) Configured() bool { return c.configured }

// ConfigError returns the configuration failure, if any.
func (c *Controller) ConfigError() error { return c.configErr }

// Outcome summarizes a finished wizard for the caller.
type Outcome struct {
	Exited     bool
	Proceed    bool
	Configured bool
	ConfigErr  error
}

// Outcome returns the current result.
func (c *Controller) Outcome() Outcome {
	return Outcome{
		Exited:     c.exited,
		Proceed:    c.proceed,
		Configured: c.configured,
		ConfigErr:  c.configErr,
	}
}
