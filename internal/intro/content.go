package intro

// Screen is the static content of one step.
type Screen struct {
	Title string
	// Body is markdown.
	Body string
}

var screens = [TotalSteps]Screen{
	{
		Title: "Welcome",
		Body: `# Welcome to **CCometixLine**! 🚀

A high-performance statusline tool for Claude Code.

Key features:

- Real-time Git branch and status information
- Current working directory and file details
- Multiple themes and customizable configuration
- Seamless integration with Claude Code

Press **Enter** or **→** to continue!`,
	},
	{
		Title: "Nerd Font Test",
		Body: "# Nerd Font Display Test\n\n" +
			"Can you see these icons clearly and distinctly?\n\n" +
			"- `\ue26d` ← should be a Haleclipse\n" +
			"- `\U000f024b` ← should be a folder icon\n" +
			"- `\U000f02a2` ← should be a git branch icon\n\n" +
			"Powerline separators:\n\n" +
			"- `\ue0b0` ← should be angular separators\n\n" +
			"If you see boxes (□) or question marks (?) instead of distinct icons, " +
			"we recommend installing **Maple Mono** for the best experience.",
	},
	{
		Title: "Automatic Configuration",
		Body: `# Automatic Claude Code Configuration

CCometixLine can automatically configure Claude Code for you!

This will:

- Detect your Claude Code settings file
- Add statusLine configuration automatically
- Set the correct path for ccline
- Handle platform differences (Windows/Linux/macOS)

If you already have a statusLine configured, we'll ask before overwriting it.

**Would you like to automatically configure Claude Code?**

- **Y** - Yes, configure automatically
- **N** - No, I'll configure manually
- **S** - Skip and start configurator`,
	},
}

// ScreenFor returns the content of step. Out-of-range steps get an empty
// "Intro" screen.
func ScreenFor(step int) Screen {
	if step < 0 || step >= TotalSteps {
		return Screen{Title: "Intro"}
	}
	return screens[step]
}

// OverwriteTitle and OverwriteMessage describe the overwrite overlay.
const (
	OverwriteTitle   = "Configuration Conflict"
	OverwriteMessage = "Claude Code statusLine already configured!\n\nWould you like to overwrite the existing configuration?"
)

// Hint is one key and what it does, for the help bar.
type Hint struct {
	Key  string
	Desc string
}

// Hints returns the help bar entries for the controller's state.
func (c *Controller) Hints() []Hint {
	switch {
	case c.pending == PendingOverwrite:
		return []Hint{{"Y", "Yes"}, {"N", "No"}, {"Esc", "Skip"}}
	case c.pending == PendingConfigChoice:
		return []Hint{{"Y", "Yes"}, {"N", "No"}, {"S", "Skip"}, {"Esc", "Exit"}}
	case c.step == 0:
		return []Hint{{"→/Enter", "Next"}, {"Esc", "Skip"}}
	case c.step >= FinalStep:
		return []Hint{{"←", "Back"}, {"Y/N/S", "Choose"}, {"Esc", "Exit"}}
	default:
		return []Hint{{"←", "Back"}, {"→/Enter", "Next"}, {"Esc", "Skip"}}
	}
}
