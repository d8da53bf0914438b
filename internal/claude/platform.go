package claude

import (
	"path"
	"runtime"
	"strings"
)

// Family is the OS family that decides the settings path and command conventions.
type Family int

const (
	Unix Family = iota
	Windows
)

func (f Family) String() string {
	if f == Windows {
		return "windows"
	}
	return "unix"
}

// FamilyFor maps a GOOS value to its family.
func FamilyFor(goos string) Family {
	if goos == "windows" {
		return Windows
	}
	return Unix
}

// CurrentFamily returns the family of the running binary.
func CurrentFamily() Family {
	return FamilyFor(runtime.GOOS)
}

// Paths holds the per-platform locations derived from a home directory.
type Paths struct {
	// Settings is the host application's settings.json.
	Settings string
	// Command is what the statusLine entry invokes.
	Command string
}

// windowsCommand is expanded by the host shell, so it does not embed the
// home directory.
const windowsCommand = `%USERPROFILE%\.claude\ccline\ccline.exe`

// PathsFor returns the conventions for family rooted at home. It uses the
// family's separator rather than the host's.
func PathsFor(family Family, home string) Paths {
	if family == Windows {
		root := strings.TrimRight(home, `\/`)
		return Paths{
			Settings: strings.Join([]string{root, "AppData", "Roaming", "Claude", "settings.json"}, `\`),
			Command:  windowsCommand,
		}
	}
	return Paths{
		Settings: path.Join(home, ".config", "claude", "settings.json"),
		Command:  path.Join(home, ".claude", "ccline", "ccline"),
	}
}
