// Package state persists small bits of ccline state between runs.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/haleclipse/ccline/internal/logger"
)

// FileName is the intro state file inside the state directory.
const FileName = "intro-state.json"

// IntroState records how the last onboarding wizard ended.
type IntroState struct {
	// Completed is set once the user reaches the end of the wizard.
	Completed bool `json:"completed"`
	// Configured is set when the wizard wrote the statusLine entry.
	Configured bool `json:"configured"`
}

// Path returns the intro state file for stateDir.
func Path(stateDir string) string {
	return filepath.Join(stateDir, FileName)
}

// Load reads the intro state from stateDir.
// Returns the zero state if the file doesn't exist or can't be parsed.
func Load(stateDir string) *IntroState {
	path := Path(stateDir)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &IntroState{}
	}
	if err != nil {
		logger.Warn("Failed to read intro state file: %v", err)
		return &IntroState{}
	}

	var s IntroState
	if err := json.Unmarshal(data, &s); err != nil {
		logger.Warn("Failed to parse intro state %s: %v", path, err)
		return &IntroState{}
	}
	return &s
}

// Save writes s to stateDir, creating the directory if needed.
func Save(stateDir string, s *IntroState) error {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling intro state: %w", err)
	}

	path := Path(stateDir)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing intro state file: %w", err)
	}

	logger.Debug("Intro state saved to %s", path)
	return nil
}

// Record marks the intro as completed when it ended with proceed and
// remembers whether configuration succeeded. An exited wizard leaves the
// state untouched so the intro shows again next time.
func Record(stateDir string, proceed, configured bool) error {
	if !proceed {
		return nil
	}
	s := Load(stateDir)
	s.Completed = true
	s.Configured = s.Configured || configured
	return Save(stateDir, s)
}
