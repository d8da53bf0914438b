package claude

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// OverwritePrompt is shown by LinePrompter.
const OverwritePrompt = "Claude Code statusLine is already configured. Overwrite? (y/N): "

// LinePrompter confirms an overwrite with a single blocking line read.
// Only "y" or "yes" (any case) confirm; anything else, EOF included, declines.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p LinePrompter) ConfirmOverwrite(string) (bool, error) {
	if _, err := fmt.Fprint(p.Out, OverwritePrompt); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return IsYes(line), nil
}

// IsYes reports whether answer is an affirmative y/yes.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
