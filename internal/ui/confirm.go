package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// ErrCancelled indicates the user aborted a prompt.
var ErrCancelled = errors.New("ui: cancelled")

// Confirm asks a yes/no question. In headless mode it returns def without
// prompting.
func Confirm(theme *Theme, hm *HeadlessManager, title, description string, def bool) (bool, error) {
	if hm.IsHeadless() {
		return def, nil
	}

	answer := def
	field := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&answer)

	form := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(theme.NoColor)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrCancelled
		}
		return false, fmt.Errorf("confirm prompt: %w", err)
	}
	return answer, nil
}
