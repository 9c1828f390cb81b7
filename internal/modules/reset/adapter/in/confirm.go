package in

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"
)

// Prompter asks on the terminal with a huh confirm field.
type Prompter struct{}

func (Prompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// Assume answers every prompt with a fixed value, for --yes.
type Assume bool

func (a Assume) Confirm(context.Context, string) (bool, error) {
	return bool(a), nil
}
