package cli

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user declines a confirmation
var ErrAborted = errors.New("aborted")

// PromptSecret asks for a hidden value unless one was passed on the command line
func (c *Context) PromptSecret(title string, value *string) error {
	if *value != "" {
		return nil
	}
	return huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(value).
		Run()
}

// PromptText asks for a value unless one was passed on the command line
func (c *Context) PromptText(title string, value *string) error {
	if *value != "" {
		return nil
	}
	return huh.NewInput().
		Title(title).
		Value(value).
		Run()
}

// Confirm asks a yes/no question. yes skips the prompt.
func (c *Context) Confirm(title string, yes bool) error {
	if yes {
		return nil
	}
	ok := false
	if err := huh.NewConfirm().Title(title).Affirmative("Delete").Negative("Cancel").Value(&ok).Run(); err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}
	return nil
}
