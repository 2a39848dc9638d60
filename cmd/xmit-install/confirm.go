package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// confirm renders a yes/no prompt on stderr. Aborting the prompt counts as no.
func confirm(title string) (bool, error) {
	value := false
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(&value),
		),
	)
	form.WithKeyMap(km)
	form.WithProgramOptions(tea.WithOutput(os.Stderr))

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return value, nil
}
