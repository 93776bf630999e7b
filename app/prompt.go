package app

import (
	"github.com/charmbracelet/huh"
)

type staleChoice string

const (
	staleArchive  staleChoice = "archive"
	staleContinue staleChoice = "continue"
	staleDiscard  staleChoice = "discard"
)

// confirm asks a yes/no question. It is a variable so tests can answer it.
var confirm = func(title, description string) (bool, error) {
	var ok bool

	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()

	return ok, err
}

// chooseStale asks what to do with a session that has been running for too
// long.
var chooseStale = func(description string) (staleChoice, error) {
	choice := staleArchive

	err := huh.NewSelect[staleChoice]().
		Title("This session looks forgotten").
		Description(description).
		Options(
			huh.NewOption("Stop it now and save it", staleArchive),
			huh.NewOption("Keep it running", staleContinue),
			huh.NewOption("Discard it", staleDiscard),
		).
		Value(&choice).
		Run()

	return choice, err
}
