package utils

import (
	"errors"
	"fmt"

	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user cancels a prompt
var ErrAborted = errors.New("aborted")

// SelectPrompt runs prompt and returns the selected item
func SelectPrompt(prompt *promptui.Select) (string, error) {
	_, res, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrAborted, err)
	}
	return res, nil
}

// StringPrompt runs prompt and returns the entered text
func StringPrompt(prompt *promptui.Prompt) (string, error) {
	res, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrAborted, err)
	}
	return res, nil
}

// Confirm asks a yes/no question that defaults to no
func Confirm(question string) bool {
	input := confirmation.New(question, confirmation.No)
	ok, err := input.RunPrompt()
	return ok && err == nil
}
