package mini

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// errQuit is returned by a prompter when the user interrupts.
var errQuit = errors.New("quit")

type prompter interface {
	// Select returns the index of the chosen option.
	Select(message string, options []string) (int, error)

	Input(message string, suggest func(string) []string, validate func(string) error) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Select(message string, options []string) (int, error) {
	prompt := survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 15,
	}

	var response int
	err := survey.AskOne(&prompt, &response)
	return response, translate(err)
}

func (surveyPrompter) Input(message string, suggest func(string) []string, validate func(string) error) (string, error) {
	prompt := survey.Input{
		Message: message,
		Suggest: suggest,
	}

	var opts []survey.AskOpt
	if validate != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return validate(s)
		}))
	}

	var response string
	err := survey.AskOne(&prompt, &response, opts...)
	return response, translate(err)
}

func translate(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errQuit
	}
	return err
}
