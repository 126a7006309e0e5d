package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/dyike/indexstats/internal/table"
)

// PromptForAction asks which dashboard action to run next
func PromptForAction() (MenuAction, error) {
	options := make([]string, len(menuActions))
	for i, a := range menuActions {
		options[i] = string(a)
	}

	var choice string
	prompt := &survey.Select{
		Message:  "What would you like to do?",
		Options:  options,
		PageSize: len(options),
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	return MenuAction(choice), nil
}

// PromptForSearch asks for the symbol filter; the current one is the default
func PromptForSearch(current string) (string, error) {
	var query string
	prompt := &survey.Input{
		Message: "Search symbols:",
		Help:    "Rows whose symbol contains this text stay visible. Leave empty to show every row.",
		Default: current,
	}
	if err := survey.AskOne(prompt, &query); err != nil {
		return "", err
	}
	return query, nil
}

// PromptForColumn asks which column to sort by
func PromptForColumn(snap table.Snapshot) (int, error) {
	options := make([]string, table.NumColumns)
	for i, name := range table.Columns {
		options[i] = fmt.Sprintf("%d. %s", i+1, name)
	}

	var idx int
	prompt := &survey.Select{
		Message: "Sort by column:",
		Options: options,
		Help:    "Each sort flips the sort direction.",
	}
	if snap.SortColumn >= 0 {
		prompt.Default = options[snap.SortColumn]
	}
	if err := survey.AskOne(prompt, &idx); err != nil {
		return 0, err
	}
	return idx, nil
}

// PromptForConfirmation asks a yes/no question
func PromptForConfirmation(message string, def bool) (bool, error) {
	var ok bool
	prompt := &survey.Confirm{
		Message: message,
		Default: def,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
