/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package wordgame

import (
	"errors"
	"fmt"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a short message for the player about the outcome of a
// load or a guess.
type Notification struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Notify describes the outcome of Load or Guess. It returns false when there
// is nothing to tell the player, which is the case for an empty guess.
func Notify(res Result, err error) (Notification, bool) {
	if err == nil {
		if !res.Accepted() {
			return Notification{}, false
		}

		return Notification{
			Severity: SeveritySuccess,
			Message:  fmt.Sprintf("Great! You found %q", res.Word),
		}, true
	}

	var letterErr *LetterNotAllowedError

	switch {
	case errors.Is(err, ErrAlreadyFound):
		return Notification{SeverityWarning, "You already found this word. Try another one."}, true
	case errors.Is(err, ErrEmptySolutionList):
		return Notification{SeverityError, "The file is empty or in an incorrect format."}, true
	case errors.Is(err, ErrNotLoaded):
		return Notification{SeverityError, "Please upload a word list file first."}, true
	case errors.Is(err, ErrTooShort):
		return Notification{SeverityError, fmt.Sprintf("The word must be at least %d letters long.", MinLength)}, true
	case errors.As(err, &letterErr):
		return Notification{SeverityError, fmt.Sprintf("The letter %q is not in the given letters.", string(letterErr.Letter))}, true
	case errors.Is(err, ErrNotASolution):
		return Notification{SeverityError, "This word is not in the solution list."}, true
	default:
		return Notification{SeverityError, err.Error()}, true
	}
}
