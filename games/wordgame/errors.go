/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package wordgame

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySolutionList = errors.New("word list contains no words")
	ErrNotLoaded         = errors.New("no word list loaded")
	ErrTooShort          = errors.New("word is too short")
	ErrNotASolution      = errors.New("word is not in the solution list")
	ErrAlreadyFound      = errors.New("word was already found")
)

// LetterNotAllowedError reports the first letter of a guess that is not in
// the letter set.
type LetterNotAllowedError struct {
	Letter rune
}

func (e *LetterNotAllowedError) Error() string {
	return fmt.Sprintf("letter %q is not in the letter set", e.Letter)
}
