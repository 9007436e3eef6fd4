/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package wordgame holds the state of a single word-guessing game.
//
// A Session is loaded from a word list (one word per line). The distinct
// letters of every word form the letter set, and the player scores one point
// for each solution word they guess. Sessions do no I/O and are not safe for
// concurrent use; a front end owns one and drives it from a single goroutine.
package wordgame

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinLength is the shortest guess that will be checked against the list.
const MinLength = 2

// trim strips surrounding whitespace and any byte-order mark.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

type Session struct {
	letters   []rune
	letterSet map[rune]struct{}

	solutions   []string
	solutionSet map[string]struct{}

	found    []string
	foundSet map[string]struct{}
	score    int
}

// Result describes an accepted guess. The zero Result means nothing was
// guessed.
type Result struct {
	Word  string
	Score int
	Found []string
}

func (r Result) Accepted() bool {
	return r.Word != ""
}

// State is a point-in-time copy of a session for display.
type State struct {
	Loaded    bool
	Letters   string
	Found     []string
	Score     int
	Solutions int // entries in the list, including blanks and duplicates
	Words     int // distinct non-empty words
}

// FoundWords joins the found words in the order they were guessed.
func (s State) FoundWords() string {
	return strings.Join(s.Found, ", ")
}

func New() *Session {
	return &Session{}
}

// Load replaces the session with a new game built from raw, one word per
// line. Blank lines between words are kept as empty entries, which can never
// be guessed. If raw holds no words at all, ErrEmptySolutionList is returned
// and the current game is left as it was.
func (s *Session) Load(raw string) error {
	raw = trim(raw)
	if raw == "" {
		return ErrEmptySolutionList
	}

	lines := strings.Split(raw, "\n")

	solutions := make([]string, 0, len(lines))
	solutionSet := make(map[string]struct{}, len(lines))
	letterSet := make(map[rune]struct{})

	for _, line := range lines {
		word := strings.ToUpper(trim(line))

		solutions = append(solutions, word)
		solutionSet[word] = struct{}{}

		for _, r := range word {
			letterSet[r] = struct{}{}
		}
	}

	// Blank entries stay in the list but never count as words.
	delete(solutionSet, "")

	letters := make([]rune, 0, len(letterSet))
	for r := range letterSet {
		letters = append(letters, r)
	}
	slices.Sort(letters)

	s.letters = letters
	s.letterSet = letterSet
	s.solutions = solutions
	s.solutionSet = solutionSet
	s.found = nil
	s.foundSet = make(map[string]struct{})
	s.score = 0

	return nil
}

// Guess checks raw against the current game and records it if it is a new
// solution. Checks run in a fixed order and the first failure is returned:
// not loaded, too short, letter not allowed, not a solution, already found.
// An empty guess is ignored and returns a zero Result and a nil error.
func (s *Session) Guess(raw string) (Result, error) {
	if s.letterSet == nil {
		return Result{}, ErrNotLoaded
	}

	word := strings.ToUpper(raw)
	if word == "" {
		return Result{}, nil
	}

	if utf8.RuneCountInString(word) < MinLength {
		return Result{}, ErrTooShort
	}

	for _, r := range word {
		if _, ok := s.letterSet[r]; !ok {
			return Result{}, &LetterNotAllowedError{Letter: r}
		}
	}

	if _, ok := s.solutionSet[word]; !ok {
		return Result{}, ErrNotASolution
	}

	if _, ok := s.foundSet[word]; ok {
		return Result{}, ErrAlreadyFound
	}

	s.found = append(s.found, word)
	s.foundSet[word] = struct{}{}
	s.score++

	return Result{
		Word:  word,
		Score: s.score,
		Found: slices.Clone(s.found),
	}, nil
}

// State returns a snapshot of the session. It is safe to call before Load.
func (s *Session) State() State {
	return State{
		Loaded:    s.letterSet != nil,
		Letters:   string(s.letters),
		Found:     slices.Clone(s.found),
		Score:     s.score,
		Solutions: len(s.solutions),
		Words:     len(s.solutionSet),
	}
}
