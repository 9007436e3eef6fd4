package wordgame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loaded(t *testing.T, raw string) *Session {
	t.Helper()

	s := New()
	require.NoError(t, s.Load(raw))

	return s
}

func TestLoadLetters(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		letters string
	}{
		{"basic", "cat\ndog\nact\n", "ACDGOT"},
		{"order independent", "act\ndog\ncat", "ACDGOT"},
		{"duplicates", "cat\ncat\ncat", "ACT"},
		{"whitespace", "  \n\t cat \r\n  dog\r\n\n", "ACDGOT"},
		{"mixed case", "CaT\nDoG", "ACDGOT"},
		{"byte order mark", "\ufeffcat\ndog\n", "ACDGOT"},
		{"byte order mark crlf", "\ufeffcat\r\ndog\r\n", "ACDGOT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loaded(t, tt.raw)
			assert.Equal(t, tt.letters, s.State().Letters)
		})
	}
}

func TestLoadKeepsInteriorBlankLines(t *testing.T) {
	s := loaded(t, "\n\ncat\n\n dog \n\n")

	assert.Equal(t, []string{"CAT", "", "DOG"}, s.solutions)
	assert.Equal(t, 3, s.State().Solutions)
	assert.Equal(t, 2, s.State().Words)
}

func TestLoadByteOrderMark(t *testing.T) {
	s := loaded(t, "\ufeffcat\ndog")

	assert.Equal(t, []string{"CAT", "DOG"}, s.solutions)

	res, err := s.Guess("cat")
	require.NoError(t, err)
	assert.Equal(t, "CAT", res.Word)
}

func TestLoadOnlyByteOrderMark(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Load("\ufeff\n \n"), ErrEmptySolutionList)
}

func TestLoadWordCount(t *testing.T) {
	s := loaded(t, "cat\ncat\n\ndog\nCAT")

	st := s.State()
	assert.Equal(t, 5, st.Solutions)
	assert.Equal(t, 2, st.Words)
}

func TestLoadEmpty(t *testing.T) {
	for _, raw := range []string{"", "\n", "  \n\t\n \r\n"} {
		s := New()
		assert.ErrorIs(t, s.Load(raw), ErrEmptySolutionList)
		assert.False(t, s.State().Loaded)

		_, err := s.Guess("cat")
		assert.ErrorIs(t, err, ErrNotLoaded)
	}
}

func TestFailedLoadKeepsGame(t *testing.T) {
	s := loaded(t, "cat\ndog")

	_, err := s.Guess("cat")
	require.NoError(t, err)

	before := s.State()

	require.ErrorIs(t, s.Load("\n \n"), ErrEmptySolutionList)
	assert.Equal(t, before, s.State())

	_, err = s.Guess("dog")
	assert.NoError(t, err)
}

func TestReloadResetsProgress(t *testing.T) {
	s := loaded(t, "cat\ndog")

	_, err := s.Guess("cat")
	require.NoError(t, err)

	require.NoError(t, s.Load("bee\nbe"))

	st := s.State()
	assert.Equal(t, "BE", st.Letters)
	assert.Empty(t, st.Found)
	assert.Zero(t, st.Score)

	_, err = s.Guess("cat")
	var letterErr *LetterNotAllowedError
	require.ErrorAs(t, err, &letterErr)
	assert.Equal(t, 'C', letterErr.Letter)
}

func TestGuessOrder(t *testing.T) {
	s := loaded(t, "cat\ndog\nact\ncoat")

	_, err := s.Guess("cat")
	require.NoError(t, err)

	tests := []struct {
		name  string
		guess string
		err   error
		char  rune
	}{
		{"too short beats bad letter", "z", ErrTooShort, 0},
		{"first bad letter wins", "xyz", nil, 'X'},
		{"bad letter after good ones", "caz", nil, 'Z'},
		{"bad letter beats not a solution", "tacz", nil, 'Z'},
		{"not a solution", "cot", ErrNotASolution, 0},
		{"already found", "CAT", ErrAlreadyFound, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Guess(tt.guess)
			assert.False(t, res.Accepted())

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}

			var letterErr *LetterNotAllowedError
			require.ErrorAs(t, err, &letterErr)
			assert.Equal(t, tt.char, letterErr.Letter)
		})
	}

	assert.Equal(t, 1, s.State().Score)
	assert.Equal(t, []string{"CAT"}, s.State().Found)
}

func TestGuessEmpty(t *testing.T) {
	s := loaded(t, "cat")

	res, err := s.Guess("")
	assert.NoError(t, err)
	assert.False(t, res.Accepted())
	assert.Zero(t, s.State().Score)
}

func TestGuessBeforeLoad(t *testing.T) {
	s := New()

	_, err := s.Guess("")
	assert.ErrorIs(t, err, ErrNotLoaded)

	st := s.State()
	assert.False(t, st.Loaded)
	assert.Empty(t, st.Letters)
	assert.Empty(t, st.FoundWords())
	assert.Zero(t, st.Score)
}

func TestGuessCaseInsensitive(t *testing.T) {
	s := loaded(t, "cat\ndog")

	res, err := s.Guess("Cat")
	require.NoError(t, err)
	assert.Equal(t, "CAT", res.Word)

	for _, g := range []string{"cat", "CAT", "cAt"} {
		_, err := s.Guess(g)
		assert.ErrorIs(t, err, ErrAlreadyFound)
	}

	assert.Equal(t, 1, s.State().Score)
}

func TestScoreMatchesFoundWords(t *testing.T) {
	s := loaded(t, "cat\ndog\nact\ntag\ngod\n")

	for _, g := range []string{"cat", "a", "dog", "dog", "cot", "act", "", "xx", "TAG", "tag", "god"} {
		_, _ = s.Guess(g)

		st := s.State()
		assert.Equal(t, len(st.Found), st.Score)
	}

	assert.Equal(t, []string{"CAT", "DOG", "ACT", "TAG", "GOD"}, s.State().Found)
}

func TestScenario(t *testing.T) {
	s := New()
	require.NoError(t, s.Load("cat\ndog\nact\n"))
	assert.Equal(t, "ACDGOT", s.State().Letters)

	res, err := s.Guess("cat")
	require.NoError(t, err)
	assert.Equal(t, Result{Word: "CAT", Score: 1, Found: []string{"CAT"}}, res)

	_, err = s.Guess("cot")
	assert.ErrorIs(t, err, ErrNotASolution)
	assert.Equal(t, 1, s.State().Score)

	_, err = s.Guess("a")
	assert.ErrorIs(t, err, ErrTooShort)

	res, err = s.Guess("dog")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, []string{"CAT", "DOG"}, res.Found)

	_, err = s.Guess("dog")
	assert.ErrorIs(t, err, ErrAlreadyFound)

	st := s.State()
	assert.Equal(t, 2, st.Score)
	assert.Equal(t, "CAT, DOG", st.FoundWords())
}

func TestStateIsCopy(t *testing.T) {
	s := loaded(t, "cat\ndog")

	res, err := s.Guess("cat")
	require.NoError(t, err)

	st := s.State()
	st.Found[0] = "XXX"
	res.Found[0] = "YYY"

	assert.Equal(t, []string{"CAT"}, s.State().Found)
}

func TestUnicodeLetters(t *testing.T) {
	s := loaded(t, "öl\nlö")

	assert.Equal(t, "LÖ", s.State().Letters)

	res, err := s.Guess("Öl")
	require.NoError(t, err)
	assert.Equal(t, "ÖL", res.Word)
}
