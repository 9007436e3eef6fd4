/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Seednode/wordbox/games/wordgame"
)

const quitCommand = "quit"

// readLine returns the next line without its line ending. Lines of any length
// are accepted. The final line need not end in a newline; io.EOF is returned
// only once the input is exhausted.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	return line, err
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal with a word list read from disk.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// play runs a game over a line-oriented terminal. It asks for the word list
// path, then treats each line as a guess until "quit" or end of input.
func play(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	session := wordgame.New()

	fmt.Fprintln(out, "Welcome to the Word Guessing Game!")
	fmt.Fprint(out, "Enter the path to your word list file: ")

	path, err := readLine(reader)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	text, err := readWordList(path)
	if err != nil {
		return fmt.Errorf("error loading word list: %w", err)
	}

	if err := session.Load(text); err != nil {
		return fmt.Errorf("error loading word list %q: %w", strings.TrimSpace(path), err)
	}

	fmt.Fprintln(out, "Word list loaded successfully!")
	fmt.Fprintf(out, "Letters: %s\n", session.State().Letters)
	fmt.Fprintf(out, "Enter a word (or %q to exit):\n", quitCommand)

	for {
		line, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if strings.EqualFold(line, quitCommand) {
			break
		}

		res, err := session.Guess(line)
		if n, ok := wordgame.Notify(res, err); ok {
			fmt.Fprintln(out, n.Message)
		}
		if res.Accepted() {
			fmt.Fprintf(out, "Score: %d\n", res.Score)
			fmt.Fprintf(out, "Found Words: %s\n", strings.Join(res.Found, ", "))
		}

		fmt.Fprintf(out, "Enter another word (or %q to exit):\n", quitCommand)
	}

	st := session.State()
	fmt.Fprintf(out, "Final Score: %d\n", st.Score)
	fmt.Fprintf(out, "Found Words: %s\n", st.FoundWords())

	return nil
}
