package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// errAborted is returned when the user declines a confirmation.
var errAborted = errors.New("aborted")

// prompter asks questions on out and reads the answers from in, one per line.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	// fd is the terminal input descriptor, or -1 when input is not a terminal
	fd int
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// readLine returns the next line without its line ending. End of input
// counts as an empty answer.
func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ask prompts for a value, returning def for an empty answer.
func (p *prompter) ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		return def, nil
	}
	return answer, nil
}

// require prompts until check accepts a non-empty answer.
func (p *prompter) require(label string, check func(string) error) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", label)
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		answer := strings.TrimSpace(line)
		if answer != "" {
			checkErr := check(answer)
			if checkErr == nil {
				return answer, nil
			}
			fmt.Fprintf(p.out, "Error: %v\n", checkErr)
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("no value given for %q", label)
		}
	}
}

// secret is ask with hidden input when reading from a terminal.
func (p *prompter) secret(label, def string) (string, error) {
	if p.fd < 0 {
		return p.ask(label, def)
	}
	fmt.Fprintf(p.out, "%s [%s] (input will be hidden): ", label, def)
	value, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out) // Add a newline after the hidden input
	if err != nil {
		return "", fmt.Errorf("failed to read %s from terminal: %w", strings.ToLower(label), err)
	}
	if len(value) == 0 {
		return def, nil
	}
	return string(value), nil
}

// confirm asks a yes or no question, returning def for an empty answer.
func (p *prompter) confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]: ", label, hint)
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("failed to read answer: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return def, nil
		}
		fmt.Fprintln(p.out, "Error: invalid input")
	}
}
