package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// lineInput reads commands and secrets from one stream. On a terminal
// secrets are read without echo.
type lineInput struct {
	file   *os.File
	reader *bufio.Reader
}

func newLineInput(in io.Reader) *lineInput {
	li := &lineInput{reader: bufio.NewReader(in)}
	if f, ok := in.(*os.File); ok {
		li.file = f
	}
	return li
}

func (l *lineInput) isTerminal() bool {
	return l.file != nil && term.IsTerminal(int(l.file.Fd()))
}

// readLine returns the next line without its line ending. io.EOF is
// returned only when nothing was read.
func (l *lineInput) readLine() (string, error) {
	line, err := l.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readSecret prompts on out and reads one line.
func (l *lineInput) readSecret(out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	if l.isTerminal() {
		b, err := term.ReadPassword(int(l.file.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read passphrase: %w", err)
		}
		return string(b), nil
	}

	s, err := l.readLine()
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	return s, nil
}
