package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

var stdin = bufio.NewReader(os.Stdin)

// readSecret prompts on stderr and reads a line from stdin without echo.
// Piped input is read as a plain line.
func readSecret(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := stdin.ReadString('\n')
		if err != nil && line == "" {
			return nil, fmt.Errorf("failed to read %s from stdin: %w", strings.ToLower(prompt), err)
		}
		return []byte(strings.TrimRight(line, "\r\n")), nil
	}
	_, _ = fmt.Fprintf(os.Stderr, "%s: ", prompt)
	secret, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", strings.ToLower(prompt), err)
	}
	return secret, nil
}

func readConfirmedSecret(prompt string) ([]byte, error) {
	first, err := readSecret(prompt)
	if err != nil {
		return nil, err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return first, nil
	}
	second, err := readSecret("Confirm " + strings.ToLower(prompt))
	if err != nil {
		return nil, err
	}
	if string(first) != string(second) {
		return nil, errors.New("entries don't match")
	}
	return first, nil
}
