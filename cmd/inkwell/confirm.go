// ABOUTME: Interactive prompts for the CLI: yes/no confirmation and password entry.
// ABOUTME: Passwords typed at a terminal are read with echo off.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// confirm asks prompt on out and reads one answer from in.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func readAll(in io.Reader) (string, error) {
	data, err := io.ReadAll(in)
	return string(data), err
}

// readLine prompts for a single line, e.g. a password not given as a flag.
func readLine(in io.Reader, out io.Writer, prompt string) string {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

// passwordPrompt reads secrets from in. A terminal is read without echo;
// piped input is read line by line through one shared buffer.
type passwordPrompt struct {
	in  io.Reader
	out io.Writer
	buf *bufio.Reader
}

func newPasswordPrompt(in io.Reader, out io.Writer) *passwordPrompt {
	return &passwordPrompt{in: in, out: out}
}

func (p *passwordPrompt) read(prompt string) (string, error) {
	if f, ok := p.in.(interface{ Fd() uintptr }); ok && isTerminal(int(f.Fd())) {
		fmt.Fprint(p.out, prompt)
		secret, err := readPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(secret), nil
	}
	if p.buf == nil {
		p.buf = bufio.NewReader(p.in)
	}
	return readLine(p.buf, p.out, prompt), nil
}
