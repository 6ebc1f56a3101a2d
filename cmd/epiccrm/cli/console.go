package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Console reads lines and passwords from a single input stream.
type Console struct {
	reader *bufio.Reader
	out    io.Writer
	fd     int
	tty    bool
}

// NewConsole wraps in and out. Passwords are read without echo when in is a terminal.
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{reader: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.fd = int(f.Fd())
		c.tty = true
	}
	return c
}

// ReadLine prints prompt and returns the next trimmed line. io.EOF is returned once input ends.
func (c *Console) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(c.out, prompt)
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadPassword prints prompt and reads a secret.
func (c *Console) ReadPassword(prompt string) (string, error) {
	if !c.tty {
		return c.ReadLine(prompt)
	}
	fmt.Fprint(c.out, prompt)
	b, err := term.ReadPassword(c.fd)
	fmt.Fprintln(c.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// NewPassword asks for a password twice and returns it when both entries match.
func (c *Console) NewPassword(prompt string) (string, error) {
	first, err := c.ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	second, err := c.ReadPassword("Confirm password: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errPasswordMismatch
	}
	return first, nil
}
