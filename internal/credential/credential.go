// Package credential supplies server passwords that are not stored in the
// configuration document.
package credential

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/thoreinstein/gertty/internal/errors"
)

// Provider returns the password for username on the server at url.
type Provider interface {
	Password(ctx context.Context, url, username string) (string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, url, username string) (string, error)

// Password calls f.
func (f ProviderFunc) Password(ctx context.Context, url, username string) (string, error) {
	return f(ctx, url, username)
}

// Static returns a Provider that always answers password.
func Static(password string) Provider {
	return ProviderFunc(func(context.Context, string, string) (string, error) {
		return password, nil
	})
}

// ErrNoTerminal is returned when a password is needed but there is no
// terminal to ask on.
var ErrNoTerminal = errors.New("no terminal available to read password")

// Terminal prompts for the password on a terminal with echo disabled.
// When In is not a terminal a single line is read from it instead, so
// passwords can be piped in.
type Terminal struct {
	In  *os.File
	Out io.Writer
}

// NewTerminal returns a Terminal reading from stdin and prompting on stderr.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr}
}

// Password implements Provider.
func (t *Terminal) Password(ctx context.Context, url, username string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if t.In == nil {
		return "", ErrNoTerminal
	}

	fmt.Fprintf(t.Out, "Password for %s (%s): ", url, username)

	fd := int(t.In.Fd())
	if term.IsTerminal(fd) {
		text, err := term.ReadPassword(fd)
		fmt.Fprintln(t.Out)
		if err != nil {
			return "", errors.Wrap(err, "reading password")
		}
		return string(text), nil
	}

	line, err := bufio.NewReader(t.In).ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", errors.Wrap(err, "reading password")
		}
		if line == "" {
			return "", ErrNoTerminal
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
