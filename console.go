package catterm

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ConsoleMode remembers a console's terminal state so it can be put back.
type ConsoleMode struct {
	fd    int
	saved *term.State
}

// SetupConsole turns off line editing, echo and signal keys on the console
// at fd, so every key including ctrl-C reaches the relay as typed.
// Output processing is left alone. If fd is not a terminal nothing is
// changed and Restore is a no-op.
func SetupConsole(fd int) (*ConsoleMode, error) {
	if !term.IsTerminal(fd) {
		return &ConsoleMode{fd: -1}, nil
	}

	saved, err := term.GetState(fd)
	if err != nil {
		return nil, fmt.Errorf("tcgetattr(console): %w", err)
	}

	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("tcgetattr(console): %w", err)
	}
	termios.Lflag &^= unix.ICANON | unix.ISIG | unix.ECHO
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		return nil, fmt.Errorf("tcsetattr(console): %w", err)
	}

	return &ConsoleMode{fd: fd, saved: saved}, nil
}

// Restore puts the console back the way SetupConsole found it.
func (c *ConsoleMode) Restore() error {
	if c == nil || c.saved == nil {
		return nil
	}
	return term.Restore(c.fd, c.saved)
}

// OpenTee creates or truncates path for a copy of the device output.
// An empty path means no tee and returns a nil file.
func OpenTee(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("can't open %s: %w", path, err)
	}
	return f, nil
}
