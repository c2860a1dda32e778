package catterm

import (
	"fmt"
	"os"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

// Line is an open serial line configured for raw 8-bit transfer.
// Reads and writes are blocking; pair them with poll as Relay does.
type Line struct {
	fd        int
	file      *os.File
	rate      int
	closeOnce sync.Once
}

// OpenLine opens device and configures it for raw 8N1 operation at rate bps.
// Modem control lines are ignored and any pending input or output is discarded.
func OpenLine(device string, rate int) (*Line, error) {
	speed := baudToUnix(rate)
	if speed == unix.B0 {
		return nil, fmt.Errorf("unsupported speed %d", rate)
	}

	fd, err := syscall.Open(device, syscall.O_RDWR|syscall.O_NOCTTY|syscall.O_NONBLOCK, 0666)
	if err != nil {
		return nil, fmt.Errorf("can't open %s: %w", device, err)
	}

	termios := &unix.Termios{
		Cflag: unix.CS8 | unix.HUPCL | unix.CLOCAL | unix.CREAD | speed,
		Iflag: unix.IGNBRK | unix.IGNPAR,
	}

	// VMIN=1, VTIME=0: a read returns as soon as one byte is available
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetInt(fd, unix.TCFLSH, unix.TCIOFLUSH); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("tcflush(): %w", err)
	}
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("tcsetattr(): %w", err)
	}

	// Turn back into blocking mode now that config is done
	if err := syscall.SetNonblock(fd, false); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("fcntl(): %w", err)
	}

	return &Line{
		fd:   fd,
		file: os.NewFile(uintptr(fd), device),
		rate: rate,
	}, nil
}

// Read reads whatever the line has received, blocking until at least one byte arrives.
func (l *Line) Read(p []byte) (int, error) {
	return l.file.Read(p)
}

// Write sends p on the line.
func (l *Line) Write(p []byte) (int, error) {
	return l.file.Write(p)
}

// Fd returns the line's file descriptor.
func (l *Line) Fd() uintptr {
	return uintptr(l.fd)
}

// Name returns the device path the line was opened with.
func (l *Line) Name() string {
	return l.file.Name()
}

// BitRate returns the configured line speed.
func (l *Line) BitRate() int {
	return l.rate
}

// Close closes the line. Safe to call multiple times; subsequent calls are no-ops.
func (l *Line) Close() error {
	var err error
	l.closeOnce.Do(func() {
		err = l.file.Close()
	})
	return err
}
