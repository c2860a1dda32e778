package catterm

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

var (
	// ErrQuit is returned by Run when the escape byte is read from the console.
	ErrQuit = errors.New("exit character received")

	// ErrEndOfInput is wrapped in the error Run returns when the device reads zero bytes.
	ErrEndOfInput = errors.New("end of input")

	// ErrClosed is returned by Run after Close.
	ErrClosed = errors.New("relay closed")
)

// FdReader is a readable endpoint that can be polled.
type FdReader interface {
	io.Reader
	Fd() uintptr
}

// FdWriter is a writable endpoint that can be polled.
type FdWriter interface {
	io.Writer
	Fd() uintptr
}

// FdReadWriter is a bidirectional endpoint that can be polled.
type FdReadWriter interface {
	io.ReadWriter
	Fd() uintptr
}

// Endpoints are the already opened handles a Relay moves bytes between.
// *os.File and *Line satisfy the interfaces.
type Endpoints struct {
	ConsoleIn  FdReader
	ConsoleOut FdWriter
	Device     FdReadWriter

	// Tee, when set, receives a copy of everything read from the device.
	// Its write errors are ignored.
	Tee io.Writer
}

// Relay copies bytes between a console and a device until the escape byte
// is typed, an endpoint fails, or Close is called.
//
// Each direction holds at most one batch: a source is not read again until
// everything previously read from it has been written out.
type Relay struct {
	cfg Config
	ep  Endpoints

	conIn  int
	conOut int
	dev    int

	con2dev streamBuffer
	dev2con streamBuffer
	nl      *newlineTranslator
	pace    *pacer
	polls   pollSet

	closeOnce sync.Once
	started   atomic.Bool // Run owns pipeR once set
	pipeR     int         // self-pipe read fd
	pipeW     int         // self-pipe write fd
}

// New builds a relay over ep. cfg.Delay must already be resolved.
func New(cfg Config, ep Endpoints) (*Relay, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ep.ConsoleIn == nil || ep.ConsoleOut == nil || ep.Device == nil {
		return nil, errors.New("console and device endpoints are required")
	}

	// Create self-pipe for killability
	pipeFds := make([]int, 2)
	if err := unix.Pipe(pipeFds); err != nil {
		return nil, fmt.Errorf("pipe: %w", err)
	}

	return &Relay{
		cfg:    cfg,
		ep:     ep,
		conIn:  int(ep.ConsoleIn.Fd()),
		conOut: int(ep.ConsoleOut.Fd()),
		dev:    int(ep.Device.Fd()),
		nl:     newNewlineTranslator(cfg.Newline),
		pace:   newPacer(cfg.Delay),
		pipeR:  pipeFds[0],
		pipeW:  pipeFds[1],
	}, nil
}

// Run relays until the session ends. It returns ErrQuit when the escape
// byte is read, ErrClosed after Close, and otherwise the first I/O error,
// naming the failed operation. Buffered bytes are not flushed on return.
// Run must be called at most once; later calls, and a call after Close,
// return ErrClosed without relaying.
func (r *Relay) Run() error {
	if !r.started.CompareAndSwap(false, true) {
		return ErrClosed
	}
	defer unix.Close(r.pipeR)
	defer r.Close()

	for {
		readCon := r.con2dev.empty()
		readDev := r.dev2con.empty()

		r.polls.reset()
		if readCon {
			r.polls.want(r.conIn, unix.POLLIN)
		} else {
			r.polls.want(r.dev, unix.POLLOUT)
		}
		if readDev {
			r.polls.want(r.dev, unix.POLLIN)
		} else {
			r.polls.want(r.conOut, unix.POLLOUT)
		}
		r.polls.want(r.pipeR, unix.POLLIN)

		// Interrupted or empty waits are simply retried
		if n, err := r.polls.wait(); err != nil || n <= 0 {
			continue
		}

		if r.polls.ready(r.pipeR, unix.POLLIN) {
			return ErrClosed
		}

		// Device input goes first so the tee and the filter see it
		// before anything is replayed to the console.
		if readDev && r.polls.ready(r.dev, unix.POLLIN) {
			if err := r.readDevice(); err != nil {
				return err
			}
		}
		if readCon && r.polls.ready(r.conIn, unix.POLLIN) {
			if err := r.readConsole(); err != nil {
				return err
			}
		}
		if !readCon && r.polls.ready(r.dev, unix.POLLOUT) {
			if err := r.writeDevice(); err != nil {
				return err
			}
		}
		if !readDev && r.polls.ready(r.conOut, unix.POLLOUT) {
			if err := r.writeConsole(); err != nil {
				return err
			}
		}
	}
}

func (r *Relay) readDevice() error {
	buf := r.dev2con.space()
	n, err := r.ep.Device.Read(buf)
	if err == io.EOF || (err == nil && n == 0) {
		return fmt.Errorf("read(tty): %w", ErrEndOfInput)
	}
	if err != nil {
		return fmt.Errorf("read(tty): %w", err)
	}

	if r.ep.Tee != nil {
		r.ep.Tee.Write(buf[:n])
	}
	if r.cfg.SuppressControls {
		SuppressControls(buf[:n])
	}
	r.dev2con.fill(n)
	return nil
}

func (r *Relay) readConsole() error {
	buf := r.con2dev.space()
	n, err := r.ep.ConsoleIn.Read(buf)
	if err == io.EOF {
		// an empty batch, not the end of the session
		n, err = 0, nil
	}
	if err != nil {
		return fmt.Errorf("read(console): %w", err)
	}

	// The whole batch goes, including what was typed before the escape byte.
	if containsEscape(buf[:n], r.cfg.EscapeByte) {
		return ErrQuit
	}
	r.con2dev.fill(n)
	return nil
}

func (r *Relay) writeDevice() error {
	out := r.pace.limit(r.nl.chunk(&r.con2dev))
	n, err := r.ep.Device.Write(out)
	if err != nil {
		return fmt.Errorf("write(tty): %w", err)
	}
	r.nl.consume(&r.con2dev, n)
	r.pace.pause()
	return nil
}

func (r *Relay) writeConsole() error {
	n, err := r.ep.ConsoleOut.Write(r.dev2con.pending())
	if err != nil {
		return fmt.Errorf("write(console): %w", err)
	}
	r.dev2con.advance(n)
	return nil
}

// Close makes a running or future Run return ErrClosed and releases the
// self-pipe. Safe to call multiple times; subsequent calls are no-ops.
func (r *Relay) Close() error {
	var err error
	r.closeOnce.Do(func() {
		// Closing the write end wakes poll on the read end
		err = unix.Close(r.pipeW)
		// Nobody will poll the read end if Run never started
		if r.started.CompareAndSwap(false, true) {
			unix.Close(r.pipeR)
		}
	})
	return err
}
