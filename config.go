package catterm

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the relay settings. It is not modified once a Relay is built from it.
type Config struct {
	EscapeByte       byte          // 0..31, session ends when read from the console
	SuppressControls bool          // replace device control bytes with '?'
	Newline          []byte        // console line-feed is sent as this; empty means as is
	Delay            time.Duration // pause after each device byte, 0 disables pacing
	BitRate          int
}

// DefaultConfig returns ctrl-X as exit character at 115200 bps.
func DefaultConfig() Config {
	return Config{
		EscapeByte: 'X' - 0x40,
		BitRate:    115200,
	}
}

// Validate reports the first field that is out of range.
func (c Config) Validate() error {
	if c.EscapeByte > 0x1f {
		return fmt.Errorf("escape byte 0x%02x is not a control code", c.EscapeByte)
	}
	if len(c.Newline) > 2 {
		return fmt.Errorf("newline sequence %q longer than 2 bytes", c.Newline)
	}
	if c.Delay < 0 {
		return fmt.Errorf("negative delay %v", c.Delay)
	}
	return nil
}

// ParseEscapeChar maps a control-key letter ("X", "x", "]") to its control code.
func ParseEscapeChar(s string) (byte, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("invalid exit char -- %s", s)
	}
	c := s[0]
	switch {
	case c >= 0x40 && c <= 0x5f:
		return c - 0x40, nil
	case c >= 0x60 && c <= 0x7f:
		return c - 0x60, nil
	}
	return 0, fmt.Errorf("invalid exit char -- %s", s)
}

var newlineModes = map[string]string{
	"lf":   "\n",
	"cr":   "\r",
	"crlf": "\r\n",
	"lfcr": "\n\r",
}

// ParseNewline accepts lf, cr, crlf or lfcr.
func ParseNewline(s string) ([]byte, error) {
	seq, ok := newlineModes[strings.ToLower(s)]
	if !ok {
		return nil, fmt.Errorf("invalid new line mode -- %s", s)
	}
	return []byte(seq), nil
}

// Delay is an inter-byte delay as given by the user, either absolute or
// relative to one character's transmit time.
type Delay struct {
	Micros   uint64
	Percent  uint64
	Relative bool
}

// ParseDelay accepts NNN, NNNus, NNNms and NNN%.
func ParseDelay(s string) (Delay, error) {
	lower := strings.ToLower(s)
	unit := ""
	for _, u := range []string{"us", "ms", "%"} {
		if strings.HasSuffix(lower, u) {
			unit = u
			break
		}
	}
	num := s[:len(s)-len(unit)]

	var v uint64
	if num != "" || unit != "%" {
		var err error
		v, err = strconv.ParseUint(num, 0, 64)
		if err != nil {
			return Delay{}, fmt.Errorf("invalid output delay -- %s", s)
		}
	}

	switch unit {
	case "", "us":
		return Delay{Micros: v}, nil
	case "ms":
		return Delay{Micros: v * 1000}, nil
	case "%":
		if num == "" {
			v = 90
		}
		return Delay{Percent: v, Relative: true}, nil
	}
	return Delay{}, fmt.Errorf("invalid output delay -- %s", s)
}

// Resolve turns the delay into an absolute duration for the given bit rate.
// One character takes 10 bit times on the line.
func (d Delay) Resolve(rate int) time.Duration {
	if !d.Relative {
		return time.Duration(d.Micros) * time.Microsecond
	}
	if rate <= 0 {
		return 0
	}
	return time.Duration(d.Percent*100000/uint64(rate)) * time.Microsecond
}

// ParseBitRate accepts any rate the line driver supports.
func ParseBitRate(s string) (int, error) {
	rate, err := strconv.ParseUint(s, 0, 32)
	if err != nil || !supportedRate(int(rate)) {
		return 0, fmt.Errorf("invalid speed -- %s", s)
	}
	return int(rate), nil
}

// DevicePath resolves a bare line name such as "ttyUSB0" under /dev.
func DevicePath(name string) string {
	if strings.HasPrefix(name, "/") {
		return name
	}
	return filepath.Join("/dev", name)
}
