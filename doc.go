// Package catterm relays bytes between a local console and a Linux serial line.
//
// It is a minimalist terminal: what is typed goes to the device, what the
// device sends is shown on the console, and nothing is interpreted on the
// way except for a few optional transformations:
//   - a typed line-feed can be sent as cr, crlf or lfcr
//   - control bytes received from the device can be shown as '?'
//   - output to the device can be paced to one byte per fixed delay
//   - everything received can be copied ("teed") to a file
//
// A configurable control byte (ctrl-X by default) typed on the console ends
// the session.
//
// The relay runs on a single goroutine around poll(2). Each direction has a
// single buffer and a source is only read again once that buffer has been
// written out completely, so a slow reader on either side holds back its
// writer instead of growing memory.
//
// This package does **not** support Windows.
//
// Example usage:
//
//	line, err := catterm.OpenLine("/dev/ttyUSB0", 115200)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer line.Close()
//
//	cfg := catterm.DefaultConfig()
//	cfg.Newline = []byte("\r\n")
//
//	relay, err := catterm.New(cfg, catterm.Endpoints{
//	    ConsoleIn:  os.Stdin,
//	    ConsoleOut: os.Stdout,
//	    Device:     line,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... to stop relaying, call relay.Close() from another goroutine
//	if err := relay.Run(); err != nil && !errors.Is(err, catterm.ErrQuit) {
//	    log.Fatal(err)
//	}
package catterm
