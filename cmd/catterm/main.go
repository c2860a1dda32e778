// Command catterm connects the console to a serial line.
package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/luhtfiimanal/catterm"
	"github.com/luhtfiimanal/catterm/internal/translate"
)

const programName = "catterm"

var errHelp = errors.New("help requested")

// settings is everything run needs after the command line is parsed.
type settings struct {
	cfg     catterm.Config
	device  string
	tee     string
	verbose bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log.SetFlags(0)
	log.SetPrefix(programName + ": ")

	s, err := parseArgs(args)
	if errors.Is(err, errHelp) {
		usage(os.Stdout)
		return 1
	}
	if err != nil {
		translate.Fprintf(os.Stdout, "%s: %s\ntry %s -h for more information\n", programName, err.Error(), programName)
		return 1
	}

	tee, err := catterm.OpenTee(s.tee)
	if err != nil {
		log.Print(err)
		return 1
	}
	if tee != nil {
		defer tee.Close()
	}

	console, err := catterm.SetupConsole(int(os.Stdin.Fd()))
	if err != nil {
		log.Print(err)
		return 1
	}
	// Ensure the console is restored on all exit paths
	defer console.Restore()

	line, err := catterm.OpenLine(s.device, s.cfg.BitRate)
	if err != nil {
		log.Print(err)
		return 1
	}
	defer line.Close()

	ep := catterm.Endpoints{
		ConsoleIn:  os.Stdin,
		ConsoleOut: os.Stdout,
		Device:     line,
	}
	if tee != nil {
		ep.Tee = tee
	}

	relay, err := catterm.New(s.cfg, ep)
	if err != nil {
		log.Print(err)
		return 1
	}

	if s.verbose {
		log.Print(translate.From("connected to %s at %d bps, exit with ctrl-%c", line.Name(), line.BitRate(), s.cfg.EscapeByte+0x40))
		if s.cfg.Delay > 0 {
			log.Print(translate.From("pacing output, %v after each byte", s.cfg.Delay))
		}
	}

	if err := relay.Run(); err != nil {
		if errors.Is(err, catterm.ErrQuit) {
			return 0
		}
		log.Print(err)
		return 1
	}
	return 0
}

func parseArgs(args []string) (settings, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		suppress bool
		verbose  bool
		help     bool
		delay    string
		newline  string
		speed    string
		exitChar string
		tee      string
		profile  string
	)
	fs.BoolVar(&suppress, "c", false, "suppress control characters on output")
	fs.StringVar(&delay, "d", "", "delay after each character sent")
	fs.StringVar(&newline, "n", "", "send new line as lf, cr, crlf or lfcr")
	fs.StringVar(&speed, "s", "115200", "line speed")
	fs.StringVar(&exitChar, "x", "X", "use ctrl-char as exit char")
	fs.StringVar(&tee, "t", "", "save (\"tee\") output to file")
	fs.StringVar(&profile, "f", "", "read options from a TOML profile")
	fs.BoolVar(&verbose, "v", false, "report session parameters on startup")
	fs.BoolVar(&help, "h", false, "print this help screen")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return settings{}, errHelp
		}
		return settings{}, err
	}
	if help {
		return settings{}, errHelp
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	var p catterm.Profile
	if profile != "" {
		var err error
		if p, err = catterm.LoadProfile(profile); err != nil {
			return settings{}, err
		}
	}
	// Flags given on the command line win over the profile
	pick := func(name, flagValue, profileValue string) string {
		if explicit[name] || profileValue == "" {
			return flagValue
		}
		return profileValue
	}

	s := settings{cfg: catterm.DefaultConfig(), verbose: verbose}

	var err error
	if s.cfg.BitRate, err = catterm.ParseBitRate(pick("s", speed, p.Speed)); err != nil {
		return settings{}, err
	}
	if s.cfg.EscapeByte, err = catterm.ParseEscapeChar(pick("x", exitChar, p.ExitChar)); err != nil {
		return settings{}, err
	}
	if v := pick("n", newline, p.Newline); v != "" {
		if s.cfg.Newline, err = catterm.ParseNewline(v); err != nil {
			return settings{}, err
		}
	}
	if v := pick("d", delay, p.Delay); v != "" {
		d, err := catterm.ParseDelay(v)
		if err != nil {
			return settings{}, err
		}
		s.cfg.Delay = d.Resolve(s.cfg.BitRate)
	}
	s.cfg.SuppressControls = suppress
	if !explicit["c"] && p.SuppressControls != nil {
		s.cfg.SuppressControls = *p.SuppressControls
	}
	s.tee = pick("t", tee, p.Tee)

	switch {
	case fs.NArg() == 1:
		s.device = catterm.DevicePath(fs.Arg(0))
	case fs.NArg() > 1:
		return settings{}, translate.Errorf("unexpected argument -- %s", fs.Arg(1))
	case p.Line != "":
		s.device = catterm.DevicePath(p.Line)
	default:
		return settings{}, translate.Errorf("missed terminal line")
	}

	if err := s.cfg.Validate(); err != nil {
		return settings{}, err
	}
	return s, nil
}

func usage(w io.Writer) {
	translate.Fprintf(w, `usage:
    %s [options] line

options:
    -c       -- suppress control characters on output
    -d delay -- delay after each character sent
                delay parameter is:
                    NNN[us] - microseconds
                    NNNms   - milliseconds
                    NNN%%    - percent of character transmit time
    -n arg   -- send new line as:
                    lf      - '\n' (this is default)
                    cr      - '\r'
                    crlf    - '\r' + '\n'
                    lfcr    - '\n' + '\r'
    -s speed -- line speed (default is %d)
    -x char  -- use ctrl-char as exit char (default is ctrl-%s)
    -t file  -- save ("tee") output to file
    -f file  -- read options from a TOML profile
    -v       -- report session parameters on startup
    -h       -- print this help screen
`, programName, catterm.DefaultConfig().BitRate, "X")
}
