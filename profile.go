package catterm

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Profile is a saved set of options, read from a TOML file. Every key is
// optional and takes the same text the matching command-line flag does:
//
//	line = "ttyUSB0"
//	speed = "9600"
//	suppress_controls = true
//	delay = "50%"
//	newline = "crlf"
//	exit_char = "]"
//	tee = "session.log"
type Profile struct {
	Line             string `toml:"line"`
	Speed            string `toml:"speed"`
	SuppressControls *bool  `toml:"suppress_controls"`
	Delay            string `toml:"delay"`
	Newline          string `toml:"newline"`
	ExitChar         string `toml:"exit_char"`
	Tee              string `toml:"tee"`
}

// LoadProfile reads and decodes the profile at path.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}
	return parseProfile(path, data)
}

func parseProfile(path string, data []byte) (Profile, error) {
	var p Profile
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		var parseErr toml.ParseError
		if errors.As(err, &parseErr) {
			return Profile{}, fmt.Errorf("parse profile %s: %s", path, parseErr.ErrorWithPosition())
		}
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Profile{}, fmt.Errorf("parse profile %s: unknown key %q", path, undecoded[0].String())
	}
	return p, nil
}
