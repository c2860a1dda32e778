package catterm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modem.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
line = "ttyS1"
speed = "9600"
suppress_controls = true
delay = "50%"
newline = "crlf"
exit_char = "]"
tee = "modem.log"
`), 0644))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	require.Equal(t, "ttyS1", p.Line)
	require.Equal(t, "9600", p.Speed)
	require.NotNil(t, p.SuppressControls)
	require.True(t, *p.SuppressControls)
	require.Equal(t, "50%", p.Delay)
	require.Equal(t, "crlf", p.Newline)
	require.Equal(t, "]", p.ExitChar)
	require.Equal(t, "modem.log", p.Tee)
}

func TestLoadProfile_Partial(t *testing.T) {
	p, err := parseProfile("partial.toml", []byte(`speed = "57600"`))
	require.NoError(t, err)
	require.Equal(t, "57600", p.Speed)
	require.Nil(t, p.SuppressControls)
	require.Empty(t, p.Line)
}

func TestLoadProfile_Errors(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorContains(t, err, "read profile")

	_, err = parseProfile("bad.toml", []byte("speed = \n"))
	require.ErrorContains(t, err, "parse profile bad.toml")

	_, err = parseProfile("typo.toml", []byte(`sped = "9600"`))
	require.ErrorContains(t, err, `unknown key "sped"`)
}
