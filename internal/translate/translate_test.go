package translate

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrom_UntranslatedKeyIsFormatted(t *testing.T) {
	require.Equal(t, "invalid speed -- fast", From("invalid speed -- %s", "fast"))
	require.Equal(t, "missed terminal line", From("missed terminal line"))
}

func TestErrorf(t *testing.T) {
	err := Errorf("unexpected argument -- %s", "ttyS1")
	require.EqualError(t, err, "unexpected argument -- ttyS1")
}

func TestFprintf(t *testing.T) {
	var b bytes.Buffer
	Fprintf(&b, "%s: %s\n", "catterm", "try -h")
	require.Equal(t, "catterm: try -h\n", b.String())
}
