package catterm

import (
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

func openTestLine(t *testing.T) (*Line, *os.File) {
	t.Helper()
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })

	line, err := OpenLine(slave.Name(), 115200)
	require.NoError(t, err)
	t.Cleanup(func() { line.Close() })
	return line, master
}

func TestLine_ChatMasterSlave(t *testing.T) {
	line, master := openTestLine(t)

	fromMaster := make(chan string, 1)
	fromSlave := make(chan string, 1)
	errors := make(chan error, 2)

	// Line reads what master writes
	go func() {
		buf := make([]byte, 128)
		n, err := line.Read(buf)
		if err != nil {
			errors <- err
			return
		}
		fromMaster <- string(buf[:n])
	}()

	// Master reads what the line writes
	go func() {
		buf := make([]byte, 128)
		n, err := master.Read(buf)
		if err != nil {
			errors <- err
			return
		}
		fromSlave <- string(buf[:n])
	}()

	// 1. Master writes to slave, the line should receive it unchanged
	_, err := master.Write([]byte("ping\n"))
	require.NoError(t, err)

	select {
	case msg := <-fromMaster:
		require.Equal(t, "ping\n", msg)
	case err := <-errors:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for slave to receive from master")
	}

	// 2. The line writes to master; no output processing, so no CR is added
	_, err = line.Write([]byte("pong\n"))
	require.NoError(t, err)

	select {
	case msg := <-fromSlave:
		require.Equal(t, "pong\n", msg)
	case err := <-errors:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for master to receive from slave")
	}
}

func TestLine_RawInput(t *testing.T) {
	line, master := openTestLine(t)

	// ctrl-C, CR and DEL arrive as bytes, not as signals or line edits
	in := []byte{0x03, '\r', 0x7f, 'a'}
	_, err := master.Write(in)
	require.NoError(t, err)

	got := make(chan []byte, 1)
	go func() {
		var all []byte
		buf := make([]byte, 16)
		for len(all) < len(in) {
			n, err := line.Read(buf)
			if err != nil {
				return
			}
			all = append(all, buf[:n]...)
		}
		got <- all
	}()

	select {
	case b := <-got:
		require.Equal(t, in, b)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for raw input")
	}
}

func TestLine_Accessors(t *testing.T) {
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })

	line, err := OpenLine(slave.Name(), 9600)
	require.NoError(t, err)

	require.Equal(t, slave.Name(), line.Name())
	require.Equal(t, 9600, line.BitRate())
	require.NotZero(t, line.Fd())

	require.NoError(t, line.Close())
	require.NoError(t, line.Close()) // Should be a no-op due to closeOnce
}

func TestOpenLine_UnsupportedSpeed(t *testing.T) {
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })

	_, err = OpenLine(slave.Name(), 12345)
	require.ErrorContains(t, err, "unsupported speed")
}

func TestOpenLine_MissingDevice(t *testing.T) {
	_, err := OpenLine("/dev/does-not-exist-catterm", 115200)
	require.ErrorContains(t, err, "can't open /dev/does-not-exist-catterm")
}
