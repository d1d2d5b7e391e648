package devtools

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listenOn(t *testing.T, port int) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	return ln
}

func TestFindAvailablePortPrefersPreferred(t *testing.T) {
	port := freePort(t)
	got, err := FindAvailablePort(port, port, port+10)
	require.NoError(t, err)
	assert.Equal(t, port, got)
}

func TestFindAvailablePortSkipsBusy(t *testing.T) {
	busy := listenOn(t, 0)
	port := busy.Addr().(*net.TCPAddr).Port

	got, err := FindAvailablePort(port, port, port+20)
	require.NoError(t, err)
	assert.NotEqual(t, port, got)
	assert.GreaterOrEqual(t, got, port)
	assert.LessOrEqual(t, got, port+20)
}

func TestFindAvailablePortExhausted(t *testing.T) {
	busy := listenOn(t, 0)
	port := busy.Addr().(*net.TCPAddr).Port

	_, err := FindAvailablePort(port, port, port)
	assert.ErrorIs(t, err, ErrNoPortAvailable)
}
