package devtools

import (
	"fmt"
	"net"
	"strconv"
)

// FindAvailablePort returns preferred when it is free, otherwise the first
// free port in [min, max]. A port is free when a TCP listener can bind it
// on the loopback interface.
func FindAvailablePort(preferred, min, max int) (int, error) {
	if preferred >= min && preferred <= max && portFree(preferred) {
		return preferred, nil
	}
	for port := min; port <= max; port++ {
		if port == preferred {
			continue
		}
		if portFree(port) {
			return port, nil
		}
	}
	return 0, fmt.Errorf("%w in range %d-%d", ErrNoPortAvailable, min, max)
}

func portFree(port int) bool {
	ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	if err != nil {
		return false
	}
	_ = ln.Close()
	return true
}
