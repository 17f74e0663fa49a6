package netutil

import (
	"net"
	"strconv"
)

// FreeTCPPort asks the kernel for a free open port that is ready to use.
func FreeTCPPort() (int, error) {
	listener, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port, nil
}

// FreeLocalAddress returns a localhost address (host:port) on a free TCP port.
func FreeLocalAddress() (string, error) {
	port, err := FreeTCPPort()
	if err != nil {
		return "", err
	}
	return net.JoinHostPort("localhost", strconv.Itoa(port)), nil
}
