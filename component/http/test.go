package http

import "github.com/nuts-foundation/cds-hooks-ice/lib/netutil"

// TestConfig returns a Config listening on free ports on localhost.
func TestConfig() Config {
	publicAddress, _ := netutil.FreeLocalAddress()
	internalAddress, _ := netutil.FreeLocalAddress()
	return Config{
		PublicInterface: InterfaceConfig{
			Listener: publicAddress,
		},
		InternalInterface: InterfaceConfig{
			Listener: internalAddress,
		},
	}
}
