package utils

import (
	"net"
	"strings"
)

// ShouldForceRelay reports whether the machine is likely behind a VPN or
// CGNAT where host/srflx candidates rarely connect, so media should go
// through the TURN relay from the start.
func ShouldForceRelay() bool {
	interfaces, err := net.Interfaces()
	if err != nil {
		return false
	}

	// Cloudflare WARP, Tailscale and carrier-grade NATs hand out
	// addresses from 100.64.0.0/10.
	_, cgnatBlock, _ := net.ParseCIDR("100.64.0.0/10")

	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		name := strings.ToLower(iface.Name)
		if strings.Contains(name, "tun") ||
			strings.Contains(name, "tap") ||
			strings.Contains(name, "wg") ||
			strings.Contains(name, "ppp") ||
			strings.Contains(name, "warp") {
			return true
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}

			if cgnatBlock.Contains(ip) {
				return true
			}
		}
	}

	return false
}
