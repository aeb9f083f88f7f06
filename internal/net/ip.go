package net

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
)

// Scheme prefixes share links handed from a host to its viewers.
const Scheme = "mentorcanvas://"

// GetOutgoingIP finds the preferred local IP address for the host to share.
func GetOutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// Offline networks still have a LAN address.
		return firstIPv4().String(), nil
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String(), nil
}

func firstIPv4() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	slog.Warn("no suitable local IP found, share link uses loopback")
	return net.IPv4(127, 0, 0, 1)
}

func ShareLink(host string, port int) string {
	return Scheme + net.JoinHostPort(host, fmt.Sprint(port))
}

// ParseShareLink accepts a share link or a bare "host:port".
func ParseShareLink(link string) (string, error) {
	addr := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(link), Scheme), "/")
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("invalid share link %q: %w", link, err)
	}
	if host == "" || port == "" {
		return "", fmt.Errorf("invalid share link %q", link)
	}
	return addr, nil
}
