package utils

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

// pingTimeout bounds the reachability probe so health checks stay fast.
const pingTimeout = 1500 * time.Millisecond

// PingPinningService probes the pinning service endpoint with a plain TCP
// dial. Reachability is all the health check needs; no request is issued.
func PingPinningService(pinningURL string) error {
	parsed, err := url.Parse(pinningURL)
	if err != nil {
		return fmt.Errorf("invalid pinning URL: %w", err)
	}

	port := parsed.Port()
	if port == "" {
		if parsed.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	address := net.JoinHostPort(parsed.Hostname(), port)
	conn, err := net.DialTimeout("tcp", address, pingTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return conn.Close()
}
