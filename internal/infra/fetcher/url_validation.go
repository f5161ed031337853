package fetcher

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Sentinel errors for URL validation.
var (
	// ErrInvalidURL indicates that the URL is malformed or uses a
	// disallowed scheme.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrPrivateIP indicates that the URL resolves to a private,
	// loopback, or link-local address.
	ErrPrivateIP = errors.New("URL resolves to private IP")
)

// validateURL validates a URL for security before making an HTTP request.
// It prevents Server-Side Request Forgery (SSRF) by checking the scheme
// and, when denyPrivateIPs is set, resolving DNS and rejecting targets in
// loopback, private, and link-local ranges.
func validateURL(urlStr string, denyPrivateIPs bool) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return nil
	}

	// DNS resolution to check for private IPs
	ips, err := net.LookupIP(hostname)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", ErrInvalidURL, hostname, err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: hostname '%s' resolves to %s", ErrPrivateIP, hostname, ip.String())
		}
	}

	return nil
}

// isPrivateIP checks if an IP address is in a private, loopback, or
// link-local range. Supports both IPv4 and IPv6.
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
