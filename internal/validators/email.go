package validators

import (
	"net"
	"net/mail"
	"strings"
)

// EmailDeliverable checks that the address parses and that its domain
// resolves to a mail host (MX, or A/AAAA as fallback).
func EmailDeliverable(email string) bool {
	if _, err := mail.ParseAddress(email); err != nil {
		return false
	}

	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
