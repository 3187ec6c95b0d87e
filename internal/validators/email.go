package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the domain part of the address can receive
// mail: an MX record, or an A/AAAA record for hosts that accept mail
// directly.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
