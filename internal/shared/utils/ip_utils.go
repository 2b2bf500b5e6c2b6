package utils

import "strings"

// UnknownOrigin is used when neither proxy header carries an address.
const UnknownOrigin = "unknown"

// ResolveOrigin picks the authoritative client origin from proxy headers.
//
// Priority order:
// 1. X-Forwarded-For (first entry of "client, proxy1, proxy2")
// 2. X-Real-IP
// 3. UnknownOrigin
//
// The value is only ever hashed, never stored, so it is not validated as an
// IP: a garbage header still keys a stable cooldown.
func ResolveOrigin(forwardedFor, realIP string) string {
	if xff := strings.TrimSpace(forwardedFor); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}

	if xri := strings.TrimSpace(realIP); xri != "" {
		return xri
	}

	return UnknownOrigin
}
