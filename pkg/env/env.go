// Package env reads the few settings needed before config.Load runs, such as
// the log format.
package env

import (
	"os"
	"strings"
)

const prefix = "FLOW_"

// Get returns FLOW_<key> when set, then the bare key, then fallback.
func Get(key, fallback string) string {
	if !strings.HasPrefix(key, prefix) {
		if val := strings.TrimSpace(os.Getenv(prefix + key)); val != "" {
			return val
		}
	}
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
