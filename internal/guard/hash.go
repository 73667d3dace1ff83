package guard

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// keyPrefixLen bounds the length (and cardinality) of store keys derived
// from visitor hashes. Collisions across the truncated space are an accepted
// tradeoff, not a bug.
const keyPrefixLen = 16

// timeNow is swapped out in tests to pin the month salt.
var timeNow = time.Now

// HashIP returns a one-way, salted, month-bucketed digest of a raw IP.
// The same IP hashes identically within a calendar month and unlinkably
// across months, so rate limiting and blocking work without ever persisting
// a raw address.
func HashIP(rawIP, secret string) string {
	month := timeNow().UTC().Format("2006-01")
	sum := sha256.Sum256([]byte(rawIP + secret + month))
	return hex.EncodeToString(sum[:])
}

// KeyPrefix truncates a visitor hash to the bounded key used for rate
// windows and block flags.
func KeyPrefix(hash string) string {
	if len(hash) <= keyPrefixLen {
		return hash
	}
	return hash[:keyPrefixLen]
}
