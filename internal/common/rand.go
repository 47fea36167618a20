package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter specifies the number of random bytes to generate, so the
// resulting string is twice that long.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// TimestampedID builds an identifier of the form <prefix>_<unixms>_<rand>.
// Message and local-file ids use this scheme; the random suffix keeps ids
// unique when two are generated within the same millisecond.
func TimestampedID(prefix string) string {
	suffix, err := MakeRandHexString(4)
	if err != nil {
		// crypto/rand failing is not a condition worth surfacing to callers
		// generating a chat-message id; fall back to the clock.
		suffix = fmt.Sprintf("%09d", time.Now().Nanosecond())
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}
