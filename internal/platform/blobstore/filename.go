package blobstore

import (
	crypto_rand "crypto/rand"
	"encoding/hex"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// GenerateKey turns an arbitrary user-supplied filename into a safe,
// collision-resistant storage key: the base name is reduced to
// [a-z0-9._-], then a UTC second-resolution timestamp and an 8-hex-char
// random token are appended, and the lowercased extension is kept.
//
//	"My Rx (final).PDF" -> "my_rx__final_20240101120000_1a2b3c4d.pdf"
//
// The result is non-empty even when the base sanitizes away entirely. The
// function does no I/O and is safe for unbounded concurrent use.
func GenerateKey(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)

	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")
	base = strings.ToLower(base)

	suffix := time.Now().UTC().Format("20060102150405") + "_" + randomToken()

	if base == "" {
		return suffix + strings.ToLower(ext)
	}
	return base + "_" + suffix + strings.ToLower(ext)
}

// randomToken returns 8 hex characters from crypto/rand. Collisions within
// the same timestamp second are possible but vanishingly rare, and at worst
// overwrite a file in the local backend.
func randomToken() string {
	var b [4]byte
	if _, err := crypto_rand.Read(b[:]); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// a fixed token still yields a valid key rather than a panic.
		return "00000000"
	}
	return hex.EncodeToString(b[:])
}
