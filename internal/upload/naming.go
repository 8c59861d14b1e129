// filepath: internal/upload/naming.go
package upload

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"

	"github.com/oklog/ulid/v2"
)

func withExt(name, ext string) string {
	if ext == "" {
		return name
	}
	return name + "." + ext
}

// KeepOriginal reassembles the original name.
func KeepOriginal() NameFunc {
	return withExt
}

// RandomHash names files after a SHA-512 of random bytes, truncated to length
// hex characters (0 keeps all 128), keeping the original extension.
func RandomHash(length int) NameFunc {
	return func(_, ext string) string {
		seed := make([]byte, 512)
		rand.Read(seed)
		sum := sha512.Sum512([]byte(base64.StdEncoding.EncodeToString(seed)))
		hash := hex.EncodeToString(sum[:])
		if length > 0 && length < len(hash) {
			hash = hash[:length]
		}
		return withExt(hash, ext)
	}
}

// ULID names files with a time-ordered ULID, keeping the original extension.
func ULID() NameFunc {
	return func(_, ext string) string {
		return withExt(ulid.Make().String(), ext)
	}
}

// Suffix appends s to the base name, e.g. "photo" + "_v2" + ".jpg".
func Suffix(s string) NameFunc {
	return func(base, ext string) string {
		return withExt(base+s, ext)
	}
}
