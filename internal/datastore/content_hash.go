package datastore

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// ContentHash fingerprints the diffable fields of a revision with BLAKE3.
// Each field is length prefixed so moving text between fields changes the hash.
func ContentHash(title, content, excerpt string) string {
	h := blake3.New()
	var size [8]byte
	for _, field := range []string{title, content, excerpt} {
		binary.BigEndian.PutUint64(size[:], uint64(len(field)))
		_, _ = h.Write(size[:])
		_, _ = h.WriteString(field)
	}
	return hex.EncodeToString(h.Sum(nil))
}
