package arrange

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// ContentHash digests a line set so that the same lines in any order and
// either orientation hash equal, while moving any endpoint changes the hash.
func ContentHash(segs []Segment) string {
	enc := make([]string, len(segs))
	for i, s := range segs {
		a, b := s.A, s.B
		if b.Less(a) {
			a, b = b, a
		}
		enc[i] = formatCoord(a.U) + "," + formatCoord(a.V) + ";" + formatCoord(b.U) + "," + formatCoord(b.V)
	}
	sort.Strings(enc)
	h := sha256.New()
	for _, e := range enc {
		h.Write([]byte(e))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
