package extract

import "github.com/spaolacci/murmur3"

// HashBits is the width of the hashed feature id space. Weights are indexed
// by hashed ids, so the model never stores feature strings; rare collisions
// within the 2^24 id space are tolerated.
const HashBits = 24

const hashMask = 1<<HashBits - 1

// Hash maps a feature string to its fixed-width integer id via MurmurHash3.
func Hash(s string) uint32 {
	return murmur3.Sum32([]byte(s)) & hashMask
}
