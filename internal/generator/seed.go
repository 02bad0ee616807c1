package generator

import (
	"encoding/binary"
	"hash/fnv"
)

// DeriveSeed maps a run-level seed plus labels (table name, period label)
// to an independent stream seed, so sibling tables and periods draw from
// unrelated sequences while staying reproducible.
func DeriveSeed(runSeed int64, labels ...string) int64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(runSeed))
	h.Write(buf[:])
	for _, label := range labels {
		h.Write([]byte{0})
		h.Write([]byte(label))
	}
	return int64(h.Sum64())
}
