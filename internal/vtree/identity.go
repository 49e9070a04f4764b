package vtree

import (
	"encoding/binary"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ID is a stable node identity derived from (parent identity, sibling
// position, element kind, optional key, source-location salt), per
// spec.md §4.1. Two builder passes that construct the "same" logical node
// compute the same ID, which is what lets the reconciler match new nodes
// against retained ones without developer-supplied keys in the common case.
type ID uint64

// Root is the identity of the implicit root container every tree is rooted
// under. It never collides with a computed identity because Identity
// bumps a hash that comes out as zero to one.
const Root ID = 0

// Identity computes the stable ID for a node at sibling index pos under
// parent, of the given kind, with an optional developer-supplied key and a
// salt distinguishing the builder call site (spec.md §4.1: "a salt derived
// from the position of the constructing call within its enclosing function,
// so that two structurally identical call sites occurring at different
// points in source do not collide").
//
// When key is non-empty it determines identity alongside parent, kind and
// salt: position is ignored, which is what lets a keyed list reorder without
// changing the identity of the nodes that moved (spec.md §6.2).
func Identity(parent ID, pos int, kind Kind, key string, salt uint64) ID {
	var buf [32]byte
	b := buf[:0]
	var tmp [8]byte

	binary.LittleEndian.PutUint64(tmp[:], uint64(parent))
	b = append(b, tmp[:]...)

	b = append(b, byte(kind))

	if key != "" {
		b = append(b, 1)
		b = append(b, []byte(key)...)
	} else {
		b = append(b, 0)
		binary.LittleEndian.PutUint64(tmp[:], uint64(pos))
		b = append(b, tmp[:]...)
	}

	binary.LittleEndian.PutUint64(tmp[:], salt)
	b = append(b, tmp[:]...)

	h := xxhash.Sum64(b)
	if h == uint64(Root) {
		h++ // keep the sentinel Root value reserved for the implicit root
	}
	return ID(h)
}

// String renders an ID for diagnostics (verrors.Diagnostic payloads, test
// failure messages); it is not a parseable or stable wire format.
func (id ID) String() string {
	return "node#" + strconv.FormatUint(uint64(id), 16)
}
