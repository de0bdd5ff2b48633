package formats

// vertexCache buckets vertex slots by a fingerprint. Every vertex that is
// bit-identical to another must be inserted under the same fingerprint; the
// loader uses the resolved position index, which guarantees this since equal
// vertices share a position.
//
// Hashing the whole vertex would shrink buckets at the cost of hashing eight
// floats per face vertex. Lookups stay exact either way.
type vertexCache struct {
	buckets map[uint32][]uint32
}

func newVertexCache() *vertexCache {
	return &vertexCache{buckets: make(map[uint32][]uint32)}
}

// lookup probes every slot in the fingerprint's bucket for an exact match.
func (c *vertexCache) lookup(fingerprint uint32, v OBJVertex, vertices []OBJVertex) (uint32, bool) {
	for _, slot := range c.buckets[fingerprint] {
		if vertices[slot].BitsEqual(v) {
			return slot, true
		}
	}
	return 0, false
}

func (c *vertexCache) insert(fingerprint, slot uint32) {
	c.buckets[fingerprint] = append(c.buckets[fingerprint], slot)
}

func (c *vertexCache) bucketSize(fingerprint uint32) int {
	return len(c.buckets[fingerprint])
}
