package systems

// IDGen hands out actor IDs. IDs are never reused within a match.
type IDGen struct {
	next uint32
}

// Next returns a fresh ID.
func (g *IDGen) Next() uint32 {
	g.next++
	return g.next
}
