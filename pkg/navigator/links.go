package navigator

import "github.com/google/uuid"

// LinkTable records symmetric links between nodes of adjacent levels.
// Every node has at most one peer.
type LinkTable struct {
	peers map[uuid.UUID]uuid.UUID
}

// NewLinkTable returns an empty table.
func NewLinkTable() *LinkTable {
	return &LinkTable{peers: make(map[uuid.UUID]uuid.UUID)}
}

// Link joins a and b, dropping any link either had before.
func (t *LinkTable) Link(a, b uuid.UUID) {
	t.Unlink(a)
	t.Unlink(b)
	t.peers[a] = b
	t.peers[b] = a
}

// Unlink removes the link of a from both ends.
func (t *LinkTable) Unlink(a uuid.UUID) {
	if b, ok := t.peers[a]; ok {
		delete(t.peers, b)
		delete(t.peers, a)
	}
}

// Peer returns the node a is linked to.
func (t *LinkTable) Peer(a uuid.UUID) (uuid.UUID, bool) {
	b, ok := t.peers[a]
	return b, ok
}

// Len returns the number of links.
func (t *LinkTable) Len() int {
	return len(t.peers) / 2
}
