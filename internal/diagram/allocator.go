package diagram

import "strconv"

// Allocator issues node and edge ids for one editing session
type Allocator struct {
	nextNode int
	nextEdge int
}

// NewAllocator creates an allocator starting at n1 / e1
func NewAllocator() *Allocator {
	return &Allocator{nextNode: 1, nextEdge: 1}
}

// NodeID returns a fresh node id and advances the node counter
func (a *Allocator) NodeID() string {
	id := "n" + strconv.Itoa(a.nextNode)
	a.nextNode++
	return id
}

// EdgeID returns a fresh edge id and advances the edge counter
func (a *Allocator) EdgeID() string {
	id := "e" + strconv.Itoa(a.nextEdge)
	a.nextEdge++
	return id
}

// Next returns the ordinals the next NodeID and EdgeID calls will use
func (a *Allocator) Next() (node, edge int) {
	return a.nextNode, a.nextEdge
}

// Resync sets each counter to one past the largest numeric suffix found in
// the given ids. Ids without a numeric suffix count as 0.
//
// Allocated ids always have the form prefix+digits, so an id allocated after
// Resync carries a suffix larger than any loaded id and cannot equal one.
func (a *Allocator) Resync(nodeIDs, edgeIDs []string) {
	a.nextNode = maxSuffix(nodeIDs) + 1
	a.nextEdge = maxSuffix(edgeIDs) + 1
}

func maxSuffix(ids []string) int {
	best := 0
	for _, id := range ids {
		if n := NumericSuffix(id); n > best {
			best = n
		}
	}
	return best
}

// NumericSuffix returns the value of the trailing run of digits in id,
// or 0 when there is none or it does not fit in an int
func NumericSuffix(id string) int {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return 0
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil {
		return 0
	}
	return n
}
