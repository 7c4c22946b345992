package schedule

// Author identifies one member of the author pool. Authors are opaque
// strings (typically initials); the engine never inspects them.
type Author string

// Kind labels what sort of post a slot becomes once the post-type
// allocator has run. Freshly generated slots are all KindRegular.
type Kind int

// Post kinds.
const (
	KindRegular Kind = iota
	KindQueue
	KindBeyond
)

// String returns the roster-file label for the kind. Regular posts have no
// label in the output format.
func (k Kind) String() string {
	switch k {
	case KindQueue:
		return "queue"
	case KindBeyond:
		return "beyond"
	case KindRegular:
		return ""
	default:
		return ""
	}
}

// Slot is a single writer/editor assignment within a block.
// Writer and Editor are always distinct.
type Slot struct {
	Writer Author
	Editor Author
	Kind   Kind
}

// Block is one scheduling time-unit. A full block is at the standard
// target length (NumRegular+NumQueue+NumBeyond) and is eligible for
// queue/beyond relabeling; the trailing remainder block, if any, is not.
type Block struct {
	Slots []Slot
	Full  bool
}

// Schedule is a completed, validated block sequence. Queue and Beyond are
// filled in by AllocatePostTypes and are keyed by block index; both are
// empty for remainder blocks.
type Schedule struct {
	Blocks []Block
	Queue  [][]Slot
	Beyond [][]Slot
}

// NumSlots returns the total number of slots across all blocks.
func (s *Schedule) NumSlots() int {
	n := 0
	for _, b := range s.Blocks {
		n += len(b.Slots)
	}

	return n
}
