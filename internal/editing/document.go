package editing

import "hexedit/internal/position"

// Document owns the bytes being edited. Implementations must treat a mutation
// their capability flags disallow as a silent no-op.
type Document interface {
	Length() uint64
	IsReadOnly() bool
	CanInsert() bool
	CanRemove() bool
	ReadBytes(offset uint64, buf []byte) int
	WriteBytes(offset uint64, data []byte)
	InsertBytes(offset uint64, data []byte)
	RemoveBytes(offset, count uint64)

	// EnclosingRange spans every addressable byte.
	EnclosingRange() position.BitRange
}

// Batcher is implemented by documents that can hold back their own change
// notifications until a group of mutations is complete.
type Batcher interface {
	BeginUpdate()
	EndUpdate()
}

// fixedLength hides the insert capability of a document while the engine runs
// under a fixed-length policy, so no column can grow it.
type fixedLength struct {
	Document
}

func (fixedLength) CanInsert() bool { return false }
