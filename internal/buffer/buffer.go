package buffer

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"hexedit/internal/position"
)

type Operation struct {
	Type    OpType
	Offset  uint64
	OldData []byte
	NewData []byte
}

type OpType int

const (
	OpInsert OpType = iota
	OpDelete
	OpReplace
)

type listener struct {
	id int
	fn func(Change)
}

type Buffer struct {
	filename     string
	data         []byte
	originalHash string
	modified     bool
	readOnly     bool
	undoStack    []Operation
	redoStack    []Operation
	isNew        bool

	listeners  []listener
	nextID     int
	batchDepth int
	pending    []Change
}

func New() *Buffer {
	return &Buffer{
		data:  make([]byte, 0),
		isNew: true,
	}
}

// FromBytes wraps a copy of data in an unnamed buffer.
func FromBytes(data []byte) *Buffer {
	b := New()
	b.data = append(b.data, data...)
	return b
}

func Open(filename string) (*Buffer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &Buffer{
		filename:     filename,
		data:         data,
		originalHash: hashOf(data),
	}, nil
}

func hashOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (b *Buffer) Filename() string {
	return b.filename
}

func (b *Buffer) SetFilename(name string) {
	b.filename = name
	b.isNew = false
}

func (b *Buffer) IsNew() bool {
	return b.isNew
}

func (b *Buffer) IsModified() bool {
	return b.modified
}

func (b *Buffer) Length() uint64 {
	return uint64(len(b.data))
}

func (b *Buffer) Data() []byte {
	return b.data
}

func (b *Buffer) IsReadOnly() bool {
	return b.readOnly
}

func (b *Buffer) SetReadOnly(readOnly bool) {
	b.readOnly = readOnly
}

func (b *Buffer) CanInsert() bool {
	return !b.readOnly
}

func (b *Buffer) CanRemove() bool {
	return !b.readOnly
}

// EnclosingRange spans every addressable byte.
func (b *Buffer) EnclosingRange() position.BitRange {
	return position.BitRange{End: position.BitLocation{ByteIndex: b.Length()}}
}

// ReadBytes copies bytes starting at offset into buf and returns the count.
func (b *Buffer) ReadBytes(offset uint64, buf []byte) int {
	if offset >= b.Length() {
		return 0
	}
	return copy(buf, b.data[offset:])
}

func (b *Buffer) InsertBytes(offset uint64, data []byte) {
	if b.readOnly || len(data) == 0 {
		return
	}
	if offset > b.Length() {
		offset = b.Length()
	}

	op := Operation{
		Type:    OpInsert,
		Offset:  offset,
		NewData: append([]byte(nil), data...),
	}
	b.record(op)
	b.applyInsert(offset, op.NewData)
}

func (b *Buffer) RemoveBytes(offset, count uint64) {
	if b.readOnly || offset >= b.Length() || count == 0 {
		return
	}
	if offset+count > b.Length() {
		count = b.Length() - offset
	}

	op := Operation{
		Type:    OpDelete,
		Offset:  offset,
		OldData: append([]byte(nil), b.data[offset:offset+count]...),
	}
	b.record(op)
	b.applyDelete(offset, count)
}

// WriteBytes overwrites existing bytes. Writes never extend the buffer; the
// part of data past the end is dropped.
func (b *Buffer) WriteBytes(offset uint64, data []byte) {
	if b.readOnly || offset >= b.Length() || len(data) == 0 {
		return
	}
	end := offset + uint64(len(data))
	if end > b.Length() {
		end = b.Length()
	}

	op := Operation{
		Type:    OpReplace,
		Offset:  offset,
		OldData: append([]byte(nil), b.data[offset:end]...),
		NewData: append([]byte(nil), data[:end-offset]...),
	}
	b.record(op)
	b.applyReplace(offset, op.NewData)
}

// Resize pads the buffer with fill or truncates it so that it holds exactly n
// bytes.
func (b *Buffer) Resize(n uint64, fill byte) {
	switch {
	case n > b.Length():
		padding := make([]byte, n-b.Length())
		for i := range padding {
			padding[i] = fill
		}
		b.InsertBytes(b.Length(), padding)
	case n < b.Length():
		b.RemoveBytes(n, b.Length()-n)
	}
}

func (b *Buffer) record(op Operation) {
	b.undoStack = append(b.undoStack, op)
	b.redoStack = nil
	b.modified = true
}

func (b *Buffer) applyInsert(offset uint64, data []byte) {
	newData := make([]byte, len(b.data)+len(data))
	copy(newData, b.data[:offset])
	copy(newData[offset:], data)
	copy(newData[offset+uint64(len(data)):], b.data[offset:])
	b.data = newData
	b.emit(Change{Kind: ChangeInsert, Range: byteSpan(offset, uint64(len(data)))})
}

func (b *Buffer) applyDelete(offset, count uint64) {
	newData := make([]byte, len(b.data)-int(count))
	copy(newData, b.data[:offset])
	copy(newData[offset:], b.data[offset+count:])
	b.data = newData
	b.emit(Change{Kind: ChangeRemove, Range: byteSpan(offset, count)})
}

func (b *Buffer) applyReplace(offset uint64, data []byte) {
	copy(b.data[offset:], data)
	b.emit(Change{Kind: ChangeModify, Range: byteSpan(offset, uint64(len(data)))})
}

func (b *Buffer) Undo() bool {
	if len(b.undoStack) == 0 {
		return false
	}

	op := b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]

	switch op.Type {
	case OpInsert:
		b.applyDelete(op.Offset, uint64(len(op.NewData)))
	case OpDelete:
		b.applyInsert(op.Offset, op.OldData)
	case OpReplace:
		b.applyReplace(op.Offset, op.OldData)
	}

	b.redoStack = append(b.redoStack, op)
	b.modified = len(b.undoStack) > 0
	return true
}

func (b *Buffer) Redo() bool {
	if len(b.redoStack) == 0 {
		return false
	}

	op := b.redoStack[len(b.redoStack)-1]
	b.redoStack = b.redoStack[:len(b.redoStack)-1]

	switch op.Type {
	case OpInsert:
		b.applyInsert(op.Offset, op.NewData)
	case OpDelete:
		b.applyDelete(op.Offset, uint64(len(op.OldData)))
	case OpReplace:
		b.applyReplace(op.Offset, op.NewData)
	}

	b.undoStack = append(b.undoStack, op)
	b.modified = true
	return true
}

// ClearHistory drops every recorded operation. The modified flag is kept.
func (b *Buffer) ClearHistory() {
	b.undoStack = nil
	b.redoStack = nil
}

func (b *Buffer) CanUndo() bool {
	return len(b.undoStack) > 0
}

func (b *Buffer) CanRedo() bool {
	return len(b.redoStack) > 0
}

func (b *Buffer) HasChangedOnDisk() (bool, error) {
	if b.isNew || b.filename == "" {
		return false, nil
	}

	data, err := os.ReadFile(b.filename)
	if err != nil {
		return false, err
	}

	return hashOf(data) != b.originalHash, nil
}

func (b *Buffer) Save() error {
	if b.filename == "" {
		return ErrNoFilename
	}

	if err := os.WriteFile(b.filename, b.data, 0644); err != nil {
		return err
	}

	b.originalHash = hashOf(b.data)
	b.modified = false
	b.undoStack = nil
	b.redoStack = nil
	b.isNew = false

	return nil
}

func (b *Buffer) SaveAs(filename string) error {
	b.filename = filename
	return b.Save()
}
