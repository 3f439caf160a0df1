package buffer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func byteAt(t *testing.T, b *Buffer, offset uint64) byte {
	t.Helper()
	var one [1]byte
	if n := b.ReadBytes(offset, one[:]); n != 1 {
		t.Fatalf("no byte at offset %d", offset)
	}
	return one[0]
}

func TestNew(t *testing.T) {
	b := New()
	if b.Length() != 0 {
		t.Errorf("expected length 0, got %d", b.Length())
	}
	if !b.IsNew() {
		t.Error("expected IsNew to be true")
	}
	if !b.CanInsert() || !b.CanRemove() {
		t.Error("expected a fresh buffer to allow insert and remove")
	}
}

func TestInsertBytes(t *testing.T) {
	b := New()
	b.InsertBytes(0, []byte{0x41, 0x43})
	b.InsertBytes(1, []byte{0x42})

	if !bytes.Equal(b.Data(), []byte{0x41, 0x42, 0x43}) {
		t.Errorf("unexpected data % X", b.Data())
	}
	if !b.IsModified() {
		t.Error("expected buffer to be modified")
	}
}

func TestInsertPastEndAppends(t *testing.T) {
	b := FromBytes([]byte{0x01})
	b.InsertBytes(10, []byte{0x02})

	if !bytes.Equal(b.Data(), []byte{0x01, 0x02}) {
		t.Errorf("unexpected data % X", b.Data())
	}
}

func TestRemoveBytes(t *testing.T) {
	b := FromBytes([]byte{0x41, 0x42, 0x43, 0x44})
	b.RemoveBytes(1, 2)

	if !bytes.Equal(b.Data(), []byte{0x41, 0x44}) {
		t.Errorf("unexpected data % X", b.Data())
	}
}

func TestRemoveBytesClampsCount(t *testing.T) {
	b := FromBytes([]byte{0x41, 0x42, 0x43})
	b.RemoveBytes(2, 10)
	b.RemoveBytes(5, 1)

	if !bytes.Equal(b.Data(), []byte{0x41, 0x42}) {
		t.Errorf("unexpected data % X", b.Data())
	}
}

func TestWriteBytesNeverExtends(t *testing.T) {
	b := FromBytes([]byte{0x00, 0x00})
	b.WriteBytes(1, []byte{0xAA, 0xBB, 0xCC})

	if !bytes.Equal(b.Data(), []byte{0x00, 0xAA}) {
		t.Errorf("unexpected data % X", b.Data())
	}
	b.WriteBytes(2, []byte{0xFF})
	if b.Length() != 2 {
		t.Errorf("expected length 2, got %d", b.Length())
	}
}

func TestReadOnlyIgnoresMutations(t *testing.T) {
	b := FromBytes([]byte{0x10, 0x20})
	b.SetReadOnly(true)

	b.InsertBytes(0, []byte{0x01})
	b.RemoveBytes(0, 1)
	b.WriteBytes(0, []byte{0xFF})

	if !bytes.Equal(b.Data(), []byte{0x10, 0x20}) {
		t.Errorf("read-only buffer changed: % X", b.Data())
	}
	if b.CanInsert() || b.CanRemove() {
		t.Error("read-only buffer must not report insert/remove capability")
	}
}

func TestResize(t *testing.T) {
	b := FromBytes([]byte{0x12, 0x34})

	b.Resize(4, 0xFF)
	if !bytes.Equal(b.Data(), []byte{0x12, 0x34, 0xFF, 0xFF}) {
		t.Errorf("after grow: % X", b.Data())
	}
	b.Resize(1, 0x00)
	if !bytes.Equal(b.Data(), []byte{0x12}) {
		t.Errorf("after shrink: % X", b.Data())
	}
}

func TestEnclosingRange(t *testing.T) {
	b := FromBytes([]byte{1, 2, 3})
	r := b.EnclosingRange()

	if r.ByteLength() != 3 || r.Start.ByteIndex != 0 {
		t.Errorf("unexpected enclosing range %v", r)
	}
}

func TestUndo(t *testing.T) {
	b := New()
	b.InsertBytes(0, []byte{0x41})

	if !b.CanUndo() {
		t.Error("expected CanUndo to be true")
	}

	b.Undo()

	if b.Length() != 0 {
		t.Errorf("expected length 0 after undo, got %d", b.Length())
	}
}

func TestUndoWriteRestoresBytes(t *testing.T) {
	b := FromBytes([]byte{0x01, 0x02, 0x03})
	b.WriteBytes(0, []byte{0xAA, 0xBB})
	b.RemoveBytes(2, 1)

	b.Undo()
	b.Undo()

	if !bytes.Equal(b.Data(), []byte{0x01, 0x02, 0x03}) {
		t.Errorf("unexpected data after undo % X", b.Data())
	}
	if b.IsModified() {
		t.Error("expected buffer to be unmodified after undoing everything")
	}
}

func TestRedo(t *testing.T) {
	b := New()
	b.InsertBytes(0, []byte{0x41})
	b.Undo()

	if !b.CanRedo() {
		t.Error("expected CanRedo to be true")
	}

	b.Redo()

	if b.Length() != 1 {
		t.Errorf("expected length 1 after redo, got %d", b.Length())
	}
}

func TestOpenAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte{0x01, 0x02, 0x03, 0x04, 0x05}, 0644); err != nil {
		t.Fatal(err)
	}

	b, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if b.Length() != 5 {
		t.Errorf("expected length 5, got %d", b.Length())
	}

	b.WriteBytes(2, []byte{0xFF})
	if err := b.Save(); err != nil {
		t.Fatal(err)
	}

	b2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if val := byteAt(t, b2, 2); val != 0xFF {
		t.Errorf("expected 0xFF at offset 2, got %02X", val)
	}
}

func TestHasChangedOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte{0x01}, 0644); err != nil {
		t.Fatal(err)
	}
	b, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	if changed, err := b.HasChangedOnDisk(); err != nil || changed {
		t.Fatalf("fresh file: changed=%v err=%v", changed, err)
	}
	if err := os.WriteFile(path, []byte{0x02}, 0644); err != nil {
		t.Fatal(err)
	}
	if changed, err := b.HasChangedOnDisk(); err != nil || !changed {
		t.Fatalf("rewritten file: changed=%v err=%v", changed, err)
	}
}

func TestSaveWithoutFilename(t *testing.T) {
	if err := New().Save(); err != ErrNoFilename {
		t.Errorf("expected ErrNoFilename, got %v", err)
	}
}

func TestClearHistory(t *testing.T) {
	b := FromBytes([]byte{0x01})
	b.InsertBytes(1, []byte{0x02})
	b.ClearHistory()

	if b.CanUndo() || b.Undo() {
		t.Error("expected no undo after ClearHistory")
	}
	if !b.IsModified() {
		t.Error("expected buffer to stay modified")
	}
}
