package editing

import (
	"bytes"
	"testing"

	"hexedit/internal/buffer"
)

func TestHexColumnOverwrite(t *testing.T) {
	col := NewHexColumn(0)
	doc := buffer.FromBytes([]byte{0x00, 0x00})

	next, ok := col.HandleTextInput(doc, loc(0, 4), "1f", ModeOverwrite)
	if !ok {
		t.Fatal("expected input to be accepted")
	}
	if !bytes.Equal(doc.Data(), []byte{0x1F, 0x00}) {
		t.Errorf("unexpected data % X", doc.Data())
	}
	if next != loc(1, 4) {
		t.Errorf("expected %v, got %v", loc(1, 4), next)
	}
}

func TestHexColumnInsert(t *testing.T) {
	col := NewHexColumn(0)
	doc := buffer.FromBytes([]byte{0x11, 0x22})

	next, ok := col.HandleTextInput(doc, loc(1, 4), "5", ModeInsert)
	if !ok {
		t.Fatal("expected input to be accepted")
	}
	if !bytes.Equal(doc.Data(), []byte{0x11, 0x50, 0x22}) {
		t.Errorf("unexpected data % X", doc.Data())
	}
	if next != loc(1, 0) {
		t.Errorf("expected %v, got %v", loc(1, 0), next)
	}
}

func TestHexColumnAppends(t *testing.T) {
	col := NewHexColumn(0)
	doc := buffer.New()

	if _, ok := col.HandleTextInput(doc, loc(0, 4), "ab", ModeOverwrite); !ok {
		t.Fatal("expected input to be accepted")
	}
	if !bytes.Equal(doc.Data(), []byte{0xAB}) {
		t.Errorf("unexpected data % X", doc.Data())
	}
}

func TestColumnRejectsInvalidText(t *testing.T) {
	tests := []struct {
		name string
		col  Column
		text string
	}{
		{"hex", NewHexColumn(0), "1g"},
		{"binary", NewBinaryColumn(1), "102"},
		{"ascii", NewASCIIColumn(2), "a\tb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := buffer.FromBytes([]byte{0x42, 0x42})
			start := loc(0, tt.col.FirstBitIndex())

			next, ok := tt.col.HandleTextInput(doc, start, tt.text, ModeOverwrite)
			if ok {
				t.Error("expected input to be rejected")
			}
			if next != start {
				t.Errorf("expected %v, got %v", start, next)
			}
			if !bytes.Equal(doc.Data(), []byte{0x42, 0x42}) {
				t.Errorf("document changed to % X", doc.Data())
			}
		})
	}
}

func TestBinaryColumn(t *testing.T) {
	col := NewBinaryColumn(1)
	if col.FirstBitIndex() != 7 {
		t.Fatalf("expected first bit 7, got %d", col.FirstBitIndex())
	}
	doc := buffer.FromBytes([]byte{0x0F})

	next, ok := col.HandleTextInput(doc, loc(0, 7), "1011", ModeOverwrite)
	if !ok {
		t.Fatal("expected input to be accepted")
	}
	if !bytes.Equal(doc.Data(), []byte{0xBF}) {
		t.Errorf("unexpected data % X", doc.Data())
	}
	if next != loc(0, 3) {
		t.Errorf("expected %v, got %v", loc(0, 3), next)
	}
}

func TestASCIIColumn(t *testing.T) {
	col := NewASCIIColumn(2)
	doc := buffer.FromBytes([]byte{'x'})

	next, ok := col.HandleTextInput(doc, loc(0, 0), "hi", ModeInsert)
	if !ok {
		t.Fatal("expected input to be accepted")
	}
	if string(doc.Data()) != "hix" {
		t.Errorf("expected %q, got %q", "hix", doc.Data())
	}
	if next != loc(2, 0) {
		t.Errorf("expected %v, got %v", loc(2, 0), next)
	}
}

func TestColumnStopsWhenDocumentCannotGrow(t *testing.T) {
	col := NewHexColumn(0)
	doc := fixedLength{buffer.FromBytes([]byte{0x00})}

	next, ok := col.HandleTextInput(doc, loc(0, 4), "123", ModeOverwrite)
	if !ok {
		t.Fatal("expected partial input to be accepted")
	}
	if next != loc(1, 4) {
		t.Errorf("expected %v, got %v", loc(1, 4), next)
	}
	if doc.Length() != 1 {
		t.Errorf("expected length 1, got %d", doc.Length())
	}

	if _, ok := col.HandleTextInput(doc, loc(0, 4), "1", ModeInsert); ok {
		t.Error("expected insert into a fixed document to be rejected")
	}
}

func TestCellSteps(t *testing.T) {
	hex := NewHexColumn(0)
	if got := NextCell(hex, loc(3, 4)); got != loc(3, 0) {
		t.Errorf("next: expected %v, got %v", loc(3, 0), got)
	}
	if got := NextCell(hex, loc(3, 0)); got != loc(4, 4) {
		t.Errorf("next: expected %v, got %v", loc(4, 4), got)
	}
	if got := PrevCell(hex, loc(3, 4)); got != loc(2, 0) {
		t.Errorf("prev: expected %v, got %v", loc(2, 0), got)
	}
	if got := PrevCell(hex, loc(0, 4)); got != loc(0, 4) {
		t.Errorf("prev: expected %v, got %v", loc(0, 4), got)
	}
	if got := AlignToCell(hex, loc(1, 6)); got != loc(1, 4) {
		t.Errorf("align: expected %v, got %v", loc(1, 4), got)
	}

	bin := NewBinaryColumn(1)
	if got := PrevCell(bin, loc(2, 7)); got != loc(1, 0) {
		t.Errorf("binary prev: expected %v, got %v", loc(1, 0), got)
	}
	if got := NextCell(bin, loc(2, 0)); got != loc(3, 7) {
		t.Errorf("binary next: expected %v, got %v", loc(3, 7), got)
	}
}
