package rag

import (
	"strings"
	"testing"
)

func TestChunkTextEmpty(t *testing.T) {
	if got := ChunkText("", 500, 50); got != nil {
		t.Errorf("empty text should chunk to nil, got %v", got)
	}
	if got := ChunkText("   \n  ", 500, 50); got != nil {
		t.Errorf("whitespace should chunk to nil, got %v", got)
	}
}

func TestChunkTextShort(t *testing.T) {
	chunks := ChunkText("A short scouting note.", 500, 50)
	if len(chunks) != 1 || chunks[0] != "A short scouting note." {
		t.Errorf("short text should be a single chunk, got %v", chunks)
	}
}

func TestChunkTextPrefersParagraphBreak(t *testing.T) {
	para1 := strings.Repeat("a", 80)
	para2 := strings.Repeat("b", 80)
	text := para1 + "\n\n" + para2

	chunks := ChunkText(text, 100, 10)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0] != para1 {
		t.Errorf("first chunk should end at the paragraph break, got %q", chunks[0])
	}
	if !strings.HasSuffix(chunks[1], para2) {
		t.Errorf("second chunk should carry the next paragraph, got %q", chunks[1])
	}
}

func TestChunkTextFallsBackToSentenceEnd(t *testing.T) {
	first := strings.Repeat("a", 78) + ". "
	text := first + strings.Repeat("b", 60)

	chunks := ChunkText(text, 100, 10)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("first chunk should end at the sentence boundary, got %q", chunks[0])
	}
	for i, c := range chunks {
		if len(c) > 100 {
			t.Errorf("chunk %d exceeds size: %d chars", i, len(c))
		}
	}
}

func TestChunkTextOverlap(t *testing.T) {
	// no break points at all: hard cuts with overlap
	text := strings.Repeat("x", 250)

	chunks := ChunkText(text, 100, 20)
	if len(chunks) < 3 {
		t.Fatalf("got %d chunks, want at least 3", len(chunks))
	}
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total <= len(text) {
		t.Error("overlapping chunks should repeat some text")
	}
}
