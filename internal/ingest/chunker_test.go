package ingest

import (
	"strings"
	"testing"
)

func TestSplitTextEmpty(t *testing.T) {
	if got := SplitText(""); got != nil {
		t.Fatalf("expected nil for empty text, got %v", got)
	}
	if got := SplitText("   \n\t  "); got != nil {
		t.Fatalf("expected nil for whitespace-only text, got %v", got)
	}
}

func TestSplitTextSingleChunk(t *testing.T) {
	got := SplitText("a short document")
	if len(got) != 1 || got[0] != "a short document" {
		t.Fatalf("unexpected chunks: %v", got)
	}
}

func TestSplitTextBoundaries(t *testing.T) {
	words := make([]string, 0, chunkWords*2+1)
	for i := 0; i < chunkWords*2+1; i++ {
		words = append(words, "w")
	}

	got := SplitText(strings.Join(words, " "))
	if len(got) != 3 {
		t.Fatalf("expected 3 chunks for %d words, got %d", len(words), len(got))
	}
	if n := len(strings.Fields(got[0])); n != chunkWords {
		t.Fatalf("expected first chunk to hold %d words, got %d", chunkWords, n)
	}
	if n := len(strings.Fields(got[2])); n != 1 {
		t.Fatalf("expected last chunk to hold the remainder, got %d words", n)
	}
}

func TestSplitTextExactMultiple(t *testing.T) {
	words := strings.Fields(strings.Repeat("w ", chunkWords))
	got := SplitText(strings.Join(words, " "))
	if len(got) != 1 {
		t.Fatalf("expected exactly one chunk for %d words, got %d", chunkWords, len(got))
	}
}

func TestSplitTextCollapsesWhitespace(t *testing.T) {
	got := SplitText("hello\n\n  world\t!")
	if len(got) != 1 || got[0] != "hello world !" {
		t.Fatalf("expected collapsed whitespace, got %v", got)
	}
}
