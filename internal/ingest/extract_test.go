package ingest

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractTextPlain(t *testing.T) {
	got, err := ExtractText("notes.txt", []byte("plain text content"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "plain text content" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractTextMarkdownStripsMarkup(t *testing.T) {
	md := "# Pricing\n\nOur **premium** plan costs [see pricing](https://example.com/pricing).\n\n- first item\n- second item\n"
	got, err := ExtractText("pricing.md", []byte(md))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Pricing", "premium", "see pricing", "first item", "second item"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected extracted text to contain %q, got %q", want, got)
		}
	}
	for _, markup := range []string{"**", "](", "https://example.com/pricing", "# "} {
		if strings.Contains(got, markup) {
			t.Fatalf("expected markup %q stripped, got %q", markup, got)
		}
	}
}

func TestExtractTextMarkdownCodeBlock(t *testing.T) {
	md := "Install with:\n\n```\nnpm install widget\n```\n"
	got, err := ExtractText("install.markdown", []byte(md))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "npm install widget") {
		t.Fatalf("expected code block content kept, got %q", got)
	}
}

func TestExtractTextUnsupported(t *testing.T) {
	_, err := ExtractText("photo.png", []byte{0x89, 0x50})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestExtractTextCaseInsensitiveExtension(t *testing.T) {
	got, err := ExtractText("NOTES.TXT", []byte("upper case extension"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "upper case extension" {
		t.Fatalf("unexpected text: %q", got)
	}
}
