package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

// jpegHeader is enough of a JPEG preamble for content-type sniffing.
var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	payload := append(append([]byte{}, jpegHeader...), bytes.Repeat([]byte{0xAB}, 2048)...)

	key, size, mime, err := store.Save(context.Background(), "photo.jpg", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len(payload)) {
		t.Fatalf("size = %d, want %d", size, len(payload))
	}
	if mime != "image/jpeg" {
		t.Fatalf("mime = %q, want image/jpeg", mime)
	}
	if !strings.HasSuffix(key, "_photo.jpg") {
		t.Fatalf("key = %q, want a random prefix before the original name", key)
	}

	reader, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()
	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("stored bytes differ from the original")
	}
}

func TestSaveRejectsTraversalNames(t *testing.T) {
	store := New(t.TempDir())
	if _, _, _, err := store.Save(context.Background(), "../escape.jpg", bytes.NewReader(jpegHeader)); err == nil {
		t.Fatalf("Save accepted a traversal file name")
	}
}

func TestOpenRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../../etc/passwd"); err == nil {
		t.Fatalf("Open accepted a traversal key")
	}
}

func TestSaveSmallFile(t *testing.T) {
	// Files shorter than the sniff window must round-trip intact.
	store := New(t.TempDir())
	payload := []byte("tiny")

	key, size, _, err := store.Save(context.Background(), "tiny.bin", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len(payload)) {
		t.Fatalf("size = %d, want %d", size, len(payload))
	}
	reader, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()
	got, _ := io.ReadAll(reader)
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip = %q, want %q", got, payload)
	}
}
