package camera

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestImageStoreRead(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(dir)

	want := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10} // JPEG magic prefix
	if err := os.WriteFile(filepath.Join(dir, "camera_feed_3.jpg"), want, 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}

	got, err := store.Read(3)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("image bytes mismatch: %x", got)
	}
}

func TestImageStoreMissingFile(t *testing.T) {
	store := NewImageStore(t.TempDir())
	if _, err := store.Read(99); !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("want ErrImageNotFound, got %v", err)
	}
}
