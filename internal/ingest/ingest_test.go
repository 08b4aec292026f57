package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	path := writeFile(t, "glider.rle", []byte("bo$2bo$3o!\n"))
	r := NewReader(nil, nil)

	res := r.ReadFile(context.Background(), path)
	if !res.OK() {
		t.Fatalf("read failed: %v", res.Err)
	}
	if res.Text != "bo$2bo$3o!\n" || res.Path != path {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestReadFileErrors(t *testing.T) {
	big := writeFile(t, "big.rle", make([]byte, 64))
	binary := writeFile(t, "blob.rle", []byte{0xff, 0xfe, 0x00})

	tests := []struct {
		name    string
		path    string
		max     int64
		wantErr error
	}{
		{"empty path", "", 0, ErrEmptyPath},
		{"missing", filepath.Join(t.TempDir(), "nope.rle"), 0, os.ErrNotExist},
		{"too large", big, 16, ErrTooLarge},
		{"binary", binary, 0, ErrNotText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(nil, nil)
			r.MaxBytes = tt.max
			res := r.ReadFile(context.Background(), tt.path)
			if res.OK() {
				t.Fatal("expected error")
			}
			if !errors.Is(res.Err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, res.Err)
			}
			if res.Text != "" {
				t.Errorf("failed read must carry no text, got %q", res.Text)
			}
		})
	}
}

func TestReadFileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := NewReader(nil, nil).ReadFile(ctx, "whatever.rle")
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", res.Err)
	}
}

func TestReadResolvesOnceThroughPost(t *testing.T) {
	path := writeFile(t, "block.rle", []byte("2o$2o!"))

	posted := make(chan func(), 2)
	r := NewReader(func(fn func()) { posted <- fn }, nil)

	results := make(chan Result, 2)
	r.Read(path, func(res Result) { results <- res })

	var fn func()
	select {
	case fn = <-posted:
	case <-time.After(2 * time.Second):
		t.Fatal("result was never posted")
	}
	if len(results) != 0 {
		t.Fatal("done must not run before the posted function")
	}
	fn()

	res := <-results
	if !res.OK() || res.Text != "2o$2o!" {
		t.Errorf("unexpected result %+v", res)
	}

	select {
	case <-posted:
		t.Error("result posted twice")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestReadFailureIsDistinct(t *testing.T) {
	r := NewReader(nil, nil)
	results := make(chan Result, 1)
	r.Read(filepath.Join(t.TempDir(), "missing.rle"), func(res Result) { results <- res })

	select {
	case res := <-results:
		if res.OK() {
			t.Error("missing file reported as success")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("read never resolved")
	}
}
