// Package ingest turns a selected pattern file into text.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"
)

// DefaultMaxBytes caps how much of a file is read.
const DefaultMaxBytes = 8 << 20

var (
	// ErrEmptyPath indicates a read request without a file.
	ErrEmptyPath = errors.New("ingest: empty path")

	// ErrNotText indicates content that is not valid UTF-8.
	ErrNotText = errors.New("ingest: file is not text")

	// ErrTooLarge indicates a file above the reader's byte limit.
	ErrTooLarge = errors.New("ingest: file too large")
)

// Result is the single resolution of a read: either Text or Err is set.
type Result struct {
	Path string
	Text string
	Err  error
}

func (r Result) OK() bool { return r.Err == nil }

// Reader reads files off the caller's thread and hands each Result back
// through Post exactly once.
type Reader struct {
	Post     func(func())
	MaxBytes int64
	Logger   *slog.Logger
}

// NewReader returns a Reader delivering results through post. A nil post
// calls done on the reading goroutine.
func NewReader(post func(func()), logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reader{Post: post, MaxBytes: DefaultMaxBytes, Logger: logger}
}

// Read starts reading path and calls done with the outcome.
func (r *Reader) Read(path string, done func(Result)) {
	post := r.Post
	if post == nil {
		post = func(fn func()) { fn() }
	}
	go func() {
		res := r.read(context.Background(), path)
		post(func() { done(res) })
	}()
}

// ReadFile reads path synchronously.
func (r *Reader) ReadFile(ctx context.Context, path string) Result {
	return r.read(ctx, path)
}

func (r *Reader) read(ctx context.Context, path string) Result {
	if path == "" {
		return Result{Err: ErrEmptyPath}
	}
	if err := ctx.Err(); err != nil {
		return Result{Path: path, Err: err}
	}

	r.Logger.Debug("ingest: reading file", "path", path)
	text, err := readText(path, r.limit())
	if err != nil {
		r.Logger.Warn("ingest: read failed", "path", path, "error", err)
		return Result{Path: path, Err: err}
	}

	r.Logger.Debug("ingest: read complete", "path", path, "bytes", len(text))
	return Result{Path: path, Text: text}
}

func (r *Reader) limit() int64 {
	if r.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return r.MaxBytes
}

func readText(path string, limit int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return "", fmt.Errorf("ingest: read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, path, limit)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrNotText, path)
	}
	return string(data), nil
}
