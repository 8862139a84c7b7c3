package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileRoundTrip(t *testing.T) {
	s, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	type slot struct {
		ID    string `json:"id"`
		Start string `json:"start"`
	}
	in := []slot{{ID: "avail_1", Start: "2026-03-01T10:00:00Z"}}
	if err := s.Write(ctx, "scheduling:availability", in); err != nil {
		t.Fatalf("write: %v", err)
	}

	var out []slot
	if err := s.Read(ctx, "scheduling:availability", &out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(out) != 1 || out[0].ID != "avail_1" {
		t.Fatalf("unexpected value after round trip: %v", out)
	}
}

func TestFileMissingKeyKeepsFallback(t *testing.T) {
	s, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	out := []string{"fallback"}
	if err := s.Read(context.Background(), "never:written", &out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(out) != 1 || out[0] != "fallback" {
		t.Fatalf("fallback was touched: %v", out)
	}
}

func TestFileTruncatedPayloadReadsAsAbsent(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFile(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	if err := s.Write(ctx, "wallet:transactions", []string{"tx_1"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "wallet_transactions.json"), []byte(`["tx_1`), 0o644); err != nil {
		t.Fatalf("truncate file: %v", err)
	}

	var out []string
	if err := s.Read(ctx, "wallet:transactions", &out); err != nil {
		t.Fatalf("read truncated: %v", err)
	}
	if out != nil {
		t.Fatalf("expected fallback after truncation, got %v", out)
	}
}
