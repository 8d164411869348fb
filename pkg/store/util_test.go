package store

import (
	"errors"
	"reflect"
	"testing"
)

func TestChunkRange(t *testing.T) {
	var windows [][2]int
	err := ChunkRange(5, 2, func(start, end int) error {
		windows = append(windows, [2]int{start, end})
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	want := [][2]int{{0, 2}, {2, 4}, {4, 5}}
	if !reflect.DeepEqual(windows, want) {
		t.Fatalf("expected %v, got %v", want, windows)
	}
}

func TestChunkRange_ZeroChunkIsOneWindow(t *testing.T) {
	calls := 0
	_ = ChunkRange(3, 0, func(start, end int) error {
		calls++
		if start != 0 || end != 3 {
			t.Fatalf("unexpected window %d..%d", start, end)
		}
		return nil
	})
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestChunkRange_StopsOnError(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	err := ChunkRange(10, 3, func(start, end int) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDedupeStrings(t *testing.T) {
	got := DedupeStrings([]string{"b", "", "a", "b", "c", "a"})
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if DedupeStrings(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}
