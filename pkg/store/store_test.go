package store

import (
	"errors"
	"reflect"
	"testing"
)

func TestChunkRange(t *testing.T) {
	var got [][2]int
	err := ChunkRange(10, 4, func(start, end int) error {
		got = append(got, [2]int{start, end})
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	want := [][2]int{{0, 4}, {4, 8}, {8, 10}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestChunkRange_EmptyAndErrors(t *testing.T) {
	if err := ChunkRange(0, 4, func(int, int) error {
		t.Fatal("fn must not run for empty range")
		return nil
	}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	boom := errors.New("boom")
	calls := 0
	err := ChunkRange(10, 4, func(start, end int) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) || calls != 1 {
		t.Fatalf("expected first-chunk error to stop iteration, got %v after %d calls", err, calls)
	}
}
