package multi

import (
	"context"
	"errors"
	"testing"

	"github.com/crimson-sun/sawmill/internal/model"
)

type fakeOutput struct {
	records  []model.EmbeddingRecord
	writeErr error
	closeErr error
	closed   bool
}

func (f *fakeOutput) Write(ctx context.Context, rec model.EmbeddingRecord) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeOutput) Close() error {
	f.closed = true
	return f.closeErr
}

func TestWriteFansOut(t *testing.T) {
	a, b := &fakeOutput{}, &fakeOutput{}
	m := New(a, b)

	rec := model.EmbeddingRecord{LogID: 1}
	if err := m.Write(context.Background(), rec); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if len(a.records) != 1 || len(b.records) != 1 {
		t.Fatalf("deliveries = %d, %d; want 1, 1", len(a.records), len(b.records))
	}
}

func TestWriteContinuesPastFailure(t *testing.T) {
	bad := &fakeOutput{writeErr: errors.New("sink down")}
	good := &fakeOutput{}
	m := New(bad, good)

	err := m.Write(context.Background(), model.EmbeddingRecord{LogID: 1})
	if err == nil {
		t.Fatal("Write() error = nil, want joined error")
	}
	if !errors.Is(err, bad.writeErr) {
		t.Fatalf("Write() error = %v, want to wrap %v", err, bad.writeErr)
	}
	if len(good.records) != 1 {
		t.Fatal("failure in one output starved the other")
	}
}

func TestCloseClosesAll(t *testing.T) {
	a := &fakeOutput{closeErr: errors.New("close failed")}
	b := &fakeOutput{}
	m := New(a, b)

	err := m.Close()
	if !errors.Is(err, a.closeErr) {
		t.Fatalf("Close() error = %v, want to wrap %v", err, a.closeErr)
	}
	if !a.closed || !b.closed {
		t.Fatal("not every output was closed")
	}
}
