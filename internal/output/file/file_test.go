package file

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/crimson-sun/sawmill/internal/model"
)

func testRecord(id int64) model.EmbeddingRecord {
	return model.EmbeddingRecord{
		LogID:      id,
		PacketName: "gcc-13.2.1",
		Dimension:  2,
		Vector:     []float64{1, 0},
		Utilities:  []string{"gcc", "make"},
	}
}

func TestWriteNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")
	o, err := New(path, WithLegend())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := int64(1); i <= 3; i++ {
		if err := o.Write(context.Background(), testRecord(i)); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := o.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var count int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		count++
		var rec model.EmbeddingRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("line %d not valid JSON: %v", count, err)
		}
		if rec.LogID != int64(count) || len(rec.Utilities) != 2 {
			t.Errorf("line %d = %+v", count, rec)
		}
	}
	if count != 3 {
		t.Fatalf("lines = %d, want 3", count)
	}
}

func TestWriteStripsLegendByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")
	o, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := o.Write(context.Background(), testRecord(1)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := o.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var rec model.EmbeddingRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatal(err)
	}
	if rec.Utilities != nil {
		t.Fatalf("Utilities = %v, want stripped", rec.Utilities)
	}
}

func TestAppendAcrossReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")

	for i := int64(1); i <= 2; i++ {
		o, err := New(path)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if err := o.Write(context.Background(), testRecord(i)); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if err := o.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Fatalf("lines = %d, want 2 (append, not truncate)", lines)
	}
}

func TestRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")
	// Small cap and a tiny buffer so every record hits the file promptly.
	o, err := New(path, WithMaxSize(150), WithBufSize(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := int64(1); i <= 5; i++ {
		if err := o.Write(context.Background(), testRecord(i)); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := o.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("current file missing: %v", err)
	}
	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("rotated file missing: %v", err)
	}
}
