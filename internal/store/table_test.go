package store

import (
	"context"
	"testing"
)

type tableRecord struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestTable_RoundTrip(t *testing.T) {
	st := NewMemoryStore()
	defer func() { _ = st.Close() }()
	ctx := context.Background()

	table := NewTable[[]tableRecord](st, "records")

	if err := table.Save(ctx, []tableRecord{{Name: "a", Count: 1}, {Name: "b", Count: 2}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	records, ok, err := table.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("expected table to exist")
	}
	if len(records) != 2 || records[0].Name != "a" || records[1].Count != 2 {
		t.Errorf("round trip mismatch: %+v", records)
	}
}

func TestTable_Missing(t *testing.T) {
	st := NewMemoryStore()
	defer func() { _ = st.Close() }()
	ctx := context.Background()

	table := NewTable[[]tableRecord](st, "records")

	records, ok, err := table.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Error("expected missing table to report ok=false")
	}
	if records != nil {
		t.Errorf("expected zero value, got %+v", records)
	}
}

func TestTable_CorruptedValue(t *testing.T) {
	st := NewMemoryStore()
	defer func() { _ = st.Close() }()
	ctx := context.Background()

	// A foreign writer left garbage under the table key; the record is
	// treated as absent, never as a fatal error.
	if err := st.Set(ctx, "records", []byte("{not json")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	table := NewTable[[]tableRecord](st, "records")
	_, ok, err := table.Load(ctx)
	if err != nil {
		t.Fatalf("Load of corrupted value failed: %v", err)
	}
	if ok {
		t.Error("expected corrupted value to report ok=false")
	}
}

func TestTable_Clear(t *testing.T) {
	st := NewMemoryStore()
	defer func() { _ = st.Close() }()
	ctx := context.Background()

	table := NewTable[tableRecord](st, "record")
	if err := table.Save(ctx, tableRecord{Name: "a"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := table.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	_, ok, err := table.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Error("expected cleared table to be absent")
	}

	// Clearing twice is a no-op
	if err := table.Clear(ctx); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}
