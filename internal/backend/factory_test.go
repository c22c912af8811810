package backend

import (
	"context"
	"path/filepath"
	"testing"
)

func TestTypeIsValid(t *testing.T) {
	cases := []struct {
		bt   Type
		want bool
	}{
		{ExcelBackend, true},
		{SQLiteBackend, true},
		{MemoryBackend, true},
		{Type("redis"), false},
		{Type(""), false},
	}
	for _, tc := range cases {
		if got := tc.bt.IsValid(); got != tc.want {
			t.Errorf("IsValid(%q) = %v, want %v", tc.bt, got, tc.want)
		}
	}
}

func TestCreateMemoryBackend(t *testing.T) {
	f := NewFactory(nil)
	res, err := f.Create(context.Background(), Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Store == nil {
		t.Fatal("expected a store")
	}
	if res.Cleanup != nil {
		t.Fatal("memory backend needs no cleanup")
	}
}

func TestCreateExcelBackend(t *testing.T) {
	f := NewFactory(nil)

	if _, err := f.Create(context.Background(), Config{Type: ExcelBackend}); err == nil {
		t.Fatal("expected error for missing expense file path")
	}

	res, err := f.Create(context.Background(), Config{
		Type:        ExcelBackend,
		ExpenseFile: filepath.Join(t.TempDir(), "expenses.xlsx"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Store == nil {
		t.Fatal("expected a store")
	}
}

func TestCreateInvalidBackend(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.Create(context.Background(), Config{Type: Type("redis")}); err == nil {
		t.Fatal("expected error for invalid backend type")
	}
}
