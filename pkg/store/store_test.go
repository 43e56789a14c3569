package store

import (
	"context"
	"testing"

	moltexterrors "github.com/moltext/moltext/pkg/errors"
)

// storeUnderTest lets the memory and file backends share one test suite.
func storeUnderTest(t *testing.T, kind string) Store {
	t.Helper()
	switch kind {
	case "memory":
		return NewMemoryStore()
	case "file":
		s, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewFileStore: %v", err)
		}
		return s
	default:
		t.Fatalf("unknown store kind %q", kind)
		return nil
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for _, kind := range []string{"memory", "file"} {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			s := storeUnderTest(t, kind)
			defer s.Close(ctx)

			rec := &Record{Name: "benzene", Notation: "c1ccccc1", Document: []byte(`{}`)}
			if err := s.Put(ctx, rec); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if rec.ID == "" {
				t.Fatal("Put did not assign an ID")
			}
			if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
				t.Error("Put did not set timestamps")
			}

			got, err := s.Get(ctx, rec.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Name != "benzene" || got.Notation != "c1ccccc1" {
				t.Errorf("Get returned %+v", got)
			}

			byName, err := s.GetByName(ctx, "benzene")
			if err != nil {
				t.Fatalf("GetByName: %v", err)
			}
			if byName.ID != rec.ID {
				t.Errorf("GetByName ID = %q, want %q", byName.ID, rec.ID)
			}
		})
	}
}

func TestStoreNotFound(t *testing.T) {
	for _, kind := range []string{"memory", "file"} {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			s := storeUnderTest(t, kind)
			defer s.Close(ctx)

			_, err := s.Get(ctx, "missing")
			if !moltexterrors.Is(err, moltexterrors.ErrCodeMoleculeNotFound) {
				t.Errorf("Get error = %v, want molecule not found", err)
			}
			_, err = s.GetByName(ctx, "missing")
			if !moltexterrors.Is(err, moltexterrors.ErrCodeMoleculeNotFound) {
				t.Errorf("GetByName error = %v, want molecule not found", err)
			}
		})
	}
}

func TestStoreList(t *testing.T) {
	for _, kind := range []string{"memory", "file"} {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			s := storeUnderTest(t, kind)
			defer s.Close(ctx)

			for _, name := range []string{"toluene", "benzene", "ethanol"} {
				if err := s.Put(ctx, &Record{Name: name}); err != nil {
					t.Fatalf("Put %s: %v", name, err)
				}
			}

			recs, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(recs) != 3 {
				t.Fatalf("List returned %d records, want 3", len(recs))
			}
			for i, want := range []string{"benzene", "ethanol", "toluene"} {
				if recs[i].Name != want {
					t.Errorf("recs[%d].Name = %q, want %q", i, recs[i].Name, want)
				}
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for _, kind := range []string{"memory", "file"} {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			s := storeUnderTest(t, kind)
			defer s.Close(ctx)

			rec := &Record{Name: "benzene"}
			if err := s.Put(ctx, rec); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := s.Delete(ctx, rec.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get(ctx, rec.ID); err == nil {
				t.Error("record still present after Delete")
			}

			// Deleting an absent ID is not an error.
			if err := s.Delete(ctx, "missing"); err != nil {
				t.Errorf("Delete missing: %v", err)
			}
		})
	}
}

func TestStoreUpdateKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec := &Record{Name: "benzene"}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	created := rec.CreatedAt

	rec.Notation = "c1ccccc1"
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put update: %v", err)
	}
	if !rec.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed on update: %v -> %v", created, rec.CreatedAt)
	}
	if rec.UpdatedAt.Before(created) {
		t.Error("UpdatedAt not refreshed")
	}
}

func TestStoreRejectsBadName(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.Put(ctx, &Record{Name: "../escape"})
	if !moltexterrors.Is(err, moltexterrors.ErrCodeInvalidMolecule) {
		t.Errorf("Put error = %v, want invalid molecule", err)
	}
}
