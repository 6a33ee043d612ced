package pgdict

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
)

// mockRow implements pgx.Row.
type mockRow struct {
	scanFunc func(dest ...any) error
}

func (r *mockRow) Scan(dest ...any) error { return r.scanFunc(dest...) }

// mockRows implements pgx.Rows over a word list.
type mockRows struct {
	words []string
	idx   int
}

func (r *mockRows) Close()                                       {}
func (r *mockRows) Err() error                                   { return nil }
func (r *mockRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *mockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *mockRows) RawValues() [][]byte                          { return nil }
func (r *mockRows) Values() ([]any, error)                       { return nil, nil }
func (r *mockRows) Conn() *pgx.Conn                              { return nil }

func (r *mockRows) Next() bool {
	if r.idx >= len(r.words) {
		return false
	}
	r.idx++
	return true
}

func (r *mockRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.words[r.idx-1]
	return nil
}

// mockDB implements DB with canned lexicon rows.
type mockDB struct {
	rows      map[string][]string
	lastExec  []any
	nearWords []string
}

func (db *mockDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	word := args[0].(string)
	return &mockRow{scanFunc: func(dest ...any) error {
		phonemes, ok := db.rows[word]
		if !ok {
			return pgx.ErrNoRows
		}
		*(dest[0].(*[]string)) = phonemes
		return nil
	}}
}

func (db *mockDB) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return &mockRows{words: db.nearWords}, nil
}

func (db *mockDB) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	db.lastExec = args
	return pgconn.CommandTag{}, nil
}

func TestPronounce(t *testing.T) {
	t.Parallel()

	store := New(&mockDB{rows: map[string][]string{
		"hello": {"HH", "EH", "L", "OW"},
		"world": {"W", "ER", "L", "D"},
	}})

	pron, err := store.Pronounce(context.Background(), "Hello World")
	if err != nil {
		t.Fatalf("Pronounce() error = %v", err)
	}
	if got, want := pron.IPA(), "hɛlˠoʊ̯wɝlˠd"; got != want {
		t.Errorf("Pronounce().IPA() = %q, want %q", got, want)
	}
}

func TestPronounceUnknownWord(t *testing.T) {
	t.Parallel()

	store := New(&mockDB{rows: map[string][]string{}})
	_, err := store.Pronounce(context.Background(), "zebra")
	if !errors.Is(err, ErrUnknownWord) {
		t.Fatalf("Pronounce(zebra) error = %v, want ErrUnknownWord", err)
	}
}

func TestUpsertDerivesColumns(t *testing.T) {
	t.Parallel()

	db := &mockDB{rows: map[string][]string{}}
	store := New(db)

	if err := store.Upsert(context.Background(), "Cat", []string{"K", "AE1", "T"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if len(db.lastExec) != 4 {
		t.Fatalf("Exec received %d args, want 4", len(db.lastExec))
	}
	if got, want := db.lastExec[0].(string), "cat"; got != want {
		t.Errorf("word arg = %q, want %q", got, want)
	}
	if got, want := db.lastExec[2].(string), "kæt"; got != want {
		t.Errorf("ipa arg = %q, want %q", got, want)
	}
	vec := db.lastExec[3].(pgvector.Vector)
	if got := vec.Slice(); len(got) != 3 {
		t.Errorf("embedding has %d dimensions, want 3", len(got))
	}
}

func TestUpsertRejectsBadPhonemes(t *testing.T) {
	t.Parallel()

	store := New(&mockDB{rows: map[string][]string{}})
	if err := store.Upsert(context.Background(), "x", []string{"ZZZ"}); err == nil {
		t.Error("Upsert with unknown phoneme succeeded, want error")
	}
}

func TestNearestWords(t *testing.T) {
	t.Parallel()

	store := New(&mockDB{nearWords: []string{"cat", "bat"}})
	pron, err := store.Pronounce(context.Background(), "")
	if err != nil {
		t.Fatalf("Pronounce(\"\") error = %v", err)
	}

	words, err := store.NearestWords(context.Background(), pron, 2)
	if err != nil {
		t.Fatalf("NearestWords() error = %v", err)
	}
	if len(words) != 2 || words[0] != "cat" || words[1] != "bat" {
		t.Errorf("NearestWords() = %v, want [cat bat]", words)
	}
}
