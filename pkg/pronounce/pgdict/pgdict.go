// Package pgdict implements a PostgreSQL-backed lexicon. Each word stores
// its ARPAbet phonemes and IPA text plus a pgvector embedding, the mean of
// the word's phoneme vectors, for coarse phonetic similarity scans in SQL.
package pgdict

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvec "github.com/pgvector/pgvector-go/pgx"

	"github.com/MrWong99/phonomatch/pkg/distance"
	"github.com/MrWong99/phonomatch/pkg/pronounce"
	"github.com/MrWong99/phonomatch/pkg/speech"
)

// ErrUnknownWord reports a phrase word that has no lexicon row.
var ErrUnknownWord = errors.New("word not in lexicon")

// Schema is the SQL DDL for the lexicon table. Execute it via
// [Store.Migrate] or apply it manually during deployment.
const Schema = `
CREATE EXTENSION IF NOT EXISTS vector;
CREATE TABLE IF NOT EXISTS lexicon (
    word      TEXT PRIMARY KEY,
    arpabet   TEXT[] NOT NULL,
    ipa       TEXT NOT NULL,
    embedding vector(3) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lexicon_embedding ON lexicon USING hnsw (embedding vector_l2_ops);
`

// DB is the database interface used by [Store]. Both *pgxpool.Pool and
// *pgx.Conn satisfy this interface.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store is a lexicon backed by a PostgreSQL database.
type Store struct {
	db DB
}

// Connect opens a connection pool to the database at dsn with pgvector
// types registered on every connection.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pgdict: parse dsn: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgdict: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgdict: ping: %w", err)
	}
	return pool, nil
}

// New creates a store over an open connection or pool. Call [Store.Migrate]
// once before issuing queries.
func New(db DB) *Store {
	return &Store{db: db}
}

// Migrate executes the [Schema] DDL, creating the lexicon table, the
// vector extension, and the embedding index if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("pgdict: migrate: %w", err)
	}
	return nil
}

// Upsert stores the ARPAbet pronunciation of a word, deriving the IPA text
// and the mean phoneme vector.
func (s *Store) Upsert(ctx context.Context, word string, phonemes []string) error {
	pron, err := speech.FromARPAbet(phonemes)
	if err != nil {
		return fmt.Errorf("pgdict: upsert %q: %w", word, err)
	}

	const query = `
		INSERT INTO lexicon (word, arpabet, ipa, embedding)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (word) DO UPDATE
		SET arpabet = EXCLUDED.arpabet, ipa = EXCLUDED.ipa, embedding = EXCLUDED.embedding`

	_, err = s.db.Exec(ctx, query,
		strings.ToLower(word), phonemes, pron.IPA(), meanEmbedding(pron))
	if err != nil {
		return fmt.Errorf("pgdict: upsert %q: %w", word, err)
	}
	return nil
}

// Phonemes returns the ARPAbet sequence stored for a word.
func (s *Store) Phonemes(ctx context.Context, word string) ([]string, error) {
	var phonemes []string
	err := s.db.QueryRow(ctx,
		`SELECT arpabet FROM lexicon WHERE word = $1`,
		strings.ToLower(word)).Scan(&phonemes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("pgdict: %q: %w", word, ErrUnknownWord)
	}
	if err != nil {
		return nil, fmt.Errorf("pgdict: lookup %q: %w", word, err)
	}
	return phonemes, nil
}

// Pronounce looks up every word of the phrase and decodes the combined
// ARPAbet sequence. A word without a row is an error wrapping
// [ErrUnknownWord].
func (s *Store) Pronounce(ctx context.Context, phrase string) (speech.Pronunciation, error) {
	var phonemes []string
	for i, word := range strings.Fields(phrase) {
		entry, err := s.Phonemes(ctx, word)
		if err != nil {
			return speech.Pronunciation{}, err
		}
		if i > 0 {
			phonemes = append(phonemes, " ")
		}
		phonemes = append(phonemes, entry...)
	}
	return speech.FromARPAbet(phonemes)
}

// Pronouncer binds the store to a context, yielding the context-free
// pronouncer interface the matchers consume.
func (s *Store) Pronouncer(ctx context.Context) pronounce.Pronouncer {
	return pronounce.Func(func(phrase string) (speech.Pronunciation, error) {
		return s.Pronounce(ctx, phrase)
	})
}

// NearestWords returns up to k lexicon words ordered by L2 distance
// between their mean phoneme vectors and the pronunciation's. This is a
// coarse SQL-side screen, not the edit distance the matchers rank by.
func (s *Store) NearestWords(ctx context.Context, pron speech.Pronunciation, k int) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT word FROM lexicon ORDER BY embedding <-> $1 LIMIT $2`,
		meanEmbedding(pron), k)
	if err != nil {
		return nil, fmt.Errorf("pgdict: nearest words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("pgdict: scan word: %w", err)
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgdict: nearest words: %w", err)
	}
	return words, nil
}

// meanEmbedding averages the phoneme vectors of a pronunciation. The empty
// pronunciation maps to the origin.
func meanEmbedding(pron speech.Pronunciation) pgvector.Vector {
	var sum [3]float32
	n := pron.Len()
	for i := 0; i < n; i++ {
		v := distance.Embed(pron.At(i))
		for j := range sum {
			sum[j] += v.V[j]
		}
	}
	if n > 0 {
		for j := range sum {
			sum[j] /= float32(n)
		}
	}
	return pgvector.NewVector(sum[:])
}
