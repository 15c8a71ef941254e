// Package store persists portfolios, either as text files in a folder or in a SQLite database.
package store

import (
	"context"
	"fmt"
	"io"

	"github.com/etnz/folio"
	"github.com/phuslu/log"
)

// Store loads and saves portfolios by name.
type Store interface {
	// Names returns the names of the stored portfolios in ascending order.
	Names(ctx context.Context) ([]string, error)
	// Load returns the portfolio called name, or an error wrapping folio.ErrUnknownPortfolio.
	Load(ctx context.Context, name string) (*folio.Portfolio, error)
	// Save creates or replaces the stored portfolio.
	Save(ctx context.Context, p *folio.Portfolio) error
	Close() error
}

// Kinds of store.
const (
	KindDir    = "dir"
	KindSQLite = "sqlite"
)

// Open returns the store of the given kind located at path. logger can be nil.
func Open(kind, path string, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = discard
	}
	switch kind {
	case KindDir, "":
		return NewDir(path, logger), nil
	case KindSQLite:
		return NewSQLite(path, logger)
	default:
		return nil, fmt.Errorf("unsupported store kind %q want %q or %q", kind, KindDir, KindSQLite)
	}
}

// LoadRegistry loads every portfolio of s in a new registry validating trades with v.
func LoadRegistry(ctx context.Context, s Store, v *folio.Validator) (*folio.Registry, error) {
	names, err := s.Names(ctx)
	if err != nil {
		return nil, err
	}
	r := folio.NewRegistry(v)
	for _, name := range names {
		p, err := s.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		if err := r.Add(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

var discard = &log.Logger{Writer: log.IOWriter{Writer: io.Discard}}
