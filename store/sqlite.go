package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	_ "github.com/mattn/go-sqlite3"
	"github.com/phuslu/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS portfolios (
	name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS holdings (
	portfolio TEXT NOT NULL REFERENCES portfolios(name),
	seq INTEGER NOT NULL,
	ticker TEXT NOT NULL,
	shares TEXT NOT NULL,
	PRIMARY KEY (portfolio, seq)
);

CREATE TABLE IF NOT EXISTS transactions (
	portfolio TEXT NOT NULL REFERENCES portfolios(name),
	seq INTEGER NOT NULL,
	ticker TEXT NOT NULL,
	shares TEXT NOT NULL,
	day TEXT NOT NULL,
	kind TEXT NOT NULL,
	PRIMARY KEY (portfolio, seq)
);
`

// SQLite keeps all portfolios in a single SQLite database file.
//
// Shares are stored as decimal text to remain exact, and every row keeps its position so that the
// recording order of transactions survives a round trip.
type SQLite struct {
	db     *sql.DB
	logger *log.Logger
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens, and creates if needed, the database at path.
func NewSQLite(path string, logger *log.Logger) (*SQLite, error) {
	if logger == nil {
		logger = discard
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create schema in %q: %w", path, err)
	}
	return &SQLite{db: db, logger: logger}, nil
}

func (s *SQLite) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM portfolios ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLite) Load(ctx context.Context, name string) (*folio.Portfolio, error) {
	var found string
	err := s.db.QueryRowContext(ctx, "SELECT name FROM portfolios WHERE name = ?", name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w %q", folio.ErrUnknownPortfolio, name)
	}
	if err != nil {
		return nil, err
	}

	p := folio.NewPortfolio(name)
	if err := s.loadHoldings(ctx, p); err != nil {
		return nil, fmt.Errorf("cannot load portfolio %q: %w", name, err)
	}
	if err := s.loadTransactions(ctx, p); err != nil {
		return nil, fmt.Errorf("cannot load portfolio %q: %w", name, err)
	}
	s.logger.Debug().Str("portfolio", name).Int("transactions", p.Len()).Msg("portfolio loaded")
	return p, nil
}

func (s *SQLite) loadHoldings(ctx context.Context, p *folio.Portfolio) error {
	rows, err := s.db.QueryContext(ctx, "SELECT ticker, shares FROM holdings WHERE portfolio = ? ORDER BY seq", p.Name())
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ticker, raw string
		if err := rows.Scan(&ticker, &raw); err != nil {
			return err
		}
		shares, err := folio.ParseQuantity(raw)
		if err != nil {
			return fmt.Errorf("invalid shares %q for %s: %w", raw, ticker, err)
		}
		if err := p.HoldQuantity(ticker, shares); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *SQLite) loadTransactions(ctx context.Context, p *folio.Portfolio) error {
	rows, err := s.db.QueryContext(ctx, "SELECT ticker, shares, day, kind FROM transactions WHERE portfolio = ? ORDER BY seq", p.Name())
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ticker, raw, day, kind string
		if err := rows.Scan(&ticker, &raw, &day, &kind); err != nil {
			return err
		}
		shares, err := folio.ParseQuantity(raw)
		if err != nil {
			return fmt.Errorf("invalid shares %q for %s: %w", raw, ticker, err)
		}
		on, err := date.Parse(day)
		if err != nil {
			return err
		}
		k, err := folio.ParseKind(kind)
		if err != nil {
			return err
		}
		tx, err := folio.NewTransaction(k, ticker, shares, on)
		if err != nil {
			return err
		}
		if err := p.Append(tx); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Save replaces the portfolio in a single SQL transaction.
func (s *SQLite) Save(ctx context.Context, p *folio.Portfolio) error {
	if p.Name() == "" {
		return fmt.Errorf("%w: a portfolio name is required", folio.ErrInvalidArgument)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	name := p.Name()
	for _, q := range []string{
		"DELETE FROM transactions WHERE portfolio = ?",
		"DELETE FROM holdings WHERE portfolio = ?",
		"INSERT OR IGNORE INTO portfolios (name) VALUES (?)",
	} {
		if _, err := tx.ExecContext(ctx, q, name); err != nil {
			return err
		}
	}

	seq := 0
	for ticker, shares := range p.Initial() {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO holdings (portfolio, seq, ticker, shares) VALUES (?, ?, ?, ?)",
			name, seq, ticker, shares.String()); err != nil {
			return err
		}
		seq++
	}
	for i, t := range p.Transactions() {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO transactions (portfolio, seq, ticker, shares, day, kind) VALUES (?, ?, ?, ?, ?, ?)",
			name, i, t.Ticker, t.Shares.String(), t.Date.String(), t.Kind.String()); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Debug().Str("portfolio", name).Int("transactions", p.Len()).Msg("portfolio saved")
	return nil
}

func (s *SQLite) Close() error { return s.db.Close() }
