package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/etnz/folio"
	"github.com/phuslu/log"
)

const ext = ".txt"

// Dir keeps each portfolio in its own <name>.txt file within a folder, in the portfolio text
// format.
type Dir struct {
	path   string
	logger *log.Logger
}

var _ Store = (*Dir)(nil)

// NewDir returns the store for the folder at path. The folder is created on the first Save.
func NewDir(path string, logger *log.Logger) *Dir {
	if logger == nil {
		logger = discard
	}
	return &Dir{path: path, logger: logger}
}

// filename returns the file of the portfolio called name.
func (d *Dir) filename(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %q cannot be used as a file name", folio.ErrInvalidArgument, name)
	}
	return filepath.Join(d.path, name+ext), nil
}

func (d *Dir) Names(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ext))
	}
	slices.Sort(names)
	return names, nil
}

func (d *Dir) Load(ctx context.Context, name string) (*folio.Portfolio, error) {
	filename, err := d.filename(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w %q in %s", folio.ErrUnknownPortfolio, name, d.path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := folio.DecodePortfolio(f)
	if err != nil {
		return nil, fmt.Errorf("invalid portfolio file %q: %w", filename, err)
	}
	if p.Name() != name {
		return nil, fmt.Errorf("invalid portfolio file %q: it contains portfolio %q", filename, p.Name())
	}
	d.logger.Debug().Str("file", filename).Int("transactions", p.Len()).Msg("portfolio loaded")
	return p, nil
}

// Save writes the portfolio to a temporary file first, then renames it over the previous one.
func (d *Dir) Save(ctx context.Context, p *folio.Portfolio) error {
	filename, err := d.filename(p.Name())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(d.path, "."+p.Name()+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := folio.EncodePortfolio(tmp, p); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write portfolio %q: %w", p.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return err
	}
	d.logger.Debug().Str("file", filename).Int("transactions", p.Len()).Msg("portfolio saved")
	return nil
}

// Close does nothing: files are closed after every operation.
func (d *Dir) Close() error { return nil }
