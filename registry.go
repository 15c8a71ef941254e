package folio

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/folio/date"
)

// Registry owns the portfolios of a session, indexed by name.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	validator  *Validator
	portfolios map[string]*Portfolio
}

// NewRegistry returns an empty registry validating trades with v (nil uses the defaults of
// Validator).
func NewRegistry(v *Validator) *Registry {
	return &Registry{
		validator:  v,
		portfolios: make(map[string]*Portfolio),
	}
}

// Add registers a loaded portfolio.
func (r *Registry) Add(p *Portfolio) error {
	if strings.TrimSpace(p.Name()) == "" {
		return fmt.Errorf("%w: a portfolio name is required", ErrInvalidArgument)
	}
	if _, exists := r.portfolios[p.Name()]; exists {
		return fmt.Errorf("%w: portfolio %q already exists", ErrInvalidArgument, p.Name())
	}
	r.portfolios[p.Name()] = p
	return nil
}

// Portfolio returns the portfolio called name.
func (r *Registry) Portfolio(name string) (*Portfolio, error) {
	p, ok := r.portfolios[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPortfolio, name)
	}
	return p, nil
}

// Names returns the names of all portfolios in ascending order.
func (r *Registry) Names() []string { return slices.Sorted(maps.Keys(r.portfolios)) }

// Len returns the number of portfolios.
func (r *Registry) Len() int { return len(r.portfolios) }

// findOrCreate returns the portfolio called name, creating it if needed.
func (r *Registry) findOrCreate(name string) *Portfolio {
	p, ok := r.portfolios[name]
	if !ok {
		p = NewPortfolio(name)
		r.portfolios[name] = p
	}
	return p
}

// Create adds starting shares of ticker to the portfolio called name, creating it if needed.
func (r *Registry) Create(name, ticker string, shares float64) (*Portfolio, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: a portfolio name is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(ticker) == "" {
		return nil, fmt.Errorf("%w: a ticker is required", ErrInvalidArgument)
	}
	if !finite(shares) || shares <= 0 {
		return nil, fmt.Errorf("%w: number of shares must be greater than zero, got %v", ErrInvalidArgument, shares)
	}
	p := r.findOrCreate(name)
	return p, p.Hold(ticker, shares)
}

// Buy validates and records a purchase in the portfolio called name, creating it if needed.
func (r *Registry) Buy(name, ticker string, shares float64, on date.Date) (*Portfolio, error) {
	if err := r.validator.Trade(name, ticker, shares, on); err != nil {
		return nil, err
	}
	p := r.findOrCreate(name)
	return p, p.Buy(ticker, shares, on)
}

// Sell validates and records a sale in the portfolio called name, creating it if needed.
func (r *Registry) Sell(name, ticker string, shares float64, on date.Date) (*Portfolio, error) {
	if err := r.validator.Trade(name, ticker, shares, on); err != nil {
		return nil, err
	}
	p := r.findOrCreate(name)
	return p, p.Sell(ticker, shares, on)
}
