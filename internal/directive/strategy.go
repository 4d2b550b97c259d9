package directive

import (
	"strings"

	"directive-mapper/internal/common"
	"directive-mapper/internal/diagnostic"
	"directive-mapper/internal/match"
)

// MaxStrategiesPerDirective caps the strategy selections of one directive occurrence.
const MaxStrategiesPerDirective = 2

// Strategy is the conversion mode used to produce a destination.
type Strategy int

const (
	// NonConsuming converts from a borrowed source; fields are copied.
	NonConsuming Strategy = iota
	// Consuming converts by taking the source by value; fields are moved.
	Consuming
)

// DefaultStrategy applies when a directive names no strategy.
const DefaultStrategy = NonConsuming

// AllStrategies lists every strategy in canonical order.
var AllStrategies = []Strategy{NonConsuming, Consuming}

// String returns the canonical selector of the strategy.
func (s Strategy) String() string {
	switch s {
	case NonConsuming:
		return "non-consuming"
	case Consuming:
		return "consuming"
	default:
		return common.UnknownStr
	}
}

// IsValid reports whether s is one of the declared strategies.
func (s Strategy) IsValid() bool {
	return s == NonConsuming || s == Consuming
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var selectorNames = []string{"non-consuming", "consuming", "mapper", "into", "all"}

// ParseSelector expands a strategy selector token.
func ParseSelector(token string, pos Pos) ([]Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "non-consuming", "non_consuming", "nonconsuming", "mapper":
		return []Strategy{NonConsuming}, nil
	case "consuming", "into":
		return []Strategy{Consuming}, nil
	case "all":
		return []Strategy{NonConsuming, Consuming}, nil
	default:
		return nil, diagnostic.New(diagnostic.CodeInvalidStrategyIdentifier, pos,
			"invalid strategy %q, available values: [consuming, non-consuming, all]%s",
			token, match.Hint(token, selectorNames))
	}
}

// Strategies is a set of strategies kept in canonical order.
type Strategies []Strategy

// Has reports whether s contains strategy.
func (s Strategies) Has(strategy Strategy) bool {
	for _, x := range s {
		if x == strategy {
			return true
		}
	}

	return false
}

// Normalize removes duplicates and sorts into canonical order.
func (s Strategies) Normalize() Strategies {
	if len(s) == 0 {
		return nil
	}

	out := make(Strategies, 0, len(AllStrategies))
	for _, st := range AllStrategies {
		if s.Has(st) {
			out = append(out, st)
		}
	}

	return out
}

// SelectStrategies expands selectors into a strategy set. Repeats collapse;
// a selector arriving once every strategy is already selected is rejected.
func SelectStrategies(selectors []string, pos Pos) (Strategies, error) {
	var out Strategies

	for _, sel := range selectors {
		if len(out) >= MaxStrategiesPerDirective {
			return nil, diagnostic.New(diagnostic.CodeTooManyStrategies, pos,
				"only %d strategies are available per directive, got extra selector %q",
				MaxStrategiesPerDirective, sel)
		}

		expanded, err := ParseSelector(sel, pos)
		if err != nil {
			return nil, err
		}

		for _, s := range expanded {
			if !out.Has(s) {
				out = append(out, s)
			}
		}
	}

	return out.Normalize(), nil
}
