package amount

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

//go:generate mockgen -source=service.go -destination=provider_mock.go -package=amount
type SeparatorProvider interface {
	Separators(ctx context.Context, localeID string) (Separators, error)
}

type Service struct {
	provider SeparatorProvider
	mode     Mode
}

func NewService(provider SeparatorProvider, mode Mode) *Service {
	return &Service{provider: provider, mode: mode}
}

// Result is the outcome of normalizing one entry of a batch.
type Result struct {
	Input  string
	Amount Parsed
	Err    error
}

func (s *Service) Mode() Mode {
	return s.mode
}

// Normalize resolves the separators of localeID and normalizes raw under the service mode.
// An empty localeID asks the provider for its default convention.
func (s *Service) Normalize(ctx context.Context, raw, localeID string) (Parsed, error) {
	return s.NormalizeWith(ctx, raw, localeID, s.mode)
}

// NormalizeWith behaves like Normalize but with an explicit mode.
func (s *Service) NormalizeWith(ctx context.Context, raw, localeID string, mode Mode) (Parsed, error) {
	seps, err := s.separators(ctx, raw, localeID)
	if err != nil {
		return "", err
	}

	return Parse(raw, seps, mode)
}

// NormalizeBatch normalizes every entry of raws with one separator lookup.
// Per-entry failures are reported in the results; only a provider failure
// aborts the whole batch. Once ctx is done the remaining entries carry ctx.Err().
func (s *Service) NormalizeBatch(ctx context.Context, raws []string, localeID string) ([]Result, error) {
	results := make([]Result, 0, len(raws))
	if len(raws) == 0 {
		return results, nil
	}

	seps, err := s.lookup(ctx, localeID)
	if err != nil {
		return nil, err
	}

	for _, raw := range raws {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{Input: raw, Err: err})
			continue
		}

		parsed, err := Parse(raw, seps, s.mode)
		results = append(results, Result{Input: raw, Amount: parsed, Err: err})
	}

	return results, nil
}

func (s *Service) separators(ctx context.Context, raw, localeID string) (Separators, error) {
	if strings.TrimSpace(raw) == "" {
		return Separators{}, ErrEmpty
	}

	return s.lookup(ctx, localeID)
}

func (s *Service) lookup(ctx context.Context, localeID string) (Separators, error) {
	seps, err := s.provider.Separators(ctx, localeID)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Separators{}, err
		}

		return Separators{}, fmt.Errorf("%w: %w", ErrFormatterUnavailable, err)
	}

	return seps, nil
}
