// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/cricket-stats-service/internal/model"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error if any field errors are present.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// PlayerService defines player-oriented use cases, leaderboards included.
type PlayerService interface {
	AddPlayer(ctx context.Context, name string, role model.Role, team string) (model.Player, error)
	// RecordPerformance reports matched=false, without an error, when the id is unknown.
	RecordPerformance(ctx context.Context, perf model.Performance) (matched bool, err error)
	// ListPlayers returns every player when team is nil.
	ListPlayers(ctx context.Context, team *string) ([]model.Player, error)
	// TeamPlayers backs the team stats page; the team name is required.
	TeamPlayers(ctx context.Context, team string) ([]model.Player, error)
	TopScorers(ctx context.Context) ([]model.ScorerEntry, error)
	TopWicketTakers(ctx context.Context) ([]model.WicketTakerEntry, error)
	Leaderboards(ctx context.Context) (model.Leaderboards, error)
}

// MatchService defines match-oriented use cases.
type MatchService interface {
	AddMatch(ctx context.Context, m model.Match) (model.Match, error)
	ListMatches(ctx context.Context) ([]model.Match, error)
}
