package engine

import (
	"errors"

	"github.com/csmplay/csm-mapban-sub000/internal/rules"
)

// Validation errors: malformed or out-of-turn actions. The lobby keeps its
// state and the caller gets a single-recipient error notification.
var (
	ErrWrongTurn          = errors.New("not your turn")
	ErrWrongStepKind      = errors.New("action does not match current step")
	ErrInvalidCandidate   = errors.New("candidate not in active pool")
	ErrUnknownTeam        = errors.New("unknown team")
	ErrInvalidTeamName    = errors.New("invalid team name")
	ErrTeamNameTaken      = errors.New("team name already taken")
	ErrTooManyTeams       = errors.New("both team slots are taken")
	ErrDraftNotStarted    = errors.New("draft has not started")
	ErrDraftComplete      = errors.New("draft already complete")
	ErrNotMultiRound      = errors.New("not a multi-round session")
	ErrRoundInProgress    = errors.New("round still in progress")
	ErrProposalPending    = errors.New("a winner proposal is already pending")
	ErrNoPendingProposal  = errors.New("no winner proposal pending")
	ErrCannotConfirmOwn   = errors.New("cannot confirm own proposal")
	ErrProposalMismatch   = errors.New("confirmation does not match proposal")
	ErrUnsupportedCommand = errors.New("unsupported command")
)

// Configuration errors: invalid title/format/options combinations at
// creation time.
var (
	ErrUnknownTitle          = errors.New("unknown title")
	ErrDeciderUnsupported    = errors.New("knife decider not supported by format")
	ErrCustomPoolUnsupported = errors.New("custom pool not supported by title")
)

// Kind classifies an error for the gateway boundary.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindConfiguration Kind = "configuration"
	KindInternal      Kind = "internal"
)

var configurationErrs = []error{
	ErrUnknownTitle, ErrDeciderUnsupported, ErrCustomPoolUnsupported,
	rules.ErrUnknownFormat, rules.ErrPoolSize,
}

// KindOf maps an engine error onto the error taxonomy.
func KindOf(err error) Kind {
	for _, c := range configurationErrs {
		if errors.Is(err, c) {
			return KindConfiguration
		}
	}
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrUnsupportedCommand):
		return KindInternal
	default:
		return KindValidation
	}
}
