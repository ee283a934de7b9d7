// Package engine implements the draft state machine as a pure reducer:
// Apply takes a state and a command and returns the facts that changed,
// the new state, and an error. It never touches a transport; the lobby
// actor owns serialization and broadcasting.
package engine

import "github.com/csmplay/csm-mapban-sub000/internal/rules"

// SideDecider marks the pick recorded for an auto-resolved decider map.
const SideDecider = "DECIDER"

// TeamSlot is one of the two active team assignments. Arrival is a
// monotonic sequence number stamped at submit time; join-order priority
// reads it instead of relying on container ordering.
type TeamSlot struct {
	Name    string
	Arrival int
}

// ActionRecord is one accepted ban or pick. Team is empty for a decider
// pick. Round is stamped for arena-family actions only.
type ActionRecord struct {
	Candidate string
	Team      string
	Side      string
	Round     int
}

// RoundPhase tracks where an arena round sits between drafting and the
// winner confirmation handshake.
type RoundPhase string

const (
	PhaseDrafting         RoundPhase = "drafting"
	PhaseAwaitingProposal RoundPhase = "awaiting_winner_proposal"
	PhaseAwaitingConfirm  RoundPhase = "awaiting_winner_confirmation"
)

// WinnerProposal is a pending winner claim awaiting the other team.
type WinnerProposal struct {
	Winner     string
	ProposedBy string
}

// RoundResult is an archived arena round. Entries are append-only and
// never mutated after archival.
type RoundResult struct {
	Round       int
	Mode        string
	BannedModes []string
	Bans        []ActionRecord
	Picks       []ActionRecord
	Winner      string
}

// FpsDraft is the single-layer map draft payload.
type FpsDraft struct {
	Table  []rules.StepKind
	Pool   []string
	Cursor int
	Bans   []ActionRecord
	Picks  []ActionRecord
}

// ArenaDraft is the two-layer mode-then-map draft payload, carried across
// rounds of a multi-round session.
type ArenaDraft struct {
	Table       []rules.StepKind
	ModePool    []string
	MapPool     []string
	ActiveMode  string
	BannedModes []string
	Cursor      int
	Bans        []ActionRecord
	Picks       []ActionRecord
	Round       int
	Phase       RoundPhase
	Pending     *WinnerProposal
	LastWinner  string
	History     []RoundResult
}

// Options are the per-session knobs fixed at creation time.
type Options struct {
	// CoinFlip resolves priority randomly once two teams are present;
	// when false the first team to submit a name gets priority.
	CoinFlip bool
	// KnifeDecider auto-resolves the decider slot to the sole remaining
	// map with no owning team. Only valid on formats with a decider.
	KnifeDecider bool
	// AllowOutOfTurn skips the acting-team-matches-resolved-actor check,
	// restoring the permissive legacy behavior.
	AllowOutOfTurn bool
	// Pool overrides the default FPS map pool.
	Pool []string
}

// State is the aggregate draft state of one lobby. Exactly one of Fps or
// Arena is set, discriminated by Title.
type State struct {
	Title    rules.Title
	Format   rules.Format
	Options  Options
	Teams    []TeamSlot
	Priority string
	Fps      *FpsDraft
	Arena    *ArenaDraft
}

type CommandType string

const (
	CmdSubmitTeamName CommandType = "SubmitTeamName"
	CmdBan            CommandType = "Ban"
	CmdPick           CommandType = "Pick"
	CmdModeBan        CommandType = "ModeBan"
	CmdModePick       CommandType = "ModePick"
	CmdProposeWinner  CommandType = "ProposeWinner"
	CmdConfirmWinner  CommandType = "ConfirmWinner"
)

// Command is an inbound action against one lobby's state.
type Command struct {
	Type      CommandType
	Team      string
	Candidate string
	Side      string
	Winner    string
	Accepted  bool
}

type EventType string

const (
	EvtTeamsUpdated    EventType = "TeamsUpdated"
	EvtCoinFlipped     EventType = "CoinFlipped"
	EvtTurnEnabled     EventType = "TurnEnabled"
	EvtBanRecorded     EventType = "BanRecorded"
	EvtPickRecorded    EventType = "PickRecorded"
	EvtModeBanned      EventType = "ModeBanned"
	EvtModePicked      EventType = "ModePicked"
	EvtDraftCompleted  EventType = "DraftCompleted"
	EvtWinnerProposed  EventType = "WinnerProposed"
	EvtWinnerRejected  EventType = "WinnerRejected"
	EvtWinnerConfirmed EventType = "WinnerConfirmed"
	EvtRoundStarted    EventType = "RoundStarted"
)

// Event is one fact that changed as the result of an accepted command.
type Event struct {
	Type      EventType
	Team      string
	Kind      rules.StepKind
	Candidate string
	Winner    string
	Round     int
}
