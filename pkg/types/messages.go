// Package types defines the JSON wire vocabulary between the draft server
// and its clients: inbound action events and outbound notifications.
package types

// Inbound message types.
const (
	MsgSubmitTeamName = "submit_team_name"
	MsgBan            = "ban"
	MsgPick           = "pick"
	MsgModeBan        = "mode_ban"
	MsgModePick       = "mode_pick"
	MsgProposeWinner  = "propose_winner"
	MsgConfirmWinner  = "confirm_winner"
)

// Outbound message types.
const (
	MsgStateSnapshot    = "state_snapshot"
	MsgTeamsUpdated     = "teams_updated"
	MsgCoinFlipResult   = "coin_flip_result"
	MsgTurnEnabled      = "turn_enabled"
	MsgStateMessage     = "state_message"
	MsgBansUpdated      = "bans_updated"
	MsgPicksUpdated     = "picks_updated"
	MsgModeStateUpdated = "mode_state_updated"
	MsgDraftComplete    = "draft_complete"
	MsgRoundComplete    = "round_complete"
	MsgWinnerProposed   = "winner_proposed"
	MsgWinnerRejected   = "winner_rejected"
	MsgWinnerConfirmed  = "winner_confirmed"
	MsgError            = "error"
)

// ClientMessage is one inbound action from a participant's connection.
type ClientMessage struct {
	Type      string `json:"type"`
	Team      string `json:"team,omitempty"`
	Candidate string `json:"candidate,omitempty"`
	Side      string `json:"side,omitempty"`
	Winner    string `json:"winner,omitempty"`
	Accepted  bool   `json:"accepted,omitempty"`
}

// ServerMessage is one outbound notification. Fields are populated per
// Type; unused ones are omitted on the wire.
type ServerMessage struct {
	Type        string       `json:"type"`
	Version     int          `json:"version,omitempty"`
	Team        string       `json:"team,omitempty"`
	Kind        string       `json:"kind,omitempty"`
	Text        string       `json:"text,omitempty"`
	Teams       []TeamView   `json:"teams,omitempty"`
	Bans        []ActionView `json:"bans,omitempty"`
	Picks       []ActionView `json:"picks,omitempty"`
	BannedModes []string     `json:"banned_modes,omitempty"`
	ActiveMode  string       `json:"active_mode,omitempty"`
	Winner      string       `json:"winner,omitempty"`
	Round       int          `json:"round,omitempty"`
	State       *StateView   `json:"state,omitempty"`
	Error       string       `json:"error,omitempty"`
	Code        string       `json:"code,omitempty"`
}

type TeamView struct {
	Name    string `json:"name"`
	Arrival int    `json:"arrival"`
}

type ActionView struct {
	Candidate string `json:"candidate"`
	Team      string `json:"team,omitempty"`
	Side      string `json:"side,omitempty"`
	Round     int    `json:"round,omitempty"`
}

type ProposalView struct {
	Winner     string `json:"winner"`
	ProposedBy string `json:"proposed_by"`
}

type RoundView struct {
	Round       int          `json:"round"`
	Mode        string       `json:"mode"`
	BannedModes []string     `json:"banned_modes,omitempty"`
	Bans        []ActionView `json:"bans,omitempty"`
	Picks       []ActionView `json:"picks,omitempty"`
	Winner      string       `json:"winner"`
}

// StateView is the full read-only projection of a lobby's draft state,
// sent on join and served over HTTP for overlays.
type StateView struct {
	Title       string         `json:"title"`
	Format      string         `json:"format"`
	Teams       []TeamView     `json:"teams"`
	Priority    string         `json:"priority,omitempty"`
	Pool        []string       `json:"pool,omitempty"`
	Cursor      int            `json:"cursor"`
	Bans        []ActionView   `json:"bans,omitempty"`
	Picks       []ActionView   `json:"picks,omitempty"`
	ModePool    []string       `json:"mode_pool,omitempty"`
	BannedModes []string       `json:"banned_modes,omitempty"`
	ActiveMode  string         `json:"active_mode,omitempty"`
	Round       int            `json:"round,omitempty"`
	Phase       string         `json:"phase,omitempty"`
	Pending     *ProposalView  `json:"pending_winner,omitempty"`
	History     []RoundView    `json:"history,omitempty"`
	SeriesScore map[string]int `json:"series_score,omitempty"`
	Turn        *TurnView      `json:"turn,omitempty"`
	Terminal    bool           `json:"terminal"`
}

type TurnView struct {
	Team string `json:"team"`
	Kind string `json:"kind"`
}
