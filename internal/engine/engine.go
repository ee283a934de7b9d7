package engine

import (
	"strings"

	"github.com/csmplay/csm-mapban-sub000/internal/rules"
)

const maxTeamNameLen = 32

// Apply runs one command against the state and returns the facts that
// changed plus the new state. On error the returned state is the input
// unchanged; no partial mutation is ever visible.
func Apply(s State, cmd Command) ([]Event, State, error) {
	switch cmd.Type {
	case CmdSubmitTeamName:
		return applySubmitTeamName(s, cmd)
	case CmdBan, CmdPick, CmdModeBan, CmdModePick:
		return applyDraftAction(s, cmd)
	case CmdProposeWinner:
		return applyProposeWinner(s, cmd)
	case CmdConfirmWinner:
		return applyConfirmWinner(s, cmd)
	default:
		return nil, s, ErrUnsupportedCommand
	}
}

func applySubmitTeamName(s State, cmd Command) ([]Event, State, error) {
	name := strings.TrimSpace(cmd.Team)
	if name == "" || len(name) > maxTeamNameLen {
		return nil, s, ErrInvalidTeamName
	}
	if s.HasTeam(name) {
		return nil, s, ErrTeamNameTaken
	}
	if len(s.Teams) >= 2 {
		return nil, s, ErrTooManyTeams
	}

	ns := s.clone()
	arrival := 1
	for _, t := range ns.Teams {
		if t.Arrival >= arrival {
			arrival = t.Arrival + 1
		}
	}
	ns.Teams = append(ns.Teams, TeamSlot{Name: name, Arrival: arrival})

	events := []Event{{Type: EvtTeamsUpdated, Team: name}}
	if len(ns.Teams) < 2 {
		return events, ns, nil
	}

	// Both teams present: resolve priority once.
	if ns.Options.CoinFlip {
		ns.Priority = ns.Teams[coinFlip()].Name
		events = append(events, Event{Type: EvtCoinFlipped, Team: ns.Priority})
	} else {
		first := ns.Teams[0]
		for _, t := range ns.Teams {
			if t.Arrival < first.Arrival {
				first = t
			}
		}
		ns.Priority = first.Name
	}
	if turn, ok := ResolveActor(ns); ok {
		events = append(events, Event{Type: EvtTurnEnabled, Team: turn.Team, Kind: turn.Kind})
	}
	return events, ns, nil
}

func applyDraftAction(s State, cmd Command) ([]Event, State, error) {
	if !s.started() {
		return nil, s, ErrDraftNotStarted
	}
	if !s.HasTeam(cmd.Team) {
		return nil, s, ErrUnknownTeam
	}
	turn, ok := ResolveActor(s)
	if !ok {
		return nil, s, ErrDraftComplete
	}
	if turn.Kind != stepKindOf(cmd.Type) {
		return nil, s, ErrWrongStepKind
	}
	if !s.Options.AllowOutOfTurn && cmd.Team != turn.Team {
		return nil, s, ErrWrongTurn
	}

	if s.Fps != nil {
		return applyFpsAction(s, cmd)
	}
	return applyArenaAction(s, cmd)
}

func stepKindOf(ct CommandType) rules.StepKind {
	switch ct {
	case CmdBan:
		return rules.StepBan
	case CmdModeBan:
		return rules.StepModeBan
	case CmdModePick:
		return rules.StepModePick
	default:
		return rules.StepPick
	}
}

func applyFpsAction(s State, cmd Command) ([]Event, State, error) {
	ns := s.clone()
	d := ns.Fps

	pool, found := removeCandidate(d.Pool, cmd.Candidate)
	if !found {
		return nil, s, ErrInvalidCandidate
	}
	d.Pool = pool

	var events []Event
	switch cmd.Type {
	case CmdBan:
		d.Bans = append(d.Bans, ActionRecord{Candidate: cmd.Candidate, Team: cmd.Team})
		events = append(events, Event{Type: EvtBanRecorded, Team: cmd.Team, Candidate: cmd.Candidate})
	case CmdPick:
		// For multi-map formats the opponent of the nominating team
		// chooses the side and plays the map, so the record carries the
		// opponent as owner. BO1 keeps the nominator.
		owner := cmd.Team
		if ns.Format != rules.FormatBO1 {
			owner = ns.OtherTeam(cmd.Team)
		}
		d.Picks = append(d.Picks, ActionRecord{Candidate: cmd.Candidate, Team: owner, Side: cmd.Side})
		events = append(events, Event{Type: EvtPickRecorded, Team: owner, Candidate: cmd.Candidate})
	}
	d.Cursor++

	// Knife decider: the sole remaining map is awarded immediately with no
	// owning team, consuming the decider slot in the same action.
	if d.Cursor < len(d.Table) && d.Table[d.Cursor] == rules.StepDecider && ns.Options.KnifeDecider {
		remaining := d.Pool[0]
		d.Pool = d.Pool[1:]
		d.Picks = append(d.Picks, ActionRecord{Candidate: remaining, Side: SideDecider})
		d.Cursor++
		events = append(events, Event{Type: EvtPickRecorded, Candidate: remaining})
	}

	if d.Cursor >= len(d.Table) {
		events = append(events, Event{Type: EvtDraftCompleted})
	} else if turn, ok := ResolveActor(ns); ok {
		events = append(events, Event{Type: EvtTurnEnabled, Team: turn.Team, Kind: turn.Kind})
	}
	return events, ns, nil
}

func applyArenaAction(s State, cmd Command) ([]Event, State, error) {
	ns := s.clone()
	d := ns.Arena

	var events []Event
	switch cmd.Type {
	case CmdModeBan:
		pool, found := removeCandidate(d.ModePool, cmd.Candidate)
		if !found {
			return nil, s, ErrInvalidCandidate
		}
		d.ModePool = pool
		d.BannedModes = append(d.BannedModes, cmd.Candidate)
		events = append(events, Event{Type: EvtModeBanned, Team: cmd.Team, Candidate: cmd.Candidate, Round: d.Round})

	case CmdModePick:
		pool, found := removeCandidate(d.ModePool, cmd.Candidate)
		if !found {
			return nil, s, ErrInvalidCandidate
		}
		maps, ok := rules.MapsForMode(cmd.Candidate)
		if !ok {
			return nil, s, ErrInvalidCandidate
		}
		d.ModePool = pool
		d.ActiveMode = cmd.Candidate
		d.MapPool = maps
		events = append(events, Event{Type: EvtModePicked, Team: cmd.Team, Candidate: cmd.Candidate, Round: d.Round})

	case CmdBan:
		pool, found := removeCandidate(d.MapPool, cmd.Candidate)
		if !found {
			return nil, s, ErrInvalidCandidate
		}
		d.MapPool = pool
		d.Bans = append(d.Bans, ActionRecord{Candidate: cmd.Candidate, Team: cmd.Team, Round: d.Round})
		events = append(events, Event{Type: EvtBanRecorded, Team: cmd.Team, Candidate: cmd.Candidate, Round: d.Round})

	case CmdPick:
		pool, found := removeCandidate(d.MapPool, cmd.Candidate)
		if !found {
			return nil, s, ErrInvalidCandidate
		}
		d.MapPool = pool
		d.Picks = append(d.Picks, ActionRecord{Candidate: cmd.Candidate, Team: cmd.Team, Side: cmd.Side, Round: d.Round})
		events = append(events, Event{Type: EvtPickRecorded, Team: cmd.Team, Candidate: cmd.Candidate, Round: d.Round})
	}
	d.Cursor++

	if d.Cursor >= len(d.Table) {
		// Map picked; the round now waits on the winner handshake.
		d.Phase = PhaseAwaitingProposal
		events = append(events, Event{Type: EvtDraftCompleted, Round: d.Round})
	} else if turn, ok := ResolveActor(ns); ok {
		events = append(events, Event{Type: EvtTurnEnabled, Team: turn.Team, Kind: turn.Kind})
	}
	return events, ns, nil
}
