package engine

import "github.com/csmplay/csm-mapban-sub000/internal/rules"

// Round controller: the winner proposal/confirmation handshake between
// rounds of an arena session. Either team proposes once the round's map is
// picked; only the other team may settle the proposal. A confirmation
// archives the round and seeds the next one with "winner bans first"
// semantics; a rejection returns to the proposal state.

func applyProposeWinner(s State, cmd Command) ([]Event, State, error) {
	if s.Arena == nil {
		return nil, s, ErrNotMultiRound
	}
	if !s.HasTeam(cmd.Team) {
		return nil, s, ErrUnknownTeam
	}
	if !s.HasTeam(cmd.Winner) {
		return nil, s, ErrUnknownTeam
	}
	switch s.Arena.Phase {
	case PhaseDrafting:
		return nil, s, ErrRoundInProgress
	case PhaseAwaitingConfirm:
		return nil, s, ErrProposalPending
	}

	ns := s.clone()
	ns.Arena.Pending = &WinnerProposal{Winner: cmd.Winner, ProposedBy: cmd.Team}
	ns.Arena.Phase = PhaseAwaitingConfirm
	return []Event{{Type: EvtWinnerProposed, Team: cmd.Team, Winner: cmd.Winner, Round: ns.Arena.Round}}, ns, nil
}

func applyConfirmWinner(s State, cmd Command) ([]Event, State, error) {
	if s.Arena == nil {
		return nil, s, ErrNotMultiRound
	}
	if !s.HasTeam(cmd.Team) {
		return nil, s, ErrUnknownTeam
	}
	if s.Arena.Phase != PhaseAwaitingConfirm || s.Arena.Pending == nil {
		return nil, s, ErrNoPendingProposal
	}
	if cmd.Team == s.Arena.Pending.ProposedBy {
		return nil, s, ErrCannotConfirmOwn
	}
	if cmd.Winner != "" && cmd.Winner != s.Arena.Pending.Winner {
		return nil, s, ErrProposalMismatch
	}

	ns := s.clone()
	d := ns.Arena

	if !cmd.Accepted {
		d.Pending = nil
		d.Phase = PhaseAwaitingProposal
		return []Event{{Type: EvtWinnerRejected, Team: cmd.Team, Round: d.Round}}, ns, nil
	}

	winner := d.Pending.Winner
	completed := d.Round
	d.History = append(d.History, RoundResult{
		Round:       completed,
		Mode:        d.ActiveMode,
		BannedModes: d.BannedModes,
		Bans:        d.Bans,
		Picks:       d.Picks,
		Winner:      winner,
	})
	d.LastWinner = winner
	ns.Priority = winner

	// Fresh sub-draft for the next round.
	d.Round = completed + 1
	d.Table = rules.ArenaTable(d.Round)
	d.ModePool = rules.Modes()
	d.MapPool = nil
	d.ActiveMode = ""
	d.BannedModes = nil
	d.Bans = nil
	d.Picks = nil
	d.Cursor = 0
	d.Pending = nil
	d.Phase = PhaseDrafting

	events := []Event{
		{Type: EvtWinnerConfirmed, Team: cmd.Team, Winner: winner, Round: completed},
		{Type: EvtRoundStarted, Round: d.Round},
	}
	if turn, ok := ResolveActor(ns); ok {
		events = append(events, Event{Type: EvtTurnEnabled, Team: turn.Team, Kind: turn.Kind})
	}
	return events, ns, nil
}
