package engine

import "github.com/csmplay/csm-mapban-sub000/internal/rules"

// Turn is the resolved next actor: which team may act and what step kind
// is legal. Team is empty for a knife decider slot, which no human plays.
type Turn struct {
	Team string
	Kind rules.StepKind
}

// ResolveActor computes the team entitled to act at the current cursor.
// The second return is false once the draft is terminal: cursor past the
// rule table, or an arena round waiting on the winner handshake.
func ResolveActor(s State) (Turn, bool) {
	if !s.started() {
		return Turn{}, false
	}
	switch {
	case s.Fps != nil:
		return fpsActor(s)
	case s.Arena != nil:
		return arenaActor(s)
	}
	return Turn{}, false
}

// fpsActor alternates from the priority team: even cursor positions belong
// to priority, odd to the opponent. A decider slot with the knife round
// disabled degrades to an ordinary pick for whichever side parity lands on.
func fpsActor(s State) (Turn, bool) {
	d := s.Fps
	if d.Cursor >= len(d.Table) {
		return Turn{}, false
	}
	kind := d.Table[d.Cursor]
	if kind == rules.StepDecider {
		if s.Options.KnifeDecider {
			return Turn{Kind: rules.StepDecider}, true
		}
		kind = rules.StepPick
	}
	team := s.Priority
	if d.Cursor%2 == 1 {
		team = s.OtherTeam(s.Priority)
	}
	return Turn{Team: team, Kind: kind}, true
}

// arenaActor applies the per-round parity rules. Round 1: priority opens
// the mode bans and takes the mode pick; map bans start with the
// non-priority team (which therefore bans the majority) and priority takes
// the map pick. From round 2 the previous winner holds priority and every
// ban; the loser takes every pick.
func arenaActor(s State) (Turn, bool) {
	d := s.Arena
	if d.Phase != PhaseDrafting || d.Cursor >= len(d.Table) {
		return Turn{}, false
	}
	kind := d.Table[d.Cursor]
	loser := s.OtherTeam(s.Priority)

	if d.Round > 1 {
		if kind == rules.StepModeBan || kind == rules.StepBan {
			return Turn{Team: s.Priority, Kind: kind}, true
		}
		return Turn{Team: loser, Kind: kind}, true
	}

	switch kind {
	case rules.StepModeBan:
		if d.Cursor%2 == 0 {
			return Turn{Team: s.Priority, Kind: kind}, true
		}
		return Turn{Team: loser, Kind: kind}, true
	case rules.StepModePick, rules.StepPick:
		return Turn{Team: s.Priority, Kind: kind}, true
	default: // map bans
		if (d.Cursor-modePhaseLen(d.Table))%2 == 0 {
			return Turn{Team: loser, Kind: kind}, true
		}
		return Turn{Team: s.Priority, Kind: kind}, true
	}
}

// modePhaseLen counts the mode steps at the head of an arena table.
func modePhaseLen(table []rules.StepKind) int {
	for i, k := range table {
		if k != rules.StepModeBan && k != rules.StepModePick {
			return i
		}
	}
	return len(table)
}
