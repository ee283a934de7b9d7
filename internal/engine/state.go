package engine

import (
	"slices"

	"github.com/csmplay/csm-mapban-sub000/internal/rules"
)

// NewState validates the title/format/options combination and builds the
// initial draft state for a fresh lobby.
func NewState(title rules.Title, format rules.Format, opts Options) (State, error) {
	s := State{Title: title, Format: format, Options: opts}

	switch title {
	case rules.TitleFPS:
		pool := opts.Pool
		if pool == nil {
			pool = rules.DefaultMapPool()
		}
		table, err := rules.FPSTable(format, len(pool))
		if err != nil {
			return State{}, err
		}
		if opts.KnifeDecider && !rules.HasDecider(format) {
			return State{}, ErrDeciderUnsupported
		}
		s.Fps = &FpsDraft{Table: table, Pool: slices.Clone(pool)}

	case rules.TitleArena:
		if format != rules.FormatBO3 {
			return State{}, rules.ErrUnknownFormat
		}
		if opts.KnifeDecider {
			return State{}, ErrDeciderUnsupported
		}
		if opts.Pool != nil {
			return State{}, ErrCustomPoolUnsupported
		}
		s.Arena = &ArenaDraft{
			Table:    rules.ArenaTable(1),
			ModePool: rules.Modes(),
			Round:    1,
			Phase:    PhaseDrafting,
		}

	default:
		return State{}, ErrUnknownTitle
	}
	return s, nil
}

// clone deep-copies everything a command may mutate so Apply stays
// all-or-nothing: on error the caller's state is untouched.
func (s State) clone() State {
	c := s
	c.Teams = slices.Clone(s.Teams)
	if s.Fps != nil {
		f := *s.Fps
		f.Table = slices.Clone(f.Table)
		f.Pool = slices.Clone(f.Pool)
		f.Bans = slices.Clone(f.Bans)
		f.Picks = slices.Clone(f.Picks)
		c.Fps = &f
	}
	if s.Arena != nil {
		a := *s.Arena
		a.Table = slices.Clone(a.Table)
		a.ModePool = slices.Clone(a.ModePool)
		a.MapPool = slices.Clone(a.MapPool)
		a.BannedModes = slices.Clone(a.BannedModes)
		a.Bans = slices.Clone(a.Bans)
		a.Picks = slices.Clone(a.Picks)
		a.History = slices.Clone(a.History)
		if a.Pending != nil {
			p := *a.Pending
			a.Pending = &p
		}
		c.Arena = &a
	}
	return c
}

// HasTeam reports whether the name holds one of the two team slots.
func (s State) HasTeam(name string) bool {
	return slices.ContainsFunc(s.Teams, func(t TeamSlot) bool { return t.Name == name })
}

// OtherTeam returns the opponent of the named team. Both slots must be
// filled before it is called.
func (s State) OtherTeam(name string) string {
	for _, t := range s.Teams {
		if t.Name != name {
			return t.Name
		}
	}
	return ""
}

// started reports whether both teams are present and priority is resolved.
func (s State) started() bool {
	return len(s.Teams) == 2 && s.Priority != ""
}

// SeriesScore counts confirmed round wins per team. Display only: nothing
// ends an arena session at a best-of threshold.
func (s State) SeriesScore() map[string]int {
	if s.Arena == nil {
		return nil
	}
	score := make(map[string]int, 2)
	for _, t := range s.Teams {
		score[t.Name] = 0
	}
	for _, r := range s.Arena.History {
		score[r.Winner]++
	}
	return score
}

func removeCandidate(pool []string, candidate string) ([]string, bool) {
	i := slices.Index(pool, candidate)
	if i < 0 {
		return pool, false
	}
	return slices.Delete(pool, i, i+1), true
}
