package lobby

import (
	"github.com/csmplay/csm-mapban-sub000/internal/engine"
	"github.com/csmplay/csm-mapban-sub000/pkg/types"
)

func teamViews(s engine.State) []types.TeamView {
	views := make([]types.TeamView, 0, len(s.Teams))
	for _, t := range s.Teams {
		views = append(views, types.TeamView{Name: t.Name, Arrival: t.Arrival})
	}
	return views
}

func actionViews(records []engine.ActionRecord) []types.ActionView {
	views := make([]types.ActionView, 0, len(records))
	for _, r := range records {
		views = append(views, types.ActionView{
			Candidate: r.Candidate,
			Team:      r.Team,
			Side:      r.Side,
			Round:     r.Round,
		})
	}
	return views
}

func banViews(s engine.State) []types.ActionView {
	if s.Arena != nil {
		return actionViews(s.Arena.Bans)
	}
	return actionViews(s.Fps.Bans)
}

func pickViews(s engine.State) []types.ActionView {
	if s.Arena != nil {
		return actionViews(s.Arena.Picks)
	}
	return actionViews(s.Fps.Picks)
}

// stateView projects the full draft state for snapshots and the HTTP read
// path.
func (l *Lobby) stateView() types.StateView {
	s := l.state
	view := types.StateView{
		Title:    string(s.Title),
		Format:   string(s.Format),
		Teams:    teamViews(s),
		Priority: s.Priority,
		Bans:     banViews(s),
		Picks:    pickViews(s),
	}

	turn, ok := engine.ResolveActor(s)
	view.Terminal = s.HasTeam(s.Priority) && !ok
	if ok {
		view.Turn = &types.TurnView{Team: turn.Team, Kind: string(turn.Kind)}
	}

	if s.Fps != nil {
		view.Pool = s.Fps.Pool
		view.Cursor = s.Fps.Cursor
		return view
	}

	a := s.Arena
	view.Cursor = a.Cursor
	view.Pool = a.MapPool
	view.ModePool = a.ModePool
	view.BannedModes = a.BannedModes
	view.ActiveMode = a.ActiveMode
	view.Round = a.Round
	view.Phase = string(a.Phase)
	view.SeriesScore = s.SeriesScore()
	if a.Pending != nil {
		view.Pending = &types.ProposalView{Winner: a.Pending.Winner, ProposedBy: a.Pending.ProposedBy}
	}
	for _, r := range a.History {
		view.History = append(view.History, types.RoundView{
			Round:       r.Round,
			Mode:        r.Mode,
			BannedModes: r.BannedModes,
			Bans:        actionViews(r.Bans),
			Picks:       actionViews(r.Picks),
			Winner:      r.Winner,
		})
	}
	return view
}
