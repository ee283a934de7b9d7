package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csmplay/csm-mapban-sub000/internal/rules"
)

// mustApply drives one command and fails the test on rejection.
func mustApply(t *testing.T, s State, cmd Command) ([]Event, State) {
	t.Helper()
	events, ns, err := Apply(s, cmd)
	require.NoError(t, err)
	return events, ns
}

// startedState builds a state with both teams submitted in order.
func startedState(t *testing.T, title rules.Title, format rules.Format, opts Options, teams ...string) State {
	t.Helper()
	s, err := NewState(title, format, opts)
	require.NoError(t, err)
	for _, team := range teams {
		_, s = mustApply(t, s, Command{Type: CmdSubmitTeamName, Team: team})
	}
	return s
}

func hasEvent(events []Event, et EventType) bool {
	for _, ev := range events {
		if ev.Type == et {
			return true
		}
	}
	return false
}

func TestSubmitTeamName(t *testing.T) {
	s, err := NewState(rules.TitleFPS, rules.FormatBO1, Options{Pool: []string{"A", "B", "C", "D"}})
	require.NoError(t, err)

	events, s := mustApply(t, s, Command{Type: CmdSubmitTeamName, Team: "Red"})
	require.True(t, hasEvent(events, EvtTeamsUpdated))
	require.Empty(t, s.Priority, "priority waits for the second team")

	_, _, err = Apply(s, Command{Type: CmdSubmitTeamName, Team: "Red"})
	require.ErrorIs(t, err, ErrTeamNameTaken)

	_, _, err = Apply(s, Command{Type: CmdSubmitTeamName, Team: "   "})
	require.ErrorIs(t, err, ErrInvalidTeamName)

	events, s = mustApply(t, s, Command{Type: CmdSubmitTeamName, Team: "Blue"})
	require.Equal(t, "Red", s.Priority, "first arrival gets priority without a coin flip")
	require.False(t, hasEvent(events, EvtCoinFlipped))
	require.True(t, hasEvent(events, EvtTurnEnabled))

	_, _, err = Apply(s, Command{Type: CmdSubmitTeamName, Team: "Green"})
	require.ErrorIs(t, err, ErrTooManyTeams)

	require.Equal(t, 1, s.Teams[0].Arrival)
	require.Equal(t, 2, s.Teams[1].Arrival)
}

func TestCoinFlipPriority(t *testing.T) {
	orig := coinFlip
	defer func() { coinFlip = orig }()
	coinFlip = func() int { return 1 }

	s := startedState(t, rules.TitleFPS, rules.FormatBO3, Options{CoinFlip: true}, "Red", "Blue")
	require.Equal(t, "Blue", s.Priority)

	coinFlip = func() int { return 0 }
	s = startedState(t, rules.TitleFPS, rules.FormatBO3, Options{CoinFlip: true}, "Red", "Blue")
	require.Equal(t, "Red", s.Priority)
}

func TestCoinFlipEmitsResult(t *testing.T) {
	s, err := NewState(rules.TitleFPS, rules.FormatBO3, Options{CoinFlip: true})
	require.NoError(t, err)
	_, s = mustApply(t, s, Command{Type: CmdSubmitTeamName, Team: "Red"})
	events, s := mustApply(t, s, Command{Type: CmdSubmitTeamName, Team: "Blue"})

	require.True(t, hasEvent(events, EvtCoinFlipped))
	require.Contains(t, []string{"Red", "Blue"}, s.Priority)
}

func TestBO1ForcedPickScenario(t *testing.T) {
	s := startedState(t, rules.TitleFPS, rules.FormatBO1,
		Options{Pool: []string{"A", "B", "C", "D"}}, "Red", "Blue")
	require.Equal(t, "Red", s.Priority)

	_, s = mustApply(t, s, Command{Type: CmdBan, Team: "Red", Candidate: "A"})
	_, s = mustApply(t, s, Command{Type: CmdBan, Team: "Blue", Candidate: "B"})
	_, s = mustApply(t, s, Command{Type: CmdBan, Team: "Red", Candidate: "C"})

	turn, ok := ResolveActor(s)
	require.True(t, ok)
	require.Equal(t, Turn{Team: "Blue", Kind: rules.StepPick}, turn)

	events, s := mustApply(t, s, Command{Type: CmdPick, Team: "Blue", Candidate: "D", Side: "CT"})
	require.True(t, hasEvent(events, EvtDraftCompleted))

	// BO1: the nominating team keeps the pick and chooses the side.
	require.Equal(t, []ActionRecord{{Candidate: "D", Team: "Blue", Side: "CT"}}, s.Fps.Picks)
	require.Empty(t, s.Fps.Pool)

	_, ok = ResolveActor(s)
	require.False(t, ok)
	_, _, err := Apply(s, Command{Type: CmdBan, Team: "Red", Candidate: "D"})
	require.ErrorIs(t, err, ErrDraftComplete)
}

func TestBO3KnifeDeciderAutoResolves(t *testing.T) {
	s := startedState(t, rules.TitleFPS, rules.FormatBO3,
		Options{KnifeDecider: true}, "Red", "Blue")

	steps := []Command{
		{Type: CmdBan, Team: "Red", Candidate: "Ancient"},
		{Type: CmdBan, Team: "Blue", Candidate: "Anubis"},
		{Type: CmdPick, Team: "Red", Candidate: "Dust2", Side: "CT"},
		{Type: CmdPick, Team: "Blue", Candidate: "Inferno", Side: "T"},
		{Type: CmdBan, Team: "Red", Candidate: "Mirage"},
	}
	for _, cmd := range steps {
		_, s = mustApply(t, s, cmd)
	}
	require.Equal(t, 5, s.Fps.Cursor)

	// The sixth ban lands on the decider slot: the cursor advances by two
	// and the sole remaining map is recorded with no owning team.
	events, s := mustApply(t, s, Command{Type: CmdBan, Team: "Blue", Candidate: "Nuke"})
	require.Equal(t, 7, s.Fps.Cursor)
	require.True(t, hasEvent(events, EvtDraftCompleted))

	last := s.Fps.Picks[len(s.Fps.Picks)-1]
	require.Equal(t, ActionRecord{Candidate: "Train", Team: "", Side: SideDecider}, last)
	require.Empty(t, s.Fps.Pool)
	require.Len(t, s.Fps.Bans, 4)
	require.Len(t, s.Fps.Picks, 3)
}

func TestBO3KnifeDisabledDeciderIsOrdinaryPick(t *testing.T) {
	s := startedState(t, rules.TitleFPS, rules.FormatBO3, Options{}, "Red", "Blue")

	steps := []Command{
		{Type: CmdBan, Team: "Red", Candidate: "Ancient"},
		{Type: CmdBan, Team: "Blue", Candidate: "Anubis"},
		{Type: CmdPick, Team: "Red", Candidate: "Dust2"},
		{Type: CmdPick, Team: "Blue", Candidate: "Inferno"},
		{Type: CmdBan, Team: "Red", Candidate: "Mirage"},
		{Type: CmdBan, Team: "Blue", Candidate: "Nuke"},
	}
	for _, cmd := range steps {
		_, s = mustApply(t, s, cmd)
	}

	turn, ok := ResolveActor(s)
	require.True(t, ok)
	require.Equal(t, rules.StepPick, turn.Kind)
	require.Equal(t, "Red", turn.Team)

	_, s = mustApply(t, s, Command{Type: CmdPick, Team: "Red", Candidate: "Train", Side: "CT"})
	require.Equal(t, 7, s.Fps.Cursor)
}

func TestMultiMapPickOwnershipSwaps(t *testing.T) {
	s := startedState(t, rules.TitleFPS, rules.FormatBO3,
		Options{KnifeDecider: true}, "Red", "Blue")

	_, s = mustApply(t, s, Command{Type: CmdBan, Team: "Red", Candidate: "Ancient"})
	_, s = mustApply(t, s, Command{Type: CmdBan, Team: "Blue", Candidate: "Anubis"})

	// Red nominates Dust2; Blue owns it and chooses the side.
	_, s = mustApply(t, s, Command{Type: CmdPick, Team: "Red", Candidate: "Dust2", Side: "T"})
	require.Equal(t, "Blue", s.Fps.Picks[0].Team)

	_, s = mustApply(t, s, Command{Type: CmdPick, Team: "Blue", Candidate: "Inferno", Side: "CT"})
	require.Equal(t, "Red", s.Fps.Picks[1].Team)
}

func TestRejections(t *testing.T) {
	base := startedState(t, rules.TitleFPS, rules.FormatBO3, Options{}, "Red", "Blue")

	cases := []struct {
		name string
		cmd  Command
		want error
	}{
		{"out of turn", Command{Type: CmdBan, Team: "Blue", Candidate: "Dust2"}, ErrWrongTurn},
		{"wrong step kind", Command{Type: CmdPick, Team: "Red", Candidate: "Dust2"}, ErrWrongStepKind},
		{"mode action on fps", Command{Type: CmdModeBan, Team: "Red", Candidate: "Zones"}, ErrWrongStepKind},
		{"unknown team", Command{Type: CmdBan, Team: "Green", Candidate: "Dust2"}, ErrUnknownTeam},
		{"unknown candidate", Command{Type: CmdBan, Team: "Red", Candidate: "Cache"}, ErrInvalidCandidate},
		{"propose winner on fps", Command{Type: CmdProposeWinner, Team: "Red", Winner: "Red"}, ErrNotMultiRound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, after, err := Apply(base, tc.cmd)
			require.ErrorIs(t, err, tc.want)
			require.Equal(t, base, after, "rejected actions must not mutate state")
		})
	}
}

func TestActionsBeforeBothTeams(t *testing.T) {
	s, err := NewState(rules.TitleFPS, rules.FormatBO3, Options{})
	require.NoError(t, err)
	_, s = mustApply(t, s, Command{Type: CmdSubmitTeamName, Team: "Red"})

	_, _, err = Apply(s, Command{Type: CmdBan, Team: "Red", Candidate: "Dust2"})
	require.ErrorIs(t, err, ErrDraftNotStarted)
}

func TestResubmittedCandidateRejectedWithoutChange(t *testing.T) {
	s := startedState(t, rules.TitleFPS, rules.FormatBO3, Options{}, "Red", "Blue")
	_, s = mustApply(t, s, Command{Type: CmdBan, Team: "Red", Candidate: "Dust2"})

	before := s
	_, after, err := Apply(s, Command{Type: CmdBan, Team: "Blue", Candidate: "Dust2"})
	require.ErrorIs(t, err, ErrInvalidCandidate)
	require.Equal(t, before, after)
}

func TestCandidateLeavesPoolExactlyOnce(t *testing.T) {
	s := startedState(t, rules.TitleFPS, rules.FormatBO3, Options{KnifeDecider: true}, "Red", "Blue")

	steps := []Command{
		{Type: CmdBan, Team: "Red", Candidate: "Ancient"},
		{Type: CmdBan, Team: "Blue", Candidate: "Anubis"},
		{Type: CmdPick, Team: "Red", Candidate: "Dust2"},
		{Type: CmdPick, Team: "Blue", Candidate: "Inferno"},
		{Type: CmdBan, Team: "Red", Candidate: "Mirage"},
		{Type: CmdBan, Team: "Blue", Candidate: "Nuke"},
	}
	for _, cmd := range steps {
		before := len(s.Fps.Pool)
		_, s = mustApply(t, s, cmd)
		removed := before - len(s.Fps.Pool)
		if cmd.Candidate == "Nuke" {
			require.Equal(t, 2, removed, "final ban also consumes the decider map")
		} else {
			require.Equal(t, 1, removed)
		}
	}

	seen := map[string]int{}
	for _, r := range s.Fps.Bans {
		seen[r.Candidate]++
	}
	for _, r := range s.Fps.Picks {
		seen[r.Candidate]++
	}
	require.Len(t, seen, 7)
	for candidate, n := range seen {
		require.Equal(t, 1, n, candidate)
	}
}

func TestAllowOutOfTurn(t *testing.T) {
	s := startedState(t, rules.TitleFPS, rules.FormatBO3,
		Options{AllowOutOfTurn: true}, "Red", "Blue")

	// Blue acts on Red's turn; the permissive option lets it through.
	_, s = mustApply(t, s, Command{Type: CmdBan, Team: "Blue", Candidate: "Dust2"})
	require.Equal(t, "Blue", s.Fps.Bans[0].Team)
}

func TestNewStateConfiguration(t *testing.T) {
	cases := []struct {
		name   string
		title  rules.Title
		format rules.Format
		opts   Options
		want   error
	}{
		{"knife on bo1", rules.TitleFPS, rules.FormatBO1, Options{KnifeDecider: true}, ErrDeciderUnsupported},
		{"knife on bo2", rules.TitleFPS, rules.FormatBO2, Options{KnifeDecider: true}, ErrDeciderUnsupported},
		{"bo3 short pool", rules.TitleFPS, rules.FormatBO3, Options{Pool: []string{"A", "B", "C", "D", "E"}}, rules.ErrPoolSize},
		{"unknown format", rules.TitleFPS, rules.Format("bo7"), Options{}, rules.ErrUnknownFormat},
		{"unknown title", rules.Title("moba"), rules.FormatBO3, Options{}, ErrUnknownTitle},
		{"arena wrong format", rules.TitleArena, rules.FormatBO1, Options{}, rules.ErrUnknownFormat},
		{"arena knife", rules.TitleArena, rules.FormatBO3, Options{KnifeDecider: true}, ErrDeciderUnsupported},
		{"arena custom pool", rules.TitleArena, rules.FormatBO3, Options{Pool: []string{"A"}}, ErrCustomPoolUnsupported},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewState(tc.title, tc.format, tc.opts)
			require.ErrorIs(t, err, tc.want)
			require.Equal(t, KindConfiguration, KindOf(err))
		})
	}
}

func TestKindOf(t *testing.T) {
	require.Equal(t, KindValidation, KindOf(ErrWrongTurn))
	require.Equal(t, KindValidation, KindOf(ErrInvalidCandidate))
	require.Equal(t, KindConfiguration, KindOf(ErrDeciderUnsupported))
	require.Equal(t, KindConfiguration, KindOf(rules.ErrPoolSize))
	require.Equal(t, KindInternal, KindOf(ErrUnsupportedCommand))
}
