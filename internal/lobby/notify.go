package lobby

import (
	"fmt"

	"github.com/csmplay/csm-mapban-sub000/internal/engine"
	"github.com/csmplay/csm-mapban-sub000/internal/rules"
	"github.com/csmplay/csm-mapban-sub000/pkg/types"
)

// messagesFor maps one engine fact onto its outbound notifications,
// reading list payloads from the already-updated state.
func (l *Lobby) messagesFor(ev engine.Event) []types.ServerMessage {
	switch ev.Type {
	case engine.EvtTeamsUpdated:
		return []types.ServerMessage{{Type: types.MsgTeamsUpdated, Teams: teamViews(l.state)}}

	case engine.EvtCoinFlipped:
		return []types.ServerMessage{{Type: types.MsgCoinFlipResult, Team: ev.Team}}

	case engine.EvtTurnEnabled:
		return []types.ServerMessage{
			{Type: types.MsgTurnEnabled, Team: ev.Team, Kind: string(ev.Kind)},
			{Type: types.MsgStateMessage, Text: turnText(ev)},
		}

	case engine.EvtBanRecorded:
		return []types.ServerMessage{{Type: types.MsgBansUpdated, Bans: banViews(l.state)}}

	case engine.EvtPickRecorded:
		return []types.ServerMessage{{Type: types.MsgPicksUpdated, Picks: pickViews(l.state)}}

	case engine.EvtModeBanned, engine.EvtModePicked:
		return []types.ServerMessage{{
			Type:        types.MsgModeStateUpdated,
			BannedModes: l.state.Arena.BannedModes,
			ActiveMode:  l.state.Arena.ActiveMode,
		}}

	case engine.EvtDraftCompleted:
		if l.state.Arena != nil {
			return []types.ServerMessage{
				{Type: types.MsgRoundComplete, Round: ev.Round},
				{Type: types.MsgStateMessage, Text: fmt.Sprintf("Round %d drafted, report the winner", ev.Round)},
			}
		}
		return []types.ServerMessage{
			{Type: types.MsgDraftComplete},
			{Type: types.MsgStateMessage, Text: "Draft complete"},
		}

	case engine.EvtWinnerRejected:
		return []types.ServerMessage{{Type: types.MsgWinnerRejected, Team: ev.Team, Round: ev.Round}}

	case engine.EvtWinnerConfirmed:
		return []types.ServerMessage{{Type: types.MsgWinnerConfirmed, Winner: ev.Winner, Round: ev.Round}}

	case engine.EvtRoundStarted:
		sv := l.stateView()
		return []types.ServerMessage{{Type: types.MsgStateSnapshot, State: &sv}}
	}
	return nil
}

func turnText(ev engine.Event) string {
	var verb string
	switch ev.Kind {
	case rules.StepBan:
		verb = "ban a map"
	case rules.StepPick:
		verb = "pick a map"
	case rules.StepModeBan:
		verb = "ban a mode"
	case rules.StepModePick:
		verb = "pick a mode"
	case rules.StepDecider:
		return "Decider map incoming"
	}
	return fmt.Sprintf("%s to %s", ev.Team, verb)
}
