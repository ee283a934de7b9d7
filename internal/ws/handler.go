// Package ws is the session gateway: one websocket per participant,
// scoped to a lobby code. It translates wire messages into engine
// commands and forwards the lobby's notifications back out. Team identity
// is bound to whatever name the connection submits.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/csmplay/csm-mapban-sub000/internal/engine"
	"github.com/csmplay/csm-mapban-sub000/internal/hub"
	"github.com/csmplay/csm-mapban-sub000/internal/lobby"
	"github.com/csmplay/csm-mapban-sub000/pkg/types"
)

const writeTimeout = 3 * time.Second

func Handler(h *hub.Hub, originPatterns []string, logger *zap.Logger) http.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}
		role := lobby.RoleObserver
		if r.URL.Query().Get("role") == string(lobby.RoleMember) {
			role = lobby.RoleMember
		}

		reply := make(chan *lobby.Lobby, 1)
		h.Inbox() <- hub.GetLobby{Code: code, Reply: reply}
		lb := <-reply
		if lb == nil {
			http.Error(w, "lobby not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			logger.Debug("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := uuid.NewString()
		out := make(chan types.ServerMessage, 16)

		lb.Inbox() <- lobby.Join{ClientID: clientID, Role: role, Outbox: out}
		defer func() { lb.Inbox() <- lobby.Leave{ClientID: clientID} }()

		logger.Debug("client connected",
			zap.String("lobby", code),
			zap.String("client", clientID),
			zap.String("role", string(role)))

		// Writer goroutine: drains the lobby outbox until it closes.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for sm := range out {
				payload, err := json.Marshal(sm)
				if err != nil {
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop. No read deadline: a team may hold its turn
		// indefinitely.
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			cmd, ok := toCommand(cm)
			if !ok {
				writeError(r.Context(), conn, "unknown message type")
				continue
			}

			lb.Inbox() <- lobby.FromClient{ClientID: clientID, Cmd: cmd}
		}
	}
}

func toCommand(m types.ClientMessage) (engine.Command, bool) {
	switch m.Type {
	case types.MsgSubmitTeamName:
		return engine.Command{Type: engine.CmdSubmitTeamName, Team: m.Team}, true
	case types.MsgBan:
		return engine.Command{Type: engine.CmdBan, Team: m.Team, Candidate: m.Candidate}, true
	case types.MsgPick:
		return engine.Command{Type: engine.CmdPick, Team: m.Team, Candidate: m.Candidate, Side: m.Side}, true
	case types.MsgModeBan:
		return engine.Command{Type: engine.CmdModeBan, Team: m.Team, Candidate: m.Candidate}, true
	case types.MsgModePick:
		return engine.Command{Type: engine.CmdModePick, Team: m.Team, Candidate: m.Candidate}, true
	case types.MsgProposeWinner:
		return engine.Command{Type: engine.CmdProposeWinner, Team: m.Team, Winner: m.Winner}, true
	case types.MsgConfirmWinner:
		return engine.Command{Type: engine.CmdConfirmWinner, Team: m.Team, Winner: m.Winner, Accepted: m.Accepted}, true
	default:
		return engine.Command{}, false
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, text string) {
	sm := types.ServerMessage{Type: types.MsgError, Error: text, Code: string(engine.KindValidation)}
	payload, _ := json.Marshal(sm)
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = conn.Write(wctx, websocket.MessageText, payload)
}
