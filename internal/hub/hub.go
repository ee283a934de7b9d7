// Package hub owns the lobby store: the single keyed collection of live
// draft sessions. Like the lobbies it manages, the hub is an actor; every
// store mutation flows through its inbox.
package hub

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/csmplay/csm-mapban-sub000/internal/engine"
	"github.com/csmplay/csm-mapban-sub000/internal/lobby"
)

type HubMsg interface{ isHubMsg() }

// CreateLobby spins up a lobby for the code, or replies with the existing
// one if the code is already taken.
type CreateLobby struct {
	Code         string
	State        engine.State
	AdminCreated bool
	Reply        chan *lobby.Lobby
}

type GetLobby struct {
	Code  string
	Reply chan *lobby.Lobby
}

type RemoveLobby struct{ Code string }

type ShutdownHub struct{}

func (CreateLobby) isHubMsg() {}
func (GetLobby) isHubMsg()    {}
func (RemoveLobby) isHubMsg() {}
func (ShutdownHub) isHubMsg() {}

type Hub struct {
	inbox       chan HubMsg
	lobbies     map[string]*lobby.Lobby
	revealDelay time.Duration
	log         *zap.Logger
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewHub(parent context.Context, revealDelay time.Duration, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:       make(chan HubMsg, 64),
		lobbies:     make(map[string]*lobby.Lobby),
		revealDelay: revealDelay,
		log:         logger,
		ctx:         ctx,
		cancel:      cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateLobby:
				if lb := h.lobbies[msg.Code]; lb != nil {
					msg.Reply <- lb
					break
				}
				lb := lobby.New(h.ctx, lobby.Params{
					Code:         msg.Code,
					State:        msg.State,
					AdminCreated: msg.AdminCreated,
					RevealDelay:  h.revealDelay,
					Logger:       h.log,
					OnEmpty: func(code string) {
						h.inbox <- RemoveLobby{Code: code}
					},
				})
				h.lobbies[msg.Code] = lb
				h.log.Info("lobby created",
					zap.String("code", msg.Code),
					zap.Bool("admin", msg.AdminCreated))
				msg.Reply <- lb

			case GetLobby:
				msg.Reply <- h.lobbies[msg.Code] // May be nil

			case RemoveLobby:
				if _, ok := h.lobbies[msg.Code]; ok {
					delete(h.lobbies, msg.Code)
					h.log.Info("lobby removed", zap.String("code", msg.Code))
				}

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	for _, lb := range h.lobbies {
		lb.Inbox() <- lobby.Shutdown{}
	}
	clear(h.lobbies)
	h.cancel()
}
