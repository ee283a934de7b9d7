// Package lobby runs one draft session as a single-goroutine actor. All
// mutations of a lobby's state flow through its inbox in arrival order,
// which preserves the per-lobby serialization the draft engine assumes.
package lobby

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/csmplay/csm-mapban-sub000/internal/engine"
	"github.com/csmplay/csm-mapban-sub000/pkg/types"
)

// Role is a connection's standing in the lobby. Observers receive every
// notification but may not act.
type Role string

const (
	RoleMember   Role = "member"
	RoleObserver Role = "observer"
)

type Msg interface{ isLobbyMsg() }

// Join registers a connection and immediately replies with a full state
// snapshot on its outbox.
type Join struct {
	ClientID string
	Role     Role
	Outbox   chan types.ServerMessage
}

func (Join) isLobbyMsg() {}

type Leave struct{ ClientID string }

func (Leave) isLobbyMsg() {}

// FromClient carries one inbound action. Errors go back to this client
// only; accepted actions fan out to every subscriber.
type FromClient struct {
	ClientID string
	Cmd      engine.Command
}

func (FromClient) isLobbyMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

// delayed re-enters the loop after a reveal timer; broadcasts ride the
// inbox so a timer can never reorder against serialized state changes.
type delayed struct{ msgs []types.ServerMessage }

func (delayed) isLobbyMsg() {}

// View is a read-only projection of the lobby for HTTP and tests.
type View struct {
	Version    int
	NumClients int
	State      types.StateView
}

type client struct {
	outbox chan types.ServerMessage
	role   Role
	team   string
}

type Params struct {
	Code  string
	State engine.State
	// AdminCreated lobbies survive with zero members until explicitly
	// deleted; others tear down when the last member leaves.
	AdminCreated bool
	// RevealDelay sequences the coin-flip notification after the teams
	// update so the UI can animate the flip. Zero disables the delay.
	RevealDelay time.Duration
	Logger      *zap.Logger
	// OnEmpty is called when a non-admin lobby loses its last member,
	// typically wired to the hub's removal.
	OnEmpty func(code string)
}

type Lobby struct {
	code         string
	inbox        chan Msg
	state        engine.State
	version      int
	clients      map[string]*client
	adminCreated bool
	revealDelay  time.Duration
	onEmpty      func(string)
	log          *zap.Logger
	ctx          context.Context
	cancel       context.CancelFunc
}

func New(parent context.Context, p Params) *Lobby {
	ctx, cancel := context.WithCancel(parent)
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	l := &Lobby{
		code:         p.Code,
		inbox:        make(chan Msg, 64),
		state:        p.State,
		clients:      make(map[string]*client),
		adminCreated: p.AdminCreated,
		revealDelay:  p.RevealDelay,
		onEmpty:      p.OnEmpty,
		log:          p.Logger.With(zap.String("lobby", p.Code)),
		ctx:          ctx,
		cancel:       cancel,
	}
	go l.loop()
	return l
}

// Inbox exposes the actor's mailbox to the gateway and tests.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

func (l *Lobby) loop() {
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				l.clients[msg.ClientID] = &client{outbox: msg.Outbox, role: msg.Role}
				sv := l.stateView()
				msg.Outbox <- types.ServerMessage{
					Type:    types.MsgStateSnapshot,
					Version: l.version,
					State:   &sv,
				}

			case Leave:
				c := l.clients[msg.ClientID]
				delete(l.clients, msg.ClientID)
				if c != nil {
					// The actor is the sole sender, so closing here lets
					// the connection's writer goroutine drain and exit.
					close(c.outbox)
				}
				if c != nil && c.role == RoleMember && l.memberCount() == 0 && !l.adminCreated {
					l.log.Info("last member left, tearing down")
					if l.onEmpty != nil {
						l.onEmpty(l.code)
					}
					l.shutdown()
					return
				}

			case FromClient:
				l.handleCommand(msg)

			case delayed:
				for _, sm := range msg.msgs {
					l.deliver(sm)
				}

			case GetState:
				msg.Reply <- View{
					Version:    l.version,
					NumClients: len(l.clients),
					State:      l.stateView(),
				}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

func (l *Lobby) handleCommand(msg FromClient) {
	c := l.clients[msg.ClientID]
	if c == nil {
		return
	}
	if c.role != RoleMember {
		l.sendError(c, engine.KindValidation, "observers are read-only")
		return
	}

	// Reconnect: submitting a name that already holds a slot rebinds this
	// connection to that team instead of claiming a new slot.
	if msg.Cmd.Type == engine.CmdSubmitTeamName && l.state.HasTeam(msg.Cmd.Team) {
		c.team = msg.Cmd.Team
		l.log.Debug("client rebound to team", zap.String("team", c.team))
		l.broadcast(types.ServerMessage{Type: types.MsgTeamsUpdated, Teams: teamViews(l.state)})
		return
	}

	events, newState, err := engine.Apply(l.state, msg.Cmd)
	if err != nil {
		l.sendError(c, engine.KindOf(err), err.Error())
		return
	}
	if msg.Cmd.Type == engine.CmdSubmitTeamName {
		c.team = msg.Cmd.Team
	}
	l.state = newState
	l.version++
	l.dispatch(events)
}

// dispatch converts engine facts into outbound notifications. Everything
// from the coin flip onward is delayed by the reveal timer; the winner
// proposal goes to the opposing team only.
func (l *Lobby) dispatch(events []engine.Event) {
	var later []types.ServerMessage
	delaying := false

	for _, ev := range events {
		if ev.Type == engine.EvtWinnerProposed {
			sm := types.ServerMessage{
				Type:   types.MsgWinnerProposed,
				Team:   ev.Team,
				Winner: ev.Winner,
				Round:  ev.Round,
			}
			l.sendToTeam(l.state.OtherTeam(ev.Team), sm)
			continue
		}
		if ev.Type == engine.EvtCoinFlipped && l.revealDelay > 0 {
			delaying = true
		}
		for _, sm := range l.messagesFor(ev) {
			if delaying {
				// Stamp now: the reveal must carry the version of the flip,
				// not whatever the lobby has advanced to by delivery time.
				sm.Version = l.version
				later = append(later, sm)
			} else {
				l.broadcast(sm)
			}
		}
	}

	if len(later) > 0 {
		time.AfterFunc(l.revealDelay, func() {
			select {
			case l.inbox <- delayed{msgs: later}:
			case <-l.ctx.Done():
			}
		})
	}
}

func (l *Lobby) memberCount() int {
	n := 0
	for _, c := range l.clients {
		if c.role == RoleMember {
			n++
		}
	}
	return n
}

func (l *Lobby) sendError(c *client, kind engine.Kind, text string) {
	l.send(c, types.ServerMessage{Type: types.MsgError, Error: text, Code: string(kind)})
}

func (l *Lobby) sendToTeam(team string, sm types.ServerMessage) {
	for id, c := range l.clients {
		if c.team == team {
			l.sendTo(id, c, sm)
		}
	}
}

func (l *Lobby) send(c *client, sm types.ServerMessage) {
	select {
	case c.outbox <- sm:
	default:
		// Slow client; dropping the message beats blocking the lobby.
	}
}

func (l *Lobby) sendTo(id string, c *client, sm types.ServerMessage) {
	select {
	case c.outbox <- sm:
	default:
		l.log.Warn("dropping slow client", zap.String("client", id))
		close(c.outbox)
		delete(l.clients, id)
	}
}

func (l *Lobby) broadcast(sm types.ServerMessage) {
	sm.Version = l.version
	l.deliver(sm)
}

func (l *Lobby) deliver(sm types.ServerMessage) {
	for id, c := range l.clients {
		l.sendTo(id, c, sm)
	}
}

func (l *Lobby) shutdown() {
	for id, c := range l.clients {
		close(c.outbox)
		delete(l.clients, id)
	}
	l.cancel()
}
