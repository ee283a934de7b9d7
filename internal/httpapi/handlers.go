package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/csmplay/csm-mapban-sub000/internal/engine"
	"github.com/csmplay/csm-mapban-sub000/internal/hub"
	"github.com/csmplay/csm-mapban-sub000/internal/lobby"
	"github.com/csmplay/csm-mapban-sub000/internal/rules"
)

// GenerateCode returns a 6-char lobby code.
func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

type createRequest struct {
	Title   string `json:"title"`
	Format  string `json:"format"`
	Options struct {
		CoinFlip       bool     `json:"coin_flip"`
		KnifeDecider   bool     `json:"knife_decider"`
		AllowOutOfTurn bool     `json:"allow_out_of_turn"`
		Admin          bool     `json:"admin"`
		Pool           []string `json:"pool"`
	} `json:"options"`
}

func CreateLobby(h *hub.Hub, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		state, err := engine.NewState(rules.Title(req.Title), rules.Format(req.Format), engine.Options{
			CoinFlip:       req.Options.CoinFlip,
			KnifeDecider:   req.Options.KnifeDecider,
			AllowOutOfTurn: req.Options.AllowOutOfTurn,
			Pool:           req.Options.Pool,
		})
		if err != nil {
			if engine.KindOf(err) == engine.KindConfiguration {
				writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}

		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, "failed to generate code")
				return
			}
			reply := make(chan *lobby.Lobby, 1)
			h.Inbox() <- hub.GetLobby{Code: c, Reply: reply}
			if <-reply == nil {
				code = c
				break
			}
			logger.Debug("code collision, regenerating", zap.String("code", c))
		}

		reply := make(chan *lobby.Lobby, 1)
		h.Inbox() <- hub.CreateLobby{
			Code:         code,
			State:        state,
			AdminCreated: req.Options.Admin,
			Reply:        reply,
		}
		if <-reply == nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to create lobby")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

// GetLobbyState serves the read-only state projection for overlays.
func GetLobbyState(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lb, ok := findLobby(h, chi.URLParam(r, "code"))
		if !ok {
			writeJSONError(w, http.StatusNotFound, "lobby not found")
			return
		}

		reply := make(chan lobby.View, 1)
		lb.Inbox() <- lobby.GetState{Reply: reply}
		view := <-reply

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(view.State)
	}
}

// DeleteLobby tears a lobby down explicitly, the only way an
// administrator-created lobby goes away.
func DeleteLobby(h *hub.Hub, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		lb, ok := findLobby(h, code)
		if !ok {
			writeJSONError(w, http.StatusNotFound, "lobby not found")
			return
		}

		h.Inbox() <- hub.RemoveLobby{Code: code}
		lb.Inbox() <- lobby.Shutdown{}
		logger.Info("lobby deleted", zap.String("code", code))
		w.WriteHeader(http.StatusNoContent)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func findLobby(h *hub.Hub, code string) (*lobby.Lobby, bool) {
	if code == "" {
		return nil, false
	}
	reply := make(chan *lobby.Lobby, 1)
	h.Inbox() <- hub.GetLobby{Code: code, Reply: reply}
	lb := <-reply
	return lb, lb != nil
}

func writeJSONError(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: text})
}
