package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"checkers/internal/checkers"
	"checkers/internal/server/game"
)

const maxBodyBytes = 1 << 16

// Handler serves /api/* for games hosted by a game.Manager.
type Handler struct {
	games *game.Manager
}

func NewHandler(games *game.Manager) *Handler {
	if games == nil {
		games = game.NewManager()
	}
	return &Handler{games: games}
}

func (h *Handler) Games() *game.Manager {
	return h.games
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/new_game":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handleNewGame(w, r)

	case "/api/state":
		if !allow(w, r, http.MethodPost, http.MethodGet) {
			return
		}
		h.handleState(w, r)

	case "/api/play":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handlePlay(w, r)

	case "/api/continue":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handleContinue(w, r)

	case "/api/end_chain":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handleEndChain(w, r)

	case "/api/delete":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handleDelete(w, r)

	default:
		writeError(w, http.StatusNotFound, "not_found", errors.New("no such endpoint"))
	}
}

func allow(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", errors.New("method not allowed"))
	return false
}

// decode reads a JSON body into v. An empty body is allowed when emptyOK is set.
func decode(r *http.Request, v any, emptyOK bool) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) && emptyOK {
		return nil
	}
	return err
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := decode(r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	var start *checkers.Position
	if req.Position != "" {
		pos, err := checkers.DecodePosition(req.Position)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		start = pos
	}
	g, err := h.games.NewGame(start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_position", err)
		return
	}

	snap := g.Snapshot()
	log.Info().Str("game_id", g.ID).Str("position", req.Position).Int("games", h.games.Len()).Msg("new game")
	w.Header().Set("ETag", etag(snap))
	writeJSON(w, http.StatusOK, snapshotToResponse(g.ID, snap))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if r.Method == http.MethodGet {
		req.GameID = r.URL.Query().Get("game_id")
	} else if err := decode(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	g, err := h.games.Get(req.GameID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	snap := g.Snapshot()
	tag := etag(snap)
	w.Header().Set("ETag", tag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == tag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, snapshotToResponse(g.ID, snap))
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := decode(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	from, to := checkers.Square(req.Move.From), checkers.Square(req.Move.To)
	h.mutate(w, req.GameID, func(g *checkers.Game) error {
		_, err := g.Move(from, to)
		return err
	}, log.Debug().Int("from", req.Move.From).Int("to", req.Move.To))
}

func (h *Handler) handleContinue(w http.ResponseWriter, r *http.Request) {
	var req ContinueRequest
	if err := decode(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	landing := checkers.Square(req.Landing)
	h.mutate(w, req.GameID, func(g *checkers.Game) error {
		_, err := g.Continue(landing)
		return err
	}, log.Debug().Int("landing", req.Landing))
}

func (h *Handler) handleEndChain(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := decode(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	h.mutate(w, req.GameID, func(g *checkers.Game) error {
		_, err := g.EndChain()
		return err
	}, log.Debug())
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := decode(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.games.Delete(req.GameID); err != nil {
		writeEngineError(w, err)
		return
	}
	log.Info().Str("game_id", req.GameID).Msg("game deleted")
	w.WriteHeader(http.StatusNoContent)
}

// mutate applies fn to a game and answers with the resulting state. An invalid continuation
// still ends the chain, so it is reported as a warning on a normal response.
func (h *Handler) mutate(w http.ResponseWriter, id string, fn func(*checkers.Game) error, ev *zerolog.Event) {
	var snap checkers.Snapshot
	err := h.games.Update(id, func(g *checkers.Game) error {
		err := fn(g)
		snap = g.Snapshot()
		return err
	})

	warning := ""
	switch {
	case errors.Is(err, checkers.ErrInvalidContinuation):
		warning = checkers.ErrorCode(err)
	case err != nil:
		ev.Str("game_id", id).Err(err).Msg("rejected")
		writeEngineError(w, err)
		return
	}

	resp := snapshotToResponse(id, snap)
	resp.Warning = warning
	ev.Str("game_id", id).Str("status", resp.Status).Msg("played")
	w.Header().Set("ETag", etag(snap))
	writeJSON(w, http.StatusOK, resp)
}

// writeEngineError picks the status for a game or engine error.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNotFound):
		writeError(w, http.StatusNotFound, "game_not_found", err)
	case errors.Is(err, checkers.ErrGameOver),
		errors.Is(err, checkers.ErrChainInProgress),
		errors.Is(err, checkers.ErrNoChain):
		writeError(w, http.StatusConflict, checkers.ErrorCode(err), err)
	default:
		code := checkers.ErrorCode(err)
		if code == "" {
			writeError(w, http.StatusInternalServerError, "internal", err)
			return
		}
		writeError(w, http.StatusBadRequest, code, err)
	}
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("writeJSON")
	}
}
