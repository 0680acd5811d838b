package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkers/internal/server/game"
)

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeGame(t *testing.T, rec *httptest.ResponseRecorder) GameResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp GameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder, status int) ErrorResponse {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func newGame(t *testing.T, h http.Handler, fen string) GameResponse {
	t.Helper()
	var body any
	if fen != "" {
		body = NewGameRequest{Position: fen}
	}
	return decodeGame(t, post(t, h, "/api/new_game", body))
}

func TestNewGame(t *testing.T) {
	h := NewHandler(nil)
	rec := post(t, h, "/api/new_game", nil)
	resp := decodeGame(t, rec)

	assert.NotEmpty(t, resp.GameID)
	assert.Equal(t, "1b1b1b1b/b1b1b1b1/1b1b1b1b/8/8/r1r1r1r1/1r1r1r1r/r1r1r1r1 b", resp.Position)
	assert.Equal(t, 1, resp.ToMove)
	assert.Equal(t, StatusOngoing, resp.Status)
	assert.Len(t, resp.LegalMoves, 7)
	assert.Equal(t, -1, resp.ChainFrom)
	assert.Nil(t, resp.Last)
	assert.NotEmpty(t, rec.Header().Get("ETag"))
	assert.Equal(t, 1, h.Games().Len())
}

func TestNewGameFromFEN(t *testing.T) {
	h := NewHandler(game.NewManager())
	resp := newGame(t, h, "8/8/8/8/1b6/2r5/8/8 b")
	assert.True(t, resp.CaptureRequired)
	require.Len(t, resp.LegalMoves, 1)
	assert.Equal(t, LegalMoveDTO{From: 33, To: 51, Jump: true, Captured: 42}, resp.LegalMoves[0])

	e := decodeError(t, post(t, h, "/api/new_game", NewGameRequest{Position: "r7/8/8/8/8/8/8/8 r"}), http.StatusBadRequest)
	assert.Equal(t, "invalid_fen", e.Code)
}

func TestPlay(t *testing.T) {
	h := NewHandler(nil)
	g := newGame(t, h, "")

	rec := post(t, h, "/api/play", PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 17, To: 24}})
	resp := decodeGame(t, rec)
	assert.Equal(t, 0, resp.ToMove)
	assert.Equal(t, 1, resp.Plies)
	require.NotNil(t, resp.Last)
	assert.True(t, resp.Last.TurnOver)
	assert.Equal(t, LegalMoveDTO{From: 17, To: 24, Captured: -1}, resp.Last.Move)
	assert.NotEqual(t, g.Hash, resp.Hash)

	e := decodeError(t, post(t, h, "/api/play", PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 8, To: 17}}), http.StatusBadRequest)
	assert.Equal(t, "wrong_owner", e.Code)
	assert.Contains(t, e.Error, "8 -> 17")

	e = decodeError(t, post(t, h, "/api/play", PlayRequest{GameID: "missing", Move: MoveDTO{From: 8, To: 17}}), http.StatusNotFound)
	assert.Equal(t, "game_not_found", e.Code)
}

func TestJumpChainOverHTTP(t *testing.T) {
	h := NewHandler(nil)
	g := newGame(t, h, "1b6/2r5/8/2r5/8/8/8/6r1 b")

	resp := decodeGame(t, post(t, h, "/api/play", PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 1, To: 19}}))
	assert.Equal(t, StatusJumpChain, resp.Status)
	assert.Equal(t, 19, resp.ChainFrom)
	assert.Equal(t, []JumpDTO{{Landing: 33, Midpoint: 26}}, resp.Continuations)
	assert.Equal(t, 1, resp.ToMove)

	e := decodeError(t, post(t, h, "/api/play", PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 62, To: 53}}), http.StatusConflict)
	assert.Equal(t, "chain_in_progress", e.Code)

	resp = decodeGame(t, post(t, h, "/api/continue", ContinueRequest{GameID: g.GameID, Landing: 37}))
	assert.Equal(t, "invalid_continuation", resp.Warning)
	assert.Equal(t, StatusOngoing, resp.Status)
	assert.Equal(t, 0, resp.ToMove)

	e = decodeError(t, post(t, h, "/api/end_chain", GameRequest{GameID: g.GameID}), http.StatusConflict)
	assert.Equal(t, "no_chain", e.Code)
}

func TestContinueAndEndChain(t *testing.T) {
	h := NewHandler(nil)
	g := newGame(t, h, "1b6/2r5/8/2r5/8/8/8/6r1 b")
	decodeGame(t, post(t, h, "/api/play", PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 1, To: 19}}))
	resp := decodeGame(t, post(t, h, "/api/continue", ContinueRequest{GameID: g.GameID, Landing: 33}))
	assert.Empty(t, resp.Warning)
	assert.Equal(t, "8/8/8/8/1b6/8/8/6r1 r", resp.Position)

	g = newGame(t, h, "1b6/2r5/8/2r5/8/8/8/6r1 b")
	decodeGame(t, post(t, h, "/api/play", PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 1, To: 19}}))
	resp = decodeGame(t, post(t, h, "/api/end_chain", GameRequest{GameID: g.GameID}))
	assert.Equal(t, StatusOngoing, resp.Status)
	require.NotNil(t, resp.Last)
	assert.False(t, resp.Last.Moved)
	assert.True(t, resp.Last.TurnOver)
}

func TestGameOverOverHTTP(t *testing.T) {
	h := NewHandler(nil)
	g := newGame(t, h, "8/8/8/8/1b6/2r5/8/8 b")

	resp := decodeGame(t, post(t, h, "/api/play", PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 33, To: 51}}))
	assert.Equal(t, StatusBlackWins, resp.Status)
	assert.Empty(t, resp.LegalMoves)
	require.NotNil(t, resp.Last)
	assert.Equal(t, 1, resp.Last.Winner)

	e := decodeError(t, post(t, h, "/api/play", PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 51, To: 58}}), http.StatusConflict)
	assert.Equal(t, "game_over", e.Code)
}

func TestStateETag(t *testing.T) {
	h := NewHandler(nil)
	g := newGame(t, h, "")

	rec := post(t, h, "/api/state", GameRequest{GameID: g.GameID})
	resp := decodeGame(t, rec)
	assert.Equal(t, g.Position, resp.Position)
	tag := rec.Header().Get("ETag")
	require.NotEmpty(t, tag)

	req := httptest.NewRequest(http.MethodGet, "/api/state?game_id="+g.GameID, nil)
	req.Header.Set("If-None-Match", tag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())

	decodeGame(t, post(t, h, "/api/play", PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 17, To: 24}}))
	req = httptest.NewRequest(http.MethodGet, "/api/state?game_id="+g.GameID, nil)
	req.Header.Set("If-None-Match", tag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, tag, rec.Header().Get("ETag"))
}

func TestDeleteGame(t *testing.T) {
	h := NewHandler(nil)
	g := newGame(t, h, "")

	rec := post(t, h, "/api/delete", GameRequest{GameID: g.GameID})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	decodeError(t, post(t, h, "/api/state", GameRequest{GameID: g.GameID}), http.StatusNotFound)
	decodeError(t, post(t, h, "/api/delete", GameRequest{GameID: g.GameID}), http.StatusNotFound)
}

func TestRequestErrors(t *testing.T) {
	h := NewHandler(nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/play", nil))
	e := decodeError(t, rec, http.StatusMethodNotAllowed)
	assert.Equal(t, "method_not_allowed", e.Code)
	assert.Equal(t, "POST", rec.Header().Get("Allow"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/play", bytes.NewBufferString("{")))
	e = decodeError(t, rec, http.StatusBadRequest)
	assert.Equal(t, "bad_request", e.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ai_move", nil))
	decodeError(t, rec, http.StatusNotFound)
}

func TestStaticRoutes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "board.html"), []byte("<h1>checkers</h1>"), 0o644))
	mux := NewMux(NewHandler(nil), dir, "")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/web/", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, "/web_mobile/", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?view=desktop", nil))
	assert.Equal(t, "/web/", rec.Header().Get("Location"))
	require.NotEmpty(t, rec.Result().Cookies())
	assert.Equal(t, "web", rec.Result().Cookies()[0].Value)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/web/board.html", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "checkers")

	rec = post(t, mux, "/api/new_game", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIOnlyMux(t *testing.T) {
	mux := NewMux(NewHandler(nil), "", "")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/web/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = post(t, mux, "/api/new_game", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServerListenAndClose(t *testing.T) {
	srv := NewServer(NewMux(NewHandler(nil), "", ""))
	addr, err := srv.Listen("127.0.0.1:0")
	require.NoError(t, err)

	res, err := http.Post("http://"+addr.String()+"/api/new_game", "application/json", nil)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Close(ctx))
}
