package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/valarcon42madrid/Gomoku/internal/config"
	"github.com/valarcon42madrid/Gomoku/internal/game"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.AiDepth = 1
	cfg.TickIntervalMs = 5
	store := config.NewStore(cfg)
	srv := New(game.NewController(game.SettingsFromConfig(cfg)), store, opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func postJSON(t *testing.T, url string, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func getStatus(t *testing.T, url string) StatusResponse {
	t.Helper()
	resp, err := http.Get(url + "/api/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	return status
}

func TestPing(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestStatusBeforeStart(t *testing.T) {
	_, ts := newTestServer(t)
	status := getStatus(t, ts.URL)
	require.Equal(t, "not_started", status.Status)
	require.Equal(t, 19, status.BoardSize)
	require.Len(t, status.Board, 19)
	require.Equal(t, 1, status.NextPlayer)
	require.Equal(t, 10, status.CaptureWinStones)
	require.NotEmpty(t, status.GameID)
}

func TestStartAndMove(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/start", `{"settings":{"mode":"human_vs_human"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "running", body["status"])

	resp, body = postJSON(t, ts.URL+"/api/move", `{"row":9,"col":9}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(2), body["next_player"])

	resp, body = postJSON(t, ts.URL+"/api/move", `{"row":9,"col":9}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body["error"], "occupied")

	status := getStatus(t, ts.URL)
	require.Len(t, status.History, 1)
	require.Equal(t, 9, status.History[0].Row)
	require.Equal(t, 1, status.Board[9][9])
	require.Equal(t, SettingsDTO{Mode: modeHumanVsHuman, HumanPlayer: 1}, status.Settings)
}

func TestStartRejectsBadPayloads(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/start", `{"settings":`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid payload", body["error"])

	resp, body = postJSON(t, ts.URL+"/api/start", `{"settings":{"mode":"team"}}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body["error"], "unknown mode")
}

func TestMoveRejectedOnAITurn(t *testing.T) {
	_, ts := newTestServer(t)
	resp, _ := postJSON(t, ts.URL+"/api/start", `{"settings":{"mode":"ai_vs_human","human_player":2}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := postJSON(t, ts.URL+"/api/move", `{"row":0,"col":0}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "not human turn", body["error"])
}

func TestStopResetsTheBoard(t *testing.T) {
	_, ts := newTestServer(t)
	postJSON(t, ts.URL+"/api/start", `{"settings":{"mode":"human_vs_human"}}`)
	postJSON(t, ts.URL+"/api/move", `{"row":3,"col":3}`)

	resp, body := postJSON(t, ts.URL+"/api/stop", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "not_started", body["status"])
	require.Empty(t, getStatus(t, ts.URL).History)
}

func TestSettingsUpdate(t *testing.T) {
	srv, ts := newTestServer(t)

	cfg := srv.config.Get()
	cfg.BoardSize = 2
	invalid, err := json.Marshal(map[string]any{"config": cfg})
	require.NoError(t, err)
	resp, _ := postJSON(t, ts.URL+"/api/settings", string(invalid))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	cfg.BoardSize = 15
	valid, err := json.Marshal(map[string]any{"config": cfg, "settings": SettingsDTO{Mode: modeAIvsAI}})
	require.NoError(t, err)
	resp, body := postJSON(t, ts.URL+"/api/settings", string(valid))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 15, srv.config.Get().BoardSize)
	require.Equal(t, modeAIvsAI, body["settings"].(map[string]any)["mode"])

	resp, _ = postJSON(t, ts.URL+"/api/start", `{"settings":{}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 15, getStatus(t, ts.URL).BoardSize)
}

func TestRunTicksAIGame(t *testing.T) {
	srv, ts := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go srv.Run(ctx)

	resp, _ := postJSON(t, ts.URL+"/api/start", `{"settings":{"mode":"ai_vs_ai"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Eventually(t, func() bool {
		return len(getStatus(t, ts.URL).History) >= 2
	}, 10*time.Second, 20*time.Millisecond)
}

func TestWebsocketPushesStatusAndHistory(t *testing.T) {
	srv, ts := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go srv.hub.Run(ctx.Done())

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	first := readMessage(t, conn)
	require.Equal(t, "status", first.Type)
	require.Eventually(t, func() bool { return srv.hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	postJSON(t, ts.URL+"/api/start", `{"settings":{"mode":"human_vs_human"}}`)
	require.Equal(t, "reset", readMessage(t, conn).Type)

	postJSON(t, ts.URL+"/api/move", `{"row":4,"col":4}`)
	pushed := map[string]json.RawMessage{}
	for i := 0; i < 2; i++ {
		msg := readMessage(t, conn)
		pushed[msg.Type] = msg.Payload
	}
	require.Contains(t, pushed, "status")
	require.Contains(t, pushed, "history")
	var payload historyPayload
	require.NoError(t, json.Unmarshal(pushed["history"], &payload))
	require.Len(t, payload.History, 1)
	require.Equal(t, 4, payload.History[0].Col)

	require.NoError(t, conn.WriteJSON(wsMessage{Type: "request_status"}))
	require.Equal(t, "status", readMessage(t, conn).Type)
}

func TestWebsocketIdlePing(t *testing.T) {
	_, ts := newTestServer(t, WithPingInterval(20*time.Millisecond))

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Equal(t, "status", readMessage(t, conn).Type)
	require.Equal(t, "ping", readMessage(t, conn).Type)
}

func readMessage(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}
