package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbeisheim/roulette-backend/internal/model"
	"github.com/benbeisheim/roulette-backend/internal/random"
	"github.com/benbeisheim/roulette-backend/internal/service"
	"github.com/benbeisheim/roulette-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, draws ...int) (*fiber.App, *service.TableService) {
	t.Helper()
	tm := service.NewTableManager(model.RulesShrinking, func() (random.Source, error) {
		return random.NewSequence(draws...), nil
	})
	ts := service.NewTableService(tm, 0)
	app := fiber.New()
	Register(app, ts, nil)
	return app, ts
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, out interface{}) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createTable(t *testing.T, app *fiber.App) string {
	t.Helper()
	var created struct {
		TableID string `json:"table_id"`
	}
	status := doJSON(t, app, http.MethodPost, "/api/table/create", "", &created)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, created.TableID)
	return created.TableID
}

type spinResponse struct {
	Spun    bool           `json:"spun"`
	Outcome *model.Outcome `json:"outcome"`
}

func TestTableLifecycle(t *testing.T) {
	app, ts := newTestApp(t, model.SafeChambers)
	tableID := createTable(t, app)

	var added struct {
		Added bool              `json:"added"`
		State model.ClientState `json:"state"`
	}
	status := doJSON(t, app, http.MethodPost, "/api/table/"+tableID+"/players", `{"name":"Ana"}`, &added)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, added.Added)
	require.Len(t, added.State.Players, 1)
	assert.Equal(t, "Ana", added.State.Players[0].Name)

	var spin spinResponse
	status = doJSON(t, app, http.MethodPost, "/api/table/"+tableID+"/spin/0", "", &spin)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, spin.Spun)
	require.NotNil(t, spin.Outcome)
	assert.Equal(t, model.OutcomeFatal, *spin.Outcome)

	require.Eventually(t, func() bool {
		state, err := ts.GetTableState(tableID)
		return err == nil && !state.Spinning
	}, time.Second, 5*time.Millisecond)

	var state model.ClientState
	status = doJSON(t, app, http.MethodGet, "/api/table/"+tableID, "", &state)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, state.Players[0].Eliminated)
	require.NotNil(t, state.Result)
	assert.Equal(t, model.OutcomeFatal, *state.Result)

	spin = spinResponse{}
	doJSON(t, app, http.MethodPost, "/api/table/"+tableID+"/spin/0", "", &spin)
	assert.False(t, spin.Spun)
	assert.Nil(t, spin.Outcome)

	state = model.ClientState{}
	status = doJSON(t, app, http.MethodPost, "/api/table/"+tableID+"/reset", "", &state)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, state.Players)

	status = doJSON(t, app, http.MethodDelete, "/api/table/"+tableID, "", nil)
	assert.Equal(t, http.StatusNoContent, status)
	status = doJSON(t, app, http.MethodGet, "/api/table/"+tableID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAddPlayerBounds(t *testing.T) {
	app, _ := newTestApp(t, 0)
	tableID := createTable(t, app)

	var added struct {
		Added bool `json:"added"`
	}
	doJSON(t, app, http.MethodPost, "/api/table/"+tableID+"/players", `{"name":""}`, &added)
	assert.False(t, added.Added)

	for _, name := range []string{"Ana", "Bea", "Cid", "Dao"} {
		doJSON(t, app, http.MethodPost, "/api/table/"+tableID+"/players", `{"name":"`+name+`"}`, &added)
		require.True(t, added.Added)
	}
	doJSON(t, app, http.MethodPost, "/api/table/"+tableID+"/players", `{"name":"Eva"}`, &added)
	assert.False(t, added.Added)
}

func TestBadRequests(t *testing.T) {
	app, _ := newTestApp(t, 0)
	tableID := createTable(t, app)

	status := doJSON(t, app, http.MethodPost, "/api/table/"+tableID+"/spin/first", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = doJSON(t, app, http.MethodPost, "/api/table/"+tableID+"/players", `{"name":`, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUnknownTableIsNotFound(t *testing.T) {
	app, _ := newTestApp(t, 0)

	var body map[string]string
	status := doJSON(t, app, http.MethodGet, "/api/table/missing", "", &body)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, service.ErrTableNotFound.Error(), body["error"])

	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodPost, "/api/table/missing/spin/0", "", nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodPost, "/api/table/missing/reset", "", nil))
}

func TestHandleMessage(t *testing.T) {
	_, ts := newTestApp(t, 0)
	tableID, err := ts.CreateTable()
	require.NoError(t, err)
	wsc := NewWebSocketController(ts)

	require.NoError(t, wsc.handleMessage(tableID, ws.Message{
		Type:    ws.MessageTypeSetName,
		Payload: json.RawMessage(`{"name":"Ana"}`),
	}))
	require.NoError(t, wsc.handleMessage(tableID, ws.Message{Type: ws.MessageTypeAddPlayer}))
	require.NoError(t, wsc.handleMessage(tableID, ws.Message{
		Type:    ws.MessageTypeSpin,
		Payload: json.RawMessage(`{"playerIndex":0}`),
	}))

	state, err := ts.GetTableState(tableID)
	require.NoError(t, err)
	require.Len(t, state.Players, 1)
	assert.Equal(t, "Ana", state.Players[0].Name)
	assert.Equal(t, 1, state.Players[0].Lives)

	require.NoError(t, wsc.handleMessage(tableID, ws.Message{Type: ws.MessageTypeReset}))
	state, err = ts.GetTableState(tableID)
	require.NoError(t, err)
	assert.Empty(t, state.Players)
}

func TestHandleMessageErrors(t *testing.T) {
	_, ts := newTestApp(t, 0)
	tableID, err := ts.CreateTable()
	require.NoError(t, err)
	wsc := NewWebSocketController(ts)

	err = wsc.handleMessage(tableID, ws.Message{Type: "shoot"})
	assert.ErrorContains(t, err, "unknown message type")

	err = wsc.handleMessage(tableID, ws.Message{Type: ws.MessageTypeSpin, Payload: json.RawMessage(`"zero"`)})
	assert.ErrorContains(t, err, "invalid spin payload")

	err = wsc.handleMessage("missing", ws.Message{Type: ws.MessageTypeReset})
	assert.True(t, errors.Is(err, service.ErrTableNotFound))
}

type recordingWriter struct {
	msgs []ws.Message
}

func (r *recordingWriter) WriteJSON(v interface{}) error {
	r.msgs = append(r.msgs, v.(ws.Message))
	return nil
}

func TestSendErrorIsValidJSON(t *testing.T) {
	w := &recordingWriter{}
	NewWebSocketController(nil).sendError(w, `bad "thing"`)

	require.Len(t, w.msgs, 1)
	assert.Equal(t, ws.MessageTypeError, w.msgs[0].Type)
	var payload ws.ErrorPayload
	require.NoError(t, json.Unmarshal(w.msgs[0].Payload, &payload))
	assert.Equal(t, `bad "thing"`, payload.Error)
}
