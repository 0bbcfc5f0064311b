package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekosui/petbot/internal/petgame"
)

// fakeService scripts one response per method.
type fakeService struct {
	checkIn *petgame.CheckInResult
	balance *petgame.BalanceResult
	err     error
}

func (f *fakeService) CheckIn(ctx context.Context, userID string, now time.Time) (*petgame.CheckInResult, error) {
	return f.checkIn, f.err
}

func (f *fakeService) Feed(ctx context.Context, userID string, now time.Time) (*petgame.FeedResult, error) {
	return nil, f.err
}

func (f *fakeService) Divine(ctx context.Context, userID string, now time.Time) (*petgame.DivineResult, error) {
	return nil, f.err
}

func (f *fakeService) Fortune(ctx context.Context, userID string) (*petgame.FortuneResult, error) {
	return nil, f.err
}

func (f *fakeService) ExtraCheckIn(ctx context.Context, userID string, now time.Time) (*petgame.ExtraCheckInResult, error) {
	return nil, f.err
}

func (f *fakeService) AttemptCollectibleDrop(ctx context.Context, userID string, interactive bool) (*petgame.DropResult, error) {
	return nil, f.err
}

func (f *fakeService) GetBalance(ctx context.Context, userID string) (*petgame.BalanceResult, error) {
	return f.balance, f.err
}

func (f *fakeService) GetCollectionProgress(ctx context.Context, userID string) (*petgame.ProgressResult, error) {
	return nil, f.err
}

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestCheckIn_OK(t *testing.T) {
	svc := &fakeService{checkIn: &petgame.CheckInResult{FavorDelta: 12, MarbleDelta: 20, Favor: 12, Marbles: 20, PersistedOK: true}}
	h := NewPetHandler(svc)

	w := postJSON(t, h.CheckIn, UserRequest{UserID: "alice"})
	require.Equal(t, http.StatusOK, w.Code)

	var res petgame.CheckInResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 12, res.FavorDelta)
	assert.True(t, res.PersistedOK)
}

func TestCheckIn_MissingUserID(t *testing.T) {
	h := NewPetHandler(&fakeService{})

	w := postJSON(t, h.CheckIn, UserRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var res ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Contains(t, res.Fields, "userid")
}

func TestCheckIn_MalformedBody(t *testing.T) {
	h := NewPetHandler(&fakeService{})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	h.CheckIn(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckIn_ServiceError(t *testing.T) {
	h := NewPetHandler(&fakeService{err: errors.New("boom")})

	w := postJSON(t, h.CheckIn, UserRequest{UserID: "alice"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// Internal details never leak to the client
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestBalance_RequiresUserID(t *testing.T) {
	h := NewPetHandler(&fakeService{balance: &petgame.BalanceResult{Favor: 5}})

	req := httptest.NewRequest(http.MethodGet, "/?user_id=alice", nil)
	w := httptest.NewRecorder()
	h.Balance(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res petgame.BalanceResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 5, res.Favor)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	h.Balance(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	HandleHealthz()(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestHandleVersion(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	w := httptest.NewRecorder()
	HandleVersion("1.2.3")(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res VersionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "1.2.3", res.Version)
}
