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

	"github.com/forgo/skirmish/api/internal/database"
	"github.com/forgo/skirmish/api/internal/model"
	"github.com/forgo/skirmish/api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Mock Services
// ============================================================================

type mockFieldMapService struct {
	listFunc   func(ctx context.Context) ([]*model.FieldMap, error)
	createFunc func(ctx context.Context, req *model.CreateFieldMapRequest) (*model.FieldMap, error)
	getFunc    func(ctx context.Context, id string) (*model.FieldMap, error)
	updateFunc func(ctx context.Context, id string, req *model.UpdateFieldMapRequest) (*model.FieldMap, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockFieldMapService) List(ctx context.Context) ([]*model.FieldMap, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*model.FieldMap{}, nil
}

func (m *mockFieldMapService) Create(ctx context.Context, req *model.CreateFieldMapRequest) (*model.FieldMap, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	fm := req.FieldMap()
	fm.ID = "field_map:1"
	return fm, nil
}

func (m *mockFieldMapService) Get(ctx context.Context, id string) (*model.FieldMap, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, service.ErrFieldMapNotFound
}

func (m *mockFieldMapService) Update(ctx context.Context, id string, req *model.UpdateFieldMapRequest) (*model.FieldMap, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return nil, service.ErrFieldMapNotFound
}

func (m *mockFieldMapService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockPlayerService struct {
	createFunc func(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error)
	getFunc    func(ctx context.Context, id string) (*model.Player, error)
}

func (m *mockPlayerService) List(ctx context.Context) ([]*model.Player, error) {
	return []*model.Player{}, nil
}

func (m *mockPlayerService) Create(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	p := req.Player()
	p.ID = "player:1"
	return p, nil
}

func (m *mockPlayerService) Get(ctx context.Context, id string) (*model.Player, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, service.ErrPlayerNotFound
}

func (m *mockPlayerService) Update(ctx context.Context, id string, req *model.UpdatePlayerRequest) (*model.Player, error) {
	return nil, service.ErrPlayerNotFound
}

func (m *mockPlayerService) Delete(ctx context.Context, id string) error {
	return service.ErrPlayerNotFound
}

type mockGameService struct {
	getSettingsFunc     func(ctx context.Context, id string) (*model.GameSettings, error)
	replaceSettingsFunc func(ctx context.Context, id string, req *model.UpdateGameSettingsRequest) (*model.GameSettings, error)
	searchFunc          func(ctx context.Context, deviceID string) ([]model.DeviceAssignment, error)
}

func (m *mockGameService) List(ctx context.Context) ([]*model.Game, error) {
	return []*model.Game{}, nil
}

func (m *mockGameService) Create(ctx context.Context, req *model.CreateGameRequest) (*model.Game, error) {
	g := req.Game()
	g.ID = "game:1"
	return g, nil
}

func (m *mockGameService) Get(ctx context.Context, id string) (*model.Game, error) {
	return nil, service.ErrGameNotFound
}

func (m *mockGameService) Update(ctx context.Context, id string, req *model.UpdateGameRequest) (*model.Game, error) {
	return nil, service.ErrGameNotFound
}

func (m *mockGameService) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockGameService) GetSettings(ctx context.Context, id string) (*model.GameSettings, error) {
	if m.getSettingsFunc != nil {
		return m.getSettingsFunc(ctx, id)
	}
	return nil, service.ErrGameNotFound
}

func (m *mockGameService) ReplaceSettings(ctx context.Context, id string, req *model.UpdateGameSettingsRequest) (*model.GameSettings, error) {
	if m.replaceSettingsFunc != nil {
		return m.replaceSettingsFunc(ctx, id, req)
	}
	return nil, service.ErrGameNotFound
}

func (m *mockGameService) SearchByDevice(ctx context.Context, deviceID string) ([]model.DeviceAssignment, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, deviceID)
	}
	return nil, service.ErrNoPlannedGamesForDevice
}

// ============================================================================
// Helpers
// ============================================================================

func newTestMux(fm FieldMapService, ps PlayerService, gs GameService, now func() time.Time) *http.ServeMux {
	mux := http.NewServeMux()
	NewFieldMapHandler(fm).RegisterRoutes(mux)
	NewPlayerHandler(PlayerHandlerConfig{Service: ps, Now: now}).RegisterRoutes(mux)
	gh := NewGameHandler(gs)
	gh.RegisterRoutes(mux)
	gh.RegisterDeviceRoutes(mux)
	NewHealthHandler(nil).RegisterRoutes(mux)
	return mux
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	env := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.NotNil(t, env.Data, "response has no data envelope: %s", rr.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func decodeProblemBody(t *testing.T, rr *httptest.ResponseRecorder) model.ProblemDetails {
	t.Helper()
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
	var pd model.ProblemDetails
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pd))
	return pd
}

func defaultMux() *http.ServeMux {
	return newTestMux(&mockFieldMapService{}, &mockPlayerService{}, &mockGameService{}, nil)
}

// ============================================================================
// Field map Tests
// ============================================================================

func TestFieldMapHandler_Create_AppliesDefaults(t *testing.T) {
	t.Parallel()

	rr := do(t, defaultMux(), http.MethodPost, "/field-map", `{"name":"  Arena  "}`)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var fm model.FieldMap
	decodeData(t, rr, &fm)
	assert.Equal(t, "Arena", fm.Name)
	assert.True(t, fm.IsActive)
	assert.Equal(t, model.FieldMapTypeOther, fm.Type)
	assert.Equal(t, []model.SocialLink{}, fm.SocialLinks)
}

func TestFieldMapHandler_Create_ValidationIs400WithFields(t *testing.T) {
	t.Parallel()

	called := false
	mux := newTestMux(&mockFieldMapService{
		createFunc: func(ctx context.Context, req *model.CreateFieldMapRequest) (*model.FieldMap, error) {
			called = true
			return nil, nil
		},
	}, &mockPlayerService{}, &mockGameService{}, nil)

	rr := do(t, mux, http.MethodPost, "/field-map",
		`{"name":"","socialLinks":[{"platform":"x","url":"https://ok.example"},{"platform":"y","url":"nope"}]}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	pd := decodeProblemBody(t, rr)
	fields := make([]string, 0, len(pd.Errors))
	for _, e := range pd.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"name", "socialLinks[1].url"}, fields)
	assert.False(t, called, "nothing should be persisted on rejection")
}

func TestFieldMapHandler_Create_UnknownFieldIs400(t *testing.T) {
	t.Parallel()

	rr := do(t, defaultMux(), http.MethodPost, "/field-map", `{"name":"Arena","colour":"red"}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	pd := decodeProblemBody(t, rr)
	require.Len(t, pd.Errors, 1)
	assert.Equal(t, "colour", pd.Errors[0].Field)
}

func TestFieldMapHandler_Create_WrongTypeIs400(t *testing.T) {
	t.Parallel()

	rr := do(t, defaultMux(), http.MethodPost, "/field-map", `{"name":"Arena","isActive":"yes"}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	pd := decodeProblemBody(t, rr)
	require.Len(t, pd.Errors, 1)
	assert.Equal(t, "isActive", pd.Errors[0].Field)
}

func TestFieldMapHandler_Create_WrongTypeReportsEveryField(t *testing.T) {
	t.Parallel()

	created := false
	mux := newTestMux(&mockFieldMapService{
		createFunc: func(ctx context.Context, req *model.CreateFieldMapRequest) (*model.FieldMap, error) {
			created = true
			return req.FieldMap(), nil
		},
	}, &mockPlayerService{}, &mockGameService{}, nil)

	rr := do(t, mux, http.MethodPost, "/field-map", `{"name":5,"type":"bogus","socialLinks":[{"platform":"ig","url":"nope"}]}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	pd := decodeProblemBody(t, rr)
	assert.Equal(t, model.ErrCodeValidation, pd.Code)

	fields := make([]string, 0, len(pd.Errors))
	for _, fe := range pd.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"name", "type", "socialLinks[0].url"}, fields)
	assert.False(t, created)
}

func TestGameHandler_ReplaceSettings_WrongNestedTypeSkipsZeroValueRule(t *testing.T) {
	t.Parallel()

	rr := do(t, defaultMux(), http.MethodPut, "/games/game:1/settings", `{"groups":[{"groupName":7,"groupColor":"red"},{"groupName":"B"}]}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	pd := decodeProblemBody(t, rr)

	fields := make([]string, 0, len(pd.Errors))
	for _, fe := range pd.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"groups.groupName", "groups[1].groupColor"}, fields)
}

func TestFieldMapHandler_Create_MalformedJSONIs400(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"name":`, `not json`, ``, `{"name":"a"}{"name":"b"}`} {
		rr := do(t, defaultMux(), http.MethodPost, "/field-map", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %q", body)
	}
}

func TestFieldMapHandler_List_IgnoresTypeParam(t *testing.T) {
	t.Parallel()

	mux := newTestMux(&mockFieldMapService{
		listFunc: func(ctx context.Context) ([]*model.FieldMap, error) {
			return []*model.FieldMap{{ID: "field_map:a", Type: model.FieldMapTypeCQB}, {ID: "field_map:b", Type: model.FieldMapTypeMato}}, nil
		},
	}, &mockPlayerService{}, &mockGameService{}, nil)

	rr := do(t, mux, http.MethodGet, "/field-map?type=cqb", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var maps []model.FieldMap
	decodeData(t, rr, &maps)
	assert.Len(t, maps, 2)
}

func TestFieldMapHandler_GetMissingIs404(t *testing.T) {
	t.Parallel()

	rr := do(t, defaultMux(), http.MethodGet, "/field-map/field_map:nope", "")

	require.Equal(t, http.StatusNotFound, rr.Code)
	pd := decodeProblemBody(t, rr)
	assert.Equal(t, "FieldMap not found", pd.Detail)
}

func TestFieldMapHandler_UpdateMissingIs404(t *testing.T) {
	t.Parallel()

	rr := do(t, defaultMux(), http.MethodPatch, "/field-map/field_map:nope", `{"name":"New"}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFieldMapHandler_Delete_ReturnsOK(t *testing.T) {
	t.Parallel()

	rr := do(t, defaultMux(), http.MethodDelete, "/field-map/field_map:1", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"ok":true}}`, rr.Body.String())
}

func TestFieldMapHandler_UnexpectedErrorIs500WithGenericDetail(t *testing.T) {
	t.Parallel()

	mux := newTestMux(&mockFieldMapService{
		listFunc: func(ctx context.Context) ([]*model.FieldMap, error) {
			return nil, errors.New("secret connection string leaked")
		},
	}, &mockPlayerService{}, &mockGameService{}, nil)

	rr := do(t, mux, http.MethodGet, "/field-map", "")

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "secret")
}

func TestFieldMapHandler_DatabaseDownIs503(t *testing.T) {
	t.Parallel()

	mux := newTestMux(&mockFieldMapService{
		listFunc: func(ctx context.Context) ([]*model.FieldMap, error) {
			return nil, database.ErrConnection
		},
	}, &mockPlayerService{}, &mockGameService{}, nil)

	rr := do(t, mux, http.MethodGet, "/field-map", "")

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

// ============================================================================
// Player Tests
// ============================================================================

func TestPlayerHandler_Create_DerivesAPDIsValid(t *testing.T) {
	t.Parallel()

	now := func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	mux := newTestMux(&mockFieldMapService{}, &mockPlayerService{}, &mockGameService{}, now)

	rr := do(t, mux, http.MethodPost, "/players", `{"name":"Ana","apd":" ab1 ","apdValidateDate":"2027-01-01"}`)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var out map[string]interface{}
	decodeData(t, rr, &out)
	assert.Equal(t, "AB1", out["apd"])
	assert.Equal(t, true, out["apdIsValid"])
}

func TestPlayerHandler_Get_ExpiredLicence(t *testing.T) {
	t.Parallel()

	expired := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	apd := "AB1"
	now := func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	mux := newTestMux(&mockFieldMapService{}, &mockPlayerService{
		getFunc: func(ctx context.Context, id string) (*model.Player, error) {
			return &model.Player{ID: id, Name: "Ana", APD: &apd, APDValidateDate: &expired}, nil
		},
	}, &mockGameService{}, now)

	rr := do(t, mux, http.MethodGet, "/players/player:1", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var out map[string]interface{}
	decodeData(t, rr, &out)
	assert.Equal(t, false, out["apdIsValid"])
}

func TestPlayerHandler_Create_APDTakenIs409(t *testing.T) {
	t.Parallel()

	mux := newTestMux(&mockFieldMapService{}, &mockPlayerService{
		createFunc: func(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error) {
			return nil, service.ErrAPDTaken
		},
	}, &mockGameService{}, nil)

	rr := do(t, mux, http.MethodPost, "/players", `{"name":"Bo","apd":"AB1"}`)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestPlayerHandler_Delete_MissingIs404(t *testing.T) {
	t.Parallel()

	rr := do(t, defaultMux(), http.MethodDelete, "/players/player:nope", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// ============================================================================
// Game Tests
// ============================================================================

func TestGameHandler_Create_DefaultsPlannedWithGroups(t *testing.T) {
	t.Parallel()

	rr := do(t, defaultMux(), http.MethodPost, "/games", `{"name":"Sunday"}`)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var g model.Game
	decodeData(t, rr, &g)
	assert.Equal(t, model.GameStatusPlanned, g.Status)
	assert.Len(t, g.GameSettings.Groups, 2)
}

func TestGameHandler_GetSettings(t *testing.T) {
	t.Parallel()

	mux := newTestMux(&mockFieldMapService{}, &mockPlayerService{}, &mockGameService{
		getSettingsFunc: func(ctx context.Context, id string) (*model.GameSettings, error) {
			return &model.GameSettings{Groups: []model.Group{{ID: "a", GroupName: "Alpha", GroupColor: "blue"}}}, nil
		},
	}, nil)

	rr := do(t, mux, http.MethodGet, "/games/game:1/settings", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"groups":[{"id":"a","groupName":"Alpha","groupColor":"blue"}]}}`, rr.Body.String())
}

func TestGameHandler_ReplaceSettings_ReturnsOKAndGroups(t *testing.T) {
	t.Parallel()

	var gotID string
	mux := newTestMux(&mockFieldMapService{}, &mockPlayerService{}, &mockGameService{
		replaceSettingsFunc: func(ctx context.Context, id string, req *model.UpdateGameSettingsRequest) (*model.GameSettings, error) {
			gotID = id
			return &model.GameSettings{Groups: model.NormalizeGroups(req.Groups)}, nil
		},
	}, nil)

	rr := do(t, mux, http.MethodPut, "/games/game:1/settings",
		`{"groups":[{"id":"keep","groupName":"Alpha","groupColor":"blue"},{"groupName":"Bravo","groupColor":"green"}]}`)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "game:1", gotID)
	var out SettingsReplacedResponse
	decodeData(t, rr, &out)
	assert.True(t, out.OK)
	require.Len(t, out.Groups, 2)
	assert.Equal(t, "keep", out.Groups[0].ID)
	assert.NotEmpty(t, out.Groups[1].ID)
}

func TestGameHandler_ReplaceSettings_InvalidGroupIs400(t *testing.T) {
	t.Parallel()

	rr := do(t, defaultMux(), http.MethodPut, "/games/game:1/settings",
		`{"groups":[{"groupName":"","groupColor":"blue"}]}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	pd := decodeProblemBody(t, rr)
	require.NotEmpty(t, pd.Errors)
	assert.Equal(t, "groups[0].groupName", pd.Errors[0].Field)
}

func TestGameHandler_ReplaceSettings_MissingGameIs404(t *testing.T) {
	t.Parallel()

	rr := do(t, defaultMux(), http.MethodPut, "/games/game:nope/settings", `{"groups":[]}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGameHandler_Search(t *testing.T) {
	t.Parallel()

	player := "player:ana"
	mux := newTestMux(&mockFieldMapService{}, &mockPlayerService{}, &mockGameService{
		searchFunc: func(ctx context.Context, deviceID string) ([]model.DeviceAssignment, error) {
			return []model.DeviceAssignment{
				{GameID: "game:2", AssignedPlayerID: &player},
				{GameID: "game:1"},
			}, nil
		},
	}, nil)

	rr := do(t, mux, http.MethodPost, "/games/search", `{"deviceId":"dev-1"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"data":[{"gameId":"game:2","assignedPlayerId":"player:ana"},{"gameId":"game:1","assignedPlayerId":null}]}`,
		rr.Body.String())
}

func TestGameHandler_Search_NoMatchIs404(t *testing.T) {
	t.Parallel()

	rr := do(t, defaultMux(), http.MethodPost, "/games/search", `{"deviceId":"dev-1"}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGameHandler_Search_MissingDeviceIs400(t *testing.T) {
	t.Parallel()

	rr := do(t, defaultMux(), http.MethodPost, "/games/search", `{}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	pd := decodeProblemBody(t, rr)
	require.Len(t, pd.Errors, 1)
	assert.Equal(t, "deviceId", pd.Errors[0].Field)
}

// ============================================================================
// Health Tests
// ============================================================================

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	t.Parallel()

	rr := do(t, defaultMux(), http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var out HealthResponse
	decodeData(t, rr, &out)
	assert.Equal(t, "ok", out.Status)
	assert.NotEmpty(t, out.Message)
	assert.False(t, out.TS.IsZero())
}

func TestHealth_DatabaseDownIsDegraded(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	NewHealthHandler(pingFunc(func(ctx context.Context) error { return database.ErrConnection })).RegisterRoutes(mux)

	rr := do(t, mux, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var out HealthResponse
	decodeData(t, rr, &out)
	assert.Equal(t, "degraded", out.Status)
}
