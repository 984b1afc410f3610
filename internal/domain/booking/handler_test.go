package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func passthrough(next http.Handler) http.Handler { return next }

func denyAll(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
}

func newTestRouter(svc *Service, requireAdmin func(http.Handler) http.Handler) http.Handler {
	h := NewHandler(svc, NewHub(nil), nil)
	r := chi.NewRouter()
	r.Mount("/bookings", h.Routes(requireAdmin, passthrough))
	r.Mount("/admin/bookings", h.AdminRoutes())
	return r
}

func do(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

const anaJSON = `{"name":"Ana","phone":"11999990000","service":"banho","date":"2024-06-10","time":"10:00"}`

func TestHandlerCreateAndList(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepository(), nil, nil, false), passthrough)

	w, env := do(t, router, http.MethodPost, "/bookings", anaJSON)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	var created Booking
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEqual(t, uuid.Nil, created.ID)

	w, env = do(t, router, http.MethodGet, "/bookings?date=2024-06-10", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []Booking
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	w, env = do(t, router, http.MethodGet, "/bookings?date=2024-06-11", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestHandlerCreateValidation(t *testing.T) {
	repo := NewMemoryRepository()
	router := newTestRouter(NewService(repo, nil, nil, false), passthrough)

	w, env := do(t, router, http.MethodPost, "/bookings", `{"name":"","phone":"1","service":"corte","date":"2024-13-01","time":"12:00"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	for _, field := range []string{"name", "service", "date", "time"} {
		assert.Contains(t, env.Error.Details, field)
	}

	w, _ = do(t, router, http.MethodPost, "/bookings", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	list, _ := repo.List(context.Background())
	assert.Empty(t, list, "rejected bookings are not persisted")
}

func TestHandlerCreateConflictWhenEnforced(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepository(), nil, NewLocalSlotLocker(), true), passthrough)

	w, _ := do(t, router, http.MethodPost, "/bookings", anaJSON)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := do(t, router, http.MethodPost, "/bookings", anaJSON)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SLOT_TAKEN", env.Error.Code)
}

func TestHandlerDelete(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil, false)
	router := newTestRouter(svc, passthrough)

	_, env := do(t, router, http.MethodPost, "/bookings", anaJSON)
	var created Booking
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, env := do(t, router, http.MethodDelete, "/bookings/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	w, _ = do(t, router, http.MethodDelete, "/bookings/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = do(t, router, http.MethodDelete, "/bookings/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, _ = do(t, router, http.MethodDelete, "/bookings/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerDeleteRequiresAdmin(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepository(), nil, nil, false), denyAll)

	w, _ := do(t, router, http.MethodDelete, "/bookings/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, router, http.MethodGet, "/bookings", "")
	assert.Equal(t, http.StatusOK, w.Code, "listing stays public")
}

func TestHandlerAvailability(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepository(), nil, nil, false), passthrough)
	do(t, router, http.MethodPost, "/bookings", anaJSON)

	w, env := do(t, router, http.MethodGet, "/bookings/availability?date=2024-06-10", "")
	require.Equal(t, http.StatusOK, w.Code)

	var slots []SlotAvailability
	require.NoError(t, json.Unmarshal(env.Data, &slots))
	require.Len(t, slots, 8)
	assert.Equal(t, SlotAvailability{Time: "10:00", Available: false}, slots[1])
	assert.True(t, slots[0].Available)

	w, env = do(t, router, http.MethodGet, "/bookings/availability?date=junho", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, env.Error.Details, "date")

	w, _ = do(t, router, http.MethodGet, "/bookings/availability", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandlerCalendar(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil, false)
	svc.now = func() time.Time { return time.Date(2024, time.June, 10, 9, 0, 0, 0, time.Local) }
	router := newTestRouter(svc, passthrough)

	w, env := do(t, router, http.MethodGet, "/bookings/calendar", "")
	require.Equal(t, http.StatusOK, w.Code)

	var cal Calendar
	require.NoError(t, json.Unmarshal(env.Data, &cal))
	assert.Equal(t, 6, cal.Month)
	assert.Len(t, cal.Cells, 36)
}

func TestHandlerExport(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepository(), nil, nil, false), passthrough)
	do(t, router, http.MethodPost, "/bookings", anaJSON)

	w, _ := do(t, router, http.MethodGet, "/admin/bookings/export?from=2024-06-01&to=2024-06-30", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "agendamentos_2024-06-01_2024-06-30.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue(exportListSheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "Ana", name)

	grid, err := f.GetCellValue(exportGridSheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Ana (banho)", grid)

	w, _ = do(t, router, http.MethodGet, "/admin/bookings/export?from=junho", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
