package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/table-reservations/internal/audit"
	"github.com/BruksfildServices01/table-reservations/internal/config"
	"github.com/BruksfildServices01/table-reservations/internal/db"
	domain "github.com/BruksfildServices01/table-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/table-reservations/internal/infra/lock"
	"github.com/BruksfildServices01/table-reservations/internal/infra/repository"
	"github.com/BruksfildServices01/table-reservations/internal/models"
	ucReservation "github.com/BruksfildServices01/table-reservations/internal/usecase/reservation"
)

type api struct {
	t   *testing.T
	db  *gorm.DB
	r   *gin.Engine
	day string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	gdb, err := gorm.Open(
		sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)),
		&gorm.Config{TranslateError: true},
	)
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))

	hours, err := domain.NewServiceHours("12:00", "21:30", 30*time.Minute, 2*time.Hour)
	require.NoError(t, err)

	repo := repository.NewReservationGormRepository(gdb)
	dispatcher := audit.NewDispatcher(audit.New(gdb))
	t.Cleanup(dispatcher.Close)

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:       gdb,
		Config:   &config.Config{JWTSecret: "test-secret"},
		Repo:     repo,
		Locker:   lock.NewLocalLocker(),
		Hours:    hours,
		Location: time.UTC,
		Audit:    dispatcher,
		Sweep:    ucReservation.NewRunDailySweep(repo, nil, dispatcher),
	})

	return &api{
		t:   t,
		db:  gdb,
		r:   r,
		day: time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02"),
	}
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// user inserts an account directly and logs it in through the API.
func (a *api) user(username, role string) (uint, string) {
	a.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(a.t, err)

	u := models.User{Username: username, Name: username, PasswordHash: string(hash), Role: role}
	require.NoError(a.t, a.db.Create(&u).Error)

	w := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": username, "password": "secret1"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return u.ID, decode(a.t, w)["token"].(string)
}

func (a *api) table(number, capacity int) uint {
	a.t.Helper()
	tb := models.Table{Number: number, Capacity: capacity, State: models.TableAvailable}
	require.NoError(a.t, a.db.Create(&tb).Error)
	return tb.ID
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "Camila.Rojas",
		"name":     "Camila Rojas",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "client", body["user"].(map[string]any)["role"])

	w = a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "camila.rojas",
		"name":     "Other",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "camila.rojas", "password": "wrong!"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "CAMILA.ROJAS", "password": "secret1"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSecuredRoutesNeedToken(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/api/tables", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodGet, "/api/tables", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleMatrixOnRoutes(t *testing.T) {
	a := newAPI(t)
	_, client := a.user("cli", "client")
	_, waiter := a.user("wai", "waiter")
	_, admin := a.user("adm", "admin")

	cases := []struct {
		method, path, token string
		want                int
	}{
		{http.MethodPost, "/api/tables", client, http.StatusForbidden},
		{http.MethodPost, "/api/tables", waiter, http.StatusForbidden},
		{http.MethodGet, "/api/customers", waiter, http.StatusForbidden},
		{http.MethodGet, "/api/customers", admin, http.StatusOK},
		{http.MethodPost, "/api/admin/sweep", client, http.StatusForbidden},
		{http.MethodGet, "/api/audit-logs", client, http.StatusForbidden},
		{http.MethodGet, "/api/audit-logs", admin, http.StatusOK},
		{http.MethodDelete, "/api/reservations/1", waiter, http.StatusForbidden},
	}

	for _, tc := range cases {
		w := a.do(tc.method, tc.path, tc.token, nil)
		assert.Equal(t, tc.want, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestTables_CreateAndUpdateState(t *testing.T) {
	a := newAPI(t)
	_, admin := a.user("adm", "admin")
	_, waiter := a.user("wai", "waiter")

	w := a.do(http.MethodPost, "/api/tables", admin, gin.H{"number": 3, "capacity": 4})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := uint(decode(t, w)["id"].(float64))

	w = a.do(http.MethodPost, "/api/tables", admin, gin.H{"number": 3, "capacity": 6})
	assert.Equal(t, http.StatusConflict, w.Code)

	path := fmt.Sprintf("/api/tables/%d/state", id)

	w = a.do(http.MethodPatch, path, waiter, gin.H{"state": "flying"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPatch, path, waiter, gin.H{"state": "occupied"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "occupied", decode(t, w)["state"])

	w = a.do(http.MethodPatch, "/api/tables/999/state", waiter, gin.H{"state": "cleaning"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationFlow(t *testing.T) {
	a := newAPI(t)
	tableID := a.table(1, 4)
	_, ana := a.user("ana", "client")
	_, beto := a.user("beto", "client")

	book := gin.H{"table_id": tableID, "date": a.day, "time": "19:00", "party_size": 2}

	w := a.do(http.MethodPost, "/api/reservations", ana, book)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "pending", created["status"])
	resID := uint(created["id"].(float64))

	// overlapping start on the same table
	w = a.do(http.MethodPost, "/api/reservations", beto, gin.H{
		"table_id": tableID, "date": a.day, "time": "20:00", "party_size": 2,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_taken", decode(t, w)["error_code"])

	// back to back is fine
	w = a.do(http.MethodPost, "/api/reservations", beto, gin.H{
		"table_id": tableID, "date": a.day, "time": "21:00", "party_size": 2,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/api/reservations", beto, gin.H{
		"table_id": tableID, "date": a.day, "time": "13:00", "party_size": 9,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "invalid_party_size", decode(t, w)["error_code"])

	w = a.do(http.MethodPost, "/api/reservations", beto, gin.H{
		"table_id": tableID, "date": "2020-01-01", "time": "13:00", "party_size": 2,
	})
	assert.Equal(t, "invalid_interval", decode(t, w)["error_code"])

	// clients only see their own
	w = a.do(http.MethodGet, "/api/reservations?date="+a.day, ana, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total"])

	w = a.do(http.MethodGet, "/api/reservations?status=bogus", ana, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// someone else's reservation is hidden
	cancelPath := fmt.Sprintf("/api/reservations/%d/cancel", resID)
	w = a.do(http.MethodPatch, cancelPath, beto, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodPatch, cancelPath, ana, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cancelled", decode(t, w)["status"])

	w = a.do(http.MethodPatch, cancelPath, ana, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_terminal", decode(t, w)["error_code"])

	// the freed slot can be booked again
	w = a.do(http.MethodPost, "/api/reservations", beto, book)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestReservation_StaffBooksForCustomer(t *testing.T) {
	a := newAPI(t)
	tableID := a.table(1, 4)
	anaID, ana := a.user("ana", "client")
	_, cashier := a.user("caja", "cashier")
	bobID, _ := a.user("bob", "client")

	w := a.do(http.MethodPost, "/api/reservations", ana, gin.H{
		"table_id": tableID, "customer_id": bobID, "date": a.day, "time": "13:00", "party_size": 2,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, "/api/reservations", cashier, gin.H{
		"table_id": tableID, "customer_id": anaID, "date": a.day, "time": "13:00", "party_size": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, anaID, decode(t, w)["customer_id"])

	w = a.do(http.MethodGet, "/api/reservations", cashier, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total"])
}

func TestAvailability_ExcludesBookedWindow(t *testing.T) {
	a := newAPI(t)
	tableID := a.table(1, 4)
	_, ana := a.user("ana", "client")

	path := fmt.Sprintf("/api/tables/%d/availability?date=%s", tableID, a.day)

	w := a.do(http.MethodGet, path, ana, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	before := len(decode(t, w)["slots"].([]any))
	assert.Equal(t, 20, before)

	w = a.do(http.MethodPost, "/api/reservations", ana, gin.H{
		"table_id": tableID, "date": a.day, "time": "15:00", "party_size": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodGet, path, ana, nil)
	require.Equal(t, http.StatusOK, w.Code)
	// 13:30 through 16:30 now overlap
	assert.Len(t, decode(t, w)["slots"].([]any), before-7)

	w = a.do(http.MethodGet, fmt.Sprintf("/api/tables/%d/availability", tableID), ana, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdmin_SweepDeleteAndUsers(t *testing.T) {
	a := newAPI(t)
	tableID := a.table(1, 4)
	anaID, _ := a.user("ana", "client")
	_, admin := a.user("adm", "admin")

	start := time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC)
	past := models.Reservation{
		TableID:         tableID,
		CustomerID:      anaID,
		ReservationDate: "2024-03-01",
		StartTime:       start,
		EndTime:         start.Add(2 * time.Hour),
		PartySize:       2,
		Status:          "active",
	}
	require.NoError(t, a.db.Omit("Table", "Customer").Create(&past).Error)

	w := a.do(http.MethodPost, "/api/admin/sweep?as_of=2024-03-02", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decode(t, w)["completed"])

	w = a.do(http.MethodPost, "/api/admin/sweep?as_of=2024-03-02", admin, nil)
	assert.EqualValues(t, 0, decode(t, w)["completed"])

	w = a.do(http.MethodPost, "/api/admin/sweep?as_of=yesterday", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/reservations/%d", past.ID), admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/reservations/%d", past.ID), admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodPost, "/api/admin/users", admin, gin.H{
		"username": "mesero1", "name": "Mesero", "password": "secret1", "role": "mesero",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "waiter", decode(t, w)["role"])

	w = a.do(http.MethodPost, "/api/admin/users", admin, gin.H{
		"username": "chef1", "name": "Chef", "password": "secret1", "role": "chef",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMe_GetAndUpdate(t *testing.T) {
	a := newAPI(t)
	_, ana := a.user("ana", "client")

	w := a.do(http.MethodGet, "/api/me", ana, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ana", decode(t, w)["user"].(map[string]any)["username"])

	w = a.do(http.MethodPatch, "/api/me", ana, gin.H{"phone": "+56 9 1234 5678"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "+56 9 1234 5678", decode(t, w)["user"].(map[string]any)["phone"])
}

func TestAuditLogs_RecordsBookings(t *testing.T) {
	a := newAPI(t)
	tableID := a.table(1, 4)
	_, ana := a.user("ana", "client")
	_, admin := a.user("adm", "admin")

	w := a.do(http.MethodPost, "/api/reservations", ana, gin.H{
		"table_id": tableID, "date": a.day, "time": "12:30", "party_size": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Eventually(t, func() bool {
		w := a.do(http.MethodGet, "/api/audit-logs?action=reservation_created&entity=reservation", admin, nil)
		if w.Code != http.StatusOK {
			return false
		}
		body := decode(t, w)
		return body["total"] == float64(1) && len(body["data"].([]any)) == 1
	}, 2*time.Second, 20*time.Millisecond)
}
