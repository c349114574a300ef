package http

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tableside/internal/core/application/auth"
	"tableside/internal/core/domain/events"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/session"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/core/ports"
	"tableside/internal/eventbus"
	"tableside/internal/pkg/errs"
	"tableside/internal/sessions"
)

type stubTableSource struct {
	tables map[kernel.UUID]*table.Table
}

func (s *stubTableSource) Get(_ context.Context, id kernel.UUID) (*table.Table, error) {
	if tbl, ok := s.tables[id]; ok {
		return tbl, nil
	}
	return nil, errs.NewObjectNotFoundError("table", id)
}

type stubStaffRepository struct {
	credentials map[session.Role]ports.StaffCredential
}

func (s *stubStaffRepository) GetCredential(_ context.Context, role session.Role) (ports.StaffCredential, error) {
	if cred, ok := s.credentials[role]; ok {
		return cred, nil
	}
	return ports.StaffCredential{}, errs.NewObjectNotFoundError("staff credential", role.String())
}

type serverFixture struct {
	server  *Server
	echo    *echo.Echo
	store   *sessions.Store
	bus     *eventbus.Bus
	tableID kernel.UUID
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	tableID := kernel.NewUUID()
	pin, err := kernel.NewPin("1234")
	require.NoError(t, err)
	tbl, err := table.NewTable(tableID, "Table 5", pin)
	require.NoError(t, err)

	managerHash, err := bcrypt.GenerateFromPassword([]byte("manager-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	kitchenHash, err := bcrypt.GenerateFromPassword([]byte("kitchen-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	store := sessions.NewStore()
	gate := auth.NewGate(
		store,
		&stubTableSource{tables: map[kernel.UUID]*table.Table{tableID: tbl}},
		&stubStaffRepository{credentials: map[session.Role]ports.StaffCredential{
			session.RoleManager: {Role: session.RoleManager, PasswordHash: string(managerHash)},
			session.RoleKitchen: {Role: session.RoleKitchen, PasswordHash: string(kitchenHash)},
		}},
		time.Hour,
		time.Hour,
		time.Now,
	)

	log := slog.New(slog.DiscardHandler)
	bus := eventbus.NewBus(log)
	server := NewServer(Handlers{}, gate, bus, log)

	e := echo.New()
	server.RegisterRoutes(e)

	return &serverFixture{server: server, echo: e, store: store, bus: bus, tableID: tableID}
}

func (f *serverFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func (f *serverFixture) customerCookie(t *testing.T) *http.Cookie {
	t.Helper()
	rec := f.do(jsonRequest(http.MethodPost, "/api/v1/auth/table",
		`{"tableId": "`+f.tableID.String()+`", "pin": "1234"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	return findCookie(t, rec, customerCookieName)
}

func (f *serverFixture) staffCookie(t *testing.T, role, password string) *http.Cookie {
	t.Helper()
	rec := f.do(jsonRequest(http.MethodPost, "/api/v1/auth/staff",
		`{"role": "`+role+`", "password": "`+password+`"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	return findCookie(t, rec, staffCookieName)
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func Test_Server_AuthenticateTable_IssuesCustomerSession(t *testing.T) {
	fixture := newServerFixture(t)

	rec := fixture.do(jsonRequest(http.MethodPost, "/api/v1/auth/table",
		`{"tableId": "`+fixture.tableID.String()+`", "pin": "1234"}`))

	require.Equal(t, http.StatusOK, rec.Code)

	var response SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "customer", response.Role)
	require.NotNil(t, response.TableID)
	assert.Equal(t, fixture.tableID.String(), *response.TableID)

	cookie := findCookie(t, rec, customerCookieName)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 1, fixture.store.Len())
}

func Test_Server_AuthenticateTable_WrongPin(t *testing.T) {
	fixture := newServerFixture(t)

	rec := fixture.do(jsonRequest(http.MethodPost, "/api/v1/auth/table",
		`{"tableId": "`+fixture.tableID.String()+`", "pin": "9999"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, fixture.store.Len())
}

func Test_Server_AuthenticateTable_UnknownTableLooksLikeWrongPin(t *testing.T) {
	fixture := newServerFixture(t)

	wrongPin := fixture.do(jsonRequest(http.MethodPost, "/api/v1/auth/table",
		`{"tableId": "`+fixture.tableID.String()+`", "pin": "9999"}`))
	unknownTable := fixture.do(jsonRequest(http.MethodPost, "/api/v1/auth/table",
		`{"tableId": "`+kernel.NewUUID().String()+`", "pin": "1234"}`))

	assert.Equal(t, http.StatusUnauthorized, wrongPin.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownTable.Code)
	assert.Equal(t, wrongPin.Body.String(), unknownTable.Body.String())
}

func Test_Server_AuthenticateStaff_IssuesStaffSession(t *testing.T) {
	fixture := newServerFixture(t)

	rec := fixture.do(jsonRequest(http.MethodPost, "/api/v1/auth/staff",
		`{"role": "kitchen", "password": "kitchen-pass"}`))

	require.Equal(t, http.StatusOK, rec.Code)

	var response SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "kitchen", response.Role)
	assert.Nil(t, response.TableID)

	cookie := findCookie(t, rec, staffCookieName)
	assert.NotEmpty(t, cookie.Value)
}

func Test_Server_AuthenticateStaff_CustomerRoleRejected(t *testing.T) {
	fixture := newServerFixture(t)

	rec := fixture.do(jsonRequest(http.MethodPost, "/api/v1/auth/staff",
		`{"role": "customer", "password": "whatever"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_Server_Logout_ClearsOnlyNamedSlot(t *testing.T) {
	fixture := newServerFixture(t)
	customer := fixture.customerCookie(t)
	staff := fixture.staffCookie(t, "kitchen", "kitchen-pass")
	require.Equal(t, 2, fixture.store.Len())

	req := jsonRequest(http.MethodPost, "/api/v1/auth/logout", `{"category": "customer"}`)
	req.AddCookie(customer)
	req.AddCookie(staff)
	rec := fixture.do(req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, fixture.store.Len())

	_, ok := fixture.store.Get(staff.Value)
	assert.True(t, ok)
	_, ok = fixture.store.Get(customer.Value)
	assert.False(t, ok)
}

func Test_Server_Logout_UnknownCategory(t *testing.T) {
	fixture := newServerFixture(t)

	rec := fixture.do(jsonRequest(http.MethodPost, "/api/v1/auth/logout", `{"category": "pirate"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_Server_PlaceOrder_RequiresSession(t *testing.T) {
	fixture := newServerFixture(t)

	rec := fixture.do(jsonRequest(http.MethodPost,
		"/api/v1/tables/"+fixture.tableID.String()+"/orders",
		`{"lines": [{"menuItemId": "`+kernel.NewUUID().String()+`", "quantity": 1}]}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_Server_PlaceOrder_OtherTablesSessionForbidden(t *testing.T) {
	fixture := newServerFixture(t)
	cookie := fixture.customerCookie(t)

	req := jsonRequest(http.MethodPost,
		"/api/v1/tables/"+kernel.NewUUID().String()+"/orders",
		`{"lines": [{"menuItemId": "`+kernel.NewUUID().String()+`", "quantity": 1}]}`)
	req.AddCookie(cookie)
	rec := fixture.do(req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func Test_Server_AdvanceOrder_CustomerSessionRejected(t *testing.T) {
	fixture := newServerFixture(t)
	cookie := fixture.customerCookie(t)

	req := jsonRequest(http.MethodPatch,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/advance", "")
	req.AddCookie(cookie)
	rec := fixture.do(req)

	// The customer session sits in the wrong slot entirely.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_Server_RotatePin_KitchenForbidden(t *testing.T) {
	fixture := newServerFixture(t)
	cookie := fixture.staffCookie(t, "kitchen", "kitchen-pass")

	req := jsonRequest(http.MethodPost,
		"/api/v1/tables/"+fixture.tableID.String()+"/pin", "")
	req.AddCookie(cookie)
	rec := fixture.do(req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func Test_Server_InvalidOrderID(t *testing.T) {
	fixture := newServerFixture(t)
	cookie := fixture.staffCookie(t, "kitchen", "kitchen-pass")

	req := jsonRequest(http.MethodPatch, "/api/v1/orders/not-a-uuid/advance", "")
	req.AddCookie(cookie)
	rec := fixture.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_Server_Events_RequiresSession(t *testing.T) {
	fixture := newServerFixture(t)

	rec := fixture.do(httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_Server_Events_StreamsPresenceAndEvents(t *testing.T) {
	fixture := newServerFixture(t)
	cookie := fixture.customerCookie(t)

	httpServer := httptest.NewServer(fixture.echo)
	defer httpServer.Close()

	req, err := http.NewRequest(http.MethodGet,
		httpServer.URL+"/api/v1/events?table="+fixture.tableID.String(), nil)
	require.NoError(t, err)
	req.AddCookie(cookie)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)

	event, data := readSSEEvent(t, reader)
	assert.Equal(t, "table-presence", event)
	assert.Contains(t, data, `"`+fixture.tableID.String()+`":1`)

	orderID := kernel.NewUUID()
	fixture.bus.Publish(events.OrderCreated(orderID.String(), fixture.tableID.String(), "queued"))

	event, data = readSSEEvent(t, reader)
	assert.Equal(t, "order-created", event)
	assert.Contains(t, data, orderID.String())
}

func Test_Server_Events_UppercaseTableIDSharesPresenceEntry(t *testing.T) {
	fixture := newServerFixture(t)
	cookie := fixture.customerCookie(t)

	httpServer := httptest.NewServer(fixture.echo)
	defer httpServer.Close()

	req, err := http.NewRequest(http.MethodGet,
		httpServer.URL+"/api/v1/events?table="+strings.ToUpper(fixture.tableID.String()), nil)
	require.NoError(t, err)
	req.AddCookie(cookie)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Presence keys on the canonical lowercase id regardless of how the
	// client spelled it.
	event, data := readSSEEvent(t, bufio.NewReader(resp.Body))
	assert.Equal(t, "table-presence", event)
	assert.Contains(t, data, `"`+fixture.tableID.String()+`":1`)
}

func Test_Server_Heartbeat_ReachesConnectedStream(t *testing.T) {
	fixture := newServerFixture(t)
	cookie := fixture.staffCookie(t, "kitchen", "kitchen-pass")

	httpServer := httptest.NewServer(fixture.echo)
	defer httpServer.Close()

	req, err := http.NewRequest(http.MethodGet, httpServer.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	reader := bufio.NewReader(resp.Body)
	readSSEEvent(t, reader)

	require.Eventually(t, func() bool {
		return fixture.server.StreamCount() == 1
	}, time.Second, 10*time.Millisecond)
	fixture.server.Heartbeat()

	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ": heartbeat\n", line)
}

func readSSEEvent(t *testing.T, reader *bufio.Reader) (string, string) {
	t.Helper()

	var event, data string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")

		switch {
		case line == "" && event != "":
			return event, data
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
}
