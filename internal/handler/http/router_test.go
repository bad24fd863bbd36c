package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/department"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/wallet"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/sse"
	"github.com/cmlabs-hris/scan-attendance-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/scan-attendance-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/scan-attendance-go/internal/service/auth"
	departmentService "github.com/cmlabs-hris/scan-attendance-go/internal/service/department"
	employeeService "github.com/cmlabs-hris/scan-attendance-go/internal/service/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testApp struct {
	router  http.Handler
	wallets *memory.WalletRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	users := memory.NewUserRepository()
	departments := memory.NewDepartmentRepository()
	employees := memory.NewEmployeeRepository()
	wallets := memory.NewWalletRepository(true)
	hub := sse.NewHub()
	t.Cleanup(hub.Close)

	jwtService := jwt.NewJWTService(handlerTestSecret, time.Hour, false)
	attendance := attendanceService.NewAttendanceService(wallets, employees, departments, users, hub, attendanceService.Options{
		DefaultHourlyRate: decimal.NewFromInt(100),
		ReportLocation:    time.UTC,
		SampleEnabled:     true,
	})

	router := NewRouter(
		RouterConfig{FrontendURL: "http://localhost:3000", Env: "test"},
		jwtService,
		NewAuthHandler(jwtService, authService.NewAuthService(users, departments, jwtService)),
		NewDepartmentHandler(departmentService.NewDepartmentService(departments, users)),
		NewEmployeeHandler(employeeService.NewEmployeeService(memory.Transactor{}, employees, departments, decimal.NewFromInt(100))),
		NewAttendanceHandler(attendance, jwtService),
	)

	return &testApp{router: router, wallets: wallets}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (a *testApp) login(t *testing.T, username string) string {
	t.Helper()
	rec, env := a.do(t, http.MethodPost, "/api/v1/auth/login", auth.LoginRequest{Username: username, Password: "password123"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tokens auth.TokenResponse
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	return tokens.AccessToken
}

func (a *testApp) register(t *testing.T, req auth.RegisterRequest) {
	t.Helper()
	req.Password = "password123"
	rec, _ := a.do(t, http.MethodPost, "/api/v1/auth/register", req, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

// seed registers an admin, a department with its supervisor and one employee.
func (a *testApp) seed(t *testing.T) (adminToken, supervisorToken string, dept department.DepartmentResponse, emp employee.EmployeeResponse) {
	t.Helper()

	a.register(t, auth.RegisterRequest{Username: "boss"})
	adminToken = a.login(t, "boss")

	rec, env := a.do(t, http.MethodPost, "/api/v1/departments", department.CreateDepartmentRequest{Name: "Packing"}, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &dept))

	a.register(t, auth.RegisterRequest{Username: "guard", Role: "supervisor", DepartmentID: &dept.ID})
	supervisorToken = a.login(t, "guard")

	rec, env = a.do(t, http.MethodPost, "/api/v1/employees", employee.CreateEmployeeRequest{Name: "Asha", DepartmentID: &dept.ID}, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &emp))

	return adminToken, supervisorToken, dept, emp
}

func TestAuthRoutes(t *testing.T) {
	app := newTestApp(t)

	t.Run("register validation", func(t *testing.T) {
		rec, env := app.do(t, http.MethodPost, "/api/v1/auth/register", auth.RegisterRequest{Username: "Bad Name", Password: "short"}, "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Details, "username")
		assert.Contains(t, env.Error.Details, "password")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		app.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	app.register(t, auth.RegisterRequest{Username: "boss"})

	t.Run("duplicate username", func(t *testing.T) {
		rec, _ := app.do(t, http.MethodPost, "/api/v1/auth/register", auth.RegisterRequest{Username: "boss", Password: "password123"}, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec, _ := app.do(t, http.MethodPost, "/api/v1/auth/login", auth.LoginRequest{Username: "boss", Password: "wrong-password"}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("login sets session cookie", func(t *testing.T) {
		rec, _ := app.do(t, http.MethodPost, "/api/v1/auth/login", auth.LoginRequest{Username: "boss", Password: "password123"}, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var session *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == jwt.SessionCookieName {
				session = c
			}
		}
		require.NotNil(t, session)
		assert.True(t, session.HttpOnly)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.AddCookie(session)
		meRec := httptest.NewRecorder()
		app.router.ServeHTTP(meRec, req)
		assert.Equal(t, http.StatusOK, meRec.Code)
	})

	t.Run("me", func(t *testing.T) {
		token := app.login(t, "boss")
		rec, env := app.do(t, http.MethodGet, "/api/v1/auth/me", nil, token)
		require.Equal(t, http.StatusOK, rec.Code)

		var me auth.UserResponse
		require.NoError(t, json.Unmarshal(env.Data, &me))
		assert.Equal(t, "boss", me.Username)
		assert.Equal(t, "admin", me.Role)
	})

	t.Run("me without token", func(t *testing.T) {
		rec, _ := app.do(t, http.MethodGet, "/api/v1/auth/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("stream token is not an access token", func(t *testing.T) {
		sseToken, _, err := jwt.NewJWTService(handlerTestSecret, time.Hour, false).GenerateSSEToken("someone")
		require.NoError(t, err)
		rec, _ := app.do(t, http.MethodGet, "/api/v1/auth/me", nil, sseToken)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestDepartmentAndEmployeeRoutes(t *testing.T) {
	app := newTestApp(t)
	adminToken, supervisorToken, dept, emp := app.seed(t)

	app.register(t, auth.RegisterRequest{Username: "viewer", Role: "user"})
	viewerToken := app.login(t, "viewer")

	t.Run("supervisor sees own department", func(t *testing.T) {
		rec, env := app.do(t, http.MethodGet, "/api/v1/departments/my", nil, supervisorToken)
		require.Equal(t, http.StatusOK, rec.Code)

		var mine department.DepartmentResponse
		require.NoError(t, json.Unmarshal(env.Data, &mine))
		assert.Equal(t, dept.ID, mine.ID)
	})

	t.Run("admin without department", func(t *testing.T) {
		rec, _ := app.do(t, http.MethodGet, "/api/v1/departments/my", nil, adminToken)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non admin cannot write", func(t *testing.T) {
		rec, _ := app.do(t, http.MethodPost, "/api/v1/departments", department.CreateDepartmentRequest{Name: "Other"}, supervisorToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec, _ = app.do(t, http.MethodDelete, "/api/v1/employees/"+emp.ID, nil, viewerToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("viewer can list", func(t *testing.T) {
		rec, env := app.do(t, http.MethodGet, "/api/v1/employees", nil, viewerToken)
		require.Equal(t, http.StatusOK, rec.Code)

		var list []employee.EmployeeResponse
		require.NoError(t, json.Unmarshal(env.Data, &list))
		require.Len(t, list, 1)
		assert.Equal(t, emp.EmployeeCode, list[0].EmployeeCode)
	})

	t.Run("update employee", func(t *testing.T) {
		name := "Asha K"
		rec, env := app.do(t, http.MethodPut, "/api/v1/employees/"+emp.ID, employee.UpdateEmployeeRequest{Name: &name}, adminToken)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var updated employee.EmployeeResponse
		require.NoError(t, json.Unmarshal(env.Data, &updated))
		assert.Equal(t, name, updated.Name)
	})

	t.Run("unknown employee", func(t *testing.T) {
		rec, _ := app.do(t, http.MethodGet, "/api/v1/employees/not-an-id", nil, adminToken)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("duplicate department name", func(t *testing.T) {
		rec, _ := app.do(t, http.MethodPost, "/api/v1/departments", department.CreateDepartmentRequest{Name: "Packing"}, adminToken)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAttendanceRoutes(t *testing.T) {
	app := newTestApp(t)
	adminToken, supervisorToken, _, emp := app.seed(t)

	scan := func(t *testing.T, code, token string) (*httptest.ResponseRecorder, wallet.ScanResponse) {
		t.Helper()
		rec, env := app.do(t, http.MethodPost, "/api/v1/attendance/scan", wallet.ScanRequest{EmployeeCode: code}, token)
		var resp wallet.ScanResponse
		if rec.Code == http.StatusOK {
			require.NoError(t, json.Unmarshal(env.Data, &resp))
		}
		return rec, resp
	}

	t.Run("wallet absent before first scan", func(t *testing.T) {
		rec, _ := app.do(t, http.MethodGet, "/api/v1/employees/"+emp.ID+"/attendance", nil, adminToken)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec, _ = app.do(t, http.MethodGet, "/api/v1/employees/"+emp.ID+"/work-logs", nil, adminToken)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("scans alternate", func(t *testing.T) {
		rec, resp := scan(t, strings.ToLower(emp.EmployeeCode), supervisorToken)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, wallet.ScanTypeIn, resp.LastScanType)
		assert.Equal(t, emp.ID, resp.EmployeeID)

		_, resp = scan(t, emp.EmployeeCode, supervisorToken)
		assert.Equal(t, wallet.ScanTypeOut, resp.LastScanType)
	})

	t.Run("unknown code", func(t *testing.T) {
		rec, _ := scan(t, "ZZZZZZZZ", supervisorToken)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("empty code", func(t *testing.T) {
		rec, _ := scan(t, "  ", supervisorToken)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("admin without department cannot scan", func(t *testing.T) {
		rec, _ := scan(t, emp.EmployeeCode, adminToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("scan requires authentication", func(t *testing.T) {
		rec, _ := scan(t, emp.EmployeeCode, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wallet and history", func(t *testing.T) {
		rec, env := app.do(t, http.MethodGet, "/api/v1/employees/"+emp.ID+"/attendance", nil, adminToken)
		require.Equal(t, http.StatusOK, rec.Code)

		var w wallet.WalletResponse
		require.NoError(t, json.Unmarshal(env.Data, &w))
		require.Len(t, w.Entries, 2)

		rec, env = app.do(t, http.MethodGet, "/api/v1/attendance/scans/mine", nil, supervisorToken)
		require.Equal(t, http.StatusOK, rec.Code)

		var logs []wallet.SupervisorScanLog
		require.NoError(t, json.Unmarshal(env.Data, &logs))
		require.Len(t, logs, 2)
		assert.Equal(t, "Asha", logs[0].EmployeeName)
		assert.Equal(t, "Packing", logs[0].DepartmentName)
		assert.Equal(t, wallet.ScanTypeOut, logs[0].ScanType)
	})

	t.Run("work logs with sample data", func(t *testing.T) {
		rec, _ := app.do(t, http.MethodPost, "/api/v1/employees/"+emp.ID+"/attendance/sample", nil, supervisorToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec, _ = app.do(t, http.MethodPost, "/api/v1/employees/"+emp.ID+"/attendance/sample", nil, adminToken)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec, env := app.do(t, http.MethodGet, "/api/v1/employees/"+emp.ID+"/work-logs?hourly_rate=100", nil, supervisorToken)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var records []wallet.WorkLogRecord
		require.NoError(t, json.Unmarshal(env.Data, &records))
		var found bool
		for _, record := range records {
			if record.Date == "2025-10-04" {
				found = true
				assert.Equal(t, int64(595), record.TotalMinutes)
				assert.Equal(t, 992.0, record.SalaryEarned)
			}
		}
		assert.True(t, found)
	})

	t.Run("invalid hourly rate", func(t *testing.T) {
		rec, _ := app.do(t, http.MethodGet, "/api/v1/employees/"+emp.ID+"/work-logs?hourly_rate=abc", nil, adminToken)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		rec, _ = app.do(t, http.MethodGet, "/api/v1/employees/"+emp.ID+"/work-logs?hourly_rate=-5", nil, adminToken)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("lost update", func(t *testing.T) {
		app.wallets.SaveErr = wallet.ErrConcurrentScan
		rec, _ := scan(t, emp.EmployeeCode, supervisorToken)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestScanStream(t *testing.T) {
	app := newTestApp(t)
	_, supervisorToken, _, emp := app.seed(t)

	server := httptest.NewServer(app.router)
	defer server.Close()

	t.Run("rejects missing token", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/v1/attendance/scans/stream")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects access token", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/v1/attendance/scans/stream?token=" + supervisorToken)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	rec, env := app.do(t, http.MethodGet, "/api/v1/attendance/scans/stream-token", nil, supervisorToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var streamToken wallet.SSETokenResponse
	require.NoError(t, json.Unmarshal(env.Data, &streamToken))
	assert.Positive(t, streamToken.ExpiresIn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/attendance/scans/stream?token="+streamToken.Token, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 32)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	waitFor := func(prefix string) string {
		t.Helper()
		timeout := time.After(2 * time.Second)
		for {
			select {
			case line, ok := <-lines:
				require.True(t, ok, "stream closed before %q", prefix)
				if strings.HasPrefix(line, prefix) {
					return line
				}
			case <-timeout:
				t.Fatalf("timed out waiting for %q", prefix)
			}
		}
	}

	waitFor("event: connected")

	scanRec, _ := app.do(t, http.MethodPost, "/api/v1/attendance/scan", wallet.ScanRequest{EmployeeCode: emp.EmployeeCode}, supervisorToken)
	require.Equal(t, http.StatusOK, scanRec.Code)

	waitFor("event: " + attendanceService.EventScanRecorded)
	data := waitFor("data: ")

	var event wallet.ScanEvent
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(data, "data: ")), &event))
	assert.Equal(t, emp.ID, event.EmployeeID)
	assert.Equal(t, wallet.ScanTypeIn, event.ScanType)
}
