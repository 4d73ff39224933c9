package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apihttp "github.com/drelaann/simple-ecommerce-api/api/http"
	"github.com/drelaann/simple-ecommerce-api/api/http/handlers"
	"github.com/drelaann/simple-ecommerce-api/pkg/health"
	"github.com/drelaann/simple-ecommerce-api/pkg/health/checkers"
	"github.com/drelaann/simple-ecommerce-api/pkg/metrics"
	"github.com/drelaann/simple-ecommerce-api/pkg/product"
	"github.com/drelaann/simple-ecommerce-api/pkg/repository/gormrepo"
	"github.com/drelaann/simple-ecommerce-api/pkg/security/jwt"
	"github.com/drelaann/simple-ecommerce-api/pkg/security/password"
	"github.com/drelaann/simple-ecommerce-api/pkg/storage/storagetest"
	"github.com/drelaann/simple-ecommerce-api/pkg/user"
)

const (
	secret = "test-secret"
	issuer = "shop-test"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db := storagetest.NewDB(t)
	reg, err := metrics.New()
	require.NoError(t, err)

	users := user.NewService(gormrepo.NewUserRepository(db.Gorm), password.NewBcrypt(bcrypt.MinCost))
	products := product.NewService(gormrepo.NewProductRepository(db.Gorm))
	tokens := jwt.NewGenerator(secret, issuer, time.Minute)

	app := apihttp.NewApp(apihttp.AppOptions{Name: "shop", Logger: zap.NewNop(), Metrics: reg})
	apihttp.Register(app,
		handlers.NewHealthHandler(health.NewService(checkers.NewDatabaseChecker("sqlite", db)), "Simple Shop", "1.0.0"),
		handlers.NewAuthHandler(users, tokens, tokens.TTL()),
		handlers.NewUserHandler(users),
		handlers.NewProductHandler(products),
		jwt.NewAuthMiddleware(secret, issuer),
	)
	return app
}

type response struct {
	status int
	body   []byte
}

func (r response) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, v), string(r.body))
}

func do(t *testing.T, app *fiber.App, method, path, body string, header ...string) response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, body: raw}
}

type userJSON struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	FullName  *string `json:"full_name"`
	IsActive  bool    `json:"is_active"`
	UpdatedAt *string `json:"updated_at"`
}

type productJSON struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	IsActive    bool    `json:"is_active"`
}

func createAlice(t *testing.T, app *fiber.App) userJSON {
	t.Helper()
	r := do(t, app, http.MethodPost, "/api/v1/users",
		`{"email":"alice@example.com","username":"alice","full_name":"Alice A","password":"s3cret"}`)
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	var u userJSON
	r.decode(t, &u)
	return u
}

func TestRoot_And_Health(t *testing.T) {
	app := newTestApp(t)

	r := do(t, app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, r.status)
	assert.JSONEq(t, `{"message":"Welcome to Simple Shop","version":"1.0.0"}`, string(r.body))

	r = do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, r.status)
	assert.JSONEq(t, `{"status":"healthy"}`, string(r.body))

	r = do(t, app, http.MethodGet, "/api/v1/ready", "")
	assert.Equal(t, http.StatusOK, r.status)
	assert.JSONEq(t, `{"status":"ready"}`, string(r.body))
}

func TestMetrics_Exposed(t *testing.T) {
	app := newTestApp(t)
	do(t, app, http.MethodGet, "/health", "")

	r := do(t, app, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, r.status)
	assert.Contains(t, string(r.body), "http_requests_total")
}

func TestUsers_CreateGetNeverLeaksHash(t *testing.T) {
	app := newTestApp(t)
	u := createAlice(t, app)
	assert.NotZero(t, u.ID)
	assert.True(t, u.IsActive)
	assert.Nil(t, u.UpdatedAt)

	r := do(t, app, http.MethodGet, "/api/v1/users/"+itoa(u.ID), "")
	assert.Equal(t, http.StatusOK, r.status)
	assert.NotContains(t, string(r.body), "password")
	assert.NotContains(t, string(r.body), "s3cret")
}

func TestUsers_CreateRejects(t *testing.T) {
	app := newTestApp(t)
	createAlice(t, app)

	cases := map[string]string{
		"duplicate email":    `{"email":"alice@example.com","username":"other","password":"x"}`,
		"duplicate username": `{"email":"other@example.com","username":"alice","password":"x"}`,
		"bad email":          `{"email":"not-an-email","username":"bob","password":"x"}`,
		"missing password":   `{"email":"bob@example.com","username":"bob"}`,
		"malformed":          `{"email":`,
	}
	for name, body := range cases {
		r := do(t, app, http.MethodPost, "/api/v1/users", body)
		assert.Equal(t, http.StatusBadRequest, r.status, name)
	}

	r := do(t, app, http.MethodPost, "/api/v1/users",
		`{"email":"alice@example.com","username":"alice2","password":"x"}`)
	assert.Contains(t, string(r.body), "email")
}

func TestUsers_ListPagination(t *testing.T) {
	app := newTestApp(t)
	createAlice(t, app)
	r := do(t, app, http.MethodPost, "/api/v1/users", `{"email":"bob@example.com","username":"bob","password":"x"}`)
	require.Equal(t, http.StatusCreated, r.status)

	r = do(t, app, http.MethodGet, "/api/v1/users?skip=1&limit=1", "")
	require.Equal(t, http.StatusOK, r.status)
	var page []userJSON
	r.decode(t, &page)
	require.Len(t, page, 1)
	assert.Equal(t, "bob", page[0].Username)

	for _, q := range []string{"limit=0", "limit=101", "skip=-1", "limit=abc"} {
		r = do(t, app, http.MethodGet, "/api/v1/users?"+q, "")
		assert.Equal(t, http.StatusBadRequest, r.status, q)
	}
}

func TestUsers_PartialUpdate(t *testing.T) {
	app := newTestApp(t)
	u := createAlice(t, app)
	path := "/api/v1/users/" + itoa(u.ID)

	r := do(t, app, http.MethodPut, path, `{"full_name":null}`)
	require.Equal(t, http.StatusOK, r.status, string(r.body))
	var got userJSON
	r.decode(t, &got)
	assert.Nil(t, got.FullName)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.NotNil(t, got.UpdatedAt)

	r = do(t, app, http.MethodPut, path, `{"email":null}`)
	assert.Equal(t, http.StatusBadRequest, r.status)

	r = do(t, app, http.MethodPut, "/api/v1/users/999", `{"username":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, r.status)
}

func TestUsers_Delete(t *testing.T) {
	app := newTestApp(t)
	u := createAlice(t, app)
	path := "/api/v1/users/" + itoa(u.ID)

	r := do(t, app, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, r.status)
	r = do(t, app, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, r.status)
	r = do(t, app, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, r.status)
}

func TestAuth_LoginAndMe(t *testing.T) {
	app := newTestApp(t)
	u := createAlice(t, app)

	r := do(t, app, http.MethodPost, "/api/v1/auth/login", `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, r.status)

	r = do(t, app, http.MethodPost, "/api/v1/auth/login", `{"username":"alice","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, r.status, string(r.body))
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	r.decode(t, &tok)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.EqualValues(t, 60, tok.ExpiresIn)

	r = do(t, app, http.MethodGet, "/api/v1/users/me", "")
	assert.Equal(t, http.StatusUnauthorized, r.status)

	r = do(t, app, http.MethodGet, "/api/v1/users/me", "", "Authorization", "Bearer "+tok.AccessToken)
	require.Equal(t, http.StatusOK, r.status)
	var me userJSON
	r.decode(t, &me)
	assert.Equal(t, u.ID, me.ID)
}

func TestAuth_InactiveUserForbidden(t *testing.T) {
	app := newTestApp(t)
	r := do(t, app, http.MethodPost, "/api/v1/users",
		`{"email":"carol@example.com","username":"carol","password":"pw","is_active":false}`)
	require.Equal(t, http.StatusCreated, r.status)

	r = do(t, app, http.MethodPost, "/api/v1/auth/login", `{"username":"carol","password":"pw"}`)
	assert.Equal(t, http.StatusForbidden, r.status)
}

func createProduct(t *testing.T, app *fiber.App, body string) productJSON {
	t.Helper()
	r := do(t, app, http.MethodPost, "/api/v1/products", body)
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	var p productJSON
	r.decode(t, &p)
	return p
}

func TestProducts_CreateDefaults(t *testing.T) {
	app := newTestApp(t)
	p := createProduct(t, app, `{"name":"Widget","price":9.5}`)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, 9.5, p.Price)
	assert.Equal(t, 0, p.Stock)
	assert.True(t, p.IsActive)
	assert.Nil(t, p.Description)

	for _, body := range []string{
		`{"name":"Bad","price":-1}`,
		`{"name":"Bad","price":1,"stock":-3}`,
		`{"name":"NoPrice"}`,
		`{"price":1}`,
	} {
		r := do(t, app, http.MethodPost, "/api/v1/products", body)
		assert.Equal(t, http.StatusBadRequest, r.status, body)
	}
}

func TestProducts_ListFilters(t *testing.T) {
	app := newTestApp(t)
	createProduct(t, app, `{"name":"Red Chair","price":10}`)
	createProduct(t, app, `{"name":"Blue chair","price":12,"is_active":false}`)
	createProduct(t, app, `{"name":"Table","price":40}`)

	names := func(path string) []string {
		r := do(t, app, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, r.status, string(r.body))
		var ps []productJSON
		r.decode(t, &ps)
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Red Chair", "Blue chair", "Table"}, names("/api/v1/products"))
	assert.Equal(t, []string{"Red Chair", "Table"}, names("/api/v1/products?active_only=true"))
	// search ignores active_only
	assert.Equal(t, []string{"Red Chair", "Blue chair"}, names("/api/v1/products?search=CHAIR&active_only=true"))
	assert.Empty(t, names("/api/v1/products?search=sofa"))

	r := do(t, app, http.MethodGet, "/api/v1/products?active_only=maybe", "")
	assert.Equal(t, http.StatusBadRequest, r.status)
}

func TestProducts_UpdateAndStock(t *testing.T) {
	app := newTestApp(t)
	p := createProduct(t, app, `{"name":"Lamp","description":"desk lamp","price":20,"stock":3}`)
	path := "/api/v1/products/" + itoa(p.ID)

	r := do(t, app, http.MethodPut, path, `{"price":25,"description":null}`)
	require.Equal(t, http.StatusOK, r.status, string(r.body))
	var got productJSON
	r.decode(t, &got)
	assert.Equal(t, 25.0, got.Price)
	assert.Nil(t, got.Description)
	assert.Equal(t, 3, got.Stock)
	assert.Equal(t, "Lamp", got.Name)

	r = do(t, app, http.MethodPatch, path+"/stock?quantity=7", "")
	require.Equal(t, http.StatusOK, r.status)
	r.decode(t, &got)
	assert.Equal(t, 7, got.Stock)

	for _, q := range []string{"", "?quantity=-1", "?quantity=x"} {
		r = do(t, app, http.MethodPatch, path+"/stock"+q, "")
		assert.Equal(t, http.StatusBadRequest, r.status, q)
	}

	r = do(t, app, http.MethodPatch, "/api/v1/products/999/stock?quantity=1", "")
	assert.Equal(t, http.StatusNotFound, r.status)

	r = do(t, app, http.MethodPut, path, `{"stock":-2}`)
	assert.Equal(t, http.StatusBadRequest, r.status)
}

func TestProducts_DeleteAndMissing(t *testing.T) {
	app := newTestApp(t)
	p := createProduct(t, app, `{"name":"Mug","price":4}`)
	path := "/api/v1/products/" + itoa(p.ID)

	assert.Equal(t, http.StatusNoContent, do(t, app, http.MethodDelete, path, "").status)
	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodDelete, path, "").status)
	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodGet, path, "").status)
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodGet, "/api/v1/products/abc", "").status)
}

func TestRequestID_Echoed(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get(fiber.HeaderXRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.False(t, strings.TrimSpace(resp.Header.Get(fiber.HeaderXRequestID)) == "")
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func TestUsers_RejectsOverlongPassword(t *testing.T) {
	app := newTestApp(t)
	long := strings.Repeat("p", 80)

	r := do(t, app, http.MethodPost, "/api/v1/users",
		`{"email":"dave@example.com","username":"dave","password":"`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, r.status, string(r.body))
	assert.Contains(t, string(r.body), "at most 72 bytes")

	u := createAlice(t, app)
	r = do(t, app, http.MethodPut, "/api/v1/users/"+itoa(u.ID), `{"password":"`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, r.status, string(r.body))
	assert.Contains(t, string(r.body), "at most 72 bytes")

	// exactly 72 bytes is still accepted
	r = do(t, app, http.MethodPut, "/api/v1/users/"+itoa(u.ID), `{"password":"`+strings.Repeat("p", 72)+`"}`)
	assert.Equal(t, http.StatusOK, r.status, string(r.body))
}

func TestProducts_SearchFoldsNonASCIICase(t *testing.T) {
	app := newTestApp(t)
	createProduct(t, app, `{"name":"Телефон","price":100}`)
	createProduct(t, app, `{"name":"Ноутбук","price":500}`)

	r := do(t, app, http.MethodGet, "/api/v1/products?search="+url.QueryEscape("ТЕЛ"), "")
	require.Equal(t, http.StatusOK, r.status, string(r.body))
	var ps []productJSON
	r.decode(t, &ps)
	require.Len(t, ps, 1)
	assert.Equal(t, "Телефон", ps[0].Name)
}
