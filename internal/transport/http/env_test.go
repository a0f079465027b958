package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shopapi/internal/cache"
	"github.com/Skotchmaster/shopapi/internal/db"
	"github.com/Skotchmaster/shopapi/internal/models"
	"github.com/Skotchmaster/shopapi/internal/repo"
	"github.com/Skotchmaster/shopapi/internal/service"
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	Repo *repo.GormRepo
	Auth *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	gdb, err := db.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, db.Migrate(ctx, gdb))

	r := &repo.GormRepo{DB: gdb}
	authSvc := &service.AuthService{
		Repo:      r,
		JWTSecret: []byte("test-jwt-secret"),
		Denylist:  cache.NewMemoryDenylist(),
	}

	e := echo.New()
	Register(e, &Deps{
		CatalogHandler: &CatalogHTTP{Svc: &service.CatalogService{Repo: r}},
		CartHandler:    &CartHTTP{Svc: &service.CartService{Repo: r}},
		OrderHandler:   &OrderHTTP{Svc: &service.OrderService{Repo: r}},
		AuthHandler:    &AuthHTTP{Svc: authSvc},
	})

	return &testEnv{T: t, E: e, Repo: r, Auth: authSvc}
}

type reqOpt func(*http.Request)

func withSession(id string) reqOpt {
	return func(r *http.Request) { r.Header.Set(service.SessionHeader, id) }
}

func withToken(token string) reqOpt {
	return func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer "+token) }
}

func (env *testEnv) do(method, path string, body any, opts ...reqOpt) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, o := range opts {
		o(req)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, rec)["error"].(string)
}

func (env *testEnv) product(name string, price float64, stock int) models.Product {
	env.T.Helper()
	p := models.Product{Name: name, Price: price, Stock: stock}
	require.NoError(env.T, env.Repo.CreateProduct(context.Background(), &p))
	return p
}

func (env *testEnv) token(email, role string) string {
	env.T.Helper()
	ctx := context.Background()

	if role == models.RoleAdmin {
		_, err := env.Auth.EnsureAdmin(ctx, email, "password")
		require.NoError(env.T, err)
	} else {
		_, err := env.Auth.Register(ctx, email, email, "password")
		require.NoError(env.T, err)
	}

	res, err := env.Auth.Login(ctx, email, "password")
	require.NoError(env.T, err)
	return res.Token
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
