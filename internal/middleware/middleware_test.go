package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/docdesk/internal/auth"
	"github.com/iliyamo/docdesk/internal/config"
)

func setupLimiter(t *testing.T, capacity int) (*echo.Echo, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log, _ := test.NewNullLogger()
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       capacity,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            5 * time.Hour,
		KeyStrategy:    "ip_route",
		Prefix:         "test:rl",
	}
	e := echo.New()
	e.POST("/otp/send", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, NewTokenBucket(cfg, rdb, log))
	return e, mr
}

func post(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenBucketBlocksWhenEmpty(t *testing.T) {
	e, mr := setupLimiter(t, 2)

	for i := 0; i < 2; i++ {
		rec := post(e, "/otp/send")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, "0", post(e, "/otp/send").Header().Get("X-RateLimit-Remaining"))

	rec := post(e, "/otp/send")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"status":false,"message":"Too many requests! Please try again later."}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, mr.Exists("test:rl:ip:10.0.0.1:route:POST /otp/send"))
}

func TestTokenBucketFailsOpen(t *testing.T) {
	e, mr := setupLimiter(t, 1)
	mr.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, post(e, "/otp/send").Code)
	}
}

func TestTokenBucketDisabled(t *testing.T) {
	log, _ := test.NewNullLogger()
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil, log)
	called := false
	err := mw(func(echo.Context) error { called = true; return nil })(echo.New().NewContext(
		httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder()))
	require.NoError(t, err)
	assert.True(t, called)
}

func TestIdentifySetsUserID(t *testing.T) {
	signer := auth.NewSigner("secret")
	token, err := signer.Employee("emp-1", "co-1", auth.RoleAdmin)
	require.NoError(t, err)

	e := echo.New()
	var seen any
	e.POST("/x", func(c echo.Context) error {
		seen = c.Get(UserIDKey)
		return c.NoContent(http.StatusOK)
	}, Identify(auth.NewCustomerVerifier("secret"), auth.NewEmployeeVerifier("secret")))

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	e.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "emp-1", seen)

	seen = nil
	req = httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Nil(t, seen)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestToEventAndWriteResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/category/manage-category", strings.NewReader(`{"action":"get_category_list"}`))
	req.Header.Set("authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ev, err := ToEvent(c, "/category/manage-category")
	require.NoError(t, err)
	assert.Equal(t, `{"action":"get_category_list"}`, ev.Body)
	assert.Equal(t, "/category/manage-category", ev.RequestContext.ResourcePath)
	assert.Equal(t, "Bearer abc", ev.Headers["Authorization"])
}
