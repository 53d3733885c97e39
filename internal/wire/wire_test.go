package wire

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"food-delivery/internal/data/entity"
	"food-delivery/internal/data/repository"
	"food-delivery/internal/usecase"
	"food-delivery/pkg/ratelimit"
	"food-delivery/pkg/storage"
	"food-delivery/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCustomerRepo struct {
	repository.CustomerRepository
	customers map[uuid.UUID]*entity.Customer
}

func (s *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	return s.customers[id], nil
}

func (s *stubCustomerRepo) FindByIdentity(context.Context, string, string) (*entity.Customer, error) {
	return nil, nil
}

type nopNotifier struct{}

func (nopNotifier) SendVerificationEmail(context.Context, string, string, string) error { return nil }
func (nopNotifier) SendOTPEmail(context.Context, string, string, string) error { return nil }
func (nopNotifier) SendPasswordChangedEmail(context.Context, string, string) error { return nil }

type testApp struct {
	*App
	fs   afero.Fs
	repo *stubCustomerRepo
}

func newTestApp(t *testing.T, redisClient *redis.Client) *testApp {
	t.Helper()

	config := &utils.Config{
		JWT: utils.JWTConfig{
			AccessSecret:  "access-secret-for-tests",
			RefreshSecret: "refresh-secret-for-tests",
			AccessExpiry:  time.Hour,
			RefreshExpiry: 24 * time.Hour,
		},
		OTP:       utils.OTPConfig{Expiry: 10 * time.Minute},
		Upload:    utils.UploadConfig{Dir: "uploads/images", PublicPath: "/uploads/images", MaxBytes: 1 << 20},
		RateLimit: utils.RateLimitConfig{MaxAttempts: 2, Window: time.Minute},
	}

	fs := afero.NewMemMapFs()
	images, err := storage.NewImageStore(fs, config.Upload)
	require.NoError(t, err)

	repo := &stubCustomerRepo{customers: map[uuid.UUID]*entity.Customer{}}
	app := Wiring(
		&repository.Repository{Customer: repo},
		config,
		ratelimit.NewLimiter(redisClient, config.RateLimit),
		images,
		nopNotifier{},
		zap.NewNop(),
	)
	return &testApp{App: app, fs: fs, repo: repo}
}

func (a *testApp) addCustomer(role entity.UserRole) (uuid.UUID, string) {
	id := uuid.New()
	a.repo.customers[id] = &entity.Customer{
		BaseNoDelete: entity.BaseNoDelete{ID: id},
		Email:        id.String() + "@example.com",
		Role:         role,
		IsActive:     true,
	}
	token, _ := a.Service.Token.Issue(id, usecase.AccessToken)
	return id, token
}

func (a *testApp) do(method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

func TestRouter_PublicEndpoints(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Food Delivery API is running", message(t, rec))

	rec = app.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Welcome to Food Delivery API", message(t, rec))

	rec = app.do(http.MethodGet, "/api/orders", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Not found", message(t, rec))

	rec = app.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "food_delivery_http_requests_total")
}

func TestRouter_CustomerRoutesRequireToken(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(http.MethodGet, "/api/customers/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Access denied. No token provided.", message(t, rec))

	_, token := app.addCustomer(entity.RoleCustomer)
	rec = app.do(http.MethodGet, "/api/customers/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodPost, "/api/auth/logout", "garbage", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AdminRoutes(t *testing.T) {
	app := newTestApp(t, nil)
	customerID, customerToken := app.addCustomer(entity.RoleCustomer)
	_, adminToken := app.addCustomer(entity.RoleAdmin)

	rec := app.do(http.MethodGet, "/api/customers/"+customerID.String(), customerToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Access denied. Admin privileges required.", message(t, rec))

	rec = app.do(http.MethodGet, "/api/customers/"+customerID.String(), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// static segments are never captured by {id}
	rec = app.do(http.MethodGet, "/api/customers/addresses", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ServesUploadedImages(t *testing.T) {
	app := newTestApp(t, nil)
	require.NoError(t, afero.WriteFile(app.fs, "uploads/images/avatar.png", []byte("png-bytes"), 0o644))

	rec := app.do(http.MethodGet, "/uploads/images/avatar.png", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "png-bytes", rec.Body.String())
}

func TestRouter_LoginIsRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	app := newTestApp(t, client)
	body := `{"email":"nobody@example.com","password":"secret1"}`

	for i := 0; i < 2; i++ {
		rec := app.do(http.MethodPost, "/api/auth/login", "", strings.NewReader(body))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := app.do(http.MethodPost, "/api/auth/login", "", strings.NewReader(body))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	// other routes have their own budget
	rec = app.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
