// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/gestao-consultoria/backend/config"
	"github.com/gestao-consultoria/backend/internal/infra/db"
	"github.com/gestao-consultoria/backend/internal/infra/dependency"
	"github.com/gestao-consultoria/backend/internal/integration/persistence/model"
	"github.com/gestao-consultoria/backend/test/integration/mock"
)

const (
	testAnonKey        = "anon-key"
	testServiceRoleKey = "service-role-key"
	testRateLimit      = 5
)

// Suite-wide collaborators, reset before every scenario.
var (
	supabaseMock *mock.SupabaseMock
	redisMock    *mock.Redis
)

// testContext holds the state of one scenario.
type testContext struct {
	server   *httptest.Server
	client   *http.Client
	db       *mock.Db
	headers  map[string]string
	response *response
}

type response struct {
	status int
	body   []byte
}

// InitializeTestSuite starts the mocked identity provider and Redis before any scenario runs.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		supabaseMock = mock.NewSupabaseMock()
		supabaseMock.Start()
		redisMock = mock.NewRedis()
	})

	ctx.AfterSuite(func() {
		supabaseMock.Close()
		redisMock.Close()
	})
}

// InitializeScenario wires a fresh server and registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		test.after()
		return ctx, nil
	})

	registerSetupSteps(ctx, test)
	registerRequestSteps(ctx, test)
	registerResponseSteps(ctx, test)
}

func (t *testContext) before() error {
	supabaseMock.Reset()
	if err := redisMock.Clear(); err != nil {
		return fmt.Errorf("failed to clear redis: %w", err)
	}

	t.headers = map[string]string{}
	t.response = nil
	t.db = mock.NewDb(map[string]any{
		"profiles":           &model.ProfileModel{},
		"invoices":           &model.InvoiceModel{},
		"installment_extras": &model.InstallmentExtraModel{},
	})

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Supabase: config.SupabaseConfig{
			URL:            supabaseMock.GetUrl(),
			AnonKey:        testAnonKey,
			ServiceRoleKey: testServiceRoleKey,
			Timeout:        5 * time.Second,
		},
		RateLimit: config.RateLimitConfig{MaxRequests: testRateLimit, Window: time.Minute},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}

	injector, err := dependency.NewInjector(cfg, db.Wrap(t.db.DbConn), redisMock.Client)
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}

	t.server = httptest.NewServer(injector.Handler)
	return nil
}

func (t *testContext) after() {
	if t.server != nil {
		t.server.Close()
	}
	if t.db != nil {
		t.db.Close()
	}
}
