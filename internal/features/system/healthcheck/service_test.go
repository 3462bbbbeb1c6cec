package system_healthcheck

import (
	"errors"
	"log/slog"
	"net/http"
	"testing"

	test_utils "taskboard/internal/util/testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

type healthcheckEnv struct {
	router *gin.Engine
	db     sqlmock.Sqlmock
	cache  *miniredis.Miniredis
}

func createHealthcheckRouterForTest(t *testing.T) *healthcheckEnv {
	sqlDb, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDb.Close() })

	gormDb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDb}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	require.NoError(t, err)

	server := miniredis.RunT(t)
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{server.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	service := NewHealthcheckService(
		func() *gorm.DB { return gormDb },
		func() valkey.Client { return client },
		t.TempDir(),
		slog.Default(),
	)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHealthcheckController(service).RegisterRoutes(router.Group("/api/v1"))

	return &healthcheckEnv{router: router, db: mock, cache: server}
}

func Test_CheckHealth_WhenDependenciesAreUp_ReportsThemHealthy(t *testing.T) {
	env := createHealthcheckRouterForTest(t)
	env.db.ExpectPing()

	response := test_utils.MakeGetRequest(t, env.router, "/api/v1/system/health", "", 0)

	var health HealthcheckResponseDTO
	response.Unmarshal(t, &health)
	assert.Equal(t, HealthStatusHealthy, health.Database)
	assert.Equal(t, HealthStatusHealthy, health.Cache)
	require.NotNil(t, health.Disk)
	assert.Positive(t, health.Disk.TotalBytes)
	assert.NoError(t, env.db.ExpectationsWereMet())
}

func Test_CheckHealth_WhenDatabaseIsDown_ReturnsServiceUnavailable(t *testing.T) {
	env := createHealthcheckRouterForTest(t)
	env.db.ExpectPing().WillReturnError(errors.New("connection refused"))

	var health HealthcheckResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		env.router,
		"/api/v1/system/health",
		"",
		http.StatusServiceUnavailable,
		&health,
	)

	assert.Equal(t, HealthStatusUnhealthy, health.Status)
	assert.Equal(t, HealthStatusUnhealthy, health.Database)
	assert.Equal(t, HealthStatusHealthy, health.Cache)
	assert.Contains(t, health.Error, "database check failed")
}

func Test_CheckHealth_WhenCacheIsDown_ReturnsServiceUnavailable(t *testing.T) {
	env := createHealthcheckRouterForTest(t)
	env.db.ExpectPing()
	env.cache.SetError("LOADING server is loading")

	var health HealthcheckResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		env.router,
		"/api/v1/system/health",
		"",
		http.StatusServiceUnavailable,
		&health,
	)

	assert.Equal(t, HealthStatusHealthy, health.Database)
	assert.Equal(t, HealthStatusUnhealthy, health.Cache)
}

func Test_Metrics_ExposesPrometheusFormat(t *testing.T) {
	env := createHealthcheckRouterForTest(t)

	response := test_utils.MakeGetRequest(t, env.router, "/api/v1/system/metrics", "", http.StatusOK)

	assert.Contains(t, string(response.Body), "go_goroutines")
}
