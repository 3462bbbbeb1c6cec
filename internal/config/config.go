package config

import (
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	env_utils "taskboard/internal/util/env"
	"taskboard/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

type EnvVariables struct {
	IsTesting       bool
	DatabaseDsn     string            `env:"DATABASE_DSN"           required:"true"`
	EnvMode         env_utils.EnvMode `env:"ENV_MODE"               required:"true"`
	BackendRootPath string            `env:"BACKEND_ROOT_PATH"`
	ServerPort      string            `env:"SERVER_PORT"                            env-default:"4005"`
	// cache
	ValkeyHost     string `env:"VALKEY_HOST"     required:"true"`
	ValkeyPort     string `env:"VALKEY_PORT"     required:"true"`
	ValkeyUsername string `env:"VALKEY_USERNAME" required:"false"`
	ValkeyPassword string `env:"VALKEY_PASSWORD" required:"false"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"   required:"true"`
	ValkeyDb       int    `env:"VALKEY_DB"                        env-default:"0"`
	// tokens
	JwtIssuer            string        `env:"JWT_ISSUER"             env-default:"taskboard"`
	AccessTokenLifetime  time.Duration `env:"ACCESS_TOKEN_LIFETIME"  env-default:"15m"`
	RefreshTokenLifetime time.Duration `env:"REFRESH_TOKEN_LIFETIME" env-default:"168h"`
}

var (
	env  EnvVariables
	once sync.Once

	isShouldShutdown atomic.Bool
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

// StartListeningForShutdownSignal flips the shutdown flag on SIGINT/SIGTERM so
// background workers can stop between iterations.
func StartListeningForShutdownSignal() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signals
		log.Info("Shutdown signal received, notifying background workers")
		isShouldShutdown.Store(true)
	}()
}

func IsShouldShutdown() bool {
	return isShouldShutdown.Load()
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	var loaded bool
	for _, path := range envPaths {
		log.Info("Trying to load .env", "path", path)
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			loaded = true
			break
		}
	}

	if !loaded {
		log.Warn("No .env file found, reading configuration from process environment only")
	}

	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	if env.BackendRootPath == "" {
		env.BackendRootPath = backendRoot
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	if env.EnvMode != env_utils.EnvModeDevelopment && env.EnvMode != env_utils.EnvModeProduction {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}
	log.Info("ENV_MODE loaded", "mode", env.EnvMode)

	if env.ValkeyHost == "" {
		log.Error("VALKEY_HOST is empty")
		os.Exit(1)
	}
	if env.ValkeyPort == "" {
		log.Error("VALKEY_PORT is empty")
		os.Exit(1)
	}

	if env.AccessTokenLifetime <= 0 || env.RefreshTokenLifetime <= 0 {
		log.Error("Token lifetimes must be positive",
			"accessTokenLifetime", env.AccessTokenLifetime,
			"refreshTokenLifetime", env.RefreshTokenLifetime)
		os.Exit(1)
	}

	if env.RefreshTokenLifetime <= env.AccessTokenLifetime {
		log.Warn("REFRESH_TOKEN_LIFETIME is not longer than ACCESS_TOKEN_LIFETIME")
	}

	log.Info("Environment variables loaded successfully!")
}
