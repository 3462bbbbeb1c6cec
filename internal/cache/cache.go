package cache

import (
	"crypto/tls"
	"sync"
	"time"

	"taskboard/internal/config"

	"github.com/valkey-io/valkey-go"
)

const clientName = "taskboard-backend"

var (
	once         sync.Once
	valkeyClient valkey.Client
)

// GetCache lazily connects to Valkey. It panics when the client cannot be
// created; startup calls it before serving traffic.
func GetCache() valkey.Client {
	once.Do(func() {
		client, err := valkey.NewClient(clientOptions(config.GetEnv()))
		if err != nil {
			panic(err)
		}

		valkeyClient = client
	})

	return valkeyClient
}

// Close releases the connection pool if it was ever opened.
func Close() {
	if valkeyClient != nil {
		valkeyClient.Close()
	}
}

func clientOptions(env config.EnvVariables) valkey.ClientOption {
	options := valkey.ClientOption{
		InitAddress:      []string{env.ValkeyHost + ":" + env.ValkeyPort},
		Username:         env.ValkeyUsername,
		Password:         env.ValkeyPassword,
		SelectDB:         env.ValkeyDb,
		ClientName:       clientName,
		ConnWriteTimeout: 5 * time.Second,
	}

	if env.ValkeyIsSsl {
		options.TLSConfig = &tls.Config{
			ServerName: env.ValkeyHost,
			MinVersion: tls.VersionTLS12,
		}
	}

	return options
}
