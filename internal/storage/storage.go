package storage

import (
	"sync"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
)

const (
	maxOpenConnections = 50
	maxIdleConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

func GetDb() *gorm.DB {
	dbOnce.Do(func() {
		log := logger.GetLogger()

		gormDb, err := gorm.Open(postgres.Open(config.GetEnv().DatabaseDsn), &gorm.Config{
			Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
		})
		if err != nil {
			log.Error("Failed to connect to database", "error", err)
			panic(err)
		}

		sqlDb, err := gormDb.DB()
		if err != nil {
			log.Error("Failed to get database handle", "error", err)
			panic(err)
		}

		sqlDb.SetMaxOpenConns(maxOpenConnections)
		sqlDb.SetMaxIdleConns(maxIdleConnections)
		sqlDb.SetConnMaxLifetime(connMaxLifetime)

		db = gormDb
	})

	return db
}

// SetDbForTests swaps the process database, used with sqlmock backed connections.
func SetDbForTests(testDb *gorm.DB) {
	dbOnce.Do(func() {})
	db = testDb
}
