package system_healthcheck

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	cache_utils "taskboard/internal/util/cache"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"gorm.io/gorm"
)

const (
	checkTimeout = 5 * time.Second
	// maxDiskUsedPercent marks the host unhealthy before Postgres runs out of space.
	maxDiskUsedPercent = 95.0
)

type DbProvider func() *gorm.DB

type HealthcheckService struct {
	dbProvider    DbProvider
	cacheProvider cache_utils.ClientProvider
	diskPath      string
	logger        *slog.Logger
}

func NewHealthcheckService(
	dbProvider DbProvider,
	cacheProvider cache_utils.ClientProvider,
	diskPath string,
	logger *slog.Logger,
) *HealthcheckService {
	return &HealthcheckService{
		dbProvider:    dbProvider,
		cacheProvider: cacheProvider,
		diskPath:      diskPath,
		logger:        logger,
	}
}

// Check probes the database, the cache and the host. The returned error is
// the first failed check; the response is filled in either way.
func (s *HealthcheckService) Check(ctx context.Context) (*HealthcheckResponseDTO, error) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	response := &HealthcheckResponseDTO{
		Status:   HealthStatusHealthy,
		Database: HealthStatusHealthy,
		Cache:    HealthStatusHealthy,
	}

	var firstErr error
	fail := func(err error) {
		response.Status = HealthStatusUnhealthy
		if firstErr == nil {
			firstErr = err
			response.Error = err.Error()
		}
		s.logger.Warn("Healthcheck failed", "error", err)
	}

	if err := s.checkDatabase(ctx); err != nil {
		response.Database = HealthStatusUnhealthy
		fail(err)
	}

	if err := s.checkCache(); err != nil {
		response.Cache = HealthStatusUnhealthy
		fail(err)
	}

	diskUsage, err := disk.UsageWithContext(ctx, s.diskPath)
	if err != nil {
		fail(fmt.Errorf("disk check failed: %w", err))
	} else {
		response.Disk = &UsageDTO{
			TotalBytes:  diskUsage.Total,
			UsedBytes:   diskUsage.Used,
			UsedPercent: diskUsage.UsedPercent,
		}

		if diskUsage.UsedPercent > maxDiskUsedPercent {
			fail(fmt.Errorf("disk check failed: %.1f%% used", diskUsage.UsedPercent))
		}
	}

	memory, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		s.logger.Warn("Could not read memory usage", "error", err)
	} else {
		response.Memory = &UsageDTO{
			TotalBytes:  memory.Total,
			UsedBytes:   memory.Used,
			UsedPercent: memory.UsedPercent,
		}
	}

	return response, firstErr
}

func (s *HealthcheckService) checkDatabase(ctx context.Context) error {
	sqlDb, err := s.dbProvider().DB()
	if err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	if err := sqlDb.PingContext(ctx); err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	return nil
}

func (s *HealthcheckService) checkCache() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cache check failed: %v", r)
		}
	}()

	if err := cache_utils.TestCacheConnection(s.cacheProvider()); err != nil {
		return fmt.Errorf("cache check failed: %w", err)
	}

	return nil
}
