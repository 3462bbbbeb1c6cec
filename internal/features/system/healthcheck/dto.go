package system_healthcheck

type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

type UsageDTO struct {
	TotalBytes  uint64  `json:"totalBytes"`
	UsedBytes   uint64  `json:"usedBytes"`
	UsedPercent float64 `json:"usedPercent"`
}

type HealthcheckResponseDTO struct {
	Status   HealthStatus `json:"status"`
	Database HealthStatus `json:"database"`
	Cache    HealthStatus `json:"cache"`
	Disk     *UsageDTO    `json:"disk,omitempty"`
	Memory   *UsageDTO    `json:"memory,omitempty"`
	Error    string       `json:"error,omitempty"`
}
