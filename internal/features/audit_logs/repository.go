package audit_logs

import (
	"strings"

	"taskboard/internal/storage"

	"gorm.io/gorm"
)

type AuditLogRepository struct{}

// searched text is matched literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const auditLogColumns = "al.id, al.user_id, al.project_id, al.message, al.created_at, " +
	"u.username AS username, p.name AS project_name"

func (r *AuditLogRepository) Create(auditLog *AuditLog) error {
	return storage.GetDb().Create(auditLog).Error
}

// Find returns the newest matching rows first.
func (r *AuditLogRepository) Find(filter auditLogFilter, limit, offset int) ([]*AuditLogDTO, error) {
	auditLogs := make([]*AuditLogDTO, 0)

	err := r.filtered(filter).
		Select(auditLogColumns).
		Joins("LEFT JOIN users u ON al.user_id = u.id").
		Joins("LEFT JOIN projects p ON al.project_id = p.id").
		Order("al.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&auditLogs).Error

	return auditLogs, err
}

func (r *AuditLogRepository) Count(filter auditLogFilter) (int64, error) {
	var count int64
	err := r.filtered(filter).Count(&count).Error

	return count, err
}

func (r *AuditLogRepository) filtered(filter auditLogFilter) *gorm.DB {
	query := storage.GetDb().Table("audit_logs AS al")

	if filter.UserID != nil {
		query = query.Where("al.user_id = ?", *filter.UserID)
	}
	if filter.ProjectID != nil {
		query = query.Where("al.project_id = ?", *filter.ProjectID)
	}
	if filter.BeforeDate != nil {
		query = query.Where("al.created_at < ?", *filter.BeforeDate)
	}
	if filter.AfterDate != nil {
		query = query.Where("al.created_at > ?", *filter.AfterDate)
	}
	if filter.Search != "" {
		query = query.Where(`al.message ILIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(filter.Search)+"%")
	}

	return query
}
