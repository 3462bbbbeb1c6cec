package audit_logs

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GetAuditLogsRequest is bound from the query string. Dates use RFC3339.
type GetAuditLogsRequest struct {
	Limit      int        `form:"limit"      json:"limit"`
	Offset     int        `form:"offset"     json:"offset"`
	BeforeDate *time.Time `form:"beforeDate" json:"beforeDate"`
	AfterDate  *time.Time `form:"afterDate"  json:"afterDate"`
	Search     string     `form:"search"     json:"search"`
}

func (r *GetAuditLogsRequest) Validate() error {
	if r.BeforeDate != nil && r.AfterDate != nil && !r.AfterDate.Before(*r.BeforeDate) {
		return errors.New("afterDate must be earlier than beforeDate")
	}

	if len(r.Search) > maxSearchLength {
		return errors.New("search is too long")
	}

	return nil
}

type GetAuditLogsResponse struct {
	AuditLogs []*AuditLogDTO `json:"auditLogs"`
	Total     int64          `json:"total"`
	Limit     int            `json:"limit"`
	Offset    int            `json:"offset"`
	HasMore   bool           `json:"hasMore"`
}

// AuditLogDTO carries the actor and project names resolved at read time.
type AuditLogDTO struct {
	ID          uuid.UUID  `json:"id"          gorm:"column:id"`
	UserID      *uuid.UUID `json:"userId"      gorm:"column:user_id"`
	ProjectID   *uuid.UUID `json:"projectId"   gorm:"column:project_id"`
	Message     string     `json:"message"     gorm:"column:message"`
	CreatedAt   time.Time  `json:"createdAt"   gorm:"column:created_at"`
	Username    *string    `json:"username"    gorm:"column:username"`
	ProjectName *string    `json:"projectName" gorm:"column:project_name"`
}

type auditLogFilter struct {
	UserID     *uuid.UUID
	ProjectID  *uuid.UUID
	BeforeDate *time.Time
	AfterDate  *time.Time
	Search     string
}

func newAuditLogFilter(request *GetAuditLogsRequest) auditLogFilter {
	return auditLogFilter{
		BeforeDate: request.BeforeDate,
		AfterDate:  request.AfterDate,
		Search:     strings.TrimSpace(request.Search),
	}
}
