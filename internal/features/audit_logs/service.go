package audit_logs

import (
	"log/slog"

	users_models "taskboard/internal/features/users/models"
	errors_utils "taskboard/internal/util/errors"
	"taskboard/internal/util/metrics"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
	maxSearchLength = 200

	msgGlobalLogsNotAllowed = "only administrators can view global audit logs"
	msgUserLogsNotAllowed   = "insufficient permissions to view user audit logs"
)

// AuditLogWriter is implemented by AuditLogService. Features depend on it so
// they can be tested without a database.
type AuditLogWriter interface {
	WriteAuditLog(message string, userID *uuid.UUID, projectID *uuid.UUID)
}

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
	logger             *slog.Logger
}

// WriteAuditLog never fails the calling operation; storage errors are logged.
func (s *AuditLogService) WriteAuditLog(message string, userID *uuid.UUID, projectID *uuid.UUID) {
	auditLog := &AuditLog{
		UserID:    userID,
		ProjectID: projectID,
		Message:   message,
	}

	if err := s.auditLogRepository.Create(auditLog); err != nil {
		s.logger.Error("failed to write audit log", "message", message, "error", err)
	}
}

func (s *AuditLogService) GetGlobalAuditLogs(
	user *users_models.User,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	if !user.CanManageUsers() {
		return nil, forbidden(msgGlobalLogsNotAllowed)
	}

	return s.page(newAuditLogFilter(request), request)
}

// GetUserAuditLogs lets users read their own trail. Administrators read anyone's.
func (s *AuditLogService) GetUserAuditLogs(
	targetUserID uuid.UUID,
	user *users_models.User,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	if !user.CanManageUsers() && user.ID != targetUserID {
		return nil, forbidden(msgUserLogsNotAllowed)
	}

	filter := newAuditLogFilter(request)
	filter.UserID = &targetUserID

	return s.page(filter, request)
}

// GetProjectAuditLogs does no access check; the projects feature gates it on
// project visibility.
func (s *AuditLogService) GetProjectAuditLogs(
	projectID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	filter := newAuditLogFilter(request)
	filter.ProjectID = &projectID

	return s.page(filter, request)
}

func (s *AuditLogService) page(filter auditLogFilter, request *GetAuditLogsRequest) (*GetAuditLogsResponse, error) {
	limit := request.Limit
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset := max(request.Offset, 0)

	auditLogs, err := s.auditLogRepository.Find(filter, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.auditLogRepository.Count(filter)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{
		AuditLogs: auditLogs,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
		HasMore:   int64(offset+len(auditLogs)) < total,
	}, nil
}

func forbidden(message string) error {
	metrics.ForbiddenOperations.WithLabelValues("audit_log").Inc()
	return errors_utils.NewForbiddenOperation(message)
}
