package auditlog

import (
	"context"
	"encoding/json"
	"log"
	"math"
)

type Service interface {
	LogAction(ctx context.Context, userID *uint, clubID *uint, action string, details map[string]interface{}, ipAddress, status string) error
	GetAuditLogs(ctx context.Context, filter AuditLogFilter) (*PaginatedAuditLogs, error)
	GetAuditLogByID(ctx context.Context, id uint) (*AuditLogResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// LogAction records an audit entry. Failures are logged, never propagated,
// so auditing cannot break the request path.
func (s *service) LogAction(ctx context.Context, userID *uint, clubID *uint, action string, details map[string]interface{}, ipAddress, status string) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		log.Printf("⚠️ audit: failed to marshal details for %s: %v", action, err)
		detailsJSON = []byte("{}")
	}

	entry := &AuditLog{
		UserID:    userID,
		ClubID:    clubID,
		Action:    action,
		Details:   detailsJSON,
		IPAddress: ipAddress,
		Status:    status,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ audit: failed to record %s: %v", action, err)
	}
	return nil
}

// GetAuditLogs retrieves audit logs with filtering and pagination
func (s *service) GetAuditLogs(ctx context.Context, filter AuditLogFilter) (*PaginatedAuditLogs, error) {
	logs, total, err := s.repo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return &PaginatedAuditLogs{
		Data:       logs,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetAuditLogByID retrieves a specific audit log entry
func (s *service) GetAuditLogByID(ctx context.Context, id uint) (*AuditLogResponse, error) {
	return s.repo.GetByID(ctx, id)
}
