package services

import (
	"context"

	"share-ledger-api/internal/application/ports"
	"share-ledger-api/internal/domain/audit"
	"share-ledger-api/internal/domain/share"
)

const (
	defaultAdminLimit = 50
	maxAdminLimit     = 200
)

// AdminService serves the operator views over the activity log and the
// sharing ledger.
type AdminService struct {
	auditLog        audit.Repository
	shareRepository share.Repository
}

func NewAdminService(
	auditLog audit.Repository,
	shareRepository share.Repository,
) ports.AdminService {
	return &AdminService{
		auditLog:        auditLog,
		shareRepository: shareRepository,
	}
}

func (as *AdminService) RecentActivity(ctx context.Context, limit int) (audit.Entries, error) {
	return as.auditLog.FetchRecent(ctx, clampLimit(limit))
}

func (as *AdminService) RecentShares(ctx context.Context, limit int) (share.Records, error) {
	return as.shareRepository.FetchRecentShares(ctx, clampLimit(limit))
}

func clampLimit(limit int) int {
	if limit < 1 {
		return defaultAdminLimit
	}
	if limit > maxAdminLimit {
		return maxAdminLimit
	}
	return limit
}
