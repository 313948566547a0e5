package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"share-ledger-api/internal/application/ports"
	"share-ledger-api/internal/domain/audit"
	"share-ledger-api/internal/domain/file"
	domain "share-ledger-api/internal/domain/share"
	"share-ledger-api/internal/domain/user"
	"share-ledger-api/internal/infrastructure/mq"
)

// ShareService validates share requests against ownership, records the
// share event and keeps the per-(owner, recipient) usage ledger consistent.
type ShareService struct {
	shareRepository domain.Repository
	fileRepository  file.Repository
	userRepository  user.Repository
	auditLog        audit.Repository
	mq              ports.RabbitMQ
	mCounter        *prometheus.CounterVec
	logger          *zap.Logger
}

func NewShareService(
	shareRepository domain.Repository,
	fileRepository file.Repository,
	userRepository user.Repository,
	auditLog audit.Repository,
	mqClient ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.ShareService {
	return &ShareService{
		shareRepository: shareRepository,
		fileRepository:  fileRepository,
		userRepository:  userRepository,
		auditLog:        auditLog,
		mq:              mqClient,
		mCounter:        mCounter,
		logger:          logger,
	}
}

func (ss *ShareService) Share(ctx context.Context, actorUUID user.UUID, fileID uuid.UUID, recipientEmail, message string) (*domain.Record, error) {
	actor, err := ss.userRepository.FetchUserByID(ctx, actorUUID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrForbidden
	}
	actorID, err := ss.userRepository.FetchInternalID(ctx, actorUUID)
	if err != nil {
		return nil, err
	}

	recipient, err := ss.userRepository.FetchUserByEmail(ctx, recipientEmail)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, ErrRecipientNotFound
	}
	recipientID, err := ss.userRepository.FetchInternalID(ctx, recipient.UUID)
	if err != nil {
		return nil, err
	}

	rec, err := ss.fileRepository.FetchFileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrFileNotFound
	}
	// Ownership is the sole authorization rule for sharing; admins get no
	// bypass here.
	if rec.OwnerID != actorID {
		return nil, ErrForbidden
	}

	// BytesTransferred snapshots the file's current size; the counter
	// update is atomic inside the repository.
	sr, err := ss.shareRepository.CreateShare(ctx, &domain.Record{
		FileID:           fileID,
		OwnerID:          actorID,
		RecipientID:      recipientID,
		BytesTransferred: rec.SizeBytes,
		Message:          message,
	})
	if err != nil {
		return nil, err
	}

	ss.audit(ctx, actorID, audit.ActionShare,
		fmt.Sprintf("shared file %s to %s", rec.FileName, recipient.Email))
	ss.mCounter.WithLabelValues("files_shared_total").Inc()

	if ss.mq != nil {
		ss.mq.GetInputChan() <- mq.Event{
			Id:     uuid.New(),
			TS:     time.Now(),
			Action: mq.ActionShare,
			UserID: actorUUID.String(),
			FileID: fileID.String(),
			Notification: mq.Notification{
				To:      recipient.Email,
				Subject: "File shared by " + actor.Email,
				Body:    fmt.Sprintf("%s shared '%s' with you", actor.Username, rec.FileName),
			},
		}
	}

	return sr, nil
}

func (ss *ShareService) Usage(ctx context.Context, actorUUID user.UUID, actorRole string, ownerUUID, recipientUUID user.UUID) (*domain.UsageCounter, error) {
	// only the owner or an admin may read a pair's usage
	if actorUUID != ownerUUID && actorRole != user.RoleAdmin {
		return nil, ErrForbidden
	}

	ownerID, err := ss.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}
	recipientID, err := ss.userRepository.FetchInternalID(ctx, recipientUUID)
	if err != nil {
		return nil, err
	}

	uc, err := ss.shareRepository.FetchUsage(ctx, ownerID, recipientID)
	if err != nil {
		return nil, err
	}
	if uc == nil {
		return nil, ErrUsageNotFound
	}

	return uc, nil
}

func (ss *ShareService) audit(ctx context.Context, userID user.ID, action, details string) {
	if err := ss.auditLog.Insert(ctx, userID, action, details); err != nil {
		ss.logger.Warn("audit insert failed", zap.String("action", action), zap.Error(err))
	}
}
