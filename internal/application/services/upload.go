package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"share-ledger-api/internal/application/ports"
	"share-ledger-api/internal/domain/audit"
	"share-ledger-api/internal/domain/file"
	"share-ledger-api/internal/domain/share"
	"share-ledger-api/internal/domain/user"
	"share-ledger-api/internal/infrastructure/mq"
)

const maxBaseNameLen = 100

var windowsReserved = map[string]struct{}{
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {}, "com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {}, "lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

// UploadService drives the upload pipeline: buffer intake, moderation gate,
// local commit, best-effort remote mirror, metadata record, audit entry.
// Steps run strictly in that order within one request.
type UploadService struct {
	store           ports.ContentStore
	mirror          ports.Mirror     // nil means local-only storage
	moderation      ports.Moderation // nil means moderation disabled
	fileRepository  file.Repository
	shareRepository share.Repository
	userRepository  user.Repository
	auditLog        audit.Repository
	mq              ports.RabbitMQ
	maxUploadBytes  int64
	mCounter        *prometheus.CounterVec
	logger          *zap.Logger
}

func NewUploadService(
	store ports.ContentStore,
	mirror ports.Mirror,
	moderation ports.Moderation,
	fileRepository file.Repository,
	shareRepository share.Repository,
	userRepository user.Repository,
	auditLog audit.Repository,
	mqClient ports.RabbitMQ,
	maxUploadBytes int64,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.UploadService {
	return &UploadService{
		store:           store,
		mirror:          mirror,
		moderation:      moderation,
		fileRepository:  fileRepository,
		shareRepository: shareRepository,
		userRepository:  userRepository,
		auditLog:        auditLog,
		mq:              mqClient,
		maxUploadBytes:  maxUploadBytes,
		mCounter:        mCounter,
		logger:          logger,
	}
}

func (us *UploadService) Upload(ctx context.Context, ownerUUID user.UUID, in ports.UploadInput) (*file.Record, error) {
	ownerID, err := us.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	// Intake happens fully in memory, before any filesystem or network I/O,
	// so a too-large or aborted upload leaves nothing behind.
	if in.DeclaredSize > us.maxUploadBytes {
		return nil, ErrPayloadTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(in.Body, us.maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload body: %w", err)
	}
	if int64(len(data)) > us.maxUploadBytes {
		return nil, ErrPayloadTooLarge
	}

	// The local commit is mandatory; its failure is fatal to the upload.
	localPath, err := us.store.Put(ownerID, in.FileName, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
	}

	if blocked, err := us.moderate(ctx, ownerID, in, localPath); err != nil {
		return nil, err
	} else if blocked {
		return nil, ErrContentRejected
	}

	sizeBytes := int64(len(data))
	var loc file.Location = file.Local{Path: localPath}
	if us.mirror != nil {
		res, err := us.mirror.Upload(ctx, localPath, fmt.Sprintf("%d", ownerID), resourceType(in.ContentType))
		if err != nil {
			// Any mirror failure degrades to local-only, never to the caller.
			us.logger.Warn("mirror upload failed, keeping local copy only",
				zap.String("path", localPath), zap.Error(err))
			us.audit(ctx, ownerID, audit.ActionMirrorError, "mirror error: "+err.Error())
			us.mCounter.WithLabelValues("mirror_errors_total").Inc()
		} else {
			loc = file.Mirrored{Path: localPath, URL: res.URL}
			// the provider's measurement wins when mirroring succeeds
			sizeBytes = res.Bytes
		}
	}

	rec, err := us.fileRepository.CreateFile(ctx, &file.Record{
		OwnerID:     ownerID,
		FileName:    sanitizeFileName(in.FileName),
		ContentType: in.ContentType,
		SizeBytes:   sizeBytes,
		Location:    loc,
	})
	if err != nil {
		// The committed local file stays behind as a known orphan; a
		// reconciliation sweep owns it, not a rollback here.
		us.logger.Error("metadata commit failed, orphan local file",
			zap.String("path", localPath), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	us.audit(ctx, ownerID, audit.ActionUpload, "uploaded file "+rec.FileName)
	us.mCounter.WithLabelValues("files_uploaded_total").Inc()
	us.publish(ownerUUID, rec.UUID, mq.ActionUpload, mq.Notification{})

	return rec, nil
}

// moderate runs the moderation gate for screened content types. A verdict
// that cannot be obtained downgrades to "not blocked" with an audit entry,
// so silent permissiveness stays observable.
func (us *UploadService) moderate(ctx context.Context, ownerID user.ID, in ports.UploadInput, localPath string) (bool, error) {
	if us.moderation == nil || !isScreenedContentType(in.ContentType) {
		return false, nil
	}

	verdict, err := us.moderation.Classify(ctx, localPath)
	if err != nil {
		us.logger.Warn("moderation verdict unavailable, proceeding",
			zap.String("path", localPath), zap.Error(err))
		us.audit(ctx, ownerID, audit.ActionNSFWCheckError, "detector error: "+err.Error())
		return false, nil
	}
	if !verdict.Blocked {
		return false, nil
	}

	us.store.DeleteBestEffort(localPath)
	us.audit(ctx, ownerID, audit.ActionUploadBlocked, "blocked upload: "+in.FileName)
	us.mCounter.WithLabelValues("uploads_blocked_total").Inc()
	us.logger.Info("upload blocked by moderation",
		zap.String("detector", verdict.Detector),
		zap.String("file_name", in.FileName),
	)

	return true, nil
}

func (us *UploadService) Download(ctx context.Context, actorUUID user.UUID, actorRole string, fileID uuid.UUID) (*ports.DownloadInfo, error) {
	rec, err := us.fileRepository.FetchFileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrFileNotFound
	}

	actorID, err := us.userRepository.FetchInternalID(ctx, actorUUID)
	if err != nil {
		return nil, err
	}

	allowed := rec.OwnerID == actorID || actorRole == user.RoleAdmin
	if !allowed {
		shared, err := us.shareRepository.HasShareFor(ctx, fileID, actorID)
		if err != nil {
			return nil, err
		}
		allowed = shared
	}
	if !allowed {
		return nil, ErrForbidden
	}

	return &ports.DownloadInfo{
		FileName:    rec.FileName,
		ContentType: rec.ContentType,
		SizeBytes:   rec.SizeBytes,
		Location:    rec.Location,
	}, nil
}

func (us *UploadService) FindOwnerFiles(ctx context.Context, ownerUUID user.UUID, page int) (file.Records, error) {
	ownerID, err := us.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	return us.fileRepository.FetchOwnerFiles(ctx, ownerID, page)
}

func (us *UploadService) audit(ctx context.Context, userID user.ID, action, details string) {
	if err := us.auditLog.Insert(ctx, userID, action, details); err != nil {
		us.logger.Warn("audit insert failed", zap.String("action", action), zap.Error(err))
	}
}

func (us *UploadService) publish(actorUUID user.UUID, fileID uuid.UUID, action string, n mq.Notification) {
	if us.mq == nil {
		return
	}
	us.mq.GetInputChan() <- mq.Event{
		Id:           uuid.New(),
		TS:           time.Now(),
		Action:       action,
		UserID:       actorUUID.String(),
		FileID:       fileID.String(),
		Notification: n,
	}
}

// Only images and videos enter the moderation gate; other types are not
// screened.
func isScreenedContentType(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "video/")
}

func resourceType(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.HasPrefix(ct, "image/"):
		return "image"
	case strings.HasPrefix(ct, "video/"):
		return "video"
	default:
		return "auto"
	}
}

// sanitizeFileName normalizes the submitted name for metadata. The on-disk
// name is generated separately and never derived from user input.
func sanitizeFileName(original string) string {
	if original == "" {
		return "file"
	}

	s := strings.TrimSpace(original)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)

	if s == "." || s == ".." || s == "" {
		return "file"
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)

	ext := strings.ToLower(path.Ext(s))
	base := strings.TrimSuffix(s, ext)

	var b strings.Builder
	b.Grow(len(base))
	prevDash := false
	for _, r := range base {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevDash = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			prevDash = false
		case r == '-' || r == '_' || r == '.' || unicode.IsSpace(r):
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		default:
		}
	}
	base = strings.Trim(b.String(), "-")

	if base == "" {
		base = "file"
	}
	if _, bad := windowsReserved[base]; bad {
		base = "_" + base
	}
	if len(base) > maxBaseNameLen {
		base = base[:maxBaseNameLen]
	}

	return base + ext
}
