package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"

	"share-ledger-api/internal/domain/audit"
	"share-ledger-api/internal/domain/file"
	"share-ledger-api/internal/domain/share"
	"share-ledger-api/internal/domain/user"
	"share-ledger-api/internal/infrastructure/mirror"
	"share-ledger-api/internal/infrastructure/moderation"
	"share-ledger-api/internal/infrastructure/mq"
)

// newTestCounter returns an unregistered counter so parallel tests never
// fight over the default prometheus registry.
func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "test", Name: "general_counters"},
		[]string{"result"})
}

type FakeUserRepo struct {
	FetchUserByIDFunc    func(ctx context.Context, uuid user.UUID) (*user.User, error)
	FetchUserByEmailFunc func(ctx context.Context, email string) (*user.User, error)
	FetchUsersFunc       func(ctx context.Context, page int) (user.Users, error)
	CreateUserFunc       func(ctx context.Context, req user.User) (*user.User, error)
	FetchInternalIDFunc  func(ctx context.Context, uuid user.UUID) (user.ID, error)
}

func (f *FakeUserRepo) FetchUserByID(ctx context.Context, uuid user.UUID) (*user.User, error) {
	if f.FetchUserByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUserByIDFunc(ctx, uuid)
}
func (f *FakeUserRepo) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.FetchUserByEmailFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUserByEmailFunc(ctx, email)
}
func (f *FakeUserRepo) FetchUsers(ctx context.Context, page int) (user.Users, error) {
	if f.FetchUsersFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUsersFunc(ctx, page)
}
func (f *FakeUserRepo) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	if f.CreateUserFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateUserFunc(ctx, req)
}
func (f *FakeUserRepo) FetchInternalID(ctx context.Context, uuid user.UUID) (user.ID, error) {
	if f.FetchInternalIDFunc == nil {
		return 0, errors.New("not used")
	}
	return f.FetchInternalIDFunc(ctx, uuid)
}

type FakeFileRepo struct {
	FetchFileByIDFunc   func(ctx context.Context, fileUUID uuid.UUID) (*file.Record, error)
	FetchOwnerFilesFunc func(ctx context.Context, ownerID user.ID, page int) (file.Records, error)
	CreateFileFunc      func(ctx context.Context, req *file.Record) (*file.Record, error)
	SoftDeleteFileFunc  func(ctx context.Context, fileUUID uuid.UUID) error
}

func (f *FakeFileRepo) FetchFileByID(ctx context.Context, fileUUID uuid.UUID) (*file.Record, error) {
	if f.FetchFileByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchFileByIDFunc(ctx, fileUUID)
}
func (f *FakeFileRepo) FetchOwnerFiles(ctx context.Context, ownerID user.ID, page int) (file.Records, error) {
	if f.FetchOwnerFilesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchOwnerFilesFunc(ctx, ownerID, page)
}
func (f *FakeFileRepo) CreateFile(ctx context.Context, req *file.Record) (*file.Record, error) {
	if f.CreateFileFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateFileFunc(ctx, req)
}
func (f *FakeFileRepo) SoftDeleteFile(ctx context.Context, fileUUID uuid.UUID) error {
	if f.SoftDeleteFileFunc == nil {
		return errors.New("not used")
	}
	return f.SoftDeleteFileFunc(ctx, fileUUID)
}

type FakeShareRepo struct {
	CreateShareFunc       func(ctx context.Context, req *share.Record) (*share.Record, error)
	FetchUsageFunc        func(ctx context.Context, ownerID, recipientID user.ID) (*share.UsageCounter, error)
	HasShareForFunc       func(ctx context.Context, fileUUID uuid.UUID, recipientID user.ID) (bool, error)
	FetchRecentSharesFunc func(ctx context.Context, limit int) (share.Records, error)
}

func (f *FakeShareRepo) CreateShare(ctx context.Context, req *share.Record) (*share.Record, error) {
	if f.CreateShareFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateShareFunc(ctx, req)
}
func (f *FakeShareRepo) FetchUsage(ctx context.Context, ownerID, recipientID user.ID) (*share.UsageCounter, error) {
	if f.FetchUsageFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUsageFunc(ctx, ownerID, recipientID)
}
func (f *FakeShareRepo) HasShareFor(ctx context.Context, fileUUID uuid.UUID, recipientID user.ID) (bool, error) {
	if f.HasShareForFunc == nil {
		return false, errors.New("not used")
	}
	return f.HasShareForFunc(ctx, fileUUID, recipientID)
}
func (f *FakeShareRepo) FetchRecentShares(ctx context.Context, limit int) (share.Records, error) {
	if f.FetchRecentSharesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchRecentSharesFunc(ctx, limit)
}

// RecordingAuditRepo keeps inserted actions in memory for assertions.
type RecordingAuditRepo struct {
	mu      sync.Mutex
	Entries []audit.Entry
}

func (r *RecordingAuditRepo) Insert(_ context.Context, userID user.ID, action, details string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, audit.Entry{UserID: userID, Action: action, Details: details})
	return nil
}

func (r *RecordingAuditRepo) FetchRecent(_ context.Context, limit int) (audit.Entries, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(audit.Entries, 0, limit)
	for i := len(r.Entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := r.Entries[i]
		out = append(out, &e)
	}
	return out, nil
}

func (r *RecordingAuditRepo) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		actions[i] = e.Action
	}
	return actions
}

// FakeStore keeps written blobs in memory and tracks deletions.
type FakeStore struct {
	mu      sync.Mutex
	PutErr  error
	Blobs   map[string][]byte
	Deleted []string
	seq     int
}

func (f *FakeStore) Put(ownerID user.ID, suffixHint string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PutErr != nil {
		return "", f.PutErr
	}
	if f.Blobs == nil {
		f.Blobs = make(map[string][]byte)
	}
	f.seq++
	path := "/tmp/store/" + suffixHint + "-" + string(rune('a'+f.seq))
	f.Blobs[path] = append([]byte(nil), data...)
	return path, nil
}

func (f *FakeStore) DeleteBestEffort(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Blobs, path)
	f.Deleted = append(f.Deleted, path)
}

type FakeMirror struct {
	UploadFunc func(ctx context.Context, localPath, folder, resourceType string) (mirror.Result, error)
}

func (f *FakeMirror) Upload(ctx context.Context, localPath, folder, resourceType string) (mirror.Result, error) {
	if f.UploadFunc == nil {
		return mirror.Result{}, errors.New("not used")
	}
	return f.UploadFunc(ctx, localPath, folder, resourceType)
}

type FakeModeration struct {
	ClassifyFunc func(ctx context.Context, localPath string) (moderation.Verdict, error)
}

func (f *FakeModeration) Classify(ctx context.Context, localPath string) (moderation.Verdict, error) {
	if f.ClassifyFunc == nil {
		return moderation.Verdict{}, errors.New("not used")
	}
	return f.ClassifyFunc(ctx, localPath)
}

// FakeMQ satisfies the publisher port with a buffered channel nobody drains.
// The buffer is large enough that concurrent tests never block on publish.
type FakeMQ struct {
	in chan mq.Event
}

func NewFakeMQ() *FakeMQ { return &FakeMQ{in: make(chan mq.Event, 256)} }

func (f *FakeMQ) Connect(context.Context, string) error { return nil }
func (f *FakeMQ) Init() error                           { return nil }
func (f *FakeMQ) PublisherWorker(context.Context)       {}
func (f *FakeMQ) GetInputChan() chan mq.Event           { return f.in }
func (f *FakeMQ) GetConn() *amqp091.Connection          { return nil }
