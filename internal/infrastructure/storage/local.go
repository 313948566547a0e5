package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"share-ledger-api/internal/domain/user"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Local is the durable on-disk content store. Files land in a per-owner
// subtree under the configured root, named by a random hex id plus the
// original extension. The submitted filename never becomes the on-disk name.
type Local struct {
	root string
	log  *zap.Logger
}

func NewLocal(root string, logger *zap.Logger) (*Local, error) {
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}

	return &Local{root: root, log: logger}, nil
}

// Put writes data to a collision-free path under the owner's directory and
// returns the full path.
func (l *Local) Put(ownerID user.ID, suffixHint string, data []byte) (string, error) {
	ownerDir := filepath.Join(l.root, fmt.Sprintf("%d", ownerID))
	if err := os.MkdirAll(ownerDir, dirPerm); err != nil {
		return "", fmt.Errorf("create owner dir: %w", err)
	}

	name := strings.ReplaceAll(uuid.NewString(), "-", "") + normalizeSuffix(suffixHint)
	dest := filepath.Join(ownerDir, name)

	if err := os.WriteFile(dest, data, filePerm); err != nil {
		return "", fmt.Errorf("write %s: %w", dest, err)
	}

	return dest, nil
}

// DeleteBestEffort removes a stored file. Failures are logged and swallowed:
// a failed cleanup must never surface as an API error.
func (l *Local) DeleteBestEffort(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		l.log.Warn("best-effort delete failed", zap.String("path", path), zap.Error(err))
	}
}

func normalizeSuffix(hint string) string {
	ext := strings.ToLower(filepath.Ext(hint))
	if ext == "" || ext == "." {
		return ""
	}
	// drop anything that is not a plain extension character
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
