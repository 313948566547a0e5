package mirror

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"share-ledger-api/config"
)

// Result is what a successful mirror call reports back. Bytes is the remote
// provider's own measurement and may differ from the local size.
type Result struct {
	URL   string
	Bytes int64
}

// Uploader pushes a locally stored file to the remote asset host.
type Uploader interface {
	Upload(ctx context.Context, localPath, folder, resourceType string) (Result, error)
}

type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
	log    *zap.Logger
}

func NewCloudinary(logger *zap.Logger, cfg config.Mirror) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}

	logger.Info("cloudinary mirror configured", zap.String("cloud", cfg.CloudName))

	return &Cloudinary{cld: cld, folder: cfg.Folder, log: logger}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, localPath, folder, resourceType string) (Result, error) {
	dest := c.folder
	if folder != "" {
		dest = c.folder + "/" + folder
	}

	resp, err := c.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		Folder:       dest,
		ResourceType: resourceType,
	})
	if err != nil {
		return Result{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return Result{}, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}

	return Result{URL: resp.SecureURL, Bytes: int64(resp.Bytes)}, nil
}
