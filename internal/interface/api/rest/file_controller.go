package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"share-ledger-api/internal/application/ports"
	"share-ledger-api/internal/application/services"
	"share-ledger-api/internal/domain/file"
	"share-ledger-api/internal/infrastructure/jwt"
	fileDTO "share-ledger-api/internal/interface/api/rest/dto/file"
	shareDTO "share-ledger-api/internal/interface/api/rest/dto/share"
	"share-ledger-api/internal/interface/api/rest/middleware"
	"share-ledger-api/internal/interface/api/rest/validator"
)

type FileController struct {
	uploadService ports.UploadService
	shareService  ports.ShareService
	logger        *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	uploadService ports.UploadService,
	shareService ports.ShareService,
	logger *zap.Logger,
	jwtService *jwt.Service,
	revoked ports.RevocationStore,
) *FileController {
	fc := &FileController{
		uploadService: uploadService,
		shareService:  shareService,
		logger:        logger,
	}

	authMW := middleware.AuthMiddleware(jwtService, revoked, logger)

	r.POST(RouteUpload, authMW, fc.UploadHandler)
	r.GET(RouteFiles, authMW, fc.GetFilesHandler)
	r.GET(RouteDownload, authMW, fc.DownloadHandler)
	r.POST(RouteShare, authMW, fc.ShareHandler)
	r.GET(RouteUsage, authMW, fc.UsageHandler)

	return fc
}

func (fc *FileController) UploadHandler(c *gin.Context) {
	actorUUID, _, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer f.Close()

	rec, err := fc.uploadService.Upload(c.Request.Context(), actorUUID, ports.UploadInput{
		FileName:     fh.Filename,
		ContentType:  fh.Header.Get("Content-Type"),
		Body:         f,
		DeclaredSize: fh.Size,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPayloadTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrContentRejected):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to store the file"},
			)
			fc.logger.Error("Upload() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusCreated, fileDTO.ToResponseRecord(*rec))
}

func (fc *FileController) GetFilesHandler(c *gin.Context) {
	actorUUID, _, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}

	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	files, err := fc.uploadService.FindOwnerFiles(c.Request.Context(), actorUUID, page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get files"},
		)
		fc.logger.Error("FindOwnerFiles() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, fileDTO.ResponseData{
		Data: fileDTO.ToResponseRecords(files),
	})
}

func (fc *FileController) DownloadHandler(c *gin.Context) {
	actorUUID, actorRole, okActor := currentActor(c)
	if !okActor {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}

	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	info, err := fc.uploadService.Download(c.Request.Context(), actorUUID, actorRole, fileID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to download the file"},
			)
			fc.logger.Error("Download() error", zap.Error(err))
		}
		return
	}

	// mirrored files redirect to the remote copy, local files stream from disk
	switch loc := info.Location.(type) {
	case file.Mirrored:
		c.Redirect(http.StatusFound, loc.URL)
	case file.Local:
		c.FileAttachment(loc.Path, info.FileName)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "file has no serveable location"})
		fc.logger.Error("unknown file location variant", zap.Stringer("file_uuid", fileID))
	}
}

func (fc *FileController) ShareHandler(c *gin.Context) {
	actorUUID, _, okActor := currentActor(c)
	if !okActor {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}

	var req shareDTO.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateShare(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}
	_, fileID := validator.IsUUID(req.FileID)

	sr, err := fc.shareService.Share(c.Request.Context(), actorUUID, fileID, req.RecipientEmail, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecipientNotFound), errors.Is(err, services.ErrFileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "only the owner can share a file"})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to share the file"},
			)
			fc.logger.Error("Share() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusCreated, shareDTO.ToResponse(*sr))
}

func (fc *FileController) UsageHandler(c *gin.Context) {
	actorUUID, actorRole, okActor := currentActor(c)
	if !okActor {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}

	ok, ownerUUID := validator.IsUUID(c.Param("owner_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "owner_id must be a valid UUID"},
		)
		return
	}
	ok, recipientUUID := validator.IsUUID(c.Param("recipient_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "recipient_id must be a valid UUID"},
		)
		return
	}

	uc, err := fc.shareService.Usage(c.Request.Context(), actorUUID, actorRole, ownerUUID, recipientUUID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrUsageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to get usage"},
			)
			fc.logger.Error("Usage() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, shareDTO.ToUsageResponse(ownerUUID, recipientUUID, *uc))
}
