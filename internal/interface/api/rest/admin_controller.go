package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"share-ledger-api/internal/application/ports"
	"share-ledger-api/internal/infrastructure/jwt"
	"share-ledger-api/internal/interface/api/rest/dto/admin"
	"share-ledger-api/internal/interface/api/rest/middleware"
)

type AdminController struct {
	adminService ports.AdminService
	logger       *zap.Logger
}

func NewAdminController(
	r *gin.Engine,
	adminService ports.AdminService,
	logger *zap.Logger,
	jwtService *jwt.Service,
	revoked ports.RevocationStore,
) *AdminController {
	ac := &AdminController{
		adminService: adminService,
		logger:       logger,
	}

	authMW := middleware.AuthMiddleware(jwtService, revoked, logger)

	r.GET(RouteAdminActivity, authMW, middleware.RequireAdmin(), ac.GetActivityHandler)
	r.GET(RouteAdminShares, authMW, middleware.RequireAdmin(), ac.GetSharesHandler)

	return ac
}

func (ac *AdminController) GetActivityHandler(c *gin.Context) {
	entries, err := ac.adminService.RecentActivity(c.Request.Context(), limitQuery(c))
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get activity log"},
		)
		ac.logger.Error("RecentActivity() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, admin.ActivityData{
		Data: admin.ToActivityEntries(entries),
	})
}

func (ac *AdminController) GetSharesHandler(c *gin.Context) {
	shares, err := ac.adminService.RecentShares(c.Request.Context(), limitQuery(c))
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get shares"},
		)
		ac.logger.Error("RecentShares() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, admin.ShareData{
		Data: admin.ToShareEntries(shares),
	})
}

// limitQuery reads ?limit=; the service clamps it into range.
func limitQuery(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}

	return limit
}
