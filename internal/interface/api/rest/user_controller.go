package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"share-ledger-api/internal/application/ports"
	"share-ledger-api/internal/infrastructure/jwt"
	"share-ledger-api/internal/interface/api/rest/dto/user"
	"share-ledger-api/internal/interface/api/rest/middleware"
	"share-ledger-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	jwtService *jwt.Service,
	revoked ports.RevocationStore,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	authMW := middleware.AuthMiddleware(jwtService, revoked, logger)

	r.GET(RouteMe, authMW, uc.GetMeHandler)
	r.GET(RouteUsers, authMW, middleware.RequireAdmin(), uc.GetUsersHandler)

	return uc
}

func (uc *UserController) GetMeHandler(c *gin.Context) {
	actorUUID, _, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), actorUUID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("FindUserByID() error", zap.Error(err))
		return
	}

	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "user not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	users, err := uc.userService.FindUsers(c.Request.Context(), page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get users"},
		)
		uc.logger.Error("FindUsers() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{
		Data: user.ToResponseUsers(users),
	})
}
