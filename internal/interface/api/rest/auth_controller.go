package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"share-ledger-api/internal/application/ports"
	"share-ledger-api/internal/application/services"
	"share-ledger-api/internal/domain/audit"
	userDB "share-ledger-api/internal/infrastructure/db/postgres/user"
	"share-ledger-api/internal/infrastructure/jwt"
	"share-ledger-api/internal/interface/api/rest/dto/auth"
	"share-ledger-api/internal/interface/api/rest/dto/user"
	"share-ledger-api/internal/interface/api/rest/middleware"
	"share-ledger-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	userService ports.UserService
	authService ports.Auth
	revoked     ports.RevocationStore
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	userService ports.UserService,
	authService ports.Auth,
	revoked ports.RevocationStore,
	jwtService *jwt.Service,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		userService: userService,
		authService: authService,
		revoked:     revoked,
	}

	r.POST(RouteRegister, ac.RegisterHandler)
	r.POST(RouteLogin, ac.LoginHandler)
	r.POST(RouteLogout, middleware.AuthMiddleware(jwtService, revoked, logger), ac.LogoutHandler)

	return ac
}

func (ac *AuthController) RegisterHandler(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateRegister(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := ac.userService.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, userDB.ErrEmailAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to register"},
		)
		ac.logger.Error("Register() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, user.ToResponseUser(*u))
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateLogin(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := ac.userService.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		ac.logger.Error("FindByEmail() error", zap.Error(err))
		return
	}
	// an unknown email and a wrong password are indistinguishable to the caller
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := ac.authService.GenerateToken(u, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		ac.logger.Error("GenerateToken() error", zap.Error(err), zap.Stringer("user_uuid", u.UUID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	ac.userService.RecordActivity(c.Request.Context(), u.UUID, audit.ActionLogin, "user "+u.Email+" logged in")

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
	})
}

func (ac *AuthController) LogoutHandler(c *gin.Context) {
	tokenID := c.GetString(middleware.CtxTokenID)

	expiry := time.Now()
	if v, exists := c.Get(middleware.CtxTokenExpiry); exists {
		if t, ok := v.(time.Time); ok && !t.IsZero() {
			expiry = t
		}
	}

	if err := ac.revoked.Revoke(c.Request.Context(), tokenID, expiry); err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to log out"},
		)
		ac.logger.Error("Revoke() error", zap.Error(err))
		return
	}

	if actorUUID, _, ok := currentActor(c); ok {
		ac.userService.RecordActivity(c.Request.Context(), actorUUID, audit.ActionLogout, "user logged out")
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
