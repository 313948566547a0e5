package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"share-ledger-api/internal/domain/user"
	"share-ledger-api/internal/interface/api/rest/middleware"
)

// currentActor reads the authenticated identity placed on the context by
// the auth middleware. ok is false when the subject claim is not a UUID.
func currentActor(c *gin.Context) (user.UUID, string, bool) {
	id, err := uuid.Parse(c.GetString(middleware.CtxUserID))
	if err != nil {
		return uuid.Nil, "", false
	}

	return id, c.GetString(middleware.CtxUserRole), true
}
