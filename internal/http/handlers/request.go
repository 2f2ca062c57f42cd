package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/pactify-backend/internal/http/response"
	"github.com/yungbote/pactify-backend/internal/platform/ctxutil"
)

var errInvalidID = errors.New("invalid id")

func ownerID(c *gin.Context) uuid.UUID {
	return ctxutil.UserID(c.Request.Context())
}

// pathID parses the named route parameter, answering 400 when it is not a uuid.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
