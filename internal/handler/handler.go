package handler

import (
	"errors"
	"net/http"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/middleware"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

// fail 把业务错误统一映射到 HTTP 状态码，没命中的都按 500 处理
func fail(c *gin.Context, err error) {
	var code int
	switch {
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrDuplicatePayment):
		code = http.StatusConflict
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrAlreadyProcessed),
		errors.Is(err, service.ErrInvalidSignature),
		errors.Is(err, service.ErrNotApproved),
		errors.Is(err, service.ErrLastAdmin):
		code = http.StatusBadRequest
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "server error"})
		return
	}
	c.JSON(code, gin.H{"msg": err.Error()})
}

func currentUserID(c *gin.Context) uint64 {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := userIDAny.(uint64)
	return userID
}
