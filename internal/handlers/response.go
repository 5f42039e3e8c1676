package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/apperrors"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/logger"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/middleware"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/services"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ok[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, models.Response[T]{Success: true, Data: data})
}

func created[T any](c *gin.Context, message string, data T) {
	c.JSON(http.StatusCreated, models.Response[T]{Success: true, Message: message, Data: data})
}

func message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, models.Response[any]{Success: true, Message: msg})
}

// fail writes the error envelope. Internal errors are logged and replaced by a generic message.
func fail(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Kind == apperrors.KindInternal {
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", middleware.RequestID(c),
			"error", err,
		)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus(), models.ErrorResponse{
		Success: false,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		fail(c, validation.FromBindError(err))
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := services.ParseID(c.Param(name), name)
	if err != nil {
		fail(c, err)
		return primitive.NilObjectID, false
	}
	return id, true
}

func viewer(c *gin.Context) (services.Viewer, bool) {
	v, found := middleware.CurrentViewer(c)
	if !found {
		fail(c, apperrors.Unauthorized("Authentication required"))
	}
	return v, found
}

func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}

func pageParams(c *gin.Context) (int, int) {
	return queryInt(c, "page", 1), queryInt(c, "limit", 0)
}
