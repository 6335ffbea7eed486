package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cms-report-api/internal/middleware"
	"github.com/noah-isme/cms-report-api/internal/models"
	appErrors "github.com/noah-isme/cms-report-api/pkg/errors"
)

func sessionFromContext(c *gin.Context) (models.Session, bool) {
	return middleware.SessionFromContext(c)
}

func int64Param(c *gin.Context, name string) (int64, error) {
	value, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || value <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, name+" must be a positive integer")
	}
	return value, nil
}
