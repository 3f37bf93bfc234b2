package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emberdate/emberdate/internal/apperr"
)

// fail writes the mapped status for a service error. Store failures are
// logged with detail and answered with the generic message only; everything
// else surfaces the error text for the client to show.
func fail(c *gin.Context, logger *logrus.Logger, err error, generic string) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		logger.WithError(err).WithField("path", c.FullPath()).Error(generic)
		c.JSON(status, gin.H{"msg": generic})
		return
	}
	c.JSON(status, gin.H{"msg": err.Error()})
}
