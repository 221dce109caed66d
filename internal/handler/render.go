package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/simpleblog/backend/internal/model"
	"github.com/simpleblog/backend/internal/service"
	"github.com/simpleblog/backend/internal/template"
	"github.com/sirupsen/logrus"
)

// parsePage falls back to 1 for a missing, non-numeric or non-positive page.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.html", template.NewPage("Not Found", c.Request.URL.Path))
}

func renderServerError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "error.html", template.NewPage("Error", c.Request.URL.Path))
}

// renderFailure maps a service error onto exactly one page response.
// Unexpected errors are logged; the caller only sees a generic page.
func renderFailure(c *gin.Context, log logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		renderNotFound(c)
	case errors.Is(err, service.ErrUnauthorized):
		denyUnauthorized(c)
	case errors.Is(err, service.ErrInvalidInput):
		page := template.NewPage("Bad Request", c.Request.URL.Path)
		page.Error = "The submitted data is invalid."
		c.HTML(http.StatusBadRequest, "error.html", page)
	default:
		requestLog(c, log).WithError(err).Error("request failed")
		renderServerError(c)
	}
}

func requestLog(c *gin.Context, log logrus.FieldLogger) logrus.FieldLogger {
	return log.WithField("request_id", GetRequestID(c))
}

func writeMessage(c *gin.Context, status int, message string) {
	c.JSON(status, model.MessageResponse{Message: message})
}
