// Package response holds the JSON envelope every endpoint answers with.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
)

// MsgInternal is the only message a client sees for unclassified failures.
const MsgInternal = "Internal Server Error"

type ErrorBody struct {
	Message string `json:"message"`
}

type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

// OK writes a successful envelope around data.
func OK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// List writes a successful envelope with the item count alongside.
func List(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Count: &count})
}

// Fail writes an error envelope and aborts the handler chain.
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Error: &ErrorBody{Message: message}})
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes the envelope for err. Internal errors are attached to the
// gin context for the access log and replaced by a generic message.
func FromError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		Fail(c, status, MsgInternal)
		return
	}
	Fail(c, status, err.Error())
}
