// Package response writes the API's JSON envelope.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// Error codes carried in Response.Code.
const (
	CodeOK            = 0
	CodeInvalidInput  = 10001
	CodeBodyTooLarge  = 10005
	CodeNotFound      = 10404
	CodeUnreadable    = 10422
	CodeUpstream      = 10502
	CodeInternalError = 50000
)

// OK writes a 200 reply.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error reply.
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetails writes an error reply with details.
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeInvalidInput, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// Unprocessable 422
func Unprocessable(c *gin.Context, message, details string) {
	ErrorWithDetails(c, http.StatusUnprocessableEntity, CodeUnreadable, message, details)
}

// BadGateway 502
func BadGateway(c *gin.Context, message, details string) {
	ErrorWithDetails(c, http.StatusBadGateway, CodeUpstream, message, details)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternalError, "internal server error")
}
