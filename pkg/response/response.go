package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorInfo describes a failed operation inside the response envelope.
// Location carries the call-site tag (service.Method) that produced the
// failure so clients and logs can be correlated.
type ErrorInfo struct {
	Id          Code   `json:"Id"`
	Description string `json:"Description"`
	Location    string `json:"Location"`
}

// Envelope is the uniform wire wrapper: ReturnData on success, Error on
// failure. Mutation endpoints always answer with this shape.
type Envelope[T any] struct {
	ReturnData T          `json:"ReturnData"`
	Error      *ErrorInfo `json:"Error,omitempty"`
}

// Wrap builds a success envelope without writing it, for services that
// return envelopes to their controller.
func Wrap[T any](data T) Envelope[T] {
	return Envelope[T]{ReturnData: data}
}

// WrapError builds a failure envelope without writing it.
func WrapError[T any](code Code, description, location string) Envelope[T] {
	return Envelope[T]{Error: &ErrorInfo{Id: code, Description: description, Location: location}}
}

// OK writes a 200 success envelope.
func OK[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, Wrap(data))
}

// Fail writes a failure envelope with the given HTTP status.
func Fail[T any](c *gin.Context, status int, code Code, description, location string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, WrapError[T](code, description, location))
}

// AbortFail writes a failure envelope and aborts the handler chain, for
// middleware rejections.
func AbortFail(c *gin.Context, status int, code Code, description, location string) {
	c.AbortWithStatusJSON(status, WrapError[any](code, description, location))
}
