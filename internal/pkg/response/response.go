// Package response renders the API's single success/error envelope.
//
// Success:  {"success": true, "statusCode": N, "message": "...", <payload keys>}
// Failure:  {"success": false, "statusCode": N, "message": "..."}
//
// The HTTP status always mirrors statusCode.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookdata-api/pkg/apperror"
)

// JSON sends a success envelope with the given status, merging the payload
// keys into the envelope itself.
func JSON(c *gin.Context, statusCode int, message string, payload gin.H) {
	body := gin.H{
		"success":    true,
		"statusCode": statusCode,
		"message":    message,
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Success sends a 200 OK envelope.
func Success(c *gin.Context, message string, payload gin.H) {
	JSON(c, http.StatusOK, message, payload)
}

// Created sends a 201 Created envelope.
func Created(c *gin.Context, message string, payload gin.H) {
	JSON(c, http.StatusCreated, message, payload)
}

// Error sends a failure envelope.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success":    false,
		"statusCode": statusCode,
		"message":    message,
	})
}

// FromError renders any handler error. Typed errors map to their status;
// everything else is a 500. Internal causes are logged with the request id
// and never forwarded to the client.
func FromError(c *gin.Context, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.Internal(err)
	}

	if appErr.Type == apperror.TypeInternal {
		log.Error().
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Err(appErr.Unwrap()).
			Msg("request failed")
	}

	Error(c, appErr.StatusCode(), appErr.Message)
}
