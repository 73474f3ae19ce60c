package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the only failure shape that ever reaches a caller.
// Backend error detail stays in the log sink.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func JSON200(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

func JSON201(c *gin.Context, body interface{}) {
	c.JSON(http.StatusCreated, body)
}

func JSON400(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Bad request", Message: message})
}

func JSON404(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found", Message: message})
}

func JSON405(c *gin.Context, message string) {
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed", Message: message})
}

func JSON500(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", Message: message})
}
