package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Context timeout for database operations.
const dbTimeout = 5 * time.Second

// okList wraps a list result in the success envelope the frontends expect.
func okList(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"status": "success", "data": data})
}

// okData wraps a single resource in the success envelope.
func okData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"status": "success", "data": data})
}

// okMessage is used by operations with no body to return, like delete.
func okMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"status": "success", "message": msg})
}

// fail emits the error envelope: a stable machine-readable code plus a
// human-readable message.
func fail(c *gin.Context, status int, code, msg string) {
	c.JSON(status, gin.H{"status": "error", "error": code, "message": msg})
}
