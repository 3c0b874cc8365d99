package api

import "github.com/gin-gonic/gin"

// writeError writes the error envelope shared by every failure path. The
// underlying error detail, when present, is passed through to the client.
func writeError(c *gin.Context, status int, message string, err error) {
	body := gin.H{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}
