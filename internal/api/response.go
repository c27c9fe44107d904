package api

import (
	"github.com/gin-gonic/gin"
)

func success(c *gin.Context, code int, data any) {
	c.JSON(code, gin.H{
		"success": true,
		"data":    data,
	})
}

func failure(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   msg,
	})
}

// failureFrom writes the error envelope for err. Remote failures also report
// whether a retry may help.
func failureFrom(c *gin.Context, err error) {
	f := classifyError(err)
	body := gin.H{
		"success": false,
		"error":   f.message,
	}
	if f.remote {
		body["transient"] = f.transient
	}
	c.JSON(f.status, body)
}
