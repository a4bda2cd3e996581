package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// RateLimited is Error plus a retryAfter value. The unit ("seconds" or
// "minutes") depends on the endpoint, so the caller names it.
func RateLimited(c *gin.Context, code string, message string, retryAfter int, unit string) {
	c.JSON(429, gin.H{
		"success": false,
		"error": gin.H{
			"code":       code,
			"message":    message,
			"retryAfter": retryAfter,
			"unit":       unit,
		},
	})
}
