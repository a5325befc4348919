package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONErrorCode adds a machine-readable code so the frontend can tell
// validation failures apart from availability conflicts and upload errors.
func JSONErrorCode(c *gin.Context, code int, errCode string, message string) {
	c.JSON(code, gin.H{"success": false, "code": errCode, "error": message})
}
