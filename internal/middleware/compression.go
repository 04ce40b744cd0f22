package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression gzips responses for clients that accept it. Paths serving
// already compressed documents (PDF, XLSX) are passed through untouched.
func Compression(excludedPaths ...string) gin.HandlerFunc {
	if len(excludedPaths) == 0 {
		return gzip.Gzip(gzip.DefaultCompression)
	}
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths(excludedPaths))
}
