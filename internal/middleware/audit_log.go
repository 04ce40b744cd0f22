// Package middleware provides the gin middleware chain and audit logging helpers.
package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/service"
)

const auditWriteTimeout = 5 * time.Second

// AuditLog records a catalog change or another action worth keeping.
// Writes happen in the background; a nil service disables auditing.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType string, message string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := auditEntry(c, "info", actionType, message, fields)
	store(loggingService, entry)
}

// AuditLogError records a failed action along with its error.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType string, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := auditEntry(c, "error", actionType, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	store(loggingService, entry)
}

func auditEntry(c *gin.Context, level, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	return &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Container:  contextString(c, containerKey),
		Actor:      GetActor(c),
		ActionType: actionType,
		Fields:     fields,
	}
}

func store(loggingService service.LoggingService, entry *model.LogEntry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}
