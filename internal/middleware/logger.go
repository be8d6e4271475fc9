package middleware

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// ContextKeyRequestID is the key for the request id in gin context
	ContextKeyRequestID = "request_id"
	requestIDHeader     = "X-Request-ID"
)

var (
	appLogger *log.Logger
)

// InitLogger initializes the file-based logging system.
// An empty logDir keeps logging on stdout only.
func InitLogger(logDir string) error {
	if logDir == "" {
		appLogger = log.New(os.Stdout, "", log.LstdFlags)
		return nil
	}

	// Get absolute path for log directory
	absLogDir, err := filepath.Abs(logDir)
	if err != nil {
		absLogDir = logDir
	}

	// Create logs directory if not exists
	if err := os.MkdirAll(absLogDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", absLogDir, err)
	}

	// Setup single app logger with rotation
	appLogFile := &lumberjack.Logger{
		Filename:   filepath.Join(absLogDir, "moneyapp.log"),
		MaxSize:    10, // 10 MB
		MaxBackups: 30,
		MaxAge:     30, // days
		Compress:   true,
		LocalTime:  true,
	}

	out := io.MultiWriter(os.Stdout, appLogFile)
	appLogger = log.New(out, "", log.LstdFlags)

	// Also set the default logger to use file output
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags)

	appLogger.Printf("[INFO] Logger initialized, log directory: %s", absLogDir)
	return nil
}

// LogInfo logs info level messages
func LogInfo(format string, v ...interface{}) {
	logf("[INFO] ", format, v...)
}

// LogError logs error level messages
func LogError(format string, v ...interface{}) {
	logf("[ERROR] ", format, v...)
}

// LogDebug logs debug level messages
func LogDebug(format string, v ...interface{}) {
	if gin.Mode() == gin.ReleaseMode {
		return
	}
	logf("[DEBUG] ", format, v...)
}

func logf(level, format string, v ...interface{}) {
	if appLogger != nil {
		appLogger.Printf(level+format, v...)
	} else {
		log.Printf(level+format, v...)
	}
}

// RequestID returns the id assigned to the current request
func RequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// RequestLoggerMiddleware tags each request with an id and logs
// method, route, status and latency once the request is done
func RequestLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)

		c.Next()

		latency := time.Since(startTime)
		statusCode := c.Writer.Status()

		// Log the matched route, never the raw query
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		if statusCode >= 500 {
			LogError("request_id=%s %s %s | status=%d | latency=%v | errors=%s",
				requestID, c.Request.Method, route, statusCode, latency, c.Errors.String())
		} else {
			LogInfo("request_id=%s %s %s | status=%d | latency=%v",
				requestID, c.Request.Method, route, statusCode, latency)
		}
	}
}
