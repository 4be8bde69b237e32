package middleware

import (
	"strconv"
	"strings"
	"time"

	"practice_backend/internal/util"
	"practice_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newRequestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// timingWriter 在首次写出响应头前补上耗时
type timingWriter struct {
	gin.ResponseWriter
	start   time.Time
	stamped bool
}

func (w *timingWriter) stamp() {
	if w.stamped {
		return
	}
	w.stamped = true
	ms := float64(time.Since(w.start).Microseconds()) / 1000
	w.Header().Set(util.HeaderResponseTime, strconv.FormatFloat(ms, 'f', 1, 64))
}

func (w *timingWriter) WriteHeader(code int) {
	w.stamp()
	w.ResponseWriter.WriteHeader(code)
}

func (w *timingWriter) WriteHeaderNow() {
	w.stamp()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *timingWriter) Write(b []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(b)
}

func (w *timingWriter) WriteString(s string) (int, error) {
	w.stamp()
	return w.ResponseWriter.WriteString(s)
}

// RequestID 读取或生成请求 ID，写入 context 并在响应头回显，同时记录处理耗时
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := strings.TrimSpace(c.GetHeader(util.HeaderRequestID))
		if id == "" {
			id = newRequestID()
		}

		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), id))
		c.Header(util.HeaderRequestID, id)
		c.Writer = &timingWriter{ResponseWriter: c.Writer, start: start}

		c.Next()

		logger.WithContext(c.Request.Context()).Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
