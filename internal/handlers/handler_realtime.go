package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/SscSPs/cherry_dining/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ChangeEventName is the SSE event name of row changes.
const ChangeEventName = "change"

const defaultHeartbeatInterval = 25 * time.Second

// ChangeSubscriber hands out change stream subscriptions. The returned func cancels
// the subscription and closes the channel.
type ChangeSubscriber interface {
	Subscribe(stream domain.Stream) (<-chan domain.ChangeEvent, func())
}

type realtimeHandler struct {
	subscriber ChangeSubscriber
	heartbeat  time.Duration
}

func newRealtimeHandler(subscriber ChangeSubscriber, heartbeat time.Duration) *realtimeHandler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeatInterval
	}
	return &realtimeHandler{subscriber: subscriber, heartbeat: heartbeat}
}

func registerRealtimeRoutes(rg *gin.RouterGroup, h *realtimeHandler) {
	rg.GET("/realtime/:stream", h.stream)
}

// stream godoc
// @Summary Subscribe to a change stream
// @Description Streams row changes as Server-Sent Events named "change". Each event carries
// @Description {type, table, record, old_record}. Browsers may pass the token as access_token.
// @Tags realtime
// @Produce text/event-stream
// @Param stream path string true "orders or transfers"
// @Success 200 {object} domain.ChangeEvent
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /realtime/{stream} [get]
func (h *realtimeHandler) stream(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stream := domain.Stream(c.Param("stream"))
	if stream != domain.StreamOrders && stream != domain.StreamTransfers {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("unknown stream %q", stream)})
		return
	}

	events, cancel := h.subscriber.Subscribe(stream)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	logger.Info("Change stream opened", slog.String("stream", string(stream)))
	defer logger.Info("Change stream closed", slog.String("stream", string(stream)))

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			c.SSEvent(ChangeEventName, event)
			c.Writer.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(c.Writer, ": heartbeat\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}
