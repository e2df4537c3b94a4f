package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/faisalgulab4589-hash/GIMS/internal/config"
	"github.com/faisalgulab4589-hash/GIMS/internal/service"
)

const (
	monitorWriteWait = 10 * time.Second
	monitorPingEvery = 30 * time.Second
)

// buildUpgrader creates a WebSocket upgrader with origin validation. An
// empty origin list permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// MonitorHandler streams live invigilation data over WebSocket: an initial
// snapshot followed by the exam's Redis PubSub event feed.
type MonitorHandler struct {
	rdb       *redis.Client
	integrity *service.IntegrityService
	log       zerolog.Logger
	upgrader  websocket.Upgrader
}

// NewMonitorHandler creates a new MonitorHandler.
func NewMonitorHandler(rdb *redis.Client, integrity *service.IntegrityService, log zerolog.Logger, allowedOrigins []string) *MonitorHandler {
	return &MonitorHandler{
		rdb:       rdb,
		integrity: integrity,
		log:       log.With().Str("component", "monitor_handler").Logger(),
		upgrader:  buildUpgrader(allowedOrigins),
	}
}

// MonitorExam godoc
// WS /ws/v1/staff/exams/:exam_id/monitor
// Streams proctor events and forced-submit notifications for one exam.
func (h *MonitorHandler) MonitorExam(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exam ID"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("exam_id", examID.String()).Logger()
	wsLog.Info().Msg("Invigilator connected")

	// Initial snapshot so the console renders without waiting for events.
	snapshot, err := h.integrity.Snapshot(c.Request.Context(), examID)
	if err != nil {
		wsLog.Error().Err(err).Msg("Snapshot failed")
		writeMonitorJSON(conn, gin.H{"kind": "error", "message": "snapshot unavailable"})
		return
	}
	if err := writeMonitorJSON(conn, gin.H{"kind": "snapshot", "students": snapshot}); err != nil {
		return
	}

	ctx := c.Request.Context()
	sub := h.rdb.Subscribe(ctx, config.CacheKey.ExamMonitorChannel(examID.String()))
	defer sub.Close()

	// Drain client frames so pongs and close frames are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sub.Close()
				return
			}
		}
	}()

	events := sub.Channel()
	ping := time.NewTicker(monitorPingEvery)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-events:
			if !ok {
				wsLog.Info().Msg("Invigilator stream closed")
				return
			}
			conn.SetWriteDeadline(time.Now().Add(monitorWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed, dropping connection")
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(monitorWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeMonitorJSON(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(monitorWriteWait))
	return conn.WriteJSON(v)
}
