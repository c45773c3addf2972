package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/minseo-dev/customerdesk/internal/chat"
	"github.com/minseo-dev/customerdesk/internal/repository"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type ChatHandler struct {
	hub          *chat.Hub
	messages     repository.MessageRepository
	historyLimit int
	log          zerolog.Logger
}

func NewChatHandler(hub *chat.Hub, messages repository.MessageRepository, historyLimit int, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		hub:          hub,
		messages:     messages,
		historyLimit: historyLimit,
		log:          log,
	}
}

// HandleWebSocket апгрейдит соединение и отдаёт его хабу.
func (h *ChatHandler) HandleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade")
		return err
	}

	h.hub.ServeConn(conn)
	return nil
}

// GetMessages отдаёт последние сообщения журнала (от старых к новым).
func (h *ChatHandler) GetMessages(c echo.Context) error {
	messages, err := h.messages.ListRecent(c.Request().Context(), h.historyLimit)
	if err != nil {
		h.log.Error().Err(err).Msg("list chat messages")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to load messages",
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"messages": messages,
		"total":    len(messages),
	})
}

// GetOnlineUsers отдаёт текущий список залогиненных пользователей.
func (h *ChatHandler) GetOnlineUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"users": h.hub.OnlineUsers(),
	})
}
