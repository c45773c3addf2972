package chat

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/minseo-dev/customerdesk/internal/model"
	"github.com/minseo-dev/customerdesk/internal/repository"
)

// Hub владеет множеством подключённых сессий и присутствием
// (username → сессия). Создаётся в main и передаётся обработчику
// явно; никакого глобального состояния на уровне пакета.
type Hub struct {
	log      zerolog.Logger
	messages repository.MessageRepository

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Client
	presence map[string]uuid.UUID // последний логин выигрывает

	register   chan *Client
	unregister chan *Client
	login      chan loginRequest
	inbound    chan inboundMessage

	ctx    context.Context
	cancel context.CancelFunc
}

type loginRequest struct {
	client   *Client
	username string
}

type inboundMessage struct {
	client  *Client
	sender  string
	content string
}

func NewHub(messages repository.MessageRepository, log zerolog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		log:        log,
		messages:   messages,
		sessions:   make(map[uuid.UUID]*Client),
		presence:   make(map[string]uuid.UUID),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		login:      make(chan loginRequest, 16),
		inbound:    make(chan inboundMessage, 256),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run — центральный цикл раздачи. Все изменения presence происходят
// здесь, последовательно; конкурирующие логины не теряются и не
// дублируются.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.sessions[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.removeClient(client)

		case req := <-h.login:
			h.handleLogin(req)

		case msg := <-h.inbound:
			h.handleMessage(msg)
		}
	}
}

// ServeConn привязывает websocket-соединение к хабу и обслуживает его
// до разрыва. Блокирует вызывающего.
func (h *Hub) ServeConn(conn *websocket.Conn) {
	newClient(h, conn).Serve()
}

// Close останавливает цикл и рвёт все соединения.
func (h *Hub) Close() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.sessions {
		client.close()
		delete(h.sessions, id)
	}
	h.presence = make(map[string]uuid.UUID)
}

// OnlineUsers returns the currently logged-in usernames, sorted.
func (h *Hub) OnlineUsers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]string, 0, len(h.presence))
	for username := range h.presence {
		users = append(users, username)
	}
	sort.Strings(users)
	return users
}

func (h *Hub) handleLogin(req loginRequest) {
	if req.username == "" {
		return
	}

	h.mu.Lock()
	// Прежняя сессия того же пользователя теряет привязку, но
	// остаётся подключённой: последний логин выигрывает.
	if prevID, ok := h.presence[req.username]; ok && prevID != req.client.ID {
		if prev, ok := h.sessions[prevID]; ok {
			prev.setUsername("")
		}
	}
	h.presence[req.username] = req.client.ID
	req.client.setUsername(req.username)
	h.mu.Unlock()

	h.broadcast(statusEvent(req.username, "online"))
	h.broadcast(onlineUsersEvent(h.OnlineUsers()))
}

func (h *Hub) handleMessage(msg inboundMessage) {
	if msg.sender == "" || msg.content == "" {
		return
	}

	// Сначала фиксируем в журнале, потом раздаём. Ошибка записи не
	// валит процесс: отправителю уходит отказ, остальные её не видят.
	record := model.Message{Sender: msg.sender, Content: msg.content}
	if err := h.messages.Create(h.ctx, &record); err != nil {
		h.log.Error().Err(err).Str("sender", msg.sender).Msg("persist chat message")
		msg.client.trySend(errorEvent("message not delivered"))
		return
	}

	h.broadcast(messageEvent(msg.sender, msg.content, record.CreatedAt))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.sessions[client.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, client.ID)
	client.close()

	username := client.username()
	if username != "" && h.presence[username] == client.ID {
		delete(h.presence, username)
	} else {
		username = ""
	}
	h.mu.Unlock()

	if username != "" {
		h.broadcast(statusEvent(username, "offline"))
	}
}

// broadcast рассылает событие всем сессиям. Переполненный буфер
// отправки означает мёртвого клиента — отключаем его.
func (h *Hub) broadcast(event map[string]any) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.sessions))
	for _, client := range h.sessions {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if !client.trySend(event) {
			h.log.Warn().Str("session", client.ID.String()).Msg("send buffer full, disconnecting")
			select {
			case h.unregister <- client:
			default:
			}
		}
	}
}

func statusEvent(user, status string) map[string]any {
	return map[string]any{
		"type":   "user_status",
		"user":   user,
		"status": status,
	}
}

func onlineUsersEvent(users []string) map[string]any {
	return map[string]any{
		"type":  "online_users",
		"users": users,
	}
}

func messageEvent(sender, content string, ts time.Time) map[string]any {
	return map[string]any{
		"type":      "receive_message",
		"sender":    sender,
		"message":   content,
		"timestamp": ts.UTC().Format(time.RFC3339),
	}
}

func errorEvent(reason string) map[string]any {
	return map[string]any{
		"type":  "error",
		"error": reason,
	}
}
