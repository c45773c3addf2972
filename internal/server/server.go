package server

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Server собирает echo, обработчики и маршруты веб-варианта.
type Server struct {
	echo *echo.Echo
	log  zerolog.Logger

	customers *CustomerHandler
	chat      *ChatHandler
}

func New(customers *CustomerHandler, chat *ChatHandler, log zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:      e,
		log:       log,
		customers: customers,
		chat:      chat,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api/v1")

	customers := api.Group("/customers")
	{
		customers.GET("", s.customers.List)       // список / поиск
		customers.POST("", s.customers.Create)    // создать
		customers.PUT("/:id", s.customers.Update) // частичное обновление
		customers.DELETE("/:id", s.customers.Delete)
	}

	chat := api.Group("/chat")
	{
		chat.GET("/messages", s.chat.GetMessages)        // история
		chat.GET("/online-users", s.chat.GetOnlineUsers) // presence
	}

	s.echo.GET("/ws/chat", s.chat.HandleWebSocket)
}

// Start слушает addr до остановки.
func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Msg("http server listening")
	return s.echo.Start(addr)
}

// Shutdown гасит сервер, дожидаясь активных запросов.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
