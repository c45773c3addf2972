package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/minseo-dev/customerdesk/internal/chat"
	"github.com/minseo-dev/customerdesk/internal/config"
	"github.com/minseo-dev/customerdesk/internal/db"
	"github.com/minseo-dev/customerdesk/internal/logging"
	"github.com/minseo-dev/customerdesk/internal/model"
	"github.com/minseo-dev/customerdesk/internal/repository"
	"github.com/minseo-dev/customerdesk/internal/server"
	"github.com/minseo-dev/customerdesk/internal/service"
)

func main() {
	// .env опционален; без него работаем на дефолтах и переменных окружения.
	_ = godotenv.Load(".env")

	srvCfg := config.LoadServerConfig()
	log := logging.New(logging.Config{
		Level:   srvCfg.LogLevel,
		Pretty:  srvCfg.LogPretty,
		Service: "customerdesk",
	})

	// 1. Загружаем конфиг БД из env.
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load db config")
	}

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init db")
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("auto migrate")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("sql DB")
	}
	defer sqlDB.Close()

	// 4. Репозитории (реализации на GORM).
	customerRepo := repository.NewGormCustomerRepository(gormDB)
	messageRepo := repository.NewGormMessageRepository(gormDB)

	// 5. Сервис картотеки и чат-хаб.
	customerSvc := service.NewCustomerService(customerRepo)

	hub := chat.NewHub(messageRepo, log)
	go hub.Run()
	defer hub.Close()

	// 6. HTTP-сервер.
	srv := server.New(
		server.NewCustomerHandler(customerSvc, log),
		server.NewChatHandler(hub, messageRepo, srvCfg.ChatHistory, log),
		log,
	)

	// 7. Запускаем сервер в горутине.
	go func() {
		if err := srv.Start(srvCfg.Addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http serve")
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down http server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
