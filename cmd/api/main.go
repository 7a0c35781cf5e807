package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/sushihentaime/kamelthinks/internal/common"
	"github.com/sushihentaime/kamelthinks/internal/postservice"
	"github.com/sushihentaime/kamelthinks/internal/tokenservice"
	"github.com/sushihentaime/kamelthinks/internal/userservice"
)

const version = "1.0.0"

type application struct {
	config       *Config
	logger       *slog.Logger
	userService  *userservice.UserService
	postService  *postservice.PostService
	tokenService *tokenservice.TokenService
	broker       *common.MessageBroker
	policy       routePolicy
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(common.DBConfig{
		Host:         cfg.DBHost,
		Port:         cfg.DBPort,
		User:         cfg.DBUser,
		Password:     cfg.DBPassword,
		Name:         cfg.DBName,
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		MaxIdleTime:  15 * time.Minute,
	})
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupUserExchange(broker)
	if err != nil {
		logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The signing key is fixed here, before the server accepts requests. A
	// bad secret or lifetime never surfaces as a per-request error.
	tokenService, err := tokenservice.New(cfg.TokenSecret, time.Duration(cfg.TokenExpiryMS)*time.Millisecond)
	if err != nil {
		logger.Error("failed to initialize the token service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	app := &application{
		config:       cfg,
		logger:       logger,
		userService:  userservice.NewUserService(db, broker, cache),
		postService:  postservice.NewPostService(db),
		tokenService: tokenService,
		broker:       broker,
		policy:       defaultRoutePolicy(),
	}

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
