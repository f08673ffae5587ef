package main

import (
	"context"
	"database/sql"

	"github.com/gorilla/mux"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/NajimuddinS/ChatMate/internal/assistant"
	"github.com/NajimuddinS/ChatMate/internal/auth"
	"github.com/NajimuddinS/ChatMate/internal/config"
	"github.com/NajimuddinS/ChatMate/internal/hub"
	"github.com/NajimuddinS/ChatMate/internal/repository/mongo"
	"github.com/NajimuddinS/ChatMate/internal/repository/postgres"
	"github.com/NajimuddinS/ChatMate/internal/service"
)

// App is the main application container.
type App struct {
	Config *config.Config
	Router *mux.Router
	Hub    *hub.Hub
	Users  service.IUserService
}

func provideContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	return ctx, func() { cancel() }
}

func providePostgresDB(cfg *config.Config) (*sql.DB, func(), error) {
	db, err := postgres.NewDB(cfg.PostgresURL)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.RunMigrations(cfg.PostgresURL); err != nil {
		db.Close()
		return nil, nil, err
	}
	cleanup := func() { db.Close() }
	return db, cleanup, nil
}

func provideMongoDB(ctx context.Context, cfg *config.Config) (*mongodriver.Database, func(), error) {
	db, err := mongo.NewDB(ctx, cfg.MongoURL)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { db.Client().Disconnect(ctx) }
	return db, cleanup, nil
}

func provideTokenManager(cfg *config.Config) *auth.TokenManager {
	return auth.NewTokenManager(cfg.JWTSecret)
}

func provideAssistantClient(cfg *config.Config) *assistant.Client {
	return assistant.NewClient(cfg.InferenceURL, cfg.InferenceModel, cfg.InferenceKey)
}
