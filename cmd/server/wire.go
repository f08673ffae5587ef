//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/NajimuddinS/ChatMate/internal/assistant"
	"github.com/NajimuddinS/ChatMate/internal/config"
	"github.com/NajimuddinS/ChatMate/internal/handler"
	"github.com/NajimuddinS/ChatMate/internal/hub"
	"github.com/NajimuddinS/ChatMate/internal/repository/mongo"
	"github.com/NajimuddinS/ChatMate/internal/repository/postgres"
	"github.com/NajimuddinS/ChatMate/internal/service"
)

// InitializeApp creates a new application.
func InitializeApp() (*App, func(), error) {
	wire.Build(
		config.Load,
		// Database & Context Providers
		wire.NewSet(
			provideContext,
			providePostgresDB,
			provideMongoDB,
		),
		// Repository Providers
		wire.NewSet(
			postgres.NewUserRepository,
			wire.Bind(new(service.IUserRepository), new(*postgres.UserRepository)),

			mongo.NewMessageRepository,
			wire.Bind(new(service.IMessageRepository), new(*mongo.MessageRepository)),
		),
		// Hub doubles as the delivery notifier for the message service.
		wire.NewSet(
			hub.NewHub,
			wire.Bind(new(service.Notifier), new(*hub.Hub)),
		),
		// Assistant generator
		wire.NewSet(
			provideAssistantClient,
			wire.Bind(new(service.Generator), new(*assistant.Client)),
		),
		// Service Providers
		wire.NewSet(
			service.NewUserService,
			wire.Bind(new(service.IUserService), new(*service.UserService)),

			service.NewMessageService,
			wire.Bind(new(service.IMessageService), new(*service.MessageService)),

			service.NewAssistantService,
			wire.Bind(new(service.IAssistantService), new(*service.AssistantService)),
		),
		// HTTP Providers
		wire.NewSet(
			provideTokenManager,
			handler.NewAuthHandler,
			handler.NewMessageHandler,
			handler.NewAIHandler,
			handler.NewWebsocketHandler,
			handler.NewRouter,
		),
		// App Provider
		wire.NewSet(
			wire.Struct(new(App), "*"),
		),
	)
	return nil, nil, nil
}
