package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/david485-rev/RecipeExplorer/config"
	"github.com/david485-rev/RecipeExplorer/internal/api"
	"github.com/david485-rev/RecipeExplorer/internal/database"
	"github.com/david485-rev/RecipeExplorer/internal/server"
	"github.com/david485-rev/RecipeExplorer/internal/service"
	"github.com/david485-rev/RecipeExplorer/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, err := database.NewDynamoDBClient(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to create DynamoDB client: %v", err)
	}

	gateway := store.NewDynamoGateway(client, cfg.TableName)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	svc := &api.Services{
		Users:    service.NewUserService(gateway, hasher),
		Recipes:  service.NewRecipeService(gateway),
		Comments: service.NewCommentService(gateway),
		General:  service.NewGeneralService(gateway),
		Tokens:   tokens,
	}

	srv := server.New(cfg, svc)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
