package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/tnqbao/gau-document-service/config"
	"github.com/tnqbao/gau-document-service/http/controller"
	routes "github.com/tnqbao/gau-document-service/http/route"
	infraPkg "github.com/tnqbao/gau-document-service/infra"
	"github.com/tnqbao/gau-document-service/repository"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = infra.Logger.Shutdown(ctx)
	}()

	if infra.Minio != nil {
		if err := infra.Minio.EnsureBucket(context.Background(), cfg.EnvConfig.Storage.Bucket); err != nil {
			log.Fatalf("Failed to ensure storage bucket: %v", err)
		}
	}

	repo, err := repository.InitRepository(cfg, infra)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	ctrl := controller.NewController(cfg, infra, repo)

	router := routes.SetupRouter(ctrl)

	log.Println("HTTP Server started on :" + cfg.EnvConfig.Server.Port)
	if err := router.Run(":" + cfg.EnvConfig.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
