package main

import (
	"context"
	"log"
	"time"

	"marketplace-app/config"
	"marketplace-app/database"
	routes "marketplace-app/internal/app/http"
	"marketplace-app/internal/media"
	"marketplace-app/internal/store"
	"marketplace-app/internal/workflow"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	db, err := database.Connect(config.DB_URL)
	if err != nil {
		log.Fatal("❌ ", err)
	}
	defer database.Close(db)

	uploader, err := media.NewS3Uploader(context.Background(), config.S3_BUCKET, config.S3_REGION, config.S3_PUBLIC_URL)
	if err != nil {
		log.Fatal("❌ ", err)
	}

	st := store.NewGorm(db)
	engine := workflow.New(st)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Store:    st,
		Engine:   engine,
		Uploader: uploader,
	})

	r.Run(":" + config.PORT)
}
