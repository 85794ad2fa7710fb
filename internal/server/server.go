package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"account_service/internal/database"
	"account_service/pkg/logger"
	"account_service/pkg/mailer"
	"account_service/pkg/storage"
	"account_service/pkg/uploadfiles"
)

type Server struct {
	port int

	db       database.Service
	mailer   mailer.Mailer
	uploader *uploadfiles.Uploader
}

func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	resendAPIKey := os.Getenv("RESEND_API_KEY")
	fromEmail := os.Getenv("FROM_EMAIL")

	NewServer := &Server{
		port:     port,
		db:       database.New(),
		mailer:   mailer.NewResendMailer(resendAPIKey, fromEmail),
		uploader: newUploaderFromEnv(),
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", NewServer.port),
		Handler:      NewServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}

func newUploaderFromEnv() *uploadfiles.Uploader {
	cfg := &storage.S3Config{
		Endpoint:        os.Getenv("S3_ENDPOINT"),
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("S3_BUCKET"),
		Region:          os.Getenv("S3_REGION"),
	}

	store, err := storage.NewFactory().Create(cfg)
	if err != nil {
		logger.Warn("Object storage not configured, image uploads disabled", "error", err)
		return nil
	}

	return uploadfiles.NewUploader(store)
}
