package main

import (
	"github.com/sirupsen/logrus"

	"taskhub/internal/config"
	"taskhub/internal/server"
)

func main() {
	// Load configuration
	cfg := config.New()

	// Create and run server
	srv, err := server.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create server")
	}
	defer srv.Close()

	if err := srv.Run(); err != nil {
		logrus.WithError(err).Fatal("server error")
	}
}
