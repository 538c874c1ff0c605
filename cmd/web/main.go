package main

import (
	"os"

	"creatordna_backend/internal/app"
	"creatordna_backend/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
