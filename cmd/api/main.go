package main

import (
	"net/http"
	"os"
	"time"

	"eohealth-registry/internal/platform/logger"
	"eohealth-registry/internal/router"
)

func main() {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	log := logger.NewFromEnv()

	r := router.NewRouter(router.Options{
		Log:        log,
		SQLitePath: os.Getenv("SQLITE_PATH"),
		UploadDir:  os.Getenv("UPLOAD_DIR"),
		FontsDir:   os.Getenv("FONTS_DIR"),
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
