package main

import (
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/pdrpinto/gridastar/internal/server"
)

func main() {
	settings, err := server.SettingsFromEnv(os.Getenv)
	if err != nil {
		log.Fatalln(err)
	}
	log.SetLevel(settings.LogLevel)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	srv := server.New(log.StandardLogger(), settings)
	log.WithFields(log.Fields{
		"port":          settings.Port,
		"maxExpansions": settings.MaxExpansions,
		"maxCells":      settings.MaxCells,
	}).Info("gridastar server listening")
	log.Fatalln(http.ListenAndServe(":"+settings.Port, srv))
}
