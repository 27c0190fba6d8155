package main

import (
	"log"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"

	"precisionturn/config"
	"precisionturn/db"
	"precisionturn/handlers"
	"precisionturn/planner"
	"precisionturn/platform/shutdown"
)

func main() {
	config.Initialize()

	database, err := db.GetDB()
	if err != nil {
		log.Fatal(err)
	}

	// Seed the knowledge base on first run
	if err := planner.NewKnowledge(database).Seed(); err != nil {
		logger.LogErr(err, "failed to seed knowledge base")
	}

	done := make(chan struct{})
	shutdown.InitShutdownService(done)
	shutdown.RegisterHook(func(_ time.Duration) error {
		return database.Close()
	})

	s := rweb.NewServer(rweb.ServerOptions{
		Address: config.Get().Address,
		Verbose: true,
	})

	// Add middleware for request logging
	s.Use(rweb.RequestInfo)

	handlers.SetupRoutes(s)

	go func() {
		log.Printf("Starting PrecisionTurn server on %s", config.Get().Address)
		log.Fatal(s.Run())
	}()

	<-done
	logger.Info("PrecisionTurn server stopped")
}
