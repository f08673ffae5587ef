package main

import (
	"log"
	"net/http"
)

func main() {
	app, cleanup, err := InitializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer cleanup()

	go app.Hub.Run()

	cfg := app.Config
	if _, err := app.Users.EnsureAssistant(cfg.AssistantEmail, cfg.AssistantName, cfg.AssistantPic); err != nil {
		log.Fatalf("Failed to ensure assistant account: %v", err)
	}

	addr := ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	if err := http.ListenAndServe(addr, app.Router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
