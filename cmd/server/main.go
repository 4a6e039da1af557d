package main

import (
	"log"

	httpapi "coup-server/internal/api/http"
	"coup-server/internal/api/ws"
	"coup-server/internal/config"
	"coup-server/internal/room"
	"coup-server/internal/store"
)

func main() {
	cfg := config.Load()
	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, cfg)
	hub := ws.NewHub(rm)
	r := httpapi.NewRouter(rm, hub, cfg)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
