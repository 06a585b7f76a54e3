package main

import (
	"log"
	"os"

	"github.com/agrolink/agrolink-backend/internal/config"
	"github.com/agrolink/agrolink-backend/internal/db"
	"github.com/agrolink/agrolink-backend/internal/model"
	"github.com/agrolink/agrolink-backend/internal/server"
	"github.com/joho/godotenv"
)

var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	// The server starts without a database; repositories answer
	// ErrDBNotReady until the connection lands via SetDB. /healthz is
	// reachable the whole time.
	srv, err := server.New(nil, gitSHA, buildTime)
	if err != nil {
		log.Fatalf("server init error: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	go func() {
		cfg, err := config.Load()
		if err != nil {
			log.Printf("config load error: %v", err)
			return
		}
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		if err := conn.AutoMigrate(
			&model.User{},
			&model.FarmerProfile{},
			&model.ContractorProfile{},
			&model.SaleListing{},
			&model.PurchaseRequest{},
			&model.RequestInterest{},
			&model.ChatRoom{},
			&model.ChatMessage{},
			&model.Notification{},
		); err != nil {
			log.Printf("auto migrate error: %v", err)
		}
		srv.SetDB(conn)
		log.Printf("database connected")
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
