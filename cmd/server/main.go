// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/cardtable/wizard/internal/auth"
	"github.com/cardtable/wizard/internal/config"
	"github.com/cardtable/wizard/internal/handlers"
	"github.com/cardtable/wizard/internal/middleware"
	"github.com/cardtable/wizard/internal/server"
	"github.com/cardtable/wizard/internal/store"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	auth.Init()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	cfg := config.FromEnv()

	st, err := store.Open(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("failed to open game store: %v", err)
	}
	defer st.Close()

	srv := server.New(st, logger)

	mux := http.NewServeMux()
	logged := middleware.LogMiddleware(logger)

	// membership endpoints
	mux.Handle("/game/create", logged(handlers.CreateGameHandler(srv)))
	mux.Handle("/game/join", logged(handlers.JoinGameHandler(srv)))
	mux.Handle("/game/rejoin", logged(handlers.RejoinGameHandler(srv)))
	mux.Handle("/game/leave", logged(handlers.LeaveGameHandler(srv)))
	mux.Handle("/game/start", logged(handlers.StartGameHandler(srv)))

	// play endpoints
	mux.Handle("/game/trump", logged(handlers.ChooseTrumpHandler(srv)))
	mux.Handle("/game/bid", logged(handlers.PlaceBidHandler(srv)))
	mux.Handle("/game/play", logged(handlers.PlayCardHandler(srv)))
	mux.Handle("/game/next-trick", logged(handlers.AdvanceTrickHandler(srv)))
	mux.Handle("/game/next-round", logged(handlers.AdvanceRoundHandler(srv)))
	mux.Handle("/game/chat", logged(handlers.ChatHandler(srv)))

	// read endpoints
	mux.Handle("/game/state", logged(handlers.StateHandler(srv)))
	mux.Handle("/game/poll", logged(handlers.PollHandler(srv)))
	mux.Handle("/game/list", logged(handlers.ListGamesHandler(srv)))

	logger.Infof("Running on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
