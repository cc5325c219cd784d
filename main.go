package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/saeidalz13/submarine-duel/api"
	"github.com/saeidalz13/submarine-duel/db"
	"github.com/saeidalz13/submarine-duel/db/sqlc"
	"github.com/saeidalz13/submarine-duel/internal"
	"github.com/saeidalz13/submarine-duel/internal/config"
	"github.com/saeidalz13/submarine-duel/models/submarine"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		panic(err)
	}

	// stdout belongs to the referee
	matchID := internal.NewMatchID()
	log.SetOutput(os.Stderr)
	log.SetPrefix(fmt.Sprintf("[match %s] ", internal.ShortID(matchID)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Println("seed:", seed)

	opts := []submarine.Option{
		submarine.WithMatchID(matchID),
		submarine.WithSettings(cfg.Game),
		submarine.WithRand(rand.New(rand.NewSource(seed))),
	}

	if cfg.SpectatorPort != 0 {
		server := api.NewServer(
			api.WithPort(strconv.Itoa(cfg.SpectatorPort)),
			api.WithStage(cfg.Stage),
			api.WithAllowedOrigins(cfg.SpectatorOrigins...),
		)
		go func() {
			if err := server.Run(ctx); err != nil {
				log.Println("spectator feed stopped:", err)
			}
		}()
		opts = append(opts, submarine.WithObserver(server))
	}

	if cfg.DatabaseURL != "" {
		conn := db.MustOpen(cfg.DatabaseDriver, cfg.DatabaseURL)
		defer conn.Close()

		journal := sqlc.NewJournal(sqlc.NewDbManager(sqlc.New(conn)))
		defer journal.Close()
		opts = append(opts, submarine.WithObserver(journal))
	}

	game := submarine.NewGame(opts...)
	if err := game.Run(ctx, os.Stdin, os.Stdout); err != nil {
		log.Println("match aborted:", err)
	}
}
