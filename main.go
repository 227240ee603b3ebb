package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wfunc/roomserver/broadcast"
	"github.com/wfunc/roomserver/config"
	"github.com/wfunc/roomserver/logger"
	"github.com/wfunc/roomserver/models"
	"github.com/wfunc/roomserver/monitor"
	"github.com/wfunc/roomserver/persistence"
	"github.com/wfunc/roomserver/server"
	"github.com/wfunc/roomserver/services"
	"github.com/wfunc/roomserver/session"
	"github.com/wfunc/roomserver/timer"
	"github.com/wfunc/roomserver/world"
)

func main() {
	// Initialize logger
	logger.Init()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the document store
	store, err := newStore(cfg)
	if err != nil {
		logger.Log.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer store.Close()

	// Wire the world context
	sessionManager := session.NewManager()
	broadcaster := broadcast.NewSessionBroadcaster(sessionManager)
	saver := services.NewSaveService(store)
	mon := monitor.NewMonitor("roomserver")
	mon.StartServer(cfg.Server.MetricsAddress)

	w := world.NewWorld(broadcaster, saver, mon)
	w.Load(loadDocuments(store))

	loop := timer.NewLoop()
	gameServer := server.NewGameServer(
		cfg.Server.HTTPAddress,
		cfg.Server.RPCAddress,
		w, loop, sessionManager, mon,
		time.Duration(cfg.Persistence.AutosaveSeconds)*time.Second,
	)

	// One synchronous best-effort flush before terminating.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Log.Infof("Received %v, flushing state before exit", sig)

		var players *models.PlayersDocument
		var colliders *models.CollidersDocument
		var objects *models.ObjectsDocument
		loop.Call(func() {
			players = w.BuildPlayersDocument()
			colliders = w.BuildCollidersDocument()
			objects = w.BuildObjectsDocument()
		})
		saver.Flush(players, colliders, objects)

		gameServer.Shutdown()
		store.Close()
		logger.Sync()
		os.Exit(0)
	}()

	// Start Server
	logger.Log.Infof("Starting room server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}

func newStore(cfg *config.Config) (persistence.Store, error) {
	pg := cfg.Persistence.Postgres
	switch cfg.Persistence.Backend {
	case "", "file":
		return persistence.NewFileStore(cfg.Persistence.DataDir)
	case "postgres":
		return persistence.NewPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	case "gorm":
		return persistence.NewGormPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	default:
		return nil, errors.New("unknown persistence backend: " + cfg.Persistence.Backend)
	}
}

// loadDocuments reads the three persisted documents; a missing document
// simply starts empty.
func loadDocuments(store persistence.Store) (*models.PlayersDocument, *models.CollidersDocument, *models.ObjectsDocument) {
	players, err := store.LoadPlayers()
	if err != nil && !errors.Is(err, persistence.ErrNotFound) {
		logger.Log.Warnf("Failed to load players document: %v", err)
	}
	colliders, err := store.LoadColliders()
	if err != nil && !errors.Is(err, persistence.ErrNotFound) {
		logger.Log.Warnf("Failed to load colliders document: %v", err)
	}
	objects, err := store.LoadObjects()
	if err != nil && !errors.Is(err, persistence.ErrNotFound) {
		logger.Log.Warnf("Failed to load objects document: %v", err)
	}
	return players, colliders, objects
}
