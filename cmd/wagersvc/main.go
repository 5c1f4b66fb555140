package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	"github.com/shopspring/decimal"

	config "github.com/greenside/wager-services/configs"
	nats "github.com/greenside/wager-services/internal/nats"
	"github.com/greenside/wager-services/internal/wagersvc/broker"
	"github.com/greenside/wager-services/internal/wagersvc/db"
	handlers "github.com/greenside/wager-services/internal/wagersvc/handlers"
	"github.com/greenside/wager-services/internal/wagersvc/service"
	"github.com/greenside/wager-services/internal/wagersvc/store"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "wager"

var instanceId string

func init() {
	config.Logging(SERVICE_NAME + "_service")
	config.LoadEnv(SERVICE_NAME)
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
}

// settlement caps guard finalize against fat-finger bets; env overridable
func settlementCaps() (decimal.Decimal, decimal.Decimal) {
	perCap := decimal.NewFromInt(10000)
	aggCap := decimal.NewFromInt(100000)
	if v := os.Getenv("MAX_SETTLEMENT_AMOUNT"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			log.Fatalf("Invalid MAX_SETTLEMENT_AMOUNT value: %v", err)
		}
		perCap = d
	}
	if v := os.Getenv("MAX_ROUND_SETTLEMENT_TOTAL"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			log.Fatalf("Invalid MAX_ROUND_SETTLEMENT_TOTAL value: %v", err)
		}
		aggCap = d
	}
	return perCap, aggCap
}

func main() {

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	roundStore := store.NewRoundStore(dbpool)
	holeStore := store.NewHoleStore(dbpool)
	playerStore := store.NewPlayerStore(dbpool)
	gameStore := store.NewGameStore(dbpool)
	settlementStore := store.NewSettlementStore(dbpool)

	roundService := service.NewRoundService(roundStore, holeStore, playerStore, gameStore)
	settlementService := service.NewSettlementService(settlementStore)

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// post-commit event publisher
	b := broker.NewBroker(n.Conn)

	heartbeatStop := make(chan struct{})
	b.StartHeartbeat(instanceId, 30*time.Second, heartbeatStop)

	perCap, aggCap := settlementCaps()
	finalizeService := service.NewFinalizeService(roundService, settlementStore, b, perCap, aggCap)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(finalizeService, roundService, settlementService)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("WAGER_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	close(heartbeatStop)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
