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
	log "github.com/sirupsen/logrus"

	config "github.com/greenside/wager-services/configs"
	"github.com/greenside/wager-services/internal/db"
	nats "github.com/greenside/wager-services/internal/nats"

	"github.com/greenside/wager-services/internal/statsvc/broker"
	"github.com/greenside/wager-services/internal/statsvc/routes"
	"github.com/greenside/wager-services/internal/statsvc/store"
	wagerbroker "github.com/greenside/wager-services/internal/wagersvc/broker"
)

const SERVICE_NAME = "stats"

func init() {
	instanceId := "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	// Connect to MongoDB
	database, cancelDB, err := db.ConnectToDB()
	if err != nil {
		log.Errorf("Error: unable to connect to MongoDB %v", err)
		os.Exit(0)
	}
	defer cancelDB()
	log.Printf("MongoDB connection established successfully")

	resultStore := store.NewResultStore(database)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndex()
	if err := resultStore.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Error: unable to ensure result indexes %v", err)
	}

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// Consume finalized round results into the career archive
	b := broker.NewBroker(n.Conn, resultStore)
	sub, err := b.SubscribeRoundResults(wagerbroker.TopicRoundResults)
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(0)
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Initialize routes
	routes.InitAuth()
	routes.SetRoutes(r, resultStore)

	server := &http.Server{
		Addr:         ":" + os.Getenv("STATS_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

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

	sub.Unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
