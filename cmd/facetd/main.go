package main

import (
	"flag"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/vintermark/facet-engine/pkg/catalog"
	"github.com/vintermark/facet-engine/pkg/common"
	"github.com/vintermark/facet-engine/pkg/engine"
	"github.com/vintermark/facet-engine/pkg/server"
)

var enableProfiling = flag.Bool("profiling", false, "enable profiling endpoints")
var fixturePath = flag.String("fixture", envOr("FIXTURE_PATH", "catalog.json"), "catalog fixture file")
var listenAddress = envOr("LISTEN_ADDR", ":8080")
var debugAddress = envOr("DEBUG_ADDR", ":8081")

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	flag.Parse()
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "facetd").Logger()

	store := catalog.NewMemory()
	if err := store.LoadFixture(*fixturePath); err != nil {
		logger.Fatal().Err(err).Str("path", *fixturePath).Msg("fixture load failed")
	}

	facets := &server.FacetServer{
		Engine: engine.New(store, logger),
		Logger: logger,
	}

	debugMux := http.NewServeMux()
	debugMux.Handle("/metrics", promhttp.Handler())
	if *enableProfiling {
		debugMux.HandleFunc("/debug/pprof/", pprof.Index)
		debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	}
	go func() {
		if err := http.ListenAndServe(debugAddress, debugMux); err != nil {
			logger.Error().Err(err).Msg("debug server failed")
		}
	}()

	srv := &http.Server{
		Addr:              listenAddress,
		Handler:           facets.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	common.RunServerWithShutdown(srv, logger, 15*time.Second)
}
