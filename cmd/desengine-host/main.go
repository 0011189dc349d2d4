// Command desengine-host runs a smart-factory simulation behind an HTTP
// control surface: POST /control to steer a running simulation, GET
// /reports to poll its progress, GET /metrics for Prometheus scraping,
// and GET /healthz for liveness checks.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/aosanya/smartfactory-des/desengine"
	"github.com/aosanya/smartfactory-des/internal/enginemetrics"
	"github.com/aosanya/smartfactory-des/internal/factory"
	"github.com/aosanya/smartfactory-des/internal/hostconfig"
	"github.com/aosanya/smartfactory-des/internal/runstore"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "config.yaml", "Path to configuration file")
		addr        = flag.String("addr", "", "Listen address, overrides config (default 127.0.0.1:8080)")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("desengine-host\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Git Commit: %s\n", gitCommit)
		os.Exit(0)
	}

	cfg, err := hostconfig.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Warn("Invalid log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	listenAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	if *addr != "" {
		listenAddr = *addr
	}

	if err := os.MkdirAll(cfg.Store.DataDir, 0o755); err != nil {
		log.WithError(err).Fatal("Failed to create data directory")
	}
	store, err := runstore.Open(cfg.Store.DataDir)
	if err != nil {
		log.WithError(err).Fatal("Failed to open run store")
	}
	defer store.Close()

	log.WithFields(log.Fields{
		"version":    version,
		"build_time": buildTime,
		"git_commit": gitCommit,
		"addr":       listenAddr,
	}).Info("Starting desengine-host")

	h := newHost(cfg, store)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), gin.Logger())
	router.GET("/healthz", h.healthz)
	router.GET("/metrics", gin.WrapH(enginemetrics.Handler()))
	router.POST("/control", h.control)
	router.GET("/reports", h.reports)
	router.POST("/runs", h.startRun)
	router.GET("/runs", h.listRuns)

	if err := router.Run(listenAddr); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

// host holds the single in-process simulation this server drives. A
// production deployment would key this by run ID; one concurrent run is
// enough to demonstrate the control surface.
type host struct {
	cfg       *hostconfig.Config
	store     *runstore.Store
	env       *desengine.Environment
	reportsCh <-chan desengine.ReportMessage
}

func newHost(cfg *hostconfig.Config, store *runstore.Store) *host {
	return &host{cfg: cfg, store: store}
}

func (h *host) healthz(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

func (h *host) startRun(c *gin.Context) {
	if h.env != nil {
		c.JSON(409, gin.H{"error": "a run is already in progress"})
		return
	}

	logger := log.WithField("component", "desengine")
	h.env = desengine.New(logger, time.Sleep)

	settings := desengine.Settings{
		YieldEveryN:     h.cfg.Run.YieldEveryN,
		YieldDurationMs: h.cfg.Run.YieldDurationMs,
		MaxIter:         h.cfg.Run.MaxIter,
	}

	agents := instrument(demoLine())
	done, err := h.env.Run(settings, agents)
	if err != nil {
		h.env = nil
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	h.reportsCh = enginemetrics.ObserveReports(h.env.Reports())

	runID := uuid.New().String()
	started := time.Now().UTC()
	_ = h.store.Put(runstore.RunSummary{
		ID:         runID,
		StartedAt:  started,
		AgentCount: len(agents),
	})

	go func() {
		runErr := <-done
		summary := runstore.RunSummary{
			ID:          runID,
			StartedAt:   started,
			CompletedAt: time.Now().UTC(),
			AgentCount:  len(agents),
		}
		outcome := "ok"
		if runErr != nil {
			summary.Error = runErr.Error()
			outcome = "error"
		}
		enginemetrics.RecordRunOutcome(outcome)
		_ = h.store.Put(summary)
	}()

	c.JSON(202, gin.H{"run_id": runID})
}

func (h *host) control(c *gin.Context) {
	if h.env == nil {
		c.JSON(409, gin.H{"error": "no run in progress"})
		return
	}

	var req struct {
		Kind  string `json:"kind" binding:"required"`
		Value uint64 `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	switch req.Kind {
	case "halt":
		h.env.Halt()
	case "set_yield_every":
		h.env.SetYieldEvery(req.Value)
	case "set_yield_duration_ms":
		h.env.SetYieldDurationMs(req.Value)
	case "set_max_iter":
		h.env.SetMaxIter(req.Value)
	default:
		c.JSON(400, gin.H{"error": "unknown control kind: " + req.Kind})
		return
	}

	c.JSON(202, gin.H{"status": "accepted"})
}

func (h *host) reports(c *gin.Context) {
	if h.reportsCh == nil {
		c.JSON(409, gin.H{"error": "no run in progress"})
		return
	}

	var reports []desengine.ReportMessage
	for {
		select {
		case r := <-h.reportsCh:
			reports = append(reports, r)
		default:
			c.JSON(200, gin.H{"reports": reports})
			return
		}
	}
}

// instrument wraps a slice of agents with enginemetrics counters,
// preserving order.
func instrument(agents []desengine.Agent) []desengine.Agent {
	byID := make(map[uuid.UUID]desengine.Agent, len(agents))
	for _, a := range agents {
		byID[a.ID()] = a
	}
	wrapped := enginemetrics.InstrumentAgents(byID)

	out := make([]desengine.Agent, len(agents))
	for i, a := range agents {
		out[i] = wrapped[a.ID()]
	}
	return out
}

func (h *host) listRuns(c *gin.Context) {
	runs, err := h.store.List()
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"runs": runs})
}

// demoLine wires a small fixed factory line — a station feeding a
// conveyor, plus an independent line-speed sensor — as a ready-to-run
// demonstration. A fuller host would accept a line topology over the
// API instead. Environment.Run seeds every agent with a single nil-arg
// event at time zero, which a Station ignores (it only reacts to
// PartArrived); a real deployment would inject parts through a
// dedicated endpoint rather than rely on that seed.
func demoLine() []desengine.Agent {
	sink := uuid.New()
	belt := factory.NewConveyor("belt-1", 5, sink)
	beltID := belt.ID()
	station := factory.NewStation("press-1", factory.StationConfig{ProcessingTicks: 3, Next: &beltID})
	sensor := factory.NewSensor("line-speed", 20, func() float64 { return 1.0 }, nil)

	return []desengine.Agent{sensor, station, belt, &sinkAgent{id: sink}}
}

// sinkAgent discards whatever reaches the end of the demo line.
type sinkAgent struct{ id uuid.UUID }

func (s *sinkAgent) ID() uuid.UUID { return s.id }
func (s *sinkAgent) Handle(uint64, any) []desengine.ScheduledEvent {
	return nil
}
