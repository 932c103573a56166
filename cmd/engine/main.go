package main

import (
	"context"
	"flag"
	"runtime"

	"github.com/mraditya/chmatrix/pkg/engine"
	"github.com/mraditya/chmatrix/pkg/http"
	"github.com/mraditya/chmatrix/pkg/http/usecases"
	"github.com/mraditya/chmatrix/pkg/logger"
	"github.com/mraditya/chmatrix/pkg/util"
	"go.uber.org/zap"
)

var (
	graphFile    = flag.String("graph_file", "./data/contracted.graph", "preprocessed contracted graph file")
	searchRadius = flag.Float64("snap_search_radius", 0.04, "snapping search radius in km")
	useRateLimit = flag.Bool("rate_limit", false, "enable per-client rate limiting")
	numWorkers   = flag.Int("matrix_workers", runtime.NumCPU(), "parallel workers of one matrix request")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		logger.Warn("no config file found, using defaults", zap.Error(err))
	}

	routingEngine, err := engine.NewEngine(*graphFile, logger)
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)

	matrixService := usecases.NewMatrixService(logger, routingEngine.GetRoutingEngine(),
		routingEngine.GetSnapIndex(), *searchRadius, *numWorkers)
	routingService := usecases.NewRoutingService(logger, routingEngine.GetRoutingEngine(),
		routingEngine.GetSnapIndex(), *searchRadius)

	ctx, cancel := context.WithCancel(context.Background())
	if _, err := api.Use(ctx, logger, *useRateLimit, matrixService, routingService); err != nil {
		panic(err)
	}

	signal := http.GracefulShutdown()

	logger.Info("chmatrix server stopped", zap.String("signal", signal.String()))
	cancel()
}
