package routing

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mraditya/chmatrix/pkg/datastructure"
	"go.uber.org/zap"
)

type CHRoutingEngine struct {
	ch     *datastructure.CHGraph
	logger *zap.Logger

	unpackCache *lru.Cache[UnpackCacheKey, []datastructure.NodeID]
}

func NewCHRoutingEngine(ch *datastructure.CHGraph, logger *zap.Logger,
	unpackCache *lru.Cache[UnpackCacheKey, []datastructure.NodeID]) *CHRoutingEngine {
	return &CHRoutingEngine{
		ch:          ch,
		logger:      logger,
		unpackCache: unpackCache,
	}
}

func (e *CHRoutingEngine) GetCHGraph() *datastructure.CHGraph {
	return e.ch
}

func (e *CHRoutingEngine) GetGraph() *datastructure.Graph {
	return e.ch.GetGraph()
}
