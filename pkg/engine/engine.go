package engine

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mraditya/chmatrix/pkg/datastructure"
	"github.com/mraditya/chmatrix/pkg/engine/routing"
	"github.com/mraditya/chmatrix/pkg/spatialindex"
	"go.uber.org/zap"
)

const (
	snapIndexPaddingKM = 0.05
	unpackCacheSize    = 1 << 20
)

// Engine bundles the loaded hierarchy, the query engine and the
// snapping index of one deployment.
type Engine struct {
	chRoutingEngine *routing.CHRoutingEngine
	snapIndex       *spatialindex.Rtree
}

func (e *Engine) GetRoutingEngine() *routing.CHRoutingEngine {
	return e.chRoutingEngine
}

func (e *Engine) GetSnapIndex() *spatialindex.Rtree {
	return e.snapIndex
}

// NewEngine loads the preprocessed search graph from graphFilePath and
// builds the runtime query state around it.
func NewEngine(graphFilePath string, logger *zap.Logger) (*Engine, error) {
	logger.Info("starting contraction hierarchies query engine")

	logger.Info("reading contracted graph", zap.String("graphFilePath", graphFilePath))
	ch, err := datastructure.ReadCHGraph(graphFilePath)
	if err != nil {
		return nil, err
	}
	logger.Info("contracted graph loaded",
		zap.Int("nodes", ch.NumberOfNodes()),
		zap.Int("searchEdges", ch.NumberOfEdges()))

	return NewEngineFromCHGraph(ch, logger), nil
}

// NewEngineFromCHGraph builds the runtime state around an already
// constructed hierarchy. used by the preprocessor and by tests.
func NewEngineFromCHGraph(ch *datastructure.CHGraph, logger *zap.Logger) *Engine {
	snapIndex := spatialindex.NewRtree()
	snapIndex.Build(ch.GetGraph(), snapIndexPaddingKM, logger)

	puCache, _ := lru.New[routing.UnpackCacheKey, []datastructure.NodeID](unpackCacheSize)

	return &Engine{
		chRoutingEngine: routing.NewCHRoutingEngine(ch, logger, puCache),
		snapIndex:       snapIndex,
	}
}
