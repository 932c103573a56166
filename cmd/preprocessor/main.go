package main

import (
	"flag"

	"github.com/mraditya/chmatrix/pkg/contractor"
	"github.com/mraditya/chmatrix/pkg/logger"
	"github.com/mraditya/chmatrix/pkg/osmparser"
)

var (
	mapFile = flag.String("map_file", "./data/washington.osm.pbf", "openstreetmap pbf extract")
	outFile = flag.String("out_file", "./data/contracted.graph", "output contracted graph file")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	osmParser := osmparser.NewOsmParser()
	graph, err := osmParser.Parse(*mapFile, logger)
	if err != nil {
		panic(err)
	}

	ch := contractor.NewContractor(graph, logger).Contract()

	if err := ch.WriteCHGraph(*outFile); err != nil {
		panic(err)
	}

	logger.Sugar().Infof("preprocessing completed, contracted graph written to %s", *outFile)
}
