package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"github.com/mraditya/chmatrix/pkg/datastructure"
	helper "github.com/mraditya/chmatrix/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	matrixService  MatrixService
	routingService RoutingService
	log            *zap.Logger
}

func New(matrixService MatrixService, routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		matrixService:  matrixService,
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.POST("/table", api.table)
	group.GET("/computeRoutes", api.shortestPath)
}

// table godoc
//
//	@Summary		duration matrix between sources and destinations
//	@Description	computes the travel-time matrix between every source and every destination coordinate
//	@Accept			json
//	@Produce		json
//	@Param			body	body		tableRequest	true	"sources and destinations"
//	@Success		200		{object}	tableResponse
//	@Router			/table [post]
func (api *routingAPI) table(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request tableRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	sources := make([]datastructure.Coordinate, len(request.Sources))
	for i, c := range request.Sources {
		sources[i] = datastructure.Coordinate{Lat: c.Lat, Lon: c.Lon}
	}
	destinations := make([]datastructure.Coordinate, len(request.Destinations))
	for i, c := range request.Destinations {
		destinations[i] = datastructure.Coordinate{Lat: c.Lat, Lon: c.Lon}
	}

	durations, distances, snappedSources, snappedDestinations, err := api.matrixService.Table(
		sources, destinations, request.WithDistances)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	response := tableResponse{
		Durations:           durations,
		Distances:           distances,
		SnappedSources:      toCoordinateDtos(snappedSources),
		SnappedDestinations: toCoordinateDtos(snappedDestinations),
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": response}, make(http.Header)); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// shortestPath godoc
//
//	@Summary		shortest path between two coordinates
//	@Produce		json
//	@Param			origin_lat		query		number	true	"origin latitude"
//	@Param			origin_lon		query		number	true	"origin longitude"
//	@Param			destination_lat	query		number	true	"destination latitude"
//	@Param			destination_lon	query		number	true	"destination longitude"
//	@Success		200				{object}	shortestPathResponse
//	@Router			/computeRoutes [get]
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request shortestPathRequest
		err     error
	)

	query := r.URL.Query()

	request.OriginLat, err = strconv.ParseFloat(query.Get("origin_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lat is required and must be a valid float"))
		return
	}
	request.OriginLon, err = strconv.ParseFloat(query.Get("origin_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lon is required and must be a valid float"))
		return
	}
	request.DestinationLat, err = strconv.ParseFloat(query.Get("destination_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lat is required and must be a valid float"))
		return
	}
	request.DestinationLon, err = strconv.ParseFloat(query.Get("destination_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lon is required and must be a valid float"))
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	eta, dist, pathPolyline, err := api.routingService.ShortestPath(request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewShortestPathResponse(eta, dist, pathPolyline)}, make(http.Header)); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func toCoordinateDtos(coords []datastructure.Coordinate) []coordinateDto {
	dtos := make([]coordinateDto, len(coords))
	for i, c := range coords {
		dtos[i] = coordinateDto{Lat: c.Lat, Lon: c.Lon}
	}
	return dtos
}
