package controllers

type coordinateDto struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

type tableRequest struct {
	Sources       []coordinateDto `json:"sources" validate:"required,min=1,max=1000,dive"`
	Destinations  []coordinateDto `json:"destinations" validate:"required,min=1,max=1000,dive"`
	WithDistances bool            `json:"with_distances"`
}

type tableResponse struct {
	Durations           [][]*float64    `json:"durations"`
	Distances           [][]*float64    `json:"distances,omitempty"`
	SnappedSources      []coordinateDto `json:"snapped_sources"`
	SnappedDestinations []coordinateDto `json:"snapped_destinations"`
}

type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"required,min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"required,min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"required,min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"required,min=-180,max=180"`
}

type shortestPathResponse struct {
	Eta  float64 `json:"eta"`
	Path string  `json:"path"`
	Dist float64 `json:"distance"`
}

func NewShortestPathResponse(eta, dist float64, path string) shortestPathResponse {
	return shortestPathResponse{
		Eta:  eta,
		Path: path,
		Dist: dist,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
