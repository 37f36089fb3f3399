package controllers

type routeRequest struct {
	Source  int64  `json:"source" validate:"required"`
	Target  int64  `json:"target" validate:"required"`
	Vehicle string `json:"vehicle"`
	Metric  string `json:"metric"`
}

type routeResponse struct {
	Dist         float64     `json:"distance"`
	Eta          float64     `json:"time"`
	Path         [][]float64 `json:"path"`
	PathPolyline string      `json:"path_polyline"`
}

func NewRouteResponse(eta, dist float64, path [][]float64, pathPolyline string) routeResponse {
	return routeResponse{
		Dist:         dist,
		Eta:          eta,
		Path:         path,
		PathPolyline: pathPolyline,
	}
}

type routeQueryResponse struct {
	// Duration is the wall time of the search in milliseconds, what the
	// client sees minus transport overhead.
	Duration float64       `json:"duration"`
	Route    routeResponse `json:"route"`
}

func NewRouteQueryResponse(durationMs float64, route routeResponse) routeQueryResponse {
	return routeQueryResponse{
		Duration: durationMs,
		Route:    route,
	}
}

type nearestNodeRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

type nearestNodeResponse struct {
	OsmNodeId int64   `json:"osm_node_id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

func NewNearestNodeResponse(osmNodeId int64, lat, lon float64) nearestNodeResponse {
	return nearestNodeResponse{
		OsmNodeId: osmNodeId,
		Lat:       lat,
		Lon:       lon,
	}
}

type graphResponse struct {
	Vertices int     `json:"vertices"`
	Edges    int     `json:"edges"`
	MinLat   float64 `json:"min_lat"`
	MinLon   float64 `json:"min_lon"`
	MaxLat   float64 `json:"max_lat"`
	MaxLon   float64 `json:"max_lon"`
}

func NewGraphResponse(vertices, edges int, minLat, minLon, maxLat, maxLon float64) graphResponse {
	return graphResponse{
		Vertices: vertices,
		Edges:    edges,
		MinLat:   minLat,
		MinLon:   minLon,
		MaxLat:   maxLat,
		MaxLon:   maxLon,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
