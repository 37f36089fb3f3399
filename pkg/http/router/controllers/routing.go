package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/osmroute/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	graphService   GraphInfoService
	log            *zap.Logger
}

func New(routingService RoutingService, graphService GraphInfoService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		graphService:   graphService,
		log:            log,
	}

}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/hello", api.hello)
	group.GET("/graph", api.graphInfo)
	group.GET("/route", api.route)
	group.GET("/nearestNode", api.nearestNode)
}

func (api *routingAPI) hello(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	vertices, edges, _ := api.graphService.GraphInfo()

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": fmt.Sprintf("HI! nodes: %d, edges: %d",
		vertices, edges)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) graphInfo(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	vertices, edges, bbox := api.graphService.GraphInfo()

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewGraphResponse(vertices, edges,
		bbox.GetMinLat(), bbox.GetMinLon(), bbox.GetMaxLat(), bbox.GetMaxLon())}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) route(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request routeRequest
		err     error
	)

	query := r.URL.Query()

	request.Source, err = strconv.ParseInt(query.Get("source"), 10, 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("source is required and must be a valid osm node id"))
		return
	}
	request.Target, err = strconv.ParseInt(query.Get("target"), 10, 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("target is required and must be a valid osm node id"))
		return
	}
	request.Vehicle = query.Get("vehicle")
	request.Metric = query.Get("metric")
	if request.Metric == "" {
		request.Metric = "time"
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

	begin := time.Now()
	eta, dist, path, pathPolyline, err := api.routingService.Route(request.Source, request.Target,
		request.Vehicle, request.Metric)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	duration := float64(time.Since(begin).Microseconds()) / 1000.0

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteQueryResponse(duration,
		NewRouteResponse(eta, dist, path, pathPolyline))}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) nearestNode(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearestNodeRequest
		err     error
	)

	query := r.URL.Query()

	request.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}
	request.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
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

	osmNodeId, nodeLat, nodeLon, err := api.routingService.NearestNode(request.Lat, request.Lon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewNearestNodeResponse(osmNodeId,
		nodeLat, nodeLon)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
