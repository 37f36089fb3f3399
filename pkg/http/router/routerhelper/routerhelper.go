package routerhelper

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup hang a shared path prefix (e.g. "/api") in front of every route
// registered through it.
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{
		router: router,
		prefix: prefix,
	}
}

func (rg *RouteGroup) GET(path string, handle httprouter.Handle) {
	rg.router.GET(rg.prefix+path, handle)
}

func (rg *RouteGroup) POST(path string, handle httprouter.Handle) {
	rg.router.POST(rg.prefix+path, handle)
}

func (rg *RouteGroup) DELETE(path string, handle httprouter.Handle) {
	rg.router.DELETE(rg.prefix+path, handle)
}

func (rg *RouteGroup) Handler(method, path string, handler http.Handler) {
	rg.router.Handler(method, rg.prefix+path, handler)
}
