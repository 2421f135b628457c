package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIVersion is the path segment every API route is served under
const APIVersion = "v1"

// Route binds one method and path, relative to its group, to a handler
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func get(path string, h gin.HandlerFunc) Route { return Route{http.MethodGet, path, h} }
func post(path string, h gin.HandlerFunc) Route { return Route{http.MethodPost, path, h} }
func put(path string, h gin.HandlerFunc) Route { return Route{http.MethodPut, path, h} }
func patch(path string, h gin.HandlerFunc) Route { return Route{http.MethodPatch, path, h} }
func remove(path string, h gin.HandlerFunc) Route { return Route{http.MethodDelete, path, h} }

// Group is a resource mounted at Prefix. Middleware runs after the API
// level middleware and only for this group's routes.
type Group struct {
	Prefix     string
	Middleware []gin.HandlerFunc
	Routes     []Route
}

func (g Group) mount(parent *gin.RouterGroup) {
	rg := parent.Group(g.Prefix, g.Middleware...)
	for _, route := range g.Routes {
		rg.Handle(route.Method, route.Path, route.Handler)
	}
}

// Router collects groups and mounts them under /api/<version> on Setup
type Router struct {
	engine     *gin.Engine
	middleware []gin.HandlerFunc
	groups     []Group
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{engine: engine}
}

func (r *Router) BasePath() string {
	return "/api/" + APIVersion
}

// Use adds middleware to the API group. Routes registered directly on the
// engine, such as swagger, are not affected.
func (r *Router) Use(middleware ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

func (r *Router) Mount(groups ...Group) *Router {
	r.groups = append(r.groups, groups...)
	return r
}

func (r *Router) Setup() {
	api := r.engine.Group(r.BasePath(), r.middleware...)
	for _, g := range r.groups {
		g.mount(api)
	}
}
