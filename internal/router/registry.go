package router

import "github.com/gin-gonic/gin"

// Module is a feature area (auth, users, tickets) that mounts its own routes
// on the shared /api group. Modules attach their own middleware; the registry
// only owns group-wide concerns.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects modules and mounts them under /api in one pass during
// startup.
type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

// Use attaches middleware to the /api group. Call before RegisterAll so
// every module route passes through it.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.API.Use(mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll mounts every added module.
func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
