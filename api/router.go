package api

import (
	"net/http"

	"github.com/aburakaktas/host-website-flyer-generator/constant"
	appLogger "github.com/aburakaktas/host-website-flyer-generator/infrastructure/logger"
	"github.com/aburakaktas/host-website-flyer-generator/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	appMiddleware "github.com/aburakaktas/host-website-flyer-generator/api/middleware"
)

// Router represents the application router
type Router struct {
	handler *Handler
	router  *chi.Mux
}

// NewRouter creates a new router
func NewRouter(handler *Handler) *Router {
	r := chi.NewRouter()

	// Middleware setup
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(appMiddleware.RequestLogger())

	return &Router{
		handler: handler,
		router:  r,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() {
	appLogger.Info(constant.MsgSettingUpRoutes, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
	})

	// API routes
	r.router.Post(constant.RouteCreateFlyer, r.handler.CreateFlyer)
	r.router.Post(constant.RouteGeneratePDF, r.handler.GeneratePDF)
	r.router.Post(constant.RouteShare, r.handler.CreateShare)
	r.router.Get(constant.RouteShare, r.handler.RetrieveShare)

	// Front-end pages and static assets
	r.router.Get(constant.RouteIndexPage, web.ServePage("index.html"))
	r.router.Get(constant.RouteSharePage, web.ServePage("share.html"))
	r.router.Handle(constant.RouteStatic, web.StaticHandler())

	// Healthcheck
	r.router.Get(constant.RouteHealthcheck, func(w http.ResponseWriter, req *http.Request) {
		appLogger.CtxDebug(req.Context(), constant.MsgHealthcheckRequest, appLogger.LoggerInfo{
			ContextFunction: constant.CtxRouter,
		})

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(constant.MsgHealthy))
	})
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
