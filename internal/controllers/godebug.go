package controllers

import (
	"net/http"
	"net/http/pprof"

	"github.com/davecgh/go-spew/spew"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/taskroom-project/backend/internal/hub"
	"github.com/taskroom-project/backend/internal/router"
)

var _ router.Controller = (*GoDebugController)(nil)

type GoDebugController struct {
	Hub *hub.Hub
}

func (c *GoDebugController) handleHubDump(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	spew.Fdump(w, c.Hub.Rooms())
}

func (c *GoDebugController) Register(router *mux.Router) {
	zap.L().Warn("enabling /debug endpoints")
	router.HandleFunc("/debug/pprof/", pprof.Index)
	router.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("/debug/hub", c.handleHubDump).Methods(http.MethodGet)
}
