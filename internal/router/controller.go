package router

import (
	"github.com/gorilla/mux"
)

// Controller is a group of endpoints that installs itself on the router.
type Controller interface {
	Register(router *mux.Router)
}
