package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/portico-home/portico/internal/httpserver/deps"
	"github.com/portico-home/portico/internal/httpserver/handlers"
	"github.com/portico-home/portico/internal/httpserver/mw"
)

func init() { Register(registerApps) }

func registerApps(r chi.Router, d deps.Deps) {
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/apps.json", handlers.Apps(d))
}
