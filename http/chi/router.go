// Package chi provides Chi routes for the session and NFT REST surface.
// This package is a thin adapter that extracts path parameters with chi and
// delegates all request handling to the shared http.Service.
package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httptxkit "github.com/etherspot/transaction-kit-go/http"
)

// NewRouter creates a chi router serving all routes of svc.
//
// Example usage:
//
//	store := session.NewStore(session.NewMemoryStore())
//	svc := httptxkit.NewService(store, registry)
//	http.ListenAndServe(":8080", NewRouter(svc))
func NewRouter(svc *httptxkit.Service) chi.Router {
	r := chi.NewRouter()
	Register(r, svc)
	return r
}

// Register mounts the routes of svc on r.
func Register(r chi.Router, svc *httptxkit.Service) {
	r.Route("/sessions/{address}", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			svc.GetSession(w, req, chi.URLParam(req, "address"))
		})
		r.Put("/", func(w http.ResponseWriter, req *http.Request) {
			svc.PutSession(w, req, chi.URLParam(req, "address"))
		})
		r.Delete("/", func(w http.ResponseWriter, req *http.Request) {
			svc.DeleteSession(w, req, chi.URLParam(req, "address"))
		})
	})
	r.Get("/nfts", svc.ListNFTs)
}
