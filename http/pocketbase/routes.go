// Package pocketbase provides PocketBase routes for the session and NFT REST
// surface. Handlers read path values from the PocketBase router and delegate
// to the shared http.Service.
package pocketbase

import (
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"

	httptxkit "github.com/etherspot/transaction-kit-go/http"
)

// Register mounts the routes of svc while a PocketBase app is serving.
//
// Example usage:
//
//	app := pocketbase.New()
//	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
//		Register(se, svc)
//		return se.Next()
//	})
func Register(se *core.ServeEvent, svc *httptxkit.Service) {
	RegisterRoutes(se.Router, svc)
}

// RegisterRoutes mounts the routes of svc on r.
func RegisterRoutes(r *router.Router[*core.RequestEvent], svc *httptxkit.Service) {
	sessions := r.Group("/sessions")
	sessions.GET("/{address}", func(e *core.RequestEvent) error {
		svc.GetSession(e.Response, e.Request, e.Request.PathValue("address"))
		return nil
	})
	sessions.PUT("/{address}", func(e *core.RequestEvent) error {
		svc.PutSession(e.Response, e.Request, e.Request.PathValue("address"))
		return nil
	})
	sessions.DELETE("/{address}", func(e *core.RequestEvent) error {
		svc.DeleteSession(e.Response, e.Request, e.Request.PathValue("address"))
		return nil
	})

	r.GET("/nfts", func(e *core.RequestEvent) error {
		svc.ListNFTs(e.Response, e.Request)
		return nil
	})
}
