// Package gin provides Gin routes for the session and NFT REST surface.
// This package is a thin adapter that translates gin.Context to stdlib http
// patterns and delegates all request handling to the shared http.Service.
package gin

import (
	"github.com/gin-gonic/gin"

	httptxkit "github.com/etherspot/transaction-kit-go/http"
)

// Register mounts the routes of svc on r.
//
// Example usage:
//
//	r := gin.Default()
//	Register(r, httptxkit.NewService(store, registry))
//	r.Run(":8080")
func Register(r gin.IRoutes, svc *httptxkit.Service) {
	r.GET("/sessions/:address", func(c *gin.Context) {
		svc.GetSession(c.Writer, c.Request, c.Param("address"))
	})
	r.PUT("/sessions/:address", func(c *gin.Context) {
		svc.PutSession(c.Writer, c.Request, c.Param("address"))
	})
	r.DELETE("/sessions/:address", func(c *gin.Context) {
		svc.DeleteSession(c.Writer, c.Request, c.Param("address"))
	})
	r.GET("/nfts", func(c *gin.Context) {
		svc.ListNFTs(c.Writer, c.Request)
	})
}
