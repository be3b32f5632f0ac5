// Package server assembles the HTTP engine from its parts.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/chatter/pkg/chatter/auth"
	"github.com/mikepea/chatter/pkg/chatter/export"
	"github.com/mikepea/chatter/pkg/chatter/groups"
	"github.com/mikepea/chatter/pkg/chatter/logging"
	"github.com/mikepea/chatter/pkg/chatter/messages"
	"github.com/mikepea/chatter/pkg/chatter/store"
	"github.com/mikepea/chatter/pkg/chatter/users"
	"go.uber.org/zap"
)

// Options carries the transport settings that come from configuration.
type Options struct {
	Messages messages.Options
}

// New builds the gin engine with every route registered against s.
func New(s store.Store, log *zap.Logger, opts Options) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	identities := users.NewService(s, log.Named("users"))
	ledger := groups.NewLedger(s, log.Named("groups"))
	gate := auth.NewGate(identities, ledger, log.Named("auth"))
	msgs := messages.NewLedger(s, log.Named("messages"))

	r := gin.New()
	r.Use(logging.Middleware(log.Named("http")), logging.Recovery(log.Named("http")))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Chat API is running"})
	})

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/health", health)

	api := r.Group("/api")
	{
		api.GET("/health", health)

		users.NewHandler(identities, log.Named("users")).RegisterRoutes(api.Group("/users"))

		groupsGroup := api.Group("/groups")
		groups.NewHandler(ledger, gate, log.Named("groups")).RegisterRoutes(groupsGroup)
		messages.NewHandler(msgs, gate, log.Named("messages"), opts.Messages).RegisterRoutes(groupsGroup)
		export.NewHandler(ledger, msgs, gate, log.Named("export")).RegisterRoutes(groupsGroup)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return r
}
