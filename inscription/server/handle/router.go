package handle

import (
	"github.com/gin-contrib/pprof"
	"github.com/inscription-c/ordinals/inscription/server/handle/middlewares"
	"github.com/inscription-c/ordinals/internal/metrics"
)

func (h *Handler) InitRouter() {
	h.Engine().Use(middlewares.Recovery(), middlewares.Logger(), metrics.HTTP)
	if h.options.enablePProf {
		pprof.Register(h.Engine())
	}
	h.Engine().GET("/metrics", metrics.Handler())
	h.Engine().GET("/block/height", h.BlockHeight)
	h.Engine().GET("/block/:height", h.Block)
	h.Engine().GET("/inscription/:id", h.Inscription)
	h.Engine().GET("/inscriptions/block/:height", h.InscriptionsInBlock)
	h.Engine().GET("/content/:id", h.Content)
	h.Engine().GET("/output/:outpoint", h.Output)
	h.Engine().GET("/supply/:height", h.Supply)
	h.Engine().GET("/sat/:sat", h.Sat)
	h.Engine().GET("/tx/:txid", h.Tx)
	h.Engine().GET("/statistics", h.Statistics)
}
