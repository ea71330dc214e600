package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StageInitializing = iota + 1
	StageCatchup
	StageServing
	StageReorg
	StageStopped
)

func fqn(name string) string {
	return prometheus.BuildFQName("ordinals", "indexer", name)
}

var (
	Stage = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: fqn("stage"),
		Help: "Indexer stage (e.g. initializing, catchup)",
	})

	CurrentHeight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: fqn("current_height"),
		Help: "Height of the last indexed block",
	})

	ChainHeight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: fqn("chain_height"),
		Help: "Block count reported by the node",
	})

	BlockDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    fqn("block_duration"),
			Help:    "Duration of block processing by step",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
		},
		[]string{"step"},
	)

	Inscriptions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: fqn("inscriptions_total"),
		Help: "Inscriptions decoded",
	})

	DecodeFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: fqn("decode_failures_total"),
		Help: "Transactions whose envelopes failed to decode",
	})

	RPCRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: fqn("rpc_retries_total"),
			Help: "Failed node calls that were retried",
		},
		[]string{"method"},
	)

	HttpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    fqn("http_duration"),
			Help:    "HTTP request duration",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1, 5, 15},
		},
		[]string{"method", "path", "status"},
	)
)

func ObserveBlockStep(step string, started time.Time) {
	BlockDuration.WithLabelValues(step).Observe(time.Since(started).Seconds())
}

// HTTP observes request durations labelled by route pattern.
func HTTP(c *gin.Context) {
	started := time.Now()

	c.Next()

	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	HttpDuration.WithLabelValues(
		c.Request.Method,
		path,
		strconv.Itoa(c.Writer.Status()),
	).Observe(time.Since(started).Seconds())
}

// Handler serves the registered metrics.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func init() {
	prometheus.MustRegister(
		Stage,
		CurrentHeight,
		ChainHeight,
		BlockDuration,
		Inscriptions,
		DecodeFailures,
		RPCRetries,
		HttpDuration,
	)
}
