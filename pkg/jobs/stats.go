package jobs

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/feewise/feewise/pkg/backend"
	"github.com/feewise/feewise/pkg/config"
	"github.com/feewise/feewise/pkg/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func init() {
	Register("stats", statsJob{})
}

var (
	feeTypesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "feewise",
		Subsystem: "fee_types",
		Name:      "total",
		Help:      "Total number of fee types.",
	})

	feeTypesPrivate = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "feewise",
		Subsystem: "fee_types",
		Name:      "private",
		Help:      "Number of private fee types.",
	})

	feeTypesGlobal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "feewise",
		Subsystem: "fee_types",
		Name:      "global",
		Help:      "Number of global fee types.",
	})

	feeItemsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "feewise",
		Subsystem: "fee_items",
		Name:      "total",
		Help:      "Total number of fee items.",
	})

	feeItemsAvgAmount = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "feewise",
		Subsystem: "fee_items",
		Name:      "avg_amount_paise",
		Help:      "Average fee item amount in paise.",
	})
)

// statsJob periodically refreshes the aggregate metric gauges.
type statsJob struct{}

// Spec implements Runner.
func (j statsJob) Spec(ctx context.Context) string {
	cfg := config.FromContext(ctx)
	return cfg.Jobs.StatsRefresh
}

// Func implements Runner.
func (j statsJob) Func(ctx context.Context) func() {
	b := backend.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("jobs.stats")
	return func() {
		ftStats, err := b.FeeTypeStats(ctx, nil)
		if err != nil {
			logger.Error("failed to refresh fee type stats", "err", err)
			return
		}

		fiStats, err := b.FeeItemStats(ctx, store.FeeItemStatsFilter{})
		if err != nil {
			logger.Error("failed to refresh fee item stats", "err", err)
			return
		}

		feeTypesTotal.Set(float64(ftStats.Total))
		feeTypesPrivate.Set(float64(ftStats.Private))
		feeTypesGlobal.Set(float64(ftStats.Global))
		feeItemsTotal.Set(float64(fiStats.Total))
		feeItemsAvgAmount.Set(fiStats.AvgAmountPaise)
	}
}
