package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for banking operations.
type Metrics struct {
	// Customer metrics
	CustomersRegistered prometheus.Counter
	AccountsOpened      *prometheus.CounterVec

	// Operation metrics
	Deposits             prometheus.Counter
	Withdrawals          prometheus.Counter
	Transfers            prometheus.Counter
	InterestApplications prometheus.Counter
	OperationErrors      *prometheus.CounterVec
	TransactionAmount    prometheus.Histogram
}

// New creates all metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CustomersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "minibank_customers_registered_total",
			Help: "Total number of customers registered",
		}),
		AccountsOpened: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minibank_accounts_opened_total",
				Help: "Total number of accounts opened by type",
			},
			[]string{"type"},
		),
		Deposits: factory.NewCounter(prometheus.CounterOpts{
			Name: "minibank_deposits_total",
			Help: "Total number of successful deposits",
		}),
		Withdrawals: factory.NewCounter(prometheus.CounterOpts{
			Name: "minibank_withdrawals_total",
			Help: "Total number of successful withdrawals",
		}),
		Transfers: factory.NewCounter(prometheus.CounterOpts{
			Name: "minibank_transfers_total",
			Help: "Total number of successful transfers",
		}),
		InterestApplications: factory.NewCounter(prometheus.CounterOpts{
			Name: "minibank_interest_applications_total",
			Help: "Total number of interest applications across accounts",
		}),
		OperationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minibank_operation_errors_total",
				Help: "Total number of rejected operations by operation and reason",
			},
			[]string{"operation", "reason"},
		),
		TransactionAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "minibank_transaction_amount",
			Help:    "Amounts moved by deposits, withdrawals and transfers",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
	}
}
