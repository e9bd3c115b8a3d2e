package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "unibot"

var (
	BotUpdates = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "updates_total", Help: "Processed telegram updates",
	})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "handler_errors_total", Help: "Handler errors",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
	Lookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "lookups_total", Help: "Credential and schedule lookups by outcome",
	}, []string{"kind", "result"})
	DataReloads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "data_reloads_total", Help: "Source data (re)loads",
	}, []string{"result"})
	DataRecords = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Name: "data_records", Help: "Rows in the current data snapshot",
	}, []string{"source"})
	LLMRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "llm_requests_total", Help: "Language model calls",
	}, []string{"result"})
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "http_requests_total", Help: "Web API requests",
	}, []string{"route", "code"})
	TelegramErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "telegram_errors_total", Help: "Failed Bot API calls",
	}, []string{"method", "kind"})
)

func init() {
	prometheus.MustRegister(BotUpdates, HandlerErrors, DBPing,
		Lookups, DataReloads, DataRecords, LLMRequests, HTTPRequests, TelegramErrors)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

// ObserveLookup: result равен "ok" или коду доменной ошибки.
func ObserveLookup(kind, result string) { Lookups.WithLabelValues(kind, result).Inc() }
