package metrics

import (
	"context"
	"net/http"

	"economy/events"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Recorder owns the economy's Prometheus instruments. It keeps its own
// registry so tests can build independent instances.
type Recorder struct {
	registry *prometheus.Registry

	balanceTransactions *prometheus.CounterVec
	balanceVolume       *prometheus.CounterVec
	wagerEventsResolved prometheus.Counter
	wagerPayouts        prometheus.Counter
	duelsResolved       prometheus.Counter
	duelPrizes          prometheus.Counter
	scrimsReady         prometheus.Counter
	scrimsResolved      prometheus.Counter
	commands            *prometheus.CounterVec
}

// NewRecorder creates and registers every instrument along with the Go
// runtime and process collectors
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		balanceTransactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      BalanceTransactionsTotal,
			Help:      "Committed balance changes by transaction type",
		}, []string{LabelType}),
		balanceVolume: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      BalanceVolumeTotal,
			Help:      "Absolute currency moved by transaction type",
		}, []string{LabelType}),
		wagerEventsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      WagerEventsResolvedTotal,
			Help:      "Betting events settled",
		}),
		wagerPayouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      WagerPayoutsTotal,
			Help:      "Currency paid to winning stakes",
		}),
		duelsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      DuelsResolvedTotal,
			Help:      "Duels settled",
		}),
		duelPrizes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      DuelPrizesTotal,
			Help:      "Currency paid to duel winners",
		}),
		scrimsReady: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      ScrimsReadyTotal,
			Help:      "Scrims whose rosters filled",
		}),
		scrimsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      ScrimsResolvedTotal,
			Help:      "Scrims settled",
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      CommandsTotal,
			Help:      "Slash commands handled by command and result",
		}, []string{LabelCommand, LabelResult}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.balanceTransactions,
		r.balanceVolume,
		r.wagerEventsResolved,
		r.wagerPayouts,
		r.duelsResolved,
		r.duelPrizes,
		r.scrimsReady,
		r.scrimsResolved,
		r.commands,
	)
	return r
}

// Subscribe attaches the recorder to committed domain events
func (r *Recorder) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventTypeBalanceChange, r.handleEvent)
	bus.Subscribe(events.EventTypeWagerEventResolved, r.handleEvent)
	bus.Subscribe(events.EventTypeDuelResolved, r.handleEvent)
	bus.Subscribe(events.EventTypeScrimReady, r.handleEvent)
	bus.Subscribe(events.EventTypeScrimResolved, r.handleEvent)
	log.Debug("Metrics recorder subscribed to event bus")
}

func (r *Recorder) handleEvent(_ context.Context, event events.Event) {
	switch e := event.(type) {
	case events.BalanceChangeEvent:
		txType := string(e.TransactionType)
		r.balanceTransactions.WithLabelValues(txType).Inc()
		change := e.ChangeAmount
		if change < 0 {
			change = -change
		}
		r.balanceVolume.WithLabelValues(txType).Add(float64(change))
	case events.WagerEventResolvedEvent:
		r.wagerEventsResolved.Inc()
		r.wagerPayouts.Add(float64(e.TotalPaid))
	case events.DuelResolvedEvent:
		r.duelsResolved.Inc()
		r.duelPrizes.Add(float64(e.Prize))
	case events.ScrimReadyEvent:
		r.scrimsReady.Inc()
	case events.ScrimResolvedEvent:
		r.scrimsResolved.Inc()
	}
}

// RecordCommand counts a handled slash command. result is "ok" or an error category.
func (r *Recorder) RecordCommand(command, result string) {
	r.commands.WithLabelValues(command, result).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
