package metrics

const namespace = "elix"

// Metric names
const (
	BalanceTransactionsTotal = "balance_transactions_total"
	BalanceVolumeTotal       = "balance_volume_total"
	WagerEventsResolvedTotal = "wager_events_resolved_total"
	WagerPayoutsTotal        = "wager_payouts_total"
	DuelsResolvedTotal       = "duels_resolved_total"
	DuelPrizesTotal          = "duel_prizes_total"
	ScrimsReadyTotal         = "scrims_ready_total"
	ScrimsResolvedTotal      = "scrims_resolved_total"
	CommandsTotal            = "commands_total"
)

// Label keys
const (
	LabelType    = "type"
	LabelCommand = "command"
	LabelResult  = "result"
)
