package finlit

import (
	"github.com/francocalvo/finlit/date"
)

// Dashboard computes the dashboards of a ledger under a configuration, as of
// a day. Valuations and projections go through the cache.
type Dashboard struct {
	Ledger *Ledger
	Config *Config
	Cache  *Cache
	Today  date.Date
}

// NewDashboard returns the dashboard of l as of today in the configured
// timezone. A nil cache is replaced with a fresh one.
func NewDashboard(l *Ledger, cfg *Config, cache *Cache) *Dashboard {
	if cache == nil {
		cache = NewCache()
	}
	return &Dashboard{Ledger: l, Config: cfg, Cache: cache, Today: cfg.Today()}
}

// Metrics returns the trailing metrics ending at the start of the current
// month.
func (d *Dashboard) Metrics() (Metrics, error) {
	return TrailingMetrics(d.Ledger, d.Config.MetricsOptions(d.Today))
}

// Params returns the configured trajectory parameters completed with the
// trailing metrics.
func (d *Dashboard) Params() (TrajectoryParams, error) {
	m, err := d.Metrics()
	if err != nil {
		return TrajectoryParams{}, err
	}
	return d.Config.Trajectory.WithMetrics(m), nil
}

// History returns the valuation series in the reporting currency, restricted
// to the accounts under prefix when it is not empty. A zero from defaults to
// the configured first month and a zero to defaults to the dashboard day.
func (d *Dashboard) History(from, to date.Date, sampling date.Period, prefix string) (ValuationSeries, error) {
	if from.IsZero() {
		from = d.Config.Trajectory.FirstDate()
	}
	if to.IsZero() {
		to = d.Today
	}
	opts := HistoryOptions{From: from, To: to, Sampling: sampling, Currency: d.Config.Currency}
	return d.Cache.Valuation(d.Ledger, opts, prefix)
}

// Projection returns the four scenario projections merged with the monthly
// net worth since the first configured month.
func (d *Dashboard) Projection() (ProjectionTable, error) {
	p, err := d.Params()
	if err != nil {
		return ProjectionTable{}, err
	}
	historical, err := d.History(p.FirstDate(), d.Today, date.Monthly, "")
	if err != nil {
		return ProjectionTable{}, err
	}
	return d.Cache.Projection(d.Ledger, p, historical, d.Today), nil
}

// CoastFire returns the Coast FIRE curve and the parameters it was built with.
func (d *Dashboard) CoastFire() ([]CoastFirePoint, TrajectoryParams, error) {
	p, err := d.Params()
	if err != nil {
		return nil, p, err
	}
	return BuildCoastFire(p, d.Today), p, nil
}

// Ratios returns the monthly expense ratios.
func (d *Dashboard) Ratios() []RatioPoint {
	return ExpenseRatios(d.Ledger, d.Config.RatioOptions())
}

// MonthExpenses returns the spending of the current month by category.
func (d *Dashboard) MonthExpenses() []CategoryTotal {
	return ExpensesByCategory(d.Ledger, d.Config.Currency, date.NewRange(d.Today, date.Monthly))
}

// Allocation returns the allocation of the investment portfolio on a day,
// the dashboard day when zero.
func (d *Dashboard) Allocation(on date.Date) (*Allocation, error) {
	if on.IsZero() {
		on = d.Today
	}
	return NewAllocation(d.Ledger, d.Config.InvestmentPrefix, d.Config.Currency, on)
}
