// Package dashboard ties the server client to the view state: it loads and
// refreshes ticker data, forwards user actions to the view and exports what
// the view currently holds.
package dashboard

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dyike/indexstats/config"
	"github.com/dyike/indexstats/internal/export"
	"github.com/dyike/indexstats/internal/models"
	"github.com/dyike/indexstats/internal/table"
)

const (
	MsgLoadFailed    = "Failed to load data. Please try again."
	MsgRefreshFailed = "Failed to refresh data. Please try again."

	loadingText = "Loading market data..."
)

// Source is the server the dashboard reads from.
type Source interface {
	FetchTickerData(ctx context.Context) (*models.Envelope, error)
	RefreshData(ctx context.Context) (*models.RefreshResult, error)
}

// Alerter shows a message the user has to acknowledge.
type Alerter interface {
	Alert(message string)
}

// Indicator is shown while a load is in flight.
type Indicator interface {
	Start(text string)
	Stop()
}

// RefreshError carries the message of a refresh the server did not accept.
type RefreshError struct {
	Status  string
	Message string
}

func (e *RefreshError) Error() string {
	return "Error: " + e.Message
}

type Dashboard struct {
	source   Source
	view     *table.View
	exporter *export.Exporter
	alerter  Alerter
	loading  Indicator
	logger   logrus.FieldLogger

	scheduler *scheduler
	onReload  func(table.Snapshot)
}

type Option func(*Dashboard)

func WithAlerter(a Alerter) Option {
	return func(d *Dashboard) {
		if a != nil {
			d.alerter = a
		}
	}
}

func WithIndicator(i Indicator) Option {
	return func(d *Dashboard) {
		if i != nil {
			d.loading = i
		}
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(d *Dashboard) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func New(source Source, view *table.View, exporter *export.Exporter, opts ...Option) *Dashboard {
	d := &Dashboard{
		source:   source,
		view:     view,
		exporter: exporter,
		alerter:  nopAlerter{},
		loading:  nopIndicator{},
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load fetches the ticker data and applies it to the view. On failure the
// view keeps whatever it showed before and the user is alerted.
func (d *Dashboard) Load(ctx context.Context) error {
	d.loading.Start(loadingText)
	env, err := d.source.FetchTickerData(ctx)
	d.loading.Stop()
	if err != nil {
		d.logger.WithError(err).Error("Error fetching data")
		d.alerter.Alert(MsgLoadFailed)
		return err
	}

	d.view.ApplyEnvelope(env)
	if env.NoData() {
		d.logger.WithField("message", env.Message).Info("Server has no ticker data")
	} else {
		d.logger.WithFields(logrus.Fields{
			"generated_on": env.GeneratedOn,
			"tickers":      len(env.Tickers),
		}).Debug("Ticker data loaded")
	}
	return nil
}

// Refresh asks the server to regenerate its data and loads it once the
// server reports success.
func (d *Dashboard) Refresh(ctx context.Context) error {
	result, err := d.source.RefreshData(ctx)
	if err != nil {
		d.logger.WithError(err).Error("Error refreshing data")
		d.alerter.Alert(MsgRefreshFailed)
		return err
	}
	if !result.Success() {
		refreshErr := &RefreshError{Status: result.Status, Message: result.Message}
		d.logger.WithField("status", result.Status).Warn(refreshErr.Error())
		d.alerter.Alert(refreshErr.Error())
		return refreshErr
	}

	d.logger.WithField("message", result.Message).Info("Server data refreshed")
	return d.Load(ctx)
}

func (d *Dashboard) Search(query string) {
	d.view.Filter(query)
}

func (d *Dashboard) Sort(column int) (table.Direction, error) {
	return d.view.Sort(column)
}

func (d *Dashboard) ToggleTheme() bool {
	return d.view.ToggleTheme()
}

func (d *Dashboard) Snapshot() table.Snapshot {
	return d.view.Snapshot()
}

// ApplySettings updates the theme and sort mode from cfg without touching
// the rows.
func (d *Dashboard) ApplySettings(cfg *config.Config) {
	d.view.SetDark(cfg.Theme == config.ThemeDark)
	d.view.SetSortMode(SortModeFor(cfg.SortMode))
}

// ExportCSV writes every row, visible or not, in the current order.
func (d *Dashboard) ExportCSV() (*export.Result, error) {
	return d.export("csv", d.exporter.CSV)
}

// ExportPDF writes every row, visible or not, in the current order.
func (d *Dashboard) ExportPDF() (*export.Result, error) {
	return d.export("pdf", d.exporter.PDF)
}

func (d *Dashboard) export(kind string, write func([][]string) (*export.Result, error)) (*export.Result, error) {
	result, err := write(d.view.Snapshot().Cells())
	if err != nil {
		d.logger.WithError(err).WithField("format", kind).Error("Export failed")
		return nil, err
	}
	d.logger.WithFields(logrus.Fields{
		"format": kind,
		"path":   result.Path,
		"rows":   result.Rows,
	}).Info("Export written")
	return result, nil
}

// SortModeFor maps a config sort mode to the view's sort mode.
func SortModeFor(mode string) table.SortMode {
	if mode == config.SortModePerColumn {
		return table.SortPerColumn
	}
	return table.SortShared
}

type nopAlerter struct{}

func (nopAlerter) Alert(string) {}

type nopIndicator struct{}

func (nopIndicator) Start(string) {}
func (nopIndicator) Stop()        {}
