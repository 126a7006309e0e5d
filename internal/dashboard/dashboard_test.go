package dashboard

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dyike/indexstats/config"
	"github.com/dyike/indexstats/internal/client"
	"github.com/dyike/indexstats/internal/export"
	"github.com/dyike/indexstats/internal/models"
	"github.com/dyike/indexstats/internal/table"
	"github.com/dyike/indexstats/internal/testserver"
)

type recordingAlerter struct {
	mu       sync.Mutex
	messages []string
}

func (a *recordingAlerter) Alert(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, message)
}

func (a *recordingAlerter) all() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.messages...)
}

type countingIndicator struct {
	starts, stops int
}

func (c *countingIndicator) Start(string) { c.starts++ }
func (c *countingIndicator) Stop()        { c.stops++ }

var sampleTickers = []models.TickerRecord{
	{Symbol: "AAPL", OpeningScenario: "Gap Up", TrendObserved: "Bullish", UpwardClose: "5", DownwardClose: "2", FlatClose: "1"},
	{Symbol: "MSFT", OpeningScenario: "flat open", TrendObserved: "indecisive", UpwardClose: "10", DownwardClose: "3", FlatClose: "4"},
	{Symbol: "GOOG", OpeningScenario: "gap down", TrendObserved: "down trend", UpwardClose: "2", DownwardClose: "30", FlatClose: "6"},
}

type fixture struct {
	srv     *testserver.Server
	dash    *Dashboard
	view    *table.View
	alerts  *recordingAlerter
	spinner *countingIndicator
	cfg     *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := testserver.New()
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfigWithRoot(t.TempDir())
	cfg.BaseURL = srv.URL
	cfg.Cookies = "csrftoken=abc123"

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	c, err := client.New(cfg, logger)
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}

	f := &fixture{
		srv:     srv,
		view:    table.NewView(table.SortShared, false),
		alerts:  &recordingAlerter{},
		spinner: &countingIndicator{},
		cfg:     cfg,
	}
	f.dash = New(c, f.view, export.NewExporter(cfg.ExportDir),
		WithAlerter(f.alerts),
		WithIndicator(f.spinner),
		WithLogger(logger),
	)
	return f
}

func TestLoadRendersTickers(t *testing.T) {
	f := newFixture(t)
	f.srv.SetEnvelope("2025-03-25 09:15", sampleTickers)

	if err := f.dash.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	snap := f.dash.Snapshot()
	if !snap.Shown || snap.Loading || snap.LastUpdated != "2025-03-25 09:15" {
		t.Fatalf("unexpected view state: %+v", snap)
	}
	if len(snap.Rows) != 3 || snap.Rows[0].Cells[table.ColUpwardClose] != "5%" {
		t.Fatalf("unexpected rows: %+v", snap.Rows)
	}
	if f.spinner.starts != 1 || f.spinner.stops != 1 {
		t.Fatalf("spinner starts=%d stops=%d", f.spinner.starts, f.spinner.stops)
	}
	if len(f.alerts.all()) != 0 {
		t.Fatalf("unexpected alerts: %v", f.alerts.all())
	}
}

func TestLoadNoData(t *testing.T) {
	f := newFixture(t)
	f.srv.SetEnvelope("2025-03-25 09:15", sampleTickers)
	if err := f.dash.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	f.srv.SetTickerData(http.StatusOK, `{"status":"no_data","message":"Data not generated yet"}`)
	if err := f.dash.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	snap := f.dash.Snapshot()
	if snap.Shown || len(snap.Rows) != 0 || snap.LastUpdated != "Data not generated yet" {
		t.Fatalf("unexpected no-data state: %+v", snap)
	}
}

func TestLoadFailureAlertsAndKeepsView(t *testing.T) {
	f := newFixture(t)
	f.srv.SetEnvelope("first", sampleTickers)
	if err := f.dash.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	f.srv.SetTickerData(http.StatusInternalServerError, "boom")
	err := f.dash.Load(context.Background())
	var statusErr *client.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status error, got %v", err)
	}
	if got := f.alerts.all(); len(got) != 1 || got[0] != MsgLoadFailed {
		t.Fatalf("alerts = %v", got)
	}
	snap := f.dash.Snapshot()
	if snap.LastUpdated != "first" || len(snap.Rows) != 3 {
		t.Fatalf("view changed after failed load: %+v", snap)
	}
}

func TestLoadSchemaFailureAlerts(t *testing.T) {
	f := newFixture(t)
	f.srv.SetTickerData(http.StatusOK, `{"Generated on":"x","Tickers":[{"Symbol":"AAPL"}]}`)

	err := f.dash.Load(context.Background())
	if !models.IsSchemaError(err) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if got := f.alerts.all(); len(got) != 1 || got[0] != MsgLoadFailed {
		t.Fatalf("alerts = %v", got)
	}
	if !f.dash.Snapshot().Loading {
		t.Fatalf("view should still be loading after a failed first load")
	}
}

func TestRefreshSuccessFetchesOnce(t *testing.T) {
	f := newFixture(t)
	f.srv.SetEnvelope("after refresh", sampleTickers)

	if err := f.dash.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if f.srv.RefreshHits() != 1 || f.srv.DataHits() != 1 {
		t.Fatalf("refresh hits=%d data hits=%d", f.srv.RefreshHits(), f.srv.DataHits())
	}
	if f.srv.LastCSRF() != "abc123" {
		t.Fatalf("csrf header = %q", f.srv.LastCSRF())
	}
	if f.dash.Snapshot().LastUpdated != "after refresh" {
		t.Fatalf("view not reloaded")
	}
}

func TestRefreshErrorStatusAlertsMessage(t *testing.T) {
	f := newFixture(t)
	f.srv.SetRefresh(http.StatusOK, `{"status":"error","message":"X"}`)

	err := f.dash.Refresh(context.Background())
	var refreshErr *RefreshError
	if !errors.As(err, &refreshErr) || refreshErr.Message != "X" {
		t.Fatalf("expected refresh error, got %v", err)
	}
	if got := f.alerts.all(); len(got) != 1 || got[0] != "Error: X" {
		t.Fatalf("alerts = %v", got)
	}
	if f.srv.DataHits() != 0 {
		t.Fatalf("data fetched after failed refresh: %d", f.srv.DataHits())
	}
}

func TestRefreshServerErrorBodyIsStillRead(t *testing.T) {
	f := newFixture(t)
	f.srv.SetRefresh(http.StatusInternalServerError, `{"status":"error","message":"script failed"}`)

	_ = f.dash.Refresh(context.Background())
	if got := f.alerts.all(); len(got) != 1 || got[0] != "Error: script failed" {
		t.Fatalf("alerts = %v", got)
	}
}

func TestRefreshUndecodableBody(t *testing.T) {
	f := newFixture(t)
	f.srv.SetRefresh(http.StatusBadGateway, "<html>bad gateway</html>")

	if err := f.dash.Refresh(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if got := f.alerts.all(); len(got) != 1 || got[0] != MsgRefreshFailed {
		t.Fatalf("alerts = %v", got)
	}
	if f.srv.DataHits() != 0 {
		t.Fatalf("data fetched after failed refresh")
	}
}

func TestRefreshThenLoadFailure(t *testing.T) {
	f := newFixture(t)
	f.srv.SetTickerData(http.StatusNotFound, "missing")

	if err := f.dash.Refresh(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}
	if got := f.alerts.all(); len(got) != 1 || got[0] != MsgLoadFailed {
		t.Fatalf("alerts = %v", got)
	}
}

func TestExportUsesAllRowsInViewOrder(t *testing.T) {
	f := newFixture(t)
	f.srv.SetEnvelope("now", sampleTickers)
	if err := f.dash.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := f.dash.Sort(table.ColUpwardClose); err != nil {
		t.Fatalf("Sort: %v", err)
	}
	f.dash.Search("aapl")

	result, err := f.dash.ExportCSV()
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	want := []string{
		"Symbol,Opening Scenario,Trend Observed,Upward Close (%),Downward Close (%),Flat Close (%)",
		"GOOG,gap down,down trend,2,30,6",
		"AAPL,Gap Up,Bullish,5,2,1",
		"MSFT,flat open,indecisive,10,3,4",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	pdf, err := f.dash.ExportPDF()
	if err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if pdf.Rows != 3 {
		t.Fatalf("pdf rows = %d", pdf.Rows)
	}
}

func TestApplySettings(t *testing.T) {
	f := newFixture(t)
	f.cfg.Theme = config.ThemeDark
	f.cfg.SortMode = config.SortModePerColumn
	f.dash.ApplySettings(f.cfg)

	if !f.dash.Snapshot().Dark {
		t.Fatalf("theme not applied")
	}
	if SortModeFor(config.SortModePerColumn) != table.SortPerColumn || SortModeFor("anything") != table.SortShared {
		t.Fatalf("unexpected sort mode mapping")
	}
	if f.dash.ToggleTheme() {
		t.Fatalf("toggle from dark should give light")
	}
}

func TestAutoReload(t *testing.T) {
	f := newFixture(t)
	f.srv.SetEnvelope("scheduled", sampleTickers)

	reloaded := make(chan table.Snapshot, 4)
	f.dash.SetReloadHook(func(s table.Snapshot) { reloaded <- s })

	if err := f.dash.StartAutoReload("@every 1s", 5*time.Second); err != nil {
		t.Fatalf("StartAutoReload: %v", err)
	}
	defer f.dash.StopAutoReload()

	if _, ok := f.dash.NextReload(); !ok {
		t.Fatalf("expected a scheduled reload")
	}
	if err := f.dash.StartAutoReload("@every 1s", time.Second); err == nil {
		t.Fatalf("second start should fail")
	}

	select {
	case snap := <-reloaded:
		if snap.LastUpdated != "scheduled" {
			t.Fatalf("LastUpdated = %q", snap.LastUpdated)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no scheduled reload")
	}
}

func TestAutoReloadRejectsBadSchedule(t *testing.T) {
	f := newFixture(t)
	if err := f.dash.StartAutoReload("not a schedule", time.Second); err == nil {
		t.Fatalf("expected schedule error")
	}
}
