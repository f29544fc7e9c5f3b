package metrics

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"academy/internal/errors"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/home", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/home", http.StatusOK, 30*time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/home", "200")), 0)
}

func TestMetrics_StoreGauge(t *testing.T) {
	m := New()

	m.SetStoreAvailable(true)
	assert.InDelta(t, 1, testutil.ToFloat64(m.storeUp), 0)

	m.SetStoreAvailable(false)
	assert.InDelta(t, 0, testutil.ToFloat64(m.storeUp), 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodPost, "/api/login", http.StatusUnauthorized, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `academy_http_requests_total{method="POST",route="/api/login",status="401"} 1`)
}

func TestMetrics_ObserveLead(t *testing.T) {
	m := New()

	m.ObserveLead("purchase")
	m.ObserveLead("purchase")
	m.ObserveLead("signup")

	assert.InDelta(t, 2, testutil.ToFloat64(m.leads.WithLabelValues("purchase")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.leads.WithLabelValues("signup")), 0)
}

func TestMetrics_RegisterDBStats(t *testing.T) {
	m := New()
	db := sql.OpenDB(idleConnector{})
	defer db.Close()

	require.NoError(t, m.RegisterDBStats(db, "academy"))
	assert.Error(t, m.RegisterDBStats(db, "academy"))

	count, err := testutil.GatherAndCount(m.Registry(), "go_sql_open_connections")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// idleConnector never dials; pool statistics work without a connection.
type idleConnector struct{}

func (idleConnector) Connect(context.Context) (driver.Conn, error) {
	return nil, errors.New("no database in unit tests")
}

func (idleConnector) Driver() driver.Driver { return nil }
