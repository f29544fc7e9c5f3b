package persistence

import (
	"context"
	"strings"
	"testing"

	"academy/config"
	"academy/internal/domain/entity"
	"academy/internal/infra/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newParams(t *testing.T, driver string) (Params, *fxtest.Lifecycle, *metrics.Metrics) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Storage.Driver = driver
	lc := fxtest.NewLifecycle(t)
	m := metrics.New()

	return Params{Lc: lc, Config: cfg, Logger: discardLogger(), Metrics: m}, lc, m
}

func TestNew_MemoryDriver(t *testing.T) {
	params, lc, m := newParams(t, config.StorageDriverMemory)

	result, err := New(params)
	require.NoError(t, err)

	lc.RequireStart()
	defer lc.RequireStop()

	assert.True(t, result.Availability.IsAvailable())
	expected := `
# HELP academy_store_available 1 when the backing store answers pings, 0 otherwise.
# TYPE academy_store_available gauge
academy_store_available 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "academy_store_available"))

	student := &entity.Student{Name: "Ivan", Email: "ivan@example.com"}
	require.NoError(t, result.Students.Create(context.Background(), student))

	found, err := result.Students.FindByEmail(context.Background(), "ivan@example.com")
	require.NoError(t, err)
	assert.Equal(t, student.ID, found.ID)
}

func TestNew_UnknownDriver(t *testing.T) {
	params, _, _ := newParams(t, "cassandra")

	_, err := New(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cassandra")
}

func TestNew_MongoRequiresURI(t *testing.T) {
	params, _, _ := newParams(t, config.StorageDriverMongo)

	_, err := New(params)
	require.Error(t, err)
}
