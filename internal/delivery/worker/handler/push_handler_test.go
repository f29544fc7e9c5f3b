package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"academy/config"
	"academy/internal/domain/service"
	"academy/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPushHandler(m *metrics.Metrics) *PushHandler {
	return NewPushHandler(PushHandlerParams{
		Config:  &config.Config{},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: m,
	})
}

func push(t *testing.T, h *PushHandler, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.HandlePush(e.NewContext(req, rec)))

	return rec
}

func encodeEvent(t *testing.T, event *service.LeadEvent) []byte {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = "m-1"
	msg.Message.Attributes = map[string]string{"request_id": "req-7"}

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return body
}

func TestPushHandler_CountsLeads(t *testing.T) {
	m := metrics.New()
	h := newTestPushHandler(m)

	rec := push(t, h, encodeEvent(t, &service.LeadEvent{
		LeadID:      "lead-1",
		Source:      "purchase",
		Name:        "Ivan",
		Course:      "English B1",
		SubmittedAt: time.Now().UTC(),
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	count, err := testutil.GatherAndCount(m.Registry(), "academy_leads_received_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPushHandler_DropsIncompleteEvents(t *testing.T) {
	m := metrics.New()
	h := newTestPushHandler(m)

	rec := push(t, h, encodeEvent(t, &service.LeadEvent{Name: "Ivan"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	count, err := testutil.GatherAndCount(m.Registry(), "academy_leads_received_total")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPushHandler_RejectsMalformedData(t *testing.T) {
	h := newTestPushHandler(metrics.New())

	rec := push(t, h, []byte(`{"message":{"data":"%%%not-base64"}}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = push(t, h, []byte(`{"message":{"data":"`+base64.StdEncoding.EncodeToString([]byte("not json"))+`"}}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPushHandler_VerifiesGooglePushes(t *testing.T) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: "google"}}
	cfg.Env.Env = "production"

	h := NewPushHandler(PushHandlerParams{
		Config:  cfg,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: metrics.New(),
	})
	require.True(t, h.verifyPushAuth)

	rec := push(t, h, encodeEvent(t, &service.LeadEvent{LeadID: "lead-1", Source: "signup"}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
