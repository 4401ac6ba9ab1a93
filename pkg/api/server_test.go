package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/bleradar/pkg/agent"
	"github.com/carverauto/bleradar/pkg/metrics"
	"github.com/carverauto/bleradar/pkg/models"
)

type fakeService struct {
	mu        sync.Mutex
	requests  []models.ScanRequest
	scans     map[string]models.ScanStatus
	events    map[string][]models.ScanEvent
	filters   []*models.SightingFilter
	sightings []models.Sighting
	startErr  error
}

func newFakeService() *fakeService {
	return &fakeService{
		scans:  make(map[string]models.ScanStatus),
		events: make(map[string][]models.ScanEvent),
	}
}

func (f *fakeService) StartScan(_ context.Context, req models.ScanRequest) (models.ScanStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.startErr != nil {
		return models.ScanStatus{}, f.startErr
	}

	f.requests = append(f.requests, req)

	status := models.ScanStatus{
		ID:      fmt.Sprintf("scan-%d", len(f.requests)),
		Adapter: req.Adapter,
		Timeout: req.Timeout,
		State:   models.ScanRunning,
	}
	f.scans[status.ID] = status

	return status, nil
}

func (f *fakeService) GetScan(id string) (models.ScanStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	status, ok := f.scans[id]
	if !ok {
		return models.ScanStatus{}, fmt.Errorf("%w: %s", agent.ErrScanNotFound, id)
	}

	return status, nil
}

func (f *fakeService) ListScans() []models.ScanStatus {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.ScanStatus, 0, len(f.scans))
	for _, s := range f.scans {
		out = append(out, s)
	}

	return out
}

func (f *fakeService) Subscribe(id string) (<-chan models.ScanEvent, func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	events, ok := f.events[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", agent.ErrScanNotFound, id)
	}

	ch := make(chan models.ScanEvent, len(events))
	for _, ev := range events {
		ch <- ev
	}

	close(ch)

	return ch, func() {}, nil
}

func (f *fakeService) Sightings(_ context.Context, filter *models.SightingFilter) ([]models.Sighting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.filters = append(f.filters, filter)

	return f.sightings, nil
}

func TestServer_CreateScan(t *testing.T) {
	svc := newFakeService()
	srv := NewServer(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/scans",
		strings.NewReader(`{"timeout_ms": 1500, "adapter": "aa:bb:cc:dd:ee:ff"}`))

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var status models.ScanStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, "scan-1", status.ID)

	require.Len(t, svc.requests, 1)
	assert.Equal(t, 1500*time.Millisecond, svc.requests[0].Timeout)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", svc.requests[0].Adapter)
}

func TestServer_CreateScanEmptyBody(t *testing.T) {
	svc := newFakeService()
	srv := NewServer(svc)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scans", http.NoBody))

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, svc.requests, 1)
	assert.Zero(t, svc.requests[0].Timeout)
}

func TestServer_CreateScanBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"timeout_ms":`},
		{name: "negative timeout", body: `{"timeout_ms": -1}`},
		{name: "wrong type", body: `{"timeout_ms": "soon"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeService()
			rec := httptest.NewRecorder()

			NewServer(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scans", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, svc.requests)
		})
	}
}

func TestServer_CreateScanServiceError(t *testing.T) {
	svc := newFakeService()
	svc.startErr = fmt.Errorf("stopped")

	rec := httptest.NewRecorder()
	NewServer(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scans", http.NoBody))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_CreateScanRateLimited(t *testing.T) {
	svc := newFakeService()
	srv := NewServer(svc, WithRateLimit(0.001, 1))

	codes := make([]int, 0, 2)

	for range 2 {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scans", http.NoBody))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusAccepted, http.StatusTooManyRequests}, codes)
	assert.Len(t, svc.requests, 1)
}

func TestServer_Preflight(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(newFakeService()).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/scans", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestServer_GetScan(t *testing.T) {
	svc := newFakeService()
	svc.scans["abc"] = models.ScanStatus{ID: "abc", State: models.ScanDone, Devices: 4}

	srv := NewServer(svc)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scans/abc", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)

	var status models.ScanStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, models.ScanDone, status.State)
	assert.Equal(t, 4, status.Devices)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scans/missing", http.NoBody))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ListScans(t *testing.T) {
	svc := newFakeService()
	svc.scans["abc"] = models.ScanStatus{ID: "abc"}

	rec := httptest.NewRecorder()
	NewServer(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scans", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)

	var scans []models.ScanStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&scans))
	require.Len(t, scans, 1)
}

func TestServer_GetDevicesFilter(t *testing.T) {
	svc := newFakeService()
	svc.sightings = []models.Sighting{{ScanID: "abc", Device: models.DeviceInfo{Address: "11:22:33:44:55:66"}}}

	rec := httptest.NewRecorder()
	NewServer(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/devices?address=11:22:33:44:55:66&vendor=0xFFF1&discriminator=3840&limit=5000", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.filters, 1)

	filter := svc.filters[0]
	assert.Equal(t, "11:22:33:44:55:66", filter.Address)
	require.NotNil(t, filter.Vendor)
	assert.Equal(t, uint16(0xFFF1), *filter.Vendor)
	require.NotNil(t, filter.Discriminator)
	assert.Equal(t, uint16(3840), *filter.Discriminator)
	assert.Equal(t, maxDeviceLimit, filter.Limit)

	var got []models.Sighting
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Len(t, got, 1)
}

func TestServer_GetDevicesBadQuery(t *testing.T) {
	for _, query := range []string{"vendor=70000", "discriminator=x", "limit=0", "since=yesterday"} {
		t.Run(query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewServer(newFakeService()).ServeHTTP(rec,
				httptest.NewRequest(http.MethodGet, "/api/devices?"+query, http.NoBody))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestServer_StreamScan(t *testing.T) {
	svc := newFakeService()
	device := models.DeviceInfo{Address: "11:22:33:44:55:66", Discriminator: 100, Vendor: 0xFFF1, Product: 0x8000}
	svc.events["abc"] = []models.ScanEvent{
		{Type: models.EventDevice, ScanID: "abc", Device: &device},
		{Type: models.EventDone, ScanID: "abc"},
	}

	ts := httptest.NewServer(NewServer(svc))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/scans/abc/stream"

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
		_ = conn.Close()
	}()

	var got []models.ScanEvent

	for {
		var ev models.ScanEvent

		if err := conn.ReadJSON(&ev); err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
			break
		}

		got = append(got, ev)
	}

	require.Len(t, got, 2)
	assert.Equal(t, models.EventDevice, got[0].Type)
	assert.Equal(t, device, *got[0].Device)
	assert.Equal(t, models.EventDone, got[1].Type)
}

func TestServer_StreamUnknownScan(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(newFakeService()).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/scans/missing/stream", http.NoBody))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewDiscovery(reg)
	m.IncDevicesFound()

	srv := NewServer(newFakeService(), WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bleradar_")
}
