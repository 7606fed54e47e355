package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"nutricoach/internal/models"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if userID != 0 {
		router.Use(addAuthMiddleware(userID))
	}
	return router
}

func addAuthMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	data, ok := decodeResponse(t, w)["data"].(map[string]interface{})
	require.True(t, ok, "response data is not an object: %s", w.Body.String())
	return data
}

func decodeDataList(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	data, ok := decodeResponse(t, w)["data"].([]interface{})
	require.True(t, ok, "response data is not a list: %s", w.Body.String())
	return data
}

// memoryPlanCache is an in-process PlanCache that records invalidations.
type memoryPlanCache struct {
	mu          sync.Mutex
	plans       map[uint]*models.DietPlan
	invalidated []uint
}

func newMemoryPlanCache() *memoryPlanCache {
	return &memoryPlanCache{plans: make(map[uint]*models.DietPlan)}
}

func (m *memoryPlanCache) Get(_ context.Context, userID uint) (*models.DietPlan, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	plan, ok := m.plans[userID]
	return plan, ok, nil
}

func (m *memoryPlanCache) Set(_ context.Context, userID uint, plan *models.DietPlan, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[userID] = plan
	return nil
}

func (m *memoryPlanCache) Invalidate(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.plans, userID)
	m.invalidated = append(m.invalidated, userID)
	return nil
}

type publishedEvent struct {
	key     string
	payload interface{}
}

// channelPublisher hands every event to a buffered channel so tests can wait
// for asynchronous publishes.
type channelPublisher struct {
	events chan publishedEvent
}

func newChannelPublisher() *channelPublisher {
	return &channelPublisher{events: make(chan publishedEvent, 16)}
}

func (p *channelPublisher) Publish(_ context.Context, key string, payload interface{}) error {
	p.events <- publishedEvent{key: key, payload: payload}
	return nil
}

func (p *channelPublisher) Close() error { return nil }

func (p *channelPublisher) next(t *testing.T) publishedEvent {
	t.Helper()
	select {
	case ev := <-p.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return publishedEvent{}
	}
}

func (p *channelPublisher) assertEmpty(t *testing.T) {
	t.Helper()
	select {
	case ev := <-p.events:
		t.Fatalf("unexpected event %s", ev.key)
	case <-time.After(50 * time.Millisecond):
	}
}
