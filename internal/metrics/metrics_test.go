package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Operations(t *testing.T) {
	c := New("test")

	c.ObserveOperation("item.create", OutcomeOK, 5*time.Millisecond)
	c.ObserveOperation("item.create", OutcomeOK, 5*time.Millisecond)
	c.ObserveOperation("category.rename", OutcomeConflict, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.operations.WithLabelValues("item.create", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues("category.rename", OutcomeConflict)))
}

func TestCollector_CascadeRowsIgnoresZero(t *testing.T) {
	c := New("test")

	c.AddCascadeRows("items", 3)
	c.AddCascadeRows("items", 0)
	c.AddCascadeRows("names", -1)

	assert.Equal(t, 3.0, testutil.ToFloat64(c.cascadeRows.WithLabelValues("items")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.cascadeRows.WithLabelValues("names")))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	c.ObserveOperation("item.create", OutcomeOK, time.Millisecond)
	c.AddCascadeRows("items", 1)
	c.ObserveHTTP("GET", "/api/lists", 200, time.Millisecond)
}

func TestCollector_Handler(t *testing.T) {
	c := New("lister")
	c.ObserveHTTP("GET", "/api/lists", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(string(body), `lister_http_requests_total{method="GET",route="/api/lists",status="200"} 1`))
}
