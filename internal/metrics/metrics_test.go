package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityMovesTotal_Increments(t *testing.T) {
	before := testutil.ToFloat64(EntityMovesTotal.WithLabelValues("target", "move"))
	EntityMovesTotal.WithLabelValues("target", "move").Inc()
	after := testutil.ToFloat64(EntityMovesTotal.WithLabelValues("target", "move"))

	assert.Equal(t, before+1, after)
}

func TestHandler_ExposesCollectors(t *testing.T) {
	HTTPRequestsTotal.WithLabelValues("GET", "/targets", "200").Inc()
	MissionsTotal.WithLabelValues("Proposed").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, "agents_rest_http_requests_total"))
	assert.True(t, strings.Contains(text, "agents_rest_missions_total"))
}
