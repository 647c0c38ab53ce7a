package get_canteen_orders

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery_DateOnlyBounds(t *testing.T) {
	req, err := parseQuery(url.Values{
		"startDate": {"2025-10-01"},
		"endDate":   {"2025-11-01"},
	})

	require.NoError(t, err)
	require.NotNil(t, req.StartDate)
	require.NotNil(t, req.EndDate)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), *req.StartDate)
	assert.Equal(t, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), *req.EndDate)
}

func TestParseQuery_FullTimestamp(t *testing.T) {
	req, err := parseQuery(url.Values{"startDate": {"2025-10-01T09:30:00Z"}})

	require.NoError(t, err)
	require.NotNil(t, req.StartDate)
	assert.Equal(t, time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC), *req.StartDate)
}

func TestParseQuery_BadDate(t *testing.T) {
	_, err := parseQuery(url.Values{"startDate": {"вчера"}})

	assert.Error(t, err)
}
