package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSONRoundTrip(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-15"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)
}

func TestParseDateRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "15-03-2024", "2024-13-40", "yesterday"} {
		_, err := ParseDate(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestDateScan(t *testing.T) {
	t.Parallel()

	var d Date

	require.NoError(t, d.Scan(time.Date(2024, 3, 15, 13, 37, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-15", d.String())

	require.NoError(t, d.Scan("2024-03-15"))
	assert.Equal(t, "2024-03-15", d.String())

	require.NoError(t, d.Scan("2024-03-15 00:00:00+00:00"))
	assert.Equal(t, "2024-03-15", d.String())

	assert.Error(t, d.Scan(42))
}
