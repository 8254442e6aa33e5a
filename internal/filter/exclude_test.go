package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier/internal/testutil"
)

func TestNewExcludeFilter_Success(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
	}{
		{
			name:     "single pattern",
			patterns: []string{"^health-.*"},
		},
		{
			name:     "multiple patterns",
			patterns: []string{"^health-.*", ".*-staging$", "debug"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			filter, err := NewExcludeFilter(tt.patterns, testutil.Logger())

			// Assert
			require.NoError(t, err)
			assert.Len(t, filter.patterns, len(tt.patterns))
		})
	}
}

func TestNewExcludeFilter_EmptyPatterns(t *testing.T) {
	filter, err := NewExcludeFilter(nil, testutil.Logger())

	require.Error(t, err)
	assert.Nil(t, filter)
	assert.Contains(t, err.Error(), "no patterns provided for exclude filter")
}

func TestNewExcludeFilter_InvalidPattern(t *testing.T) {
	filter, err := NewExcludeFilter([]string{"[unclosed"}, testutil.Logger())

	require.Error(t, err)
	assert.Nil(t, filter)
	assert.Contains(t, err.Error(), "invalid regex pattern")
}

func TestExcludeFilter_ShouldExclude(t *testing.T) {
	filter, err := NewExcludeFilter([]string{"^health-", "-staging$"}, testutil.Logger())
	require.NoError(t, err)

	tests := []struct {
		name     string
		expected bool
	}{
		{name: "health-api", expected: true},
		{name: "orders-staging", expected: true},
		{name: "orders", expected: false},
		{name: "staging-orders", expected: false},
		{name: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, filter.ShouldExclude(tt.name))
		})
	}
}

func TestNew(t *testing.T) {
	noop, err := New(nil, testutil.Logger())
	require.NoError(t, err)
	assert.IsType(t, &NoOpFilter{}, noop)
	assert.False(t, noop.ShouldExclude("anything"))

	exclude, err := New([]string{"^a"}, testutil.Logger())
	require.NoError(t, err)
	assert.True(t, exclude.ShouldExclude("abc"))
}
