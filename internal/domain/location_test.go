package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_analyzer/internal/domain"
)

func TestLocationRegistry_IsValid(t *testing.T) {
	reg := domain.NewLocationRegistry(domain.DefaultLocations...)

	require.Equal(t, 18, reg.Len())
	assert.True(t, reg.IsValid("Denver, Colorado"))
	assert.True(t, reg.IsValid("Salt Lake City, Utah"))

	// exact match only
	assert.False(t, reg.IsValid("denver, colorado"))
	assert.False(t, reg.IsValid("Denver"))
	assert.False(t, reg.IsValid(" Denver, Colorado"))
	assert.False(t, reg.IsValid(""))
}

func TestLocationRegistry_ListIsSortedAndTrimmed(t *testing.T) {
	reg := domain.NewLocationRegistry(" Tucson, Arizona", "Denver, Colorado", "", "Denver, Colorado")

	assert.Equal(t, []string{"Denver, Colorado", "Tucson, Arizona"}, reg.List())
	assert.True(t, reg.IsValid("Tucson, Arizona"))
}
