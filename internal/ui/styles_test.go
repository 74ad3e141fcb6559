package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStyles(t *testing.T) {
	assert.True(t, GetStyles(false).Header.GetBold(), "color mode keeps the styled header")
	assert.False(t, GetStyles(true).Header.GetBold(), "no-color mode strips styling")
}

func TestSearchModelUsesProvidedStyles(t *testing.T) {
	m := newSearchModel(nil, GetStyles(true))
	assert.False(t, m.styles.Header.GetBold())
}
