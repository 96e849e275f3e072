package platform

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdleMillis(t *testing.T) {
	idle, err := parseIdleMillis("61500\n")
	require.NoError(t, err)
	assert.Equal(t, 61500*time.Millisecond, idle)

	idle, err = parseIdleMillis("-3")
	require.NoError(t, err)
	assert.Zero(t, idle)

	_, err = parseIdleMillis("garbage")
	assert.Error(t, err)
}

func TestWaylandIsUnsupported(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")

	_, err := NewIdleProvider().IdleDuration()

	assert.True(t, errors.Is(err, ErrIdleUnsupported))
}
