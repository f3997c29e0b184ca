//go:build gosseract

package gosseract

import (
	"testing"

	"github.com/otiai10/gosseract/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	assert.True(t, Enabled)

	e, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, int(gosseract.PSM_AUTO), e.psm)
	assert.Equal(t, "gosseract", e.Name())
	assert.NotNil(t, e.logger)
}
