//go:build !gosseract

package gosseract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gardar/ocrtranslate/pkg/imageio"
)

func TestStubNotEnabled(t *testing.T) {
	assert.False(t, Enabled)

	e, err := New(Config{})
	assert.Nil(t, e)
	assert.ErrorIs(t, err, ErrNotEnabled)

	var stub Engine
	assert.Equal(t, "gosseract", stub.Name())
	_, err = stub.Recognize(context.Background(), imageio.Image{}, "eng")
	assert.ErrorIs(t, err, ErrNotEnabled)
}
