package window_test

import (
	"math"
	"testing"

	"github.com/csmoulaison/vk-tracer/core"
	"github.com/csmoulaison/vk-tracer/window"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNewRejectsOversizedWindow(t *testing.T) {
	for _, size := range [][2]uint32{
		{math.MaxInt32 + 1, 480},
		{640, math.MaxUint32},
	} {
		w, err := window.New("vk_tracer", size[0], size[1])
		assert.Nil(t, w)
		assert.True(t, errors.Is(err, core.ErrPlatform), "%dx%d", size[0], size[1])
	}
}
