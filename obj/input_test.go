package obj

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickInputNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   TickInput
		want TickInput
	}{
		{name: "in range", in: TickInput{MoveX: -0.4, Elapsed: tick}, want: TickInput{MoveX: -0.4, Elapsed: tick}},
		{name: "too far right", in: TickInput{MoveX: 3}, want: TickInput{MoveX: 1}},
		{name: "too far left", in: TickInput{MoveX: -7, JumpHeld: true}, want: TickInput{MoveX: -1, JumpHeld: true}},
		{name: "nan", in: TickInput{MoveX: math.NaN(), FireHeld: true}, want: TickInput{FireHeld: true}},
		{name: "negative elapsed", in: TickInput{VentHeld: true, Elapsed: -time.Second}, want: TickInput{VentHeld: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalized())
		})
	}
}

func TestShapeAxis(t *testing.T) {
	assert.Zero(t, shapeAxis(0.49, 1, 0.5))
	assert.Zero(t, shapeAxis(-0.2, 1, 0.5))
	assert.Equal(t, 0.5, shapeAxis(0.5, 1, 0.5))
	assert.Equal(t, -1.0, shapeAxis(-1, 1, 0.5))
	assert.Equal(t, 0.6, shapeAxis(0.3, 2, 0.5))
}
