package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

func TestJumpKeysContinue(t *testing.T) {
	tests := []struct {
		name string
		key  ebiten.Key
		want bool
	}{
		{name: "space", key: ebiten.KeySpace, want: true},
		{name: "w", key: ebiten.KeyW, want: true},
		{name: "arrow up", key: ebiten.KeyArrowUp, want: true},
		{name: "fire", key: ebiten.KeyJ, want: false},
		{name: "pause", key: ebiten.KeyEscape, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			only := func(k ebiten.Key) bool { return k == tt.key }
			assert.Equal(t, tt.want, anyKey(jumpKeys, only))
		})
	}
}

func TestAnyKeyNone(t *testing.T) {
	none := func(ebiten.Key) bool { return false }
	assert.False(t, anyKey(jumpKeys, none))
	assert.False(t, anyKey(nil, func(ebiten.Key) bool { return true }))
}
