package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedTuningMatchesDefaults(t *testing.T) {
	got, err := LoadTuning()
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), got)
}

func TestDefaultTuningValues(t *testing.T) {
	d := DefaultTuning()
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{name: "move acceleration", got: d.Player.Movement.Acceleration, want: 13000},
		{name: "max move speed", got: d.Player.Movement.MaxSpeed, want: 1750},
		{name: "ground drag", got: d.Player.Movement.GroundDrag, want: 0.48},
		{name: "air drag", got: d.Player.Movement.AirDrag, want: 0.55},
		{name: "max jump time", got: d.Player.Jump.MaxTime, want: 0.30},
		{name: "jump launch velocity", got: d.Player.Jump.LaunchVelocity, want: -3500},
		{name: "jump control power", got: d.Player.Jump.ControlPower, want: 0.14},
		{name: "gravity", got: d.Player.Jump.Gravity, want: 3400},
		{name: "max fall speed", got: d.Player.Jump.MaxFallSpeed, want: 550},
		{name: "fire cooldown", got: d.Player.Weapon.Cooldown, want: 0.07},
		{name: "heat per shot", got: d.Player.Weapon.HeatPerShot, want: 0.2},
		{name: "vent per tick", got: d.Player.Weapon.VentPerTick, want: 0.1},
		{name: "max heat", got: d.Player.Weapon.MaxHeat, want: 5},
		{name: "enemy speed", got: d.Enemy.MoveSpeed, want: 50},
		{name: "enemy wait", got: d.Enemy.MaxWaitTime, want: 0.5},
		{name: "bullet speed", got: d.Bullet.Speed, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })

	spec := DefaultTuning().Enemy
	spec.MoveSpeed = 75
	data, err := yaml.Marshal(map[string]any{
		"name":          spec.Name,
		"move_speed":    spec.MoveSpeed,
		"max_wait_time": spec.MaxWaitTime,
		"frame":         map[string]int{"width": 64, "height": 64},
		"collider":      map[string]float64{"width_scale": 0.35, "height_scale": 0.7},
		"color":         "#6b8e23",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "enemy.yaml"), data, 0o644))

	got, err := LoadEnemySpec()
	require.NoError(t, err)
	assert.Equal(t, spec, *got)

	// files missing on disk still come from the embedded copies
	player, err := LoadPlayerSpec()
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning().Player, *player)
}

func TestLoadSpecErrors(t *testing.T) {
	_, err := LoadSpec[LevelSpec]("missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: load missing.yaml")

	dir := t.TempDir()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
	require.NoError(t, os.WriteFile(filepath.Join(dir, "level.yaml"), []byte("time_limit: [nope"), 0o644))

	_, err = LoadTuning()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: unmarshal level.yaml")
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    color.Color
		wantErr bool
	}{
		{name: "rgb", src: `c: "#102030"`, want: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}},
		{name: "rgba without hash", src: `c: "10203040"`, want: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{name: "short", src: `c: "#123"`, wantErr: true},
		{name: "not hex", src: `c: "#zz0000"`, wantErr: true},
		{name: "not a scalar", src: "c: [1, 2]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				C YAMLColor `yaml:"c"`
			}
			err := yaml.Unmarshal([]byte(tt.src), &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.C.Color)
		})
	}
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, Seconds(0.5))
	assert.Equal(t, time.Minute, Seconds(60))
}
