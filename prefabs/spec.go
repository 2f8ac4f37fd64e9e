package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// FrameSpec is the size of one sprite frame. Bodies are positioned by the
// bottom centre of their frame.
type FrameSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ColliderSpec sizes the collision box as a fraction of the frame. The box is
// centred horizontally and sits on the frame's bottom edge.
type ColliderSpec struct {
	WidthScale  float64 `yaml:"width_scale"`
	HeightScale float64 `yaml:"height_scale"`
}

type MovementSpec struct {
	Acceleration float64 `yaml:"acceleration"`
	MaxSpeed     float64 `yaml:"max_speed"`
	GroundDrag   float64 `yaml:"ground_drag"`
	AirDrag      float64 `yaml:"air_drag"`
	StickScale   float64 `yaml:"stick_scale"`
	Deadzone     float64 `yaml:"deadzone"`
}

type JumpSpec struct {
	MaxTime        float64 `yaml:"max_time"`
	LaunchVelocity float64 `yaml:"launch_velocity"`
	ControlPower   float64 `yaml:"control_power"`
	Gravity        float64 `yaml:"gravity"`
	MaxFallSpeed   float64 `yaml:"max_fall_speed"`
}

type WeaponSpec struct {
	Cooldown      float64 `yaml:"cooldown"`
	HeatPerShot   float64 `yaml:"heat_per_shot"`
	VentPerTick   float64 `yaml:"vent_per_tick"`
	MaxHeat       float64 `yaml:"max_heat"`
	MuzzleOffsetY float64 `yaml:"muzzle_offset_y"`
}

type PlayerSpec struct {
	Name     string       `yaml:"name"`
	Frame    FrameSpec    `yaml:"frame"`
	Collider ColliderSpec `yaml:"collider"`
	Movement MovementSpec `yaml:"movement"`
	Jump     JumpSpec     `yaml:"jump"`
	Weapon   WeaponSpec   `yaml:"weapon"`
	Color    YAMLColor    `yaml:"color"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	data, err := Load("player.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load player.yaml: %w", err)
	}
	var spec PlayerSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal player.yaml: %w", err)
	}
	return &spec, nil
}

type EnemySpec struct {
	Name        string       `yaml:"name"`
	MoveSpeed   float64      `yaml:"move_speed"`
	MaxWaitTime float64      `yaml:"max_wait_time"`
	Frame       FrameSpec    `yaml:"frame"`
	Collider    ColliderSpec `yaml:"collider"`
	Color       YAMLColor    `yaml:"color"`
}

func LoadEnemySpec() (*EnemySpec, error) {
	data, err := Load("enemy.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load enemy.yaml: %w", err)
	}
	var spec EnemySpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal enemy.yaml: %w", err)
	}
	return &spec, nil
}

type BulletSpec struct {
	Name   string    `yaml:"name"`
	Speed  float64   `yaml:"speed"`
	Width  int       `yaml:"width"`
	Height int       `yaml:"height"`
	Color  YAMLColor `yaml:"color"`
}

type LevelSpec struct {
	Name            string  `yaml:"name"`
	TimeLimit       float64 `yaml:"time_limit"`
	DrainRate       float64 `yaml:"drain_rate"`
	PointsPerSecond int     `yaml:"points_per_second"`
	ViewMargin      float64 `yaml:"view_margin"`
	ViewportWidth   int     `yaml:"viewport_width"`
}

// Tuning bundles every spec a level needs.
type Tuning struct {
	Player PlayerSpec
	Enemy  EnemySpec
	Bullet BulletSpec
	Level  LevelSpec
}

// LoadTuning reads all specs, preferring files on disk over the embedded
// defaults.
func LoadTuning() (Tuning, error) {
	player, err := LoadPlayerSpec()
	if err != nil {
		return Tuning{}, err
	}
	enemy, err := LoadEnemySpec()
	if err != nil {
		return Tuning{}, err
	}
	bullet, err := LoadSpec[BulletSpec]("bullet.yaml")
	if err != nil {
		return Tuning{}, err
	}
	level, err := LoadSpec[LevelSpec]("level.yaml")
	if err != nil {
		return Tuning{}, err
	}
	return Tuning{Player: *player, Enemy: *enemy, Bullet: bullet, Level: level}, nil
}

// DefaultTuning returns the values shipped in the embedded yaml files.
func DefaultTuning() Tuning {
	return Tuning{
		Player: PlayerSpec{
			Name:     "player",
			Frame:    FrameSpec{Width: 64, Height: 64},
			Collider: ColliderSpec{WidthScale: 0.4, HeightScale: 0.8},
			Movement: MovementSpec{
				Acceleration: 13000,
				MaxSpeed:     1750,
				GroundDrag:   0.48,
				AirDrag:      0.55,
				StickScale:   1,
				Deadzone:     0.5,
			},
			Jump: JumpSpec{
				MaxTime:        0.30,
				LaunchVelocity: -3500,
				ControlPower:   0.14,
				Gravity:        3400,
				MaxFallSpeed:   550,
			},
			Weapon: WeaponSpec{
				Cooldown:      0.07,
				HeatPerShot:   0.2,
				VentPerTick:   0.1,
				MaxHeat:       5,
				MuzzleOffsetY: 32,
			},
			Color: YAMLColor{color.NRGBA{R: 0xdc, G: 0x14, B: 0x3c, A: 0xff}},
		},
		Enemy: EnemySpec{
			Name:        "enemy",
			MoveSpeed:   50,
			MaxWaitTime: 0.5,
			Frame:       FrameSpec{Width: 64, Height: 64},
			Collider:    ColliderSpec{WidthScale: 0.35, HeightScale: 0.7},
			Color:       YAMLColor{color.NRGBA{R: 0x6b, G: 0x8e, B: 0x23, A: 0xff}},
		},
		Bullet: BulletSpec{
			Name:   "bullet",
			Speed:  6,
			Width:  8,
			Height: 8,
			Color:  YAMLColor{color.NRGBA{R: 0x1e, G: 0x90, B: 0xff, A: 0xff}},
		},
		Level: LevelSpec{
			Name:            "level",
			TimeLimit:       60,
			DrainRate:       100,
			PointsPerSecond: 5,
			ViewMargin:      0.5,
			ViewportWidth:   1280,
		},
	}
}

// Seconds converts a yaml seconds value into a duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
