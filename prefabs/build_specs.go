package prefabs

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/traversal"
	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

var layerNames = map[string]uint32{
	"solid":     component.LayerSolid,
	"ledge":     component.LayerLedge,
	"trigger":   component.LayerTrigger,
	"character": component.LayerCharacter,
}

// LayerBits ORs named collision layers together.
func LayerBits(names []string) (uint32, error) {
	var bits uint32
	for _, name := range names {
		bit, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("prefabs: unknown collision layer %q", name)
		}
		bits |= bit
	}
	return bits, nil
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type DebugShapeComponentSpec struct {
	Color    *YAMLColor `yaml:"color"`
	Width    float64    `yaml:"width"`
	Height   float64    `yaml:"height"`
	Anchored bool       `yaml:"anchored"`
}

type CameraComponentSpec struct {
	TargetName string  `yaml:"target_name"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

// PhysicsBodyComponentSpec.Type is one of static, kinematic or sensor.
type PhysicsBodyComponentSpec struct {
	Type        string  `yaml:"type"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Friction    float64 `yaml:"friction"`
	CarryHeight float64 `yaml:"carry_height"`
}

func (s PhysicsBodyComponentSpec) BodyType() (component.BodyType, error) {
	switch strings.ToLower(s.Type) {
	case "", "static":
		return component.BodyStatic, nil
	case "kinematic":
		return component.BodyKinematic, nil
	case "sensor":
		return component.BodySensor, nil
	default:
		return 0, fmt.Errorf("prefabs: unknown body type %q", s.Type)
	}
}

type CollisionLayerComponentSpec struct {
	Category []string `yaml:"category"`
	Mask     []string `yaml:"mask"`
}

type AnimationDefComponentSpec struct {
	FrameCount int     `yaml:"frame_count"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
	Complete   string  `yaml:"complete"`
}

type AnimationComponentSpec struct {
	Defs     map[string]AnimationDefComponentSpec `yaml:"defs"`
	Triggers map[string]string                    `yaml:"triggers"`
	Current  string                               `yaml:"current"`
}

// LadderComponentSpec places the climb range inside the ladder volume: the
// feet stop TopMargin below the top, and climbing off lands ExitOffset away
// from the top centre.
type LadderComponentSpec struct {
	TopMargin  float64    `yaml:"top_margin"`
	ExitOffset VectorSpec `yaml:"exit_offset"`
}

// MovingPlatformComponentSpec.Path is relative to the platform's spawn point.
type MovingPlatformComponentSpec struct {
	Path  []VectorSpec `yaml:"path"`
	Speed float64      `yaml:"speed"`
	Delay float64      `yaml:"delay"`
}

type TriggerComponentSpec struct {
	Script string         `yaml:"script"`
	Params map[string]any `yaml:"params"`
	Once   bool           `yaml:"once"`
}

type CollectableComponentSpec struct {
	Kind         string  `yaml:"kind"`
	BobAmplitude float64 `yaml:"bob_amplitude"`
	BobSpeed     float64 `yaml:"bob_speed"`
	SpinSpeed    float64 `yaml:"spin_speed"`
}

// CharacterComponentSpec is the traversal tuning of a character. Fields left
// out keep the controller defaults.
type CharacterComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	WalkSpeed             float64 `yaml:"walk_speed"`
	WalkAcceleration      float64 `yaml:"walk_acceleration"`
	WalkDeceleration      float64 `yaml:"walk_deceleration"`
	AirControl            float64 `yaml:"air_control"`
	JumpForce             float64 `yaml:"jump_force"`
	GravityForce          float64 `yaml:"gravity_force"`
	GravityFallMultiplier float64 `yaml:"gravity_fall_multiplier"`
	MaxFallSpeed          float64 `yaml:"max_fall_speed"`
	GroundBias            float64 `yaml:"ground_bias"`
	RotateSpeed           float64 `yaml:"rotate_speed"`

	LedgeRaysLength      *VectorSpec `yaml:"ledge_rays_length"`
	LedgeVerticalOffsets *VectorSpec `yaml:"ledge_vertical_offsets"`
	LedgeGrabOffsets     *VectorSpec `yaml:"ledge_grab_offsets"`
	LedgeClimbOffset     *VectorSpec `yaml:"ledge_climb_offset"`
	LedgeProbeSkin       float64     `yaml:"ledge_probe_skin"`
	LedgeMask            []string    `yaml:"ledge_mask"`

	LadderClimbSpeed float64 `yaml:"ladder_climb_speed"`
	RollSpeed        float64 `yaml:"roll_speed"`
	RollHeight       float64 `yaml:"roll_height"`
}

const (
	defaultCharacterWidth  = 0.6
	defaultCharacterHeight = 1.8
)

// Envelope is the standing collision box, centred above the feet.
func (s CharacterComponentSpec) Envelope() traversal.Envelope {
	w := s.Width
	if w <= 0 {
		w = defaultCharacterWidth
	}
	h := s.Height
	if h <= 0 {
		h = defaultCharacterHeight
	}
	return traversal.Envelope{Width: w, Height: h, Center: cp.Vector{Y: h / 2}}
}

func (s CharacterComponentSpec) ToConfig() (traversal.Config, error) {
	cfg := traversal.DefaultConfig()
	overrides := []struct {
		dst *float64
		src float64
	}{
		{&cfg.WalkSpeed, s.WalkSpeed},
		{&cfg.WalkAcceleration, s.WalkAcceleration},
		{&cfg.WalkDeceleration, s.WalkDeceleration},
		{&cfg.AirControl, s.AirControl},
		{&cfg.JumpForce, s.JumpForce},
		{&cfg.GravityForce, s.GravityForce},
		{&cfg.GravityFallMultiplier, s.GravityFallMultiplier},
		{&cfg.MaxFallSpeed, s.MaxFallSpeed},
		{&cfg.GroundBias, s.GroundBias},
		{&cfg.RotateSpeed, s.RotateSpeed},
		{&cfg.LedgeProbeSkin, s.LedgeProbeSkin},
		{&cfg.LadderClimbSpeed, s.LadderClimbSpeed},
		{&cfg.RollSpeed, s.RollSpeed},
		{&cfg.RollHeight, s.RollHeight},
	}
	for _, o := range overrides {
		if o.src != 0 {
			*o.dst = o.src
		}
	}

	vectors := []struct {
		dst *cp.Vector
		src *VectorSpec
	}{
		{&cfg.LedgeRaysLength, s.LedgeRaysLength},
		{&cfg.LedgeVerticalOffsets, s.LedgeVerticalOffsets},
		{&cfg.LedgeGrabOffsets, s.LedgeGrabOffsets},
		{&cfg.LedgeClimbOffset, s.LedgeClimbOffset},
	}
	for _, v := range vectors {
		if v.src != nil {
			*v.dst = cp.Vector{X: v.src.X, Y: v.src.Y}
		}
	}

	if len(s.LedgeMask) > 0 {
		bits, err := LayerBits(s.LedgeMask)
		if err != nil {
			return traversal.Config{}, err
		}
		cfg.LedgeMask = uint(bits)
	}

	if err := cfg.Validate(); err != nil {
		return traversal.Config{}, err
	}
	return cfg, nil
}
