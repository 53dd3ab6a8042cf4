package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	TickInterval  = 20 * time.Millisecond
	InputPollRate = 50 * time.Millisecond
	PulseDuration = 50 * time.Millisecond
	AlarmCooldown = 1500 * time.Millisecond
)

// Geometry holds the shaft and cabin dimensions after scaling.
// All lengths and speeds are multiplied by the global factor K on load;
// DoorStepNorm is a fraction of full door travel per tick and is not scaled.
type Geometry struct {
	K            float64
	FieldWidth   float64
	FieldHeight  float64
	NumFloors    int
	FloorHeight  float64
	FloorSpacing float64
	LiftWidth    float64
	LiftHeight   float64
	NormalSpeed  float64
	SlowSpeed    float64
	DoorStepNorm float64
	LampRadius   float64
}

type rawGeometry struct {
	K     float64 `yaml:"k"`
	Field struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"field"`
	NumFloors    int     `yaml:"num_floors"`
	FloorHeight  float64 `yaml:"floor_height"`
	FloorSpacing float64 `yaml:"floor_spacing"`
	Lift         struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"lift"`
	Speeds struct {
		Normal float64 `yaml:"normal"`
		Slow   float64 `yaml:"slow"`
	} `yaml:"speeds"`
	DoorStepNorm float64 `yaml:"door_speed_norm"`
	LampRadius   float64 `yaml:"lamp_radius"`
}

// LoadGeometry reads the geometry/speed configuration from a YAML file
// and applies the global scale factor.
func LoadGeometry(path string) (Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Geometry{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var raw rawGeometry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Geometry{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	k := raw.K
	if k == 0 {
		k = 1
	}
	geo := Geometry{
		K:            k,
		FieldWidth:   raw.Field.Width * k,
		FieldHeight:  raw.Field.Height * k,
		NumFloors:    raw.NumFloors,
		FloorHeight:  raw.FloorHeight * k,
		FloorSpacing: raw.FloorSpacing * k,
		LiftWidth:    raw.Lift.Width * k,
		LiftHeight:   raw.Lift.Height * k,
		NormalSpeed:  raw.Speeds.Normal * k,
		SlowSpeed:    raw.Speeds.Slow * k,
		DoorStepNorm: raw.DoorStepNorm,
		LampRadius:   raw.LampRadius * k,
	}
	return geo, nil
}
