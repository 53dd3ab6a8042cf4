package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PinMap assigns logical lift signals to addressable hardware lines.
// Enable selects between a real I/O backend and a no-op stub.
type PinMap struct {
	Enable bool   `yaml:"enable"`
	Addr   string `yaml:"addr"`
	Inputs struct {
		Up        int `yaml:"up"`
		Down      int `yaml:"down"`
		OpenDoor  int `yaml:"open_door"`
		CloseDoor int `yaml:"close_door"`
		SlowMode  int `yaml:"slow_mode"`
	} `yaml:"inputs"`
	Outputs struct {
		FloorSensors [][]int `yaml:"floor_sensors"` // [floor][top, center, bottom]
		DoorSensors  []int   `yaml:"door_sensors"`  // [closed, open]
		CabinButtons []int   `yaml:"cabin_buttons"`
		FloorButtons []int   `yaml:"floor_buttons"`
	} `yaml:"outputs"`
	LampInputs struct {
		CabinButtons []int `yaml:"cabin_buttons"`
		FloorButtons []int `yaml:"floor_buttons"`
	} `yaml:"lamp_inputs"`
}

// LoadPinMap reads the hardware line assignments from a YAML file.
func LoadPinMap(path string) (PinMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PinMap{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var pins PinMap
	if err := yaml.Unmarshal(data, &pins); err != nil {
		return PinMap{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return pins, nil
}
