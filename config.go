package tether

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SlotMapping declares that the source slot's value feeds the target slot.
// Mappings chain: with A→B and B→C configured, pressing A drives C.
type SlotMapping struct {
	Source string `yaml:"source" json:"source"`
	Target string `yaml:"target" json:"target"`
}

// RawDeviceConfig binds a device-specific source to a slot name.
// Device selects the driver ("keyboard", "mouse", "timer"), Source is the
// driver's own identifier for the control (a key name, a button name), and
// Slot is the slot the driver will emit on. Resolution never looks at these
// entries; they are consumed by the device layer only.
type RawDeviceConfig struct {
	Device string `yaml:"device" json:"device"`
	Source string `yaml:"source" json:"source"`
	Slot   string `yaml:"slot" json:"slot"`
}

// ConstantConfig declares a slot that receives a fixed axis value once at
// startup, before any device event is processed.
type ConstantConfig struct {
	Slot  string  `yaml:"slot" json:"slot"`
	Value float64 `yaml:"value" json:"value"`
}

// Config is the startup routing configuration: the virtual mapping list plus
// raw-device and constant entries. It is loaded once and compiled into the
// SlotManager's adjacency graph when the ToolSystem is created; mutating it
// afterwards has no effect.
type Config struct {
	Mappings   []SlotMapping     `yaml:"mappings" json:"mappings"`
	RawDevices []RawDeviceConfig `yaml:"rawdevices" json:"rawdevices"`
	Constants  []ConstantConfig  `yaml:"constants" json:"constants"`
}

// LoadConfig reads a routing configuration from a YAML or JSON file.
// The extension selects the format; anything that is not ".json" is parsed
// as YAML.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tether: read config: %w", err)
	}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("tether: parse %s: %w", filepath.Base(path), err)
		}
		return &cfg, nil
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML routing configuration.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("tether: parse config: %w", err)
	}
	return &cfg, nil
}

// DefaultConfig returns the stock desktop profile: the three mouse buttons
// feed PrimaryAction, SecondaryAction and MetaAction, and the mouse and
// timer raw devices are bound to their usual slots.
func DefaultConfig() *Config {
	return &Config{
		Mappings: []SlotMapping{
			{Source: SlotLeftButton, Target: SlotPrimaryAction},
			{Source: SlotRightButton, Target: SlotSecondaryAction},
			{Source: SlotMiddleButton, Target: SlotMetaAction},
		},
		RawDevices: []RawDeviceConfig{
			{Device: "mouse", Source: "Left", Slot: SlotLeftButton},
			{Device: "mouse", Source: "Right", Slot: SlotRightButton},
			{Device: "mouse", Source: "Middle", Slot: SlotMiddleButton},
			{Device: "mouse", Source: "Pointer", Slot: SlotPointerTransformation},
			{Device: "timer", Source: "Tick", Slot: SlotSystemTime},
		},
	}
}
