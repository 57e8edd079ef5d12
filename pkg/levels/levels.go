// Package levels holds the level definitions both peers build their initial
// world from.
package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type Level struct {
	Name     string       `yaml:"name"`
	Entities []EntitySpec `yaml:"entities"`
	// Extras are spawned once per point of difficulty
	Extras ExtraSpec `yaml:"extras"`
}

type EntitySpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Collider  ColliderSpec  `yaml:"collider"`
	// Solid is nil for bodies that never take part in solid resolution
	Solid *bool `yaml:"solid"`
	// Dynamic bodies move and fall
	Dynamic  bool        `yaml:"dynamic"`
	Platform bool        `yaml:"platform"`
	Vine     bool        `yaml:"vine"`
	Player   *PlayerSpec `yaml:"player"`
}

type TransformSpec struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

type ColliderSpec struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type PlayerSpec struct {
	Handle int `yaml:"handle"`
}

type ExtraSpec struct {
	Template EntitySpec `yaml:"template"`
	MinX     float32    `yaml:"min_x"`
	MaxX     float32    `yaml:"max_x"`
	// Spacing is the vertical distance between consecutive extras
	Spacing float32 `yaml:"spacing"`
}

// Load reads and parses an embedded level by name.
func Load(name string) (*Level, error) {
	data, err := LevelsFS.ReadFile(cleanLevelPath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to load level %s: %w", name, err)
	}
	level, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", name, err)
	}
	return level, nil
}

// Parse parses and validates a level definition.
func Parse(data []byte) (*Level, error) {
	level := &Level{}
	if err := yaml.Unmarshal(data, level); err != nil {
		return nil, err
	}
	if err := level.validate(); err != nil {
		return nil, err
	}
	return level, nil
}

func (l *Level) validate() error {
	handles := make(map[int]bool)
	for i, e := range l.Entities {
		if e.Collider.Width <= 0 || e.Collider.Height <= 0 {
			return fmt.Errorf("entity %d (%s) needs a positive collider size", i, e.Name)
		}
		if e.Player != nil {
			if handles[e.Player.Handle] {
				return fmt.Errorf("player handle %d used twice", e.Player.Handle)
			}
			handles[e.Player.Handle] = true
		}
	}
	if l.Extras.MaxX < l.Extras.MinX {
		return fmt.Errorf("extras range [%v, %v] is empty", l.Extras.MinX, l.Extras.MaxX)
	}
	if l.Extras.Template.Player != nil {
		return fmt.Errorf("extras cannot be players")
	}
	return nil
}

// Players returns the number of player entities in the level.
func (l *Level) Players() int {
	n := 0
	for _, e := range l.Entities {
		if e.Player != nil {
			n++
		}
	}
	return n
}
