package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openfreight/loadplan/core/model"
)

type PointDef struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type LoadDef struct {
	ID      int      `yaml:"id"`
	Pickup  PointDef `yaml:"pickup"`
	Dropoff PointDef `yaml:"dropoff"`
}

func (l LoadDef) ToModel() model.Load {
	return model.Load{
		ID:      l.ID,
		Pickup:  model.Point{X: l.Pickup.X, Y: l.Pickup.Y},
		Dropoff: model.Point{X: l.Dropoff.X, Y: l.Dropoff.Y},
	}
}

// Expected bounds the acceptable outcome. MaxCost is always checked;
// ExactCost and Routes are checked when non-zero.
type Expected struct {
	MaxCost   float64 `yaml:"max_cost"`
	ExactCost float64 `yaml:"exact_cost,omitempty"`
	Routes    int     `yaml:"routes,omitempty"`
}

type Scenario struct {
	Name            string    `yaml:"name"`
	Description     string    `yaml:"description,omitempty"`
	Loads           []LoadDef `yaml:"loads"`
	MaxRouteMinutes float64   `yaml:"max_route_minutes"`
	Trials          int       `yaml:"trials"`
	Seed            int64     `yaml:"seed"`
	Expected        Expected  `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
