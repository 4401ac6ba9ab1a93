package sim

import (
	"fmt"

	"github.com/carverauto/bleradar/pkg/config"
)

// Scenario scripts what the simulated radio reports.
type Scenario struct {
	FailListing bool      `json:"fail_listing" yaml:"fail_listing"`
	Adapters    []Adapter `json:"adapters" yaml:"adapters"`
}

// Adapter is one simulated controller and the advertisements it will hear.
type Adapter struct {
	Address   string   `json:"address" yaml:"address"`
	FailStart bool     `json:"fail_start,omitempty" yaml:"fail_start"`
	ScanError int      `json:"scan_error,omitempty" yaml:"scan_error"` // reported right before scan-done
	Devices   []Device `json:"devices" yaml:"devices"`
}

// Device is a single advertisement. Delay is measured from the previous one.
type Device struct {
	Address       string          `json:"address" yaml:"address"`
	Discriminator uint16          `json:"discriminator" yaml:"discriminator"`
	Vendor        uint16          `json:"vendor" yaml:"vendor"`
	Product       uint16          `json:"product" yaml:"product"`
	Delay         config.Duration `json:"delay,omitempty" yaml:"delay"`
}

// LoadScenario reads a scenario from a JSON or YAML file.
func LoadScenario(path string) (*Scenario, error) {
	var s Scenario
	if err := config.LoadFile(path, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", errLoadScenario, err)
	}

	return &s, nil
}
