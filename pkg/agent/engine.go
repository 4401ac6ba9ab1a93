package agent

import (
	"fmt"
	"log"

	"github.com/carverauto/bleradar/pkg/ble"
	"github.com/carverauto/bleradar/pkg/ble/bluez"
	"github.com/carverauto/bleradar/pkg/ble/sim"
	"github.com/carverauto/bleradar/pkg/config"
)

// NewEngine builds the scan engine named by kind. simulationFile is only
// read for the sim engine.
func NewEngine(kind, simulationFile string) (ble.Engine, error) {
	switch kind {
	case config.EngineBlueZ, "":
		return bluez.New(), nil
	case config.EngineSimulated:
		scenario, err := sim.LoadScenario(simulationFile)
		if err != nil {
			return nil, err
		}

		log.Printf("Using simulated radio with %d adapter(s) from %s", len(scenario.Adapters), simulationFile)

		return sim.New(*scenario), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownEngine, kind)
	}
}
