package agent

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/bleradar/pkg/ble"
	"github.com/carverauto/bleradar/pkg/ble/sim"
	"github.com/carverauto/bleradar/pkg/config"
)

const scenarioYAML = `
adapters:
  - address: "AA:BB:CC:DD:EE:FF"
    devices:
      - address: "11:22:33:44:55:66"
        discriminator: 3840
        vendor: 65521
        product: 32768
`

func TestNewEngine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0o600))

	engine, err := NewEngine(config.EngineSimulated, path)
	require.NoError(t, err)
	require.IsType(t, &sim.Engine{}, engine)

	devices, err := ble.NewDiscoverer(engine).Collect(context.Background(), time.Millisecond, nil)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, uint16(3840), devices[0].Discriminator)
}

func TestNewEngine_Errors(t *testing.T) {
	_, err := NewEngine("usb", "")
	require.ErrorIs(t, err, errUnknownEngine)

	_, err = NewEngine(config.EngineSimulated, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestNewEngine_BlueZ(t *testing.T) {
	engine, err := NewEngine(config.EngineBlueZ, "")
	require.NoError(t, err)
	assert.NotNil(t, engine)
}
