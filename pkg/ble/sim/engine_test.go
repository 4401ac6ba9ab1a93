package sim

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/carverauto/bleradar/pkg/ble"
	"github.com/carverauto/bleradar/pkg/config"
	"github.com/carverauto/bleradar/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoAdapterScenario() Scenario {
	return Scenario{
		Adapters: []Adapter{
			{
				Address: "AA:BB:CC:DD:EE:FF",
				Devices: []Device{
					{Address: "11:22:33:44:55:66", Discriminator: 100, Vendor: 0xFFF1, Product: 0x8000},
					{Address: "11:22:33:44:55:66", Discriminator: 101, Vendor: 0xFFF1, Product: 0x8000},
					{Address: "11:22:33:44:55:66", Discriminator: 102, Vendor: 0xFFF1, Product: 0x8000},
				},
			},
			{
				Address: "00:11:22:33:44:55",
				Devices: []Device{{Address: "66:55:44:33:22:11", Discriminator: 3840}},
			},
		},
	}
}

func TestEngine_FirstAdapterOnly(t *testing.T) {
	engine := New(twoAdapterScenario())
	d := ble.NewDiscoverer(engine)

	devices, err := d.Collect(context.Background(), 10*time.Millisecond, nil)
	require.NoError(t, err)
	require.Len(t, devices, 3)

	for i, device := range devices {
		assert.Equal(t, uint16(100+i), device.Discriminator)
	}

	assert.Equal(t, Stats{ListsCreated: 1, ListsReleased: 1, ScansStarted: 1, ScansReleased: 1}, engine.Stats())
}

func TestEngine_LowercaseSelector(t *testing.T) {
	engine := New(twoAdapterScenario())

	devices, err := ble.NewDiscoverer(engine).Collect(
		context.Background(), 0, models.ParseAdapterSelector("00:11:22:33:44:55"))
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, uint16(3840), devices[0].Discriminator)

	devices, err = ble.NewDiscoverer(engine).Collect(
		context.Background(), 0, models.ParseAdapterSelector("aa:bb:cc:dd:ee:ff"))
	require.NoError(t, err)
	assert.Len(t, devices, 3)
}

func TestEngine_NoMatchStartsNoScan(t *testing.T) {
	engine := New(twoAdapterScenario())

	devices, err := ble.NewDiscoverer(engine).Collect(context.Background(), 0, models.AdapterAddress("12:34:56:78:9A:BC"))
	require.NoError(t, err)
	assert.Empty(t, devices)
	assert.Equal(t, Stats{ListsCreated: 1, ListsReleased: 1}, engine.Stats())
}

func TestEngine_Failures(t *testing.T) {
	listing := New(Scenario{FailListing: true})

	_, err := ble.NewDiscoverer(listing).Collect(context.Background(), 0, nil)
	require.ErrorIs(t, err, ble.ErrAdapterListingFailed)
	assert.Equal(t, Stats{}, listing.Stats())

	start := New(Scenario{Adapters: []Adapter{{Address: "AA:BB:CC:DD:EE:FF", FailStart: true}}})

	_, err = ble.NewDiscoverer(start).Collect(context.Background(), 0, nil)
	require.ErrorIs(t, err, ble.ErrScanStartFailed)
	assert.Equal(t, Stats{ListsCreated: 1, ListsReleased: 1}, start.Stats())
}

func TestEngine_TimeoutCutsScanShort(t *testing.T) {
	engine := New(Scenario{Adapters: []Adapter{{
		Address: "AA:BB:CC:DD:EE:FF",
		Devices: []Device{
			{Address: "11:22:33:44:55:66", Discriminator: 1},
			{Address: "11:22:33:44:55:66", Discriminator: 2, Delay: config.Duration(time.Hour)},
		},
	}}})

	devices, err := ble.NewDiscoverer(engine).Collect(context.Background(), 20*time.Millisecond, nil)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, int64(1), engine.Stats().ScansReleased)
}

func TestEngine_EarlyBreakStopsScan(t *testing.T) {
	engine := New(Scenario{Adapters: []Adapter{{
		Address: "AA:BB:CC:DD:EE:FF",
		Devices: []Device{
			{Address: "11:22:33:44:55:66", Discriminator: 1},
			{Address: "11:22:33:44:55:66", Discriminator: 2, Delay: config.Duration(time.Hour)},
		},
	}}})

	for _, err := range ble.NewDiscoverer(engine).Discover(context.Background(), time.Hour, nil) {
		require.NoError(t, err)
		break
	}

	assert.Equal(t, Stats{ListsCreated: 1, ListsReleased: 1, ScansStarted: 1, ScansReleased: 1}, engine.Stats())
}

func TestLoadScenario_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
adapters:
  - address: "AA:BB:CC:DD:EE:FF"
    scan_error: 50
    devices:
      - address: "11:22:33:44:55:66"
        discriminator: 3840
        vendor: 65521
        product: 32768
        delay: 5ms
`), 0o600))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	require.Len(t, s.Adapters, 1)
	assert.Equal(t, 50, s.Adapters[0].ScanError)
	assert.Equal(t, config.Duration(5*time.Millisecond), s.Adapters[0].Devices[0].Delay)
	assert.Equal(t, uint16(0xFFF1), s.Adapters[0].Devices[0].Vendor)
}
