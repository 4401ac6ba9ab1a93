package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/bleradar/pkg/ble"
	"github.com/carverauto/bleradar/pkg/models"
)

const scenario = `{
  "adapters": [
    {
      "address": "AA:BB:CC:DD:EE:FF",
      "devices": [
        {"address": "11:22:33:44:55:66", "discriminator": 3840, "vendor": 65521, "product": 32768},
        {"address": "66:55:44:33:22:11", "discriminator": 1, "vendor": 1, "product": 2}
      ]
    }
  ]
}`

func writeScenario(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scenario.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestRun_Text(t *testing.T) {
	for _, async := range []bool{false, true} {
		var out bytes.Buffer

		err := run(context.Background(), &options{
			timeout:  time.Millisecond,
			simFile:  writeScenario(t, scenario),
			useAsync: async,
		}, &out)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "11:22:33:44:55:66 discriminator=3840 vendor=0xFFF1 product=0x8000", lines[0])
	}
}

func TestRun_JSON(t *testing.T) {
	var out bytes.Buffer

	err := run(context.Background(), &options{
		timeout: time.Millisecond,
		simFile: writeScenario(t, scenario),
		jsonOut: true,
	}, &out)
	require.NoError(t, err)

	dec := json.NewDecoder(&out)

	var first models.DeviceInfo
	require.NoError(t, dec.Decode(&first))
	assert.Equal(t, models.DeviceInfo{Address: "11:22:33:44:55:66", Discriminator: 3840, Vendor: 0xFFF1, Product: 0x8000}, first)
}

func TestRun_ListingFailure(t *testing.T) {
	for _, async := range []bool{false, true} {
		err := run(context.Background(), &options{
			simFile:  writeScenario(t, `{"fail_listing": true}`),
			useAsync: async,
		}, &bytes.Buffer{})

		require.ErrorIs(t, err, ble.ErrAdapterListingFailed)
	}
}
