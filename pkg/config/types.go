package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EngineBlueZ     = "bluez"
	EngineSimulated = "sim"

	defaultListenAddr   = ":8090"
	defaultScanTimeout  = 10 * time.Second
	defaultRetention    = 24 * time.Hour
	defaultRateLimit    = 1.0
	defaultRateBurst    = 2
	defaultShutdownWait = 10 * time.Second
)

var (
	errUnknownEngine      = errors.New("unknown engine")
	errSimulationRequired = errors.New("simulation_file is required for the sim engine")
	errNegativeDuration   = errors.New("durations must not be negative")
)

type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.parse(value)
	default:
		return errInvalidDuration
	}
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var nanos int64
	if err := node.Decode(&nanos); err == nil {
		*d = Duration(time.Duration(nanos))
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return errInvalidDuration
	}

	return d.parse(s)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) parse(s string) error {
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidDuration, err)
	}

	*d = Duration(dur)

	return nil
}

// AgentConfig represents the configuration for the discovery agent.
type AgentConfig struct {
	ListenAddr     string   `json:"listen_addr" yaml:"listen_addr"`       // e.g., :8090
	GRPCAddr       string   `json:"grpc_addr,omitempty" yaml:"grpc_addr"` // health endpoint, e.g., :50061
	ServiceName    string   `json:"service_name" yaml:"service_name"`     // e.g., "bleradar"
	DBPath         string   `json:"db_path,omitempty" yaml:"db_path"`     // empty keeps sightings in memory
	Engine         string   `json:"engine" yaml:"engine"`                 // "bluez" or "sim"
	SimulationFile string   `json:"simulation_file,omitempty" yaml:"simulation_file"`
	Adapter        string   `json:"adapter,omitempty" yaml:"adapter"` // adapter address, empty for the first
	ScanTimeout    Duration `json:"scan_timeout" yaml:"scan_timeout"`
	ScanInterval   Duration `json:"scan_interval,omitempty" yaml:"scan_interval"` // zero disables periodic scans
	Retention      Duration `json:"retention,omitempty" yaml:"retention"`
	RateLimit      float64  `json:"rate_limit,omitempty" yaml:"rate_limit"` // scan starts per second over HTTP
	RateBurst      int      `json:"rate_burst,omitempty" yaml:"rate_burst"`
	ShutdownWait   Duration `json:"shutdown_wait,omitempty" yaml:"shutdown_wait"`
}

// ApplyDefaults fills unset fields.
func (c *AgentConfig) ApplyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}

	if c.ServiceName == "" {
		c.ServiceName = "bleradar"
	}

	if c.Engine == "" {
		c.Engine = EngineBlueZ
	}

	if c.ScanTimeout == 0 {
		c.ScanTimeout = Duration(defaultScanTimeout)
	}

	if c.Retention == 0 {
		c.Retention = Duration(defaultRetention)
	}

	if c.RateLimit == 0 {
		c.RateLimit = defaultRateLimit
	}

	if c.RateBurst == 0 {
		c.RateBurst = defaultRateBurst
	}

	if c.ShutdownWait == 0 {
		c.ShutdownWait = Duration(defaultShutdownWait)
	}
}

// Validate implements Validator. Defaults are applied first.
func (c *AgentConfig) Validate() error {
	c.ApplyDefaults()

	switch c.Engine {
	case EngineBlueZ:
	case EngineSimulated:
		if c.SimulationFile == "" {
			return errSimulationRequired
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownEngine, c.Engine)
	}

	if c.ScanTimeout < 0 || c.ScanInterval < 0 || c.Retention < 0 {
		return errNegativeDuration
	}

	return nil
}
