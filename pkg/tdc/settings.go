/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package tdc

import (
	"sort"
)

// The settings registry maps wire/CLI names to the typed accessors so
// the API server and the CLI can address any setting uniformly.
// Booleans travel as 0/1, multi-value settings as ordered tuples.

type settingSpec struct {
	arity int
	get   func(*Config) []int
	set   func(*Config, []int) error
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var settings = map[string]settingSpec{
	"measurement_mode": {
		arity: 1,
		get:   func(c *Config) []int { return []int{c.MeasurementMode()} },
		set:   func(c *Config, v []int) error { return c.SetMeasurementMode(v[0]) },
	},
	"clk_pre_div": {
		arity: 1,
		get:   func(c *Config) []int { return []int{c.ClkPreDiv()} },
		set:   func(c *Config, v []int) error { return c.SetClkPreDiv(v[0]) },
	},
	"expected_hits_ch1": {
		arity: 1,
		get:   func(c *Config) []int { return []int{c.ExpectedHits(Ch1)} },
		set:   func(c *Config, v []int) error { return c.SetExpectedHits(Ch1, v[0]) },
	},
	"expected_hits_ch2": {
		arity: 1,
		get:   func(c *Config) []int { return []int{c.ExpectedHits(Ch2)} },
		set:   func(c *Config, v []int) error { return c.SetExpectedHits(Ch2, v[0]) },
	},
	"hit1_op": {
		arity: 1,
		get:   func(c *Config) []int { return []int{c.Hit1Op()} },
		set:   func(c *Config, v []int) error { return c.SetHit1Op(v[0]) },
	},
	"hit2_op": {
		arity: 1,
		get:   func(c *Config) []int { return []int{c.Hit2Op()} },
		set:   func(c *Config, v []int) error { return c.SetHit2Op(v[0]) },
	},
	"edge_sensitivity": {
		arity: 3,
		get: func(c *Config) []int {
			start, stop1, stop2 := c.EdgeSensitivity()
			return []int{int(start), int(stop1), int(stop2)}
		},
		set: func(c *Config, v []int) error {
			return c.SetEdgeSensitivity(Edge(v[0]), Edge(v[1]), Edge(v[2]))
		},
	},
	"resolution": {
		arity: 1,
		get:   func(c *Config) []int { return []int{int(c.Resolution())} },
		set:   func(c *Config, v []int) error { return c.SetResolution(Resolution(v[0])) },
	},
	"auto_calc": {
		arity: 1,
		get:   func(c *Config) []int { return []int{boolInt(c.AutoCalc())} },
		set:   func(c *Config, v []int) error { c.SetAutoCalc(v[0] != 0); return nil },
	},
	"first_wave_mode": {
		arity: 1,
		get:   func(c *Config) []int { return []int{boolInt(c.FirstWaveMode())} },
		set:   func(c *Config, v []int) error { c.SetFirstWaveMode(v[0] != 0); return nil },
	},
	"first_wave_delays": {
		arity: 3,
		get: func(c *Config) []int {
			s1, s2, s3 := c.FirstWaveDelays()
			return []int{s1, s2, s3}
		},
		set: func(c *Config, v []int) error {
			return c.SetFirstWaveDelays(v[0], v[1], v[2])
		},
	},
	"pulse_width_meas": {
		arity: 1,
		get:   func(c *Config) []int { return []int{boolInt(c.PulseWidthMeas())} },
		set:   func(c *Config, v []int) error { c.SetPulseWidthMeas(v[0] != 0); return nil },
	},
	"first_wave_rising_edge": {
		arity: 1,
		get:   func(c *Config) []int { return []int{boolInt(c.FirstWaveRisingEdge())} },
		set:   func(c *Config, v []int) error { c.SetFirstWaveRisingEdge(v[0] != 0); return nil },
	},
	"first_wave_offset": {
		arity: 1,
		get:   func(c *Config) []int { return []int{c.FirstWaveOffset()} },
		set:   func(c *Config, v []int) error { return c.SetFirstWaveOffset(v[0]) },
	},
}

// SettingNames lists the registry in stable order.
func SettingNames() []string {
	names := make([]string, 0, len(settings))
	for name := range settings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Setting reads a named setting.
func (c *Config) Setting(name string) ([]int, error) {
	spec, ok := settings[name]
	if !ok {
		return nil, ErrSetting{Name: name}
	}
	return spec.get(c), nil
}

// ApplySetting writes a named setting. The register file is unchanged
// when the name is unknown, the arity is wrong or the values are out
// of range.
func (c *Config) ApplySetting(name string, values []int) error {
	spec, ok := settings[name]
	if !ok {
		return ErrSetting{Name: name}
	}
	if len(values) != spec.arity {
		return ErrArity{Name: name, Want: spec.arity, Got: len(values)}
	}
	return spec.set(c, values)
}
