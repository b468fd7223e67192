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

package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Device describes one TDC chip attached to the host.
type Device struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"` // gp21 or gp22
	// Port is the SPI port name as understood by periph.io spireg,
	// e.g. /dev/spidev0.0 or SPI0.0.
	Port    string `yaml:"port"`
	SpeedHz int64  `yaml:"speed_hz,omitempty"`
	// Emulate replaces the SPI port with an in-process chip simulator.
	Emulate bool `yaml:"emulate,omitempty"`
}

type Config struct {
	Host     string    `yaml:"host"`
	LogLevel string    `yaml:"log_level,omitempty"`
	DBPath   string    `yaml:"db_path,omitempty"`
	Devices  []*Device `yaml:"devices"`
	filepath string
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(&c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	err = ioutil.WriteFile(c.filepath, data, 0644)
	if err != nil {
		return err
	}

	return nil
}

// Load reads the config file if it exists, otherwise the defaults stay
// in effect.
func (c *Config) Load() error {
	data, err := ioutil.ReadFile(c.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) GetDeviceByName(name string) (*Device, error) {
	for _, device := range c.Devices {
		if device.Name == name {
			return device, nil
		}
	}
	return nil, ErrDeviceNotFound{Name: name}
}

func (d *Device) Speed() int64 {
	if d.SpeedHz == 0 {
		return DefaultSpeedHz
	}
	return d.SpeedHz
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, StateFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		Host:     DefaultHost,
		LogLevel: DefaultLogLevel,
		DBPath:   DefaultDBPath(),
		Devices: []*Device{
			{
				Name:    DefaultDeviceName,
				Variant: DefaultVariant,
				Port:    DefaultPort,
				SpeedHz: DefaultSpeedHz,
			},
		},
		filepath: DefaultConfigPath(),
	}
}

// NewConfigAt is like NewDefaultConfig but persists to/loads from the
// given file. Used by tests.
func NewConfigAt(path string) *Config {
	c := NewDefaultConfig()
	c.filepath = path
	return c
}
