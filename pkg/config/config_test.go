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
	"path/filepath"
	"testing"
)

func TestPersistLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	cfg := NewConfigAt(path)
	cfg.Host = "10.0.0.5"
	cfg.Devices = append(cfg.Devices, &Device{
		Name:    "tdc1",
		Variant: "gp21",
		Port:    "/dev/spidev0.1",
		Emulate: true,
	})
	if err := cfg.Persist(false); err != nil {
		t.Fatal(err)
	}

	loaded := NewConfigAt(path)
	if err := loaded.Load(); err != nil {
		t.Fatal(err)
	}
	if loaded.Host != "10.0.0.5" {
		t.Errorf("Host = %s, want 10.0.0.5", loaded.Host)
	}
	device, err := loaded.GetDeviceByName("tdc1")
	if err != nil {
		t.Fatal(err)
	}
	if device.Variant != "gp21" || !device.Emulate {
		t.Errorf("device = %+v, want gp21 emulated", device)
	}
}

func TestPersistRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	cfg := NewConfigAt(path)
	if err := cfg.Persist(false); err != nil {
		t.Fatal(err)
	}
	err := cfg.Persist(false)
	if _, ok := err.(ErrConfigFileExists); !ok {
		t.Fatalf("second Persist = %v, want ErrConfigFileExists", err)
	}
	if err = cfg.Persist(true); err != nil {
		t.Errorf("Persist(overwrite) = %v", err)
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	cfg := NewConfigAt(path)
	if err := cfg.Load(); err != nil {
		t.Fatal(err)
	}
	if cfg.Host != DefaultHost {
		t.Errorf("Host = %s, want %s", cfg.Host, DefaultHost)
	}
	if _, err := cfg.GetDeviceByName(DefaultDeviceName); err != nil {
		t.Errorf("GetDeviceByName(%s) = %v", DefaultDeviceName, err)
	}
}

func TestDeviceSpeedDefaults(t *testing.T) {
	device := &Device{Name: "tdc0"}
	if got := device.Speed(); got != DefaultSpeedHz {
		t.Errorf("Speed() = %d, want %d", got, DefaultSpeedHz)
	}
	device.SpeedHz = 1000000
	if got := device.Speed(); got != 1000000 {
		t.Errorf("Speed() = %d, want 1000000", got)
	}
}

func TestGetDeviceByNameNotFound(t *testing.T) {
	cfg := NewDefaultConfig()
	_, err := cfg.GetDeviceByName("nope")
	if _, ok := err.(ErrDeviceNotFound); !ok {
		t.Errorf("GetDeviceByName(nope) = %v, want ErrDeviceNotFound", err)
	}
}
