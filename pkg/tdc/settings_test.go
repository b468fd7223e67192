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
	"reflect"
	"sort"
	"testing"
)

func TestSettingNames(t *testing.T) {
	names := SettingNames()
	if len(names) != len(settings) {
		t.Fatalf("SettingNames() has %d entries, registry has %d", len(names), len(settings))
	}
	if !sort.StringsAreSorted(names) {
		t.Error("SettingNames() is not sorted")
	}
}

func TestApplySettingRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values []int
	}{
		{"measurement_mode", []int{1}},
		{"clk_pre_div", []int{2}},
		{"expected_hits_ch1", []int{4}},
		{"expected_hits_ch2", []int{1}},
		{"hit1_op", []int{9}},
		{"hit2_op", []int{4}},
		{"edge_sensitivity", []int{1, 2, 0}},
		{"resolution", []int{1}},
		{"auto_calc", []int{1}},
		{"first_wave_mode", []int{1}},
		{"first_wave_delays", []int{3, 8, 20}},
		{"pulse_width_meas", []int{0}},
		{"first_wave_rising_edge", []int{0}},
		{"first_wave_offset", []int{-25}},
	}
	c := NewConfig(GP22)
	for _, tt := range tests {
		if err := c.ApplySetting(tt.name, tt.values); err != nil {
			t.Fatalf("ApplySetting(%s, %v) = %v", tt.name, tt.values, err)
		}
		got, err := c.Setting(tt.name)
		if err != nil {
			t.Fatalf("Setting(%s) = %v", tt.name, err)
		}
		if !reflect.DeepEqual(got, tt.values) {
			t.Errorf("Setting(%s) = %v, want %v", tt.name, got, tt.values)
		}
	}
}

func TestApplySettingUnknownName(t *testing.T) {
	c := NewConfig(GP22)
	err := c.ApplySetting("no_such_setting", []int{1})
	if _, ok := err.(ErrSetting); !ok {
		t.Errorf("ApplySetting(no_such_setting) = %v, want ErrSetting", err)
	}
	_, err = c.Setting("no_such_setting")
	if _, ok := err.(ErrSetting); !ok {
		t.Errorf("Setting(no_such_setting) = %v, want ErrSetting", err)
	}
}

func TestApplySettingWrongArity(t *testing.T) {
	c := NewConfig(GP22)
	before := c.Snapshot()
	err := c.ApplySetting("edge_sensitivity", []int{1})
	if _, ok := err.(ErrArity); !ok {
		t.Errorf("ApplySetting(edge_sensitivity, 1 value) = %v, want ErrArity", err)
	}
	err = c.ApplySetting("clk_pre_div", []int{1, 2})
	if _, ok := err.(ErrArity); !ok {
		t.Errorf("ApplySetting(clk_pre_div, 2 values) = %v, want ErrArity", err)
	}
	if c.Snapshot() != before {
		t.Error("register file changed by rejected writes")
	}
}

func TestApplySettingOutOfRangeKeepsState(t *testing.T) {
	c := NewConfig(GP22)
	before := c.Snapshot()
	err := c.ApplySetting("expected_hits_ch1", []int{9})
	if _, ok := err.(ErrValue); !ok {
		t.Fatalf("ApplySetting(expected_hits_ch1, 9) = %v, want ErrValue", err)
	}
	if c.Snapshot() != before {
		t.Error("register file changed by rejected write")
	}
}
