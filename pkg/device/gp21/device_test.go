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

package gp21

import (
	"testing"

	"jinr.ru/greenlab/go-tdc/pkg/config"
	"jinr.ru/greenlab/go-tdc/pkg/tdc"
	"jinr.ru/greenlab/go-tdc/pkg/transport"
)

func TestBegin(t *testing.T) {
	sim := transport.NewSim()
	d, err := NewDevice(&config.Device{Name: "tdc0", Variant: "gp21", Emulate: true}, sim)
	if err != nil {
		t.Fatal(err)
	}
	if err = d.Begin(); err != nil {
		t.Fatal(err)
	}
	if sim.Resets != 1 {
		t.Errorf("Resets = %d, want 1", sim.Resets)
	}
	if sim.Regs != tdc.DefaultTable(tdc.GP21) {
		t.Error("chip registers do not match the power-up table after Begin")
	}
	if got := d.Settings().MeasurementMode(); got != 1 {
		t.Errorf("MeasurementMode() = %d, want 1", got)
	}
	if got := d.Settings().Resolution(); got != tdc.ResDouble {
		t.Errorf("Resolution() = %s, want double", got)
	}
}

func TestSetExpectedHits(t *testing.T) {
	sim := transport.NewSim()
	d, err := NewDevice(&config.Device{Name: "tdc0", Variant: "gp21", Emulate: true}, sim)
	if err != nil {
		t.Fatal(err)
	}
	if err = d.SetExpectedHits(3); err != nil {
		t.Fatal(err)
	}
	if got := d.Settings().ExpectedHits(tdc.Ch1); got != 3 {
		t.Errorf("ExpectedHits(Ch1) = %d, want 3", got)
	}

	err = d.SetExpectedHits(5)
	if _, ok := err.(tdc.ErrValue); !ok {
		t.Errorf("SetExpectedHits(5) = %v, want ErrValue", err)
	}
}
