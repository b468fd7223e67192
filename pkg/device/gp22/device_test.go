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

package gp22

import (
	"bytes"
	"testing"

	"jinr.ru/greenlab/go-tdc/pkg/config"
	"jinr.ru/greenlab/go-tdc/pkg/tdc"
	"jinr.ru/greenlab/go-tdc/pkg/transport"
)

func newTestDevice(t *testing.T) (*Device, *transport.Sim) {
	t.Helper()
	sim := transport.NewSim()
	d, err := NewDevice(&config.Device{Name: "tdc0", Variant: "gp22", Emulate: true}, sim)
	if err != nil {
		t.Fatal(err)
	}
	return d, sim
}

func TestBegin(t *testing.T) {
	d, sim := newTestDevice(t)
	if err := d.Begin(); err != nil {
		t.Fatal(err)
	}
	if sim.Resets != 1 {
		t.Errorf("Resets = %d, want 1", sim.Resets)
	}
	if sim.Regs != tdc.DefaultTable(tdc.GP22) {
		t.Error("chip registers do not match the power-up table after Begin")
	}
	// Reset first, then the registers in index order.
	want := []byte{
		tdc.OpPowerOnReset,
		tdc.OpWriteReg, tdc.OpWriteReg + 1, tdc.OpWriteReg + 2, tdc.OpWriteReg + 3,
		tdc.OpWriteReg + 4, tdc.OpWriteReg + 5, tdc.OpWriteReg + 6,
	}
	if !bytes.Equal(sim.Log, want) {
		t.Errorf("opcode log = %x, want %x", sim.Log, want)
	}
}

func TestTestComms(t *testing.T) {
	d, sim := newTestDevice(t)
	if err := d.Begin(); err != nil {
		t.Fatal(err)
	}
	ok, err := d.TestComms()
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("TestComms() = false after Begin")
	}

	// Corrupt the chip side, the echo byte no longer matches.
	sim.Regs[1][0] ^= 0xFF
	ok, err = d.TestComms()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("TestComms() = true with corrupted chip register")
	}
}

func TestMeasure(t *testing.T) {
	d, sim := newTestDevice(t)
	if err := d.Measure(); err != nil {
		t.Fatal(err)
	}
	if sim.Measures != 1 {
		t.Errorf("Measures = %d, want 1", sim.Measures)
	}
}

func TestReadResult(t *testing.T) {
	d, sim := newTestDevice(t)
	sim.Results[0] = 131072
	sim.Results[3] = -42

	raw, err := d.ReadResult(0)
	if err != nil {
		t.Fatal(err)
	}
	if raw != 131072 {
		t.Errorf("ReadResult(0) = %d, want 131072", raw)
	}
	// 131072 raw is 2 clock periods of 250 ns at divider 1.
	if got := d.Convert(raw); got != 0.5 {
		t.Errorf("Convert(%d) = %g, want 0.5", raw, got)
	}

	raw, err = d.ReadResult(3)
	if err != nil {
		t.Fatal(err)
	}
	if raw != -42 {
		t.Errorf("ReadResult(3) = %d, want -42", raw)
	}

	for _, index := range []int{-1, 4, 7} {
		_, err = d.ReadResult(index)
		if _, ok := err.(tdc.ErrResultIndex); !ok {
			t.Errorf("ReadResult(%d) = %v, want ErrResultIndex", index, err)
		}
	}
}

func TestStatusStaleUntilRefreshed(t *testing.T) {
	d, sim := newTestDevice(t)
	_, err := d.Status()
	if _, ok := err.(tdc.ErrStatusStale); !ok {
		t.Fatalf("Status() before refresh = %v, want ErrStatusStale", err)
	}

	sim.Status = 0x0065
	if err = d.RefreshStatus(); err != nil {
		t.Fatal(err)
	}
	status, err := d.Status()
	if err != nil {
		t.Fatal(err)
	}
	if got := status.ReadPointer(); got != 5 {
		t.Errorf("ReadPointer() = %d, want 5", got)
	}
	if got := status.Hits(tdc.Ch1); got != 4 {
		t.Errorf("Hits(Ch1) = %d, want 4", got)
	}
	if got := status.Hits(tdc.Ch2); got != 1 {
		t.Errorf("Hits(Ch2) = %d, want 1", got)
	}
	if status.TimedOut() {
		t.Error("TimedOut() = true")
	}
}

func TestPushALUWritesOnlyRegister1(t *testing.T) {
	d, sim := newTestDevice(t)
	if err := d.Begin(); err != nil {
		t.Fatal(err)
	}
	writesBefore := make([]int, tdc.NumRegs)
	for i := range writesBefore {
		writesBefore[i] = sim.Writes(i)
	}

	if err := d.PushALU(tdc.ALUInstruction{Hit1Op: 9, Hit2Op: 4}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < tdc.NumRegs; i++ {
		want := writesBefore[i]
		if i == tdc.ALUReg {
			want++
		}
		if got := sim.Writes(i); got != want {
			t.Errorf("Writes(%d) = %d, want %d", i, got, want)
		}
	}
	if got := sim.Regs[tdc.ALUReg][0]; got != 0x49 {
		t.Errorf("chip register 1 byte 0 = %#02x, want 0x49", got)
	}
	if got := d.Settings().Hit1Op(); got != 9 {
		t.Errorf("shadow Hit1Op() = %d, want 9", got)
	}

	err := d.PushALU(tdc.ALUInstruction{Hit1Op: 99, Hit2Op: 0})
	if _, ok := err.(tdc.ErrValue); !ok {
		t.Errorf("PushALU with illegal operator = %v, want ErrValue", err)
	}
}
