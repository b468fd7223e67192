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
	"encoding/binary"
)

// Config is the shadow copy of the 7 configuration registers, 4 bytes
// each, most significant byte first. All named settings read and write
// this shadow only; nothing here touches the bus. The struct is not
// safe for concurrent use, callers serialize access externally.
type Config struct {
	variant Variant
	regs    [NumRegs][RegBytes]byte
	// Result conversion factor, derived from the clock pre-divider.
	// Recomputed by SetClkPreDiv, never read from the chip.
	factor float64
}

func NewConfig(v Variant) *Config {
	c := &Config{variant: v}
	c.Reset()
	return c
}

func (c *Config) Variant() Variant {
	return c.variant
}

// Reset loads the power-up table of the variant and recomputes the
// conversion factor.
func (c *Config) Reset() {
	c.regs = DefaultTable(c.variant)
	c.updateFactor()
}

func (c *Config) word(i int) uint32 {
	return binary.BigEndian.Uint32(c.regs[i][:])
}

func (c *Config) setWord(i int, w uint32) {
	binary.BigEndian.PutUint32(c.regs[i][:], w)
}

func (c *Config) get(f Field) uint32 {
	return (c.word(f.Reg) & f.mask()) >> f.Off
}

// put clears exactly the bits of the field and ORs in the new value.
// Bits outside the field are never disturbed.
func (c *Config) put(f Field, v uint32) {
	w := c.word(f.Reg)
	w &^= f.mask()
	w |= (v << f.Off) & f.mask()
	c.setWord(f.Reg, w)
}

func (c *Config) getFlag(f Field) bool {
	return c.get(f) != 0
}

func (c *Config) putFlag(f Field, on bool) {
	if on {
		c.put(f, 1)
	} else {
		c.put(f, 0)
	}
}

// RegisterBytes returns the serialized form of one register, most
// significant byte first, the order the chip expects them on the bus.
func (c *Config) RegisterBytes(i int) [RegBytes]byte {
	return c.regs[i]
}

// Snapshot exports all registers as 32-bit words for diagnostics.
func (c *Config) Snapshot() [NumRegs]uint32 {
	var snap [NumRegs]uint32
	for i := range snap {
		snap[i] = c.word(i)
	}
	return snap
}

// Restore overwrites the shadow with a previously exported snapshot.
func (c *Config) Restore(snap [NumRegs]uint32) {
	for i, w := range snap {
		c.setWord(i, w)
	}
	c.updateFactor()
}

// MeasurementMode returns 1 or 2, after MESSB2.
func (c *Config) MeasurementMode() int {
	if c.getFlag(fieldMessb2) {
		return 2
	}
	return 1
}

// SetMeasurementMode selects measurement mode 1 or 2. Quad resolution
// exists only in mode 2, so switching to mode 1 with quad active
// downgrades the resolution to double. Callers are not trusted to do
// that themselves.
func (c *Config) SetMeasurementMode(mode int) error {
	switch mode {
	case 1:
		c.putFlag(fieldMessb2, false)
		if c.Resolution() == ResQuad {
			c.put(fieldQuadRes, 0)
			c.put(fieldDoubleRes, 1)
		}
	case 2:
		c.putFlag(fieldMessb2, true)
	default:
		return ErrValue{Setting: "measurement_mode", Value: mode}
	}
	return nil
}

// ClkPreDiv returns the mode 1 clock pre-divider, 1, 2 or 4.
func (c *Config) ClkPreDiv() int {
	switch c.get(fieldClkHSDiv) {
	case 0:
		return 1
	case 1:
		return 2
	default:
		// Raw values 2 and 3 both divide by 4.
		return 4
	}
}

// SetClkPreDiv sets the clock pre-divider. Only 1, 2 and 4 are legal.
// The result conversion factor depends on the divider, so it is
// recomputed here rather than left to the caller.
func (c *Config) SetClkPreDiv(div int) error {
	switch div {
	case 1:
		c.put(fieldClkHSDiv, 0)
	case 2:
		c.put(fieldClkHSDiv, 1)
	case 4:
		c.put(fieldClkHSDiv, 2)
	default:
		return ErrValue{Setting: "clk_pre_div", Value: div}
	}
	c.updateFactor()
	return nil
}

// ExpectedHits returns the number of hits the channel waits for.
func (c *Config) ExpectedHits(ch Channel) int {
	if ch == Ch2 {
		return int(c.get(fieldHits2))
	}
	return int(c.get(fieldHits1))
}

// SetExpectedHits sets the expected hit count of one channel, 0..4.
// The two channels occupy disjoint 3-bit fields in register 1, writing
// one never changes the other.
func (c *Config) SetExpectedHits(ch Channel, hits int) error {
	if hits < 0 || hits > 4 {
		return ErrValue{Setting: "expected_hits", Value: hits}
	}
	if ch == Ch2 {
		c.put(fieldHits2, uint32(hits))
	} else {
		c.put(fieldHits1, uint32(hits))
	}
	return nil
}

func (c *Config) Hit1Op() int {
	return int(c.get(fieldHit1Op))
}

func (c *Config) Hit2Op() int {
	return int(c.get(fieldHit2Op))
}

// SetHit1Op defines the HIT1 operator for the ALU, a 4-bit code. In
// mode 1 the ALU computes HIT1-HIT2, in mode 2 HIT2-HIT1; the operator
// encodings differ between the modes, see the datasheet.
func (c *Config) SetHit1Op(op int) error {
	if op < 0 || op > 15 {
		return ErrValue{Setting: "hit1_op", Value: op}
	}
	c.put(fieldHit1Op, uint32(op))
	return nil
}

func (c *Config) SetHit2Op(op int) error {
	if op < 0 || op > 15 {
		return ErrValue{Setting: "hit2_op", Value: op}
	}
	c.put(fieldHit2Op, uint32(op))
	return nil
}

// EdgeSensitivity returns the edge sensitivity of the start input and
// the two stop inputs.
func (c *Config) EdgeSensitivity() (start, stop1, stop2 Edge) {
	start = Edge(c.get(fieldStartEdge))
	stop1 = Edge(c.get(fieldStop1Edge))
	if c.getFlag(fieldStop1Both) {
		stop1 = EdgeBoth
	}
	stop2 = Edge(c.get(fieldStop2Edge))
	if c.getFlag(fieldStop2Both) {
		stop2 = EdgeBoth
	}
	return
}

// SetEdgeSensitivity configures which edges trigger the inputs. The
// start input cannot trigger on both edges. A stop input set to both
// edges keeps its polarity bit at rising and raises the RFEDGE bit in
// register 2 instead.
func (c *Config) SetEdgeSensitivity(start, stop1, stop2 Edge) error {
	if start != EdgeRising && start != EdgeFalling {
		return ErrValue{Setting: "start_edge", Value: int(start)}
	}
	if stop1 < EdgeRising || stop1 > EdgeBoth {
		return ErrValue{Setting: "stop1_edge", Value: int(stop1)}
	}
	if stop2 < EdgeRising || stop2 > EdgeBoth {
		return ErrValue{Setting: "stop2_edge", Value: int(stop2)}
	}
	c.put(fieldStartEdge, uint32(start))
	if stop1 == EdgeBoth {
		c.put(fieldStop1Edge, uint32(EdgeRising))
		c.putFlag(fieldStop1Both, true)
	} else {
		c.put(fieldStop1Edge, uint32(stop1))
		c.putFlag(fieldStop1Both, false)
	}
	if stop2 == EdgeBoth {
		c.put(fieldStop2Edge, uint32(EdgeRising))
		c.putFlag(fieldStop2Both, true)
	} else {
		c.put(fieldStop2Edge, uint32(stop2))
		c.putFlag(fieldStop2Both, false)
	}
	return nil
}

// Resolution returns the active resolution mode. Single is implicit:
// it is what remains when neither the double nor the quad bit is set.
func (c *Config) Resolution() Resolution {
	if c.getFlag(fieldQuadRes) {
		return ResQuad
	}
	if c.getFlag(fieldDoubleRes) {
		return ResDouble
	}
	return ResSingle
}

// SetResolution selects the resolution mode, clearing the sibling bits
// so exactly one mode is active afterwards. Quad is only legal in
// measurement mode 2.
func (c *Config) SetResolution(r Resolution) error {
	switch r {
	case ResSingle:
		c.put(fieldDoubleRes, 0)
		c.put(fieldQuadRes, 0)
	case ResDouble:
		c.put(fieldDoubleRes, 1)
		c.put(fieldQuadRes, 0)
	case ResQuad:
		if c.MeasurementMode() != 2 {
			return ErrValue{Setting: "resolution", Value: "quad in mode 1"}
		}
		c.put(fieldQuadRes, 1)
		c.put(fieldDoubleRes, 0)
	default:
		return ErrValue{Setting: "resolution", Value: int(r)}
	}
	return nil
}

// AutoCalc reports whether the chip writes the sum of all hits to
// result register 3 on its own (mode 2 only).
func (c *Config) AutoCalc() bool {
	return c.getFlag(fieldAutoCalc)
}

func (c *Config) SetAutoCalc(on bool) {
	c.putFlag(fieldAutoCalc, on)
}

func (c *Config) FirstWaveMode() bool {
	return c.getFlag(fieldFirstWave)
}

func (c *Config) SetFirstWaveMode(on bool) {
	c.putFlag(fieldFirstWave, on)
}

// FirstWaveDelays returns the relative stop delays after the first
// wave, DELREL1..3.
func (c *Config) FirstWaveDelays() (stop1, stop2, stop3 int) {
	return int(c.get(fieldDelRel1)), int(c.get(fieldDelRel2)), int(c.get(fieldDelRel3))
}

// SetFirstWaveDelays sets the relative delays of the stops after the
// first wave. The chip requires 3 <= stop1 < stop2 < stop3 <= 63. The
// three 6-bit fields span three bytes of register 3; the write goes
// through the 32-bit register word so the surrounding bits survive.
func (c *Config) SetFirstWaveDelays(stop1, stop2, stop3 int) error {
	if stop1 < 3 || !(stop1 < stop2) || !(stop2 < stop3) || stop3 > 63 {
		return ErrValue{Setting: "first_wave_delays", Value: [3]int{stop1, stop2, stop3}}
	}
	c.put(fieldDelRel1, uint32(stop1))
	c.put(fieldDelRel2, uint32(stop2))
	c.put(fieldDelRel3, uint32(stop3))
	return nil
}

// PulseWidthMeas reports whether first wave pulse width measurement is
// enabled. The chip bit is a disable flag, hence the inversion.
func (c *Config) PulseWidthMeas() bool {
	return !c.getFlag(fieldDisPW)
}

func (c *Config) SetPulseWidthMeas(on bool) {
	c.putFlag(fieldDisPW, !on)
}

// FirstWaveRisingEdge reports the first wave edge sensitivity. The
// chip bit is 0 for rising, 1 for falling.
func (c *Config) FirstWaveRisingEdge() bool {
	return !c.getFlag(fieldFWEdge)
}

func (c *Config) SetFirstWaveRisingEdge(on bool) {
	c.putFlag(fieldFWEdge, !on)
}

// The OFFS core field covers -16..+15; the OFFSRNG bits add or remove
// a fixed 20 mV, extending the usable range to -36..+35.
const (
	offsCoreMin = -16
	offsCoreMax = 15
	offsRange   = 20
	OffsetMin   = offsCoreMin - offsRange
	OffsetMax   = offsCoreMax + offsRange
)

// FirstWaveOffset returns the initial offset of the first wave
// comparator in mV.
func (c *Config) FirstWaveOffset() int {
	raw := c.get(fieldOffs)
	// 5-bit two's complement: values >= 16 are negative.
	offset := int(raw)
	if raw > offsCoreMax {
		offset -= 32
	}
	if c.getFlag(fieldOffsRng1) {
		offset -= offsRange
	} else if c.getFlag(fieldOffsRng2) {
		offset += offsRange
	}
	return offset
}

// SetFirstWaveOffset sets the comparator offset, -36..+35 mV. Values
// beyond the 5-bit core range borrow one of the OFFSRNG bits; the rest
// is stored as 5-bit two's complement.
func (c *Config) SetFirstWaveOffset(offset int) error {
	if offset < OffsetMin || offset > OffsetMax {
		return ErrValue{Setting: "first_wave_offset", Value: offset}
	}
	core := offset
	switch {
	case offset > offsCoreMax:
		core = offset - offsRange
		c.putFlag(fieldOffsRng2, true)
		c.putFlag(fieldOffsRng1, false)
	case offset < offsCoreMin:
		core = offset + offsRange
		c.putFlag(fieldOffsRng1, true)
		c.putFlag(fieldOffsRng2, false)
	default:
		c.putFlag(fieldOffsRng1, false)
		c.putFlag(fieldOffsRng2, false)
	}
	if core < 0 {
		// 5-bit wraparound, 31 + (core + 1).
		c.put(fieldOffs, uint32(core+32))
	} else {
		c.put(fieldOffs, uint32(core))
	}
	return nil
}
