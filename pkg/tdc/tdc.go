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

// Package tdc implements the register codec for the ACAM GP21/GP22
// time-to-digital converters: the shadow register file, the named
// setting accessors that pack values into it, the fixed-point result
// conversion and the status word decoder. The package is pure, it
// never talks to the chip; pushing the register file through a bus is
// the device layer's job.
package tdc

const (
	NumRegs  = 7
	RegBytes = 4
	// Result registers readable through OpReadResult.
	NumResults = 4
	// Register holding both ALU hit operators. Written alone by the
	// ALU fast path.
	ALUReg = 1
)

// Serial interface opcodes, from the GP22 datasheet.
const (
	// Register writes are OpWriteReg+index, 0x80..0x86.
	OpWriteReg byte = 0x80
	// Result reads are OpReadResult+index, 0xB0..0xB3, 4 bytes each.
	OpReadResult byte = 0xB0
	// Status word, 2 bytes.
	OpReadStatus byte = 0xB4
	// Echo of the highest byte of register 1, used for the comms test.
	OpReadEcho byte = 0xB5

	OpPowerOnReset byte = 0x50
	OpStartMeas    byte = 0x70
)

// Variant selects which member of the GP2x family is attached.
type Variant int

const (
	// GP21 is the legacy part with a single stop channel.
	GP21 Variant = iota
	// GP22 has two stop channels and the extended status word.
	GP22
)

func (v Variant) String() string {
	switch v {
	case GP21:
		return "gp21"
	case GP22:
		return "gp22"
	}
	return "unknown"
}

// ParseVariant maps a config string to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "gp21":
		return GP21, nil
	case "gp22":
		return GP22, nil
	}
	return 0, ErrValue{Setting: "variant", Value: s}
}

// Channel identifies a stop input.
type Channel int

const (
	Ch1 Channel = iota
	Ch2
)

// Edge sensitivity of a start/stop input.
type Edge int

const (
	EdgeRising Edge = iota
	EdgeFalling
	// EdgeBoth is legal for the stop inputs only.
	EdgeBoth
)

// Resolution is the measurement resolution mode. The modes are
// mutually exclusive; single has no dedicated bit and is in effect
// when neither the double nor the quad bit is set.
type Resolution int

const (
	ResSingle Resolution = iota
	ResDouble
	ResQuad
)

func (r Resolution) String() string {
	switch r {
	case ResSingle:
		return "single"
	case ResDouble:
		return "double"
	case ResQuad:
		return "quad"
	}
	return "unknown"
}

// ALUInstruction selects how the ALU combines two hit timestamps.
// Both operator fields live in register 1 and are written together.
type ALUInstruction struct {
	ID     int `json:"id"`
	Hit1Op int `json:"hit1_op"`
	Hit2Op int `json:"hit2_op"`
}

// Power-up register tables. Measurement mode 2, quad resolution for
// the GP22; the GP21 table ships with mode 1 and double resolution.
//
// Reg 0 byte 0 (0xF3 vs 0x43) and reg 6 byte 2 (0x60 vs 0x50) disagree
// between the two tables. The values are carried verbatim from the
// historical drivers; neither has been re-verified against the other
// part's datasheet, so they are kept separate rather than unified.
var defaultGP22 = [NumRegs][RegBytes]byte{
	{0xF3, 0x07, 0x68, 0x00},
	{0x21, 0x42, 0x00, 0x00},
	{0x20, 0x00, 0x00, 0x00},
	{0x20, 0x00, 0x00, 0x00},
	{0x20, 0x00, 0x00, 0x00},
	{0x40, 0x00, 0x00, 0x00},
	{0x40, 0x20, 0x60, 0x00},
}

var defaultGP21 = [NumRegs][RegBytes]byte{
	{0x43, 0x07, 0x60, 0x00},
	{0x21, 0x42, 0x00, 0x00},
	{0x20, 0x00, 0x00, 0x00},
	{0x20, 0x00, 0x00, 0x00},
	{0x20, 0x00, 0x00, 0x00},
	{0x40, 0x00, 0x00, 0x00},
	{0x40, 0x20, 0x50, 0x00},
}

// DefaultTable returns the power-up register table for a variant.
func DefaultTable(v Variant) [NumRegs][RegBytes]byte {
	if v == GP21 {
		return defaultGP21
	}
	return defaultGP22
}
