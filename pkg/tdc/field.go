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

// Field is a bit span within one register. Offsets count from the
// least significant bit of the 32-bit register word, so a field that
// crosses byte boundaries in the serialized big-endian form is still a
// single contiguous span here.
type Field struct {
	Reg   int
	Off   uint
	Width uint
}

func (f Field) mask() uint32 {
	return ((uint32(1) << f.Width) - 1) << f.Off
}

// Field map for the GP2x configuration registers. Names follow the
// datasheet.
var (
	// Reg 0
	fieldStartEdge = Field{0, 8, 1}  // NEG_START
	fieldStop1Edge = Field{0, 9, 1}  // NEG_STOP1
	fieldStop2Edge = Field{0, 10, 1} // NEG_STOP2
	fieldMessb2    = Field{0, 11, 1} // MESSB2, 0 = mode 1, 1 = mode 2
	fieldClkHSDiv  = Field{0, 20, 2} // DIV_CLKHS

	// Reg 1
	fieldHits1  = Field{1, 16, 3} // HITIN1
	fieldHits2  = Field{1, 19, 3} // HITIN2
	fieldHit1Op = Field{1, 24, 4} // HIT1
	fieldHit2Op = Field{1, 28, 4} // HIT2

	// Reg 2, trigger on both edges of the stop inputs
	fieldStop1Both = Field{2, 27, 1} // RFEDGE1
	fieldStop2Both = Field{2, 28, 1} // RFEDGE2

	// Reg 3
	fieldDelRel1   = Field{3, 8, 6}  // DELREL1
	fieldDelRel2   = Field{3, 14, 6} // DELREL2
	fieldDelRel3   = Field{3, 20, 6} // DELREL3
	fieldFirstWave = Field{3, 30, 1} // EN_FIRST_WAVE
	fieldAutoCalc  = Field{3, 31, 1} // EN_AUTOCALC_MB2

	// Reg 4, first wave tuning
	fieldOffs     = Field{4, 8, 5}  // OFFS, 5-bit two's complement
	fieldOffsRng1 = Field{4, 13, 1} // OFFSRNG1, extra -20
	fieldOffsRng2 = Field{4, 14, 1} // OFFSRNG2, extra +20
	fieldFWEdge   = Field{4, 15, 1} // EDGE_FW, 0 = rising
	fieldDisPW    = Field{4, 16, 1} // DIS_PW, 0 = pulse width meas on

	// Reg 6
	fieldDoubleRes = Field{6, 12, 1} // DOUBLE_RES
	fieldQuadRes   = Field{6, 13, 1} // QUAD_RES
)
