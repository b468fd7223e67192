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

package transport

import (
	"encoding/binary"
	"fmt"

	"jinr.ru/greenlab/go-tdc/pkg/tdc"
)

// Sim emulates a GP2x chip on the other end of the bus. It keeps its
// own register memory and serves the opcode protocol, so the device
// layer and the control server can run without hardware. Tests script
// it by poking Status and Results directly.
type Sim struct {
	// Register memory as written through OpWriteReg.
	Regs [tdc.NumRegs][tdc.RegBytes]byte
	// Values served for OpReadStatus and OpReadResult.
	Status  uint16
	Results [tdc.NumResults]int32

	Resets   int
	Measures int
	// Opcode log of every transfer, in order.
	Log []byte
}

var _ Transport = &Sim{}

func NewSim() *Sim {
	return &Sim{}
}

func (s *Sim) Transfer(opcode byte, payload []byte) ([]byte, error) {
	s.Log = append(s.Log, opcode)
	resp := make([]byte, len(payload))
	switch {
	case opcode == tdc.OpPowerOnReset:
		s.Regs = [tdc.NumRegs][tdc.RegBytes]byte{}
		s.Resets++
	case opcode == tdc.OpStartMeas:
		s.Measures++
	case opcode >= tdc.OpWriteReg && opcode < tdc.OpWriteReg+tdc.NumRegs:
		if len(payload) != tdc.RegBytes {
			return nil, fmt.Errorf("sim: register write with %d bytes", len(payload))
		}
		copy(s.Regs[opcode-tdc.OpWriteReg][:], payload)
	case opcode >= tdc.OpReadResult && opcode < tdc.OpReadResult+tdc.NumResults:
		if len(payload) != 4 {
			return nil, fmt.Errorf("sim: result read with %d bytes", len(payload))
		}
		binary.BigEndian.PutUint32(resp, uint32(s.Results[opcode-tdc.OpReadResult]))
	case opcode == tdc.OpReadStatus:
		if len(payload) != 2 {
			return nil, fmt.Errorf("sim: status read with %d bytes", len(payload))
		}
		binary.BigEndian.PutUint16(resp, s.Status)
	case opcode == tdc.OpReadEcho:
		if len(payload) != 1 {
			return nil, fmt.Errorf("sim: echo read with %d bytes", len(payload))
		}
		resp[0] = s.Regs[1][0]
	default:
		return nil, fmt.Errorf("sim: unknown opcode %#02x", opcode)
	}
	return resp, nil
}

func (s *Sim) Close() error {
	return nil
}

// Writes returns how many register writes of the given register were
// seen. Used by tests to check the ALU fast path touches register 1
// only.
func (s *Sim) Writes(reg int) int {
	n := 0
	for _, op := range s.Log {
		if op == tdc.OpWriteReg+byte(reg) {
			n++
		}
	}
	return n
}
