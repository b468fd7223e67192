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

package ifc

import (
	"jinr.ru/greenlab/go-tdc/pkg/tdc"
)

// Device is the surface shared by all GP2x variants. Devices are not
// reentrant: one goroutine at a time, callers serialize externally.
type Device interface {
	GetName() string
	GetVariant() tdc.Variant

	// Begin resets the chip and pushes the full shadow config.
	Begin() error
	// Measure arms the chip, it then waits for a start event.
	Measure() error
	ReadResult(index int) (int32, error)
	Convert(raw int32) float64
	TestComms() (bool, error)

	// Settings exposes the shadow register file codec. Mutations stay
	// local until PushConfig.
	Settings() *tdc.Config
	PushConfig() error
	PushALU(instr tdc.ALUInstruction) error
	Snapshot() [tdc.NumRegs]uint32

	Close() error
}

// StatusReader is the extended status decode of the dual-channel
// variant. RefreshStatus fetches the 16-bit status word; Status
// returns the last fetched word and fails if there has never been a
// refresh.
type StatusReader interface {
	RefreshStatus() error
	Status() (tdc.Status, error)
}
