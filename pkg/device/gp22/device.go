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

// Package gp22 drives the dual stop channel GP22.
package gp22

import (
	"encoding/binary"

	"jinr.ru/greenlab/go-tdc/pkg/config"
	deviceifc "jinr.ru/greenlab/go-tdc/pkg/device/ifc"
	"jinr.ru/greenlab/go-tdc/pkg/log"
	"jinr.ru/greenlab/go-tdc/pkg/tdc"
	"jinr.ru/greenlab/go-tdc/pkg/transport"
)

type Device struct {
	*config.Device
	cfg *tdc.Config
	tr  transport.Transport

	// Last fetched status word. Zero value means never fetched;
	// decoding then returns ErrStatusStale.
	status      tdc.Status
	statusValid bool
}

var _ deviceifc.Device = &Device{}
var _ deviceifc.StatusReader = &Device{}

// NewDevice wraps a transport. The transport is owned by the device
// until Close.
func NewDevice(device *config.Device, tr transport.Transport) (*Device, error) {
	return &Device{
		Device: device,
		cfg:    tdc.NewConfig(tdc.GP22),
		tr:     tr,
	}, nil
}

func (d *Device) GetName() string {
	return d.Name
}

func (d *Device) GetVariant() tdc.Variant {
	return tdc.GP22
}

func (d *Device) Settings() *tdc.Config {
	return d.cfg
}

// Begin resets the chip and transfers the shadow config. Call it after
// the settings are in shape; further changes need another PushConfig.
func (d *Device) Begin() error {
	log.Debug("Initializing device %s", d.Name)
	if _, err := d.tr.Transfer(tdc.OpPowerOnReset, nil); err != nil {
		return err
	}
	return d.PushConfig()
}

// PushConfig serializes all 7 registers in index order, one 4-byte
// transfer per register.
func (d *Device) PushConfig() error {
	for i := 0; i < tdc.NumRegs; i++ {
		regBytes := d.cfg.RegisterBytes(i)
		if _, err := d.tr.Transfer(tdc.OpWriteReg+byte(i), regBytes[:]); err != nil {
			return err
		}
	}
	return nil
}

// PushALU updates both hit operators and writes only the register
// holding them, skipping the full config push. Meant for streaming
// measurements where the operators change between every readout.
func (d *Device) PushALU(instr tdc.ALUInstruction) error {
	if err := d.cfg.SetHit1Op(instr.Hit1Op); err != nil {
		return err
	}
	if err := d.cfg.SetHit2Op(instr.Hit2Op); err != nil {
		return err
	}
	regBytes := d.cfg.RegisterBytes(tdc.ALUReg)
	_, err := d.tr.Transfer(tdc.OpWriteReg+tdc.ALUReg, regBytes[:])
	return err
}

// Measure arms the chip; it then waits for a start event.
func (d *Device) Measure() error {
	_, err := d.tr.Transfer(tdc.OpStartMeas, nil)
	return err
}

// RefreshStatus reads the status word from the chip. Decode methods
// operate on this snapshot, re-read before each decode.
func (d *Device) RefreshStatus() error {
	resp, err := d.tr.Transfer(tdc.OpReadStatus, make([]byte, 2))
	if err != nil {
		return err
	}
	d.status = tdc.Status(binary.BigEndian.Uint16(resp))
	d.statusValid = true
	return nil
}

func (d *Device) Status() (tdc.Status, error) {
	if !d.statusValid {
		return 0, tdc.ErrStatusStale{}
	}
	return d.status, nil
}

// ReadResult reads one of the 4 result registers as a signed 32-bit
// value; mode 1 results are two's complement.
func (d *Device) ReadResult(index int) (int32, error) {
	if index < 0 || index >= tdc.NumResults {
		return 0, tdc.ErrResultIndex{Index: index}
	}
	resp, err := d.tr.Transfer(tdc.OpReadResult+byte(index), make([]byte, 4))
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(resp)), nil
}

func (d *Device) Convert(raw int32) float64 {
	return d.cfg.Convert(raw)
}

// TestComms reads the diagnostic echo byte, the highest byte of
// register 1, and compares it to the shadow. A mismatch means the
// wiring or the bus parameters are wrong, or the config was never
// pushed.
func (d *Device) TestComms() (bool, error) {
	resp, err := d.tr.Transfer(tdc.OpReadEcho, make([]byte, 1))
	if err != nil {
		return false, err
	}
	shadow := d.cfg.RegisterBytes(tdc.ALUReg)
	return resp[0] == shadow[0], nil
}

func (d *Device) Snapshot() [tdc.NumRegs]uint32 {
	return d.cfg.Snapshot()
}

func (d *Device) Close() error {
	return d.tr.Close()
}
