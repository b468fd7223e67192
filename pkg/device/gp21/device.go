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

// Package gp21 drives the legacy single stop channel GP21. It shares
// the register codec with the GP22 but loads the GP21 power-up table
// and has no extended status word to decode.
package gp21

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
}

var _ deviceifc.Device = &Device{}

// NewDevice wraps a transport. The transport is owned by the device
// until Close.
func NewDevice(device *config.Device, tr transport.Transport) (*Device, error) {
	return &Device{
		Device: device,
		cfg:    tdc.NewConfig(tdc.GP21),
		tr:     tr,
	}, nil
}

func (d *Device) GetName() string {
	return d.Name
}

func (d *Device) GetVariant() tdc.Variant {
	return tdc.GP21
}

func (d *Device) Settings() *tdc.Config {
	return d.cfg
}

// SetExpectedHits is the single channel convenience of the legacy
// part; the second stop channel does not exist here.
func (d *Device) SetExpectedHits(hits int) error {
	return d.cfg.SetExpectedHits(tdc.Ch1, hits)
}

func (d *Device) Begin() error {
	log.Debug("Initializing device %s", d.Name)
	if _, err := d.tr.Transfer(tdc.OpPowerOnReset, nil); err != nil {
		return err
	}
	return d.PushConfig()
}

func (d *Device) PushConfig() error {
	for i := 0; i < tdc.NumRegs; i++ {
		regBytes := d.cfg.RegisterBytes(i)
		if _, err := d.tr.Transfer(tdc.OpWriteReg+byte(i), regBytes[:]); err != nil {
			return err
		}
	}
	return nil
}

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

func (d *Device) Measure() error {
	_, err := d.tr.Transfer(tdc.OpStartMeas, nil)
	return err
}

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
