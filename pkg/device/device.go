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

package device

import (
	"jinr.ru/greenlab/go-tdc/pkg/config"
	"jinr.ru/greenlab/go-tdc/pkg/device/gp21"
	"jinr.ru/greenlab/go-tdc/pkg/device/gp22"
	deviceifc "jinr.ru/greenlab/go-tdc/pkg/device/ifc"
	"jinr.ru/greenlab/go-tdc/pkg/tdc"
	"jinr.ru/greenlab/go-tdc/pkg/transport"
)

// NewDevice builds the variant device named in the config entry.
func NewDevice(dcfg *config.Device, tr transport.Transport) (deviceifc.Device, error) {
	variant, err := tdc.ParseVariant(dcfg.Variant)
	if err != nil {
		return nil, err
	}
	switch variant {
	case tdc.GP21:
		return gp21.NewDevice(dcfg, tr)
	default:
		return gp22.NewDevice(dcfg, tr)
	}
}

// OpenTransport opens the bus for a config entry: the in-process chip
// simulator when Emulate is set, otherwise the periph.io SPI port.
func OpenTransport(dcfg *config.Device) (transport.Transport, error) {
	if dcfg.Emulate {
		return transport.NewSim(), nil
	}
	return transport.OpenSPI(dcfg.Port, dcfg.Speed())
}
