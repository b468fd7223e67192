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
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"jinr.ru/greenlab/go-tdc/pkg/log"
)

// SPI drives a GP2x over a periph.io SPI port. The chip wants clock
// polarity 0 with phase 1 (SPI mode 1) and the most significant bit
// first, which is the spidev default bit order.
type SPI struct {
	port spi.PortCloser
	conn spi.Conn
}

var _ Transport = &SPI{}

// OpenSPI initializes the periph host drivers once and connects to the
// named port, e.g. /dev/spidev0.0. The port is owned by the returned
// transport until Close.
func OpenSPI(portName string, speedHz int64) (*SPI, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	port, err := spireg.Open(portName)
	if err != nil {
		return nil, err
	}
	conn, err := port.Connect(physic.Frequency(speedHz)*physic.Hertz, spi.Mode1, 8)
	if err != nil {
		port.Close()
		return nil, err
	}
	log.Debug("SPI port open: %s at %d Hz", portName, speedHz)
	return &SPI{port: port, conn: conn}, nil
}

func (s *SPI) Transfer(opcode byte, payload []byte) ([]byte, error) {
	write := make([]byte, 1+len(payload))
	write[0] = opcode
	copy(write[1:], payload)
	read := make([]byte, len(write))
	if err := s.conn.Tx(write, read); err != nil {
		return nil, err
	}
	// The byte clocked out while the opcode went in is garbage.
	return read[1:], nil
}

func (s *SPI) Close() error {
	return s.port.Close()
}
