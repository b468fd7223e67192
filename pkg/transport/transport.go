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

// Package transport carries opcode-framed transfers between the driver
// and a GP2x chip. The chip protocol is a single opcode byte followed
// by 0..4 payload bytes clocked in both directions at once, so the
// interface is one full-duplex exchange, not separate read/write.
package transport

// Transport is the bus the device layer talks through. Implementations
// block until the transfer completes; there is no timeout at this
// layer, measurement timeouts are reported by the chip itself in the
// status word.
type Transport interface {
	// Transfer issues the opcode immediately followed by the payload
	// bytes and returns the bytes received while the payload was on
	// the wire, most significant byte first. The response has the
	// same length as the payload. For plain commands the payload is
	// empty; for reads it is placeholder zeros.
	Transfer(opcode byte, payload []byte) ([]byte, error)
	Close() error
}
