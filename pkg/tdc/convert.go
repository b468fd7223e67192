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

// Raw measurement results are Q16.16 fixed point multiples of the
// reference clock period. The reference clock is 4 MHz; in mode 1 it
// is additionally divided by the clock pre-divider.
const (
	qConv        = 1.0 / 65536.0 // 2^-16
	refClockHz   = 4000000.0
	microsPerSec = 1000000.0
)

func (c *Config) updateFactor() {
	c.factor = qConv * (1.0 / refClockHz) * microsPerSec * float64(c.ClkPreDiv())
}

// Factor returns the current raw-to-microseconds conversion factor.
// It goes stale whenever the clock pre-divider changes, so consumers
// must not cache it.
func (c *Config) Factor() float64 {
	return c.factor
}

// Convert turns a raw result register value into microseconds. Mode 1
// results are two's complement, hence the signed input.
func (c *Config) Convert(raw int32) float64 {
	return float64(raw) * c.factor
}
