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

// Status is the 16-bit status word of the GP22. It is a snapshot: the
// chip does not push updates, the device layer reads it with
// OpReadStatus and the decoders below only see that snapshot. Decoding
// after the measurement state changed without a fresh read returns
// stale answers, re-read first.
type Status uint16

const (
	statusPtrMask     = 0x0007
	statusHits1Mask   = 0x0038
	statusHits1Shift  = 3
	statusHits2Mask   = 0x01C0
	statusHits2Shift  = 6
	statusTimeoutMask = 0x0600 // TDC timeout and pre-counter overflow
)

// TimedOut reports whether the measurement ran into a timeout.
func (s Status) TimedOut() bool {
	return s&statusTimeoutMask > 0
}

// Hits returns how many hits the channel registered, 0..7.
func (s Status) Hits(ch Channel) int {
	if ch == Ch2 {
		return int(s&statusHits2Mask) >> statusHits2Shift
	}
	return int(s&statusHits1Mask) >> statusHits1Shift
}

// ReadPointer returns the result register read pointer, 0..7.
func (s Status) ReadPointer() int {
	return int(s & statusPtrMask)
}
