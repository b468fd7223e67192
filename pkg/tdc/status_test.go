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

import (
	"testing"
)

func TestStatusDecode(t *testing.T) {
	tests := []struct {
		status   Status
		ptr      int
		hits1    int
		hits2    int
		timedOut bool
	}{
		{0x0000, 0, 0, 0, false},
		{0x0065, 5, 4, 1, false},
		{0x0007, 7, 0, 0, false},
		{0x0038, 0, 7, 0, false},
		{0x01C0, 0, 0, 7, false},
		{0x0200, 0, 0, 0, true},
		{0x0400, 0, 0, 0, true},
		{0x0600, 0, 0, 0, true},
		{0x01FF, 7, 7, 7, false},
	}
	for _, tt := range tests {
		if got := tt.status.ReadPointer(); got != tt.ptr {
			t.Errorf("Status(%#04x).ReadPointer() = %d, want %d", uint16(tt.status), got, tt.ptr)
		}
		if got := tt.status.Hits(Ch1); got != tt.hits1 {
			t.Errorf("Status(%#04x).Hits(Ch1) = %d, want %d", uint16(tt.status), got, tt.hits1)
		}
		if got := tt.status.Hits(Ch2); got != tt.hits2 {
			t.Errorf("Status(%#04x).Hits(Ch2) = %d, want %d", uint16(tt.status), got, tt.hits2)
		}
		if got := tt.status.TimedOut(); got != tt.timedOut {
			t.Errorf("Status(%#04x).TimedOut() = %t, want %t", uint16(tt.status), got, tt.timedOut)
		}
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range []Variant{GP21, GP22} {
		got, err := ParseVariant(v.String())
		if err != nil {
			t.Fatalf("ParseVariant(%s) = %v", v, err)
		}
		if got != v {
			t.Errorf("ParseVariant(%s) = %v, want %v", v, got, v)
		}
	}
	if _, err := ParseVariant("gp30"); err == nil {
		t.Error("ParseVariant(gp30) succeeded, want error")
	}
}
