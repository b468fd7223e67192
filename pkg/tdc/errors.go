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
	"fmt"
)

// ErrValue returned when a setting value is outside its legal domain.
// The register file is left unchanged.
type ErrValue struct {
	Setting string
	Value   interface{}
}

func (e ErrValue) Error() string {
	return fmt.Sprintf("Value out of range for setting %s: %v", e.Setting, e.Value)
}

// ErrResultIndex returned when reading a result register that does not exist
type ErrResultIndex struct {
	Index int
}

func (e ErrResultIndex) Error() string {
	return fmt.Sprintf("No such result register: %d", e.Index)
}

// ErrStatusStale returned when the status word is decoded before any refresh
type ErrStatusStale struct{}

func (e ErrStatusStale) Error() string {
	return "Status word has never been read, call RefreshStatus first"
}

// ErrSetting returned when a setting name is not known to the registry
type ErrSetting struct {
	Name string
}

func (e ErrSetting) Error() string {
	return fmt.Sprintf("No such setting: %s", e.Name)
}

// ErrArity returned when a setting is applied with the wrong number of values
type ErrArity struct {
	Name string
	Want int
	Got  int
}

func (e ErrArity) Error() string {
	return fmt.Sprintf("Setting %s takes %d values, got %d", e.Name, e.Want, e.Got)
}
