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

package config

const (
	ConfigDir  = ".go-tdc"
	ConfigFile = "config"
	StateFile  = "state.db"

	DefaultHost     = "127.0.0.1"
	DefaultLogLevel = "info"

	DefaultDeviceName = "tdc0"
	DefaultVariant    = "gp22"
	DefaultPort       = "/dev/spidev0.0"
	// The GP22 tolerates up to 20 MHz on the serial interface, the
	// historical setups clocked it at 14 MHz.
	DefaultSpeedHz = 14000000
)
