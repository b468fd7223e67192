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

// Package conf holds the verbs for both kinds of configuration: the
// client config file and the device register file.
package conf

import (
	"github.com/spf13/cobra"
)

const (
	DeviceOptionName = "device"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conf",
		Short: "Work with the client config and the device registers",
	}
	cmd.AddCommand(NewShowCommand())
	cmd.AddCommand(NewPersistCommand())
	cmd.AddCommand(NewDevicesCommand())
	cmd.AddCommand(NewRegsCommand())
	cmd.AddCommand(NewPushCommand())
	return cmd
}
