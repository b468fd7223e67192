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

package conf

import (
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-tdc/pkg/command"
	"jinr.ru/greenlab/go-tdc/pkg/config"
)

func NewRegsCommand() *cobra.Command {
	var device string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "regs",
		Short: "Show the shadow register file of a device",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			regs, err := apiClient.ConfigGet(device)
			if err != nil {
				return err
			}
			for i, word := range regs.Registers {
				cmd.Printf("reg%d: %s\n", i, word)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&device, DeviceOptionName, config.DefaultDeviceName, "Device name")

	return cmd
}
