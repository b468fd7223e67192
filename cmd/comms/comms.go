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

package comms

import (
	"errors"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-tdc/pkg/command"
	"jinr.ru/greenlab/go-tdc/pkg/config"
)

const (
	DeviceOptionName = "device"
)

func NewCommand() *cobra.Command {
	var device string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "comms",
		Short: "Check SPI communication via the diagnostic echo byte",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			ok, err := apiClient.Comms(device)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("Echo byte mismatch. Check wiring and bus parameters")
			}
			cmd.Println("ok")
			return nil
		},
	}
	cmd.Flags().StringVar(&device, DeviceOptionName, config.DefaultDeviceName, "Device name")

	return cmd
}
