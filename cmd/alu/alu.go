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

package alu

import (
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-tdc/pkg/command"
	"jinr.ru/greenlab/go-tdc/pkg/config"
	"jinr.ru/greenlab/go-tdc/pkg/tdc"
)

const (
	DeviceOptionName = "device"
	Hit1OpOptionName = "hit1-op"
	Hit2OpOptionName = "hit2-op"
)

func NewCommand() *cobra.Command {
	var device string
	var hit1Op, hit2Op int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "alu",
		Short: "Set the hit operators and write only the register holding them",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			return apiClient.PushALU(device, tdc.ALUInstruction{
				Hit1Op: hit1Op,
				Hit2Op: hit2Op,
			})
		},
	}
	cmd.Flags().StringVar(&device, DeviceOptionName, config.DefaultDeviceName, "Device name")
	cmd.Flags().IntVar(&hit1Op, Hit1OpOptionName, 0, "First operand selector, 0 to 15")
	cmd.Flags().IntVar(&hit2Op, Hit2OpOptionName, 0, "Second operand selector, 0 to 15")

	return cmd
}
