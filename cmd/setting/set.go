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

package setting

import (
	"strconv"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-tdc/pkg/command"
	"jinr.ru/greenlab/go-tdc/pkg/config"
)

func NewSetCommand() *cobra.Command {
	var device string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "set <name> <value>...",
		Short: "Set setting value in the server side shadow",
		Long: "Set setting value in the server side shadow. The chip keeps running " +
			"on its previous config until `go-tdc conf push`.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]int, 0, len(args)-1)
			for _, arg := range args[1:] {
				value, err := strconv.Atoi(arg)
				if err != nil {
					return err
				}
				values = append(values, value)
			}
			apiClient := command.NewApiClient(cfg)
			setting, err := apiClient.SettingSet(device, args[0], values)
			if err != nil {
				return err
			}
			cmd.Printf("%s: %v\n", setting.Name, setting.Values)
			return nil
		},
	}
	cmd.Flags().StringVar(&device, DeviceOptionName, config.DefaultDeviceName, "Device name")

	return cmd
}
