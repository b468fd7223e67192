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

// Package command implements the client side of the API server plus
// the entry points the CLI verbs call.
package command

import (
	"errors"
	"fmt"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-tdc/pkg/config"
	"jinr.ru/greenlab/go-tdc/pkg/srv"
	"jinr.ru/greenlab/go-tdc/pkg/tdc"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s:%d/api", cfg.Host, srv.ApiPort),
	}
}

// Devices sends request to list the devices the server owns
func (c *ApiClient) Devices() ([]srv.DeviceResp, error) {
	r, err := req.Get(fmt.Sprintf("%s/devices", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	var devices []srv.DeviceResp
	if err = r.ToJSON(&devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// Status sends request to read and decode the status word of a device
func (c *ApiClient) Status(device string) (*srv.StatusResp, error) {
	r, err := req.Get(fmt.Sprintf("%s/status/%s", c.ApiPrefix, device))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	status := &srv.StatusResp{}
	if err = r.ToJSON(status); err != nil {
		return nil, err
	}
	return status, nil
}

// Measure sends request to arm a device for the next start event
func (c *ApiClient) Measure(device string) error {
	r, err := req.Post(fmt.Sprintf("%s/measure/%s", c.ApiPrefix, device))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}

// Result sends request to read one result register of a device
func (c *ApiClient) Result(device string, index int) (*srv.ResultResp, error) {
	r, err := req.Get(fmt.Sprintf("%s/result/%s/%d", c.ApiPrefix, device, index))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	result := &srv.ResultResp{}
	if err = r.ToJSON(result); err != nil {
		return nil, err
	}
	return result, nil
}

// Comms sends request to run the echo check on a device
func (c *ApiClient) Comms(device string) (bool, error) {
	r, err := req.Get(fmt.Sprintf("%s/comms/%s", c.ApiPrefix, device))
	if err != nil {
		return false, err
	}
	if r.Response().StatusCode != 200 {
		return false, errors.New(r.Response().Status)
	}
	comms := &srv.CommsResp{}
	if err = r.ToJSON(comms); err != nil {
		return false, err
	}
	return comms.Ok, nil
}

// ConfigGet sends request to read the shadow register file of a device
func (c *ApiClient) ConfigGet(device string) (*srv.ConfigResp, error) {
	r, err := req.Get(fmt.Sprintf("%s/config/%s", c.ApiPrefix, device))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	cfg := &srv.ConfigResp{}
	if err = r.ToJSON(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigPush sends request to transfer the shadow registers to the chip
func (c *ApiClient) ConfigPush(device string) error {
	r, err := req.Post(fmt.Sprintf("%s/config/%s/push", c.ApiPrefix, device))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}

// SettingList sends request to read all settings of a device
func (c *ApiClient) SettingList(device string) ([]srv.SettingResp, error) {
	r, err := req.Get(fmt.Sprintf("%s/setting/%s", c.ApiPrefix, device))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	var settings []srv.SettingResp
	if err = r.ToJSON(&settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SettingGet sends request to read one setting of a device
func (c *ApiClient) SettingGet(device, name string) (*srv.SettingResp, error) {
	r, err := req.Get(fmt.Sprintf("%s/setting/%s/%s", c.ApiPrefix, device, name))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	setting := &srv.SettingResp{}
	if err = r.ToJSON(setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// SettingSet sends request to change one setting in the shadow of a
// device; the change reaches the chip on the next config push
func (c *ApiClient) SettingSet(device, name string, values []int) (*srv.SettingResp, error) {
	body := &srv.SettingResp{Name: name, Values: values}
	r, err := req.Post(fmt.Sprintf("%s/setting/%s/%s", c.ApiPrefix, device, name), req.BodyJSON(body))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	setting := &srv.SettingResp{}
	if err = r.ToJSON(setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// PushALU sends request to update the hit operators of a device
func (c *ApiClient) PushALU(device string, instr tdc.ALUInstruction) error {
	r, err := req.Post(fmt.Sprintf("%s/alu/%s", c.ApiPrefix, device), req.BodyJSON(&instr))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}
