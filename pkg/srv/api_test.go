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

package srv

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"jinr.ru/greenlab/go-tdc/pkg/config"
)

func newTestConfig(dbPath string) *config.Config {
	return &config.Config{
		Host:   "127.0.0.1",
		DBPath: dbPath,
		Devices: []*config.Device{
			{Name: "tdc0", Variant: "gp22", Emulate: true},
			{Name: "tdc1", Variant: "gp21", Emulate: true},
		},
	}
}

func newTestServer(t *testing.T, dbPath string) (*Server, *httptest.Server) {
	t.Helper()
	s, err := NewServer(context.Background(), newTestConfig(dbPath))
	if err != nil {
		t.Fatal(err)
	}
	if err = s.initDevices(); err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(s.newRouter())
	t.Cleanup(func() {
		ts.Close()
		s.closeDevices()
		s.state.Close()
	})
	return s, ts
}

func getJSON(t *testing.T, url string, out interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s = %s", url, resp.Status)
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatal(err)
	}
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestDevicesEndpoint(t *testing.T) {
	_, ts := newTestServer(t, filepath.Join(t.TempDir(), "state.db"))
	var devices []DeviceResp
	getJSON(t, ts.URL+"/api/devices", &devices)
	if len(devices) != 2 {
		t.Fatalf("got %d devices, want 2", len(devices))
	}
	if devices[0].Name != "tdc0" || devices[0].Variant != "gp22" {
		t.Errorf("devices[0] = %+v, want tdc0/gp22", devices[0])
	}
	if devices[1].Name != "tdc1" || devices[1].Variant != "gp21" {
		t.Errorf("devices[1] = %+v, want tdc1/gp21", devices[1])
	}
}

func TestStatusEndpoint(t *testing.T) {
	_, ts := newTestServer(t, filepath.Join(t.TempDir(), "state.db"))
	var status StatusResp
	getJSON(t, ts.URL+"/api/status/tdc0", &status)
	if status.TimedOut || status.HitsCh1 != 0 || status.HitsCh2 != 0 || status.ReadPointer != 0 {
		t.Errorf("status = %+v, want zeros", status)
	}

	// The legacy part has no status word.
	resp, err := http.Get(ts.URL + "/api/status/tdc1")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("GET status/tdc1 = %s, want 400", resp.Status)
	}
}

func TestMeasureAndResultEndpoints(t *testing.T) {
	_, ts := newTestServer(t, filepath.Join(t.TempDir(), "state.db"))
	resp := postJSON(t, ts.URL+"/api/measure/tdc0", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST measure = %s", resp.Status)
	}

	var result ResultResp
	getJSON(t, ts.URL+"/api/result/tdc0/0", &result)
	if result.Raw != 0 || result.Micros != 0 {
		t.Errorf("result = %+v, want zeros", result)
	}

	// Out of range indexes never match the route.
	r, err := http.Get(ts.URL + "/api/result/tdc0/9")
	if err != nil {
		t.Fatal(err)
	}
	r.Body.Close()
	if r.StatusCode != http.StatusNotFound {
		t.Errorf("GET result/tdc0/9 = %s, want 404", r.Status)
	}
}

func TestCommsEndpoint(t *testing.T) {
	_, ts := newTestServer(t, filepath.Join(t.TempDir(), "state.db"))
	var comms CommsResp
	getJSON(t, ts.URL+"/api/comms/tdc0", &comms)
	if !comms.Ok {
		t.Error("comms not ok after init")
	}
}

func TestSettingEndpoints(t *testing.T) {
	_, ts := newTestServer(t, filepath.Join(t.TempDir(), "state.db"))

	var settings []SettingResp
	getJSON(t, ts.URL+"/api/setting/tdc0", &settings)
	if len(settings) == 0 {
		t.Fatal("setting list is empty")
	}

	resp := postJSON(t, ts.URL+"/api/setting/tdc0/clk_pre_div", SettingResp{Values: []int{2}})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST setting = %s", resp.Status)
	}
	var setting SettingResp
	getJSON(t, ts.URL+"/api/setting/tdc0/clk_pre_div", &setting)
	if len(setting.Values) != 1 || setting.Values[0] != 2 {
		t.Errorf("clk_pre_div = %v, want [2]", setting.Values)
	}

	// Unknown names and illegal values are client errors.
	resp = postJSON(t, ts.URL+"/api/setting/tdc0/no_such_setting", SettingResp{Values: []int{1}})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("POST unknown setting = %s, want 400", resp.Status)
	}
	resp = postJSON(t, ts.URL+"/api/setting/tdc0/clk_pre_div", SettingResp{Values: []int{3}})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("POST illegal value = %s, want 400", resp.Status)
	}
}

func TestConfigEndpoints(t *testing.T) {
	_, ts := newTestServer(t, filepath.Join(t.TempDir(), "state.db"))
	var cfg ConfigResp
	getJSON(t, ts.URL+"/api/config/tdc0", &cfg)
	if len(cfg.Registers) != 7 {
		t.Fatalf("got %d registers, want 7", len(cfg.Registers))
	}
	if cfg.Registers[0] != "0xF3076800" {
		t.Errorf("register 0 = %s, want 0xF3076800", cfg.Registers[0])
	}

	resp := postJSON(t, ts.URL+"/api/config/tdc0/push", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("POST config push = %s", resp.Status)
	}
}

func TestUnknownDevice(t *testing.T) {
	_, ts := newTestServer(t, filepath.Join(t.TempDir(), "state.db"))
	resp, err := http.Get(ts.URL + "/api/comms/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET comms/nope = %s, want 404", resp.Status)
	}
}

func TestShadowSurvivesRestart(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state.db")

	s, err := NewServer(context.Background(), newTestConfig(dbPath))
	if err != nil {
		t.Fatal(err)
	}
	if err = s.initDevices(); err != nil {
		t.Fatal(err)
	}
	md, err := s.device("tdc0")
	if err != nil {
		t.Fatal(err)
	}
	if err = md.Device.Settings().ApplySetting("expected_hits_ch2", []int{3}); err != nil {
		t.Fatal(err)
	}
	if err = s.state.SetShadow("tdc0", md.Device.Snapshot()); err != nil {
		t.Fatal(err)
	}
	s.closeDevices()
	s.state.Close()

	restarted, err := NewServer(context.Background(), newTestConfig(dbPath))
	if err != nil {
		t.Fatal(err)
	}
	defer restarted.state.Close()
	defer restarted.closeDevices()
	if err = restarted.initDevices(); err != nil {
		t.Fatal(err)
	}
	md, err = restarted.device("tdc0")
	if err != nil {
		t.Fatal(err)
	}
	values, err := md.Device.Settings().Setting("expected_hits_ch2")
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 1 || values[0] != 3 {
		t.Errorf("expected_hits_ch2 = %v after restart, want [3]", values)
	}
}
