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
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	deviceifc "jinr.ru/greenlab/go-tdc/pkg/device/ifc"
	"jinr.ru/greenlab/go-tdc/pkg/log"
	"jinr.ru/greenlab/go-tdc/pkg/tdc"
)

// DeviceResp ...
type DeviceResp struct {
	Name    string `json:"name"`
	Variant string `json:"variant"`
}

// StatusResp is the decoded status word of a device.
type StatusResp struct {
	TimedOut    bool `json:"timed_out"`
	HitsCh1     int  `json:"hits_ch1"`
	HitsCh2     int  `json:"hits_ch2"`
	ReadPointer int  `json:"read_pointer"`
}

// ResultResp carries one result register, raw and converted.
type ResultResp struct {
	Index  int     `json:"index"`
	Raw    int32   `json:"raw"`
	Micros float64 `json:"micros"`
}

// CommsResp ...
type CommsResp struct {
	Ok bool `json:"ok"`
}

// ConfigResp is the shadow register file, one hex word per register.
type ConfigResp struct {
	Registers []string `json:"registers"`
}

// SettingResp names one setting and its values. Most settings take a
// single value, edge_sensitivity and first_wave_delays take three.
type SettingResp struct {
	Name   string `json:"name"`
	Values []int  `json:"values"`
}

func (s *Server) newRouter() *mux.Router {
	router := mux.NewRouter()
	subRouter := router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/devices", s.handleDevices()).Methods("GET")
	subRouter.HandleFunc("/status/{device}", s.handleStatus()).Methods("GET")
	subRouter.HandleFunc("/measure/{device}", s.handleMeasure()).Methods("POST")
	subRouter.HandleFunc("/result/{device}/{index:[0-3]}", s.handleResult()).Methods("GET")
	subRouter.HandleFunc("/comms/{device}", s.handleComms()).Methods("GET")
	subRouter.HandleFunc("/config/{device}", s.handleConfig()).Methods("GET")
	subRouter.HandleFunc("/config/{device}/push", s.handleConfigPush()).Methods("POST")
	subRouter.HandleFunc("/setting/{device}", s.handleSettingList()).Methods("GET")
	subRouter.HandleFunc("/setting/{device}/{name}", s.handleSettingGet()).Methods("GET")
	subRouter.HandleFunc("/setting/{device}/{name}", s.handleSettingSet()).Methods("POST")
	subRouter.HandleFunc("/alu/{device}", s.handleALU()).Methods("POST")
	return router
}

func apiError(w http.ResponseWriter, err error, code int) {
	log.Error("API error: %s", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func apiJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

// requestDevice resolves the {device} path variable.
func (s *Server) requestDevice(r *http.Request) (*ManagedDevice, error) {
	vars := mux.Vars(r)
	return s.device(vars["device"])
}

func (s *Server) handleDevices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := []DeviceResp{}
		for _, dcfg := range s.Config.Devices {
			md, err := s.device(dcfg.Name)
			if err != nil {
				continue
			}
			resp = append(resp, DeviceResp{
				Name:    md.Device.GetName(),
				Variant: md.Device.GetVariant().String(),
			})
		}
		apiJSON(w, resp)
	}
}

func (s *Server) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		md, err := s.requestDevice(r)
		if err != nil {
			apiError(w, err, http.StatusNotFound)
			return
		}
		md.Lock()
		defer md.Unlock()
		sr, ok := md.Device.(deviceifc.StatusReader)
		if !ok {
			apiError(w, ErrNoStatus{Name: md.Device.GetName()}, http.StatusBadRequest)
			return
		}
		if err = sr.RefreshStatus(); err != nil {
			apiError(w, err, http.StatusInternalServerError)
			return
		}
		status, err := sr.Status()
		if err != nil {
			apiError(w, err, http.StatusInternalServerError)
			return
		}
		apiJSON(w, StatusResp{
			TimedOut:    status.TimedOut(),
			HitsCh1:     status.Hits(tdc.Ch1),
			HitsCh2:     status.Hits(tdc.Ch2),
			ReadPointer: status.ReadPointer(),
		})
	}
}

func (s *Server) handleMeasure() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		md, err := s.requestDevice(r)
		if err != nil {
			apiError(w, err, http.StatusNotFound)
			return
		}
		md.Lock()
		defer md.Unlock()
		if err = md.Device.Measure(); err != nil {
			apiError(w, err, http.StatusInternalServerError)
			return
		}
		apiJSON(w, map[string]string{"result": "armed"})
	}
}

func (s *Server) handleResult() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		md, err := s.requestDevice(r)
		if err != nil {
			apiError(w, err, http.StatusNotFound)
			return
		}
		vars := mux.Vars(r)
		// The route pattern only admits 0..3.
		index, _ := strconv.Atoi(vars["index"])
		md.Lock()
		defer md.Unlock()
		raw, err := md.Device.ReadResult(index)
		if err != nil {
			apiError(w, err, http.StatusInternalServerError)
			return
		}
		apiJSON(w, ResultResp{
			Index:  index,
			Raw:    raw,
			Micros: md.Device.Convert(raw),
		})
	}
}

func (s *Server) handleComms() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		md, err := s.requestDevice(r)
		if err != nil {
			apiError(w, err, http.StatusNotFound)
			return
		}
		md.Lock()
		defer md.Unlock()
		ok, err := md.Device.TestComms()
		if err != nil {
			apiError(w, err, http.StatusInternalServerError)
			return
		}
		apiJSON(w, CommsResp{Ok: ok})
	}
}

func (s *Server) handleConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		md, err := s.requestDevice(r)
		if err != nil {
			apiError(w, err, http.StatusNotFound)
			return
		}
		md.Lock()
		defer md.Unlock()
		snap := md.Device.Snapshot()
		resp := ConfigResp{}
		for _, word := range snap {
			resp.Registers = append(resp.Registers, fmt.Sprintf("0x%08X", word))
		}
		apiJSON(w, resp)
	}
}

func (s *Server) handleConfigPush() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		md, err := s.requestDevice(r)
		if err != nil {
			apiError(w, err, http.StatusNotFound)
			return
		}
		md.Lock()
		defer md.Unlock()
		if err = md.Device.PushConfig(); err != nil {
			apiError(w, err, http.StatusInternalServerError)
			return
		}
		if err = s.state.SetShadow(md.Device.GetName(), md.Device.Snapshot()); err != nil {
			apiError(w, err, http.StatusInternalServerError)
			return
		}
		apiJSON(w, map[string]string{"result": "pushed"})
	}
}

func (s *Server) handleSettingList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		md, err := s.requestDevice(r)
		if err != nil {
			apiError(w, err, http.StatusNotFound)
			return
		}
		md.Lock()
		defer md.Unlock()
		resp := []SettingResp{}
		for _, name := range tdc.SettingNames() {
			values, err := md.Device.Settings().Setting(name)
			if err != nil {
				apiError(w, err, http.StatusInternalServerError)
				return
			}
			resp = append(resp, SettingResp{Name: name, Values: values})
		}
		apiJSON(w, resp)
	}
}

func (s *Server) handleSettingGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		md, err := s.requestDevice(r)
		if err != nil {
			apiError(w, err, http.StatusNotFound)
			return
		}
		vars := mux.Vars(r)
		md.Lock()
		defer md.Unlock()
		values, err := md.Device.Settings().Setting(vars["name"])
		if err != nil {
			apiError(w, err, http.StatusBadRequest)
			return
		}
		apiJSON(w, SettingResp{Name: vars["name"], Values: values})
	}
}

// handleSettingSet changes the shadow only. The chip keeps running on
// its previous config until a push.
func (s *Server) handleSettingSet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		md, err := s.requestDevice(r)
		if err != nil {
			apiError(w, err, http.StatusNotFound)
			return
		}
		vars := mux.Vars(r)
		var req SettingResp
		if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiError(w, err, http.StatusBadRequest)
			return
		}
		md.Lock()
		defer md.Unlock()
		if err = md.Device.Settings().ApplySetting(vars["name"], req.Values); err != nil {
			apiError(w, err, http.StatusBadRequest)
			return
		}
		values, err := md.Device.Settings().Setting(vars["name"])
		if err != nil {
			apiError(w, err, http.StatusInternalServerError)
			return
		}
		apiJSON(w, SettingResp{Name: vars["name"], Values: values})
	}
}

func (s *Server) handleALU() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		md, err := s.requestDevice(r)
		if err != nil {
			apiError(w, err, http.StatusNotFound)
			return
		}
		var instr tdc.ALUInstruction
		if err = json.NewDecoder(r.Body).Decode(&instr); err != nil {
			apiError(w, err, http.StatusBadRequest)
			return
		}
		md.Lock()
		defer md.Unlock()
		if err = md.Device.PushALU(instr); err != nil {
			apiError(w, err, http.StatusBadRequest)
			return
		}
		if err = s.state.SetShadow(md.Device.GetName(), md.Device.Snapshot()); err != nil {
			apiError(w, err, http.StatusInternalServerError)
			return
		}
		apiJSON(w, instr)
	}
}
