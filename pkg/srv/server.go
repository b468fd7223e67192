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

// Package srv hosts configured devices behind a REST API and keeps
// their shadow register files in a persistent state database.
package srv

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"

	"jinr.ru/greenlab/go-tdc/pkg/config"
	"jinr.ru/greenlab/go-tdc/pkg/device"
	deviceifc "jinr.ru/greenlab/go-tdc/pkg/device/ifc"
	"jinr.ru/greenlab/go-tdc/pkg/log"
)

const ApiPort = 8003

// ManagedDevice serializes access to one device. SPI transfers are not
// reentrant so every handler takes the lock for the whole exchange.
type ManagedDevice struct {
	sync.Mutex
	deviceifc.Device
}

type Server struct {
	context.Context
	*config.Config
	state   *State
	devices map[string]*ManagedDevice
}

// NewServer opens the state database and the transport of every
// configured device. Devices are not initialized until Run.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	state, err := NewState(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := &Server{
		Context: ctx,
		Config:  cfg,
		state:   state,
		devices: make(map[string]*ManagedDevice),
	}
	for _, dcfg := range cfg.Devices {
		tr, err := device.OpenTransport(dcfg)
		if err != nil {
			state.Close()
			return nil, err
		}
		dev, err := device.NewDevice(dcfg, tr)
		if err != nil {
			tr.Close()
			state.Close()
			return nil, err
		}
		s.devices[dcfg.Name] = &ManagedDevice{Device: dev}
		if err = state.SetDescription(&DeviceDescription{
			Name:    dcfg.Name,
			Variant: dcfg.Variant,
			Port:    dcfg.Port,
			SpeedHz: dcfg.Speed(),
			Emulate: dcfg.Emulate,
		}); err != nil {
			log.Error("Error occured while persisting device description: device: %s", dcfg.Name)
		}
	}
	return s, nil
}

func (s *Server) device(name string) (*ManagedDevice, error) {
	md, ok := s.devices[name]
	if !ok {
		return nil, ErrDeviceNotFound{Name: name}
	}
	return md, nil
}

// initDevices restores persisted shadows and pushes them to the chips.
// A device without a persisted shadow starts from the power-up table.
func (s *Server) initDevices() error {
	for name, md := range s.devices {
		snap, found, err := s.state.GetShadow(name)
		if err != nil {
			return err
		}
		if found {
			log.Info("Restoring persisted shadow registers: device: %s", name)
			md.Device.Settings().Restore(snap)
		}
		if err = md.Device.Begin(); err != nil {
			return err
		}
		if err = s.state.SetShadow(name, md.Device.Snapshot()); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) closeDevices() {
	for name, md := range s.devices {
		if err := md.Device.Close(); err != nil {
			log.Error("Error occured while closing device: device: %s error: %s", name, err)
		}
	}
}

// Run initializes the devices and serves the API until the context is
// canceled or the listener fails.
func (s *Server) Run() error {
	defer s.state.Close()
	defer s.closeDevices()

	if err := s.initDevices(); err != nil {
		return err
	}

	router := s.newRouter()
	addr := fmt.Sprintf("%s:%d", s.Config.Host, ApiPort)
	httpServer := &http.Server{
		Handler: handlers.CombinedLoggingHandler(log.Writer(), router),
		Addr:    addr,
	}
	log.Info("Starting API server: address: %s", addr)

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case <-s.Context.Done():
		httpServer.Close()
		return s.Context.Err()
	case err := <-errChan:
		return err
	}
}
