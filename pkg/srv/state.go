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
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-tdc/pkg/config"
	"jinr.ru/greenlab/go-tdc/pkg/log"
	"jinr.ru/greenlab/go-tdc/pkg/tdc"
)

const (
	BucketNamePrefix = "shadow_"
	DescriptionKey   = "device_description"
)

// DeviceDescription is the static identity of a configured device,
// persisted next to its shadow registers for diagnostics.
type DeviceDescription struct {
	Name    string `json:"Name,omitempty"`
	Variant string `json:"Variant,omitempty"`
	Port    string `json:"Port,omitempty"`
	SpeedHz int64  `json:"SpeedHz,omitempty"`
	Emulate bool   `json:"Emulate,omitempty"`
}

func (dd *DeviceDescription) String() string {
	result, err := yaml.Marshal(dd)
	if err != nil {
		log.Info("Error occured while marshaling device description, %s", err)
		return ""
	}
	return fmt.Sprintf("---\n%s", string(result))
}

// State persists the shadow register file of every device across
// server restarts, one bucket per device.
type State struct {
	context.Context
	DB *bbolt.DB
}

func NewState(ctx context.Context, cfg *config.Config) (*State, error) {
	db, err := bbolt.Open(cfg.DBPath, 0600, nil)
	if err != nil {
		return nil, err
	}
	// create buckets for all configured devices
	if err = db.Update(func(tx *bbolt.Tx) error {
		for _, device := range cfg.Devices {
			_, err = tx.CreateBucketIfNotExists([]byte(bucketName(device.Name)))
			if err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &State{
		Context: ctx,
		DB:      db,
	}, nil
}

func bucketName(deviceName string) string {
	return fmt.Sprintf("%s%s", BucketNamePrefix, deviceName)
}

func regKey(i int) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(i))
	return b
}

// Close ...
func (s *State) Close() {
	s.DB.Close()
}

// SetShadow stores a register file snapshot, one big-endian word per
// register index.
func (s *State) SetShadow(deviceName string, snap [tdc.NumRegs]uint32) error {
	log.Debug("Persisting shadow registers for device %s", deviceName)
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(deviceName)))
		if b == nil {
			return fmt.Errorf("Bucket not found: %s", bucketName(deviceName))
		}
		for i, word := range snap {
			value := make([]byte, 4)
			binary.BigEndian.PutUint32(value, word)
			if err := b.Put(regKey(i), value); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetShadow loads a previously persisted snapshot. The second return
// is false when no complete snapshot has ever been stored.
func (s *State) GetShadow(deviceName string) ([tdc.NumRegs]uint32, bool, error) {
	var snap [tdc.NumRegs]uint32
	found := true
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(deviceName)))
		if b == nil {
			return fmt.Errorf("Bucket not found: %s", bucketName(deviceName))
		}
		for i := range snap {
			value := b.Get(regKey(i))
			if value == nil {
				found = false
				return nil
			}
			snap[i] = binary.BigEndian.Uint32(value)
		}
		return nil
	}); err != nil {
		return snap, false, err
	}
	return snap, found, nil
}

// SetDescription ...
func (s *State) SetDescription(dd *DeviceDescription) error {
	log.Debug("Setting device description: device: %s", dd.Name)
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(dd.Name)))
		if b == nil {
			return fmt.Errorf("Bucket not found: %s", bucketName(dd.Name))
		}
		ddBytes, err := yaml.Marshal(dd)
		if err != nil {
			return err
		}
		return b.Put([]byte(DescriptionKey), ddBytes)
	})
}

// GetDescription ...
func (s *State) GetDescription(deviceName string) (*DeviceDescription, error) {
	dd := &DeviceDescription{}
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(deviceName)))
		if b == nil {
			return fmt.Errorf("Bucket not found: %s", bucketName(deviceName))
		}
		ddBytes := b.Get([]byte(DescriptionKey))
		if ddBytes == nil {
			return fmt.Errorf("Key not found: %s", DescriptionKey)
		}
		return yaml.Unmarshal(ddBytes, dd)
	}); err != nil {
		return nil, err
	}
	return dd, nil
}
