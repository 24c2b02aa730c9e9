package chargectl

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultBatteryDir = "/sys/class/power_supply/macsmc-battery"

	capacityFile  = "capacity"
	behaviourFile = "charge_behaviour"
)

// BatteryStore reads and writes battery state through the files of a
// power-supply sysfs directory.
type BatteryStore struct {
	dir string
}

func NewBatteryStore(dir string) *BatteryStore {
	return &BatteryStore{dir: dir}
}

// Capacity returns the battery state of charge in percent. The kernel
// reports 0-100 but the value is parsed as a signed 8 bit integer and
// passed on as is, the decision logic copes with readings out of range.
func (s *BatteryStore) Capacity() (int8, error) {
	path := filepath.Join(s.dir, capacityFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	capacity, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}
	return int8(capacity), nil
}

// Behaviour returns the charge behaviour currently in effect.
func (s *BatteryStore) Behaviour() (ChargeBehaviour, error) {
	path := filepath.Join(s.dir, behaviourFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return Auto, err
	}
	behaviour, err := ParseBehaviour(string(raw))
	if err != nil {
		return Auto, fmt.Errorf("%s: %w", path, err)
	}
	return behaviour, nil
}

// SetBehaviour writes the given charge behaviour to the power supply.
func (s *BatteryStore) SetBehaviour(b ChargeBehaviour) error {
	path := filepath.Join(s.dir, behaviourFile)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
