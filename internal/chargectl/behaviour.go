package chargectl

import (
	"fmt"
	"strings"
)

// Charge thresholds in percent. Together they form the hysteresis band
// [lowThreshold, highThreshold]: above the band the battery is discharged,
// below it charging is allowed again.
const (
	lowThreshold  int8 = 70
	highThreshold int8 = 80
)

// ChargeBehaviour is the charge_behaviour mode of the power supply.
type ChargeBehaviour int

const (
	// Auto lets the device manage charging normally.
	Auto ChargeBehaviour = iota
	// ForceDischarge actively discharges the battery regardless of load.
	ForceDischarge
	// InhibitCharge pauses charging without discharging.
	InhibitCharge
)

func (b ChargeBehaviour) String() string {
	switch b {
	case Auto:
		return "auto"
	case ForceDischarge:
		return "force-discharge"
	case InhibitCharge:
		return "inhibit-charge"
	}
	return fmt.Sprintf("ChargeBehaviour(%d)", int(b))
}

// ParseBehaviour parses the sysfs representation of a charge behaviour.
// Surrounding whitespace is ignored, anything else is an error.
func ParseBehaviour(s string) (ChargeBehaviour, error) {
	switch strings.TrimSpace(s) {
	case "auto":
		return Auto, nil
	case "force-discharge":
		return ForceDischarge, nil
	case "inhibit-charge":
		return InhibitCharge, nil
	}
	return Auto, fmt.Errorf("unknown charge behaviour %q", strings.TrimSpace(s))
}

// calcBehaviour decides the next charge behaviour from the battery capacity
// and the behaviour currently in effect. Above highThreshold we discharge
// until back at the threshold and then inhibit, below lowThreshold we charge
// all the way up again. Inside the band the current behaviour decides:
// normal charging is left alone until it reaches the ceiling, while a
// discharge ends in inhibit so the two don't oscillate at the boundary.
func calcBehaviour(capacity int8, current ChargeBehaviour) ChargeBehaviour {
	switch {
	case capacity > highThreshold:
		return ForceDischarge
	case capacity < lowThreshold:
		return Auto
	case current == Auto && capacity < highThreshold:
		return Auto
	case current == ForceDischarge && capacity < highThreshold:
		return InhibitCharge
	default:
		return InhibitCharge
	}
}
