package driver

import (
	"github.com/p-thanks/RouteX/internal/pkg/errs"
)

// Status represents the availability of a driver for dispatch.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusOffline means the driver is not accepting work.
	StatusOffline

	// StatusOnline means the driver is accepting new assignments.
	StatusOnline

	// StatusBusy means the driver is at their concurrent-order capacity.
	StatusBusy
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusOffline: "OFFLINE",
		StatusOnline:  "ONLINE",
		StatusBusy:    "BUSY",
	}
}

// StatusFromString parses a wire name into a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidError("status")
}

// Validate checks if the Status is one of the defined availability states.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsDispatchable reports whether the driver may receive new assignments.
func (s Status) IsDispatchable() bool {
	return s == StatusOnline
}
