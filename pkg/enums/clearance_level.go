package enums

import "fmt"

// ClearanceLevel captures the security clearance status of a profile.
type ClearanceLevel string

const (
	ClearanceLevelNone     ClearanceLevel = "None"
	ClearanceLevelPending  ClearanceLevel = "Pending"
	ClearanceLevelBaseline ClearanceLevel = "Baseline"
	ClearanceLevelNV1      ClearanceLevel = "NV1"
	ClearanceLevelNV2      ClearanceLevel = "NV2"
	ClearanceLevelPV       ClearanceLevel = "PV"
)

var validClearanceLevels = []ClearanceLevel{
	ClearanceLevelNone,
	ClearanceLevelPending,
	ClearanceLevelBaseline,
	ClearanceLevelNV1,
	ClearanceLevelNV2,
	ClearanceLevelPV,
}

// String implements fmt.Stringer.
func (c ClearanceLevel) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ClearanceLevel.
func (c ClearanceLevel) IsValid() bool {
	for _, candidate := range validClearanceLevels {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseClearanceLevel converts raw input into a ClearanceLevel.
func ParseClearanceLevel(value string) (ClearanceLevel, error) {
	for _, candidate := range validClearanceLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid clearance level %q", value)
}
