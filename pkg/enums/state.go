package enums

import "fmt"

// AUState is the Australian state or territory attached to a profile. The
// empty value means "not provided".
type AUState string

const (
	AUStateVIC AUState = "VIC"
	AUStateNSW AUState = "NSW"
	AUStateACT AUState = "ACT"
	AUStateQLD AUState = "QLD"
	AUStateNT  AUState = "NT"
	AUStateWA  AUState = "WA"
	AUStateSA  AUState = "SA"
)

var validAUStates = []AUState{
	AUStateVIC,
	AUStateNSW,
	AUStateACT,
	AUStateQLD,
	AUStateNT,
	AUStateWA,
	AUStateSA,
}

// String implements fmt.Stringer.
func (s AUState) String() string {
	return string(s)
}

// IsValid reports whether the value is a known AUState or empty.
func (s AUState) IsValid() bool {
	if s == "" {
		return true
	}
	for _, candidate := range validAUStates {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseAUState converts raw input into an AUState. Empty input is allowed.
func ParseAUState(value string) (AUState, error) {
	if value == "" {
		return "", nil
	}
	for _, candidate := range validAUStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid state %q", value)
}
