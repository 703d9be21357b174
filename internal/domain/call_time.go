package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CallTimePreference is when a candidate prefers to be called.
// Values are stored as smallint.
type CallTimePreference int16

const (
	CallTimeMorning   CallTimePreference = 1
	CallTimeAfternoon CallTimePreference = 2
	CallTimeEvening   CallTimePreference = 3
	CallTimeAnyTime   CallTimePreference = 4
)

var callTimeNames = map[CallTimePreference]string{
	CallTimeMorning:   "Morning",
	CallTimeAfternoon: "Afternoon",
	CallTimeEvening:   "Evening",
	CallTimeAnyTime:   "AnyTime",
}

func (p CallTimePreference) IsValid() bool {
	_, ok := callTimeNames[p]
	return ok
}

func (p CallTimePreference) String() string {
	if name, ok := callTimeNames[p]; ok {
		return name
	}
	return strconv.Itoa(int(p))
}

// ParseCallTimePreference accepts a case-insensitive name or the numeric value.
func ParseCallTimePreference(s string) (CallTimePreference, error) {
	s = strings.TrimSpace(s)
	for p, name := range callTimeNames {
		if strings.EqualFold(name, s) {
			return p, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown call time preference %q", s)
	}
	// Range is checked by validation so the error names the field.
	return CallTimePreference(n), nil
}

func (p CallTimePreference) MarshalJSON() ([]byte, error) {
	if !p.IsValid() {
		return json.Marshal(int(p))
	}
	return json.Marshal(p.String())
}

func (p *CallTimePreference) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*p = CallTimePreference(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("call time preference must be a name or number")
	}
	parsed, err := ParseCallTimePreference(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
