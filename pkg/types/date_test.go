package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(1990, time.March, 14)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"1990-03-14"` {
		t.Fatalf("unexpected encoding %s", b)
	}

	var parsed Date
	if err := json.Unmarshal(b, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !parsed.Time.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v vs %v", parsed.Time, d.Time)
	}
}

func TestDateUnmarshalRejectsBadFormat(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"14/03/1990"`), &d); err == nil {
		t.Fatal("expected error for non ISO date")
	}
}

func TestDatePointerHelpers(t *testing.T) {
	if ToTimePtr(nil) != nil {
		t.Fatal("nil date must map to nil time")
	}
	if FromTimePtr(nil) != nil {
		t.Fatal("nil time must map to nil date")
	}

	stamp := time.Date(2024, time.July, 2, 18, 30, 0, 0, time.FixedZone("AEST", 10*3600))
	d := FromTimePtr(&stamp)
	if d.String() != "2024-07-02" {
		t.Fatalf("expected truncation to calendar date, got %s", d)
	}
}
