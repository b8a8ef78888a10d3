package medicine

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

// An update writes the full document through $set, so every optional field
// must be present in the marshaled form even when nil. If a cleared field
// were omitted, the previously stored value would survive the update.
func TestMedicineBSON_ClearedOptionalsAreExplicitNulls(t *testing.T) {
	m := &Medicine{
		ID:        "id-1",
		Name:      "Ibuprofen",
		Category:  "Painkiller",
		CreatedAt: "2024-01-01T00:00:00Z",
		UpdatedAt: "2024-06-01T00:00:00Z",
	}

	data, err := bson.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, field := range []string{
		"duration_days", "start_date", "end_date",
		"doctor_name", "hospital_location", "prescription_url",
	} {
		v, ok := doc[field]
		if !ok {
			t.Errorf("field %q omitted from document; a cleared value would not overwrite the stored one", field)
			continue
		}
		if v != nil {
			t.Errorf("field %q = %v, want explicit null", field, v)
		}
	}
}

func TestMedicineBSON_SetValuesRoundTrip(t *testing.T) {
	end := "2024-01-06T00:00:00"
	days := 5
	m := &Medicine{ID: "id-2", Name: "Amoxicillin", DurationDays: &days, EndDate: &end}

	data, err := bson.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Medicine
	if err := bson.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.EndDate == nil || *got.EndDate != end {
		t.Errorf("end_date = %v, want %q", got.EndDate, end)
	}
	if got.DurationDays == nil || *got.DurationDays != days {
		t.Errorf("duration_days = %v, want %d", got.DurationDays, days)
	}
}
