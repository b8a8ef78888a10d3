package medicine

// Medicine is a stored medicine record. Dates are ISO-8601 strings; optional
// fields are pointers so absent and empty can be told apart. The bson tags
// deliberately carry no omitempty: an update replaces the full document, so a
// cleared optional field must reach the store as an explicit null rather than
// leaving the previous value behind.
type Medicine struct {
	ID               string  `json:"id" bson:"id"`
	Name             string  `json:"name" bson:"name"`
	Category         string  `json:"category" bson:"category"`
	Type             string  `json:"type" bson:"type"`
	Tags             string  `json:"tags" bson:"tags"`
	Purpose          string  `json:"purpose" bson:"purpose"`
	Dosage           string  `json:"dosage" bson:"dosage"`
	DurationDays     *int    `json:"duration_days,omitempty" bson:"duration_days"`
	StartDate        *string `json:"start_date,omitempty" bson:"start_date"`
	EndDate          *string `json:"end_date,omitempty" bson:"end_date"`
	DoctorName       *string `json:"doctor_name,omitempty" bson:"doctor_name"`
	HospitalLocation *string `json:"hospital_location,omitempty" bson:"hospital_location"`
	PrescriptionURL  *string `json:"prescription_url,omitempty" bson:"prescription_url"`
	CreatedAt        string  `json:"created_at" bson:"created_at"`
	UpdatedAt        string  `json:"updated_at" bson:"updated_at"`
}

// Input carries the mutable fields of a medicine as supplied by the caller
// on create and update. The id and timestamps are never caller-controlled.
type Input struct {
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Type             string  `json:"type"`
	Tags             string  `json:"tags"`
	Purpose          string  `json:"purpose"`
	Dosage           string  `json:"dosage"`
	DurationDays     *int    `json:"duration_days"`
	StartDate        *string `json:"start_date"`
	EndDate          *string `json:"end_date"`
	DoctorName       *string `json:"doctor_name"`
	HospitalLocation *string `json:"hospital_location"`
	PrescriptionURL  *string `json:"prescription_url"`
}

func (in *Input) toMedicine() *Medicine {
	return &Medicine{
		Name:             in.Name,
		Category:         in.Category,
		Type:             in.Type,
		Tags:             in.Tags,
		Purpose:          in.Purpose,
		Dosage:           in.Dosage,
		DurationDays:     in.DurationDays,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		DoctorName:       in.DoctorName,
		HospitalLocation: in.HospitalLocation,
		PrescriptionURL:  in.PrescriptionURL,
	}
}

// Stats is the aggregate view over all medicine records. Categories with no
// records are absent from ByCategory rather than zero-filled.
type Stats struct {
	TotalMedicines int64            `json:"total_medicines"`
	ByCategory     map[string]int64 `json:"by_category"`
}
