package medicine

import (
	"context"
	"strings"
	"testing"
)

// -- Mock Repository --

type mockRepo struct {
	meds map[string]*Medicine
}

func newMockRepo() *mockRepo {
	return &mockRepo{meds: make(map[string]*Medicine)}
}

func (m *mockRepo) Insert(_ context.Context, med *Medicine) error {
	cp := *med
	m.meds[med.ID] = &cp
	return nil
}

func (m *mockRepo) FindByID(_ context.Context, id string) (*Medicine, error) {
	med, ok := m.meds[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *med
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context, f Filter) ([]*Medicine, error) {
	var out []*Medicine
	for _, med := range m.meds {
		if f.Category != "" && med.Category != f.Category {
			continue
		}
		if f.Type != "" && med.Type != f.Type {
			continue
		}
		if f.Tag != "" && !strings.Contains(strings.ToLower(med.Tags), strings.ToLower(f.Tag)) {
			continue
		}
		cp := *med
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, med *Medicine) error {
	if _, ok := m.meds[med.ID]; !ok {
		return ErrNotFound
	}
	cp := *med
	m.meds[med.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.meds[id]; !ok {
		return ErrNotFound
	}
	delete(m.meds, id)
	return nil
}

func (m *mockRepo) Stats(_ context.Context) (*Stats, error) {
	byCategory := make(map[string]int64)
	for _, med := range m.meds {
		byCategory[med.Category]++
	}
	return &Stats{TotalMedicines: int64(len(m.meds)), ByCategory: byCategory}, nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo), repo
}

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }

// -- Tests --

func TestService_Create_StampsRecord(t *testing.T) {
	svc, _ := newTestService()

	m, err := svc.Create(context.Background(), &Input{Name: "Amoxicillin", Category: "Antibiotic"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if m.ID == "" {
		t.Error("expected generated id")
	}
	if m.CreatedAt == "" || m.CreatedAt != m.UpdatedAt {
		t.Errorf("expected created_at == updated_at on create, got %q / %q", m.CreatedAt, m.UpdatedAt)
	}
}

func TestService_Create_DerivesEndDate(t *testing.T) {
	svc, _ := newTestService()

	m, err := svc.Create(context.Background(), &Input{
		Name:         "Amoxicillin",
		StartDate:    strptr("2024-01-01"),
		DurationDays: intptr(5),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if m.EndDate == nil || *m.EndDate != "2024-01-06T00:00:00" {
		t.Errorf("end date = %v, want 2024-01-06T00:00:00", m.EndDate)
	}
}

func TestService_Create_ExplicitEndDateKept(t *testing.T) {
	svc, _ := newTestService()

	m, err := svc.Create(context.Background(), &Input{
		Name:         "Amoxicillin",
		StartDate:    strptr("2024-01-01"),
		DurationDays: intptr(5),
		EndDate:      strptr("2024-02-01"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if *m.EndDate != "2024-02-01" {
		t.Errorf("explicit end date was overwritten: %q", *m.EndDate)
	}
}

func TestService_Create_InvalidStartDate(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), &Input{
		Name:         "Amoxicillin",
		StartDate:    strptr("not-a-date"),
		DurationDays: intptr(5),
	})
	if err == nil {
		t.Fatal("expected error for invalid start date")
	}
	if len(repo.meds) != 0 {
		t.Error("nothing should be persisted on derivation failure")
	}
}

func TestService_Update_RecomputesEndDate(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), &Input{
		Name:         "Ibuprofen",
		StartDate:    strptr("2024-01-01"),
		DurationDays: intptr(5),
	})
	if err != nil {
		t.Fatal(err)
	}

	// Duration changes and end date is left unset: it must be recomputed.
	updated, err := svc.Update(context.Background(), created.ID, &Input{
		Name:         "Ibuprofen",
		StartDate:    strptr("2024-01-01"),
		DurationDays: intptr(10),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.EndDate == nil || *updated.EndDate != "2024-01-11T00:00:00" {
		t.Errorf("end date = %v, want 2024-01-11T00:00:00", updated.EndDate)
	}
}

func TestService_Update_ExplicitEndDateKept(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), &Input{Name: "Ibuprofen"})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(context.Background(), created.ID, &Input{
		Name:         "Ibuprofen",
		StartDate:    strptr("2024-01-01"),
		DurationDays: intptr(10),
		EndDate:      strptr("2024-03-01"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if *updated.EndDate != "2024-03-01" {
		t.Errorf("explicit end date was overwritten: %q", *updated.EndDate)
	}
}

func TestService_Update_PreservesCreatedAt(t *testing.T) {
	svc, _ := newTestService()

	old := nowFunc
	nowFunc = func() string { return "2024-01-01T00:00:00Z" }
	created, err := svc.Create(context.Background(), &Input{Name: "Ibuprofen"})
	if err != nil {
		t.Fatal(err)
	}

	nowFunc = func() string { return "2024-06-01T00:00:00Z" }
	defer func() { nowFunc = old }()

	updated, err := svc.Update(context.Background(), created.ID, &Input{Name: "Ibuprofen 400"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.CreatedAt != "2024-01-01T00:00:00Z" {
		t.Errorf("created_at changed on update: %q", updated.CreatedAt)
	}
	if updated.UpdatedAt != "2024-06-01T00:00:00Z" {
		t.Errorf("updated_at not stamped: %q", updated.UpdatedAt)
	}
	if updated.Name != "Ibuprofen 400" {
		t.Errorf("mutable fields not replaced: %q", updated.Name)
	}
}

func TestService_Update_ClearsOmittedOptionals(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &Input{
		Name:       "Ibuprofen",
		DoctorName: strptr("Dr. Roe"),
		EndDate:    strptr("2024-03-01"),
	})
	if err != nil {
		t.Fatal(err)
	}

	// The update supplies neither field; the replacement must clear both.
	if _, err := svc.Update(ctx, created.ID, &Input{Name: "Ibuprofen"}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.DoctorName != nil {
		t.Errorf("doctor_name survived the update: %q", *got.DoctorName)
	}
	if got.EndDate != nil {
		t.Errorf("end_date survived the update: %q", *got.EndDate)
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), "no-such-id", &Input{Name: "X"})
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	svc, _ := newTestService()

	if err := svc.Delete(context.Background(), "no-such-id"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_List_Filters(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	seed := []*Input{
		{Name: "A", Category: "Antibiotic", Type: "Tablet", Tags: "infection, Fever"},
		{Name: "B", Category: "Antibiotic", Type: "Syrup", Tags: "infection"},
		{Name: "C", Category: "Painkiller", Type: "Tablet", Tags: "headache"},
	}
	for _, in := range seed {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	got, err := svc.List(ctx, Filter{Category: "Antibiotic"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("category filter: got %d, want 2", len(got))
	}

	got, _ = svc.List(ctx, Filter{Category: "Antibiotic", Type: "Tablet"})
	if len(got) != 1 {
		t.Errorf("combined filters: got %d, want 1", len(got))
	}

	// Tag matching is a case-insensitive substring.
	got, _ = svc.List(ctx, Filter{Tag: "FEVER"})
	if len(got) != 1 || got[0].Name != "A" {
		t.Errorf("tag filter: got %v", got)
	}

	got, _ = svc.List(ctx, Filter{})
	if len(got) != 3 {
		t.Errorf("no filters: got %d, want 3", len(got))
	}
}

func TestService_Stats(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, &Input{Name: "a", Category: "A"}); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.Create(ctx, &Input{Name: "b", Category: "B"}); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if stats.TotalMedicines != 5 {
		t.Errorf("total = %d, want 5", stats.TotalMedicines)
	}
	if stats.ByCategory["A"] != 3 || stats.ByCategory["B"] != 2 {
		t.Errorf("by_category = %v", stats.ByCategory)
	}
	if _, ok := stats.ByCategory["C"]; ok {
		t.Error("empty categories must be absent, not zero-filled")
	}
}
