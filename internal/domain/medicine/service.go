package medicine

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// nowFunc is swapped in tests to pin timestamps.
var nowFunc = func() string {
	return time.Now().UTC().Format(time.RFC3339)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stamps a new record with a generated id and UTC timestamps, applies
// the end-date derivation rule, and persists it.
func (s *Service) Create(ctx context.Context, in *Input) (*Medicine, error) {
	m := in.toMedicine()
	m.ID = uuid.New().String()
	now := nowFunc()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := applyEndDateRule(m); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Medicine, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]*Medicine, error) {
	return s.repo.List(ctx, f)
}

// Update replaces the mutable fields of an existing record. The creation
// timestamp is untouched and the derivation rule is re-applied against the
// new input, so changing the start date or duration recomputes the end date
// unless an explicit end date was supplied.
func (s *Service) Update(ctx context.Context, id string, in *Input) (*Medicine, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	m := in.toMedicine()
	m.ID = existing.ID
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = nowFunc()

	if err := applyEndDateRule(m); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}
