package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ziplofy-shipping/internal/domain"
	storerepo "ziplofy-shipping/internal/repository/store"
)

type memRepo struct {
	stores    map[string]bool
	locations []domain.Location
}

func (m *memRepo) GetByID(_ context.Context, id string) (*domain.Store, error) {
	if !m.stores[id] {
		return nil, domain.ErrNotFound
	}
	return &domain.Store{ID: id}, nil
}

func (m *memRepo) ListLocations(_ context.Context, storeID string) ([]domain.Location, error) {
	out := []domain.Location{}
	for _, l := range m.locations {
		if l.StoreID == storeID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memRepo) CreateLocation(_ context.Context, in storerepo.CreateLocationInput) (*domain.Location, error) {
	l := domain.Location{ID: uuid.NewString(), StoreID: in.StoreID, Name: in.Name, City: in.City, CountryCode: in.CountryCode}
	m.locations = append(m.locations, l)
	return &l, nil
}

func (m *memRepo) DeleteLocation(_ context.Context, id string) error {
	for i, l := range m.locations {
		if l.ID == id {
			m.locations = append(m.locations[:i], m.locations[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func TestLocations(t *testing.T) {
	storeID := uuid.NewString()
	svc := New(&memRepo{stores: map[string]bool{storeID: true}})
	ctx := context.Background()

	l, err := svc.CreateLocation(ctx, storeID, CreateLocationInput{Name: " Main ", CountryCode: "us"})
	require.NoError(t, err)
	assert.Equal(t, "Main", l.Name)
	assert.Equal(t, "US", l.CountryCode)

	list, err := svc.ListLocations(ctx, storeID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteLocation(ctx, l.ID))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(svc.DeleteLocation(ctx, l.ID)))
}

func TestLocations_Validation(t *testing.T) {
	svc := New(&memRepo{stores: map[string]bool{}})
	ctx := context.Background()

	_, err := svc.CreateLocation(ctx, uuid.NewString(), CreateLocationInput{})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.CreateLocation(ctx, uuid.NewString(), CreateLocationInput{Name: "Main"})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = svc.ListLocations(ctx, "abc")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
