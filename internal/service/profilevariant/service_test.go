package profilevariant

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ziplofy-shipping/internal/domain"
	variantrepo "ziplofy-shipping/internal/repository/profilevariant"
)

type stubRepo struct {
	variants map[string]domain.ProductVariant
	entries  []domain.ProfileVariant
	created  []variantrepo.CreateInput
}

func (s *stubRepo) ListByProfiles(_ context.Context, ids []string) ([]domain.ProfileVariant, error) {
	out := []domain.ProfileVariant{}
	for _, e := range s.entries {
		if e.ShippingProfileID == ids[0] {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubRepo) GetVariant(_ context.Context, id string) (*domain.ProductVariant, error) {
	v, ok := s.variants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

// Create mimics the unique index on (profile, variant, store).
func (s *stubRepo) Create(_ context.Context, in variantrepo.CreateInput) (*domain.ProfileVariant, error) {
	for _, e := range s.entries {
		if e.ShippingProfileID == in.ShippingProfileID && e.ProductVariantID == in.ProductVariantID && e.StoreID == in.StoreID {
			return nil, domain.ErrAlreadyExists
		}
	}
	s.created = append(s.created, in)
	v := s.variants[in.ProductVariantID]
	e := domain.ProfileVariant{
		ID:                uuid.NewString(),
		ShippingProfileID: in.ShippingProfileID,
		ProductVariantID:  in.ProductVariantID,
		StoreID:           in.StoreID,
		ProductVariant:    &v,
	}
	s.entries = append(s.entries, e)
	return &e, nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubProfiles map[string]domain.ShippingProfile

func (p stubProfiles) GetByID(_ context.Context, id string) (*domain.ShippingProfile, error) {
	sp, ok := p[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sp, nil
}

type fixture struct {
	svc       *Service
	repo      *stubRepo
	profileID string
	variantID string
	foreignID string
}

func newFixture() fixture {
	storeID, otherStore := uuid.NewString(), uuid.NewString()
	profileID, variantID, foreignID := uuid.NewString(), uuid.NewString(), uuid.NewString()
	repo := &stubRepo{variants: map[string]domain.ProductVariant{
		variantID: {ID: variantID, StoreID: storeID, ProductTitle: "Shirt", ProductImageURLs: []string{"a.png"}},
		foreignID: {ID: foreignID, StoreID: otherStore, ProductTitle: "Hat"},
	}}
	profiles := stubProfiles{profileID: {ID: profileID, StoreID: storeID}}
	return fixture{svc: New(repo, profiles), repo: repo, profileID: profileID, variantID: variantID, foreignID: foreignID}
}

func TestCreate_AttachesVariant(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	e, err := f.svc.Create(ctx, f.profileID, f.variantID)
	require.NoError(t, err)
	assert.Equal(t, "Shirt", e.ProductVariant.ProductTitle)
	require.Len(t, f.repo.created, 1)
	assert.Equal(t, f.repo.variants[f.variantID].StoreID, f.repo.created[0].StoreID)

	list, err := f.svc.List(ctx, f.profileID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreate_DuplicateIsConflict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.profileID, f.variantID)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.profileID, f.variantID)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestCreate_ForeignStoreIsForbidden(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Create(context.Background(), f.profileID, f.foreignID)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	assert.Empty(t, f.repo.created)
}

func TestCreate_Missing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, uuid.NewString(), f.variantID)
	assert.EqualError(t, err, "Shipping profile not found")

	_, err = f.svc.Create(ctx, f.profileID, uuid.NewString())
	assert.EqualError(t, err, "Product variant not found")

	_, err = f.svc.Create(ctx, f.profileID, "nope")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e, err := f.svc.Create(ctx, f.profileID, f.variantID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, e.ID))
	err = f.svc.Delete(ctx, e.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
