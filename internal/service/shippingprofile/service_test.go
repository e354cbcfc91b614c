package shippingprofile

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ziplofy-shipping/internal/domain"
)

// memRepo is an in-memory profile store that seeds settings the way the
// Postgres repository does.
type memRepo struct {
	stores    map[string]bool
	locations map[string][]string
	profiles  []domain.ShippingProfile
	settings  []domain.LocationSetting
	variants  []domain.ProfileVariant
	zones     map[string][]string

	createErr error
	calls     int
	clock     time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{
		stores:    map[string]bool{},
		locations: map[string][]string{},
		zones:     map[string][]string{},
		clock:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memRepo) addStore(locations int) string {
	id := uuid.NewString()
	m.stores[id] = true
	for i := 0; i < locations; i++ {
		m.locations[id] = append(m.locations[id], uuid.NewString())
	}
	return id
}

func (m *memRepo) GetByID(_ context.Context, id string) (*domain.Store, error) {
	if !m.stores[id] {
		return nil, domain.ErrNotFound
	}
	return &domain.Store{ID: id}, nil
}

func (m *memRepo) Create(_ context.Context, storeID, name string) (*domain.ShippingProfile, error) {
	m.calls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.clock = m.clock.Add(time.Second)
	p := domain.ShippingProfile{ID: uuid.NewString(), StoreID: storeID, ProfileName: name, CreatedAt: m.clock, UpdatedAt: m.clock}
	m.profiles = append([]domain.ShippingProfile{p}, m.profiles...)
	for _, loc := range m.locations[storeID] {
		m.settings = append(m.settings, domain.LocationSetting{
			ID:                uuid.NewString(),
			ShippingProfileID: p.ID,
			LocationID:        loc,
			StoreID:           storeID,
			Mode:              domain.DefaultRateMode,
			Location:          &domain.Location{ID: loc, StoreID: storeID},
		})
	}
	return &p, nil
}

func (m *memRepo) find(id string) int {
	for i, p := range m.profiles {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (m *memRepo) GetProfile(id string) (*domain.ShippingProfile, error) {
	i := m.find(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	p := m.profiles[i]
	return &p, nil
}

func (m *memRepo) ListByStore(_ context.Context, storeID string) ([]domain.ShippingProfile, error) {
	m.calls++
	out := []domain.ShippingProfile{}
	for _, p := range m.profiles {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memRepo) NameExists(_ context.Context, storeID, name, excludeID string) (bool, error) {
	m.calls++
	for _, p := range m.profiles {
		if p.StoreID == storeID && p.ProfileName == name && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) UpdateName(_ context.Context, id, name string) (*domain.ShippingProfile, error) {
	i := m.find(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	m.profiles[i].ProfileName = name
	p := m.profiles[i]
	return &p, nil
}

func (m *memRepo) Delete(_ context.Context, id string) (*domain.ProfileDeleteResult, error) {
	m.calls++
	i := m.find(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	m.profiles = append(m.profiles[:i], m.profiles[i+1:]...)
	var res domain.ProfileDeleteResult
	kept := m.settings[:0]
	for _, s := range m.settings {
		if s.ShippingProfileID == id {
			res.DeletedLocationSettings++
			continue
		}
		kept = append(kept, s)
	}
	m.settings = kept
	res.DeletedZones = int64(len(m.zones[id]))
	delete(m.zones, id)
	return &res, nil
}

func (m *memRepo) ListByProfiles(_ context.Context, ids []string) ([]domain.LocationSetting, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []domain.LocationSetting{}
	for _, s := range m.settings {
		if want[s.ShippingProfileID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memRepo) IDsByProfiles(_ context.Context, ids []string) (map[string][]string, error) {
	out := map[string][]string{}
	for _, id := range ids {
		if z, ok := m.zones[id]; ok {
			out[id] = z
		}
	}
	return out, nil
}

// profileRepo adapts memRepo's GetProfile to the repository's GetByID.
type profileRepo struct{ *memRepo }

func (r profileRepo) GetByID(_ context.Context, id string) (*domain.ShippingProfile, error) {
	return r.GetProfile(id)
}

type variantRepo struct{ m *memRepo }

func (v variantRepo) ListByProfiles(_ context.Context, ids []string) ([]domain.ProfileVariant, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []domain.ProfileVariant{}
	for _, e := range v.m.variants {
		if want[e.ShippingProfileID] {
			out = append(out, e)
		}
	}
	return out, nil
}

func newService(m *memRepo) *Service {
	return New(profileRepo{m}, m, m, variantRepo{m}, m)
}

func TestCreate_SeedsEveryLocation(t *testing.T) {
	m := newMemRepo()
	storeID := m.addStore(3)
	svc := newService(m)

	d, err := svc.Create(context.Background(), storeID, "  General ")
	require.NoError(t, err)
	assert.Equal(t, "General", d.ProfileName)
	require.Len(t, d.LocationSettings, 3)
	for _, s := range d.LocationSettings {
		assert.Equal(t, domain.RateModeCreateNew, s.Mode)
		raw, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"createNewRates":true`)
		assert.Contains(t, string(raw), `"removeRates":false`)
	}
	assert.Equal(t, []domain.ProductVariant{}, d.ProductVariants)
	assert.Equal(t, []string{}, d.ShippingZoneIDs)
}

func TestCreate_StoreWithoutLocations(t *testing.T) {
	m := newMemRepo()
	storeID := m.addStore(0)
	svc := newService(m)

	d, err := svc.Create(context.Background(), storeID, "Default")
	require.NoError(t, err)
	assert.NotNil(t, d.LocationSettings)
	assert.Empty(t, d.LocationSettings)

	m.locations[storeID] = append(m.locations[storeID], uuid.NewString())
	list, err := svc.List(context.Background(), storeID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].LocationSettings)
}

func TestCreate_Validation(t *testing.T) {
	m := newMemRepo()
	storeID := m.addStore(1)
	svc := newService(m)
	ctx := context.Background()

	_, err := svc.Create(ctx, "not-an-id", "General")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.EqualError(t, err, "Invalid store id")

	_, err = svc.Create(ctx, storeID, "   ")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Zero(t, m.calls)

	_, err = svc.Create(ctx, uuid.NewString(), "General")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestCreate_DuplicateName(t *testing.T) {
	m := newMemRepo()
	storeID := m.addStore(1)
	svc := newService(m)
	ctx := context.Background()

	_, err := svc.Create(ctx, storeID, "General")
	require.NoError(t, err)

	_, err = svc.Create(ctx, storeID, "General")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	other := m.addStore(0)
	_, err = svc.Create(ctx, other, "General")
	assert.NoError(t, err)
}

func TestCreate_UniqueIndexRace(t *testing.T) {
	m := newMemRepo()
	storeID := m.addStore(0)
	m.createErr = domain.ErrAlreadyExists
	svc := newService(m)

	_, err := svc.Create(context.Background(), storeID, "General")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestList_NewestFirst(t *testing.T) {
	m := newMemRepo()
	storeID := m.addStore(0)
	svc := newService(m)
	ctx := context.Background()

	_, err := svc.Create(ctx, storeID, "Old")
	require.NoError(t, err)
	_, err = svc.Create(ctx, storeID, "New")
	require.NoError(t, err)

	list, err := svc.List(ctx, storeID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "New", list[0].ProfileName)
	assert.Equal(t, "Old", list[1].ProfileName)
}

func TestUpdate_RenameExcludesSelf(t *testing.T) {
	m := newMemRepo()
	storeID := m.addStore(0)
	svc := newService(m)
	ctx := context.Background()

	a, err := svc.Create(ctx, storeID, "A")
	require.NoError(t, err)
	_, err = svc.Create(ctx, storeID, "B")
	require.NoError(t, err)

	d, err := svc.Update(ctx, a.ID, "A")
	require.NoError(t, err)
	assert.Equal(t, "A", d.ProfileName)

	_, err = svc.Update(ctx, a.ID, "B")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	_, err = svc.Update(ctx, a.ID, "")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.Update(ctx, uuid.NewString(), "C")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestDelete_SecondAttemptIsNotFound(t *testing.T) {
	m := newMemRepo()
	storeID := m.addStore(2)
	svc := newService(m)
	ctx := context.Background()

	p, err := svc.Create(ctx, storeID, "General")
	require.NoError(t, err)
	m.zones[p.ID] = []string{uuid.NewString()}

	res, err := svc.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.DeletedLocationSettings)
	assert.Equal(t, int64(1), res.DeletedZones)

	_, err = svc.Delete(ctx, p.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = svc.Delete(ctx, "bad")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
