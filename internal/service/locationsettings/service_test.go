package locationsettings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ziplofy-shipping/internal/domain"
)

type stubRepo struct {
	rows        []domain.LocationSetting
	updateCalls int
	lastMode    domain.RateGenerationMode
}

func (s *stubRepo) ListByProfiles(_ context.Context, ids []string) ([]domain.LocationSetting, error) {
	out := []domain.LocationSetting{}
	for _, r := range s.rows {
		if r.ShippingProfileID == ids[0] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRepo) UpdateMode(_ context.Context, profileID, locationID string, mode domain.RateGenerationMode) (*domain.LocationSetting, error) {
	s.updateCalls++
	s.lastMode = mode
	for i, r := range s.rows {
		if r.ShippingProfileID == profileID && r.LocationID == locationID {
			s.rows[i].Mode = mode
			out := s.rows[i]
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func flags(c, r bool) UpdateInput {
	return UpdateInput{CreateNewRates: &c, RemoveRates: &r}
}

func TestUpdate_SwitchesMode(t *testing.T) {
	profileID, locationID := uuid.NewString(), uuid.NewString()
	repo := &stubRepo{rows: []domain.LocationSetting{{
		ID: uuid.NewString(), ShippingProfileID: profileID, LocationID: locationID, Mode: domain.RateModeCreateNew,
	}}}
	svc := New(repo)

	s, err := svc.Update(context.Background(), profileID, locationID, flags(false, true))
	require.NoError(t, err)
	assert.Equal(t, domain.RateModeRemove, s.Mode)
	assert.True(t, s.Mode.RemoveRates())

	got, err := svc.Get(context.Background(), profileID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.RateModeRemove, got[0].Mode)
}

func TestUpdate_RejectsInvalidFlags(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	ctx := context.Background()
	p, l := uuid.NewString(), uuid.NewString()

	tests := []struct {
		name string
		in   UpdateInput
	}{
		{"both true", flags(true, true)},
		{"both false", flags(false, false)},
		{"missing removeRates", UpdateInput{CreateNewRates: flags(true, false).CreateNewRates}},
		{"missing both", UpdateInput{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, p, l, tt.in)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
	assert.Zero(t, repo.updateCalls)
}

func TestUpdate_MissingRowIsNotFound(t *testing.T) {
	svc := New(&stubRepo{})
	_, err := svc.Update(context.Background(), uuid.NewString(), uuid.NewString(), flags(true, false))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestUpdate_MalformedIDs(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	_, err := svc.Update(context.Background(), "x", uuid.NewString(), flags(true, false))
	assert.EqualError(t, err, "Invalid shipping profile id")
	_, err = svc.Update(context.Background(), uuid.NewString(), "", flags(true, false))
	assert.EqualError(t, err, "location id is required")
	assert.Zero(t, repo.updateCalls)
}
