package geo

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ziplofy-shipping/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const countryColumns = `id::text, name, iso2, flag, created_at`

func (r *postgresRepo) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return r.queryCountries(ctx, `SELECT `+countryColumns+` FROM countries ORDER BY name ASC`)
}

func (r *postgresRepo) GetCountryByISO2(ctx context.Context, iso2 string) (*domain.Country, error) {
	var c domain.Country
	err := r.pool.QueryRow(ctx, `SELECT `+countryColumns+` FROM countries WHERE iso2 = $1`, strings.ToUpper(iso2)).
		Scan(&c.ID, &c.Name, &c.ISO2, &c.Flag, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) CountriesByIDs(ctx context.Context, ids []string) ([]domain.Country, error) {
	if len(ids) == 0 {
		return []domain.Country{}, nil
	}
	return r.queryCountries(ctx, `SELECT `+countryColumns+` FROM countries WHERE id = ANY($1::text[]::uuid[])`, ids)
}

func (r *postgresRepo) queryCountries(ctx context.Context, q string, args ...any) ([]domain.Country, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Country{}
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.ISO2, &c.Flag, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

const stateColumns = `id::text, country_id::text, name, code, created_at`

func (r *postgresRepo) ListStates(ctx context.Context, countryID string) ([]domain.State, error) {
	return r.queryStates(ctx, `SELECT `+stateColumns+` FROM states WHERE country_id = $1 ORDER BY name ASC`, countryID)
}

func (r *postgresRepo) StatesByIDs(ctx context.Context, ids []string) ([]domain.State, error) {
	if len(ids) == 0 {
		return []domain.State{}, nil
	}
	return r.queryStates(ctx, `SELECT `+stateColumns+` FROM states WHERE id = ANY($1::text[]::uuid[])`, ids)
}

func (r *postgresRepo) queryStates(ctx context.Context, q string, args ...any) ([]domain.State, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.State{}
	for rows.Next() {
		var s domain.State
		if err := rows.Scan(&s.ID, &s.CountryID, &s.Name, &s.Code, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
