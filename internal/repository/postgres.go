package repository

import (
	"context"
	"errors"

	"gasp-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createLocationsTable = `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS gasp_locations (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		formatted_address TEXT NOT NULL,
		geom GEOGRAPHY(POINT, 4326) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

// PostgresStore keeps canonical locations in a PostGIS table.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a store backed by the given pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the gasp_locations table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createLocationsTable); err != nil {
		return &StoreError{Op: "ensure schema", Err: err}
	}
	return nil
}

// Connect acquires a dedicated connection from the pool.
func (s *PostgresStore) Connect(ctx context.Context) (Conn, error) {
	conn, err := s.db.Acquire(ctx)
	if err != nil {
		return nil, &StoreError{Op: "acquire connection", Err: err}
	}
	return &pgConn{conn: conn}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return &StoreError{Op: "ping", Err: err}
	}
	return nil
}

// FindNearestLocation performs a spatial query for the stored location closest to the given coordinates.
func (s *PostgresStore) FindNearestLocation(ctx context.Context, lat, lng float64) (*models.GaspLocation, error) {
	sql := `
		SELECT
			id::text,
			name,
			formatted_address,
			ST_Y(geom::geometry) AS latitude,
			ST_X(geom::geometry) AS longitude
		FROM gasp_locations
		WHERE ST_DWithin(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3)
		ORDER BY geom <-> ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography
		LIMIT 1
	`

	var loc models.GaspLocation
	err := s.db.QueryRow(ctx, sql, lat, lng, nearestRadiusMeters).Scan(
		&loc.ID,
		&loc.Name,
		&loc.FormattedAddress,
		&loc.Location.Lat,
		&loc.Location.Lng,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &StoreError{Op: "find nearest location", Err: err}
	}
	return &loc, nil
}

type pgConn struct {
	conn *pgxpool.Conn
}

func (c *pgConn) InsertLocation(ctx context.Context, loc models.GaspLocation) error {
	sql := `
		INSERT INTO gasp_locations (id, name, formatted_address, geom)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($5, $4), 4326)::geography)
	`

	_, err := c.conn.Exec(ctx, sql, loc.ID, loc.Name, loc.FormattedAddress, loc.Location.Lat, loc.Location.Lng)
	if err != nil {
		return &StoreError{Op: "insert location", Err: err}
	}
	return nil
}

func (c *pgConn) Close() {
	c.conn.Release()
}
