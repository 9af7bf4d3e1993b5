package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/forkful/menusearch/core"
	"github.com/forkful/menusearch/metadata"
	"github.com/lib/pq"
)

const fetchByIDsQuery = `
SELECT
    mi.external_id,
    mi.category,
    mi.name,
    mi.description,
    mi.price,
    mi.restaurant_id,
    r.name AS restaurant_name,
    r.address,
    r.city,
    r.state,
    r.latitude,
    r.longitude,
    r.cuisine,
    r.rating,
    r.review_count,
    r.on_time_rate,
    r.delivery_fee,
    r.delivery_minimum
FROM menu_items mi
JOIN restaurants r ON mi.restaurant_id = r.id
WHERE mi.external_id = ANY($1)`

// Store implements metadata.Store on PostgreSQL, joining menu items with
// their restaurants. Access goes through a bounded connection pool shared
// read-only across concurrent requests.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ metadata.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*config)

type config struct {
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
	logger          *slog.Logger
}

// WithPoolSize bounds the number of open connections.
// Default is 8.
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.maxOpenConns = n
	}
}

// WithConnMaxLifetime bounds how long a pooled connection may be reused.
// Default is one hour.
func WithConnMaxLifetime(d time.Duration) Option {
	return func(c *config) {
		c.connMaxLifetime = d
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// New opens a metadata store for the given PostgreSQL DSN.
// The connection is verified with a ping before the store is returned.
func New(dsn string, opts ...Option) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	cfg := &config{
		maxOpenConns:    8,
		maxIdleConns:    2,
		connMaxLifetime: time.Hour,
		logger:          slog.Default().With("component", "metadata-store"),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.maxOpenConns)
	db.SetMaxIdleConns(cfg.maxIdleConns)
	db.SetConnMaxLifetime(cfg.connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		logger: cfg.logger,
	}, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// FetchByIDs retrieves authoritative fields for the given external ids.
func (s *Store) FetchByIDs(ctx context.Context, ids []string) (map[string]core.Metadata, error) {
	if len(ids) == 0 {
		return map[string]core.Metadata{}, nil
	}

	rows, err := s.db.QueryContext(ctx, fetchByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]core.Metadata, len(ids))
	for rows.Next() {
		var (
			externalID      string
			category        sql.NullString
			name            sql.NullString
			description     sql.NullString
			price           sql.NullFloat64
			restaurantID    sql.NullInt64
			restaurantName  sql.NullString
			address         sql.NullString
			city            sql.NullString
			state           sql.NullString
			latitude        sql.NullFloat64
			longitude       sql.NullFloat64
			cuisine         sql.NullString
			rating          sql.NullFloat64
			reviewCount     sql.NullInt64
			onTimeRate      sql.NullFloat64
			deliveryFee     sql.NullFloat64
			deliveryMinimum sql.NullFloat64
		)

		err := rows.Scan(
			&externalID, &category, &name, &description, &price, &restaurantID,
			&restaurantName, &address, &city, &state, &latitude, &longitude,
			&cuisine, &rating, &reviewCount, &onTimeRate, &deliveryFee, &deliveryMinimum,
		)
		if err != nil {
			return nil, err
		}

		meta := core.Metadata{"id": externalID}
		putString(meta, "category", category)
		putString(meta, "name", name)
		putString(meta, "description", description)
		putFloat(meta, "price", price)
		if restaurantID.Valid {
			meta["restaurant_id"] = int(restaurantID.Int64)
		}
		putString(meta, "restaurant", restaurantName)
		putString(meta, "address", address)
		putString(meta, "city", city)
		putString(meta, "state", state)
		putFloat(meta, "latitude", latitude)
		putFloat(meta, "longitude", longitude)
		putString(meta, "cuisine", cuisine)
		putFloat(meta, "rating", rating)
		if reviewCount.Valid {
			meta["review_count"] = int(reviewCount.Int64)
		}
		putFloat(meta, "on_time_rate", onTimeRate)
		putFloat(meta, "delivery_fee", deliveryFee)
		putFloat(meta, "delivery_minimum", deliveryMinimum)

		out[externalID] = meta
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("fetched metadata rows", "requested", len(ids), "found", len(out))
	return out, nil
}

func putString(meta core.Metadata, key string, v sql.NullString) {
	if v.Valid && v.String != "" {
		meta[key] = v.String
	}
}

func putFloat(meta core.Metadata, key string, v sql.NullFloat64) {
	if v.Valid {
		meta[key] = v.Float64
	}
}
