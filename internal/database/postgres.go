package database

import (
	"database/sql"
	"fmt"

	"realty-marketplace/internal/models"

	_ "github.com/lib/pq"
)

// DB is the raw PostgreSQL path. It carries the authoritative schema
// (foreign keys with cascades, CHECK constraints, the unique save
// pair) and serves the public read-only endpoints when the service
// runs without GORM. Writes go through the GORM store only.
type DB struct {
	conn *sql.DB
}

func NewDB(host, port, user, password, dbname, sslmode string) (*DB, error) {
	if sslmode == "" {
		sslmode = "disable"
	}
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	return &DB{conn: conn}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// InitSchema creates all tables. Deleting a property cascades to its
// photos, saves, messages, and pending index work at the database
// level, matching what the GORM store does transactionally.
func (db *DB) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS profiles (
		id VARCHAR(36) PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'seeker' CHECK (role IN ('seeker', 'agent', 'admin')),
		name VARCHAR(120) NOT NULL,
		phone VARCHAR(20),
		verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS properties (
		id VARCHAR(36) PRIMARY KEY,
		agent_id VARCHAR(36) NOT NULL REFERENCES profiles(id),
		title VARCHAR(200) NOT NULL,
		description TEXT,
		price BIGINT NOT NULL CHECK (price >= 0),
		currency VARCHAR(3) NOT NULL DEFAULT 'USD',
		for_rent BOOLEAN NOT NULL DEFAULT FALSE,
		beds INTEGER NOT NULL DEFAULT 0 CHECK (beds >= 0),
		baths INTEGER NOT NULL DEFAULT 0 CHECK (baths >= 0),
		area_sqft INTEGER,
		address TEXT,
		city VARCHAR(100),
		region VARCHAR(100),
		latitude DECIMAL(10, 7),
		longitude DECIMAL(10, 7),
		status VARCHAR(20) NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'published', 'archived')),
		archived_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS property_photos (
		id VARCHAR(36) PRIMARY KEY,
		property_id VARCHAR(36) NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		storage_path VARCHAR(500) NOT NULL,
		thumb_path VARCHAR(500),
		med_path VARCHAR(500),
		ordering INTEGER NOT NULL DEFAULT 0 CHECK (ordering >= 0),
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS saved_properties (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(36) NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		property_id VARCHAR(36) NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		CONSTRAINT saved_user_property_unique UNIQUE (user_id, property_id)
	);

	CREATE TABLE IF NOT EXISTS messages (
		id VARCHAR(36) PRIMARY KEY,
		property_id VARCHAR(36) NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		seeker_id VARCHAR(36) NOT NULL REFERENCES profiles(id),
		agent_id VARCHAR(36) NOT NULL REFERENCES profiles(id),
		body TEXT NOT NULL,
		email VARCHAR(255),
		phone VARCHAR(20),
		status VARCHAR(20) NOT NULL DEFAULT 'unread' CHECK (status IN ('unread', 'read', 'responded')),
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS city_market_stats (
		id BIGSERIAL PRIMARY KEY,
		city VARCHAR(100) NOT NULL,
		for_rent BOOLEAN NOT NULL,
		listing_count BIGINT NOT NULL,
		avg_price DOUBLE PRECISION NOT NULL,
		min_price BIGINT NOT NULL,
		max_price BIGINT NOT NULL,
		computed_at TIMESTAMP NOT NULL,
		CONSTRAINT market_city_kind_unique UNIQUE (city, for_rent)
	);

	CREATE TABLE IF NOT EXISTS search_index_queue (
		id BIGSERIAL PRIMARY KEY,
		property_id VARCHAR(36) NOT NULL,
		op VARCHAR(20) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		attempts INTEGER DEFAULT 0,
		last_error TEXT,
		next_retry_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
		completed_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS delete_logs (
		id BIGSERIAL PRIMARY KEY,
		property_id VARCHAR(36) NOT NULL,
		agent_id VARCHAR(36) NOT NULL,
		title VARCHAR(200),
		reason VARCHAR(50) NOT NULL,
		deleted_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_properties_status ON properties(status);
	CREATE INDEX IF NOT EXISTS idx_properties_city ON properties(city);
	CREATE INDEX IF NOT EXISTS idx_properties_created_at ON properties(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_messages_seeker ON messages(seeker_id);
	CREATE INDEX IF NOT EXISTS idx_messages_agent ON messages(agent_id);
	CREATE INDEX IF NOT EXISTS idx_index_queue_status ON search_index_queue(status);
	`
	_, err := db.conn.Exec(query)
	return err
}

// publishedColumns is the read-only path's select list. The nullable
// text columns are coalesced because they scan into plain strings; a
// NULL written by an external writer must not fail the whole page.
const publishedColumns = `id, agent_id, title, COALESCE(description, '') AS description,
	   price, currency, for_rent, beds, baths, area_sqft,
	   COALESCE(address, '') AS address, COALESCE(city, '') AS city,
	   COALESCE(region, '') AS region, latitude, longitude,
	   status, created_at, updated_at`

// GetPublishedProperties is the anonymous browse path: published rows
// only, newest first.
func (db *DB) GetPublishedProperties(limit, offset int) ([]models.Property, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `
		SELECT ` + publishedColumns + `
		FROM properties
		WHERE status = 'published'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := db.conn.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		var p models.Property
		err := rows.Scan(
			&p.ID, &p.AgentID, &p.Title, &p.Description, &p.Price, &p.Currency, &p.ForRent,
			&p.Beds, &p.Baths, &p.AreaSqft, &p.Address, &p.City, &p.Region, &p.Latitude, &p.Longitude,
			&p.Status, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}

	return properties, rows.Err()
}

// GetPublishedPropertyByID returns one published listing. Drafts and
// archived listings are not found on this path, same as absent ids.
func (db *DB) GetPublishedPropertyByID(id string) (*models.Property, error) {
	query := `
		SELECT ` + publishedColumns + `
		FROM properties
		WHERE id = $1 AND status = 'published'
	`

	var p models.Property
	err := db.conn.QueryRow(query, id).Scan(
		&p.ID, &p.AgentID, &p.Title, &p.Description, &p.Price, &p.Currency, &p.ForRent,
		&p.Beds, &p.Baths, &p.AreaSqft, &p.Address, &p.City, &p.Region, &p.Latitude, &p.Longitude,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}
