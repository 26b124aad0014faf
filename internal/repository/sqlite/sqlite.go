// Package sqlite implements the persistence gateway on SQLite using the
// pure-Go modernc.org/sqlite driver, so the server builds without CGo.
//
// All four resource tables share the same conventions: xid string
// primary keys assigned on insert, created_at/updated_at stamped by this
// layer, list-valued fields stored as JSON arrays in TEXT columns, and
// listing ordered by created_at descending.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// DB wraps the connection pool and hands out per-resource repositories.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath (":memory:" for tests), configures
// WAL mode and foreign keys, and runs the schema migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL keeps reads concurrent with writes; foreign keys are off by
	// default in SQLite and must be enabled per connection.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool, flushing the WAL.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Projects returns the project repository backed by this database.
func (db *DB) Projects() *ProjectRepo { return &ProjectRepo{conn: db.conn} }

// BlogPosts returns the blog post repository backed by this database.
func (db *DB) BlogPosts() *BlogPostRepo { return &BlogPostRepo{conn: db.conn} }

// Certificates returns the certificate repository backed by this database.
func (db *DB) Certificates() *CertificateRepo { return &CertificateRepo{conn: db.conn} }

// Testimonials returns the testimonial repository backed by this database.
func (db *DB) Testimonials() *TestimonialRepo { return &TestimonialRepo{conn: db.conn} }

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS projects (
			id           TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			status       TEXT NOT NULL DEFAULT 'planned',
			category     TEXT NOT NULL DEFAULT 'personal',
			technologies TEXT NOT NULL DEFAULT '[]',
			featured     INTEGER NOT NULL DEFAULT 0,
			repo_url     TEXT NOT NULL DEFAULT '',
			demo_url     TEXT NOT NULL DEFAULT '',
			image_url    TEXT NOT NULL DEFAULT '',
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_projects_created_at ON projects(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating projects table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS blog_posts (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			slug       TEXT NOT NULL UNIQUE,
			excerpt    TEXT NOT NULL DEFAULT '',
			content    TEXT NOT NULL DEFAULT '',
			status     TEXT NOT NULL DEFAULT 'draft',
			published  INTEGER NOT NULL DEFAULT 0,
			tags       TEXT NOT NULL DEFAULT '[]',
			read_time  INTEGER NOT NULL DEFAULT 5,
			views      INTEGER NOT NULL DEFAULT 0,
			likes      INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_blog_posts_created_at ON blog_posts(created_at);
		CREATE INDEX IF NOT EXISTS idx_blog_posts_slug ON blog_posts(slug);
	`)
	if err != nil {
		return fmt.Errorf("creating blog_posts table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS certificates (
			id            TEXT PRIMARY KEY,
			title         TEXT NOT NULL,
			organization  TEXT NOT NULL,
			image_url     TEXT NOT NULL DEFAULT '',
			credential_id TEXT NOT NULL DEFAULT '',
			skills        TEXT NOT NULL DEFAULT '[]',
			verified      INTEGER NOT NULL DEFAULT 0,
			issue_date    DATETIME NOT NULL,
			expiry_date   DATETIME,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_certificates_created_at ON certificates(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating certificates table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS testimonials (
			id          TEXT PRIMARY KEY,
			author_name TEXT NOT NULL,
			author_role TEXT NOT NULL DEFAULT '',
			company     TEXT NOT NULL DEFAULT '',
			feedback    TEXT NOT NULL DEFAULT '',
			rating      INTEGER NOT NULL DEFAULT 5,
			status      TEXT NOT NULL DEFAULT 'pending',
			avatar_url  TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_testimonials_created_at ON testimonials(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating testimonials table: %w", err)
	}

	return nil
}
