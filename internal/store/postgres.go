// Package store persists scraped record sets to Postgres. Writes are full
// overwrites: a scrape run replaces the previous run's rows.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/premieredata/suitescraper/internal/record"
)

const insertBatchSize = 50

const schema = `
CREATE TABLE IF NOT EXISTS properties (
	id             TEXT NOT NULL,
	property_name  TEXT NOT NULL,
	city           TEXT NOT NULL,
	rating         DOUBLE PRECISION,
	room_type      TEXT,
	amenities      TEXT,
	suite_features TEXT,
	description    TEXT,
	source_url     TEXT,
	image_url      TEXT,
	pet_friendly   BOOLEAN NOT NULL DEFAULT FALSE,
	bedrooms       INTEGER,
	building_type  TEXT,
	PRIMARY KEY (property_name, city)
);

CREATE TABLE IF NOT EXISTS faqs (
	id         TEXT PRIMARY KEY,
	question   TEXT NOT NULL,
	answer     TEXT NOT NULL,
	category   TEXT NOT NULL,
	tags       TEXT,
	source_url TEXT
);
`

// PostgresWriter owns the database handle and the two record tables.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens the connection and migrates the schema.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &PostgresWriter{db: db}, nil
}

func (w *PostgresWriter) Close() error {
	return w.db.Close()
}

// ReplaceProperties clears the table and inserts the new set in batches.
func (w *PostgresWriter) ReplaceProperties(ctx context.Context, props []record.Property) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM properties`); err != nil {
		return fmt.Errorf("clear properties: %w", err)
	}

	for start := 0; start < len(props); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(props) {
			end = len(props)
		}
		if err := insertPropertyBatch(ctx, tx, props[start:end]); err != nil {
			return fmt.Errorf("insert properties %d-%d: %w", start, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertPropertyBatch(ctx context.Context, tx *sql.Tx, props []record.Property) error {
	if len(props) == 0 {
		return nil
	}
	const cols = 13
	placeholders := make([]string, 0, len(props))
	args := make([]any, 0, len(props)*cols)
	for i, p := range props {
		base := i * cols
		ph := make([]string, cols)
		for j := range ph {
			ph[j] = fmt.Sprintf("$%d", base+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(ph, ", ")+")")
		args = append(args,
			p.ID, p.Name, p.City, nullFloat(p.Rating), p.RoomType,
			strings.Join(p.Amenities, ", "), strings.Join(p.SuiteFeatures, ", "),
			p.Description, p.URL, p.ImageURL, p.PetFriendly,
			nullInt(p.Bedrooms), p.BuildingType,
		)
	}
	query := `INSERT INTO properties
		(id, property_name, city, rating, room_type, amenities, suite_features,
		 description, source_url, image_url, pet_friendly, bedrooms, building_type)
		VALUES ` + strings.Join(placeholders, ", ")
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// ReplaceFAQs clears the table and inserts the new set in batches.
func (w *PostgresWriter) ReplaceFAQs(ctx context.Context, faqs []record.FAQ) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM faqs`); err != nil {
		return fmt.Errorf("clear faqs: %w", err)
	}

	for start := 0; start < len(faqs); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(faqs) {
			end = len(faqs)
		}
		if err := insertFAQBatch(ctx, tx, faqs[start:end]); err != nil {
			return fmt.Errorf("insert faqs %d-%d: %w", start, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertFAQBatch(ctx context.Context, tx *sql.Tx, faqs []record.FAQ) error {
	if len(faqs) == 0 {
		return nil
	}
	const cols = 6
	placeholders := make([]string, 0, len(faqs))
	args := make([]any, 0, len(faqs)*cols)
	for i, f := range faqs {
		base := i * cols
		ph := make([]string, cols)
		for j := range ph {
			ph[j] = fmt.Sprintf("$%d", base+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(ph, ", ")+")")
		args = append(args, f.ID, f.Question, f.Answer, f.Category,
			strings.Join(f.Tags, ", "), f.SourceURL)
	}
	query := `INSERT INTO faqs (id, question, answer, category, tags, source_url)
		VALUES ` + strings.Join(placeholders, ", ")
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// FetchProperties returns every stored property, ordered by city then name.
func (w *PostgresWriter) FetchProperties(ctx context.Context) ([]record.Property, error) {
	rows, err := w.db.QueryContext(ctx, `
		SELECT id, property_name, city, rating, room_type, amenities,
		       suite_features, description, source_url, image_url,
		       pet_friendly, bedrooms, building_type
		FROM properties ORDER BY city, property_name`)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer rows.Close()

	var out []record.Property
	for rows.Next() {
		var p record.Property
		var rating sql.NullFloat64
		var bedrooms sql.NullInt64
		var amenities, features string
		if err := rows.Scan(&p.ID, &p.Name, &p.City, &rating, &p.RoomType,
			&amenities, &features, &p.Description, &p.URL, &p.ImageURL,
			&p.PetFriendly, &bedrooms, &p.BuildingType); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		if rating.Valid {
			v := rating.Float64
			p.Rating = &v
		}
		if bedrooms.Valid {
			v := int(bedrooms.Int64)
			p.Bedrooms = &v
		}
		p.Amenities = splitList(amenities)
		p.SuiteFeatures = splitList(features)
		out = append(out, p)
	}
	return out, rows.Err()
}

// FetchFAQs returns every stored FAQ, ordered by id.
func (w *PostgresWriter) FetchFAQs(ctx context.Context) ([]record.FAQ, error) {
	rows, err := w.db.QueryContext(ctx, `
		SELECT id, question, answer, category, tags, source_url
		FROM faqs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query faqs: %w", err)
	}
	defer rows.Close()

	var out []record.FAQ
	for rows.Next() {
		var f record.FAQ
		var tags string
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Category, &tags, &f.SourceURL); err != nil {
			return nil, fmt.Errorf("scan faq: %w", err)
		}
		f.Tags = splitList(tags)
		out = append(out, f)
	}
	return out, rows.Err()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ", ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
