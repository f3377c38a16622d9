package sqlite

import "database/sql"

// schema sets up the key-value table.
// These run on startup to ensure tables exist.
// Values are whole JSON collections; the repositories rewrite them on every mutation.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
