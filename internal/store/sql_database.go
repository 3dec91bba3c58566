package store

import (
	"github.com/MKhiriev/go-cv-tailor/migrations"
)

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
