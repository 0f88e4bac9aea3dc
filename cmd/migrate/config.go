package main

import (
	"io/fs"
	"os"

	"booknotes/db/migrations"
	"booknotes/internal/config"
)

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	config.LoadEnvFiles()
}

// migrationsDir is where `create` writes new files.
func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}

// migrationsSource picks the filesystem goose reads from: the embedded
// migrations unless MIGRATIONS_DIR points somewhere else.
func migrationsSource() (fs.FS, string) {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return nil, v
	}
	return migrations.FS, "."
}
