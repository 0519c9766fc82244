package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestRunMigrations(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfg := &SQLiteConfig{
		Path: dbPath,
	}

	database := NewSQLiteDB(cfg)
	err := database.Connect()
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer database.Close()

	db := database.DB()

	// Verify schema_migrations table exists
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_migrations'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check schema_migrations table: %v", err)
	}
	if count != 1 {
		t.Errorf("schema_migrations table not created")
	}

	// Verify images table exists
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='images'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check images table: %v", err)
	}
	if count != 1 {
		t.Errorf("images table not created")
	}

	// Verify index exists
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_images_upload_time'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check index: %v", err)
	}
	if count != 1 {
		t.Errorf("idx_images_upload_time index not created")
	}

	// Verify migration was recorded
	var version int
	var name string
	err = db.QueryRow("SELECT version, name FROM schema_migrations WHERE version = 1").Scan(&version, &name)
	if err != nil {
		t.Fatalf("Failed to query schema_migrations: %v", err)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}
	if name != "create_images_table" {
		t.Errorf("name = %q, want %q", name, "create_images_table")
	}
}

func TestRunMigrationsIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfg := &SQLiteConfig{
		Path: dbPath,
	}

	// Connect first time
	database := NewSQLiteDB(cfg)
	err := database.Connect()
	if err != nil {
		t.Fatalf("First Connect() error = %v", err)
	}
	database.Close()

	// Connect second time - migrations should not fail
	database = NewSQLiteDB(cfg)
	err = database.Connect()
	if err != nil {
		t.Fatalf("Second Connect() error = %v", err)
	}
	defer database.Close()

	db := database.DB()

	// Verify migration was only recorded once
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = 1").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query schema_migrations: %v", err)
	}
	if count != 1 {
		t.Errorf("migration recorded %d times, want 1", count)
	}
}

func TestImagesTableSchema(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfg := &SQLiteConfig{
		Path: dbPath,
	}

	database := NewSQLiteDB(cfg)
	err := database.Connect()
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer database.Close()

	db := database.DB()

	// Test inserting an image record
	res, err := db.Exec(`
		INSERT INTO images (filename, original_name, size, file_type)
		VALUES (?, ?, ?, ?)
	`, "a1b2c3.png", "cat.png", 1024, "png")
	if err != nil {
		t.Fatalf("Failed to insert image: %v", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get inserted id: %v", err)
	}
	if id != 1 {
		t.Errorf("id = %d, want 1", id)
	}

	// Test querying the row back
	var filename, originalName, fileType string
	var size int64
	var uploadTime sql.NullTime
	err = db.QueryRow("SELECT filename, original_name, size, upload_time, file_type FROM images WHERE id = ?", id).
		Scan(&filename, &originalName, &size, &uploadTime, &fileType)
	if err != nil {
		t.Fatalf("Failed to query image: %v", err)
	}

	if filename != "a1b2c3.png" {
		t.Errorf("filename = %q, want %q", filename, "a1b2c3.png")
	}
	if originalName != "cat.png" {
		t.Errorf("original_name = %q, want %q", originalName, "cat.png")
	}
	if !uploadTime.Valid {
		t.Error("upload_time should default to insertion time")
	}

	// Duplicate storage filenames must be rejected
	_, err = db.Exec(`
		INSERT INTO images (filename, original_name, size, file_type)
		VALUES (?, ?, ?, ?)
	`, "a1b2c3.png", "other.png", 2048, "png")
	if err == nil {
		t.Error("Expected unique constraint violation for duplicate filename")
	}
}
