package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/filehub-labs/filehub/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the file
// record and integration store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.filehub/data/filehub.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".filehub", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "filehub.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// FileStore returns a FileStore interface backed by this store.
func (s *Store) FileStore() driven.FileStore {
	return &fileStore{store: s}
}

// IntegrationStore returns an IntegrationStore interface backed by this store.
func (s *Store) IntegrationStore() driven.IntegrationStore {
	return &integrationStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== File Store ====================

// fileStore implements driven.FileStore.
type fileStore struct {
	store *Store
}

var _ driven.FileStore = (*fileStore)(nil)

const fileRecordColumns = `id, owner_id, name, path, file_type, category, source,
	source_id, identity, last_modified, size, content, content_summary,
	content_vector, is_processed, created_at, updated_at`

// Save stores or updates a file record, assigning an ID on first save.
func (s *fileStore) Save(ctx context.Context, record *domain.FileRecord) error {
	identityJSON, err := json.Marshal(record.Identity)
	if err != nil {
		return fmt.Errorf("marshalling identity: %w", err)
	}

	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.New().String()
		record.CreatedAt = now
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO file_records (`+fileRecordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			name = excluded.name,
			path = excluded.path,
			file_type = excluded.file_type,
			category = excluded.category,
			source = excluded.source,
			source_id = excluded.source_id,
			identity = excluded.identity,
			last_modified = excluded.last_modified,
			size = excluded.size,
			content = excluded.content,
			content_summary = excluded.content_summary,
			content_vector = excluded.content_vector,
			is_processed = excluded.is_processed,
			updated_at = excluded.updated_at
	`, record.ID, record.OwnerID, record.Name, record.Path, record.FileType,
		string(record.Category), string(record.Source), record.SourceID,
		string(identityJSON), nullTime(record.LastModified), record.Size,
		record.Content, record.ContentSummary,
		float32SliceToBytes(record.ContentVector), record.IsProcessed,
		record.CreatedAt, record.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving file record: %w", err)
	}
	return nil
}

// Get retrieves a file record by ID.
func (s *fileStore) Get(ctx context.Context, id string) (*domain.FileRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+fileRecordColumns+` FROM file_records WHERE id = ?
	`, id)
	return scanFileRecord(row)
}

// List returns all file records for an owner.
func (s *fileStore) List(ctx context.Context, ownerID string) ([]domain.FileRecord, error) {
	return s.query(ctx, `
		SELECT `+fileRecordColumns+` FROM file_records WHERE owner_id = ?
	`, ownerID)
}

// ListByPlatform returns the owner's records from one platform.
func (s *fileStore) ListByPlatform(
	ctx context.Context, ownerID string, platform domain.Platform,
) ([]domain.FileRecord, error) {
	return s.query(ctx, `
		SELECT `+fileRecordColumns+` FROM file_records
		WHERE owner_id = ? AND source = ?
	`, ownerID, string(platform))
}

// ListUnprocessed returns the owner's records awaiting an embedding.
func (s *fileStore) ListUnprocessed(ctx context.Context, ownerID string) ([]domain.FileRecord, error) {
	return s.query(ctx, `
		SELECT `+fileRecordColumns+` FROM file_records
		WHERE owner_id = ? AND is_processed = 0
	`, ownerID)
}

// Delete removes a file record.
func (s *fileStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM file_records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting file record: %w", err)
	}
	return nil
}

// query runs a file record SELECT and scans all rows.
func (s *fileStore) query(ctx context.Context, q string, args ...any) ([]domain.FileRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying file records: %w", err)
	}
	defer rows.Close()

	var records []domain.FileRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanFileRecordRows(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating file records: %w", err)
	}
	return records, nil
}

// ==================== Integration Store ====================

// integrationStore implements driven.IntegrationStore.
type integrationStore struct {
	store *Store
}

var _ driven.IntegrationStore = (*integrationStore)(nil)

// Save stores or updates an integration, assigning an ID on first save.
func (s *integrationStore) Save(ctx context.Context, integration *domain.Integration) error {
	configJSON, err := json.Marshal(integration.Config)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	now := time.Now().UTC()
	if integration.ID == "" {
		integration.ID = uuid.New().String()
		integration.CreatedAt = now
	}
	if integration.CreatedAt.IsZero() {
		integration.CreatedAt = now
	}
	integration.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO integrations (id, owner_id, type, status, config, last_synced, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			type = excluded.type,
			status = excluded.status,
			config = excluded.config,
			last_synced = excluded.last_synced,
			updated_at = excluded.updated_at
	`, integration.ID, integration.OwnerID, string(integration.Type),
		string(integration.Status), string(configJSON),
		nullTime(integration.LastSynced), integration.CreatedAt, integration.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving integration: %w", err)
	}
	return nil
}

// Get retrieves an integration by ID.
func (s *integrationStore) Get(ctx context.Context, id string) (*domain.Integration, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, owner_id, type, status, config, last_synced, created_at, updated_at
		FROM integrations WHERE id = ?
	`, id)

	integration, err := scanIntegration(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return integration, nil
}

// List returns all integrations for an owner.
func (s *integrationStore) List(ctx context.Context, ownerID string) ([]domain.Integration, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, owner_id, type, status, config, last_synced, created_at, updated_at
		FROM integrations WHERE owner_id = ?
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying integrations: %w", err)
	}
	defer rows.Close()

	var integrations []domain.Integration //nolint:prealloc // size unknown from query
	for rows.Next() {
		integration, err := scanIntegration(rows.Scan)
		if err != nil {
			return nil, err
		}
		integrations = append(integrations, *integration)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating integrations: %w", err)
	}
	return integrations, nil
}

// Delete removes an integration.
func (s *integrationStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM integrations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting integration: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// nullTime maps a zero time to NULL.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

// scanner abstracts sql.Row and sql.Rows scanning.
type scanner func(dest ...any) error

// scanFileRecord scans a single file record row.
func scanFileRecord(row *sql.Row) (*domain.FileRecord, error) {
	record, err := scanFileRecordFrom(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// scanFileRecordRows scans the current row of a result set.
func scanFileRecordRows(rows *sql.Rows) (*domain.FileRecord, error) {
	return scanFileRecordFrom(rows.Scan)
}

func scanFileRecordFrom(scan scanner) (*domain.FileRecord, error) {
	var record domain.FileRecord
	var category, source, identityJSON string
	var lastModified sql.NullTime
	var vectorBlob []byte

	if err := scan(&record.ID, &record.OwnerID, &record.Name, &record.Path,
		&record.FileType, &category, &source, &record.SourceID, &identityJSON,
		&lastModified, &record.Size, &record.Content, &record.ContentSummary,
		&vectorBlob, &record.IsProcessed, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning file record: %w", err)
	}

	record.Category = domain.Category(category)
	record.Source = domain.Platform(source)
	if err := json.Unmarshal([]byte(identityJSON), &record.Identity); err != nil {
		return nil, fmt.Errorf("unmarshaling identity: %w", err)
	}
	if lastModified.Valid {
		record.LastModified = lastModified.Time
	}
	record.ContentVector = bytesToFloat32Slice(vectorBlob)

	return &record, nil
}

// scanIntegration scans one integration row.
func scanIntegration(scan scanner) (*domain.Integration, error) {
	var integration domain.Integration
	var platform, status, configJSON string
	var lastSynced sql.NullTime

	if err := scan(&integration.ID, &integration.OwnerID, &platform, &status,
		&configJSON, &lastSynced, &integration.CreatedAt, &integration.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning integration: %w", err)
	}

	integration.Type = domain.Platform(platform)
	integration.Status = domain.IntegrationStatus(status)
	if err := json.Unmarshal([]byte(configJSON), &integration.Config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if lastSynced.Valid {
		integration.LastSynced = lastSynced.Time
	}

	return &integration, nil
}
