package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/bluemountain/brewdesk/internal/domain"

	_ "modernc.org/sqlite" // Register SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// EnquiryRepository implements domain.EnquiryRepository using SQLite.
type EnquiryRepository struct {
	db *sql.DB
}

// New opens a SQLite database, runs migrations, and returns a ready repository.
func New(dataSourceName string) (*EnquiryRepository, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	return NewFromDB(db)
}

// NewFromDB wraps an existing database connection, runs migrations, and returns
// a ready repository. Use this when the *sql.DB has been pre-configured
// (e.g., with otelsql instrumentation).
func NewFromDB(db *sql.DB) (*EnquiryRepository, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &EnquiryRepository{db: db}, nil
}

// Close closes the underlying database connection.
func (r *EnquiryRepository) Close() error {
	return r.db.Close()
}

// DB returns the underlying database connection for use by other adapters (e.g., river).
func (r *EnquiryRepository) DB() *sql.DB {
	return r.db
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

const timeFormat = "2006-01-02T15:04:05Z"

func (r *EnquiryRepository) Create(ctx context.Context, e domain.Enquiry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO enquiries (id, business_name, contact_person, email, location,
		                        message, selection_summary, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.BusinessName, e.ContactPerson, e.Email, e.Location,
		e.Message, e.SelectionSummary, string(e.Status),
		e.CreatedAt.Format(timeFormat),
		e.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting enquiry: %w", err)
	}
	return nil
}

func (r *EnquiryRepository) GetByID(ctx context.Context, id string) (domain.Enquiry, error) {
	return r.scanEnquiry(r.db.QueryRowContext(ctx,
		`SELECT id, business_name, contact_person, email, location,
		        message, selection_summary, status, created_at, updated_at
		 FROM enquiries WHERE id = ?`, id,
	))
}

func (r *EnquiryRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Enquiry, error) {
	query := `SELECT id, business_name, contact_person, email, location,
	                 message, selection_summary, status, created_at, updated_at
	          FROM enquiries`
	var args []any

	if filter.Status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*filter.Status))
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		// SQLite requires LIMIT before OFFSET; -1 means unbounded.
		query += ` LIMIT -1`
	}

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing enquiries: %w", err)
	}
	defer rows.Close()

	var enquiries []domain.Enquiry
	for rows.Next() {
		e, err := r.scanEnquiryFromRows(rows)
		if err != nil {
			return nil, err
		}
		enquiries = append(enquiries, e)
	}

	return enquiries, rows.Err()
}

func (r *EnquiryRepository) Update(ctx context.Context, e domain.Enquiry) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE enquiries SET status = ?, updated_at = ? WHERE id = ?`,
		string(e.Status), time.Now().UTC().Format(timeFormat), e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating enquiry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrEnquiryNotFound
	}

	return nil
}

// scanEnquiry scans a single row from QueryRow into a domain.Enquiry.
func (r *EnquiryRepository) scanEnquiry(row *sql.Row) (domain.Enquiry, error) {
	var e domain.Enquiry
	var status, createdAt, updatedAt string

	err := row.Scan(&e.ID, &e.BusinessName, &e.ContactPerson, &e.Email, &e.Location,
		&e.Message, &e.SelectionSummary, &status, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Enquiry{}, domain.ErrEnquiryNotFound
		}
		return domain.Enquiry{}, fmt.Errorf("scanning enquiry: %w", err)
	}

	e.Status = domain.DispatchStatus(status)
	e.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	e.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)

	return e, nil
}

// scanEnquiryFromRows scans a single row from Rows (used in List).
func (r *EnquiryRepository) scanEnquiryFromRows(rows *sql.Rows) (domain.Enquiry, error) {
	var e domain.Enquiry
	var status, createdAt, updatedAt string

	err := rows.Scan(&e.ID, &e.BusinessName, &e.ContactPerson, &e.Email, &e.Location,
		&e.Message, &e.SelectionSummary, &status, &createdAt, &updatedAt)
	if err != nil {
		return domain.Enquiry{}, fmt.Errorf("scanning enquiry row: %w", err)
	}

	e.Status = domain.DispatchStatus(status)
	e.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	e.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)

	return e, nil
}
