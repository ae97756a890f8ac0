package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"
)

// Repository reads the catalog from a sqlite database.
type Repository struct {
	db *sql.DB
}

type RepoInterface interface {
	GetAllBooks(ctx context.Context) ([]domain.Book, error)
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	Close() error
	RunMigrations(string) error
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// one connection keeps ":memory:" databases visible to every query
	db.SetMaxOpenConns(1)
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) GetAllBooks(ctx context.Context) ([]domain.Book, error) {
	query := `
		SELECT id, title, author, genre, price, image, description
		FROM books
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return books, nil
}

func (r *Repository) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	query := `
		SELECT id, title, author, genre, price, image, description
		FROM books
		WHERE id = $1
	`

	var b domain.Book
	err := scanBook(r.db.QueryRowContext(ctx, query, id), &b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query book: %w", err)
	}
	return &b, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner, b *domain.Book) error {
	var genre string
	if err := s.Scan(&b.ID, &b.Title, &b.Author, &genre, &b.Price, &b.Image, &b.Description); err != nil {
		return err
	}
	b.Genre = domain.Genre(genre)
	return nil
}

// Load builds a validated Catalog from every row of the books table.
func Load(ctx context.Context, repo RepoInterface) (*Catalog, error) {
	books, err := repo.GetAllBooks(ctx)
	if err != nil {
		return nil, err
	}
	return New(books)
}
