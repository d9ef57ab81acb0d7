package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"bookmart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	CreateAuthor(ctx context.Context, a Author) (Author, error)
	GetAuthor(ctx context.Context, id uint) (Author, error)
	ListAuthors(ctx context.Context) ([]Author, error)

	CreateBook(ctx context.Context, b Book) (Book, error)
	GetBook(ctx context.Context, id uint) (Book, error)
	ListBooks(ctx context.Context, filter *BookFilterInput) ([]Book, error)
	UpdateBook(ctx context.Context, b Book) error
	DeleteBook(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateAuthor(ctx context.Context, a Author) (Author, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO authors (user_id, first_name, last_name, birth_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, a.UserID, a.FirstName, a.LastName, a.BirthDate).Scan(&a.ID)

	return a, err
}

func (r *repository) GetAuthor(ctx context.Context, id uint) (Author, error) {
	var a Author
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, first_name, last_name, birth_date
		FROM authors WHERE id = $1
	`, id).Scan(&a.ID, &a.UserID, &a.FirstName, &a.LastName, &a.BirthDate)

	if err == sql.ErrNoRows {
		return a, ErrAuthorNotFound
	}
	return a, err
}

func (r *repository) ListAuthors(ctx context.Context) ([]Author, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, first_name, last_name, birth_date
		FROM authors ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.UserID, &a.FirstName, &a.LastName, &a.BirthDate); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}

	return authors, rows.Err()
}

func (r *repository) CreateBook(ctx context.Context, b Book) (Book, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO books (title, description, author_id, price, published_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, b.Title, b.Description, b.AuthorID, b.Price, b.PublishedDate, b.CreatedBy).Scan(&b.ID)

	return b, err
}

func (r *repository) GetBook(ctx context.Context, id uint) (Book, error) {
	var b Book
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, author_id, price, published_date, created_by
		FROM books WHERE id = $1
	`, id).Scan(&b.ID, &b.Title, &b.Description, &b.AuthorID, &b.Price, &b.PublishedDate, &b.CreatedBy)

	if err == sql.ErrNoRows {
		return b, ErrBookNotFound
	}
	return b, err
}

func (r *repository) ListBooks(ctx context.Context, filter *BookFilterInput) ([]Book, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "ListBooks"))

	query := `
		SELECT id, title, description, author_id, price, published_date, created_by
		FROM books
		WHERE 1=1
	`

	args := []any{}
	argIndex := 1

	if filter != nil {
		if filter.Search != nil && *filter.Search != "" {
			query += fmt.Sprintf(" AND title ILIKE $%d", argIndex)
			args = append(args, "%"+*filter.Search+"%")
			argIndex++
		}

		if filter.AuthorID != nil {
			query += fmt.Sprintf(" AND author_id = $%d", argIndex)
			args = append(args, *filter.AuthorID)
			argIndex++
		}

		if filter.MinPrice != nil {
			query += fmt.Sprintf(" AND price >= $%d", argIndex)
			args = append(args, *filter.MinPrice)
			argIndex++
		}

		if filter.MaxPrice != nil {
			query += fmt.Sprintf(" AND price <= $%d", argIndex)
			args = append(args, *filter.MaxPrice)
			argIndex++
		}
	}

	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.AuthorID, &b.Price, &b.PublishedDate, &b.CreatedBy); err != nil {
			log.Error("failed to scan book row", zap.Error(err))
			return nil, err
		}
		books = append(books, b)
	}

	return books, rows.Err()
}

func (r *repository) UpdateBook(ctx context.Context, b Book) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE books
		SET title = $1, description = $2, author_id = $3, price = $4, published_date = $5
		WHERE id = $6
	`, b.Title, b.Description, b.AuthorID, b.Price, b.PublishedDate, b.ID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (r *repository) DeleteBook(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrBookNotFound
	}
	return nil
}
