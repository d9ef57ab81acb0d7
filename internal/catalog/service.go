package catalog

import (
	"context"
	"time"

	"bookmart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	CreateAuthor(ctx context.Context, a Author) (Author, error)
	GetAuthor(ctx context.Context, id uint) (Author, error)
	ListAuthors(ctx context.Context) ([]Author, error)

	CreateBook(ctx context.Context, b Book) (Book, error)
	GetBook(ctx context.Context, id uint) (Book, error)
	ListBooks(ctx context.Context, filter *BookFilterInput) ([]Book, error)
	UpdateBook(ctx context.Context, userID uint, b Book) error
	DeleteBook(ctx context.Context, userID, bookID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateAuthor(ctx context.Context, a Author) (Author, error) {
	if a.BirthDate.After(time.Now()) {
		return Author{}, ErrBirthDateInFuture
	}

	created, err := s.repo.CreateAuthor(ctx, a)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create author", zap.Error(err))
		return Author{}, err
	}

	return created, nil
}

func (s *service) GetAuthor(ctx context.Context, id uint) (Author, error) {
	return s.repo.GetAuthor(ctx, id)
}

func (s *service) ListAuthors(ctx context.Context) ([]Author, error) {
	return s.repo.ListAuthors(ctx)
}

// validateBook enforces the write-path rules: minimum title length,
// non-negative price, and publication after the author's birth date.
func (s *service) validateBook(ctx context.Context, b Book) error {
	if len(b.Title) < 3 {
		return ErrTitleTooShort
	}

	if b.Price < 0 {
		return ErrNegativePrice
	}

	author, err := s.repo.GetAuthor(ctx, b.AuthorID)
	if err != nil {
		return err
	}

	if b.PublishedDate.Before(author.BirthDate) {
		return ErrPublishBeforeBirth
	}

	return nil
}

func (s *service) CreateBook(ctx context.Context, b Book) (Book, error) {
	if err := s.validateBook(ctx, b); err != nil {
		return Book{}, err
	}

	created, err := s.repo.CreateBook(ctx, b)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create book", zap.String("title", b.Title), zap.Error(err))
		return Book{}, err
	}

	return created, nil
}

func (s *service) GetBook(ctx context.Context, id uint) (Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *service) ListBooks(ctx context.Context, filter *BookFilterInput) ([]Book, error) {
	return s.repo.ListBooks(ctx, filter)
}

func (s *service) UpdateBook(ctx context.Context, userID uint, b Book) error {
	existing, err := s.repo.GetBook(ctx, b.ID)
	if err != nil {
		return err
	}

	if existing.CreatedBy != userID {
		return ErrNotOwner
	}

	if err := s.validateBook(ctx, b); err != nil {
		return err
	}

	return s.repo.UpdateBook(ctx, b)
}

func (s *service) DeleteBook(ctx context.Context, userID, bookID uint) error {
	existing, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		return err
	}

	if existing.CreatedBy != userID {
		return ErrNotOwner
	}

	return s.repo.DeleteBook(ctx, bookID)
}
