package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "filmoteca/internal/errors"
	"filmoteca/internal/model"
	"filmoteca/internal/repository"
)

// MovieUpdate carries the fields of a partial movie update. Nil means the
// field was absent from the request and keeps its prior value.
type MovieUpdate struct {
	Title       *string
	Description *string
	Year        *int
	Genre       *string
	Rating      *float64
}

// MovieService exposes movie CRUD operations.
type MovieService interface {
	ListMovies(ctx context.Context) ([]model.Movie, error)
	GetMovie(ctx context.Context, id uint) (*model.Movie, error)
	CreateMovie(ctx context.Context, movie *model.Movie) (*model.Movie, error)
	UpdateMovie(ctx context.Context, id uint, update MovieUpdate) (*model.Movie, error)
	DeleteMovie(ctx context.Context, id uint) (bool, error)
}

type movieService struct {
	repo repository.MovieRepository
}

// NewMovieService builds a MovieService.
func NewMovieService(repo repository.MovieRepository) MovieService {
	return &movieService{repo: repo}
}

func (s *movieService) ListMovies(ctx context.Context) ([]model.Movie, error) {
	return s.repo.List(ctx)
}

func (s *movieService) GetMovie(ctx context.Context, id uint) (*model.Movie, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMovieNotFound
		}
		return nil, err
	}
	return movie, nil
}

func (s *movieService) CreateMovie(ctx context.Context, movie *model.Movie) (*model.Movie, error) {
	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// UpdateMovie applies the provided fields and re-fetches the row. A
// nonexistent id surfaces as not-found from the re-fetch, not from the update
// itself.
func (s *movieService) UpdateMovie(ctx context.Context, id uint, update MovieUpdate) (*model.Movie, error) {
	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Year != nil {
		fields["year"] = *update.Year
	}
	if update.Genre != nil {
		fields["genre"] = *update.Genre
	}
	if update.Rating != nil {
		fields["rating"] = *update.Rating
	}

	if len(fields) > 0 {
		if err := s.repo.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMovieNotFound
		}
		return nil, err
	}
	return movie, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, id uint) (bool, error) {
	return s.repo.Delete(ctx, id)
}
