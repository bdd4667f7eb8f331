package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/jeanfrancodev/API-movies/internal/models"
)

var (
	ErrMovieNotFound  = errors.New("movie not found")
	ErrDuplicateMovie = errors.New("movie already exists")
)

type MovieRepository interface {
	Create(movie *models.Movie) error
	FindByID(id uint) (*models.Movie, error)
	FindAll() ([]models.Movie, error)
	Search(query string, page, limit int) ([]models.Movie, error)
	TopRated(limit int) ([]models.Movie, error)
	FindDuplicate(title, trailer, synopsis string) (*models.Movie, error)
	Update(movie *models.Movie) error
	Delete(id uint) error
}

type movieRepo struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepo{db: db}
}

// withRates resolves each movie's rates along with the rating author's
// public profile fields.
func (r *movieRepo) withRates(db *gorm.DB) *gorm.DB {
	return db.Preload("Rates").Preload("Rates.Author", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "avatar")
	})
}

func (r *movieRepo) Create(movie *models.Movie) error {
	err := r.db.Create(movie).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateMovie
	}
	return err
}

func (r *movieRepo) FindByID(id uint) (*models.Movie, error) {
	var movie models.Movie
	err := r.withRates(r.db).First(&movie, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepo) FindAll() ([]models.Movie, error) {
	var movies []models.Movie
	err := r.withRates(r.db).Order("created_at DESC").Find(&movies).Error
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

func (r *movieRepo) Search(query string, page, limit int) ([]models.Movie, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	pattern := "%" + strings.ToLower(query) + "%"
	var movies []models.Movie
	err := r.withRates(r.db).
		Where("LOWER(title) LIKE ? OR LOWER(year) LIKE ? OR LOWER(genre) LIKE ?", pattern, pattern, pattern).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&movies).Error
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

func (r *movieRepo) TopRated(limit int) ([]models.Movie, error) {
	if limit <= 0 {
		limit = 10
	}

	var movies []models.Movie
	err := r.db.Model(&models.Movie{}).
		Select("movies.*, COALESCE(AVG(rates.stars), 0) AS avg_stars").
		Joins("LEFT JOIN rates ON rates.movie_id = movies.id").
		Group("movies.id").
		Order("avg_stars DESC").
		Limit(limit).
		Find(&movies).Error
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

// FindDuplicate reports a movie sharing any one of the unique fields.
func (r *movieRepo) FindDuplicate(title, trailer, synopsis string) (*models.Movie, error) {
	var movie models.Movie
	err := r.db.
		Where("title = ? OR trailer = ? OR synopsis = ?", title, trailer, synopsis).
		First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepo) Update(movie *models.Movie) error {
	err := r.db.Omit("Rates").Save(movie).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateMovie
	}
	return err
}

func (r *movieRepo) Delete(id uint) error {
	res := r.db.Delete(&models.Movie{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMovieNotFound
	}
	return nil
}
