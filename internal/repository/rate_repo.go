package repository

import (
	"gorm.io/gorm"

	"github.com/jeanfrancodev/API-movies/internal/models"
)

type RateRepository interface {
	Create(rate *models.Rate) error
	FindByMovie(movieID uint) ([]models.Rate, error)
}

type rateRepo struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) RateRepository {
	return &rateRepo{db: db}
}

func (r *rateRepo) Create(rate *models.Rate) error {
	return r.db.Omit("Author").Create(rate).Error
}

func (r *rateRepo) FindByMovie(movieID uint) ([]models.Rate, error) {
	var rates []models.Rate
	err := r.db.Where("movie_id = ?", movieID).Order("created_at ASC").Find(&rates).Error
	if err != nil {
		return nil, err
	}
	if rates == nil {
		rates = []models.Rate{}
	}
	return rates, nil
}
