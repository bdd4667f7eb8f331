package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jeanfrancodev/API-movies/internal/middleware"
	"github.com/jeanfrancodev/API-movies/internal/models"
	"github.com/jeanfrancodev/API-movies/internal/repository"
	"github.com/jeanfrancodev/API-movies/internal/services"
	"github.com/jeanfrancodev/API-movies/internal/validation"
)

type MovieHandler struct {
	movieRepo repository.MovieRepository
	userRepo  repository.UserRepository
	rateRepo  repository.RateRepository
	files     services.FileService
}

func NewMovieHandler(
	movieRepo repository.MovieRepository,
	userRepo repository.UserRepository,
	rateRepo repository.RateRepository,
	files services.FileService,
) *MovieHandler {
	return &MovieHandler{
		movieRepo: movieRepo,
		userRepo:  userRepo,
		rateRepo:  rateRepo,
		files:     files,
	}
}

func (h *MovieHandler) List(c *gin.Context) {
	movies, err := h.movieRepo.FindAll()
	if err != nil {
		log.Printf("[List] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, movies)
}

func (h *MovieHandler) Search(c *gin.Context) {
	query := c.Query("search")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page <= 0 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	movies, err := h.movieRepo.Search(query, page, limit)
	if err != nil {
		log.Printf("[Search] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, movies)
}

func (h *MovieHandler) TopRated(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	movies, err := h.movieRepo.TopRated(limit)
	if err != nil {
		log.Printf("[TopRated] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, movies)
}

func (h *MovieHandler) Get(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	movie, err := h.movieRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, movie)
}

func (h *MovieHandler) Register(c *gin.Context) {
	var req models.MovieInput
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validation.Messages(err)})
		return
	}

	duplicate, err := h.movieRepo.FindDuplicate(req.Title, req.Trailer, req.Synopsis)
	if err != nil {
		log.Printf("[Register] FindDuplicate error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if duplicate != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Film already exists"})
		return
	}

	image := models.DefaultImage
	if file, ferr := c.FormFile("image"); ferr == nil {
		saved, serr := h.files.Save(file)
		if serr != nil {
			log.Printf("[Register] image save error: %v", serr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
			return
		}
		image = saved
	}

	movie := &models.Movie{
		Title:             req.Title,
		Synopsis:          req.Synopsis,
		Trailer:           req.Trailer,
		Studios:           req.Studios,
		Year:              req.Year,
		Duration:          req.Duration,
		Genre:             req.Genre,
		AgeClassification: req.AgeClassification,
		Image:             image,
	}

	if err := h.movieRepo.Create(movie); err != nil {
		if errors.Is(err, repository.ErrDuplicateMovie) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Film already exists"})
			return
		}
		log.Printf("[Register] Create error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, movie)
}

func (h *MovieHandler) Update(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	var req models.MovieUpdate
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validation.Messages(err)})
		return
	}

	movie, err := h.movieRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	if file, ferr := c.FormFile("image"); ferr == nil {
		if movie.Image != "" && movie.Image != models.DefaultImage {
			if derr := h.files.Delete(movie.Image); derr != nil {
				log.Printf("[Update] old image delete error: %v", derr)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace image"})
				return
			}
		}
		saved, serr := h.files.Save(file)
		if serr != nil {
			log.Printf("[Update] image save error: %v", serr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
			return
		}
		movie.Image = saved
	}

	movie.Title = req.Title
	movie.Synopsis = req.Synopsis
	movie.Trailer = req.Trailer
	movie.Studios = req.Studios
	movie.Year = req.Year
	movie.Duration = req.Duration
	movie.Genre = req.Genre
	movie.AgeClassification = req.AgeClassification

	if err := h.movieRepo.Update(movie); err != nil {
		if errors.Is(err, repository.ErrDuplicateMovie) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Film already exists"})
			return
		}
		log.Printf("[Update] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, movie)
}

func (h *MovieHandler) Delete(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	movie, err := h.movieRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	if movie.Image != "" && movie.Image != models.DefaultImage {
		if err := h.files.Delete(movie.Image); err != nil {
			log.Printf("[Delete] image delete error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
	}

	// Rates keep only weak references; they are left in place.
	if err := h.movieRepo.Delete(id); err != nil {
		log.Printf("[Delete] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Movie deleted successfully"})
}

func (h *MovieHandler) Rate(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	var req models.RateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validation.Messages(err)})
		return
	}

	movie, err := h.movieRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	userID := c.GetUint(middleware.ContextUserID)
	user, err := h.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	rate := &models.Rate{
		Stars:    req.Stars,
		Comment:  req.Comment,
		AuthorID: user.ID,
		MovieID:  movie.ID,
	}
	if err := h.rateRepo.Create(rate); err != nil {
		log.Printf("[Rate] Create error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"comment":  rate.Comment,
		"stars":    rate.Stars,
		"user_id":  user.ID,
		"movie_id": movie.ID,
	})
}

func (h *MovieHandler) movieID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie ID format"})
		return 0, false
	}
	return uint(id), true
}
