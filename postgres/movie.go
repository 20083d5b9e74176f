package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cinehub/actor"
	"cinehub/genre"
	"cinehub/movie"
	"cinehub/review"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID          int64        `gorm:"primaryKey"`
	UUID        string       `gorm:"type:uuid;default:gen_random_uuid();not null;uniqueIndex"`
	Title       string       `gorm:"not null"`
	Slug        string       `gorm:"not null;unique"`
	Description string       `gorm:"not null;default:''"`
	ReleaseYear int          `gorm:"not null"`
	PosterURL   string       `gorm:"column:poster_url;not null;default:''"`
	Genres      []GenreModel `gorm:"many2many:movie_genres;joinForeignKey:MovieID;joinReferences:GenreID"`
	Actors      []ActorModel `gorm:"many2many:movie_actors;joinForeignKey:MovieID;joinReferences:ActorID"`
	CreatedAt   time.Time    `gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"not null;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// orderingColumns maps the exposed ordering names onto SQL. Keeping the
// map here, next to the query, guards against interpolating raw input.
var orderingColumns = map[string]string{
	"title":         "title ASC",
	"-title":        "title DESC",
	"release_year":  "release_year ASC",
	"-release_year": "release_year DESC",
	"created_at":    "created_at ASC",
	"-created_at":   "created_at DESC",
}

func (r *MovieRepository) ListMovies(ctx context.Context, params movie.ListParams) ([]movie.Movie, int64, error) {
	q := r.db.WithContext(ctx).Model(&MovieModel{})

	if params.GenreID > 0 {
		q = q.Joins("JOIN movie_genres mg ON mg.movie_id = movies.id").
			Where("mg.genre_id = ?", params.GenreID)
	}
	if params.ReleaseYear > 0 {
		q = q.Where("release_year = ?", params.ReleaseYear)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if params.MinRating != nil || params.MaxRating != nil {
		// A rating bound implicitly excludes unrated movies.
		q = q.Joins("JOIN (SELECT movie_id, AVG(rating) AS avg_rating FROM reviews GROUP BY movie_id) ra ON ra.movie_id = movies.id")
		if params.MinRating != nil {
			q = q.Where("ra.avg_rating >= ?", *params.MinRating)
		}
		if params.MaxRating != nil {
			q = q.Where("ra.avg_rating <= ?", *params.MaxRating)
		}
	}

	var total int64
	if err := q.Distinct("movies.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := orderingColumns[params.Ordering]
	if !ok {
		order = orderingColumns[movie.DefaultOrdering]
	}

	var models []MovieModel
	err := q.Distinct("movies.*").
		Order(order).
		Offset((params.Page - 1) * movie.PageSize).
		Limit(movie.PageSize).
		Preload("Genres").
		Preload("Actors").
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	movies, err := r.toDomainMovies(ctx, models)
	if err != nil {
		return nil, 0, err
	}
	return movies, total, nil
}

// GetBySlug implements [movie.Repository].
func (r *MovieRepository) GetBySlug(ctx context.Context, slug string) (movie.Movie, error) {
	return r.getOne(ctx, "slug = ?", slug)
}

// GetByID implements [movie.Repository].
func (r *MovieRepository) GetByID(ctx context.Context, id int64) (movie.Movie, error) {
	return r.getOne(ctx, "movies.id = ?", id)
}

func (r *MovieRepository) getOne(ctx context.Context, cond string, arg interface{}) (movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).
		Preload("Genres").
		Preload("Actors").
		Where(cond, arg).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrNotFound
		}
		return movie.Movie{}, err
	}

	movies, err := r.toDomainMovies(ctx, []MovieModel{model})
	if err != nil {
		return movie.Movie{}, err
	}
	return movies[0], nil
}

// SearchMovies matches the query against titles, descriptions and the
// names of attached genres and actors.
func (r *MovieRepository) SearchMovies(ctx context.Context, query string) ([]movie.Movie, error) {
	pattern := "%" + strings.TrimSpace(query) + "%"

	var models []MovieModel
	err := r.db.WithContext(ctx).
		Distinct("movies.*").
		Joins("LEFT JOIN movie_genres mg ON mg.movie_id = movies.id").
		Joins("LEFT JOIN genres g ON g.id = mg.genre_id").
		Joins("LEFT JOIN movie_actors ma ON ma.movie_id = movies.id").
		Joins("LEFT JOIN actors a ON a.id = ma.actor_id").
		Where(
			"movies.title ILIKE ? OR movies.description ILIKE ? OR g.name ILIKE ? OR a.name ILIKE ?",
			pattern, pattern, pattern, pattern,
		).
		Order("movies.title").
		Preload("Genres").
		Preload("Actors").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainMovies(ctx, models)
}

// CreateMovie implements [movie.Repository].
func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie, genreIDs, actorIDs []int64) (movie.Movie, error) {
	model := MovieModel{
		UUID:        uuid.NewString(),
		Title:       m.Title,
		Slug:        m.Slug,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		PosterURL:   m.PosterURL,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&model).Error; err != nil {
			if isUniqueViolation(err, "slug") {
				return movie.ErrSlugTaken
			}
			return err
		}
		if err := replaceAssociations(tx, &model, genreIDs, actorIDs); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return movie.Movie{}, err
	}

	return r.GetByID(ctx, model.ID)
}

// UpdateMovie implements [movie.Repository]. Nil params leave the
// stored value untouched.
func (r *MovieRepository) UpdateMovie(ctx context.Context, id int64, params movie.UpdateParams) (movie.Movie, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model MovieModel
		if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return movie.ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{
			"updated_at": time.Now().UTC(),
		}
		if params.Title != nil {
			updates["title"] = *params.Title
		}
		if params.Description != nil {
			updates["description"] = *params.Description
		}
		if params.ReleaseYear != nil {
			updates["release_year"] = *params.ReleaseYear
		}
		if params.PosterURL != nil {
			updates["poster_url"] = *params.PosterURL
		}
		if err := tx.Model(&model).Updates(updates).Error; err != nil {
			return err
		}

		if params.GenreIDs != nil {
			genres := make([]GenreModel, len(*params.GenreIDs))
			for i, gid := range *params.GenreIDs {
				genres[i] = GenreModel{ID: gid}
			}
			if err := tx.Model(&model).Association("Genres").Replace(genres); err != nil {
				return err
			}
		}
		if params.ActorIDs != nil {
			actors := make([]ActorModel, len(*params.ActorIDs))
			for i, aid := range *params.ActorIDs {
				actors[i] = ActorModel{ID: aid}
			}
			if err := tx.Model(&model).Association("Actors").Replace(actors); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return movie.Movie{}, err
	}

	return r.GetByID(ctx, id)
}

// DeleteMovie implements [movie.Repository]. Join rows and reviews go
// with the movie through the ON DELETE CASCADE constraints.
func (r *MovieRepository) DeleteMovie(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&MovieModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return movie.ErrNotFound
	}
	return nil
}

func replaceAssociations(tx *gorm.DB, model *MovieModel, genreIDs, actorIDs []int64) error {
	if len(genreIDs) > 0 {
		genres := make([]GenreModel, len(genreIDs))
		for i, gid := range genreIDs {
			genres[i] = GenreModel{ID: gid}
		}
		if err := tx.Model(model).Association("Genres").Replace(genres); err != nil {
			return err
		}
	}
	if len(actorIDs) > 0 {
		actors := make([]ActorModel, len(actorIDs))
		for i, aid := range actorIDs {
			actors[i] = ActorModel{ID: aid}
		}
		if err := tx.Model(model).Association("Actors").Replace(actors); err != nil {
			return err
		}
	}
	return nil
}

type ratingRow struct {
	MovieID int64
	Rating  int
}

// toDomainMovies converts models and attaches rating summaries in a
// single grouped query over the page of movies.
func (r *MovieRepository) toDomainMovies(ctx context.Context, models []MovieModel) ([]movie.Movie, error) {
	ids := make([]int64, len(models))
	for i, model := range models {
		ids[i] = model.ID
	}

	ratings := map[int64][]int{}
	if len(ids) > 0 {
		var rows []ratingRow
		err := r.db.WithContext(ctx).
			Table("reviews").
			Select("movie_id", "rating").
			Where("movie_id IN ?", ids).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			ratings[row.MovieID] = append(ratings[row.MovieID], row.Rating)
		}
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model, review.Summarize(ratings[model.ID]))
	}
	return movies, nil
}

func toDomainMovie(model MovieModel, rating review.Summary) movie.Movie {
	m := movie.Movie{
		ID:          model.ID,
		UUID:        model.UUID,
		Title:       model.Title,
		Slug:        model.Slug,
		Description: model.Description,
		ReleaseYear: model.ReleaseYear,
		PosterURL:   model.PosterURL,
		Genres:      []genre.Genre{},
		Actors:      []actor.Actor{},
		Rating:      rating,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	for _, g := range model.Genres {
		m.Genres = append(m.Genres, toDomainGenre(g))
	}
	for _, a := range model.Actors {
		m.Actors = append(m.Actors, toDomainActor(a))
	}
	return m
}
