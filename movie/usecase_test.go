package movie_test

import (
	"context"
	"strings"
	"testing"

	"cinehub/actor"
	"cinehub/errs"
	"cinehub/genre"
	"cinehub/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) ListMovies(ctx context.Context, params movie.ListParams) ([]movie.Movie, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]movie.Movie), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovieRepository) GetBySlug(ctx context.Context, slug string) (movie.Movie, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetByID(ctx context.Context, id int64) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) SearchMovies(ctx context.Context, query string) ([]movie.Movie, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) CreateMovie(ctx context.Context, mv movie.Movie, genreIDs, actorIDs []int64) (movie.Movie, error) {
	args := m.Called(ctx, mv, genreIDs, actorIDs)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) UpdateMovie(ctx context.Context, id int64, params movie.UpdateParams) (movie.Movie, error) {
	args := m.Called(ctx, id, params)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) DeleteMovie(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) AllGenres(ctx context.Context, search string) ([]genre.Genre, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]genre.Genre), args.Error(1)
}

func (m *MockGenreRepository) GetOrCreateByName(ctx context.Context, name string) (genre.Genre, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(genre.Genre), args.Error(1)
}

type MockActorRepository struct {
	mock.Mock
}

func (m *MockActorRepository) AllActors(ctx context.Context, search string) ([]actor.Actor, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]actor.Actor), args.Error(1)
}

func (m *MockActorRepository) GetOrCreateByName(ctx context.Context, name string) (actor.Actor, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(actor.Actor), args.Error(1)
}

func newUsecase() (*movie.Usecase, *MockMovieRepository, *MockGenreRepository, *MockActorRepository) {
	movies := new(MockMovieRepository)
	genres := new(MockGenreRepository)
	actors := new(MockActorRepository)
	return movie.NewUsecase(movies, genres, actors), movies, genres, actors
}

func TestGetMovie(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves by slug first", func(t *testing.T) {
		uc, movies, _, _ := newUsecase()
		expected := movie.Movie{ID: 7, Slug: "the-matrix"}
		movies.On("GetBySlug", ctx, "the-matrix").Return(expected, nil).Once()

		got, err := uc.GetMovie(ctx, "the-matrix")

		assert.NoError(t, err)
		assert.Equal(t, expected, got)
		movies.AssertNotCalled(t, "GetByID")
	})

	t.Run("falls back to id when no slug matches", func(t *testing.T) {
		uc, movies, _, _ := newUsecase()
		expected := movie.Movie{ID: 42, Slug: "blade-runner"}
		movies.On("GetBySlug", ctx, "42").Return(movie.Movie{}, movie.ErrNotFound).Once()
		movies.On("GetByID", ctx, int64(42)).Return(expected, nil).Once()

		got, err := uc.GetMovie(ctx, "42")

		assert.NoError(t, err)
		assert.Equal(t, expected, got)
		movies.AssertExpectations(t)
	})

	t.Run("purely numeric slug shadows a colliding id", func(t *testing.T) {
		// Regression: "1984" is a valid slug and another movie has id
		// 1984. Slug lookup precedes id lookup by contract.
		uc, movies, _, _ := newUsecase()
		bySlug := movie.Movie{ID: 3, Slug: "1984"}
		movies.On("GetBySlug", ctx, "1984").Return(bySlug, nil).Once()

		got, err := uc.GetMovie(ctx, "1984")

		assert.NoError(t, err)
		assert.Equal(t, bySlug, got)
		movies.AssertNotCalled(t, "GetByID")
	})

	t.Run("not found when neither slug nor id matches", func(t *testing.T) {
		uc, movies, _, _ := newUsecase()
		movies.On("GetBySlug", ctx, "999").Return(movie.Movie{}, movie.ErrNotFound).Once()
		movies.On("GetByID", ctx, int64(999)).Return(movie.Movie{}, movie.ErrNotFound).Once()

		_, err := uc.GetMovie(ctx, "999")

		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
	})

	t.Run("unparseable identifier is not found", func(t *testing.T) {
		uc, movies, _, _ := newUsecase()
		movies.On("GetBySlug", ctx, "no-such-movie").Return(movie.Movie{}, movie.ErrNotFound).Once()

		_, err := uc.GetMovie(ctx, "no-such-movie")

		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
		movies.AssertNotCalled(t, "GetByID")
	})
}

func TestListMovies(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults page and ordering", func(t *testing.T) {
		uc, movies, _, _ := newUsecase()
		expectedParams := movie.ListParams{Page: 1, Ordering: "-created_at"}
		movies.On("ListMovies", ctx, expectedParams).Return([]movie.Movie{}, int64(0), nil).Once()

		result, err := uc.ListMovies(ctx, movie.ListParams{})

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, movie.PageSize, result.PageSize)
		movies.AssertExpectations(t)
	})

	t.Run("rejects unsafe ordering", func(t *testing.T) {
		uc, movies, _, _ := newUsecase()

		_, err := uc.ListMovies(ctx, movie.ListParams{Ordering: "password; DROP TABLE movies"})

		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
		movies.AssertNotCalled(t, "ListMovies")
	})
}

func TestAddMovie(t *testing.T) {
	ctx := context.Background()

	t.Run("derives slug from title once", func(t *testing.T) {
		uc, movies, _, _ := newUsecase()
		movies.On("CreateMovie", ctx, mock.MatchedBy(func(m movie.Movie) bool {
			return m.Slug == "the-grand-budapest-hotel"
		}), []int64(nil), []int64(nil)).Return(movie.Movie{ID: 1}, nil).Once()

		_, err := uc.AddMovie(ctx, movie.Movie{
			Title:       "The Grand Budapest Hotel",
			Description: "A concierge and his lobby boy.",
			ReleaseYear: 2014,
		}, nil, nil)

		assert.NoError(t, err)
		movies.AssertExpectations(t)
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		uc, movies, _, _ := newUsecase()

		_, err := uc.AddMovie(ctx, movie.Movie{Title: "", Description: "x", ReleaseYear: 1200}, nil, nil)

		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
		fields := errs.ErrorFields(err)
		assert.Contains(t, fields, "title")
		assert.Contains(t, fields, "release_year")
		movies.AssertNotCalled(t, "CreateMovie")
	})
}

func TestImportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("continues past a malformed row", func(t *testing.T) {
		uc, movies, genres, actors := newUsecase()
		genres.On("GetOrCreateByName", ctx, "Sci-Fi").Return(genre.Genre{ID: 1, Name: "Sci-Fi"}, nil)
		genres.On("GetOrCreateByName", ctx, "Drama").Return(genre.Genre{ID: 2, Name: "Drama"}, nil)
		actors.On("GetOrCreateByName", ctx, "Keanu Reeves").Return(actor.Actor{ID: 1, Name: "Keanu Reeves"}, nil)
		actors.On("GetOrCreateByName", ctx, "Tom Hanks").Return(actor.Actor{ID: 2, Name: "Tom Hanks"}, nil)
		movies.On("CreateMovie", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(movie.Movie{ID: 1}, nil)

		input := strings.Join([]string{
			"title,description,release_year,genres,actors",
			`The Matrix,A hacker learns the truth.,1999,Sci-Fi,Keanu Reeves`,
			`Broken Movie,No year.,abc,Drama,`,
			`Cast Away,A man stranded.,2000,Drama,Tom Hanks`,
		}, "\n")

		result, err := uc.ImportCSV(ctx, strings.NewReader(input))

		assert.NoError(t, err)
		assert.Equal(t, 2, result.Imported)
		assert.Equal(t, []string{`Broken Movie: invalid release_year "abc"`}, result.Errors)
		movies.AssertNumberOfCalls(t, "CreateMovie", 2)
	})

	t.Run("splits and trims genre and actor cells", func(t *testing.T) {
		uc, movies, genres, actors := newUsecase()
		genres.On("GetOrCreateByName", ctx, "Crime").Return(genre.Genre{ID: 3, Name: "Crime"}, nil).Once()
		genres.On("GetOrCreateByName", ctx, "Drama").Return(genre.Genre{ID: 2, Name: "Drama"}, nil).Once()
		actors.On("GetOrCreateByName", ctx, "Al Pacino").Return(actor.Actor{ID: 3, Name: "Al Pacino"}, nil).Once()
		movies.On("CreateMovie", ctx, mock.Anything, []int64{3, 2}, []int64{3}).
			Return(movie.Movie{ID: 2}, nil).Once()

		input := strings.Join([]string{
			"title,description,release_year,genres,actors",
			`The Godfather,An offer he can't refuse.,1972," Crime , Drama ,"," Al Pacino "`,
		}, "\n")

		result, err := uc.ImportCSV(ctx, strings.NewReader(input))

		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		assert.Empty(t, result.Errors)
		movies.AssertExpectations(t)
		genres.AssertExpectations(t)
		actors.AssertExpectations(t)
	})

	t.Run("records missing title as unknown row", func(t *testing.T) {
		uc, _, _, _ := newUsecase()

		input := strings.Join([]string{
			"title,description,release_year,genres,actors",
			`,No title.,2001,,`,
		}, "\n")

		result, err := uc.ImportCSV(ctx, strings.NewReader(input))

		require.NoError(t, err)
		assert.Equal(t, 0, result.Imported)
		assert.Equal(t, []string{"unknown: title is required"}, result.Errors)
	})

	t.Run("rejects csv without required header columns", func(t *testing.T) {
		uc, _, _, _ := newUsecase()

		_, err := uc.ImportCSV(ctx, strings.NewReader("name,year\nfoo,2001"))

		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	})
}
