package crud

import (
	"sort"

	"go.uber.org/zap"

	"kinograph/domain"
	"kinograph/errs"
	"kinograph/storage"
)

// DefaultPopularCount is how many movies the popularity ranking returns when
// the caller doesn't ask for a specific number.
const DefaultPopularCount = 10

// MovieService manages Movies and their liker sets.
// It implements the domain.MovieService interface.
type MovieService struct {
	movieValidator
}

// movieValidator runs business-rule checks on incoming Movie data.
// On success, it passes the data on to movieStore.
// Otherwise, it returns the error of the check that has failed.
type movieValidator struct {
	movieStore
}

// movieStore runs operations against the movie storage using incoming data.
// It assumes that data has been validated. The users index is the read-only
// view of the user store, used to confirm liker ids exist.
type movieStore struct {
	store *storage.MovieStorage
	users domain.UserIndex
	log   *zap.Logger
}

// NewMovieService returns an instance of MovieService.
func NewMovieService(store *storage.MovieStorage, users domain.UserIndex, log *zap.Logger) *MovieService {
	return &MovieService{
		movieValidator{
			movieStore{
				store: store,
				users: users,
				log:   log,
			},
		},
	}
}

// Ensure the MovieService struct properly implements the domain.MovieService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.MovieService = &MovieService{}

// Create runs the business-rule checks needed for storing a new movie.
func (mv *movieValidator) Create(movie *domain.Movie) error {
	err := runMovieValFns(movie,
		mv.releaseDateValid,
		mv.durationValid)
	if err != nil {
		return err
	}
	return mv.movieStore.Create(movie)
}

// Update runs the checks needed for replacing an existing movie.
func (mv *movieValidator) Update(movie *domain.Movie) error {
	err := runMovieValFns(movie, mv.movieExists)
	if err != nil {
		return err
	}
	return mv.movieStore.Update(movie)
}

// AddLike records that the given user likes the given movie. Both ids must
// exist. Liking a movie twice is a no-op.
func (mv *movieValidator) AddLike(movieID, userID int) error {
	if !mv.store.Exists(movieID) {
		return errs.Errorf(errs.ENOTFOUND, "Movie with Id %d does not exist.", movieID)
	}
	if !mv.users.Exists(userID) {
		return errs.Errorf(errs.ENOTFOUND, "User with Id %d does not exist.", userID)
	}
	return mv.movieStore.AddLike(movieID, userID)
}

// RemoveLike removes the given user from the movie's liker set. Both ids
// must exist, and unliking a movie that has no likes at all is a logically
// invalid request, reported as a server-side failure rather than not-found.
func (mv *movieValidator) RemoveLike(movieID, userID int) error {
	if !mv.store.Exists(movieID) {
		return errs.Errorf(errs.ENOTFOUND, "Movie with Id %d does not exist.", movieID)
	}
	if !mv.users.Exists(userID) {
		return errs.Errorf(errs.ENOTFOUND, "User with Id %d does not exist.", userID)
	}
	movie, err := mv.store.ByID(movieID)
	if err != nil {
		return err
	}
	if movie.LikedBy.Len() == 0 {
		return errs.Errorf(errs.EINTERNAL, "Movie with Id %d has no likes.", movieID)
	}
	return mv.movieStore.RemoveLike(movieID, userID)
}

// runMovieValFns runs any number of functions of type movieValFn on the passed in Movie object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runMovieValFns(movie *domain.Movie, fns ...movieValFn) error {
	for _, fn := range fns {
		if err := fn(movie); err != nil {
			return err
		}
	}
	return nil
}

// A movieValFn is any function that takes in a pointer to a domain.Movie object and returns an error.
type movieValFn func(movie *domain.Movie) error

// releaseDateValid makes sure the release date is not before the first
// public film screening.
func (mv *movieValidator) releaseDateValid(movie *domain.Movie) error {
	if movie.ReleaseDate.Before(domain.EarliestRelease) {
		return errs.Errorf(errs.EINVALID, "Release date must not be before December 28, 1895.")
	}
	return nil
}

// durationValid makes sure the duration is a positive number of minutes.
func (mv *movieValidator) durationValid(movie *domain.Movie) error {
	if movie.Duration <= 0 {
		return errs.Errorf(errs.EINVALID, "Movie duration must be positive.")
	}
	return nil
}

// movieExists makes sure the movie to be updated is actually stored.
func (mv *movieValidator) movieExists(movie *domain.Movie) error {
	if !mv.store.Exists(movie.ID) {
		return errs.Errorf(errs.ENOTFOUND, "Movie with Id %d does not exist.", movie.ID)
	}
	return nil
}

// All returns every stored movie.
func (mg *movieStore) All() []domain.Movie {
	return mg.store.All()
}

// ByID returns the movie with the given id.
func (mg *movieStore) ByID(id int) (*domain.Movie, error) {
	return mg.store.ByID(id)
}

// Create stores the movie, assigning an id if none is set.
func (mg *movieStore) Create(movie *domain.Movie) error {
	if err := mg.store.Create(movie); err != nil {
		return err
	}
	mg.log.Info("movie created", zap.Int("id", movie.ID), zap.String("title", movie.Title))
	return nil
}

// Update replaces the stored movie wholesale.
func (mg *movieStore) Update(movie *domain.Movie) error {
	if err := mg.store.Update(movie); err != nil {
		return err
	}
	mg.log.Info("movie updated", zap.Int("id", movie.ID))
	return nil
}

// AddLike adds the user to the movie's liker set in one guarded
// read-modify-write against the store.
func (mg *movieStore) AddLike(movieID, userID int) error {
	err := mg.store.Modify(movieID, func(movie *domain.Movie) {
		movie.LikedBy.Add(userID)
	})
	if err != nil {
		return err
	}
	mg.log.Info("like added", zap.Int("movie_id", movieID), zap.Int("user_id", userID))
	return nil
}

// RemoveLike removes the user from the movie's liker set. Removing a user
// who isn't in the set is a no-op.
func (mg *movieStore) RemoveLike(movieID, userID int) error {
	err := mg.store.Modify(movieID, func(movie *domain.Movie) {
		movie.LikedBy.Remove(userID)
	})
	if err != nil {
		return err
	}
	mg.log.Info("like removed", zap.Int("movie_id", movieID), zap.Int("user_id", userID))
	return nil
}

// Popular returns up to count movies ordered by descending liker-set size,
// ties kept in listing order. A count of zero or less means the default of
// ten, and an over-large count is clamped to the number of stored movies.
func (mg *movieStore) Popular(count int) []domain.Movie {
	ranked := mg.store.All()
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LikedBy.Len() > ranked[j].LikedBy.Len()
	})
	if count <= 0 {
		count = DefaultPopularCount
	}
	if count > len(ranked) {
		count = len(ranked)
	}
	return ranked[:count]
}

// Reset clears the movie store. Test and administrative use only.
func (mg *movieStore) Reset() {
	mg.store.Reset()
}
