package storage

import (
	"sync"

	"kinograph/domain"
	"kinograph/errs"
)

// MovieStorage is an in-memory movie store. A single RWMutex guards the
// backing map, so every operation is atomic on its own and readers never
// observe a partially-written record. Records are deep-copied on the way in
// and out, which keeps callers from mutating stored state behind the lock.
type MovieStorage struct {
	mu     sync.RWMutex
	movies map[int]*domain.Movie
}

// NewMovieStorage returns an empty movie store.
func NewMovieStorage() *MovieStorage {
	return &MovieStorage{
		movies: map[int]*domain.Movie{},
	}
}

// All returns copies of every stored movie, in ascending id order. Callers
// get the same listing order for the life of the process, which the
// popularity ranking relies on to break ties consistently.
func (ms *MovieStorage) All() []domain.Movie {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	all := make([]domain.Movie, 0, len(ms.movies))
	for _, id := range movieKeys(ms.movies).IDs() {
		all = append(all, *ms.movies[id].Clone())
	}
	return all
}

// Create inserts the movie, allocating an id if none is set, and leaves the
// stored id on the passed-in record. A caller-supplied id is used as-is and
// overwrites any existing record at that key.
func (ms *MovieStorage) Create(movie *domain.Movie) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if movie.ID == 0 {
		movie.ID = nextID(movieKeys(ms.movies))
	}
	if movie.LikedBy == nil {
		movie.LikedBy = domain.NewIDSet()
	}
	ms.movies[movie.ID] = movie.Clone()
	return nil
}

// Update replaces the stored record wholesale. The movie must already exist.
// An incoming record without a liker set gets an empty one, so later
// read-modify-writes never hit a nil map.
func (ms *MovieStorage) Update(movie *domain.Movie) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, ok := ms.movies[movie.ID]; !ok {
		return errs.Errorf(errs.ENOTFOUND, "Movie with Id %d does not exist.", movie.ID)
	}
	if movie.LikedBy == nil {
		movie.LikedBy = domain.NewIDSet()
	}
	ms.movies[movie.ID] = movie.Clone()
	return nil
}

// ByID returns a copy of the movie with the given id.
func (ms *MovieStorage) ByID(id int) (*domain.Movie, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if id < 0 {
		return nil, errs.Errorf(errs.ENOTFOUND, "Id must not be negative.")
	}
	movie, ok := ms.movies[id]
	if !ok {
		return nil, errs.Errorf(errs.ENOTFOUND, "Movie with Id %d does not exist.", id)
	}
	return movie.Clone(), nil
}

// Keys returns the current set of movie ids.
func (ms *MovieStorage) Keys() domain.IDSet {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return movieKeys(ms.movies)
}

// Exists reports whether a movie with the given id is stored. It's the
// existence check services use without materializing full records.
func (ms *MovieStorage) Exists(id int) bool {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	_, ok := ms.movies[id]
	return ok
}

// Modify applies fn to the stored movie under the write lock, making the
// whole read-modify-write sequence a single mutual-exclusion scope.
func (ms *MovieStorage) Modify(id int, fn func(*domain.Movie)) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	movie, ok := ms.movies[id]
	if !ok {
		return errs.Errorf(errs.ENOTFOUND, "Movie with Id %d does not exist.", id)
	}
	fn(movie)
	return nil
}

// Reset clears all movies. Test and administrative use only.
func (ms *MovieStorage) Reset() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.movies = map[int]*domain.Movie{}
}

func movieKeys(movies map[int]*domain.Movie) domain.IDSet {
	keys := domain.NewIDSet()
	for id := range movies {
		keys.Add(id)
	}
	return keys
}
