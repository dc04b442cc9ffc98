package domain

import "time"

// EarliestRelease is December 28, 1895, the day of the first public film
// screening. No movie's release date may precede it.
var EarliestRelease = NewDate(1895, time.December, 28)

// Movie represents a movie and the set of users who like it.
type Movie struct {
	ID          int    `json:"id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"max=200"`
	ReleaseDate Date   `json:"releaseDate" validate:"required"`
	// Duration is the running time in minutes.
	Duration int   `json:"duration" validate:"required"`
	LikedBy  IDSet `json:"likedBy"`
}

// Clone returns a deep copy of the movie, so callers can't mutate stored
// state through a shared liker set.
func (m *Movie) Clone() *Movie {
	clone := *m
	clone.LikedBy = m.LikedBy.Clone()
	return &clone
}

// MovieService is a set of methods to manipulate and work with the Movie model.
type MovieService interface {
	All() []Movie
	ByID(id int) (*Movie, error)
	Create(movie *Movie) error
	Update(movie *Movie) error
	AddLike(movieID, userID int) error
	RemoveLike(movieID, userID int) error
	Popular(count int) []Movie
	Reset()
}
