package storage

import (
	"sync"

	"kinograph/domain"
	"kinograph/errs"
)

// UserStorage is an in-memory user store with the same shape and locking
// discipline as MovieStorage. It also serves as the read-only user index the
// movie service uses to validate liker ids.
type UserStorage struct {
	mu    sync.RWMutex
	users map[int]*domain.User
}

var _ domain.UserIndex = &UserStorage{}

// NewUserStorage returns an empty user store.
func NewUserStorage() *UserStorage {
	return &UserStorage{
		users: map[int]*domain.User{},
	}
}

// All returns copies of every stored user, in ascending id order, so the
// listing order stays the same for the life of the process.
func (us *UserStorage) All() []domain.User {
	us.mu.RLock()
	defer us.mu.RUnlock()
	all := make([]domain.User, 0, len(us.users))
	for _, id := range userKeys(us.users).IDs() {
		all = append(all, *us.users[id].Clone())
	}
	return all
}

// Create inserts the user, allocating an id if none is set, and leaves the
// stored id on the passed-in record. A caller-supplied id is used as-is and
// overwrites any existing record at that key.
func (us *UserStorage) Create(user *domain.User) error {
	us.mu.Lock()
	defer us.mu.Unlock()
	if user.ID == 0 {
		user.ID = nextID(userKeys(us.users))
	}
	if user.Friends == nil {
		user.Friends = domain.NewIDSet()
	}
	us.users[user.ID] = user.Clone()
	return nil
}

// Update replaces the stored record wholesale. The user must already exist.
// An incoming record without a friend set gets an empty one, so later
// read-modify-writes never hit a nil map.
func (us *UserStorage) Update(user *domain.User) error {
	us.mu.Lock()
	defer us.mu.Unlock()
	if _, ok := us.users[user.ID]; !ok {
		return errs.Errorf(errs.ENOTFOUND, "User with Id %d does not exist.", user.ID)
	}
	if user.Friends == nil {
		user.Friends = domain.NewIDSet()
	}
	us.users[user.ID] = user.Clone()
	return nil
}

// ByID returns a copy of the user with the given id.
func (us *UserStorage) ByID(id int) (*domain.User, error) {
	us.mu.RLock()
	defer us.mu.RUnlock()
	if id < 0 {
		return nil, errs.Errorf(errs.ENOTFOUND, "Id must not be negative.")
	}
	user, ok := us.users[id]
	if !ok {
		return nil, errs.Errorf(errs.ENOTFOUND, "User with Id %d does not exist.", id)
	}
	return user.Clone(), nil
}

// Keys returns the current set of user ids.
func (us *UserStorage) Keys() domain.IDSet {
	us.mu.RLock()
	defer us.mu.RUnlock()
	return userKeys(us.users)
}

// Exists reports whether a user with the given id is stored.
func (us *UserStorage) Exists(id int) bool {
	us.mu.RLock()
	defer us.mu.RUnlock()
	_, ok := us.users[id]
	return ok
}

// Modify applies fn to the stored user under the write lock, making the
// whole read-modify-write sequence a single mutual-exclusion scope.
func (us *UserStorage) Modify(id int, fn func(*domain.User)) error {
	us.mu.Lock()
	defer us.mu.Unlock()
	user, ok := us.users[id]
	if !ok {
		return errs.Errorf(errs.ENOTFOUND, "User with Id %d does not exist.", id)
	}
	fn(user)
	return nil
}

// Reset clears all users. Test and administrative use only.
func (us *UserStorage) Reset() {
	us.mu.Lock()
	defer us.mu.Unlock()
	us.users = map[int]*domain.User{}
}

func userKeys(users map[int]*domain.User) domain.IDSet {
	keys := domain.NewIDSet()
	for id := range users {
		keys.Add(id)
	}
	return keys
}
