package crud

import (
	"go.uber.org/zap"

	"kinograph/domain"
	"kinograph/errs"
	"kinograph/storage"
)

// UserService manages Users and the friendship graph between them.
// It implements the domain.UserService interface.
type UserService struct {
	userValidator
}

// userValidator runs business-rule checks and normalizations on incoming
// User data. On success, it passes the data on to userStore.
// Otherwise, it returns the error of the check that has failed.
type userValidator struct {
	userStore
}

// userStore runs operations against the user storage using incoming data.
// It assumes that data has been validated.
type userStore struct {
	store *storage.UserStorage
	log   *zap.Logger
}

// NewUserService returns an instance of UserService.
func NewUserService(store *storage.UserStorage, log *zap.Logger) *UserService {
	return &UserService{
		userValidator{
			userStore{
				store: store,
				log:   log,
			},
		},
	}
}

// Ensure the UserService struct properly implements the domain.UserService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.UserService = &UserService{}

// Create runs the business-rule checks needed for storing a new user.
func (uv *userValidator) Create(user *domain.User) error {
	err := runUserValFns(user,
		uv.birthdayValid,
		uv.nameDefault)
	if err != nil {
		return err
	}
	return uv.userStore.Create(user)
}

// Update runs the checks needed for replacing an existing user.
func (uv *userValidator) Update(user *domain.User) error {
	err := runUserValFns(user, uv.userExists)
	if err != nil {
		return err
	}
	return uv.userStore.Update(user)
}

// AddFriend pairs two users as friends. Both ids must exist. The relation is
// written symmetrically, one guarded write per side.
func (uv *userValidator) AddFriend(id, friendID int) error {
	if err := uv.bothExist(id, friendID); err != nil {
		return err
	}
	return uv.userStore.AddFriend(id, friendID)
}

// RemoveFriend unpairs two users. Both ids must exist, and the first user's
// friend set must actually contain the second. The one-directional check is
// sufficient because AddFriend always writes both sides.
func (uv *userValidator) RemoveFriend(id, friendID int) error {
	if err := uv.bothExist(id, friendID); err != nil {
		return err
	}
	user, err := uv.store.ByID(id)
	if err != nil {
		return err
	}
	if !user.Friends.Has(friendID) {
		return errs.Errorf(errs.ENOTFOUND, "Users %d and %d are not friends.", id, friendID)
	}
	return uv.userStore.RemoveFriend(id, friendID)
}

// Friends resolves the user's friend ids to full records.
func (uv *userValidator) Friends(id int) ([]domain.User, error) {
	if !uv.store.Exists(id) {
		return nil, errs.Errorf(errs.ENOTFOUND, "User with Id %d does not exist.", id)
	}
	return uv.userStore.Friends(id)
}

// CommonFriends resolves the ids both users have in their friend sets.
// The result is the same regardless of argument order.
func (uv *userValidator) CommonFriends(id, otherID int) ([]domain.User, error) {
	if err := uv.bothExist(id, otherID); err != nil {
		return nil, err
	}
	return uv.userStore.CommonFriends(id, otherID)
}

func (uv *userValidator) bothExist(id, otherID int) error {
	if !uv.store.Exists(id) {
		return errs.Errorf(errs.ENOTFOUND, "User with Id %d does not exist.", id)
	}
	if !uv.store.Exists(otherID) {
		return errs.Errorf(errs.ENOTFOUND, "User with Id %d does not exist.", otherID)
	}
	return nil
}

// runUserValFns runs any number of functions of type userValFn on the passed in User object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runUserValFns(user *domain.User, fns ...userValFn) error {
	for _, fn := range fns {
		if err := fn(user); err != nil {
			return err
		}
	}
	return nil
}

// A userValFn is any function that takes in a pointer to a domain.User object and returns an error.
type userValFn func(user *domain.User) error

// birthdayValid makes sure the birthday is not in the future.
func (uv *userValidator) birthdayValid(user *domain.User) error {
	if user.Birthday.After(domain.Today()) {
		return errs.Errorf(errs.EINVALID, "Birthday must not be in the future.")
	}
	return nil
}

// nameDefault substitutes the login for a blank display name.
func (uv *userValidator) nameDefault(user *domain.User) error {
	if user.Name == "" {
		user.Name = user.Login
	}
	return nil
}

// userExists makes sure the user to be updated is actually stored.
func (uv *userValidator) userExists(user *domain.User) error {
	if !uv.store.Exists(user.ID) {
		return errs.Errorf(errs.ENOTFOUND, "User with Id %d does not exist.", user.ID)
	}
	return nil
}

// All returns every stored user.
func (ug *userStore) All() []domain.User {
	return ug.store.All()
}

// ByID returns the user with the given id.
func (ug *userStore) ByID(id int) (*domain.User, error) {
	return ug.store.ByID(id)
}

// Create stores the user, assigning an id if none is set.
func (ug *userStore) Create(user *domain.User) error {
	if err := ug.store.Create(user); err != nil {
		return err
	}
	ug.log.Info("user created", zap.Int("id", user.ID), zap.String("login", user.Login))
	return nil
}

// Update replaces the stored user wholesale.
func (ug *userStore) Update(user *domain.User) error {
	if err := ug.store.Update(user); err != nil {
		return err
	}
	ug.log.Info("user updated", zap.Int("id", user.ID))
	return nil
}

// AddFriend writes the pairing into both friend sets. The two writes are
// guarded individually, not as a unit, so an observer may briefly see the
// relation on one side only.
func (ug *userStore) AddFriend(id, friendID int) error {
	err := ug.store.Modify(id, func(user *domain.User) {
		user.Friends.Add(friendID)
	})
	if err != nil {
		return err
	}
	err = ug.store.Modify(friendID, func(user *domain.User) {
		user.Friends.Add(id)
	})
	if err != nil {
		return err
	}
	ug.log.Info("friend added", zap.Int("id", id), zap.Int("friend_id", friendID))
	return nil
}

// RemoveFriend removes the pairing from both friend sets, with the same
// two-write pattern as AddFriend.
func (ug *userStore) RemoveFriend(id, friendID int) error {
	err := ug.store.Modify(id, func(user *domain.User) {
		user.Friends.Remove(friendID)
	})
	if err != nil {
		return err
	}
	err = ug.store.Modify(friendID, func(user *domain.User) {
		user.Friends.Remove(id)
	})
	if err != nil {
		return err
	}
	ug.log.Info("friend removed", zap.Int("id", id), zap.Int("friend_id", friendID))
	return nil
}

// Friends returns the full records behind the user's friend ids.
func (ug *userStore) Friends(id int) ([]domain.User, error) {
	user, err := ug.store.ByID(id)
	if err != nil {
		return nil, err
	}
	return ug.resolve(user.Friends)
}

// CommonFriends returns the full records behind the intersection of the two
// users' friend sets.
func (ug *userStore) CommonFriends(id, otherID int) ([]domain.User, error) {
	user, err := ug.store.ByID(id)
	if err != nil {
		return nil, err
	}
	other, err := ug.store.ByID(otherID)
	if err != nil {
		return nil, err
	}
	return ug.resolve(user.Friends.Intersect(other.Friends))
}

// resolve looks up the full record for each id in the set. An id that has
// vanished between the set read and the lookup surfaces as not-found.
func (ug *userStore) resolve(ids domain.IDSet) ([]domain.User, error) {
	users := make([]domain.User, 0, ids.Len())
	for _, friendID := range ids.IDs() {
		friend, err := ug.store.ByID(friendID)
		if err != nil {
			return nil, err
		}
		users = append(users, *friend)
	}
	return users, nil
}

// Reset clears the user store. Test and administrative use only.
func (ug *userStore) Reset() {
	ug.store.Reset()
}
