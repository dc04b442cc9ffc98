package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"kinograph/domain"
	"kinograph/errs"
)

// registerUserRoutes is a helper for registering all User routes.
func (s *Server) registerUserRoutes(r *mux.Router) {
	// List all users.
	r.HandleFunc("/users", s.handleGetUsers).Methods("GET")

	// Create a new user.
	r.HandleFunc("/users", s.handleCreateUser).Methods("POST")

	// Update an existing user. The id rides in the body, not the url.
	r.HandleFunc("/users", s.handleUpdateUser).Methods("PUT")

	// Get a single user.
	r.HandleFunc("/users/{id:[0-9]+}", s.handleGetUser).Methods("GET")

	// Pair and unpair two users as friends.
	r.HandleFunc("/users/{id:[0-9]+}/friends/{friendId:[0-9]+}", s.handleAddFriend).Methods("PUT")
	r.HandleFunc("/users/{id:[0-9]+}/friends/{friendId:[0-9]+}", s.handleRemoveFriend).Methods("DELETE")

	// List a user's friends, and the friends two users have in common.
	r.HandleFunc("/users/{id:[0-9]+}/friends", s.handleGetFriends).Methods("GET")
	r.HandleFunc("/users/{id:[0-9]+}/friends/common/{otherId:[0-9]+}", s.handleGetCommonFriends).Methods("GET")
}

// handleGetUsers handles the route "GET /users".
func (s *Server) handleGetUsers(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, s.us.All())
}

// handleCreateUser handles the route "POST /users".
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if err := s.decodeAndValidate(r, &user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := s.us.Create(&user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	// Return the stored user, id and defaulted name included.
	respond(w, r, http.StatusCreated, &user)
}

// handleUpdateUser handles the route "PUT /users".
// The incoming record replaces the stored one wholesale.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if err := s.decodeAndValidate(r, &user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := s.us.Update(&user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, &user)
}

// handleGetUser handles the route "GET /users/{id}".
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	user, err := s.us.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, user)
}

// handleAddFriend handles the route "PUT /users/{id}/friends/{friendId}".
func (s *Server) handleAddFriend(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	friendID, err := pathID(r, "friendId")
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := s.us.AddFriend(id, friendID); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, nil)
}

// handleRemoveFriend handles the route "DELETE /users/{id}/friends/{friendId}".
func (s *Server) handleRemoveFriend(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	friendID, err := pathID(r, "friendId")
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := s.us.RemoveFriend(id, friendID); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, nil)
}

// handleGetFriends handles the route "GET /users/{id}/friends".
func (s *Server) handleGetFriends(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	friends, err := s.us.Friends(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, friends)
}

// handleGetCommonFriends handles the route "GET /users/{id}/friends/common/{otherId}".
func (s *Server) handleGetCommonFriends(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	otherID, err := pathID(r, "otherId")
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	common, err := s.us.CommonFriends(id, otherID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, common)
}
