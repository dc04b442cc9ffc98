package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"kinograph/domain"
	"kinograph/errs"
)

// registerMovieRoutes is a helper for registering all Movie routes.
func (s *Server) registerMovieRoutes(r *mux.Router) {
	// List all movies.
	r.HandleFunc("/movies", s.handleGetMovies).Methods("GET")

	// Create a new movie.
	r.HandleFunc("/movies", s.handleCreateMovie).Methods("POST")

	// Update an existing movie. The id rides in the body, not the url.
	r.HandleFunc("/movies", s.handleUpdateMovie).Methods("PUT")

	// List the most-liked movies. Must be registered before the {id} route.
	r.HandleFunc("/movies/popular", s.handleGetPopularMovies).Methods("GET")

	// Get a single movie.
	r.HandleFunc("/movies/{id:[0-9]+}", s.handleGetMovie).Methods("GET")

	// Like and unlike a movie.
	r.HandleFunc("/movies/{id:[0-9]+}/like/{userId:[0-9]+}", s.handleAddLike).Methods("PUT")
	r.HandleFunc("/movies/{id:[0-9]+}/like/{userId:[0-9]+}", s.handleRemoveLike).Methods("DELETE")
}

// handleGetMovies handles the route "GET /movies".
// It returns all stored movies. No ordering is promised.
func (s *Server) handleGetMovies(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, s.ms.All())
}

// handleCreateMovie handles the route "POST /movies".
// It validates the movie's field shapes, then hands it to the movie service.
func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	var movie domain.Movie
	if err := s.decodeAndValidate(r, &movie); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := s.ms.Create(&movie); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	// Return the stored movie, id included.
	respond(w, r, http.StatusCreated, &movie)
}

// handleUpdateMovie handles the route "PUT /movies".
// The incoming record replaces the stored one wholesale.
func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	var movie domain.Movie
	if err := s.decodeAndValidate(r, &movie); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := s.ms.Update(&movie); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, &movie)
}

// handleGetMovie handles the route "GET /movies/{id}".
func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	movie, err := s.ms.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, movie)
}

// handleAddLike handles the route "PUT /movies/{id}/like/{userId}".
func (s *Server) handleAddLike(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "id")
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := s.ms.AddLike(movieID, userID); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, nil)
}

// handleRemoveLike handles the route "DELETE /movies/{id}/like/{userId}".
func (s *Server) handleRemoveLike(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "id")
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := s.ms.RemoveLike(movieID, userID); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, nil)
}

// handleGetPopularMovies handles the route "GET /movies/popular?count=N".
// The count parameter is optional; the service applies the default and
// clamps over-large values.
func (s *Server) handleGetPopularMovies(w http.ResponseWriter, r *http.Request) {
	count := 0
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid count format."))
			return
		}
		count = parsed
	}

	respond(w, r, http.StatusOK, s.ms.Popular(count))
}
