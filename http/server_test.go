package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kinograph/crud"
	"kinograph/domain"
	kinohttp "kinograph/http"
	"kinograph/storage"
)

func newTestServer(t *testing.T) *kinohttp.Server {
	t.Helper()
	services, err := crud.NewServices(
		storage.NewMovieStorage(),
		storage.NewUserStorage(),
		zap.NewNop(),
		crud.WithUser(),
		crud.WithMovie(),
	)
	require.NoError(t, err)
	return kinohttp.NewServer(services, zap.NewNop())
}

func do(t *testing.T, s *kinohttp.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	return w
}

const movieBody = `{"title":"The Matrix","description":"simulated reality","releaseDate":"1999-03-25","duration":136}`

func createMovieHTTP(t *testing.T, s *kinohttp.Server) domain.Movie {
	t.Helper()
	w := do(t, s, "POST", "/movies", movieBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var movie domain.Movie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movie))
	return movie
}

func createUserHTTP(t *testing.T, s *kinohttp.Server, login string) domain.User {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"login":%q,"birthday":"1990-06-15"}`, login+"@example.com", login)
	w := do(t, s, "POST", "/users", body)
	require.Equal(t, http.StatusCreated, w.Code)
	var user domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	return user
}

func TestCreateMovie(t *testing.T) {
	s := newTestServer(t)

	movie := createMovieHTTP(t, s)
	assert.Equal(t, 1, movie.ID)
	assert.Equal(t, "The Matrix", movie.Title)
	assert.Equal(t, 0, movie.LikedBy.Len())
}

func TestCreateMovie_FieldValidation(t *testing.T) {
	s := newTestServer(t)

	// Missing title fails the boundary check before the service runs.
	w := do(t, s, "POST", "/movies", `{"description":"untitled","releaseDate":"1999-03-25","duration":100}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A description over 200 characters is also rejected at the boundary.
	long := strings.Repeat("x", 201)
	w = do(t, s, "POST", "/movies", fmt.Sprintf(`{"title":"padded","description":%q,"releaseDate":"1999-03-25","duration":100}`, long))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Garbage json is a bad request, not a panic.
	w = do(t, s, "POST", "/movies", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateMovie_BusinessRule(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, "POST", "/movies", `{"title":"too old","description":"x","releaseDate":"1800-01-01","duration":100}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "1895")
}

func TestGetMovie_NotFound(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, "GET", "/movies/5", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddLike_UnknownMovie(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, "PUT", "/movies/5/like/9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveLike_EmptyLikerSet(t *testing.T) {
	s := newTestServer(t)

	movie := createMovieHTTP(t, s)
	user := createUserHTTP(t, s, "fan")

	path := fmt.Sprintf("/movies/%d/like/%d", movie.ID, user.ID)
	require.Equal(t, http.StatusOK, do(t, s, "PUT", path, "").Code)
	require.Equal(t, http.StatusOK, do(t, s, "DELETE", path, "").Code)

	// The liker set is empty now; the second unlike is a server failure.
	assert.Equal(t, http.StatusInternalServerError, do(t, s, "DELETE", path, "").Code)
}

func TestPopularMovies_Count(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 3; i++ {
		createMovieHTTP(t, s)
	}

	w := do(t, s, "GET", "/movies/popular?count=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var movies []domain.Movie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movies))
	assert.Len(t, movies, 2)

	// Without a count the default applies, clamped to what exists.
	w = do(t, s, "GET", "/movies/popular", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movies))
	assert.Len(t, movies, 3)

	w = do(t, s, "GET", "/movies/popular?count=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUser_DefaultName(t *testing.T) {
	s := newTestServer(t)

	user := createUserHTTP(t, s, "vasya")
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "vasya", user.Name)
}

func TestCreateUser_FieldValidation(t *testing.T) {
	s := newTestServer(t)

	// Malformed email.
	w := do(t, s, "POST", "/users", `{"email":"not-an-email","login":"fine","birthday":"1990-06-15"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Login with whitespace.
	w = do(t, s, "POST", "/users", `{"email":"ok@example.com","login":"has space","birthday":"1990-06-15"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFriendsFlow(t *testing.T) {
	s := newTestServer(t)

	u1 := createUserHTTP(t, s, "vasya")
	u2 := createUserHTTP(t, s, "petya")

	path := fmt.Sprintf("/users/%d/friends/%d", u1.ID, u2.ID)
	require.Equal(t, http.StatusOK, do(t, s, "PUT", path, "").Code)

	w := do(t, s, "GET", fmt.Sprintf("/users/%d/friends", u2.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	var friends []domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &friends))
	require.Len(t, friends, 1)
	assert.Equal(t, u1.ID, friends[0].ID)

	// Unpair, then removal of the vanished pairing is a 404.
	require.Equal(t, http.StatusOK, do(t, s, "DELETE", path, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, "DELETE", path, "").Code)
}

func TestCommonFriends(t *testing.T) {
	s := newTestServer(t)

	a := createUserHTTP(t, s, "a")
	b := createUserHTTP(t, s, "b")
	shared := createUserHTTP(t, s, "shared")

	require.Equal(t, http.StatusOK, do(t, s, "PUT", fmt.Sprintf("/users/%d/friends/%d", a.ID, shared.ID), "").Code)
	require.Equal(t, http.StatusOK, do(t, s, "PUT", fmt.Sprintf("/users/%d/friends/%d", b.ID, shared.ID), "").Code)

	w := do(t, s, "GET", fmt.Sprintf("/users/%d/friends/common/%d", a.ID, b.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	var common []domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &common))
	require.Len(t, common, 1)
	assert.Equal(t, shared.ID, common[0].ID)
}
