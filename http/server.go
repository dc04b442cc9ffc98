package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"kinograph/crud"
	"kinograph/domain"
	"kinograph/errs"
)

// Server provides the http functionality of the app: routing, request
// decoding, field-shape validation, and translating service outcomes into
// wire responses. Business rules live in the crud services, not here.
type Server struct {
	router   *mux.Router
	validate *validator.Validate
	log      *zap.Logger
	ms       domain.MovieService
	us       domain.UserService
}

// NewServer returns a new instance of the server, registers all routes and
// gives their handlers access to the crud services passed in.
func NewServer(services *crud.Services, log *zap.Logger) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		validate: validator.New(),
		log:      log,
		ms:       services.Movie,
		us:       services.User,
	}

	s.registerMovieRoutes(s.router)
	s.registerUserRoutes(s.router)

	s.router.Use(setContentTypeJSON, s.logRequest)
	return s
}

// ServeHTTP makes the server usable directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) error {
	return http.ListenAndServe(":"+strconv.Itoa(port), s.router)
}

// The setContentTypeJSON middleware sets the content type to "application/json".
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// The logRequest middleware logs every request with its duration.
func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

// decodeAndValidate parses the request's json body into v and runs the
// field-shape checks declared on the model's validate tags. Cross-field
// business rules are left to the services.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.Errorf(errs.EINVALID, "Invalid json body.")
	}
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return errs.Errorf(errs.EINVALID, "Field %q failed on the %q rule.", verrs[0].Field(), verrs[0].Tag())
		}
		return errs.Errorf(errs.EINVALID, "Invalid request body.")
	}
	return nil
}

// pathID parses a numeric path variable. Route patterns already constrain
// the variables to digits, so a parse failure still means a bad request.
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, errs.Errorf(errs.EINVALID, "Invalid Id format.")
	}
	return id, nil
}

// respond writes v as the json response body with the given status code.
func respond(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		errs.LogError(r, err)
	}
}
