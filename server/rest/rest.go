package rest

import (
	"context"
	"errors"
	"time"

	"github.com/iris-contrib/middleware/cors"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/logger"
	"github.com/kataras/iris/v12/middleware/recover"
	"go.uber.org/zap"

	"github.com/msaldanha/taskflow/cache"
	"github.com/msaldanha/taskflow/errorreport"
	"github.com/msaldanha/taskflow/storage"
	"github.com/msaldanha/taskflow/tasks"
)

const (
	subjectClaim = "sub"
	teamKey      = "team"
)

type Server struct {
	app         *iris.Application
	opts        Options
	board       *tasks.Board
	tasks       *cache.Expiring[[]tasks.Task]
	taskFlights *cache.Coalescer[[]tasks.Task]
	team        *cache.Expiring[[]tasks.Assignee]
	reporter    *errorreport.Reporter
	secret      string
	logger      *zap.Logger
}

type Options struct {
	Url      string
	Board    *tasks.Board
	Tasks    *cache.Expiring[[]tasks.Task]
	Team     *cache.Expiring[[]tasks.Assignee]
	CacheTTL time.Duration
	Reporter *errorreport.Reporter
	// Secret verifies the HS256 session tokens of the protected routes.
	Secret string
	Logger *zap.Logger
}

type Response struct {
	Payload interface{} `json:"payload,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func NewServer(opts Options) (*Server, error) {
	if opts.Board == nil || opts.Tasks == nil || opts.Team == nil {
		return nil, ErrMissingDependency
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Reporter == nil {
		opts.Reporter = errorreport.NewReporter(errorreport.Options{Logger: opts.Logger})
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = cache.DefaultTTL
	}

	app := iris.New()
	app.Use(recover.New())
	app.Use(logger.New())

	crs := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	app.Use(crs)
	app.AllowMethods(iris.MethodOptions)

	srv := &Server{
		app:         app,
		opts:        opts,
		board:       opts.Board,
		tasks:       opts.Tasks,
		taskFlights: cache.NewCoalescer[[]tasks.Task](opts.Tasks),
		team:        opts.Team,
		reporter:    opts.Reporter,
		secret:      opts.Secret,
		logger:      opts.Logger.Named("Rest"),
	}

	srv.buildHandlers()

	return srv, nil
}

// Run serves until ctx is done, then shuts the server down.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.app.Shutdown(c)
	}()
	return s.app.Run(iris.Addr(s.opts.Url), iris.WithoutServerError(iris.ErrServerClosed))
}

// Handler builds the routes and returns the application, which serves as an http.Handler.
func (s *Server) Handler() (*iris.Application, error) {
	if er := s.app.Build(); er != nil {
		return nil, er
	}
	return s.app, nil
}

func returnError(ctx iris.Context, er error, statusCode int) {
	ctx.StatusCode(statusCode)
	_ = ctx.JSON(Response{Error: er.Error()})
}

// fail answers with the status mapped from er. Unexpected errors are reported and
// replaced by the message the reporter allows clients to see.
func (s *Server) fail(ctx iris.Context, er error) {
	code := getStatusCodeForError(er)
	if code != iris.StatusInternalServerError {
		returnError(ctx, er, code)
		return
	}
	c := errorreport.WithPath(ctx.Request().Context(), ctx.Path())
	if sub := subject(ctx); sub != "" {
		c = errorreport.WithUserID(c, sub)
	}
	returnError(ctx, errors.New(s.reporter.HandleAPIError(c, er).Message), code)
}

func getStatusCodeForError(er error) int {
	switch {
	case errors.Is(er, tasks.ErrInvalidStatus):
		fallthrough
	case errors.Is(er, ErrInvalidSeverity):
		fallthrough
	case errors.Is(er, ErrInvalidBody):
		return 400
	case errors.Is(er, tasks.ErrTaskNotFound):
		fallthrough
	case errors.Is(er, ErrUnknownForm):
		return 404
	case errors.Is(er, tasks.ErrInvalidTask):
		return 422
	case errors.Is(er, storage.ErrQuotaExceeded):
		return 507
	default:
		return 500
	}
}
