package rest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iris-contrib/middleware/jwt"
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/msaldanha/taskflow/errorreport"
	"github.com/msaldanha/taskflow/tasks"
	"github.com/msaldanha/taskflow/validation"
)

const taskListPrefix = "tasks_"

func (s *Server) buildHandlers() {
	j := jwt.New(jwt.Config{
		ValidationKeyGetter: func(token *jwt.Token) (interface{}, error) {
			return []byte(s.secret), nil
		},
		SigningMethod: jwt.SigningMethodHS256,
	})

	api := s.app.Party("/api")

	api.Post("/log-error", s.logError)
	api.Post("/validate/{form:string}", s.validateForm)
	api.Post("/contact", s.contact)
	api.Get("/team", s.getTeam)

	tl := api.Party("/tasks", j.Serve)
	tl.Get("/", s.getTasks)
	tl.Get("/stats", s.getStats)
	tl.Post("/", s.createTask)
	tl.Patch("/{id:string}/status", s.updateStatus)

	c := api.Party("/cache", j.Serve)
	c.Delete("/", s.clearCache)
	c.Post("/sweep", s.sweepCache)
}

func subject(ctx iris.Context) string {
	token, ok := ctx.Values().Get("jwt").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sub, _ := claims[subjectClaim].(string)
	return sub
}

func (s *Server) logError(ctx iris.Context) {
	rec := errorreport.ErrorLog{}
	er := ctx.ReadJSON(&rec)
	if er != nil {
		returnError(ctx, fmt.Errorf("%w: %s", ErrInvalidBody, er), 400)
		return
	}
	if !rec.Severity.Valid() {
		s.fail(ctx, fmt.Errorf("%w: %q", ErrInvalidSeverity, rec.Severity))
		return
	}

	fields := []zap.Field{
		zap.String("id", rec.ID),
		zap.String("message", rec.Message),
		zap.String("timestamp", rec.Timestamp),
		zap.String("path", rec.Path),
		zap.String("userId", rec.UserID),
		zap.Any("metadata", rec.Metadata),
	}
	if rec.Stack != "" {
		fields = append(fields, zap.String("stack", rec.Stack))
	}
	if rec.AdditionalInfo != "" {
		fields = append(fields, zap.String("additionalInfo", rec.AdditionalInfo))
	}

	switch rec.Severity {
	case errorreport.SeverityInfo:
		s.logger.Info("client report", fields...)
	case errorreport.SeverityWarning:
		s.logger.Warn("client report", fields...)
	default:
		s.logger.Error("client report", fields...)
	}

	_ = ctx.JSON(Response{Payload: rec.ID})
}

// readForm decodes a form body, sanitizes its strings and validates it against schema.
// It writes the error response itself and returns false when the form is not accepted.
func (s *Server) readForm(ctx iris.Context, schema *validation.ObjectSchema) (map[string]any, bool) {
	body := map[string]any{}
	er := ctx.ReadJSON(&body)
	if er != nil {
		returnError(ctx, fmt.Errorf("%w: %s", ErrInvalidBody, er), 400)
		return nil, false
	}

	clean := validation.SanitizeFields(body)
	// passwords are checked as typed
	if pw, ok := body["password"]; ok {
		clean["password"] = pw
	}

	res := validation.ValidateFormData(clean, schema)
	if !res.Success {
		ctx.StatusCode(422)
		_ = ctx.JSON(Response{Payload: res.Errors, Error: ErrValidation.Error()})
		return nil, false
	}
	return res.Data, true
}

func (s *Server) validateForm(ctx iris.Context) {
	name := ctx.Params().Get("form")
	schema, found := validation.Forms[name]
	if !found {
		s.fail(ctx, fmt.Errorf("%w: %s", ErrUnknownForm, name))
		return
	}

	data, ok := s.readForm(ctx, schema)
	if !ok {
		return
	}
	delete(data, "password")
	_ = ctx.JSON(Response{Payload: data})
}

func (s *Server) contact(ctx iris.Context) {
	data, ok := s.readForm(ctx, validation.ContactSchema)
	if !ok {
		return
	}
	s.logger.Info("contact message accepted",
		zap.Any("name", data["name"]),
		zap.Any("email", data["email"]),
	)
	_ = ctx.JSON(Response{Payload: data})
}

func (s *Server) getTeam(ctx iris.Context) {
	team, er := s.team.WithCacheTTL(ctx.Request().Context(), teamKey, func(_ context.Context) ([]tasks.Assignee, error) {
		return tasks.SampleTeam(), nil
	}, s.opts.CacheTTL)
	if er != nil {
		s.fail(ctx, er)
		return
	}
	_ = ctx.JSON(Response{Payload: team})
}

func (s *Server) getTasks(ctx iris.Context) {
	f := tasks.Filter{
		Status: tasks.Status(ctx.URLParam("status")),
		Search: ctx.URLParam("search"),
	}
	if f.Status == "all" {
		f.Status = ""
	}
	if f.Status != "" && !f.Status.Valid() {
		s.fail(ctx, fmt.Errorf("%w: %q", tasks.ErrInvalidStatus, f.Status))
		return
	}

	list, er := s.taskFlights.WithCacheTTL(ctx.Request().Context(), f.Key(s.board.Revision()), func(_ context.Context) ([]tasks.Task, error) {
		return s.board.List(f), nil
	}, s.opts.CacheTTL)
	if er != nil {
		s.fail(ctx, er)
		return
	}
	_ = ctx.JSON(Response{Payload: list})
}

func (s *Server) getStats(ctx iris.Context) {
	_ = ctx.JSON(Response{Payload: s.board.Stats()})
}

func (s *Server) createTask(ctx iris.Context) {
	body := tasks.NewTask{}
	er := ctx.ReadJSON(&body)
	if er != nil {
		returnError(ctx, fmt.Errorf("%w: %s", ErrInvalidBody, er), 400)
		return
	}
	body.Title = validation.SanitizeInput(body.Title)
	body.Description = validation.SanitizeInput(body.Description)

	t, er := s.board.Create(body)
	if er != nil {
		var fe validation.FieldErrors
		if errors.As(er, &fe) {
			ctx.StatusCode(getStatusCodeForError(er))
			_ = ctx.JSON(Response{Payload: fe, Error: er.Error()})
			return
		}
		s.fail(ctx, er)
		return
	}
	s.invalidateTasks()

	ctx.StatusCode(iris.StatusCreated)
	_ = ctx.JSON(Response{Payload: t})
}

type statusRequest struct {
	Status tasks.Status `json:"status"`
}

func (s *Server) updateStatus(ctx iris.Context) {
	id := ctx.Params().Get("id")
	body := statusRequest{}
	er := ctx.ReadJSON(&body)
	if er != nil {
		returnError(ctx, fmt.Errorf("%w: %s", ErrInvalidBody, er), 400)
		return
	}

	t, er := s.board.UpdateStatus(id, body.Status)
	if er != nil {
		s.fail(ctx, er)
		return
	}
	s.invalidateTasks()

	_ = ctx.JSON(Response{Payload: t})
}

// invalidateTasks drops the cached task listings. Readers already skip them once the
// board revision moves on; removing them keeps dead keys out of storage.
func (s *Server) invalidateTasks() {
	keys, er := s.tasks.Keys()
	if er != nil {
		s.logger.Warn("listing cached tasks failed", zap.Error(er))
		return
	}
	for _, k := range keys {
		if !strings.HasPrefix(k, taskListPrefix) {
			continue
		}
		s.taskFlights.Forget(k)
		if er = s.tasks.Remove(k); er != nil {
			s.logger.Warn("invalidating cached tasks failed", zap.String("key", k), zap.Error(er))
		}
	}
}

func (s *Server) clearCache(ctx iris.Context) {
	er := s.tasks.Clear()
	if er != nil {
		s.fail(ctx, er)
		return
	}
	ctx.StatusCode(iris.StatusNoContent)
}

func (s *Server) sweepCache(ctx iris.Context) {
	n, er := s.tasks.ClearExpired()
	if er != nil {
		s.fail(ctx, er)
		return
	}
	_ = ctx.JSON(Response{Payload: map[string]int{"removed": n}})
}
