// Package handler implements every endpoint as a function from an API
// Gateway event to an API Gateway response. The same functions serve the
// Lambda runtime and the echo server.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/docdesk/internal/auth"
	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/dispatch"
	"github.com/iliyamo/docdesk/internal/errs"
	"github.com/iliyamo/docdesk/internal/metrics"
	"github.com/iliyamo/docdesk/internal/notify"
	"github.com/iliyamo/docdesk/internal/otp"
	"github.com/iliyamo/docdesk/internal/repository"
	"github.com/iliyamo/docdesk/internal/response"
	"github.com/iliyamo/docdesk/internal/storage"
	"github.com/iliyamo/docdesk/internal/validation"
)

// Func is the shape of every endpoint.
type Func func(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse

// Options carries the dependencies built once in cmd/*.
type Options struct {
	Store      *database.Store
	JWTSecret  string
	BcryptCost int
	Publisher  notify.Publisher // nil disables notifications
	Presigner  storage.Presigner
	OTP        *otp.Manager
	Log        logrus.FieldLogger
	Metrics    *metrics.Metrics // may be nil
}

// Handler bundles the repositories and services the endpoints share.
type Handler struct {
	employees  *repository.EmployeeRepo
	customers  *repository.CustomerRepo
	categories *repository.CategoryRepo
	tasks      *repository.TaskRepo
	notes      *repository.NoteRepo
	itrs       *repository.ITRRepo
	links      *repository.LinkRepo
	messages   *repository.MessageRepo

	signer       *auth.Signer
	employeeAuth *auth.Verifier
	otp          *otp.Manager
	presigner    storage.Presigner
	publisher    notify.Publisher
	log          logrus.FieldLogger
	metrics      *metrics.Metrics
	bcryptCost   int

	now     func() time.Time
	newUUID func() string
}

func New(o Options) *Handler {
	return &Handler{
		employees:  repository.NewEmployeeRepo(o.Store),
		customers:  repository.NewCustomerRepo(o.Store),
		categories: repository.NewCategoryRepo(o.Store),
		tasks:      repository.NewTaskRepo(o.Store),
		notes:      repository.NewNoteRepo(o.Store),
		itrs:       repository.NewITRRepo(o.Store),
		links:      repository.NewLinkRepo(o.Store),
		messages:   repository.NewMessageRepo(o.Store),

		signer:       auth.NewSigner(o.JWTSecret),
		employeeAuth: auth.NewEmployeeVerifier(o.JWTSecret),
		otp:          o.OTP,
		presigner:    o.Presigner,
		publisher:    o.Publisher,
		log:          o.Log,
		metrics:      o.Metrics,
		bcryptCost:   o.BcryptCost,

		now:     time.Now,
		newUUID: newUUID,
	}
}

// manage runs an action-multiplexed endpoint: employee credential, action
// validation, then the selected variant. Nothing touches the store before
// both validation phases pass.
func manage[A any](ctx context.Context, h *Handler, ev events.APIGatewayProxyRequest, res *dispatch.Resource[A],
	run func(context.Context, auth.Claims, A) (events.APIGatewayProxyResponse, error),
) events.APIGatewayProxyResponse {
	start := time.Now()
	action := ""
	resp := func() events.APIGatewayProxyResponse {
		claims, err := h.employeeAuth.Verify(authorization(ev))
		if err != nil {
			return response.FromError(err)
		}
		var req A
		action, req, err = res.Decode([]byte(ev.Body))
		if err != nil {
			return response.FromError(err)
		}
		out, err := run(ctx, claims, req)
		if err != nil {
			return h.fail(res.Name(), action, err)
		}
		return out
	}()
	h.metrics.ObserveRequest(res.Name(), action, resp.StatusCode, time.Since(start))
	return resp
}

// single runs an endpoint with one request shape. verifier may be nil for
// public endpoints. An empty body binds as {}.
func single[R any](ctx context.Context, h *Handler, ev events.APIGatewayProxyRequest, name string, verifier *auth.Verifier,
	run func(context.Context, auth.Claims, *R) (events.APIGatewayProxyResponse, error),
) events.APIGatewayProxyResponse {
	start := time.Now()
	resp := func() events.APIGatewayProxyResponse {
		var claims auth.Claims
		if verifier != nil {
			var err error
			if claims, err = verifier.Verify(authorization(ev)); err != nil {
				return response.FromError(err)
			}
		}
		req := new(R)
		if err := validation.Bind(body(ev), req); err != nil {
			return response.FromError(err)
		}
		out, err := run(ctx, claims, req)
		if err != nil {
			return h.fail(name, "", err)
		}
		return out
	}()
	h.metrics.ObserveRequest(name, "", resp.StatusCode, time.Since(start))
	return resp
}

func (h *Handler) fail(resource, action string, err error) events.APIGatewayProxyResponse {
	entry := h.log.WithFields(logrus.Fields{"resource": resource, "action": action, "error": errs.Detail(err)})
	if errs.StatusOf(err) >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Info("request rejected")
	}
	return response.FromError(err)
}

// internal hides store failures from the client. Domain failures are
// plain errors and keep their text.
func internal(err error) error {
	if err == nil {
		return nil
	}
	var e *errs.Error
	if errors.As(err, &e) {
		return err
	}
	return errs.Internal(err)
}

// lookup maps repository.ErrNotFound to the resource's own message.
func lookup(err error, notFound string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errors.New(notFound)
	}
	return internal(err)
}

// authorization finds the Authorization header whatever casing the
// gateway delivered it in.
func authorization(ev events.APIGatewayProxyRequest) string {
	if v, ok := ev.Headers["Authorization"]; ok {
		return v
	}
	for k, v := range ev.Headers {
		if strings.EqualFold(k, "Authorization") {
			return v
		}
	}
	return ""
}

func body(ev events.APIGatewayProxyRequest) []byte {
	if strings.TrimSpace(ev.Body) == "" {
		return []byte("{}")
	}
	return []byte(ev.Body)
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(time.DateTime)
}

func newUUID() string { return uuid.NewString() }
