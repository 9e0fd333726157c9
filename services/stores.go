package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"blogaulas/apperr"
	"blogaulas/metrics"
	"blogaulas/models"
	"blogaulas/policy"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context, role models.Role) ([]models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type PostStore interface {
	List(ctx context.Context, q string) ([]models.Post, error)
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	FindWithComments(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	DeleteCascade(ctx context.Context, id uint) error
}

type CommentStore interface {
	FindByID(ctx context.Context, id uint) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

// Publisher receives an event after every successful mutation.
type Publisher interface {
	Publish(eventType string, data interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, interface{}) {}

func orNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

// storeErr classifies a store failure. op names the operation for the logs.
func storeErr(err error, op, notFoundMsg string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.New(apperr.NotFound, notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Wrap(apperr.Conflict, "resource already exists", err)
	}
	return apperr.Wrap(apperr.Internal, op, err)
}

func authorize(p *policy.Policy, caller *models.Identity, action policy.Action, res policy.Resource, notFoundMsg string) error {
	switch p.Decide(caller, action, res) {
	case policy.Allow:
		return nil
	case policy.Conceal:
		metrics.PolicyDenials.WithLabelValues(string(action)).Inc()
		return apperr.New(apperr.NotFound, notFoundMsg)
	}
	metrics.PolicyDenials.WithLabelValues(string(action)).Inc()
	if caller == nil {
		return apperr.New(apperr.Unauthenticated, "authentication required")
	}
	return apperr.New(apperr.Forbidden, "not authorized")
}
