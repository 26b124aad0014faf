package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mvasiliades/portfolio-api/internal/apperror"
	"github.com/mvasiliades/portfolio-api/internal/repository"
)

// RefreshLimit bounds how many rows a store refresh pulls from the
// gateway. The admin surface works on the full collection; these are
// small personal datasets, not paginated feeds.
const RefreshLimit = 200

// Controller drives the create/read/update/delete workflow for one
// resource type. It validates drafts before any gateway call, delegates
// persistence to the gateway, and reflects confirmed mutations into its
// store. The store is only ever mutated after the gateway reports
// success; a gateway failure leaves it untouched.
type Controller[T Record] struct {
	desc     Descriptor[T]
	gateway  repository.Gateway[T]
	store    *Store[T]
	validate *validator.Validate
	logger   *slog.Logger
}

// NewController wires a controller for one resource type.
func NewController[T Record](
	desc Descriptor[T],
	gateway repository.Gateway[T],
	validate *validator.Validate,
	logger *slog.Logger,
) *Controller[T] {
	return &Controller[T]{
		desc:     desc,
		gateway:  gateway,
		store:    NewStore[T](),
		validate: validate,
		logger:   logger,
	}
}

// Refresh replaces the store with a fresh gateway fetch ordered most
// recent first. The target store is this controller's own, fixed at
// call time: a refresh raced with other activity can only ever load
// into the store it was started for.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	store := c.store

	records, err := c.gateway.List(ctx, repository.ListOptions{Limit: RefreshLimit})
	if err != nil {
		c.logger.Error("store refresh failed",
			slog.String("resource", c.desc.Name),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("refreshing %s store: %w", c.desc.Name, err)
	}

	store.Load(records)
	c.logger.Info("store refreshed",
		slog.String("resource", c.desc.Name),
		slog.Int("records", len(records)),
	)
	return nil
}

// Records returns the filtered view of the current store snapshot.
// Filtering never mutates the store.
func (c *Controller[T]) Records(q Query) []T {
	return c.desc.Filter(c.store.Snapshot(), q)
}

// Get returns the stored record matching id, if present.
func (c *Controller[T]) Get(id string) (T, bool) {
	return c.store.Get(id)
}

// Classify returns the record's status tier via the descriptor's
// status accessor.
func (c *Controller[T]) Classify(rec T) Tier {
	return Classify(c.desc.Status(rec))
}

// Reflect replaces the stored entry matching rec's id with rec. It is
// for mutations confirmed outside the controller's own workflow, such
// as the one-click approval toggle: the caller already holds the
// authoritative row and the store must keep serving it.
func (c *Controller[T]) Reflect(rec T) {
	c.store.Replace(rec.RecordID(), rec)
}

// NewDraft returns a fresh draft with the type's defaults.
func (c *Controller[T]) NewDraft() T {
	return c.desc.Defaults()
}

// Create validates the draft and inserts it through the gateway. On
// success the store gains the record at the front, carrying the
// gateway-assigned id and timestamps.
func (c *Controller[T]) Create(ctx context.Context, draft T) (T, error) {
	var zero T
	if err := c.checkDraft(draft); err != nil {
		return zero, err
	}

	if err := c.gateway.Insert(ctx, &draft); err != nil {
		c.logger.Error("create failed",
			slog.String("resource", c.desc.Name),
			slog.String("error", err.Error()),
		)
		return zero, fmt.Errorf("creating %s: %w", c.desc.Name, err)
	}

	c.store.InsertFront(draft)
	c.logger.Info("record created",
		slog.String("resource", c.desc.Name),
		slog.String("id", draft.RecordID()),
	)
	return draft, nil
}

// Save validates the draft and updates the record with the given id.
// The draft's id is forced to the target id, the gateway preserves
// created_at and refreshes updated_at, and the store entry is replaced
// with the authoritative row re-read after the update.
func (c *Controller[T]) Save(ctx context.Context, id string, draft T) (T, error) {
	var zero T
	if err := c.checkDraft(draft); err != nil {
		return zero, err
	}

	c.desc.SetID(&draft, id)
	if err := c.gateway.Update(ctx, &draft); err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			c.logger.Error("save failed",
				slog.String("resource", c.desc.Name),
				slog.String("id", id),
				slog.String("error", err.Error()),
			)
		}
		return zero, err
	}

	fresh, err := c.gateway.GetByID(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("re-reading %s %s after update: %w", c.desc.Name, id, err)
	}

	c.store.Replace(id, *fresh)
	c.logger.Info("record updated",
		slog.String("resource", c.desc.Name),
		slog.String("id", id),
	)
	return *fresh, nil
}

// Delete removes the record through the gateway, then drops it from the
// store. A stale id surfaces as not found and leaves the store alone;
// re-fetching is the operator's recovery path.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	if err := c.gateway.Delete(ctx, id); err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			c.logger.Error("delete failed",
				slog.String("resource", c.desc.Name),
				slog.String("id", id),
				slog.String("error", err.Error()),
			)
		}
		return err
	}

	c.store.Remove(id)
	c.logger.Info("record deleted",
		slog.String("resource", c.desc.Name),
		slog.String("id", id),
	)
	return nil
}

// checkDraft runs struct validation and converts the first failure into
// a domain validation error. Rejection happens before any gateway call.
func (c *Controller[T]) checkDraft(draft T) error {
	err := c.validate.Struct(draft)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		field := strings.ToLower(first.Field())
		return apperror.ValidationFailed(field,
			fmt.Sprintf("%s: field %q fails %q validation", c.desc.Name, field, first.Tag()))
	}
	return apperror.ValidationFailed("", fmt.Sprintf("%s: invalid draft", c.desc.Name))
}
