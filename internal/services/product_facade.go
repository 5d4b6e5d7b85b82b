package services

import (
	"context"
	"log"
	"time"

	"catalog/internal/dto"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// EventPublisher receives product lifecycle events after a write succeeds.
type EventPublisher interface {
	PublishProductEvent(ctx context.Context, event models.ProductEvent) error
}

type noopPublisher struct{}

func (noopPublisher) PublishProductEvent(context.Context, models.ProductEvent) error { return nil }

// Option configures a ProductFacade.
type Option func(*ProductFacade)

// WithPublisher sets the publisher used for product events.
func WithPublisher(p EventPublisher) Option {
	return func(f *ProductFacade) {
		if p != nil {
			f.publisher = p
		}
	}
}

// WithTracer overrides the tracer taken from the global otel provider.
func WithTracer(t trace.Tracer) Option {
	return func(f *ProductFacade) {
		if t != nil {
			f.tracer = t
		}
	}
}

// ProductFacade exposes CRUD operations over products. Every call goes
// straight to the store; the facade keeps no state of its own.
type ProductFacade struct {
	store     repositories.ProductStore
	publisher EventPublisher
	tracer    trace.Tracer
	now       func() time.Time
}

// NewProductFacade creates a new ProductFacade.
func NewProductFacade(store repositories.ProductStore, opts ...Option) *ProductFacade {
	f := &ProductFacade{
		store:     store,
		publisher: noopPublisher{},
		tracer:    otel.Tracer("catalog/services"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// List returns every product in store order. The result is never nil.
func (f *ProductFacade) List(ctx context.Context) ([]dto.ProductView, error) {
	ctx, span := f.tracer.Start(ctx, "ProductFacade.List")
	defer span.End()

	products, err := f.store.FindAll(ctx)
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int("product.count", len(products)))
	return dto.FromProducts(products), nil
}

// GetByID returns the product with the given ID or a *NotFoundError.
func (f *ProductFacade) GetByID(ctx context.Context, id uint) (*dto.ProductView, error) {
	ctx, span := f.tracer.Start(ctx, "ProductFacade.GetByID", trace.WithAttributes(productID(id)))
	defer span.End()

	product, err := f.require(ctx, "get", id)
	if err != nil {
		return nil, fail(span, err)
	}
	view := dto.FromProduct(*product)
	return &view, nil
}

// Create persists a new product. Any ID on the input is discarded so the
// store always assigns a fresh one.
func (f *ProductFacade) Create(ctx context.Context, input dto.ProductView) (*dto.ProductView, error) {
	ctx, span := f.tracer.Start(ctx, "ProductFacade.Create")
	defer span.End()

	input.ID = 0
	product := dto.ToProduct(input)
	if err := f.store.Save(ctx, &product); err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(productID(product.ID))

	f.publish(ctx, models.ProductCreated, product.ID)
	view := dto.FromProduct(product)
	return &view, nil
}

// Update replaces every field of an existing product. The ID argument wins
// over any ID carried by the input.
func (f *ProductFacade) Update(ctx context.Context, id uint, input dto.ProductView) (*dto.ProductView, error) {
	ctx, span := f.tracer.Start(ctx, "ProductFacade.Update", trace.WithAttributes(productID(id)))
	defer span.End()

	if _, err := f.require(ctx, "update", id); err != nil {
		return nil, fail(span, err)
	}

	input.ID = id
	product := dto.ToProduct(input)
	if err := f.store.Save(ctx, &product); err != nil {
		return nil, fail(span, err)
	}

	f.publish(ctx, models.ProductUpdated, id)
	view := dto.FromProduct(product)
	return &view, nil
}

// Delete removes an existing product or returns a *NotFoundError.
func (f *ProductFacade) Delete(ctx context.Context, id uint) error {
	ctx, span := f.tracer.Start(ctx, "ProductFacade.Delete", trace.WithAttributes(productID(id)))
	defer span.End()

	if _, err := f.require(ctx, "delete", id); err != nil {
		return fail(span, err)
	}
	if err := f.store.DeleteByID(ctx, id); err != nil {
		return fail(span, err)
	}

	f.publish(ctx, models.ProductDeleted, id)
	return nil
}

// require loads a product, turning absence into a *NotFoundError.
func (f *ProductFacade) require(ctx context.Context, op string, id uint) (*models.Product, error) {
	product, ok, err := f.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Op: op, ID: id}
	}
	return product, nil
}

// publish emits an event for a committed write. Failures are logged only.
func (f *ProductFacade) publish(ctx context.Context, eventType string, id uint) {
	event := models.ProductEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		ProductID:  id,
		OccurredAt: f.now().UTC(),
	}
	if err := f.publisher.PublishProductEvent(ctx, event); err != nil {
		log.Printf("Error publishing %s for product %d: %v", eventType, id, err)
	}
}

func productID(id uint) attribute.KeyValue {
	return attribute.Int64("product.id", int64(id))
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
