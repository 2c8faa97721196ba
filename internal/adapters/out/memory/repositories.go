package memory

import (
	"context"
	"fmt"
	"slices"

	"printfarm/internal/core/domain/model/bobbin"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/pkg/errs"
)

type productRepository struct {
	state *state
	track func(kernel.EventSource)
}

func (r *productRepository) Add(_ context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, exists := r.state.products[p.ID()]; exists {
		return errs.NewValueIsInvalidErrorWithCause("product id", fmt.Errorf("%s already exists", p.ID()))
	}
	for _, other := range r.state.products {
		if other.Code() == p.Code() {
			return errs.NewValueIsInvalidErrorWithCause("product code", fmt.Errorf("code %q is already used", p.Code()))
		}
	}

	stored, err := cloneProduct(p)
	if err != nil {
		return err
	}
	r.state.products[p.ID()] = stored
	r.track(p)
	return nil
}

func (r *productRepository) Update(_ context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	current, ok := r.state.products[p.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("product", p.ID())
	}
	if current.Version() != p.OriginalVersion() {
		return errs.NewVersionIsInvalidErrorWithCause("product", fmt.Errorf(
			"stored version %d, loaded version %d", current.Version(), p.OriginalVersion()))
	}

	stored, err := cloneProduct(p)
	if err != nil {
		return err
	}
	r.state.products[p.ID()] = stored
	r.track(p)
	return nil
}

func (r *productRepository) Get(_ context.Context, id kernel.UUID) (*product.Product, error) {
	p, ok := r.state.products[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", id)
	}
	return cloneProduct(p)
}

func (r *productRepository) GetForUpdate(ctx context.Context, ids ...kernel.UUID) ([]*product.Product, error) {
	unique := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if !slices.ContainsFunc(unique, id.IsEqual) {
			unique = append(unique, id)
		}
	}
	slices.SortFunc(unique, kernel.UUID.Compare)

	products := make([]*product.Product, 0, len(unique))
	for _, id := range unique {
		p, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

type bobbinRepository struct {
	state *state
}

func (r *bobbinRepository) Add(_ context.Context, b *bobbin.Bobbin) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if _, exists := r.state.bobbins[b.ID()]; exists {
		return errs.NewValueIsInvalidErrorWithCause("bobbin id", fmt.Errorf("%s already exists", b.ID()))
	}
	stored, err := cloneBobbin(b)
	if err != nil {
		return err
	}
	r.state.bobbins[b.ID()] = stored
	return nil
}

func (r *bobbinRepository) Update(_ context.Context, b *bobbin.Bobbin) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if _, ok := r.state.bobbins[b.ID()]; !ok {
		return errs.NewObjectNotFoundError("bobbin", b.ID())
	}
	stored, err := cloneBobbin(b)
	if err != nil {
		return err
	}
	r.state.bobbins[b.ID()] = stored
	return nil
}

func (r *bobbinRepository) Get(_ context.Context, id kernel.UUID) (*bobbin.Bobbin, error) {
	b, ok := r.state.bobbins[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("bobbin", id)
	}
	return cloneBobbin(b)
}

func (r *bobbinRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*bobbin.Bobbin, error) {
	return r.Get(ctx, id)
}

func (r *bobbinRepository) GetAll(_ context.Context) ([]*bobbin.Bobbin, error) {
	bobbins := make([]*bobbin.Bobbin, 0, len(r.state.bobbins))
	for _, b := range r.state.bobbins {
		c, err := cloneBobbin(b)
		if err != nil {
			return nil, err
		}
		bobbins = append(bobbins, c)
	}
	slices.SortFunc(bobbins, func(a, b *bobbin.Bobbin) int { return a.ID().Compare(b.ID()) })
	return bobbins, nil
}

type orderRepository struct {
	state *state
	track func(kernel.EventSource)
}

func (r *orderRepository) Add(_ context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if _, exists := r.state.orders[o.ID()]; exists {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%s already exists", o.ID()))
	}
	for _, other := range r.state.orders {
		if other.Code() == o.Code() {
			return errs.NewValueIsInvalidErrorWithCause("order code", fmt.Errorf("code %q is already used", o.Code()))
		}
	}
	return r.put(o)
}

func (r *orderRepository) Update(_ context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if _, err := r.live(o.ID()); err != nil {
		return err
	}
	return r.put(o)
}

func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, err := r.live(id)
	if err != nil {
		return nil, err
	}
	return cloneOrder(o)
}

func (r *orderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r *orderRepository) Delete(ctx context.Context, o *order.Order) error {
	if err := r.Update(ctx, o); err != nil {
		return err
	}
	r.state.deleted[o.ID()] = true
	return nil
}

func (r *orderRepository) live(id kernel.UUID) (*order.Order, error) {
	o, ok := r.state.orders[id]
	if !ok || r.state.deleted[id] {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return o, nil
}

func (r *orderRepository) put(o *order.Order) error {
	stored, err := cloneOrder(o)
	if err != nil {
		return err
	}
	r.state.orders[o.ID()] = stored
	r.track(o)
	return nil
}

type movementRepository struct {
	state *state
}

func (r *movementRepository) Append(_ context.Context, movements ...product.StockMovement) error {
	r.state.movements = append(r.state.movements, movements...)
	return nil
}
