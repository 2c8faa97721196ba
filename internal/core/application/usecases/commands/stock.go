package commands

import (
	"context"
	"strings"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/core/ports"
	"printfarm/internal/pkg/errs"
)

// DefaultActor is recorded when a caller does not identify itself.
const DefaultActor = "system"

func normalizeActor(actor string) string {
	if actor = strings.TrimSpace(actor); actor == "" {
		return DefaultActor
	}
	return actor
}

func indexProducts(products []*product.Product) map[kernel.UUID]*product.Product {
	byID := make(map[kernel.UUID]*product.Product, len(products))
	for _, p := range products {
		byID[p.ID()] = p
	}
	return byID
}

func requireProduct(byID map[kernel.UUID]*product.Product, id kernel.UUID) (*product.Product, error) {
	p, ok := byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", id)
	}
	return p, nil
}

// saveStock writes every product touched by movements once and appends the
// movements to the ledger.
func saveStock(
	ctx context.Context,
	productRepo ports.ProductRepository,
	movementRepo ports.StockMovementRepository,
	byID map[kernel.UUID]*product.Product,
	movements []product.StockMovement,
) error {
	if len(movements) == 0 {
		return nil
	}

	saved := make(map[kernel.UUID]struct{}, len(byID))
	for _, m := range movements {
		if _, ok := saved[m.ProductID]; ok {
			continue
		}
		p, err := requireProduct(byID, m.ProductID)
		if err != nil {
			return err
		}
		if err = productRepo.Update(ctx, p); err != nil {
			return err
		}
		saved[m.ProductID] = struct{}{}
	}

	return movementRepo.Append(ctx, movements...)
}
