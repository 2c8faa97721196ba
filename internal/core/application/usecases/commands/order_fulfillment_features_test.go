package commands_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"printfarm/internal/adapters/out/memory"
	"printfarm/internal/core/application/usecases/commands"
	"printfarm/internal/core/domain/model/bobbin"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/core/ports"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

type uowFactory struct{ f ports.UnitOfWorkFactory }

func (a uowFactory) Create() commands.UoW { return a.f.Create() }

type productUoWFactory struct{ f ports.UnitOfWorkFactory }

func (a productUoWFactory) Create() commands.ProductUoW { return a.f.Create() }

type fulfillmentFeature struct {
	store    *memory.Store
	factory  ports.UnitOfWorkFactory
	products map[string]kernel.UUID
	orders   map[string]kernel.UUID
	lastErr  error
}

func (f *fulfillmentFeature) reset() {
	f.store = memory.NewStore()
	f.factory = memory.NewUnitOfWorkFactory(f.store, nil)
	f.products = make(map[string]kernel.UUID)
	f.orders = make(map[string]kernel.UUID)
	f.lastErr = nil
}

func (f *fulfillmentFeature) inTx(fn func(uow ports.UnitOfWork) error) error {
	ctx := context.Background()
	uow := f.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()
	if err := fn(uow); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (f *fulfillmentFeature) aBobbin(kind, color string, grams float64) error {
	material, err := kernel.NewMaterial(kind, color)
	if err != nil {
		return err
	}
	b, err := bobbin.NewBobbin(kernel.NewUUID(), material, "Prusament", grams)
	if err != nil {
		return err
	}
	return f.inTx(func(uow ports.UnitOfWork) error {
		return uow.BobbinRepository().Add(context.Background(), b)
	})
}

func (f *fulfillmentFeature) aProduct(code string, grams float64, kind, color string, available, reserved int) error {
	material, err := kernel.NewMaterial(kind, color)
	if err != nil {
		return err
	}
	req, err := product.NewFilamentRequirement(material, grams)
	if err != nil {
		return err
	}
	p, err := product.RestoreProduct(kernel.NewUUID(), code, code, 12,
		[]product.FilamentRequirement{req}, product.Stock{Available: available, Reserved: reserved}, 0)
	if err != nil {
		return err
	}
	f.products[code] = p.ID()
	return f.inTx(func(uow ports.UnitOfWork) error {
		return uow.ProductRepository().Add(context.Background(), p)
	})
}

func (f *fulfillmentFeature) createOrder(name string, qty int, code string) error {
	productID, ok := f.products[code]
	if !ok {
		return fmt.Errorf("unknown product %q", code)
	}
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, nil, []commands.OrderItem{
		{ProductID: productID, Quantity: qty, UnitPrice: decimal.RequireFromString("2.50")},
	}, false, "tester")
	if err != nil {
		return err
	}
	_, f.lastErr = commands.NewCreateOrderCommandHandler(uowFactory{f.factory}, newFulfillment()).
		Handle(context.Background(), cmd)
	if f.lastErr == nil {
		f.orders[name] = id
	}
	return nil
}

func (f *fulfillmentFeature) setStatus(name, status string, params commands.SetOrderStatusParams) error {
	id, ok := f.orders[name]
	if !ok {
		return fmt.Errorf("unknown order %q", name)
	}
	target, err := order.ParseStatus(status)
	if err != nil {
		return err
	}
	params.Actor = "tester"
	cmd, err := commands.NewSetOrderStatusCommand(id, target, params)
	if err != nil {
		return err
	}
	_, f.lastErr = commands.NewSetOrderStatusCommandHandler(uowFactory{f.factory}, newFulfillment()).
		Handle(context.Background(), cmd)
	return nil
}

func (f *fulfillmentFeature) moveOrder(name, status string) error {
	return f.setStatus(name, status, commands.SetOrderStatusParams{})
}

func (f *fulfillmentFeature) moveOrderSkipping(name, status string) error {
	skip := true
	return f.setStatus(name, status, commands.SetOrderStatusParams{SkipProduction: &skip})
}

func (f *fulfillmentFeature) moveOrderWithQuantity(name, status string, qty int) error {
	return f.setStatus(name, status, commands.SetOrderStatusParams{ProductionQuantity: &qty})
}

func (f *fulfillmentFeature) cancelOrder(name string) error {
	return f.setStatus(name, order.Cancelled.String(), commands.SetOrderStatusParams{})
}

func (f *fulfillmentFeature) cancelOrderConfirmed(name string) error {
	return f.setStatus(name, order.Cancelled.String(), commands.SetOrderStatusParams{Confirm: true})
}

func (f *fulfillmentFeature) deleteOrder(name string) error {
	id, ok := f.orders[name]
	if !ok {
		return fmt.Errorf("unknown order %q", name)
	}
	cmd, err := commands.NewDeleteOrderCommand(id, false, "tester")
	if err != nil {
		return err
	}
	f.lastErr = commands.NewDeleteOrderCommandHandler(uowFactory{f.factory}, newFulfillment()).
		Handle(context.Background(), cmd)
	return nil
}

func (f *fulfillmentFeature) writeOff(qty int, code, reason string) error {
	cmd, err := commands.NewReduceStockCommand(f.products[code], qty, reason, "", "tester")
	if err != nil {
		return err
	}
	_, f.lastErr = commands.NewReduceStockCommandHandler(productUoWFactory{f.factory}).
		Handle(context.Background(), cmd)
	return nil
}

func (f *fulfillmentFeature) operationFails(text string) error {
	if f.lastErr == nil {
		return errors.New("expected the last operation to fail")
	}
	if !strings.Contains(f.lastErr.Error(), text) {
		return fmt.Errorf("error %q does not mention %q", f.lastErr, text)
	}
	return nil
}

func (f *fulfillmentFeature) operationSucceeds() error {
	if f.lastErr != nil {
		return fmt.Errorf("expected success, got %w", f.lastErr)
	}
	return nil
}

func (f *fulfillmentFeature) productHas(code string, available, reserved int) error {
	p, err := f.store.Product(f.products[code])
	if err != nil {
		return err
	}
	if got := p.Stock(); got.Available != available || got.Reserved != reserved {
		return fmt.Errorf("product %s has %d available and %d reserved, want %d and %d",
			code, got.Available, got.Reserved, available, reserved)
	}
	return nil
}

func (f *fulfillmentFeature) productHasMovements(code string, count int) error {
	id := f.products[code]
	n := 0
	for _, m := range f.store.Movements() {
		if m.ProductID.IsEqual(id) {
			n++
		}
	}
	if n != count {
		return fmt.Errorf("product %s has %d stock movements, want %d", code, n, count)
	}
	return nil
}

func (f *fulfillmentFeature) orderIs(name, status string) error {
	o, deleted, err := f.store.Order(f.orders[name])
	if err != nil {
		return err
	}
	if deleted {
		return fmt.Errorf("order %s is deleted", name)
	}
	if o.Status().String() != status {
		return fmt.Errorf("order %s is %s, want %s", name, o.Status(), status)
	}
	return nil
}

func (f *fulfillmentFeature) orderIsDeleted(name string) error {
	_, deleted, err := f.store.Order(f.orders[name])
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("order %s is not deleted", name)
	}
	return nil
}

func InitializeFulfillmentScenario(ctx *godog.ScenarioContext) {
	f := &fulfillmentFeature{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		f.reset()
		return ctx, nil
	})

	ctx.Step(`^a "([^"]*)" "([^"]*)" bobbin with (\d+) grams remaining$`, f.aBobbin)
	ctx.Step(`^a product "([^"]*)" needing (\d+) grams of "([^"]*)" "([^"]*)" with (\d+) available and (\d+) reserved$`,
		f.aProduct)
	ctx.Step(`^I create order "([^"]*)" for (\d+) of "([^"]*)"$`, f.createOrder)
	ctx.Step(`^I move order "([^"]*)" to "([^"]*)"$`, f.moveOrder)
	ctx.Step(`^I move order "([^"]*)" to "([^"]*)" skipping production$`, f.moveOrderSkipping)
	ctx.Step(`^I move order "([^"]*)" to "([^"]*)" with production quantity (\d+)$`, f.moveOrderWithQuantity)
	ctx.Step(`^I cancel order "([^"]*)"$`, f.cancelOrder)
	ctx.Step(`^I cancel order "([^"]*)" with confirmation$`, f.cancelOrderConfirmed)
	ctx.Step(`^I delete order "([^"]*)"$`, f.deleteOrder)
	ctx.Step(`^I write off (\d+) of "([^"]*)" as "([^"]*)"$`, f.writeOff)
	ctx.Step(`^the operation fails with "([^"]*)"$`, f.operationFails)
	ctx.Step(`^the operation succeeds$`, f.operationSucceeds)
	ctx.Step(`^product "([^"]*)" has (\d+) available and (\d+) reserved$`, f.productHas)
	ctx.Step(`^product "([^"]*)" has (\d+) stock movements$`, f.productHasMovements)
	ctx.Step(`^order "([^"]*)" is "([^"]*)"$`, f.orderIs)
	ctx.Step(`^order "([^"]*)" is deleted$`, f.orderIsDeleted)
}

func TestOrderFulfillmentFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeFulfillmentScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
