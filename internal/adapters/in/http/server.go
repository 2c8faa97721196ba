package http

import (
	"context"

	"printfarm/internal/core/application/usecases/commands"
	"printfarm/internal/core/application/usecases/queries"
	"printfarm/internal/core/domain/model/bobbin"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/generated/servers"
)

// DefaultActor is recorded on writes whose request carries no X-Actor-ID.
const DefaultActor = "system"

// Command handler ports.
type (
	CreateProductHandler interface {
		Handle(ctx context.Context, cmd commands.CreateProductCommand) (*product.Product, error)
	}

	ReduceStockHandler interface {
		Handle(ctx context.Context, cmd commands.ReduceStockCommand) (*product.Product, error)
	}

	CreateBobbinHandler interface {
		Handle(ctx context.Context, cmd commands.CreateBobbinCommand) (*bobbin.Bobbin, error)
	}

	ConsumeFilamentHandler interface {
		Handle(ctx context.Context, cmd commands.ConsumeFilamentCommand) (*bobbin.Bobbin, error)
	}

	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	SetOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.SetOrderStatusCommand) (*order.Order, error)
	}

	DeleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}
)

// Query handler ports.
type (
	GetProductHandler interface {
		Handle(ctx context.Context, query queries.GetProductQuery) (queries.ProductView, error)
	}

	ListProductsHandler interface {
		Handle(ctx context.Context, query queries.ListProductsQuery) ([]queries.ProductView, error)
	}

	ListStockMovementsHandler interface {
		Handle(ctx context.Context, query queries.ListStockMovementsQuery) ([]queries.MovementView, error)
	}

	AllocateBobbinsHandler interface {
		Handle(ctx context.Context, query queries.AllocateBobbinsQuery) (queries.AllocationView, error)
	}

	AllocateBobbinsForProductHandler interface {
		Handle(ctx context.Context, query queries.AllocateBobbinsForProductQuery) (queries.AllocationView, error)
	}

	ListBobbinsHandler interface {
		Handle(ctx context.Context, query queries.ListBobbinsQuery) ([]queries.BobbinView, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderSummary, error)
	}
)

// Handlers bundles every use case the API exposes.
type Handlers struct {
	CreateProduct   CreateProductHandler
	ReduceStock     ReduceStockHandler
	CreateBobbin    CreateBobbinHandler
	ConsumeFilament ConsumeFilamentHandler
	CreateOrder     CreateOrderHandler
	SetOrderStatus  SetOrderStatusHandler
	DeleteOrder     DeleteOrderHandler

	GetProduct                GetProductHandler
	ListProducts              ListProductsHandler
	ListStockMovements        ListStockMovementsHandler
	AllocateBobbins           AllocateBobbinsHandler
	AllocateBobbinsForProduct AllocateBobbinsForProductHandler
	ListBobbins               ListBobbinsHandler
	GetOrder                  GetOrderHandler
	ListOrders                ListOrdersHandler
}

// StatusDecoder turns wire text into an order status.
type StatusDecoder func(s string) (order.Status, error)

// LenientStatusDecoder maps unrecognized text to PENDING.
func LenientStatusDecoder(s string) (order.Status, error) {
	return order.StatusFromText(s), nil
}

// StrictStatusDecoder rejects unrecognized text.
func StrictStatusDecoder(s string) (order.Status, error) {
	return order.ParseStatus(s)
}

var _ servers.ServerInterface = (*Server)(nil)

// Server implements servers.ServerInterface on top of the command and query
// handlers. It translates wire types to commands and views back to wire
// types; domain errors are returned as is and mapped by ErrorHandler.
type Server struct {
	h            Handlers
	decodeStatus StatusDecoder
}

func NewServer(h Handlers, decodeStatus StatusDecoder) *Server {
	if decodeStatus == nil {
		decodeStatus = LenientStatusDecoder
	}
	return &Server{h: h, decodeStatus: decodeStatus}
}

func actorOf(header *servers.ActorID) string {
	if header == nil || *header == "" {
		return DefaultActor
	}
	return *header
}
