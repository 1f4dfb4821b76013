package handler

import (
	"context"
	"math"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/core/service"
)

const (
	BookstoreServiceName   = "bookstore.v1.BookstoreService"
	PurchaseFullMethodName = "/" + BookstoreServiceName + "/Purchase"
)

// BookstoreServer is the server API for the bookstore gRPC service.
// Messages are google.protobuf.Struct so clients need no generated stubs.
type BookstoreServer interface {
	Purchase(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var bookstoreServiceDesc = grpc.ServiceDesc{
	ServiceName: BookstoreServiceName,
	HandlerType: (*BookstoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Purchase",
			Handler:    purchaseHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookstore/v1/bookstore.proto",
}

func RegisterBookstoreServer(s grpc.ServiceRegistrar, srv BookstoreServer) {
	s.RegisterService(&bookstoreServiceDesc, srv)
}

func purchaseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookstoreServer).Purchase(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PurchaseFullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BookstoreServer).Purchase(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type GRPCHandler struct {
	checkout *service.CheckoutService
	logger   *zap.Logger
}

func NewGRPCHandler(checkout *service.CheckoutService, logger *zap.Logger) *GRPCHandler {
	return &GRPCHandler{checkout: checkout, logger: logger}
}

func (h *GRPCHandler) Purchase(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	customer := fields["customer"].GetStructValue().GetFields()

	// Struct numbers are doubles; a fractional or out-of-range count is
	// rejected instead of truncated.
	quantity := fields["quantity"].GetNumberValue()
	if quantity != math.Trunc(quantity) || quantity < math.MinInt32 || quantity > math.MaxInt32 {
		return structpb.NewStruct(map[string]interface{}{
			"success": false,
			"message": "invalid quantity",
		})
	}

	order, err := h.checkout.Checkout(ctx, service.CheckoutRequest{
		RequestID: fields["request_id"].GetStringValue(),
		BookID:    fields["book_id"].GetStringValue(),
		Quantity:  int(quantity),
		Customer: domain.Customer{
			Name:    customer["name"].GetStringValue(),
			Email:   customer["email"].GetStringValue(),
			Address: customer["address"].GetStringValue(),
		},
	})
	if err != nil {
		status, message := purchaseFailure(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("purchase failed", zap.Error(err))
		}
		return structpb.NewStruct(map[string]interface{}{
			"success": false,
			"message": message,
		})
	}

	return structpb.NewStruct(map[string]interface{}{
		"success":  true,
		"message":  "purchase successful",
		"order_id": order.ID,
		"amount":   order.Amount,
	})
}
