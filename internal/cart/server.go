package cart

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/MikeMC777/storefront-catalog/internal/logx"
)

const (
	// ServiceName is also the name reported by the health service.
	ServiceName   = "storefront.cart.v1.CartService"
	addItemMethod = "/" + ServiceName + "/AddItem"
)

// Payloads are google.protobuf.Struct values with the keys below.
const (
	fieldUserID    = "user_id"
	fieldProductID = "product_id"
	fieldQuantity  = "quantity"
	fieldAdded     = "added"
)

type cartServer interface {
	AddItem(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*cartServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddItem", Handler: addItemHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/cart/v1/cart.proto",
}

func addItemHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(cartServer).AddItem(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: addItemMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(cartServer).AddItem(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Server exposes a cart API over gRPC.
type Server struct {
	api API
	log zerolog.Logger
}

func NewServer(api API) *Server {
	return &Server{api: api, log: logx.Component("cart-server")}
}

// Register attaches s to a gRPC server.
func Register(r grpc.ServiceRegistrar, s *Server) {
	r.RegisterService(&serviceDesc, s)
}

// AddItem validates the payload, writes through the API and maps its
// sentinel errors to gRPC status codes.
func (s *Server) AddItem(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := in.GetFields()
	userID := f[fieldUserID].GetStringValue()
	productID := int64(f[fieldProductID].GetNumberValue())
	quantity := int(f[fieldQuantity].GetNumberValue())

	if err := validate(userID, productID, quantity); err != nil {
		return nil, status.Error(codes.InvalidArgument, "user_id, product_id and a positive quantity are required")
	}
	if err := s.api.AddItem(ctx, userID, productID, quantity); err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			return nil, status.Error(codes.NotFound, "product not found")
		case errors.Is(err, ErrInsufficientStock):
			return nil, status.Error(codes.FailedPrecondition, "insufficient stock")
		}
		s.log.Error().Err(err).Int64("product_id", productID).Msg("add item failed")
		return nil, status.Errorf(codes.Internal, "add item error: %v", err)
	}
	s.log.Info().Str("user_id", userID).Int64("product_id", productID).Int("quantity", quantity).Msg("item added")
	return structpb.NewStruct(map[string]interface{}{fieldAdded: true})
}
