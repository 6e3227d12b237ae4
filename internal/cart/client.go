package cart

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client is the catalog side of the cart service.
type Client struct {
	conn grpc.ClientConnInterface
}

func Dial(addr string) (*Client, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	return NewClient(conn), conn, nil
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) AddItem(ctx context.Context, userID string, productID int64, quantity int) error {
	in, err := structpb.NewStruct(map[string]interface{}{
		fieldUserID:    userID,
		fieldProductID: productID,
		fieldQuantity:  quantity,
	})
	if err != nil {
		return err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, addItemMethod, in, out); err != nil {
		switch status.Code(err) {
		case codes.NotFound:
			return ErrProductNotFound
		case codes.FailedPrecondition:
			return ErrInsufficientStock
		case codes.InvalidArgument:
			return ErrInvalidItem
		}
		return fmt.Errorf("cart service: %w", err)
	}
	return nil
}
