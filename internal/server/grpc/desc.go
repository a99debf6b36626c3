package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name. Every method takes
// and returns a google.protobuf.Struct.
const ServiceName = "ourtracker.v1.Actions"

// ActionsServer is the server API of ServiceName.
type ActionsServer interface {
	LoginSignup(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpsertInventory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateUserRole(context.Context, *structpb.Struct) (*structpb.Struct, error)
	TransferInventory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteInventory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteTrackOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RefreshSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SignOut(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(ActionsServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// FullMethod returns "/ourtracker.v1.Actions/<method>".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unaryHandler(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ActionsServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(ActionsServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ActionsServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("LoginSignup", ActionsServer.LoginSignup),
		unaryHandler("UpsertInventory", ActionsServer.UpsertInventory),
		unaryHandler("UpdateUserRole", ActionsServer.UpdateUserRole),
		unaryHandler("TransferInventory", ActionsServer.TransferInventory),
		unaryHandler("DeleteInventory", ActionsServer.DeleteInventory),
		unaryHandler("DeleteUser", ActionsServer.DeleteUser),
		unaryHandler("DeleteTrackOrder", ActionsServer.DeleteTrackOrder),
		unaryHandler("RefreshSession", ActionsServer.RefreshSession),
		unaryHandler("SignOut", ActionsServer.SignOut),
		unaryHandler("Ping", ActionsServer.Ping),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterActionsServer registers srv on s.
func RegisterActionsServer(s grpc.ServiceRegistrar, srv ActionsServer) {
	s.RegisterService(&serviceDesc, srv)
}

// Invoke calls method on conn. It is the client side of ServiceName.
func Invoke(ctx context.Context, conn grpc.ClientConnInterface, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := conn.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
