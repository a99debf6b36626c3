package grpc

import (
	"context"
	"errors"

	"github.com/maaz2022/ourtracker/internal/common"
	"github.com/maaz2022/ourtracker/internal/server/auth"
	"github.com/maaz2022/ourtracker/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func tokenStruct(p *auth.TokenPair) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"userId":       structpb.NewStringValue(p.UserID),
		"accessToken":  structpb.NewStringValue(p.AccessToken),
		"refreshToken": structpb.NewStringValue(p.RefreshToken),
	}}
}

func (s *GRPCServer) LoginSignup(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	isLogin := boolField(req, "isLogin")

	res, err := s.actions.Auth.LoginSignup(ctx, formFromStruct(req), isLogin)
	if err != nil {
		out := errorStruct(err)
		if res != nil && res.ErrorKind != "" {
			out.Fields["kind"] = structpb.NewStringValue(string(res.ErrorKind))
		}
		return out, nil
	}

	out := tokenStruct(res.Session)
	out.Fields["destination"] = structpb.NewStringValue(res.Destination)
	return out, nil
}

func (s *GRPCServer) UpsertInventory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	inv, err := s.actions.Inventories.Upsert(ctx, formFromStruct(req), stringField(req, "id"))
	if err != nil {
		if errors.Is(err, services.ErrUnauthenticated) {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		return errorStruct(err), nil
	}
	return toStruct(inv)
}

func (s *GRPCServer) UpdateUserRole(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	user, err := s.actions.Users.UpdateRole(ctx, formFromStruct(req), boolField(req, "isAdmin"), stringField(req, "id"))
	if err != nil {
		return errorStruct(err), nil
	}
	return toStruct(user)
}

func (s *GRPCServer) TransferInventory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	res, err := s.actions.Inventories.Transfer(ctx, stringField(req, "id"), stringField(req, "userId"), boolField(req, "isAdmin"))
	if err != nil {
		return errorStruct(err), nil
	}
	return toStruct(res)
}

func (s *GRPCServer) DeleteInventory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := s.actions.Inventories.Delete(ctx, stringField(req, "id")); err != nil {
		return errorStruct(err), nil
	}
	return &structpb.Struct{}, nil
}

func (s *GRPCServer) DeleteUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := s.actions.Users.Delete(ctx, stringField(req, "id")); err != nil {
		return errorStruct(err), nil
	}
	return &structpb.Struct{}, nil
}

func (s *GRPCServer) DeleteTrackOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := s.actions.TrackOrders.Delete(ctx, stringField(req, "id")); err != nil {
		return errorStruct(err), nil
	}
	return &structpb.Struct{}, nil
}

func (s *GRPCServer) RefreshSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	pair, err := s.actions.Auth.Refresh(ctx, stringField(req, "refreshToken"))
	if err != nil {
		if errors.Is(err, common.ErrSessionExpired) || errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		return nil, status.Error(codes.Internal, "internal error")
	}
	return tokenStruct(pair), nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := s.actions.Auth.SignOut(ctx, stringField(req, "refreshToken")); err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &structpb.Struct{}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"status": structpb.NewStringValue("OK"),
	}}, nil
}
