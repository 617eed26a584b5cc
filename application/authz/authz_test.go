package authz_test

import (
	"errors"
	"testing"

	"github.com/muhammadheryan/marketplace/application/authz"
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	cerr "github.com/muhammadheryan/marketplace/utils/errors"
)

func TestAuthorize(t *testing.T) {
	admin := &model.Actor{ID: 1, Role: constant.RoleAdmin}
	member := &model.Actor{ID: 2, Role: constant.RoleMember}

	catalogWrites := []constant.Action{
		constant.ActionCreateShop,
		constant.ActionUpdateShop,
		constant.ActionDeleteShop,
		constant.ActionCreateProduct,
		constant.ActionUpdateProduct,
		constant.ActionDeleteProduct,
	}

	tests := []struct {
		name    string
		actor   *model.Actor
		actions []constant.Action
		wantErr bool
		errCode constant.ErrorType
	}{
		{
			name:    "success: admin may perform catalog writes",
			actor:   admin,
			actions: catalogWrites,
			wantErr: false,
		},
		{
			name:    "error: member is forbidden from catalog writes",
			actor:   member,
			actions: catalogWrites,
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
		{
			name:    "success: member may manage own following set",
			actor:   member,
			actions: []constant.Action{constant.ActionFollowShop, constant.ActionUnfollowShop},
			wantErr: false,
		},
		{
			name:    "success: admin may manage own following set",
			actor:   admin,
			actions: []constant.Action{constant.ActionFollowShop, constant.ActionUnfollowShop},
			wantErr: false,
		},
		{
			name:    "error: anonymous actor is unauthorized for any mutation",
			actor:   nil,
			actions: append(catalogWrites, constant.ActionFollowShop, constant.ActionUnfollowShop),
			wantErr: true,
			errCode: constant.ErrUnauthorize,
		},
		{
			name:    "error: zero-id actor is unauthorized",
			actor:   &model.Actor{},
			actions: []constant.Action{constant.ActionFollowShop},
			wantErr: true,
			errCode: constant.ErrUnauthorize,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			for _, action := range tt.actions {
				err := authz.Authorize(tt.actor, action)
				if (err != nil) != tt.wantErr {
					t.Fatalf("Authorize(%v) error = %v, wantErr %v", action, err, tt.wantErr)
				}
				if tt.wantErr {
					var ce cerr.CustomError
					if !errors.As(err, &ce) {
						t.Fatalf("error type = %T, want CustomError", err)
					}
					if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
						t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
					}
				}
			}
		})
	}
}
