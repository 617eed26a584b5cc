package authz

import (
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	"github.com/muhammadheryan/marketplace/utils/errors"
)

// Authorize is the single allow/deny decision consulted by every mutation.
// Catalog writes require the admin role. Follow and unfollow only require
// an authenticated actor, since they touch the actor's own following set.
// Reads never reach here. Pure function, no side effects.
func Authorize(actor *model.Actor, action constant.Action) error {
	if actor == nil || actor.ID == 0 {
		return errors.SetCustomError(constant.ErrUnauthorize)
	}

	switch action {
	case constant.ActionCreateShop,
		constant.ActionUpdateShop,
		constant.ActionDeleteShop,
		constant.ActionCreateProduct,
		constant.ActionUpdateProduct,
		constant.ActionDeleteProduct:
		if actor.Role != constant.RoleAdmin {
			return errors.SetCustomError(constant.ErrForbidden)
		}
	case constant.ActionFollowShop, constant.ActionUnfollowShop:
		// any authenticated user, no ownership check against the shop
	}

	return nil
}
