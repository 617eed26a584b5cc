package context

import (
	"context"

	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
)

func GetActor(ctx context.Context) (*model.Actor, bool) {
	v := ctx.Value(constant.ActorKey)
	if v == nil {
		return nil, false
	}
	actor, ok := v.(*model.Actor)
	return actor, ok
}

func WithActor(ctx context.Context, actor *model.Actor) context.Context {
	return context.WithValue(ctx, constant.ActorKey, actor)
}
