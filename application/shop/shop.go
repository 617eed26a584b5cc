package shop

import (
	"context"
	"time"

	"github.com/muhammadheryan/marketplace/application/authz"
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	productrepo "github.com/muhammadheryan/marketplace/repository/product"
	redisrepo "github.com/muhammadheryan/marketplace/repository/redis"
	shoprepo "github.com/muhammadheryan/marketplace/repository/shop"
	userrepo "github.com/muhammadheryan/marketplace/repository/user"
	"github.com/muhammadheryan/marketplace/thirdparty/rabbitmq"
	"github.com/muhammadheryan/marketplace/utils/assets"
	"github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/muhammadheryan/marketplace/utils/logger"
	validatorx "github.com/muhammadheryan/marketplace/utils/validator"
	"go.uber.org/zap"
)

type ShopApp interface {
	ListShops(ctx context.Context) ([]model.ShopListItem, error)
	GetShop(ctx context.Context, id uint64) (*model.ShopDetail, error)
	CreateShop(ctx context.Context, actor *model.Actor, req *model.CreateShopRequest) error
	UpdateShop(ctx context.Context, actor *model.Actor, id uint64, req *model.UpdateShopRequest) error
	DeleteShop(ctx context.Context, actor *model.Actor, id uint64) error
	FollowShop(ctx context.Context, actor *model.Actor, shopID uint64) error
	UnfollowShop(ctx context.Context, actor *model.Actor, shopID uint64) error
	RecountFollowers(ctx context.Context, shopID uint64) (int64, error)
}

type shopAppImpl struct {
	shopRepo    shoprepo.ShopRepository
	productRepo productrepo.ProductRepository
	userRepo    userrepo.UserRepository
	redisRepo   redisrepo.Repository
	publisher   *rabbitmq.Publisher
	resolver    *assets.Resolver
}

func NewShopApp(shopRepo shoprepo.ShopRepository, productRepo productrepo.ProductRepository, userRepo userrepo.UserRepository, redisRepo redisrepo.Repository, publisher *rabbitmq.Publisher, resolver *assets.Resolver) ShopApp {
	return &shopAppImpl{
		shopRepo:    shopRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		redisRepo:   redisRepo,
		publisher:   publisher,
		resolver:    resolver,
	}
}

func (s *shopAppImpl) ListShops(ctx context.Context) ([]model.ShopListItem, error) {
	shops, err := s.shopRepo.List(ctx)
	if err != nil {
		logger.Error("[ListShops] err shopRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	items := make([]model.ShopListItem, 0, len(shops))
	for i := range shops {
		sh := &shops[i]
		items = append(items, model.ShopListItem{
			ID:          sh.ID,
			Name:        sh.Name,
			Description: sh.Description,
			Photo:       s.resolver.URL(sh.Photo),
			Location:    sh.Location(),
		})
	}
	return items, nil
}

func (s *shopAppImpl) GetShop(ctx context.Context, id uint64) (*model.ShopDetail, error) {
	sh, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetShop] err shopRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if sh == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	products, err := s.productRepo.ListByShopID(ctx, id)
	if err != nil {
		logger.Error("[GetShop] err productRepo.ListByShopID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	views := make([]model.ProductView, 0, len(products))
	for i := range products {
		views = append(views, s.productView(&products[i]))
	}

	followers, err := s.followerCount(ctx, id)
	if err != nil {
		logger.Error("[GetShop] err followerCount", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.ShopDetail{
		ID:          sh.ID,
		Name:        sh.Name,
		Description: sh.Description,
		Photo:       s.resolver.URL(sh.Photo),
		Location:    sh.Location(),
		Followers:   followers,
		Products:    views,
	}, nil
}

func (s *shopAppImpl) CreateShop(ctx context.Context, actor *model.Actor, req *model.CreateShopRequest) error {
	if err := authz.Authorize(actor, constant.ActionCreateShop); err != nil {
		return err
	}
	if err := validatorx.ValidateStruct(req); err != nil {
		return errors.SetValidationError(validatorx.Violations(err))
	}

	entity := &model.ShopEntity{
		Name:        req.Name,
		Photo:       req.Photo,
		Description: req.Description,
	}
	if entity.Photo == "" {
		entity.Photo = constant.DefaultPhoto
	}
	if req.Location != nil {
		entity.Lat = &req.Location.Lat
		entity.Lng = &req.Location.Lng
	}

	if _, err := s.shopRepo.Create(ctx, entity); err != nil {
		logger.Error("[CreateShop] err shopRepo.Create", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *shopAppImpl) UpdateShop(ctx context.Context, actor *model.Actor, id uint64, req *model.UpdateShopRequest) error {
	if err := authz.Authorize(actor, constant.ActionUpdateShop); err != nil {
		return err
	}
	if err := validatorx.ValidateStruct(req); err != nil {
		return errors.SetValidationError(validatorx.Violations(err))
	}

	found, err := s.shopRepo.Update(ctx, id, req)
	if err != nil {
		logger.Error("[UpdateShop] err shopRepo.Update", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !found {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	return nil
}

func (s *shopAppImpl) DeleteShop(ctx context.Context, actor *model.Actor, id uint64) error {
	if err := authz.Authorize(actor, constant.ActionDeleteShop); err != nil {
		return err
	}

	// no cascade: the shop's products stay behind with a dangling shop_id
	removed, err := s.shopRepo.Delete(ctx, id)
	if err != nil {
		logger.Error("[DeleteShop] err shopRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !removed {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	return nil
}

func (s *shopAppImpl) FollowShop(ctx context.Context, actor *model.Actor, shopID uint64) error {
	if err := authz.Authorize(actor, constant.ActionFollowShop); err != nil {
		return err
	}

	sh, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		logger.Error("[FollowShop] err shopRepo.GetByID", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if sh == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	// set add: following an already-followed shop succeeds as a no-op
	added, err := s.userRepo.Follow(ctx, actor.ID, shopID)
	if err != nil {
		logger.Error("[FollowShop] err userRepo.Follow", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if added {
		s.notifyFollowChange(ctx, actor.ID, shopID, true)
	}
	return nil
}

func (s *shopAppImpl) UnfollowShop(ctx context.Context, actor *model.Actor, shopID uint64) error {
	if err := authz.Authorize(actor, constant.ActionUnfollowShop); err != nil {
		return err
	}

	sh, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		logger.Error("[UnfollowShop] err shopRepo.GetByID", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if sh == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	// set remove: unfollowing a never-followed shop succeeds as a no-op
	removed, err := s.userRepo.Unfollow(ctx, actor.ID, shopID)
	if err != nil {
		logger.Error("[UnfollowShop] err userRepo.Unfollow", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if removed {
		s.notifyFollowChange(ctx, actor.ID, shopID, false)
	}
	return nil
}

func (s *shopAppImpl) RecountFollowers(ctx context.Context, shopID uint64) (int64, error) {
	count, err := s.shopRepo.CountFollowers(ctx, shopID)
	if err != nil {
		logger.Error("[RecountFollowers] err shopRepo.CountFollowers", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.redisRepo.SetFollowerCount(ctx, shopID, count); err != nil {
		logger.Error("[RecountFollowers] err redisRepo.SetFollowerCount", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	return count, nil
}

// notifyFollowChange drops the cached count and hands the event to the
// worker. Both are best effort; the membership change already committed.
func (s *shopAppImpl) notifyFollowChange(ctx context.Context, userID, shopID uint64, followed bool) {
	if err := s.redisRepo.DeleteFollowerCount(ctx, shopID); err != nil {
		logger.Warn("[notifyFollowChange] err redisRepo.DeleteFollowerCount", zap.String("error", err.Error()))
	}

	if s.publisher == nil {
		return
	}
	msg := rabbitmq.FollowEventMessage{
		UserID:     userID,
		ShopID:     shopID,
		Followed:   followed,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishFollowEvent(msg); err != nil {
		logger.Error("[notifyFollowChange] err publisher.PublishFollowEvent", zap.String("error", err.Error()))
	}
}

func (s *shopAppImpl) followerCount(ctx context.Context, shopID uint64) (int64, error) {
	count, ok, err := s.redisRepo.GetFollowerCount(ctx, shopID)
	if err != nil {
		logger.Warn("[followerCount] err redisRepo.GetFollowerCount", zap.String("error", err.Error()))
	}
	if ok {
		return count, nil
	}

	count, err = s.shopRepo.CountFollowers(ctx, shopID)
	if err != nil {
		return 0, err
	}
	if err := s.redisRepo.SetFollowerCount(ctx, shopID, count); err != nil {
		logger.Warn("[followerCount] err redisRepo.SetFollowerCount", zap.String("error", err.Error()))
	}
	return count, nil
}

func (s *shopAppImpl) productView(p *model.ProductEntity) model.ProductView {
	return model.ProductView{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		PriceWithTax: p.PriceWithTax(),
		Photo:        s.resolver.URL(p.Photo),
		Category:     p.Category,
		Description:  p.Description,
		Specs: model.ProductSpecs{
			Brand:      p.Brand,
			Unit:       p.Unit,
			Inset:      p.Inset,
			Gender:     p.Gender,
			Handedness: p.Handedness,
		},
		ShopID: p.ShopID,
	}
}
