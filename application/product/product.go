package product

import (
	"context"

	"github.com/muhammadheryan/marketplace/application/authz"
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	productrepo "github.com/muhammadheryan/marketplace/repository/product"
	shoprepo "github.com/muhammadheryan/marketplace/repository/shop"
	txrepo "github.com/muhammadheryan/marketplace/repository/tx"
	"github.com/muhammadheryan/marketplace/utils/assets"
	"github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/muhammadheryan/marketplace/utils/logger"
	validatorx "github.com/muhammadheryan/marketplace/utils/validator"
	"go.uber.org/zap"
)

type ProductApp interface {
	ListProducts(ctx context.Context) ([]model.ProductView, error)
	GetProduct(ctx context.Context, id uint64) (*model.ProductView, error)
	CreateProduct(ctx context.Context, actor *model.Actor, req *model.CreateProductRequest) error
	UpdateProduct(ctx context.Context, actor *model.Actor, id uint64, req *model.UpdateProductRequest) error
	DeleteProduct(ctx context.Context, actor *model.Actor, id uint64) error
	Feed(ctx context.Context, actor *model.Actor) ([]model.ProductView, error)
}

type productAppImpl struct {
	txRepo      txrepo.TxRepository
	shopRepo    shoprepo.ShopRepository
	productRepo productrepo.ProductRepository
	resolver    *assets.Resolver
}

func NewProductApp(txRepo txrepo.TxRepository, shopRepo shoprepo.ShopRepository, productRepo productrepo.ProductRepository, resolver *assets.Resolver) ProductApp {
	return &productAppImpl{
		txRepo:      txRepo,
		shopRepo:    shopRepo,
		productRepo: productRepo,
		resolver:    resolver,
	}
}

func (s *productAppImpl) ListProducts(ctx context.Context) ([]model.ProductView, error) {
	rows, err := s.productRepo.List(ctx)
	if err != nil {
		logger.Error("[ListProducts] err productRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	views := make([]model.ProductView, 0, len(rows))
	for i := range rows {
		views = append(views, s.view(&rows[i]))
	}
	return views, nil
}

func (s *productAppImpl) GetProduct(ctx context.Context, id uint64) (*model.ProductView, error) {
	row, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetProduct] err productRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if row == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	view := s.view(row)
	return &view, nil
}

func (s *productAppImpl) CreateProduct(ctx context.Context, actor *model.Actor, req *model.CreateProductRequest) error {
	if err := authz.Authorize(actor, constant.ActionCreateProduct); err != nil {
		return err
	}
	if err := validatorx.ValidateStruct(req); err != nil {
		return errors.SetValidationError(validatorx.Violations(err))
	}

	entity := &model.ProductEntity{
		Name:        req.Name,
		Price:       *req.Price,
		Photo:       req.Photo,
		Category:    req.Category,
		Description: req.Description,
		Brand:       req.Specs.Brand,
		Unit:        req.Specs.Unit,
		Inset:       req.Specs.Inset,
		Gender:      req.Specs.Gender,
		Handedness:  req.Specs.Handedness,
		ShopID:      req.ShopID,
	}
	if entity.Photo == "" {
		entity.Photo = constant.DefaultPhoto
	}
	if entity.Category == "" {
		entity.Category = constant.DefaultCategory
	}
	if entity.Gender == "" {
		entity.Gender = constant.DefaultGender
	}
	if entity.Handedness == "" {
		entity.Handedness = constant.DefaultHandedness
	}

	// the shop-existence check and the insert share a transaction so the
	// reference cannot dangle at creation time
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreateProduct] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	exists, err := s.shopRepo.ExistsTx(ctx, tx, req.ShopID)
	if err != nil {
		logger.Error("[CreateProduct] err shopRepo.ExistsTx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !exists {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	if _, err := s.productRepo.CreateTx(ctx, tx, entity); err != nil {
		logger.Error("[CreateProduct] err productRepo.CreateTx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreateProduct] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

func (s *productAppImpl) UpdateProduct(ctx context.Context, actor *model.Actor, id uint64, req *model.UpdateProductRequest) error {
	if err := authz.Authorize(actor, constant.ActionUpdateProduct); err != nil {
		return err
	}
	if err := validatorx.ValidateStruct(req); err != nil {
		return errors.SetValidationError(validatorx.Violations(err))
	}

	found, err := s.productRepo.Update(ctx, id, req)
	if err != nil {
		logger.Error("[UpdateProduct] err productRepo.Update", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !found {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	return nil
}

func (s *productAppImpl) DeleteProduct(ctx context.Context, actor *model.Actor, id uint64) error {
	if err := authz.Authorize(actor, constant.ActionDeleteProduct); err != nil {
		return err
	}

	removed, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		logger.Error("[DeleteProduct] err productRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !removed {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	return nil
}

func (s *productAppImpl) Feed(ctx context.Context, actor *model.Actor) ([]model.ProductView, error) {
	if actor == nil || actor.ID == 0 {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	rows, err := s.productRepo.ListFollowed(ctx, actor.ID)
	if err != nil {
		logger.Error("[Feed] err productRepo.ListFollowed", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	views := make([]model.ProductView, 0, len(rows))
	for i := range rows {
		views = append(views, s.view(&rows[i]))
	}
	return views, nil
}

// view folds a joined row into the read model. A NULL shop name means the
// shop reference dangles, so the embedded shop stays nil and its photo is
// never resolved.
func (s *productAppImpl) view(row *model.ProductWithShopRow) model.ProductView {
	v := model.ProductView{
		ID:           row.ID,
		Name:         row.Name,
		Price:        row.Price,
		PriceWithTax: row.PriceWithTax(),
		Photo:        s.resolver.URL(row.Photo),
		Category:     row.Category,
		Description:  row.Description,
		Specs: model.ProductSpecs{
			Brand:      row.Brand,
			Unit:       row.Unit,
			Inset:      row.Inset,
			Gender:     row.Gender,
			Handedness: row.Handedness,
		},
		ShopID: row.ShopID,
	}

	if row.ShopName != nil {
		shop := &model.ProductShop{
			ID:          row.ShopID,
			Name:        *row.ShopName,
			Description: row.ShopDescription,
		}
		if row.ShopPhoto != nil {
			shop.Photo = s.resolver.URL(*row.ShopPhoto)
		}
		if row.ShopLat != nil && row.ShopLng != nil {
			shop.Location = &model.Location{Lat: *row.ShopLat, Lng: *row.ShopLng}
		}
		v.Shop = shop
	}
	return v
}
