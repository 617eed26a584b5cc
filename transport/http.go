package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	productapp "github.com/muhammadheryan/marketplace/application/product"
	shopapp "github.com/muhammadheryan/marketplace/application/shop"
	userapp "github.com/muhammadheryan/marketplace/application/user"
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	utilsContext "github.com/muhammadheryan/marketplace/utils/context"
	"github.com/muhammadheryan/marketplace/utils/errors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp    userapp.UserApp
	ShopApp    shopapp.ShopApp
	ProductApp productapp.ProductApp
}

func NewTransport(internalAPIKey string, UserApp userapp.UserApp, ShopApp shopapp.ShopApp, ProductApp productapp.ProductApp) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		UserApp:    UserApp,
		ShopApp:    ShopApp,
		ProductApp: ProductApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// User routes
	mux.HandleFunc("/user", rh.Register).Methods(http.MethodPost)
	mux.HandleFunc("/user/login", rh.Login).Methods(http.MethodPost)
	mux.HandleFunc("/user", rh.Profile).Methods(http.MethodGet)
	mux.HandleFunc("/user/feed", rh.Feed).Methods(http.MethodGet)

	// Product routes precede /shop/{id} so the literal segment wins
	mux.HandleFunc("/shop/product", rh.ListProducts).Methods(http.MethodGet)
	mux.HandleFunc("/shop/product/{id}", rh.GetProduct).Methods(http.MethodGet)
	mux.HandleFunc("/shop/product", rh.CreateProduct).Methods(http.MethodPost)
	mux.HandleFunc("/shop/product/{id}", rh.UpdateProduct).Methods(http.MethodPut)
	mux.HandleFunc("/shop/product/{id}", rh.DeleteProduct).Methods(http.MethodDelete)

	// Shop routes
	mux.HandleFunc("/shop", rh.ListShops).Methods(http.MethodGet)
	mux.HandleFunc("/shop/{id}", rh.GetShop).Methods(http.MethodGet)
	mux.HandleFunc("/shop", rh.CreateShop).Methods(http.MethodPost)
	mux.HandleFunc("/shop/{id}", rh.UpdateShop).Methods(http.MethodPut)
	mux.HandleFunc("/shop/{id}", rh.DeleteShop).Methods(http.MethodDelete)
	mux.HandleFunc("/shop/{id}/follow", rh.FollowShop).Methods(http.MethodPost)
	mux.HandleFunc("/shop/{id}/unfollow", rh.UnfollowShop).Methods(http.MethodPost)

	// Internal routes, guarded by static API key
	internal := mux.PathPrefix("/internal").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/shop/{id}/followers/recount", rh.RecountFollowers).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(UserApp))

	return mux
}

// Register handler
// @Summary Register user
// @Description Register a new user account
// @Tags User
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.RegisterResponse
// @Failure 400 {object} errors.CustomError
// @Router /user [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCreated(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email and password and receive JWT token
// @Tags User
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} errors.CustomError
// @Router /user/login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Profile handler
// @Summary Own profile
// @Description The authenticated user's profile with followed shop ids
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ProfileResponse
// @Router /user [get]
func (s *RestHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, _ := utilsContext.GetActor(ctx)
	res, err := s.UserApp.Profile(ctx, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Feed handler
// @Summary Followed shops feed
// @Description Products of the shops the authenticated user follows
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ProductView
// @Router /user/feed [get]
func (s *RestHandler) Feed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, _ := utilsContext.GetActor(ctx)
	res, err := s.ProductApp.Feed(ctx, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListShops handler
// @Summary List shops
// @Description All shops, newest first, photos resolved to URLs
// @Tags Shop
// @Produce json
// @Success 200 {array} model.ShopListItem
// @Router /shop [get]
func (s *RestHandler) ListShops(w http.ResponseWriter, r *http.Request) {
	res, err := s.ShopApp.ListShops(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetShop handler
// @Summary Get shop
// @Description One shop with its products and follower count
// @Tags Shop
// @Produce json
// @Param id path int true "Shop ID"
// @Success 200 {object} model.ShopDetail
// @Failure 404 {object} errors.CustomError
// @Router /shop/{id} [get]
func (s *RestHandler) GetShop(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ShopApp.GetShop(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateShop handler
// @Summary Create shop
// @Description Insert a new shop, admin only
// @Tags Shop
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateShopRequest true "Create Shop Request"
// @Success 201 {object} transport.baseResponse
// @Failure 403 {object} errors.CustomError
// @Router /shop [post]
func (s *RestHandler) CreateShop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreateShopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actor, _ := utilsContext.GetActor(ctx)
	if err := s.ShopApp.CreateShop(ctx, actor, &req); err != nil {
		writeError(w, err)
		return
	}

	writeCreated(w, nil)
}

// UpdateShop handler
// @Summary Update shop
// @Description Sparse update of a shop, admin only
// @Tags Shop
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shop ID"
// @Param request body model.UpdateShopRequest true "Update Shop Request"
// @Success 200 {object} transport.baseResponse
// @Failure 404 {object} errors.CustomError
// @Router /shop/{id} [put]
func (s *RestHandler) UpdateShop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateShopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actor, _ := utilsContext.GetActor(ctx)
	if err := s.ShopApp.UpdateShop(ctx, actor, id, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// DeleteShop handler
// @Summary Delete shop
// @Description Hard delete of a shop, admin only; products are kept
// @Tags Shop
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shop ID"
// @Success 200 {object} transport.baseResponse
// @Failure 404 {object} errors.CustomError
// @Router /shop/{id} [delete]
func (s *RestHandler) DeleteShop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actor, _ := utilsContext.GetActor(ctx)
	if err := s.ShopApp.DeleteShop(ctx, actor, id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// FollowShop handler
// @Summary Follow shop
// @Description Add the shop to the authenticated user's following set
// @Tags Shop
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shop ID"
// @Success 200 {object} transport.baseResponse
// @Failure 404 {object} errors.CustomError
// @Router /shop/{id}/follow [post]
func (s *RestHandler) FollowShop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actor, _ := utilsContext.GetActor(ctx)
	if err := s.ShopApp.FollowShop(ctx, actor, id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// UnfollowShop handler
// @Summary Unfollow shop
// @Description Remove the shop from the authenticated user's following set
// @Tags Shop
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shop ID"
// @Success 200 {object} transport.baseResponse
// @Failure 404 {object} errors.CustomError
// @Router /shop/{id}/unfollow [post]
func (s *RestHandler) UnfollowShop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actor, _ := utilsContext.GetActor(ctx)
	if err := s.ShopApp.UnfollowShop(ctx, actor, id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// ListProducts handler
// @Summary List products
// @Description All products with their owning shop inlined
// @Tags Product
// @Produce json
// @Success 200 {array} model.ProductView
// @Router /shop/product [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	res, err := s.ProductApp.ListProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetProduct handler
// @Summary Get product
// @Description One product with its owning shop inlined
// @Tags Product
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.ProductView
// @Failure 404 {object} errors.CustomError
// @Router /shop/product/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ProductApp.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateProduct handler
// @Summary Create product
// @Description Insert a new product under an existing shop, admin only
// @Tags Product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateProductRequest true "Create Product Request"
// @Success 201 {object} transport.baseResponse
// @Failure 403 {object} errors.CustomError
// @Router /shop/product [post]
func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actor, _ := utilsContext.GetActor(ctx)
	if err := s.ProductApp.CreateProduct(ctx, actor, &req); err != nil {
		writeError(w, err)
		return
	}

	writeCreated(w, nil)
}

// UpdateProduct handler
// @Summary Update product
// @Description Sparse update of a product, admin only
// @Tags Product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body model.UpdateProductRequest true "Update Product Request"
// @Success 200 {object} transport.baseResponse
// @Failure 404 {object} errors.CustomError
// @Router /shop/product/{id} [put]
func (s *RestHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actor, _ := utilsContext.GetActor(ctx)
	if err := s.ProductApp.UpdateProduct(ctx, actor, id, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// DeleteProduct handler
// @Summary Delete product
// @Description Hard delete of a product, admin only
// @Tags Product
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} transport.baseResponse
// @Failure 404 {object} errors.CustomError
// @Router /shop/product/{id} [delete]
func (s *RestHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actor, _ := utilsContext.GetActor(ctx)
	if err := s.ProductApp.DeleteProduct(ctx, actor, id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// RecountFollowers recomputes a shop's redis follower count. Internal
// only, called by the follow-event worker.
func (s *RestHandler) RecountFollowers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	count, err := s.ShopApp.RecountFollowers(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, struct {
		ShopID    uint64 `json:"shop_id"`
		Followers int64  `json:"followers"`
	}{ShopID: id, Followers: count})
}

func pathID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
}
