package handlers

import (
	"time"

	"backoffice/internal/notify"
	"backoffice/internal/repos"
	"backoffice/internal/services"
)

type Deps struct {
	AuthSvc          *services.AuthService
	AuthHandler      *AuthHandler
	DashboardHandler *DashboardHandler
	ProductHandler   *ProductHandler
	OrderHandler     *OrderHandler
	UserHandler      *UserHandler
	PublicHandler    *PublicHandler
}

func NewDeps(s *repos.Store, authSvc *services.AuthService, n notify.Notifier, now func() time.Time) *Deps {
	dashSvc := services.NewDashboardService(s.Products, s.Orders, s.Users, now)
	orderSvc := services.NewOrderService(s.Orders, s.Products, n)
	catalogSvc := services.NewCatalogService(s.Products)

	return &Deps{
		AuthSvc:          authSvc,
		AuthHandler:      &AuthHandler{Auth: authSvc},
		DashboardHandler: &DashboardHandler{Dashboard: dashSvc},
		ProductHandler:   &ProductHandler{Products: s.Products},
		OrderHandler:     &OrderHandler{Orders: orderSvc},
		UserHandler:      &UserHandler{Users: s.Users},
		PublicHandler:    &PublicHandler{Catalog: catalogSvc},
	}
}
