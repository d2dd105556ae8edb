package fx

import (
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/account"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/creditcard"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/dashboard"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/recurring"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/transaction"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/user"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/middleware"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece handlers e rate limiters
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newPublicRateLimiter,
	),
)

func newHandler(
	userSvc *user.Service,
	accountSvc *account.Service,
	creditCardSvc *creditcard.Service,
	transactionSvc *transaction.Service,
	recurringSvc *recurring.Service,
	dashboardSvc *dashboard.Service,
) *routes.Handler {
	return &routes.Handler{
		UserService:        userSvc,
		AccountService:     accountSvc,
		CreditCardService:  creditCardSvc,
		TransactionService: transactionSvc,
		RecurringService:   recurringSvc,
		DashboardService:   dashboardSvc,
	}
}

func newPublicRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(100, time.Minute)
}
