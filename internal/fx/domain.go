package fx

import (
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/account"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/creditcard"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/dashboard"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/recurring"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/shared"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/transaction"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/user"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/infrastructure"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newUserService,
		newUserServiceAdapter,
		newTokenVerifier,
		newUserCheckerService,
		newAccountService,
		newCreditCardService,
		newTransactionService,
		newRecurringService,
		newPendingGenerator,
		newDashboardService,
	),
)

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newUserServiceAdapter(userSvc *user.Service) *user.UserServiceAdapter {
	return user.NewUserServiceAdapter(userSvc)
}

func newTokenVerifier(adapter *user.UserServiceAdapter) shared.TokenVerifier {
	return adapter
}

func newUserCheckerService(adapter *user.UserServiceAdapter) *shared.UserCheckerService {
	return shared.NewUserCheckerService(adapter)
}

func newAccountService(
	repo *infrastructure.AccountRepository,
	userChecker *shared.UserCheckerService,
) *account.Service {
	return account.NewService(repo, userChecker)
}

func newCreditCardService(
	repo *infrastructure.CreditCardRepository,
	userChecker *shared.UserCheckerService,
) *creditcard.Service {
	return creditcard.NewService(repo, userChecker)
}

func newTransactionService(
	repo *infrastructure.TransactionRepository,
	accountRepo *infrastructure.AccountRepository,
	cardRepo *infrastructure.CreditCardRepository,
	accountSvc *account.Service,
	cardSvc *creditcard.Service,
	userChecker *shared.UserCheckerService,
) *transaction.Service {
	return transaction.NewService(repo, accountRepo, cardRepo, accountSvc, cardSvc, userChecker)
}

func newRecurringService(
	repo *infrastructure.RecurringRepository,
	transactionSvc *transaction.Service,
	userChecker *shared.UserCheckerService,
) *recurring.Service {
	return recurring.NewService(repo, transactionSvc, userChecker)
}

func newPendingGenerator(recurringSvc *recurring.Service) shared.PendingGenerator {
	return recurringSvc
}

func newDashboardService(
	repo *infrastructure.DashboardRepository,
	generator shared.PendingGenerator,
	userChecker *shared.UserCheckerService,
) *dashboard.Service {
	return dashboard.NewService(repo, generator, userChecker)
}
