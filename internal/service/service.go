package service

import (
	"github.com/dmarkhas/splitmate/internal/handlers/auth"
	"github.com/dmarkhas/splitmate/internal/handlers/balance"
	"github.com/dmarkhas/splitmate/internal/handlers/claims"
	"github.com/dmarkhas/splitmate/internal/handlers/friends"
	"github.com/dmarkhas/splitmate/internal/handlers/payments"
	"github.com/dmarkhas/splitmate/internal/handlers/receipts"

	pkgauth "github.com/dmarkhas/splitmate/pkg/auth"

	"github.com/dmarkhas/splitmate/internal/notification"
	"github.com/dmarkhas/splitmate/internal/repo"
	"github.com/dmarkhas/splitmate/internal/service/authservice"
	"github.com/dmarkhas/splitmate/internal/service/claimservice"
	"github.com/dmarkhas/splitmate/internal/service/friendservice"
	"github.com/dmarkhas/splitmate/internal/service/ledgerservice"
	"github.com/dmarkhas/splitmate/internal/service/receiptservice"
	"github.com/dmarkhas/splitmate/internal/service/settlementservice"
)

type Services struct {
	AuthService       auth.Service
	LedgerService     balance.Service
	ReceiptService    receipts.Service
	ClaimService      claims.Service
	SettlementService payments.Service
	FriendService     friends.Service
}

func New(repo *repo.Repositories, hub *notification.Hub) *Services {
	ledgerService := ledgerservice.New(repo.BalanceRepo)
	claimService := claimservice.New(repo.AssignmentRepo, repo.ReceiptRepo)
	receiptService := receiptservice.New(repo.ReceiptRepo, hub)
	settlementService := settlementservice.New(claimService, ledgerService, repo.ReceiptRepo, repo.TransactionRepo, hub)
	friendService := friendservice.New(repo.FriendRepo, repo.UserRepo)
	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, &pkgauth.JWTService{})

	return &Services{
		AuthService:       authService,
		LedgerService:     ledgerService,
		ReceiptService:    receiptService,
		ClaimService:      claimService,
		SettlementService: settlementService,
		FriendService:     friendService,
	}
}
