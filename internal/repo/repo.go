package repo

import (
	"github.com/dmarkhas/splitmate/internal/pg"
	assignmentrepo "github.com/dmarkhas/splitmate/internal/repo/assignment-repo"
	balancerepo "github.com/dmarkhas/splitmate/internal/repo/balance-repo"
	friendrepo "github.com/dmarkhas/splitmate/internal/repo/friend-repo"
	receiptrepo "github.com/dmarkhas/splitmate/internal/repo/receipt-repo"
	transactionrepo "github.com/dmarkhas/splitmate/internal/repo/transaction-repo"
	userrepo "github.com/dmarkhas/splitmate/internal/repo/user-repo"
)

type Repositories struct {
	UserRepo        *userrepo.Repository
	BalanceRepo     *balancerepo.Repository
	ReceiptRepo     *receiptrepo.Repository
	AssignmentRepo  *assignmentrepo.Repository
	TransactionRepo *transactionrepo.Repository
	FriendRepo      *friendrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(conn),
		BalanceRepo:     balancerepo.New(conn, txManager),
		ReceiptRepo:     receiptrepo.New(conn, txManager),
		AssignmentRepo:  assignmentrepo.New(conn, txManager),
		TransactionRepo: transactionrepo.New(conn),
		FriendRepo:      friendrepo.New(conn),
	}
}
