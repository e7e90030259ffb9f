package handlers

import (
	"net/http"

	_ "github.com/dmarkhas/splitmate/docs"
	authhandlers "github.com/dmarkhas/splitmate/internal/handlers/auth"
	balancehandlers "github.com/dmarkhas/splitmate/internal/handlers/balance"
	claimhandlers "github.com/dmarkhas/splitmate/internal/handlers/claims"
	friendhandlers "github.com/dmarkhas/splitmate/internal/handlers/friends"
	paymenthandlers "github.com/dmarkhas/splitmate/internal/handlers/payments"
	receipthandlers "github.com/dmarkhas/splitmate/internal/handlers/receipts"
	"github.com/dmarkhas/splitmate/internal/service"
	"github.com/dmarkhas/splitmate/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Deposit(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
}

type ReceiptHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	Decline(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	Completed(w http.ResponseWriter, r *http.Request)
}

type ClaimHandler interface {
	Claim(w http.ResponseWriter, r *http.Request)
	Unclaim(w http.ResponseWriter, r *http.Request)
	GetOwed(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Pay(w http.ResponseWriter, r *http.Request)
	Transactions(w http.ResponseWriter, r *http.Request)
}

type FriendHandler interface {
	SendRequest(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	Decline(w http.ResponseWriter, r *http.Request)
	ListFriends(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	BalanceHandler BalanceHandler
	ReceiptHandler ReceiptHandler
	ClaimHandler   ClaimHandler
	PaymentHandler PaymentHandler
	FriendHandler  FriendHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		BalanceHandler: balancehandlers.New(s.LedgerService),
		ReceiptHandler: receipthandlers.New(s.ReceiptService),
		ClaimHandler:   claimhandlers.New(s.ClaimService),
		PaymentHandler: paymenthandlers.New(s.SettlementService),
		FriendHandler:  friendhandlers.New(s.FriendService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", h.AuthHandler.Register)
			r.Post("/login", h.AuthHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.AuthMiddleware)
				r.Route("/balance", func(r chi.Router) {
					r.Get("/", h.BalanceHandler.GetBalance)
					r.Get("/history", h.BalanceHandler.GetHistory)
					r.Post("/deposit", h.BalanceHandler.Deposit)
					r.Post("/withdraw", h.BalanceHandler.Withdraw)
				})
				r.Get("/transactions", h.PaymentHandler.Transactions)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Route("/receipts", func(r chi.Router) {
				r.Post("/", h.ReceiptHandler.Create)
				r.Get("/pending", h.ReceiptHandler.Pending)
				r.Get("/history", h.ReceiptHandler.Completed)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.ReceiptHandler.Get)
					r.Post("/accept", h.ReceiptHandler.Accept)
					r.Post("/decline", h.ReceiptHandler.Decline)
					r.Get("/owed", h.ClaimHandler.GetOwed)
					r.Post("/pay", h.PaymentHandler.Pay)
					r.Route("/items/{itemID}", func(r chi.Router) {
						r.Post("/claim", h.ClaimHandler.Claim)
						r.Delete("/claim", h.ClaimHandler.Unclaim)
					})
				})
			})
			r.Route("/friends", func(r chi.Router) {
				r.Get("/", h.FriendHandler.ListFriends)
				r.Post("/requests", h.FriendHandler.SendRequest)
				r.Post("/requests/{id}/accept", h.FriendHandler.Accept)
				r.Post("/requests/{id}/decline", h.FriendHandler.Decline)
			})
		})
	})

	return r
}
