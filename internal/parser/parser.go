package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmarkhas/splitmate/internal/config"
	"github.com/dmarkhas/splitmate/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dmarkhas/splitmate/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

var processingReceipts sync.Map

type ItemResponse struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category,omitempty"`
}

type Response struct {
	MerchantName string         `json:"merchant_name"`
	TotalAmount  float64        `json:"total_amount"`
	TipAmount    float64        `json:"tip_amount,omitempty"`
	TaxAmount    float64        `json:"tax_amount,omitempty"`
	Items        []ItemResponse `json:"items"`
}

type ReceiptRepo interface {
	FindUnparsed(ctx context.Context, limit int) ([]domain.Receipt, error)
	AddItems(ctx context.Context, receiptID int64, items []domain.ReceiptItem) error
	UpdateFinancials(ctx context.Context, receiptID int64, merchantName string, total, tip, tax float64) error
}

type Service struct {
	url            string
	receiptRepo    ReceiptRepo
	client         clients.HTTPClientI
	limit          uint32
	workerPool     WorkerPoolI
	updateInterval time.Duration
}

func New(cfg *config.Config, receiptRepo ReceiptRepo, client clients.HTTPClientI) *Service {
	return &Service{
		url:            cfg.ParserAddress,
		receiptRepo:    receiptRepo,
		client:         client,
		limit:          1000,
		workerPool:     NewWorkerPool(10),
		updateInterval: time.Second * 5,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Receipt parser service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping parser service")
			return
		case <-ticker.C:
			s.processReceipts(ctx)
		}
	}
}

func (s *Service) processReceipts(ctx context.Context) {
	receipts, err := s.receiptRepo.FindUnparsed(ctx, int(atomic.LoadUint32(&s.limit)))
	if err != nil {
		zap.L().Error("Failed to fetch receipts for parsing", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, receipt := range receipts {
		receipt := receipt

		if _, loaded := processingReceipts.LoadOrStore(receipt.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer processingReceipts.Delete(receipt.ID)
				return s.handleReceipt(ctx, receipt)
			})
			if err != nil {
				processingReceipts.Delete(receipt.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error processing receipts", zap.Error(err))
	}
}

func (s *Service) handleReceipt(ctx context.Context, receipt domain.Receipt) error {
	requestURL := s.url + "/api/parse?image_url=" + url.QueryEscape(receipt.ImageURL)
	var err error
	var statusCode int
	var respBody []byte
	var respHeaders http.Header

	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			statusCode, respBody, respHeaders, err = s.client.Get(requestURL, nil)
			if err != nil {
				if attempt < maxRetries {
					time.Sleep(retryInterval * time.Duration(attempt))
					continue
				}
				return fmt.Errorf("failed to parse receipt %d after %d retries: %w", receipt.ID, maxRetries, err)
			}

			switch statusCode {
			case http.StatusTooManyRequests:
				s.waitForRateLimit(receipt, respHeaders, attempt)
				continue
			case http.StatusNoContent:
				zap.L().Warn("Receipt not yet processed by parser, retrying", zap.Int64("receipt", receipt.ID), zap.Int("attempt", attempt))
				if attempt < maxRetries {
					time.Sleep(retryInterval * time.Duration(attempt))
					continue
				}
				return fmt.Errorf("receipt %d still unprocessed after %d retries", receipt.ID, maxRetries)

			case http.StatusOK:
				return s.applyParseResult(ctx, receipt, respBody)

			default:
				zap.L().Error("Unexpected status code from parser", zap.Int("status", statusCode), zap.Int64("receipt", receipt.ID))
				return errors.New("unexpected status code")
			}
		}
	}
	return nil
}

func (s *Service) applyParseResult(ctx context.Context, receipt domain.Receipt, respBody []byte) error {
	var response Response
	if err := json.Unmarshal(respBody, &response); err != nil {
		return fmt.Errorf("failed to parse response body: %w", err)
	}

	if len(response.Items) == 0 {
		zap.L().Warn("Parser returned no items", zap.Int64("receipt", receipt.ID))
		return nil
	}

	items := make([]domain.ReceiptItem, len(response.Items))
	for i, item := range response.Items {
		items[i] = domain.ReceiptItem{
			ReceiptID: receipt.ID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Category:  item.Category,
		}
	}
	if err := s.receiptRepo.AddItems(ctx, receipt.ID, items); err != nil {
		return fmt.Errorf("failed to store parsed items for receipt %d: %w", receipt.ID, err)
	}

	total := response.TotalAmount
	if total == 0 {
		total = receipt.TotalAmount
	}
	if err := s.receiptRepo.UpdateFinancials(ctx, receipt.ID, response.MerchantName, total, response.TipAmount, response.TaxAmount); err != nil {
		return fmt.Errorf("failed to update receipt %d financials: %w", receipt.ID, err)
	}

	zap.L().Info("Receipt parsed", zap.Int64("receipt", receipt.ID), zap.Int("items", len(items)))
	return nil
}

func (s *Service) waitForRateLimit(receipt domain.Receipt, respHeaders http.Header, attempt int) {
	retryAfterHeader := respHeaders.Get("Retry-After")
	retryAfter := retryInterval * time.Duration(attempt)

	if retryAfterHeader != "" {
		if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	zap.L().Warn(
		"Rate limit detected, retrying",
		zap.Int64("receipt", receipt.ID),
		zap.Int("attempt", attempt),
		zap.Duration("retryAfter", retryAfter),
	)
	time.Sleep(retryAfter)
}
