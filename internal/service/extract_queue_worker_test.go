package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"invex/internal/domain"
	"invex/internal/service"
	"invex/mocks"
)

func TestExtractQueueWorker_PollsAndDispatches(t *testing.T) {
	docRepo := new(mocks.MockInvoiceDocumentRepo)
	svc := new(mocks.MockExtractionService)

	doc := domain.InvoiceDocument{
		ID:               uuid.New(),
		RawText:          "Supplier: Acme Corp",
		ExtractionStatus: domain.ExtractionStatusProcessing,
	}

	// First poll returns one doc, subsequent polls return empty
	docRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.InvoiceDocument{doc}, nil).Once()
	docRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.InvoiceDocument{}, nil).Maybe()

	svc.On("ExtractDocument", mock.Anything, mock.AnythingOfType("*domain.InvoiceDocument"), 3).
		Return().Maybe()

	cfg := service.ExtractQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  2,
	}
	worker := service.NewExtractQueueWorker(docRepo, svc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Wait for at least one poll cycle
	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	docRepo.AssertCalled(t, "ClaimQueued", mock.Anything, mock.AnythingOfType("int"))
	svc.AssertCalled(t, "ExtractDocument", mock.Anything, mock.AnythingOfType("*domain.InvoiceDocument"), 3)

	// The dispatched copy carries the incremented attempt counter.
	for _, call := range svc.Calls {
		if call.Method == "ExtractDocument" {
			dispatched := call.Arguments.Get(1).(*domain.InvoiceDocument)
			assert.Equal(t, 1, dispatched.ExtractAttempts)
		}
	}
}

func TestExtractQueueWorker_ClaimsAtMostConcurrency(t *testing.T) {
	docRepo := new(mocks.MockInvoiceDocumentRepo)
	svc := new(mocks.MockExtractionService)

	docRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.InvoiceDocument{}, nil).Maybe()

	cfg := service.ExtractQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  2,
	}
	worker := service.NewExtractQueueWorker(docRepo, svc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()
	<-done

	for _, call := range docRepo.Calls {
		if call.Method == "ClaimQueued" {
			limit := call.Arguments.Get(1).(int)
			assert.LessOrEqual(t, limit, cfg.Concurrency)
		}
	}
}

func TestExtractQueueWorker_CleanShutdown(t *testing.T) {
	docRepo := new(mocks.MockInvoiceDocumentRepo)
	svc := new(mocks.MockExtractionService)

	docRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.InvoiceDocument{}, nil).Maybe()

	cfg := service.ExtractQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  5,
	}
	worker := service.NewExtractQueueWorker(docRepo, svc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(120 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not shut down in time")
	}
	svc.AssertNotCalled(t, "ExtractDocument", mock.Anything, mock.Anything, mock.Anything)
}
