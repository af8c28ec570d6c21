package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"review-pool.com/review-pool/internal/chain"
	"review-pool.com/review-pool/internal/constants"
	"review-pool.com/review-pool/internal/metrics"
	model "review-pool.com/review-pool/internal/models"
	"review-pool.com/review-pool/internal/payments"
	repository "review-pool.com/review-pool/internal/repositories"
)

const unitPrice = constants.DefaultUnitPrice

var treasury = newAddress()

// fakeChain stands in for the chain RPC: references resolve to whatever
// transfer the test registered.
type fakeChain struct {
	mu        sync.Mutex
	transfers map[string]chain.Transfer
}

func newFakeChain() *fakeChain {
	return &fakeChain{transfers: make(map[string]chain.Transfer)}
}

func (f *fakeChain) pay(sender string, amount int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	ref := uuid.NewString()
	f.transfers[ref] = chain.Transfer{Reference: ref, Sender: sender, Destination: treasury, NetAmount: amount}
	return ref
}

func (f *fakeChain) LookupTransfer(ctx context.Context, reference string, accountIndex int) (chain.Transfer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.transfers[reference]
	if !ok {
		return chain.Transfer{}, chain.ErrTransferNotFound
	}
	return t, nil
}

type testEnv struct {
	db      *gorm.DB
	store   *repository.Store
	chain   *fakeChain
	service *SettlementService
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	store := repository.NewStore(db)
	fc := newFakeChain()

	log := logrus.New()
	log.SetOutput(io.Discard)

	service := NewSettlementService(store, payments.NewVerifier(fc), treasury, unitPrice, metrics.Nop(), log)
	return &testEnv{db: db, store: store, chain: fc, service: service}
}

func newAddress() string {
	return solana.NewWallet().PublicKey().String()
}

// fundedTask registers a requester and funds a task with the given amount
// and two options.
func (e *testEnv) fundedTask(t *testing.T, amount int64) (*model.Task, string) {
	t.Helper()
	ctx := context.Background()

	requester := newAddress()
	_, err := e.service.EnsureRequester(ctx, requester)
	require.NoError(t, err)

	task, err := e.service.FundTask(ctx, FundTaskRequest{
		RequesterAddress: requester,
		PaymentRef:       e.chain.pay(requester, amount),
		Amount:           amount,
		Options:          []string{"https://img.example/a.png", "https://img.example/b.png"},
	})
	require.NoError(t, err)
	return task, requester
}

func (e *testEnv) worker(t *testing.T) string {
	t.Helper()
	address := newAddress()
	_, err := e.service.EnsureWorker(context.Background(), address)
	require.NoError(t, err)
	return address
}

func (e *testEnv) submissionCount(t *testing.T, taskID string) int64 {
	t.Helper()
	count, err := e.store.Submissions.CountByTask(context.Background(), taskID)
	require.NoError(t, err)
	return count
}
