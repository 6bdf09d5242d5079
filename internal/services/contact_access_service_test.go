package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"flatmates_backend/internal/config"
	"flatmates_backend/internal/models"
	"flatmates_backend/internal/repositories"
	"flatmates_backend/internal/services/dto"
	"flatmates_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memCreditRepo honors the CreditRepository contract in memory so the
// contact gate can be driven by real goroutines without a database.
// The single mutex stands in for the transaction: check, decrement and
// log insert are indivisible, the same guarantee the SQL path gives.
type memCreditRepo struct {
	mu       sync.Mutex
	balances map[string]int
	unlocks  map[string]time.Time
	txs      []models.CreditTransaction
}

func newMemCreditRepo() *memCreditRepo {
	return &memCreditRepo{
		balances: make(map[string]int),
		unlocks:  make(map[string]time.Time),
	}
}

func unlockKey(userID, listingID string) string {
	return userID + "/" + listingID
}

func (m *memCreditRepo) GetOrCreate(_ *gorm.DB, userID string, startingBalance int) (*models.UserCredits, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := false
	if _, ok := m.balances[userID]; !ok {
		m.balances[userID] = startingBalance
		m.txs = append(m.txs, models.CreditTransaction{
			UserID:       userID,
			Amount:       startingBalance,
			BalanceAfter: startingBalance,
			Type:         models.CreditTxSignupBonus,
		})
		created = true
	}
	return &models.UserCredits{UserID: userID, Credits: m.balances[userID]}, created, nil
}

func (m *memCreditRepo) ConsumeForContact(_ *gorm.DB, userID, listingID string, cost int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.unlocks[unlockKey(userID, listingID)]; ok {
		return false, nil
	}
	before := m.balances[userID]
	if before < cost {
		return false, repositories.ErrInsufficientCredits
	}
	m.balances[userID] = before - cost
	m.unlocks[unlockKey(userID, listingID)] = time.Now()
	id := listingID
	m.txs = append(m.txs, models.CreditTransaction{
		UserID:        userID,
		Amount:        -cost,
		BalanceBefore: before,
		BalanceAfter:  before - cost,
		Type:          models.CreditTxContactUnlock,
		RelatedID:     &id,
	})
	return true, nil
}

func (m *memCreditRepo) Award(_ *gorm.DB, userID string, amount int, txType models.CreditTransactionType, description string, relatedID *string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := m.balances[userID]
	m.balances[userID] = before + amount
	m.txs = append(m.txs, models.CreditTransaction{
		UserID:        userID,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  before + amount,
		Type:          txType,
		Description:   description,
		RelatedID:     relatedID,
	})
	return before + amount, nil
}

func (m *memCreditRepo) HasAccess(_ *gorm.DB, userID, listingID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.unlocks[unlockKey(userID, listingID)]
	return ok, nil
}

func (m *memCreditRepo) FindAccessLog(_ *gorm.DB, userID, listingID string) (*models.ContactAccessLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.unlocks[unlockKey(userID, listingID)]
	if !ok {
		return nil, nil
	}
	return &models.ContactAccessLog{UserID: userID, ListingID: listingID, AccessedAt: at, CreditsUsed: 1}, nil
}

func (m *memCreditRepo) FindTransactions(_ *gorm.DB, userID string, limit, offset int) ([]models.CreditTransaction, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.CreditTransaction
	for _, tx := range m.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memCreditRepo) balance(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[userID]
}

func (m *memCreditRepo) countUnlockTxs(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, tx := range m.txs {
		if tx.UserID == userID && tx.Type == models.CreditTxContactUnlock {
			n++
		}
	}
	return n
}

type memListingRepo struct {
	repositories.ListingRepository
	listings map[string]*models.FlatListing
}

func (m *memListingRepo) FindByID(_ *gorm.DB, id string) (*models.FlatListing, error) {
	if l, ok := m.listings[id]; ok {
		return l, nil
	}
	return nil, repositories.ErrListingNotFound
}

type memUserRepo struct {
	repositories.UserRepository
	users map[string]*models.User
}

func (m *memUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

type gateFixture struct {
	svc     ContactAccessService
	credits *memCreditRepo
	viewer  *models.User
	owner   *models.User
}

func newGateFixture(t *testing.T, startingBalance int, listings ...*models.FlatListing) *gateFixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.Credits.StartingBalance = startingBalance
	cfg.Credits.ReferralReward = 3
	cfg.Credits.ContactCost = 1

	owner := &models.User{
		BaseModel: models.BaseModel{ID: "owner-1"},
		Email:     "owner@example.com",
		Profile:   &models.Profile{FullName: "Listing Owner", PhoneNumber: "+77001112233"},
	}
	viewer := &models.User{
		BaseModel: models.BaseModel{ID: "viewer-1"},
		Email:     "viewer@example.com",
	}

	listingRepo := &memListingRepo{listings: make(map[string]*models.FlatListing)}
	for _, l := range listings {
		l.OwnerID = owner.ID
		listingRepo.listings[l.ID] = l
	}
	userRepo := &memUserRepo{users: map[string]*models.User{owner.ID: owner, viewer.ID: viewer}}

	credits := newMemCreditRepo()
	credits.balances[viewer.ID] = startingBalance

	return &gateFixture{
		svc:     NewContactAccessService(credits, listingRepo, userRepo, cfg),
		credits: credits,
		viewer:  viewer,
		owner:   owner,
	}
}

func activeListing(id string) *models.FlatListing {
	return &models.FlatListing{
		BaseModel:    models.BaseModel{ID: id},
		Title:        "Room near metro",
		Status:       models.ListingStatusActive,
		ContactPhone: true,
		ContactEmail: true,
	}
}

func TestUnlockContact_ConcurrentRequestsChargeOnce(t *testing.T) {
	listing := activeListing("listing-1")
	fx := newGateFixture(t, 10, listing)

	const workers = 25
	results := make([]*dto.UnlockContactResponse, workers)
	errs := make([]error, workers)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i], errs[i] = fx.svc.UnlockContact(nil, fx.viewer.ID, listing.ID)
		}(i)
	}
	close(start)
	wg.Wait()

	charged := 0
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		assert.Equal(t, "Listing Owner", results[i].Contact.OwnerName)
		assert.Equal(t, "+77001112233", results[i].Contact.PhoneNumber)
		if results[i].Charged {
			charged++
			assert.Equal(t, 1, results[i].CreditsCharged)
		} else {
			assert.Equal(t, 0, results[i].CreditsCharged)
		}
	}

	assert.Equal(t, 1, charged, "exactly one request pays for the pair")
	assert.Equal(t, 9, fx.credits.balance(fx.viewer.ID))
	assert.Equal(t, 1, fx.credits.countUnlockTxs(fx.viewer.ID))

	has, err := fx.credits.HasAccess(nil, fx.viewer.ID, listing.ID)
	require.NoError(t, err)
	assert.True(t, has)
}

type failingAccessCheckRepo struct {
	*memCreditRepo
}

func (f *failingAccessCheckRepo) HasAccess(_ *gorm.DB, _, _ string) (bool, error) {
	return false, errors.New("connection reset by peer")
}

func TestUnlockContact_InactiveListingStoreErrorIsRetryable(t *testing.T) {
	listing := activeListing("listing-closed")
	listing.Status = models.ListingStatusRented
	fx := newGateFixture(t, 10, listing)

	cfg := &config.Config{}
	cfg.Credits.StartingBalance = 10
	cfg.Credits.ContactCost = 1
	listingRepo := &memListingRepo{listings: map[string]*models.FlatListing{listing.ID: listing}}
	userRepo := &memUserRepo{users: map[string]*models.User{fx.owner.ID: fx.owner, fx.viewer.ID: fx.viewer}}
	svc := NewContactAccessService(&failingAccessCheckRepo{fx.credits}, listingRepo, userRepo, cfg)

	_, err := svc.UnlockContact(nil, fx.viewer.ID, listing.ID)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeDatabaseError, appErr.Code)
}

func TestUnlockContact_ConcurrentRequestsRespectBalanceFloor(t *testing.T) {
	first := activeListing("listing-a")
	second := activeListing("listing-b")
	fx := newGateFixture(t, 1, first, second)

	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make([]error, 2)
	for i, listingID := range []string{first.ID, second.ID} {
		wg.Add(1)
		go func(i int, listingID string) {
			defer wg.Done()
			<-start
			_, errs[i] = fx.svc.UnlockContact(nil, fx.viewer.ID, listingID)
		}(i, listingID)
	}
	close(start)
	wg.Wait()

	succeeded, rejected := 0, 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.True(t, errors.Is(err, apperrors.ErrInsufficientCredits), "unexpected error: %v", err)
		rejected++
	}

	assert.Equal(t, 1, succeeded, "the single credit covers one unlock")
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 0, fx.credits.balance(fx.viewer.ID))
	assert.Equal(t, 1, fx.credits.countUnlockTxs(fx.viewer.ID))
}
