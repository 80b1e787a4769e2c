package services

import (
	"context"
	"strings"
	"sync"

	"storefront/internal/models"
	"storefront/internal/repositories/interfaces"
	"storefront/internal/utils"
	"storefront/pkg/events"
	"storefront/pkg/maps"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakePromoRepo struct {
	mu          sync.Mutex
	byID        map[primitive.ObjectID]*models.PromoCode
	redemptions map[primitive.ObjectID]*models.PromoRedemption
	lookupErr   error
}

func newFakePromoRepo(promos ...*models.PromoCode) *fakePromoRepo {
	r := &fakePromoRepo{
		byID:        map[primitive.ObjectID]*models.PromoCode{},
		redemptions: map[primitive.ObjectID]*models.PromoRedemption{},
	}
	for _, p := range promos {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakePromoRepo) Create(_ context.Context, promo *models.PromoCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.Code == promo.Code {
			return interfaces.ErrDuplicateCode
		}
	}
	promo.ID = primitive.NewObjectID()
	cp := *promo
	r.byID[promo.ID] = &cp
	return nil
}

func (r *fakePromoRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.PromoCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePromoRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if v, ok := updates["discount_value"].(float64); ok {
		p.DiscountValue = v
	}
	if v, ok := updates["code"].(string); ok {
		p.Code = v
	}
	if v, ok := updates["is_active"].(bool); ok {
		p.IsActive = v
	}
	return nil
}

func (r *fakePromoRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakePromoRepo) List(context.Context, *utils.PaginationParams) ([]*models.PromoCode, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.PromoCode, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePromoRepo) GetByCode(_ context.Context, code string) (*models.PromoCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	code = strings.ToUpper(code)
	for _, p := range r.byID {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakePromoRepo) IncrementUsage(_ context.Context, id primitive.ObjectID) (*models.PromoCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	if p.UsageLimit != nil && p.UsedCount >= *p.UsageLimit {
		return nil, interfaces.ErrUsageLimitReached
	}
	p.UsedCount++
	cp := *p
	return &cp, nil
}

func (r *fakePromoRepo) RecordRedemption(_ context.Context, redemption *models.PromoRedemption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.redemptions {
		if existing.PromoCodeID == redemption.PromoCodeID && existing.OrderID == redemption.OrderID {
			return interfaces.ErrAlreadyRedeemed
		}
	}
	redemption.ID = primitive.NewObjectID()
	r.redemptions[redemption.ID] = redemption
	return nil
}

func (r *fakePromoRepo) DeleteRedemption(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.redemptions, id)
	return nil
}

func (r *fakePromoRepo) ListRedemptions(_ context.Context, promoID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.PromoRedemption, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.PromoRedemption, 0)
	for _, red := range r.redemptions {
		if red.PromoCodeID == promoID {
			out = append(out, red)
		}
	}
	return out, int64(len(out)), nil
}

// forceLimit makes the next IncrementUsage lose a race against another redemption.
func (r *fakePromoRepo) forceLimit(id primitive.ObjectID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	limit := r.byID[id].UsedCount
	r.byID[id].UsageLimit = &limit
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type fakeStoreRepo struct {
	stores      []*models.Store
	boundsCalls []utils.Bounds
	lastCityArg string
}

func (r *fakeStoreRepo) Create(_ context.Context, store *models.Store) error {
	store.ID = primitive.NewObjectID()
	r.stores = append(r.stores, store)
	return nil
}

func (r *fakeStoreRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Store, error) {
	for _, s := range r.stores {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeStoreRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	for _, s := range r.stores {
		if s.ID == id {
			if v, ok := updates["name"].(string); ok {
				s.Name = v
			}
			return nil
		}
	}
	return interfaces.ErrNotFound
}

func (r *fakeStoreRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, s := range r.stores {
		if s.ID == id {
			r.stores = append(r.stores[:i], r.stores[i+1:]...)
			return nil
		}
	}
	return interfaces.ErrNotFound
}

func (r *fakeStoreRepo) List(context.Context, *utils.PaginationParams) ([]*models.Store, int64, error) {
	return r.stores, int64(len(r.stores)), nil
}

func (r *fakeStoreRepo) ListActiveInBounds(_ context.Context, bounds utils.Bounds) ([]*models.Store, error) {
	r.boundsCalls = append(r.boundsCalls, bounds)
	out := make([]*models.Store, 0)
	for _, s := range r.stores {
		c := s.Coordinate()
		if !s.IsActive || c == nil {
			continue
		}
		if c.Lat >= bounds.Southwest.Lat && c.Lat <= bounds.Northeast.Lat &&
			c.Lng >= bounds.Southwest.Lng && c.Lng <= bounds.Northeast.Lng {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStoreRepo) ListActiveByCity(_ context.Context, city string) ([]*models.Store, error) {
	r.lastCityArg = city
	out := make([]*models.Store, 0)
	for _, s := range r.stores {
		if s.IsActive && strings.EqualFold(s.City, city) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products []*models.Product
	stores   *fakeStoreRepo
}

func (r *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	r.products = append(r.products, product)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeProductRepo) Update(context.Context, primitive.ObjectID, map[string]interface{}) error {
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return interfaces.ErrNotFound
}

func (r *fakeProductRepo) ListByStore(_ context.Context, storeID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Product, int64, error) {
	out := make([]*models.Product, 0)
	for _, p := range r.products {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) ListActiveByStores(_ context.Context, storeIDs []primitive.ObjectID) ([]*models.Product, error) {
	wanted := map[primitive.ObjectID]bool{}
	for _, id := range storeIDs {
		wanted[id] = true
	}

	out := make([]*models.Product, 0)
	for _, p := range r.products {
		if !p.IsActive || !wanted[p.StoreID] {
			continue
		}
		joined := *p
		joined.Store, _ = r.stores.GetByID(context.Background(), p.StoreID)
		out = append(out, &joined)
	}
	return out, nil
}

type fakeGeocoder struct {
	response *maps.GeocodeResponse
	err      error
}

func (g *fakeGeocoder) Geocode(context.Context, string) (*maps.GeocodeResponse, error) {
	return g.response, g.err
}

func (g *fakeGeocoder) ReverseGeocode(context.Context, float64, float64) (*maps.GeocodeResponse, error) {
	return g.response, g.err
}
