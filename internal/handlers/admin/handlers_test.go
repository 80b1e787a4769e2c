package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories/interfaces"
	"storefront/internal/services"
	"storefront/internal/utils"
	"storefront/internal/validators"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakePromos struct {
	services.PromoService
	created   *models.PromoCode
	createErr error
	updateReq *validators.PromoCodeUpdateRequest
	promos    map[primitive.ObjectID]*models.PromoCode
}

func (f *fakePromos) CreatePromoCode(ctx context.Context, promo *models.PromoCode) error {
	if f.createErr != nil {
		return f.createErr
	}
	promo.ID = primitive.NewObjectID()
	f.created = promo
	return nil
}

func (f *fakePromos) GetPromoCode(ctx context.Context, id primitive.ObjectID) (*models.PromoCode, error) {
	promo, ok := f.promos[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return promo, nil
}

func (f *fakePromos) UpdatePromoCode(ctx context.Context, id primitive.ObjectID, req *validators.PromoCodeUpdateRequest) (*models.PromoCode, error) {
	promo, ok := f.promos[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	f.updateReq = req
	req.ApplyTo(promo)
	return promo, nil
}

func (f *fakePromos) DeletePromoCode(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.promos[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(f.promos, id)
	return nil
}

func (f *fakePromos) ListPromoCodes(ctx context.Context, params *utils.PaginationParams) ([]*models.PromoCode, int64, error) {
	list := make([]*models.PromoCode, 0, len(f.promos))
	for _, p := range f.promos {
		list = append(list, p)
	}
	return list, int64(len(list)), nil
}

func (f *fakePromos) ListRedemptions(ctx context.Context, id primitive.ObjectID, params *utils.PaginationParams) ([]*models.PromoRedemption, int64, error) {
	return []*models.PromoRedemption{{PromoCodeID: id, OrderID: "order-1"}}, 1, nil
}

type fakeStores struct {
	services.StoreService
	created        *models.Store
	product        *models.Product
	productErr     error
	productsFor    primitive.ObjectID
	deletedProduct primitive.ObjectID
}

func (f *fakeStores) CreateStore(ctx context.Context, store *models.Store) error {
	store.ID = primitive.NewObjectID()
	f.created = store
	return nil
}

func (f *fakeStores) GetStore(ctx context.Context, id primitive.ObjectID) (*models.Store, error) {
	return nil, interfaces.ErrNotFound
}

func (f *fakeStores) CreateProduct(ctx context.Context, product *models.Product) error {
	if f.productErr != nil {
		return f.productErr
	}
	f.product = product
	return nil
}

func (f *fakeStores) ListStoreProducts(ctx context.Context, storeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Product, int64, error) {
	f.productsFor = storeID
	return []*models.Product{}, 0, nil
}

func (f *fakeStores) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	f.deletedProduct = id
	return nil
}

func newRouter(promos services.PromoService, stores services.StoreService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ph := NewPromoCodeHandler(promos, logger.NewNop())
	sh := NewStoreHandler(stores, logger.NewNop())

	r.POST("/promo-codes", ph.Create)
	r.GET("/promo-codes", ph.List)
	r.GET("/promo-codes/:id", ph.Get)
	r.PUT("/promo-codes/:id", ph.Update)
	r.DELETE("/promo-codes/:id", ph.Delete)
	r.GET("/promo-codes/:id/redemptions", ph.Redemptions)

	r.POST("/stores", sh.CreateStore)
	r.GET("/stores/:id", sh.GetStore)
	r.POST("/products", sh.CreateProduct)
	r.GET("/products/store/:store_id", sh.ListStoreProducts)
	r.DELETE("/products/:id", sh.DeleteProduct)
	return r
}

func perform(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp utils.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON %q: %v", w.Body.String(), err)
	}
	if resp.Error == nil {
		return ""
	}
	return resp.Error.Code
}

func TestCreatePromoCodeUppercasesCode(t *testing.T) {
	promos := &fakePromos{}
	r := newRouter(promos, &fakeStores{})

	w := perform(r, http.MethodPost, "/promo-codes", map[string]interface{}{
		"code":           "save10",
		"discount_type":  "percentage",
		"discount_value": 10,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if promos.created == nil || promos.created.Code != "SAVE10" || !promos.created.IsActive {
		t.Fatalf("created = %+v", promos.created)
	}
}

func TestCreatePromoCodeValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"unknown type", map[string]interface{}{"code": "SAVE10", "discount_type": "bogus", "discount_value": 10}},
		{"bad code", map[string]interface{}{"code": "no spaces", "discount_type": "fixed", "discount_value": 10}},
		{"zero value", map[string]interface{}{"code": "SAVE10", "discount_type": "fixed", "discount_value": 0}},
		{"negative limit", map[string]interface{}{"code": "SAVE10", "discount_type": "fixed", "discount_value": 5, "usage_limit": -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promos := &fakePromos{}
			w := perform(newRouter(promos, &fakeStores{}), http.MethodPost, "/promo-codes", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
			}
			if code := errorCode(t, w); code != "VALIDATION_ERROR" {
				t.Fatalf("code = %q", code)
			}
			if promos.created != nil {
				t.Fatal("service should not be called")
			}
		})
	}
}

func TestCreatePromoCodeServiceErrors(t *testing.T) {
	body := map[string]interface{}{"code": "SAVE10", "discount_type": "percentage", "discount_value": 10}

	w := perform(newRouter(&fakePromos{createErr: interfaces.ErrDuplicateCode}, &fakeStores{}), http.MethodPost, "/promo-codes", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d", w.Code)
	}

	verrs := validators.ValidationErrors{{Field: "discount_value", Message: "discount_value must be at most 100 for percentage codes"}}
	w = perform(newRouter(&fakePromos{createErr: verrs}, &fakeStores{}), http.MethodPost, "/promo-codes", body)
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "VALIDATION_ERROR" {
		t.Fatalf("validation status = %d body=%s", w.Code, w.Body.String())
	}
}

func TestPromoCodeLifecycle(t *testing.T) {
	id := primitive.NewObjectID()
	promos := &fakePromos{promos: map[primitive.ObjectID]*models.PromoCode{
		id: {ID: id, Code: "SAVE10", DiscountType: models.DiscountTypePercentage, DiscountValue: 10, IsActive: true},
	}}
	r := newRouter(promos, &fakeStores{})
	path := "/promo-codes/" + id.Hex()

	if w := perform(r, http.MethodGet, path, nil); w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w := perform(r, http.MethodPut, path, map[string]interface{}{"is_active": false})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d body=%s", w.Code, w.Body.String())
	}
	if promos.updateReq == nil || promos.updateReq.IsActive == nil || *promos.updateReq.IsActive {
		t.Fatalf("update request = %+v", promos.updateReq)
	}

	if w := perform(r, http.MethodGet, path+"/redemptions", nil); w.Code != http.StatusOK {
		t.Fatalf("redemptions status = %d", w.Code)
	}

	if w := perform(r, http.MethodDelete, path, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}

	w = perform(r, http.MethodGet, path, nil)
	if w.Code != http.StatusNotFound || errorCode(t, w) != "NOT_FOUND" {
		t.Fatalf("get after delete status = %d", w.Code)
	}
}

func TestPromoCodeInvalidID(t *testing.T) {
	w := perform(newRouter(&fakePromos{}, &fakeStores{}), http.MethodGet, "/promo-codes/not-an-id", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestListPromoCodesPagination(t *testing.T) {
	id := primitive.NewObjectID()
	promos := &fakePromos{promos: map[primitive.ObjectID]*models.PromoCode{id: {ID: id, Code: "A1B"}}}

	w := perform(newRouter(promos, &fakeStores{}), http.MethodGet, "/promo-codes?page=1&page_size=5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp utils.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Meta == nil || resp.Meta.Pagination == nil || resp.Meta.Pagination.Total != 1 || resp.Meta.Pagination.PageSize != 5 {
		t.Fatalf("meta = %+v", resp.Meta)
	}
}

func TestCreateStoreRequiresPairedCoordinates(t *testing.T) {
	stores := &fakeStores{}
	r := newRouter(&fakePromos{}, stores)

	w := perform(r, http.MethodPost, "/stores", map[string]interface{}{"name": "Olaya", "city": "Riyadh", "location_lat": 24.7})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}

	w = perform(r, http.MethodPost, "/stores", map[string]interface{}{
		"name": "Olaya", "city": "Riyadh", "location_lat": 24.7, "location_lng": 46.6, "delivery_range": 5,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if stores.created == nil || stores.created.DeliveryRange == nil || *stores.created.DeliveryRange != 5 {
		t.Fatalf("created = %+v", stores.created)
	}
}

func TestGetStoreNotFound(t *testing.T) {
	w := perform(newRouter(&fakePromos{}, &fakeStores{}), http.MethodGet, "/stores/"+primitive.NewObjectID().Hex(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCreateProductForMissingStore(t *testing.T) {
	stores := &fakeStores{productErr: services.ErrStoreMissing}
	body := map[string]interface{}{"store_id": primitive.NewObjectID().Hex(), "name": "Dates", "price": 25}

	w := perform(newRouter(&fakePromos{}, stores), http.MethodPost, "/products", body)
	if w.Code != http.StatusUnprocessableEntity || errorCode(t, w) != "STORE_NOT_FOUND" {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
}

func TestProductRoutes(t *testing.T) {
	stores := &fakeStores{}
	r := newRouter(&fakePromos{}, stores)
	storeID := primitive.NewObjectID()

	w := perform(r, http.MethodPost, "/products", map[string]interface{}{"store_id": storeID.Hex(), "name": "Dates", "price": 25, "stock": 3})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", w.Code, w.Body.String())
	}
	if stores.product.StoreID != storeID || stores.product.Stock != 3 {
		t.Fatalf("product = %+v", stores.product)
	}

	if w := perform(r, http.MethodGet, "/products/store/"+storeID.Hex(), nil); w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	if stores.productsFor != storeID {
		t.Fatalf("listed for %s", stores.productsFor.Hex())
	}

	productID := primitive.NewObjectID()
	if w := perform(r, http.MethodDelete, "/products/"+productID.Hex(), nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	if stores.deletedProduct != productID {
		t.Fatal("wrong product deleted")
	}
}
