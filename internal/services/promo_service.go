package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories/interfaces"
	"storefront/internal/utils"
	"storefront/internal/validators"
	"storefront/pkg/events"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RedeemRequest struct {
	Code     string
	OrderID  string
	UserID   string
	Subtotal float64
}

type RedeemResult struct {
	models.DiscountResult
	Redemption *models.PromoRedemption `json:"redemption,omitempty"`
}

// PromoRedeemedEvent is the payload of the promo.redeemed event.
type PromoRedeemedEvent struct {
	PromoCodeID    string    `json:"promo_code_id"`
	Code           string    `json:"code"`
	OrderID        string    `json:"order_id"`
	UserID         string    `json:"user_id,omitempty"`
	Subtotal       float64   `json:"subtotal"`
	DiscountAmount float64   `json:"discount_amount"`
	UsedCount      int       `json:"used_count"`
	RedeemedAt     time.Time `json:"redeemed_at"`
}

type PromoService interface {
	Validate(ctx context.Context, code string, subtotal float64) (models.DiscountResult, error)
	Redeem(ctx context.Context, req RedeemRequest) (*RedeemResult, error)

	// Admin operations
	CreatePromoCode(ctx context.Context, promo *models.PromoCode) error
	GetPromoCode(ctx context.Context, id primitive.ObjectID) (*models.PromoCode, error)
	UpdatePromoCode(ctx context.Context, id primitive.ObjectID, req *validators.PromoCodeUpdateRequest) (*models.PromoCode, error)
	DeletePromoCode(ctx context.Context, id primitive.ObjectID) error
	ListPromoCodes(ctx context.Context, params *utils.PaginationParams) ([]*models.PromoCode, int64, error)
	ListRedemptions(ctx context.Context, id primitive.ObjectID, params *utils.PaginationParams) ([]*models.PromoRedemption, int64, error)
}

type promoService struct {
	promoRepo interfaces.PromoCodeRepository
	engine    PromoEngine
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *logger.Logger
	audit     *logger.AuditLogger
	now       func() time.Time
}

func NewPromoService(
	promoRepo interfaces.PromoCodeRepository,
	engine PromoEngine,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *logger.Logger,
) PromoService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &promoService{
		promoRepo: promoRepo,
		engine:    engine,
		publisher: publisher,
		metrics:   m,
		logger:    log.WithField("component", "promo"),
		audit:     logger.NewAuditLogger(log),
		now:       time.Now,
	}
}

func (s *promoService) Validate(ctx context.Context, code string, subtotal float64) (models.DiscountResult, error) {
	code = NormalizePromoCode(code)

	promo, err := s.lookup(ctx, code)
	if err != nil {
		return models.DiscountResult{}, err
	}

	result := s.engine.ValidateAndCompute(promo, subtotal, s.now())
	s.observe(code, "validated", result)
	return result, nil
}

// Redeem applies a promo code to a confirmed order. The redemption is logged
// before the usage counter moves so a repeated order id is rejected up front,
// and it is rolled back when the counter refuses the increment.
func (s *promoService) Redeem(ctx context.Context, req RedeemRequest) (*RedeemResult, error) {
	code := NormalizePromoCode(req.Code)

	promo, err := s.lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	result := s.engine.ValidateAndCompute(promo, req.Subtotal, s.now())
	if !result.Success {
		s.observe(code, "redeem_rejected", result)
		s.metrics.ObservePromoRedemption(string(result.Reason), 0)
		return &RedeemResult{DiscountResult: result}, nil
	}

	redemption := &models.PromoRedemption{
		PromoCodeID:    promo.ID,
		Code:           promo.Code,
		OrderID:        req.OrderID,
		UserID:         req.UserID,
		Subtotal:       req.Subtotal,
		DiscountAmount: result.DiscountAmount,
		RedeemedAt:     s.now(),
	}
	if err := s.promoRepo.RecordRedemption(ctx, redemption); err != nil {
		if errors.Is(err, interfaces.ErrAlreadyRedeemed) {
			s.metrics.ObservePromoRedemption("duplicate", 0)
		}
		return nil, err
	}

	updated, err := s.promoRepo.IncrementUsage(ctx, promo.ID)
	if err != nil {
		if rbErr := s.promoRepo.DeleteRedemption(ctx, redemption.ID); rbErr != nil {
			s.logger.WithError(rbErr).WithField("order_id", req.OrderID).Error("failed to roll back redemption")
		}

		if errors.Is(err, interfaces.ErrUsageLimitReached) {
			rejected := reject(models.PromoRejectionUsageExhausted, promoMsgUsageExhausted)
			s.observe(code, "redeem_rejected", rejected)
			s.metrics.ObservePromoRedemption(string(rejected.Reason), 0)
			return &RedeemResult{DiscountResult: rejected}, nil
		}
		if errors.Is(err, interfaces.ErrNotFound) {
			rejected := reject(models.PromoRejectionNotFound, promoMsgNotFound)
			return &RedeemResult{DiscountResult: rejected}, nil
		}
		return nil, fmt.Errorf("failed to record promo usage: %w", err)
	}

	s.metrics.ObservePromoRedemption("redeemed", result.DiscountAmount)
	s.logger.LogPromoEvent(code, "redeemed", map[string]interface{}{
		"order_id":        req.OrderID,
		"discount_amount": result.DiscountAmount,
		"used_count":      updated.UsedCount,
	})
	s.publishRedeemed(ctx, redemption, updated.UsedCount)

	return &RedeemResult{DiscountResult: result, Redemption: redemption}, nil
}

func (s *promoService) CreatePromoCode(ctx context.Context, promo *models.PromoCode) error {
	promo.Code = NormalizePromoCode(promo.Code)
	promo.UsedCount = 0
	if err := validators.ValidatePromoCode(promo).Err(); err != nil {
		return err
	}

	if err := s.promoRepo.Create(ctx, promo); err != nil {
		return err
	}

	s.audit.LogAction("create", "promo_code", promo.ID.Hex(), actorFromContext(ctx), map[string]interface{}{
		"code": promo.Code,
	})
	return nil
}

func (s *promoService) GetPromoCode(ctx context.Context, id primitive.ObjectID) (*models.PromoCode, error) {
	return s.promoRepo.GetByID(ctx, id)
}

func (s *promoService) UpdatePromoCode(ctx context.Context, id primitive.ObjectID, req *validators.PromoCodeUpdateRequest) (*models.PromoCode, error) {
	existing, err := s.promoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	req.ApplyTo(&merged)
	if err := validators.ValidatePromoCode(&merged).Err(); err != nil {
		return nil, err
	}

	updates := req.Updates()
	if len(updates) == 0 {
		return existing, nil
	}
	if err := s.promoRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	s.audit.LogAction("update", "promo_code", id.Hex(), actorFromContext(ctx), updates)
	return s.promoRepo.GetByID(ctx, id)
}

func (s *promoService) DeletePromoCode(ctx context.Context, id primitive.ObjectID) error {
	if err := s.promoRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.LogAction("delete", "promo_code", id.Hex(), actorFromContext(ctx), nil)
	return nil
}

func (s *promoService) ListPromoCodes(ctx context.Context, params *utils.PaginationParams) ([]*models.PromoCode, int64, error) {
	return s.promoRepo.List(ctx, params)
}

func (s *promoService) ListRedemptions(ctx context.Context, id primitive.ObjectID, params *utils.PaginationParams) ([]*models.PromoRedemption, int64, error) {
	if _, err := s.promoRepo.GetByID(ctx, id); err != nil {
		return nil, 0, err
	}
	return s.promoRepo.ListRedemptions(ctx, id, params)
}

// lookup returns nil without error when the code does not exist.
func (s *promoService) lookup(ctx context.Context, code string) (*models.PromoCode, error) {
	if code == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, utils.PromoLookupTimeout)
	defer cancel()

	promo, err := s.promoRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up promo code: %w", err)
	}
	return promo, nil
}

func (s *promoService) observe(code, event string, result models.DiscountResult) {
	s.metrics.ObservePromoValidation(result.Success, string(result.Reason))

	details := map[string]interface{}{
		"success":         result.Success,
		"discount_amount": result.DiscountAmount,
	}
	if !result.Success {
		details["reason"] = result.Reason
	}
	s.logger.LogPromoEvent(code, event, details)
}

func (s *promoService) publishRedeemed(ctx context.Context, redemption *models.PromoRedemption, usedCount int) {
	event := events.NewEvent(utils.EventPromoRedeemed, redemption.Code, PromoRedeemedEvent{
		PromoCodeID:    redemption.PromoCodeID.Hex(),
		Code:           redemption.Code,
		OrderID:        redemption.OrderID,
		UserID:         redemption.UserID,
		Subtotal:       redemption.Subtotal,
		DiscountAmount: redemption.DiscountAmount,
		UsedCount:      usedCount,
		RedeemedAt:     redemption.RedeemedAt,
	})

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithField("order_id", redemption.OrderID).Warn("failed to publish promo redemption event")
	}
}

func actorFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(logger.UserIDKey).(string); ok {
		return userID
	}
	return ""
}
