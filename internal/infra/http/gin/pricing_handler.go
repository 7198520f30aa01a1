package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"surfhouse/internal/domain/pricing"
	"surfhouse/internal/domain/shared/money"
)

type PricingHandler struct {
	Store pricing.Store
}

// Config travels over the API with amounts in centavos; display formatting
// stays a client concern.
type pricingConfigPayload struct {
	RoomCategories []roomCategoryPayload `json:"room_categories"`
	Packages       []packagePayload      `json:"packages"`
	Items          []itemPayload         `json:"items"`
	LessonTiers    []tierPayload         `json:"lesson_tiers" binding:"required,min=1"`
}

type roomCategoryPayload struct {
	ID            string `json:"id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	PricePerNight int64  `json:"price_per_night"`
	Billing       string `json:"billing"`
}

type packagePayload struct {
	ID         string         `json:"id" binding:"required"`
	Name       string         `json:"name" binding:"required"`
	FixedPrice int64          `json:"fixed_price"`
	Included   map[string]int `json:"included"`
}

type itemPayload struct {
	Key   string `json:"key" binding:"required"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Basis string `json:"basis"`
}

type tierPayload struct {
	UpTo int   `json:"up_to"`
	Rate int64 `json:"rate"`
}

func (h PricingHandler) GetConfig(c *gin.Context) {
	cfg, err := h.Store.Load(c.Request.Context())
	if err != nil {
		if errors.Is(err, pricing.ErrConfigNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toPayload(cfg))
}

func (h PricingHandler) ReplaceConfig(c *gin.Context) {
	var payload pricingConfigPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg := fromPayload(payload)
	if err := cfg.ValidateTiers(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Store.Replace(c.Request.Context(), cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toPayload(cfg))
}

func toPayload(cfg pricing.Config) pricingConfigPayload {
	out := pricingConfigPayload{
		RoomCategories: []roomCategoryPayload{},
		Packages:       []packagePayload{},
		Items:          []itemPayload{},
		LessonTiers:    []tierPayload{},
	}
	for _, rc := range cfg.RoomCategories {
		out.RoomCategories = append(out.RoomCategories, roomCategoryPayload{
			ID:            rc.ID,
			Name:          rc.Name,
			PricePerNight: rc.PricePerNight.Amount,
			Billing:       string(rc.Billing),
		})
	}
	for _, p := range cfg.Packages {
		included := make(map[string]int, len(p.Included))
		for key, qty := range p.Included {
			included[string(key)] = qty
		}
		out.Packages = append(out.Packages, packagePayload{
			ID:         p.ID,
			Name:       p.Name,
			FixedPrice: p.FixedPrice.Amount,
			Included:   included,
		})
	}
	for _, key := range itemPayloadOrder(cfg) {
		item := cfg.Items[key]
		out.Items = append(out.Items, itemPayload{
			Key:   string(item.Key),
			Name:  item.Name,
			Price: item.Price.Amount,
			Basis: string(item.Basis),
		})
	}
	for _, tier := range cfg.LessonTiers {
		out.LessonTiers = append(out.LessonTiers, tierPayload{UpTo: tier.UpTo, Rate: tier.Rate.Amount})
	}
	return out
}

func fromPayload(payload pricingConfigPayload) pricing.Config {
	cfg := pricing.Config{Items: make(map[pricing.ItemKey]pricing.ItemPrice, len(payload.Items))}
	for _, rc := range payload.RoomCategories {
		cfg.RoomCategories = append(cfg.RoomCategories, pricing.RoomCategory{
			ID:            rc.ID,
			Name:          rc.Name,
			PricePerNight: money.BRL(rc.PricePerNight),
			Billing:       pricing.BillingBasis(rc.Billing),
		})
	}
	for _, p := range payload.Packages {
		included := make(map[pricing.ItemKey]int, len(p.Included))
		for key, qty := range p.Included {
			included[pricing.ItemKey(key)] = qty
		}
		cfg.Packages = append(cfg.Packages, pricing.Package{
			ID:         p.ID,
			Name:       p.Name,
			FixedPrice: money.BRL(p.FixedPrice),
			Included:   included,
		})
	}
	for _, item := range payload.Items {
		key := pricing.ItemKey(item.Key)
		cfg.Items[key] = pricing.ItemPrice{
			Key:   key,
			Name:  item.Name,
			Price: money.BRL(item.Price),
			Basis: pricing.BillingBasis(item.Basis),
		}
	}
	for _, tier := range payload.LessonTiers {
		cfg.LessonTiers = append(cfg.LessonTiers, pricing.LessonTier{UpTo: tier.UpTo, Rate: money.BRL(tier.Rate)})
	}
	return cfg
}

// itemPayloadOrder returns item keys in a stable catalogue order so GET
// responses do not shuffle between calls.
func itemPayloadOrder(cfg pricing.Config) []pricing.ItemKey {
	known := []pricing.ItemKey{
		pricing.ItemBreakfast,
		pricing.ItemBoardRental,
		pricing.ItemSurfLessons,
		pricing.ItemYogaLessons,
		pricing.ItemSurfSkate,
		pricing.ItemVideoAnalysis,
		pricing.ItemMassage,
		pricing.ItemSurfGuide,
		pricing.ItemTransfer,
		pricing.ItemHike,
		pricing.ItemRioCityTour,
		pricing.ItemCariocaExperience,
	}
	out := make([]pricing.ItemKey, 0, len(cfg.Items))
	seen := make(map[pricing.ItemKey]bool, len(known))
	for _, key := range known {
		if _, ok := cfg.Items[key]; ok {
			out = append(out, key)
			seen[key] = true
		}
	}
	for key := range cfg.Items {
		if !seen[key] {
			out = append(out, key)
		}
	}
	return out
}

var _ PricingHTTP = PricingHandler{}
