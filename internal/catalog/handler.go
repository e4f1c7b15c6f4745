package catalog

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bazarbot/internal/feed"
	"bazarbot/pkg/models"
)

type Handler struct {
	Store Store
	Hub   *feed.Hub
}

func NewHandler(store Store, hub *feed.Hub) *Handler {
	return &Handler{Store: store, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.list)
	rg.POST("/products", h.create)
	rg.GET("/categories", h.categories)
	rg.GET("/stats", h.stats)
}

// list returns all products, newest first, with optional category, search
// and price-range filters.
func (h *Handler) list(c *gin.Context) {
	var (
		listings []models.Listing
		err      error
	)

	if category := c.Query("category"); category != "" {
		listings, err = h.Store.ListByCategory(c.Request.Context(), category)
	} else {
		listings, err = h.Store.List(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}

	if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
		filtered := listings[:0]
		for _, l := range listings {
			if strings.Contains(strings.ToLower(l.Title), search) ||
				strings.Contains(strings.ToLower(l.Description), search) {
				filtered = append(filtered, l)
			}
		}
		listings = filtered
	}

	if min, ok := parsePrice(c.Query("minPrice")); ok {
		filtered := listings[:0]
		for _, l := range listings {
			if l.Price >= min {
				filtered = append(filtered, l)
			}
		}
		listings = filtered
	}

	if max, ok := parsePrice(c.Query("maxPrice")); ok {
		filtered := listings[:0]
		for _, l := range listings {
			if l.Price <= max {
				filtered = append(filtered, l)
			}
		}
		listings = filtered
	}

	c.JSON(http.StatusOK, listings)
}

type createReq struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}

// create persists a validated listing. This is the bot's write path.
func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	// run the same checks the ingestion pipeline uses; the API is an
	// untrusted boundary too
	candidate := models.Candidate{
		Title:       req.Title,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
	}
	validated, err := Validate(candidate)
	if err != nil {
		var fieldErr *FieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product data", "field": fieldErr.Field})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product data"})
		return
	}
	validated.Image = req.Image

	listing, err := h.Store.Create(c.Request.Context(), validated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(feed.NewListingCreated(listing))
	}

	c.JSON(http.StatusCreated, listing)
}

func (h *Handler) categories(c *gin.Context) {
	listings, err := h.Store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, uniqueCategories(listings))
}

func (h *Handler) stats(c *gin.Context) {
	listings, err := h.Store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch statistics"})
		return
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	todayAdded := 0
	for _, l := range listings {
		if !l.CreatedAt.Before(midnight) {
			todayAdded++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalProducts":   len(listings),
		"todayAdded":      todayAdded,
		"categoriesCount": len(uniqueCategories(listings)),
		"botStatus":       "online",
	})
}

func uniqueCategories(listings []models.Listing) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, l := range listings {
		if _, ok := seen[l.Category]; ok {
			continue
		}
		seen[l.Category] = struct{}{}
		out = append(out, l.Category)
	}
	sort.Strings(out)
	return out
}

func parsePrice(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
