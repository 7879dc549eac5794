package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pzwatch/go-pizza-index/internal/models"
	"github.com/pzwatch/go-pizza-index/internal/newsfeed"
	"github.com/pzwatch/go-pizza-index/internal/repository"
	"github.com/pzwatch/go-pizza-index/internal/tracker"
)

// Store is the read/write surface the handlers need; *repository.SQLiteDB
// satisfies it.
type Store interface {
	repository.VenueRepository
	repository.EventRepository
	repository.CorrelationRepository
}

type Handler struct {
	store Store
	pizza *tracker.Collector
	news  *newsfeed.Collector
}

func NewHandler(store Store, pizza *tracker.Collector, news *newsfeed.Collector) *Handler {
	return &Handler{
		store: store,
		pizza: pizza,
		news:  news,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/pizza-data", h.getPizzaData)
	r.GET("/api/news-feed", h.getNewsFeed)
	r.GET("/api/outlets", h.getOutlets)
	r.GET("/api/correlations", h.getCorrelations)
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// getPizzaData runs the venue pipeline inline on the request. It shares the
// store's idempotency guards with the scheduled runs, so racing them is safe.
func (h *Handler) getPizzaData(c *gin.Context) {
	data, err := h.pizza.Collect(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch pizza data",
		})
		return
	}
	if data == nil {
		data = []tracker.DisplayReading{}
	}
	c.JSON(http.StatusOK, data)
}

type displayArticle struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	Source            string `json:"source"`
	URL               string `json:"url"`
	PublishedDate     string `json:"published_date"`
	SignificanceScore int    `json:"significance_score"`
	EventType         string `json:"event_type"`
}

func (h *Handler) getNewsFeed(c *gin.Context) {
	events := h.news.Latest(c.Request.Context())

	articles := make([]displayArticle, 0, len(events))
	for _, e := range events {
		articles = append(articles, displayArticle{
			Title:             e.Title,
			Description:       e.Description,
			Source:            e.Source,
			URL:               e.URL,
			PublishedDate:     e.PublishedDate.Format("01/02/2006"),
			SignificanceScore: e.SignificanceScore,
			EventType:         string(e.EventType),
		})
	}
	c.JSON(http.StatusOK, articles)
}

type outletSummary struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Address        string         `json:"address"`
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	Rating         float64        `json:"rating"`
	LatestActivity latestActivity `json:"latest_activity"`
}

type latestActivity struct {
	BusyLevel     string  `json:"busy_level"`
	Timestamp     *string `json:"timestamp"`
	ActivityScore float64 `json:"activity_score"`
}

func (h *Handler) getOutlets(c *gin.Context) {
	ctx := c.Request.Context()

	venues, err := h.store.ListActiveVenues(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch outlets"})
		return
	}

	// Newest reading per venue out of the recent window.
	readings, err := h.store.LatestReadings(ctx, 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch outlets"})
		return
	}
	newest := make(map[int64]models.ActivityReading, len(venues))
	for _, r := range readings {
		if _, ok := newest[r.VenueID]; !ok {
			newest[r.VenueID] = r
		}
	}

	out := make([]outletSummary, 0, len(venues))
	for _, v := range venues {
		summary := outletSummary{
			ID:        v.ID,
			Name:      v.Name,
			Address:   v.Address,
			Latitude:  v.Latitude,
			Longitude: v.Longitude,
			Rating:    v.Rating,
			LatestActivity: latestActivity{
				BusyLevel: "unknown",
			},
		}
		if r, ok := newest[v.ID]; ok {
			ts := r.Timestamp.Format("2006-01-02T15:04:05Z07:00")
			summary.LatestActivity = latestActivity{
				BusyLevel:     string(r.BusyLevel),
				Timestamp:     &ts,
				ActivityScore: r.Score,
			}
		}
		out = append(out, summary)
	}

	c.JSON(http.StatusOK, out)
}

func (h *Handler) getCorrelations(c *gin.Context) {
	limit := 5
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	correlations, err := h.store.ListFeaturedCorrelations(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch correlations"})
		return
	}
	if correlations == nil {
		correlations = []models.Correlation{}
	}
	c.JSON(http.StatusOK, correlations)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
