package stats

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shadowknight55/social-dashboard/internal/middleware"
	"github.com/shadowknight55/social-dashboard/internal/models"
	"github.com/shadowknight55/social-dashboard/internal/pkg/response"
)

// ActiveChartsProvider supplies the platforms a user tracks on their
// dashboard, used as the default set for the latest-snapshot endpoint.
type ActiveChartsProvider interface {
	ActiveCharts(ctx context.Context, userID string) ([]string, error)
}

type Handler struct {
	svc    *Service
	charts ActiveChartsProvider
}

func NewHandler(svc *Service, charts ActiveChartsProvider) *Handler {
	return &Handler{svc: svc, charts: charts}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/stats")
	g.GET("", h.series)
	g.GET("/latest", h.latest)

	a := g.Group("", authMW)
	a.POST("", h.override)
	a.DELETE("/:platform", h.purge)
}

func (h *Handler) series(c *gin.Context) {
	platform := c.Query("platform")
	rangeToken := c.DefaultQuery("range", DefaultRange)
	refresh := strings.EqualFold(strings.TrimSpace(c.Query("refresh")), "true")

	records, err := h.svc.Series(c.Request.Context(), platform, rangeToken, refresh)
	if err != nil {
		if errors.Is(err, ErrPlatformRequired) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	out := seriesResponse{
		Platform: strings.TrimSpace(platform),
		Range:    rangeToken,
		Data:     make([]seriesPointResponse, len(records)),
	}
	for i, r := range records {
		out.Data[i] = toSeriesPoint(&r)
	}
	response.OK(c, out)
}

func (h *Handler) latest(c *gin.Context) {
	platforms := splitPlatforms(c.Query("platforms"))
	if len(platforms) == 0 {
		platforms = h.defaultPlatforms(c)
	}

	latest, err := h.svc.Latest(c.Request.Context(), platforms)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	out := make(map[string]snapshotResponse, len(latest))
	for platform, record := range latest {
		out[platform] = toSnapshotResponse(record.Stats)
	}
	response.OK(c, out)
}

func (h *Handler) override(c *gin.Context) {
	var dto OverrideStatsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "platform and stats are required")
		return
	}

	record, err := h.svc.Override(c.Request.Context(), dto.Platform, models.StatSnapshot{
		Followers: dto.Stats.Followers,
		Views:     dto.Stats.Views,
		Likes:     dto.Stats.Likes,
		Shares:    dto.Stats.Shares,
	})
	if err != nil {
		if errors.Is(err, ErrPlatformRequired) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, toSeriesPoint(&record))
}

func (h *Handler) purge(c *gin.Context) {
	deleted, err := h.svc.Purge(c.Request.Context(), c.Param("platform"))
	if err != nil {
		if errors.Is(err, ErrPlatformRequired) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": deleted})
}

// defaultPlatforms resolves the caller's tracked platforms, falling back to
// the stock dashboard defaults for anonymous requests or provider errors.
func (h *Handler) defaultPlatforms(c *gin.Context) []string {
	if h.charts != nil {
		if userID := middleware.CurrentUserID(c); userID != "" {
			if charts, err := h.charts.ActiveCharts(c.Request.Context(), userID); err == nil && len(charts) > 0 {
				return charts
			}
		}
	}
	return models.DefaultActiveCharts()
}

func splitPlatforms(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
