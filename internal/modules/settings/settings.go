package settings

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shadowknight55/social-dashboard/internal/middleware"
	"github.com/shadowknight55/social-dashboard/internal/models"
	"github.com/shadowknight55/social-dashboard/internal/pkg/response"
)

// UpdateSettingsDTO carries a partial settings update; nil fields keep the
// stored value.
type UpdateSettingsDTO struct {
	ActiveCharts  *[]string `json:"activeCharts"`
	ChartType     *string   `json:"chartType"`
	Theme         *string   `json:"theme"`
	Notifications *bool     `json:"notifications"`
}

type settingsResponse struct {
	UserID        string    `json:"userId"`
	ActiveCharts  []string  `json:"activeCharts"`
	ChartType     string    `json:"chartType"`
	Theme         string    `json:"theme"`
	Notifications bool      `json:"notifications"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toResponse(s *models.SettingsModel) settingsResponse {
	return settingsResponse{
		UserID:        s.UserID,
		ActiveCharts:  s.ActiveCharts,
		ChartType:     s.ChartType,
		Theme:         s.Theme,
		Notifications: s.Notifications,
		UpdatedAt:     s.UpdatedAt,
	}
}

type Service struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// Get returns a user's settings, falling back to the dashboard defaults
// when nothing is stored yet. Defaults are not persisted on read.
func (s *Service) Get(ctx context.Context, userID string) (models.SettingsModel, error) {
	stored, err := s.store.Get(ctx, userID)
	if err != nil {
		return models.SettingsModel{}, err
	}
	if stored == nil {
		return models.DefaultSettings(userID), nil
	}
	return *stored, nil
}

// Update merges the non-nil DTO fields over the user's current settings and
// upserts the result.
func (s *Service) Update(ctx context.Context, userID string, dto *UpdateSettingsDTO) (models.SettingsModel, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return models.SettingsModel{}, err
	}
	if dto.ActiveCharts != nil {
		current.ActiveCharts = *dto.ActiveCharts
	}
	if dto.ChartType != nil {
		current.ChartType = *dto.ChartType
	}
	if dto.Theme != nil {
		current.Theme = *dto.Theme
	}
	if dto.Notifications != nil {
		current.Notifications = *dto.Notifications
	}
	current.UserID = userID
	current.UpdatedAt = s.now()

	if err := s.store.Upsert(ctx, current); err != nil {
		return models.SettingsModel{}, err
	}
	s.log.Info("settings updated", zap.String("user_id", userID))
	return current, nil
}

// ActiveCharts returns the platforms a user tracks, defaulting when the
// user has no stored settings or an empty chart list.
func (s *Service) ActiveCharts(ctx context.Context, userID string) ([]string, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(settings.ActiveCharts) == 0 {
		return models.DefaultActiveCharts(), nil
	}
	return settings.ActiveCharts, nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/settings", authMW)
	g.GET("", h.get)
	g.PUT("", h.update)
}

func (h *Handler) get(c *gin.Context) {
	settings, err := h.svc.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, toResponse(&settings))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateSettingsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid settings payload")
		return
	}
	settings, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, toResponse(&settings))
}
