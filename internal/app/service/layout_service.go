package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/repository"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/logger"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/redis"
)

var (
	ErrLayoutNotFound      = errors.New("homepage layout not found")
	ErrInvalidGridPosition = errors.New("unknown grid position")
	ErrInvalidSliderSpeed  = errors.New("slider speed must be at least 1000ms")
)

// minSliderSpeed is the floor in milliseconds for rotating tiles.
const minSliderSpeed = 1000

const homepageCacheTTL = 5 * time.Minute

type BackgroundKind string

const (
	BackgroundImage    BackgroundKind = "image"
	BackgroundGradient BackgroundKind = "gradient"
	BackgroundFlat     BackgroundKind = "flat"
)

// Background is the render instruction for one tile.
type Background struct {
	Kind         BackgroundKind `json:"kind"`
	ImageURL     string         `json:"image_url,omitempty"`
	GradientFrom string         `json:"gradient_from,omitempty"`
	GradientTo   string         `json:"gradient_to,omitempty"`
	Color        string         `json:"color,omitempty"`
}

// ResolvedSlot is one homepage grid slot with its active layout, or an
// empty slot when nothing active occupies it.
type ResolvedSlot struct {
	Position   model.GridPosition    `json:"position"`
	Layout     *model.HomepageLayout `json:"layout,omitempty"`
	Background *Background           `json:"background,omitempty"`
	Link       string                `json:"link,omitempty"`
}

type HomepageView struct {
	Slots      []ResolvedSlot `json:"slots"`
	ResolvedAt time.Time      `json:"resolved_at"`
}

type LayoutInput struct {
	GridPosition   model.GridPosition `json:"grid_position" binding:"required"`
	SectionName    string             `json:"section_name"`
	CategoryID     *uint              `json:"category_id"`
	CoverImageID   *uint              `json:"cover_image_id"`
	UseCustomCover bool               `json:"use_custom_cover"`
	CoverImageURL  string             `json:"cover_image_url"`
	LayoutType     model.LayoutType   `json:"layout_type"`
	SliderSpeed    int                `json:"slider_speed"`
	Title          string             `json:"title"`
	Subtitle       string             `json:"subtitle"`
	Description    string             `json:"description"`
	GradientFrom   string             `json:"gradient_from"`
	GradientTo     string             `json:"gradient_to"`
	TextColor      string             `json:"text_color"`
	CustomLink     string             `json:"custom_link"`
	IsActive       bool               `json:"is_active"`
	SortOrder      int                `json:"sort_order"`
}

type LayoutService interface {
	ListLayouts() ([]model.HomepageLayout, error)
	GetLayout(id uint) (*model.HomepageLayout, error)
	CreateLayout(ctx context.Context, input LayoutInput) (*model.HomepageLayout, error)
	UpdateLayout(ctx context.Context, id uint, input LayoutInput) (*model.HomepageLayout, error)
	DeleteLayout(ctx context.Context, id uint) error
	// ToggleActive flips the layout's active flag and returns the updated
	// row. Activating deactivates the slot's previous occupant.
	ToggleActive(ctx context.Context, id uint) (*model.HomepageLayout, error)
	// ResolveHomepage returns all seven slots with their active layouts and
	// resolved backgrounds, serving from the Redis cache when possible.
	ResolveHomepage(ctx context.Context) (*HomepageView, error)
}

type layoutService struct {
	layoutRepo   repository.LayoutRepository
	categoryRepo repository.CategoryRepository
	db           *gorm.DB
}

func NewLayoutService(
	layoutRepo repository.LayoutRepository,
	categoryRepo repository.CategoryRepository,
	db *gorm.DB,
) LayoutService {
	return &layoutService{
		layoutRepo:   layoutRepo,
		categoryRepo: categoryRepo,
		db:           db,
	}
}

func (s *layoutService) ListLayouts() ([]model.HomepageLayout, error) {
	return s.layoutRepo.FindAll()
}

func (s *layoutService) GetLayout(id uint) (*model.HomepageLayout, error) {
	layout, err := s.layoutRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	return layout, nil
}

func (s *layoutService) CreateLayout(ctx context.Context, input LayoutInput) (*model.HomepageLayout, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	layout := &model.HomepageLayout{
		GridPosition:   input.GridPosition,
		SectionName:    input.SectionName,
		CategoryID:     input.CategoryID,
		CoverImageID:   input.CoverImageID,
		UseCustomCover: input.UseCustomCover,
		CoverImageURL:  input.CoverImageURL,
		LayoutType:     input.LayoutType,
		SliderSpeed:    input.SliderSpeed,
		Title:          input.Title,
		Subtitle:       input.Subtitle,
		Description:    input.Description,
		GradientFrom:   input.GradientFrom,
		GradientTo:     input.GradientTo,
		TextColor:      input.TextColor,
		CustomLink:     input.CustomLink,
		IsActive:       input.IsActive,
		SortOrder:      input.SortOrder,
	}

	if layout.IsActive {
		if err := s.withSlotLock(layout.GridPosition, 0, func(tx *gorm.DB) error {
			return tx.Create(layout).Error
		}); err != nil {
			return nil, err
		}
	} else if err := s.layoutRepo.Create(layout); err != nil {
		return nil, err
	}

	logger.Info("Homepage layout created", map[string]interface{}{
		"layout_id":     layout.ID,
		"grid_position": layout.GridPosition,
		"is_active":     layout.IsActive,
	})

	s.invalidateCache(ctx)
	return s.GetLayout(layout.ID)
}

func (s *layoutService) UpdateLayout(ctx context.Context, id uint, input LayoutInput) (*model.HomepageLayout, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	layout, err := s.GetLayout(id)
	if err != nil {
		return nil, err
	}

	layout.GridPosition = input.GridPosition
	layout.SectionName = input.SectionName
	layout.CategoryID = input.CategoryID
	layout.CoverImageID = input.CoverImageID
	layout.UseCustomCover = input.UseCustomCover
	layout.CoverImageURL = input.CoverImageURL
	layout.LayoutType = input.LayoutType
	layout.SliderSpeed = input.SliderSpeed
	layout.Title = input.Title
	layout.Subtitle = input.Subtitle
	layout.Description = input.Description
	layout.GradientFrom = input.GradientFrom
	layout.GradientTo = input.GradientTo
	layout.TextColor = input.TextColor
	layout.CustomLink = input.CustomLink
	layout.IsActive = input.IsActive
	layout.SortOrder = input.SortOrder

	// Clear associations so Save writes the columns, not the old preloads.
	layout.Category = nil
	layout.CoverImage = nil

	if layout.IsActive {
		if err := s.withSlotLock(layout.GridPosition, layout.ID, func(tx *gorm.DB) error {
			return tx.Save(layout).Error
		}); err != nil {
			return nil, err
		}
	} else if err := s.layoutRepo.Update(layout); err != nil {
		return nil, err
	}

	logger.Info("Homepage layout updated", map[string]interface{}{
		"layout_id":     layout.ID,
		"grid_position": layout.GridPosition,
		"is_active":     layout.IsActive,
	})

	s.invalidateCache(ctx)
	return s.GetLayout(layout.ID)
}

func (s *layoutService) DeleteLayout(ctx context.Context, id uint) error {
	if _, err := s.GetLayout(id); err != nil {
		return err
	}
	if err := s.layoutRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Homepage layout deleted", map[string]interface{}{
		"layout_id": id,
	})

	s.invalidateCache(ctx)
	return nil
}

func (s *layoutService) ToggleActive(ctx context.Context, id uint) (*model.HomepageLayout, error) {
	layout, err := s.GetLayout(id)
	if err != nil {
		return nil, err
	}

	layout.Category = nil
	layout.CoverImage = nil
	layout.IsActive = !layout.IsActive

	if layout.IsActive {
		err = s.withSlotLock(layout.GridPosition, layout.ID, func(tx *gorm.DB) error {
			return tx.Save(layout).Error
		})
	} else {
		err = s.layoutRepo.Update(layout)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Homepage layout toggled", map[string]interface{}{
		"layout_id": layout.ID,
		"is_active": layout.IsActive,
	})

	s.invalidateCache(ctx)
	return s.GetLayout(layout.ID)
}

// withSlotLock runs apply inside a transaction after deactivating whatever
// other layout currently holds the slot. The deactivate must land before
// the activating write or the partial unique index rejects it.
func (s *layoutService) withSlotLock(position model.GridPosition, excludeID uint, apply func(tx *gorm.DB) error) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	demote := tx.Model(&model.HomepageLayout{}).
		Where("grid_position = ? AND is_active = ?", position, true)
	if excludeID != 0 {
		demote = demote.Where("id <> ?", excludeID)
	}
	if err := demote.Update("is_active", false).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to deactivate previous slot occupant", err, map[string]interface{}{
			"grid_position": position,
		})
		return err
	}

	if err := apply(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func (s *layoutService) validateInput(input *LayoutInput) error {
	if !input.GridPosition.Valid() {
		return ErrInvalidGridPosition
	}
	if input.LayoutType == "" {
		input.LayoutType = model.LayoutGrid
	}
	switch input.LayoutType {
	case model.LayoutSlider:
		if input.SliderSpeed < minSliderSpeed {
			return ErrInvalidSliderSpeed
		}
	default:
		// Static tiles carry no rotation speed.
		input.SliderSpeed = 0
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
	}
	return nil
}

func (s *layoutService) ResolveHomepage(ctx context.Context) (*HomepageView, error) {
	if cached, err := redis.GetCachedHomepage(ctx); err == nil && cached != nil {
		var view HomepageView
		if err := json.Unmarshal(cached, &view); err == nil {
			return &view, nil
		}
		// A corrupt cache entry falls through to a fresh resolve.
	}

	active, err := s.layoutRepo.FindActive()
	if err != nil {
		return nil, err
	}

	bySlot := make(map[model.GridPosition]*model.HomepageLayout, len(active))
	for i := range active {
		bySlot[active[i].GridPosition] = &active[i]
	}

	view := &HomepageView{ResolvedAt: time.Now()}
	for _, position := range model.GridPositions {
		slot := ResolvedSlot{Position: position}
		if layout := bySlot[position]; layout != nil {
			slot.Layout = layout
			slot.Background = ResolveBackground(layout)
			slot.Link = resolveLink(layout)
		}
		view.Slots = append(view.Slots, slot)
	}

	if payload, err := json.Marshal(view); err == nil {
		_ = redis.CacheHomepage(ctx, payload, homepageCacheTTL)
	}
	return view, nil
}

// ResolveBackground picks the tile background. A resolvable cover image
// always wins, whether or not use_custom_cover is set; then a complete
// gradient pair; then a flat neutral.
func ResolveBackground(layout *model.HomepageLayout) *Background {
	if url := coverImageURL(layout); url != "" {
		return &Background{Kind: BackgroundImage, ImageURL: url}
	}
	if layout.GradientFrom != "" && layout.GradientTo != "" {
		return &Background{
			Kind:         BackgroundGradient,
			GradientFrom: layout.GradientFrom,
			GradientTo:   layout.GradientTo,
		}
	}
	return &Background{Kind: BackgroundFlat, Color: "neutral"}
}

func coverImageURL(layout *model.HomepageLayout) string {
	if layout.UseCustomCover && layout.CoverImageURL != "" {
		return layout.CoverImageURL
	}
	if layout.CoverImage != nil && layout.CoverImage.URL != "" {
		return layout.CoverImage.URL
	}
	if layout.CoverImageURL != "" {
		return layout.CoverImageURL
	}
	if layout.Category != nil && layout.Category.Image != nil {
		return layout.Category.Image.URL
	}
	return ""
}

func resolveLink(layout *model.HomepageLayout) string {
	if layout.CustomLink != "" {
		return layout.CustomLink
	}
	if layout.Category != nil {
		return "/category/" + layout.Category.Slug
	}
	return ""
}

func (s *layoutService) invalidateCache(ctx context.Context) {
	if err := redis.InvalidateHomepage(ctx); err != nil {
		logger.Warn("Failed to invalidate homepage cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
