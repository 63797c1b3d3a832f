package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/repository"
)

var (
	ErrSizeNotFound    = errors.New("size not found")
	ErrColorNotFound   = errors.New("color not found")
	ErrDuplicateLookup = errors.New("a lookup value with that name already exists")
)

type SizeInput struct {
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"display_name"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

type ColorInput struct {
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"display_name"`
	HexCode     string `json:"hex_code"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

// LookupService manages the size and color axis tables.
type LookupService interface {
	ListSizes(activeOnly bool) ([]model.Size, error)
	CreateSize(input SizeInput) (*model.Size, error)
	UpdateSize(id uint, input SizeInput) (*model.Size, error)
	DeleteSize(id uint) error

	ListColors(activeOnly bool) ([]model.Color, error)
	CreateColor(input ColorInput) (*model.Color, error)
	UpdateColor(id uint, input ColorInput) (*model.Color, error)
	DeleteColor(id uint) error
}

type lookupService struct {
	sizeRepo  repository.SizeRepository
	colorRepo repository.ColorRepository
}

func NewLookupService(sizeRepo repository.SizeRepository, colorRepo repository.ColorRepository) LookupService {
	return &lookupService{sizeRepo: sizeRepo, colorRepo: colorRepo}
}

func (s *lookupService) ListSizes(activeOnly bool) ([]model.Size, error) {
	return s.sizeRepo.FindAll(activeOnly)
}

func (s *lookupService) CreateSize(input SizeInput) (*model.Size, error) {
	size := &model.Size{
		Name:        input.Name,
		DisplayName: input.DisplayName,
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}
	if input.IsActive != nil {
		size.IsActive = *input.IsActive
	}
	if size.DisplayName == "" {
		size.DisplayName = size.Name
	}
	if err := s.sizeRepo.Create(size); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateLookup
		}
		return nil, err
	}
	return size, nil
}

func (s *lookupService) UpdateSize(id uint, input SizeInput) (*model.Size, error) {
	size, err := s.sizeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSizeNotFound
		}
		return nil, err
	}

	size.Name = input.Name
	size.DisplayName = input.DisplayName
	size.SortOrder = input.SortOrder
	if input.IsActive != nil {
		size.IsActive = *input.IsActive
	}
	if err := s.sizeRepo.Update(size); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateLookup
		}
		return nil, err
	}
	return size, nil
}

func (s *lookupService) DeleteSize(id uint) error {
	if _, err := s.sizeRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSizeNotFound
		}
		return err
	}
	return s.sizeRepo.Delete(id)
}

func (s *lookupService) ListColors(activeOnly bool) ([]model.Color, error) {
	return s.colorRepo.FindAll(activeOnly)
}

func (s *lookupService) CreateColor(input ColorInput) (*model.Color, error) {
	color := &model.Color{
		Name:        input.Name,
		DisplayName: input.DisplayName,
		HexCode:     input.HexCode,
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}
	if input.IsActive != nil {
		color.IsActive = *input.IsActive
	}
	if color.DisplayName == "" {
		color.DisplayName = color.Name
	}
	if err := s.colorRepo.Create(color); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateLookup
		}
		return nil, err
	}
	return color, nil
}

func (s *lookupService) UpdateColor(id uint, input ColorInput) (*model.Color, error) {
	color, err := s.colorRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColorNotFound
		}
		return nil, err
	}

	color.Name = input.Name
	color.DisplayName = input.DisplayName
	color.HexCode = input.HexCode
	color.SortOrder = input.SortOrder
	if input.IsActive != nil {
		color.IsActive = *input.IsActive
	}
	if err := s.colorRepo.Update(color); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateLookup
		}
		return nil, err
	}
	return color, nil
}

func (s *lookupService) DeleteColor(id uint) error {
	if _, err := s.colorRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrColorNotFound
		}
		return err
	}
	return s.colorRepo.Delete(id)
}
