package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"gorm.io/gorm"

	"real-estate-api/models"
)

// PropertyInput carries the fields a caller may set on a listing
type PropertyInput struct {
	Title       string
	Location    string
	Price       float64
	Description string
}

// PropertyService implements property listing CRUD plus listing photos
// stored in S3
type PropertyService struct {
	db     *gorm.DB
	images ImageService
}

// NewPropertyService creates a new property service instance
func NewPropertyService(db *gorm.DB, images ImageService) *PropertyService {
	return &PropertyService{db: db, images: images}
}

// Create persists a new listing
func (s *PropertyService) Create(ctx context.Context, input PropertyInput) (*models.Property, error) {
	if err := validatePropertyInput(input); err != nil {
		return nil, err
	}

	property := models.Property{
		Title:       input.Title,
		Location:    input.Location,
		Price:       input.Price,
		Description: input.Description,
	}

	if err := s.db.WithContext(ctx).Create(&property).Error; err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}
	return &property, nil
}

// GetByID returns the listing with the given id, with a presigned image URL
// when a photo is attached
func (s *PropertyService) GetByID(ctx context.Context, id uint) (*models.Property, error) {
	property, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachImageURL(property)
	return property, nil
}

// List returns all listings with presigned image URLs
func (s *PropertyService) List(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	if err := s.db.WithContext(ctx).Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	for i := range properties {
		s.attachImageURL(&properties[i])
	}
	return properties, nil
}

// Update replaces the mutable listing fields
func (s *PropertyService) Update(ctx context.Context, id uint, input PropertyInput) (*models.Property, error) {
	if err := validatePropertyInput(input); err != nil {
		return nil, err
	}

	property, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	property.Title = input.Title
	property.Location = input.Location
	property.Price = input.Price
	property.Description = input.Description

	if err := s.db.WithContext(ctx).Save(property).Error; err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	s.attachImageURL(property)
	return property, nil
}

// Delete removes the listing and its photo. Listings are hard-deleted;
// soft delete applies to appointments only.
func (s *PropertyService) Delete(ctx context.Context, id uint) error {
	property, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if property.ImageS3Key != nil {
		if err := s.images.DeleteImage(*property.ImageS3Key); err != nil {
			log.Printf("warning: failed to delete image for property %d: %v", id, err)
		}
	}

	if err := s.db.WithContext(ctx).Delete(property).Error; err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return nil
}

// AttachImage uploads a listing photo and stores its key on the property,
// replacing (and removing) any previous photo
func (s *PropertyService) AttachImage(ctx context.Context, id uint, fileHeader *multipart.FileHeader) (*models.Property, error) {
	property, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	s3Key, err := s.images.UploadImage(fileHeader)
	if err != nil {
		return nil, err
	}

	oldKey := property.ImageS3Key
	property.ImageS3Key = &s3Key

	if err := s.db.WithContext(ctx).Save(property).Error; err != nil {
		return nil, fmt.Errorf("failed to attach image: %w", err)
	}

	if oldKey != nil && *oldKey != s3Key {
		if err := s.images.DeleteImage(*oldKey); err != nil {
			log.Printf("warning: failed to delete replaced image %s: %v", *oldKey, err)
		}
	}

	s.attachImageURL(property)
	return property, nil
}

func (s *PropertyService) find(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	if err := s.db.WithContext(ctx).First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up property: %w", err)
	}
	return &property, nil
}

func (s *PropertyService) attachImageURL(property *models.Property) {
	if property.ImageS3Key == nil || s.images == nil {
		return
	}
	url, err := s.images.GetImageURL(*property.ImageS3Key)
	if err != nil {
		log.Printf("warning: failed to generate image URL for property %d: %v", property.ID, err)
		return
	}
	if url != "" {
		property.ImageURL = &url
	}
}

func validatePropertyInput(input PropertyInput) error {
	if input.Title == "" {
		return ValidationError("title is required")
	}
	if input.Price < 0 {
		return ValidationError("price cannot be negative")
	}
	return nil
}
