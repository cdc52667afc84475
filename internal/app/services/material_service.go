package services

import (
	"context"
	"io"

	identity "github.com/dawitf/ece-backend/internal/app/auth"
	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/app/models/dto"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
	"github.com/dawitf/ece-backend/internal/pkg/filestorage"
	"github.com/dawitf/ece-backend/internal/pkg/logger"
)

// materialStore is the slice of material persistence the service needs.
type materialStore interface {
	Create(ctx context.Context, m *models.Material) (int64, error)
	ListByOffering(ctx context.Context, batchCourseID int64) ([]models.MaterialItem, error)
	GetUploader(ctx context.Context, materialID int64) (int64, error)
	Delete(ctx context.Context, materialID int64) error
}

// materialOfferingSource checks that an offering exists before a file
// is attached to it.
type materialOfferingSource interface {
	GetBatchCourse(ctx context.Context, batchCourseID int64) (*models.BatchCourse, error)
}

// MaterialService manages course material files: bytes in object
// storage, references in the database.
type MaterialService struct {
	materials materialStore
	offerings materialOfferingSource
	storage   filestorage.ObjectStorage
}

// NewMaterialService creates a new material service
func NewMaterialService(materials materialStore, offerings materialOfferingSource, storage filestorage.ObjectStorage) *MaterialService {
	return &MaterialService{materials: materials, offerings: offerings, storage: storage}
}

// UploadMaterial stores the file bytes under the material title and
// records the reference. The store write happens first; if the database
// insert then fails the object is removed again.
func (s *MaterialService) UploadMaterial(ctx context.Context, actor identity.ActingIdentity, title string, batchCourseID int64, file io.Reader, contentType string) (int64, error) {
	if title == "" {
		return 0, apperrors.NewValidationError("title is required")
	}
	if batchCourseID == 0 {
		return 0, apperrors.NewValidationError("batchCourseId is required")
	}

	if _, err := s.offerings.GetBatchCourse(ctx, batchCourseID); err != nil {
		return 0, apperrors.NewNotFoundError("course offering not found")
	}

	fileURL, err := s.storage.Put(title, file, contentType)
	if err != nil {
		logger.Error().Err(err).Str("title", title).Msg("Material upload to storage failed")
		return 0, apperrors.NewDependencyError("could not store file")
	}

	materialID, err := s.materials.Create(ctx, &models.Material{
		Title:         title,
		FileURL:       fileURL,
		BatchCourseID: batchCourseID,
		UploadedBy:    actor.UserID,
	})
	if err != nil {
		if delErr := s.storage.Delete(title); delErr != nil {
			logger.Warn().Err(delErr).Str("title", title).Msg("Orphaned stored object after failed insert")
		}
		return 0, err
	}

	logger.Info().Int64("material_id", materialID).Int64("batch_course_id", batchCourseID).Msg("Material uploaded")
	return materialID, nil
}

// GetMaterials lists the materials of a course offering.
func (s *MaterialService) GetMaterials(ctx context.Context, batchCourseID int64) ([]models.MaterialItem, error) {
	if batchCourseID == 0 {
		return nil, apperrors.NewValidationError("batchCourseId is required")
	}
	return s.materials.ListByOffering(ctx, batchCourseID)
}

// DeleteMaterial removes a material record and its stored object. Only
// the uploader or an admin may delete. The record is removed first; a
// storage failure afterwards surfaces as a dependency error.
func (s *MaterialService) DeleteMaterial(ctx context.Context, actor identity.ActingIdentity, req dto.DeleteMaterialRequest) error {
	if req.MaterialID == 0 {
		return apperrors.NewValidationError("materialId is required")
	}

	uploader, err := s.materials.GetUploader(ctx, req.MaterialID)
	if err != nil {
		return apperrors.NewNotFoundError("material not found")
	}
	if uploader != actor.UserID && actor.Role != models.RoleAdmin {
		return apperrors.ErrForbidden
	}

	if err := s.materials.Delete(ctx, req.MaterialID); err != nil {
		return err
	}

	if req.FileKey != "" {
		if err := s.storage.Delete(req.FileKey); err != nil {
			logger.Error().Err(err).Str("file_key", req.FileKey).Msg("Stored object deletion failed")
			return apperrors.NewDependencyError("record removed but stored file could not be deleted")
		}
	}
	return nil
}
