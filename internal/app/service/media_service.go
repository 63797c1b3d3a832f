package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"gorm.io/gorm"

	"github.com/ebuka-odih/mini-ecommerce-backend/config"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/repository"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/storage"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/logger"
)

var (
	ErrImageNotFound   = errors.New("image not found")
	ErrInvalidFileType = errors.New("file is not a supported image type")
	ErrFileTooLarge    = errors.New("file exceeds the maximum upload size")
	ErrInvalidTag      = errors.New("tags must not contain commas")
)

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// EventPublisher receives progress events from batch media operations.
// The websocket hub implements it; a nil publisher disables the stream.
type EventPublisher interface {
	Publish(eventType string, payload interface{})
}

type UploadFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ImportFailure struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// ImportReport is the partial-success result of a URL batch import.
type ImportReport struct {
	Imported []model.Image   `json:"imported"`
	Failed   []ImportFailure `json:"failed"`
}

type DeleteFailure struct {
	ID     uint   `json:"id"`
	Reason string `json:"reason"`
}

// BulkDeleteReport is the partial-success result of a bulk delete.
type BulkDeleteReport struct {
	Deleted []uint          `json:"deleted"`
	Failed  []DeleteFailure `json:"failed"`
}

type MediaService interface {
	ListImages(filter repository.ImageFilter) ([]model.Image, error)
	ListFolders() ([]string, error)
	GetImage(id uint) (*model.Image, error)
	GetImagesByIDs(ids []uint) ([]model.Image, error)
	Upload(ctx context.Context, files []UploadFile, folder string, tags []string, uploadedBy *uint) ([]model.Image, error)
	ImportFromURLs(ctx context.Context, urls []string, folder string, tags []string) (*ImportReport, error)
	BulkDelete(ctx context.Context, ids []uint) (*BulkDeleteReport, error)
	MoveToFolder(ids []uint, folder string) error
	Retag(id uint, tags []string) (*model.Image, error)
	SetFeatured(id uint, featured bool) (*model.Image, error)
	TrackUsage(id uint, usedAt time.Time, usageContext string) error
	// PurgeDeleted hard-deletes images soft-deleted before the cutoff,
	// removing their backing objects. Returns the number purged.
	PurgeDeleted(ctx context.Context, cutoff time.Time) (int, error)
}

type mediaService struct {
	imageRepo repository.ImageRepository
	storage   storage.ObjectStorage
	client    *http.Client
	cfg       config.MediaConfig
	events    EventPublisher
}

func NewMediaService(
	imageRepo repository.ImageRepository,
	objectStorage storage.ObjectStorage,
	cfg config.MediaConfig,
	events EventPublisher,
) MediaService {
	return &mediaService{
		imageRepo: imageRepo,
		storage:   objectStorage,
		client:    &http.Client{Timeout: cfg.FetchTimeout},
		cfg:       cfg,
		events:    events,
	}
}

func (s *mediaService) ListImages(filter repository.ImageFilter) ([]model.Image, error) {
	return s.imageRepo.FindWithFilter(filter)
}

func (s *mediaService) ListFolders() ([]string, error) {
	return s.imageRepo.ListFolders()
}

func (s *mediaService) GetImage(id uint) (*model.Image, error) {
	img, err := s.imageRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return img, nil
}

func (s *mediaService) GetImagesByIDs(ids []uint) ([]model.Image, error) {
	return s.imageRepo.FindByIDs(ids)
}

func (s *mediaService) Upload(ctx context.Context, files []UploadFile, folder string, tags []string, uploadedBy *uint) ([]model.Image, error) {
	folder = normalizeFolder(folder, s.cfg.DefaultFolder)
	tagString, err := validateTags(tags)
	if err != nil {
		return nil, err
	}

	logger.Info("Uploading media files", map[string]interface{}{
		"count":  len(files),
		"folder": folder,
	})

	var images []model.Image
	for _, file := range files {
		img, err := s.storeFile(ctx, file, folder, tagString, uploadedBy)
		if err != nil {
			return nil, err
		}
		images = append(images, *img)
	}
	return images, nil
}

func (s *mediaService) storeFile(ctx context.Context, file UploadFile, folder, tagString string, uploadedBy *uint) (*model.Image, error) {
	if int64(len(file.Data)) > s.cfg.MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	contentType, width, height, err := sniffImage(file.Data)
	if err != nil {
		logger.Warn("Rejected upload: not a supported image", map[string]interface{}{
			"filename": file.Filename,
		})
		return nil, ErrInvalidFileType
	}

	key := s.storage.ObjectKey(folder, file.Filename)
	url, err := s.storage.Upload(ctx, key, contentType, file.Data)
	if err != nil {
		logger.Error("Failed to store uploaded file", err, map[string]interface{}{
			"filename": file.Filename,
			"key":      key,
		})
		return nil, err
	}

	img := &model.Image{
		Filename:     path.Base(key),
		OriginalName: file.Filename,
		Path:         key,
		Disk:         "s3",
		URL:          url,
		Folder:       folder,
		Tags:         tagString,
		MimeType:     contentType,
		Size:         int64(len(file.Data)),
		Width:        width,
		Height:       height,
		UploadedByID: uploadedBy,
		UploadedAt:   time.Now(),
	}
	if err := s.imageRepo.Create(img); err != nil {
		return nil, err
	}

	logger.Info("Media file stored", map[string]interface{}{
		"image_id": img.ID,
		"key":      key,
		"folder":   folder,
	})
	return img, nil
}

// ImportFromURLs fetches each URL independently with a bounded timeout. A
// bad URL produces a failure entry and the batch moves on; the report
// carries whatever succeeded.
func (s *mediaService) ImportFromURLs(ctx context.Context, urls []string, folder string, tags []string) (*ImportReport, error) {
	folder = normalizeFolder(folder, s.cfg.DefaultFolder)
	tagString, err := validateTags(tags)
	if err != nil {
		return nil, err
	}

	logger.Info("Importing images from URLs", map[string]interface{}{
		"count":  len(urls),
		"folder": folder,
	})

	report := &ImportReport{}
	for _, url := range urls {
		img, err := s.importOne(ctx, url, folder, tagString)
		if err != nil {
			logger.Warn("URL import failed", map[string]interface{}{
				"url":   url,
				"error": err.Error(),
			})
			report.Failed = append(report.Failed, ImportFailure{URL: url, Reason: err.Error()})
			s.publish("media.import.failed", map[string]interface{}{"url": url, "reason": err.Error()})
			continue
		}
		report.Imported = append(report.Imported, *img)
		s.publish("media.import.succeeded", map[string]interface{}{"url": url, "image_id": img.ID})
	}

	logger.Info("URL import finished", map[string]interface{}{
		"imported": len(report.Imported),
		"failed":   len(report.Failed),
	})
	return report, nil
}

func (s *mediaService) importOne(ctx context.Context, url, folder, tagString string) (*model.Image, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch failed: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	contentType, width, height, err := sniffImage(data)
	if err != nil {
		return nil, ErrInvalidFileType
	}

	filename := path.Base(req.URL.Path)
	if filename == "/" || filename == "." || filename == "" {
		filename = "imported"
	}

	key := s.storage.ObjectKey(folder, filename)
	storedURL, err := s.storage.Upload(ctx, key, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("store failed: %w", err)
	}

	img := &model.Image{
		Filename:     path.Base(key),
		OriginalName: filename,
		Path:         key,
		Disk:         "s3",
		URL:          storedURL,
		Folder:       folder,
		Tags:         tagString,
		MimeType:     contentType,
		Size:         int64(len(data)),
		Width:        width,
		Height:       height,
		UsageContext: "import",
		UploadedAt:   time.Now(),
	}
	if err := s.imageRepo.Create(img); err != nil {
		return nil, err
	}
	return img, nil
}

// BulkDelete removes each image independently. An unknown id or a storage
// failure becomes a failure entry; the remaining ids are still processed.
func (s *mediaService) BulkDelete(ctx context.Context, ids []uint) (*BulkDeleteReport, error) {
	logger.Info("Bulk deleting images", map[string]interface{}{
		"count": len(ids),
	})

	report := &BulkDeleteReport{}
	for _, id := range ids {
		if err := s.deleteOne(ctx, id); err != nil {
			report.Failed = append(report.Failed, DeleteFailure{ID: id, Reason: err.Error()})
			s.publish("media.delete.failed", map[string]interface{}{"image_id": id, "reason": err.Error()})
			continue
		}
		report.Deleted = append(report.Deleted, id)
		s.publish("media.delete.succeeded", map[string]interface{}{"image_id": id})
	}

	logger.Info("Bulk delete finished", map[string]interface{}{
		"deleted": len(report.Deleted),
		"failed":  len(report.Failed),
	})
	return report, nil
}

func (s *mediaService) deleteOne(ctx context.Context, id uint) error {
	img, err := s.imageRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return err
	}

	if err := s.storage.Delete(ctx, img.Path); err != nil {
		logger.Error("Failed to delete stored object", err, map[string]interface{}{
			"image_id": id,
			"key":      img.Path,
		})
		return err
	}

	return s.imageRepo.Delete(id)
}

func (s *mediaService) MoveToFolder(ids []uint, folder string) error {
	folder = normalizeFolder(folder, s.cfg.DefaultFolder)

	images, err := s.imageRepo.FindByIDs(ids)
	if err != nil {
		return err
	}
	if len(images) != len(ids) {
		return ErrImageNotFound
	}

	for i := range images {
		images[i].Folder = folder
		if err := s.imageRepo.Update(&images[i]); err != nil {
			return err
		}
	}

	logger.Info("Images moved to folder", map[string]interface{}{
		"count":  len(images),
		"folder": folder,
	})
	return nil
}

func (s *mediaService) Retag(id uint, tags []string) (*model.Image, error) {
	tagString, err := validateTags(tags)
	if err != nil {
		return nil, err
	}

	img, err := s.imageRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}

	img.Tags = tagString
	if err := s.imageRepo.Update(img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *mediaService) SetFeatured(id uint, featured bool) (*model.Image, error) {
	img, err := s.imageRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}

	img.IsFeatured = featured
	if err := s.imageRepo.Update(img); err != nil {
		return nil, err
	}
	return img, nil
}

// TrackUsage bumps download_count and last_used_at. This is bookkeeping,
// not reference counting: consumers detach images without telling us, so
// the counters only ever drift upward and dangling links are expected.
func (s *mediaService) TrackUsage(id uint, usedAt time.Time, usageContext string) error {
	return s.imageRepo.RecordUsage(id, usedAt, usageContext)
}

func (s *mediaService) PurgeDeleted(ctx context.Context, cutoff time.Time) (int, error) {
	images, err := s.imageRepo.FindPurgeable(cutoff)
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, img := range images {
		if err := s.storage.Delete(ctx, img.Path); err != nil {
			// Leave the row for the next run rather than orphaning the object.
			logger.Warn("Failed to delete object during purge", map[string]interface{}{
				"image_id": img.ID,
				"key":      img.Path,
				"error":    err.Error(),
			})
			continue
		}
		if err := s.imageRepo.HardDelete(img.ID); err != nil {
			logger.Error("Failed to hard delete image row", err, map[string]interface{}{
				"image_id": img.ID,
			})
			continue
		}
		purged++
	}

	if purged > 0 {
		logger.Info("Purged soft-deleted images", map[string]interface{}{
			"purged": purged,
		})
	}
	return purged, nil
}

func (s *mediaService) publish(eventType string, payload interface{}) {
	if s.events != nil {
		s.events.Publish(eventType, payload)
	}
}

// sniffImage verifies the bytes decode as a supported image and returns the
// detected content type and pixel dimensions.
func sniffImage(data []byte) (contentType string, width, height int, err error) {
	contentType = http.DetectContentType(data)

	allowed := false
	for _, t := range allowedImageTypes {
		if contentType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", 0, 0, ErrInvalidFileType
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", 0, 0, ErrInvalidFileType
	}
	return contentType, cfg.Width, cfg.Height, nil
}

func normalizeFolder(folder, fallback string) string {
	folder = strings.TrimSpace(folder)
	if folder == "" {
		folder = fallback
	}
	if folder == "" {
		folder = model.FolderRoot
	}
	return folder
}

// validateTags rejects tags containing commas (the storage separator) and
// returns the joined form. Order is preserved.
func validateTags(tags []string) (string, error) {
	for _, tag := range tags {
		if strings.Contains(tag, ",") {
			return "", ErrInvalidTag
		}
	}
	return model.JoinTags(tags), nil
}
