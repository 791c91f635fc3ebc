package lockstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"postsync/core/lockfile"
	"postsync/feature/lockstore/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrRevisionConflict is returned when a write carries a revision older
// than the stored record, meaning another run persisted in between.
var ErrRevisionConflict = errors.New("lockfile revision conflict")

// PutRequest is the wire body of a lockfile replacement.
type PutRequest struct {
	RepositoryName string           `json:"repositoryName"`
	Revision       time.Time        `json:"revision"`
	Posts          []lockfile.Entry `json:"posts"`
}

// Service implements the lockfile store operations on top of GORM.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates the store service and migrates its schema.
func NewService(db *gorm.DB, logger *zap.Logger) (*Service, error) {
	if err := db.AutoMigrate(&models.Lockfile{}, &models.Post{}); err != nil {
		return nil, fmt.Errorf("migrating lockfile schema: %w", err)
	}
	return &Service{db: db, logger: logger}, nil
}

// Get returns the lockfile for repositoryID, or nil when the repository
// has never been synced. Absence is a valid outcome, not an error.
func (s *Service) Get(ctx context.Context, repositoryID string) (*lockfile.Lockfile, error) {
	var record models.Lockfile
	err := s.db.WithContext(ctx).
		Preload("Posts").
		Where("repository_id = ?", repositoryID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading lockfile for %s: %w", repositoryID, err)
	}

	out := toWire(record)
	return &out, nil
}

// Put replaces the repository's lockfile with req. A non-zero revision
// must match the stored UpdatedAt or the write is rejected with
// ErrRevisionConflict; a zero revision writes unconditionally, for
// clients that do not implement the guard.
func (s *Service) Put(ctx context.Context, repositoryID string, req PutRequest) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		var record models.Lockfile
		err := tx.Where("repository_id = ?", repositoryID).First(&record).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			record = models.Lockfile{
				ID:           uuid.NewString(),
				RepositoryID: repositoryID,
				CreatedAt:    now,
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("creating lockfile for %s: %w", repositoryID, err)
			}
		case err != nil:
			return fmt.Errorf("loading lockfile for %s: %w", repositoryID, err)
		default:
			if !req.Revision.IsZero() && !req.Revision.Equal(record.UpdatedAt) {
				return ErrRevisionConflict
			}
			if err := tx.Where("lockfile_id = ?", record.ID).Delete(&models.Post{}).Error; err != nil {
				return fmt.Errorf("clearing posts for %s: %w", repositoryID, err)
			}
		}

		posts := make([]models.Post, 0, len(req.Posts))
		for _, entry := range req.Posts {
			posts = append(posts, models.Post{
				LockfileID: record.ID,
				RemoteID:   entry.ID,
				Path:       entry.Path,
				Hash:       entry.Hash,
				URL:        entry.URL,
			})
		}
		if len(posts) > 0 {
			if err := tx.Create(&posts).Error; err != nil {
				return fmt.Errorf("storing posts for %s: %w", repositoryID, err)
			}
		}

		updates := map[string]any{
			"repository_name": req.RepositoryName,
			"updated_at":      now,
		}
		if err := tx.Model(&models.Lockfile{}).Where("id = ?", record.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("updating lockfile for %s: %w", repositoryID, err)
		}

		s.logger.Info("Lockfile replaced",
			zap.String("repository_id", repositoryID),
			zap.Int("posts", len(posts)))
		return nil
	})
}

func toWire(record models.Lockfile) lockfile.Lockfile {
	entries := make([]lockfile.Entry, 0, len(record.Posts))
	for _, post := range record.Posts {
		entries = append(entries, lockfile.Entry{
			ID:   post.RemoteID,
			Path: post.Path,
			Hash: post.Hash,
			URL:  post.URL,
		})
	}

	return lockfile.Lockfile{
		ID:             record.ID,
		RepositoryID:   record.RepositoryID,
		RepositoryName: record.RepositoryName,
		Content:        entries,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
}
