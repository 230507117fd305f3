package gormstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/doodle-journal/core/internal/models"
	"github.com/doodle-journal/core/internal/store"
	"gorm.io/gorm"
)

type postStore struct{ db *gorm.DB }

func withComments(db *gorm.DB) *gorm.DB {
	return db.Preload("Comments", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at ASC")
	})
}

func (s *postStore) ListByOwner(ctx context.Context, ownerID string) ([]models.PostModel, error) {
	posts := make([]models.PostModel, 0)
	err := withComments(s.db.WithContext(ctx)).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return posts, nil
}

func (s *postStore) Create(ctx context.Context, ownerID string, in store.PostInput) (*models.PostModel, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	theme := in.ColorTheme
	if theme == "" {
		theme = models.DefaultColorTheme
	}

	p := models.PostModel{
		OwnerID:    ownerID,
		Title:      in.Title,
		Content:    in.Content,
		Mood:       in.Mood,
		Tags:       store.DedupeTags(in.Tags),
		Category:   in.Category,
		Images:     append(models.StringSlice(nil), in.Images...),
		AISummary:  in.AISummary,
		ColorTheme: theme,
		Comments:   []models.CommentModel{},
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &p, nil
}

// getOwned loads an owner's post or reports not-found; a foreign owner's
// post is indistinguishable from an absent one.
func (s *postStore) getOwned(ctx context.Context, ownerID, id string) (*models.PostModel, error) {
	var p models.PostModel
	err := withComments(s.db.WithContext(ctx)).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&p).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &p, nil
}

func (s *postStore) GetByID(ctx context.Context, ownerID, id string) (*models.PostModel, error) {
	return s.getOwned(ctx, ownerID, id)
}

func (s *postStore) Update(ctx context.Context, ownerID, id string, patch store.PostPatch) (*models.PostModel, error) {
	p, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Mood != nil {
		p.Mood = *patch.Mood
	}
	if patch.Tags != nil {
		p.Tags = store.DedupeTags(*patch.Tags)
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Images != nil {
		p.Images = append(models.StringSlice(nil), *patch.Images...)
	}
	if patch.AISummary != nil {
		p.AISummary = *patch.AISummary
	}
	if patch.ColorTheme != nil {
		if !patch.ColorTheme.Valid() {
			return nil, fmt.Errorf("%w: unknown color theme %q", store.ErrValidation, *patch.ColorTheme)
		}
		p.ColorTheme = *patch.ColorTheme
	}

	// Save refreshes updated_at; comments are managed through their own
	// statements, never rewritten here.
	if err := s.db.WithContext(ctx).Omit("Comments").Save(p).Error; err != nil {
		return nil, wrapErr(err)
	}
	return p, nil
}

func (s *postStore) Delete(ctx context.Context, ownerID, id string) error {
	return wrapErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.PostModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("post_id = ?", id).Delete(&models.CommentModel{}).Error
	}))
}

func (s *postStore) AddComment(ctx context.Context, postID, authorID, authorUsername, content string) (*models.CommentModel, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content is required", store.ErrValidation)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.PostModel{}).
		Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, wrapErr(err)
	}
	if count == 0 {
		return nil, store.ErrNotFound
	}

	c := models.CommentModel{
		PostID:         postID,
		AuthorID:       authorID,
		AuthorUsername: authorUsername,
		Content:        content,
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &c, nil
}

func (s *postStore) DeleteComment(ctx context.Context, postID, commentID, requesterID string) error {
	var p models.PostModel
	if err := s.db.WithContext(ctx).Select("id, owner_id").
		First(&p, "id = ?", postID).Error; err != nil {
		return wrapErr(err)
	}

	var c models.CommentModel
	if err := s.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&c).Error; err != nil {
		return wrapErr(err)
	}

	if c.AuthorID != requesterID && p.OwnerID != requesterID {
		return store.ErrForbidden
	}
	return wrapErr(s.db.WithContext(ctx).Delete(&models.CommentModel{}, "id = ?", c.ID).Error)
}
