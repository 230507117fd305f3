package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/doodle-journal/core/internal/models"
	"github.com/doodle-journal/core/internal/store"
)

type postStore Store

func clonePost(p *models.PostModel) *models.PostModel {
	cp := *p
	cp.Tags = append(models.StringSlice(nil), p.Tags...)
	cp.Images = append(models.StringSlice(nil), p.Images...)
	cp.Comments = append([]models.CommentModel(nil), p.Comments...)
	return &cp
}

func (s *postStore) ListByOwner(ctx context.Context, ownerID string) ([]models.PostModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.PostModel, 0)
	for _, p := range s.posts {
		if p.OwnerID == ownerID {
			out = append(out, *clonePost(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *postStore) Create(ctx context.Context, ownerID string, in store.PostInput) (*models.PostModel, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	theme := in.ColorTheme
	if theme == "" {
		theme = models.DefaultColorTheme
	}

	now := time.Now()
	p := &models.PostModel{
		Base:       models.Base{ID: newID(), CreatedAt: now, UpdatedAt: now},
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

	s.mu.Lock()
	s.posts[p.ID] = p
	s.mu.Unlock()
	return clonePost(p), nil
}

func (s *postStore) GetByID(ctx context.Context, ownerID, id string) (*models.PostModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok || p.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	return clonePost(p), nil
}

func (s *postStore) Update(ctx context.Context, ownerID, id string, patch store.PostPatch) (*models.PostModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok || p.OwnerID != ownerID {
		return nil, store.ErrNotFound
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
	p.UpdatedAt = time.Now()
	return clonePost(p), nil
}

func (s *postStore) Delete(ctx context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok || p.OwnerID != ownerID {
		return store.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *postStore) AddComment(ctx context.Context, postID, authorID, authorUsername, content string) (*models.CommentModel, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content is required", store.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return nil, store.ErrNotFound
	}

	now := time.Now()
	c := models.CommentModel{
		Base:           models.Base{ID: newID(), CreatedAt: now, UpdatedAt: now},
		PostID:         postID,
		AuthorID:       authorID,
		AuthorUsername: authorUsername,
		Content:        content,
	}
	p.Comments = append(p.Comments, c)
	cp := c
	return &cp, nil
}

func (s *postStore) DeleteComment(ctx context.Context, postID, commentID, requesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return store.ErrNotFound
	}

	for i, c := range p.Comments {
		if c.ID != commentID {
			continue
		}
		if c.AuthorID != requesterID && p.OwnerID != requesterID {
			return store.ErrForbidden
		}
		p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
		return nil
	}
	return store.ErrNotFound
}
