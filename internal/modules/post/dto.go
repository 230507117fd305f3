package post

import (
	"github.com/doodle-journal/core/internal/models"
	"github.com/doodle-journal/core/internal/store"
)

// CreatePostDTO is the request body for POST /posts.
type CreatePostDTO struct {
	Title      string   `json:"title"   binding:"required"`
	Content    string   `json:"content" binding:"required"`
	Mood       string   `json:"mood"`
	Tags       []string `json:"tags"`
	Category   string   `json:"category"`
	Images     []string `json:"images"`
	AISummary  string   `json:"aiSummary"`
	ColorTheme string   `json:"colorTheme"`
}

// UpdatePostDTO is a partial update; absent fields keep their value.
type UpdatePostDTO struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Mood       *string   `json:"mood"`
	Tags       *[]string `json:"tags"`
	Category   *string   `json:"category"`
	Images     *[]string `json:"images"`
	AISummary  *string   `json:"aiSummary"`
	ColorTheme *string   `json:"colorTheme"`
}

// CreateCommentDTO is the request body for POST /posts/:id/comments.
type CreateCommentDTO struct {
	Content string `json:"content" binding:"required"`
}

// ListQuery carries the optional facet filters of GET /posts. search
// scans title, content, tags and category; searchText is the narrower
// facet-level predicate over title and content only. Both may be active
// at once and combine conjunctively with the other facets.
type ListQuery struct {
	Search     string   `form:"search"`
	SearchText string   `form:"searchText"`
	Moods      []string `form:"mood"`
	Tags       []string `form:"tag"`
	DateFrom   int64    `form:"dateFrom"`
	DateTo     int64    `form:"dateTo"`
}

func (dto *CreatePostDTO) toInput() store.PostInput {
	return store.PostInput{
		Title:      dto.Title,
		Content:    dto.Content,
		Mood:       dto.Mood,
		Tags:       dto.Tags,
		Category:   dto.Category,
		Images:     dto.Images,
		AISummary:  dto.AISummary,
		ColorTheme: models.ColorTheme(dto.ColorTheme),
	}
}

func (dto *UpdatePostDTO) toPatch() store.PostPatch {
	patch := store.PostPatch{
		Title:     dto.Title,
		Content:   dto.Content,
		Mood:      dto.Mood,
		Tags:      dto.Tags,
		Category:  dto.Category,
		Images:    dto.Images,
		AISummary: dto.AISummary,
	}
	if dto.ColorTheme != nil {
		theme := models.ColorTheme(*dto.ColorTheme)
		patch.ColorTheme = &theme
	}
	return patch
}

// CommentResponse is the wire shape of one comment. Timestamps travel as
// epoch milliseconds, matching what the original clients parse.
type CommentResponse struct {
	ID        string `json:"id"`
	PostID    string `json:"postId"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
}

type Response struct {
	ID         string            `json:"id"`
	UserID     string            `json:"userId"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Mood       string            `json:"mood,omitempty"`
	Tags       []string          `json:"tags"`
	Category   string            `json:"category,omitempty"`
	Images     []string          `json:"images"`
	AISummary  string            `json:"aiSummary,omitempty"`
	ColorTheme string            `json:"colorTheme"`
	Comments   []CommentResponse `json:"comments"`
	CreatedAt  int64             `json:"createdAt"`
	UpdatedAt  int64             `json:"updatedAt"`
}

func ToCommentResponse(c *models.CommentModel) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.AuthorID,
		Username:  c.AuthorUsername,
		Content:   c.Content,
		CreatedAt: c.CreatedAt.UnixMilli(),
	}
}

func ToResponse(p *models.PostModel) Response {
	comments := make([]CommentResponse, len(p.Comments))
	for i := range p.Comments {
		comments[i] = ToCommentResponse(&p.Comments[i])
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return Response{
		ID:         p.ID,
		UserID:     p.OwnerID,
		Title:      p.Title,
		Content:    p.Content,
		Mood:       p.Mood,
		Tags:       tags,
		Category:   p.Category,
		Images:     images,
		AISummary:  p.AISummary,
		ColorTheme: string(p.ColorTheme),
		Comments:   comments,
		CreatedAt:  p.CreatedAt.UnixMilli(),
		UpdatedAt:  p.UpdatedAt.UnixMilli(),
	}
}

func ToResponses(posts []models.PostModel) []Response {
	items := make([]Response, len(posts))
	for i := range posts {
		items[i] = ToResponse(&posts[i])
	}
	return items
}
