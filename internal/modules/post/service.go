package post

import (
	"context"
	"fmt"

	"github.com/doodle-journal/core/internal/models"
	"github.com/doodle-journal/core/internal/modules/insights"
	"github.com/doodle-journal/core/internal/store"
)

// Service implements journal entry operations over the post store. The
// derived views delegate to insights, which is pure; the service only
// fetches the owner's snapshot.
type Service struct {
	posts store.PostStore
	users store.UserStore
}

func NewService(st store.Store) *Service {
	return &Service{posts: st.Posts(), users: st.Users()}
}

// List returns the owner's entries, newest first, after applying the
// optional facet filters.
func (s *Service) List(ctx context.Context, ownerID string, q ListQuery) ([]models.PostModel, error) {
	posts, err := s.posts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	posts = insights.Search(posts, q.Search)
	filter := insights.Filter{
		Moods:      q.Moods,
		Tags:       q.Tags,
		SearchText: q.SearchText,
		DateFrom:   q.DateFrom,
		DateTo:     q.DateTo,
	}
	return filter.Apply(posts), nil
}

// Create validates the image cap (an edge rule, not a store rule) and
// persists the entry.
func (s *Service) Create(ctx context.Context, ownerID string, dto *CreatePostDTO) (*models.PostModel, error) {
	if len(dto.Images) > models.MaxPostImages {
		return nil, fmt.Errorf("%w: at most %d images per entry", store.ErrValidation, models.MaxPostImages)
	}
	return s.posts.Create(ctx, ownerID, dto.toInput())
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*models.PostModel, error) {
	return s.posts.GetByID(ctx, ownerID, id)
}

func (s *Service) Update(ctx context.Context, ownerID, id string, dto *UpdatePostDTO) (*models.PostModel, error) {
	if dto.Images != nil && len(*dto.Images) > models.MaxPostImages {
		return nil, fmt.Errorf("%w: at most %d images per entry", store.ErrValidation, models.MaxPostImages)
	}
	return s.posts.Update(ctx, ownerID, id, dto.toPatch())
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	return s.posts.Delete(ctx, ownerID, id)
}

// AddComment resolves the author's display name before appending, so the
// stored thread is self-contained and list responses need no join.
func (s *Service) AddComment(ctx context.Context, postID, authorID, content string) (*models.CommentModel, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return s.posts.AddComment(ctx, postID, authorID, author.Username, content)
}

func (s *Service) DeleteComment(ctx context.Context, postID, commentID, requesterID string) error {
	return s.posts.DeleteComment(ctx, postID, commentID, requesterID)
}

// Calendar buckets the owner's entries by local day, optionally narrowed
// to one yyyy-MM month.
func (s *Service) Calendar(ctx context.Context, ownerID, month string) (map[string][]models.PostModel, error) {
	posts, err := s.posts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	buckets := insights.CalendarBuckets(posts)
	if month == "" {
		return buckets, nil
	}
	narrowed := make(map[string][]models.PostModel)
	for day, entries := range buckets {
		if len(day) >= len(month) && day[:len(month)] == month {
			narrowed[day] = entries
		}
	}
	return narrowed, nil
}

// Stats is the aggregate payload of GET /posts/stats.
type Stats struct {
	Summary insights.Summary     `json:"summary"`
	Moods   []insights.MoodCount `json:"moods"`
	TopTags []insights.TagCount  `json:"topTags"`
	// Distinct values for the filter UI.
	AvailableMoods []string `json:"availableMoods"`
	AvailableTags  []string `json:"availableTags"`
}

func (s *Service) Stats(ctx context.Context, ownerID string) (*Stats, error) {
	posts, err := s.posts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Summary:        insights.Summarize(posts),
		Moods:          insights.MoodHistogram(posts),
		TopTags:        insights.TopTags(posts),
		AvailableMoods: insights.AvailableMoods(posts),
		AvailableTags:  insights.AvailableTags(posts),
	}, nil
}
