package service

import (
	"context"
	"errors"
	"strings"

	"devlink/internal/models"
	"devlink/internal/repository"
)

// PostService implements the posts feed: creation, deletion, likes, and
// comments. Author name and avatar are snapshotted onto posts and comments at
// write time.
type PostService struct {
	posts repository.PostRepository
	users repository.UserRepository
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository) *PostService {
	return &PostService{posts: posts, users: users}
}

// Create stores a new post authored by the given user.
func (s *PostService) Create(ctx context.Context, userID uint, text string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID: userID,
		Text:   text,
		Name:   author.Name,
		Avatar: author.Avatar,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, post.ID)
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.posts.List(ctx)
}

// Get returns a single post by id.
func (s *PostService) Get(ctx context.Context, postID uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, postID)
}

// Delete removes a post. Only the author may delete their own post.
func (s *PostService) Delete(ctx context.Context, userID, postID uint) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("User not authorized")
	}
	return s.posts.Delete(ctx, postID)
}

// Like records a like on a post by the given user. Liking a post twice is a
// conflict.
func (s *PostService) Like(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	for _, l := range post.Likes {
		if l.UserID == userID {
			return nil, models.NewConflictError("User already liked this post")
		}
	}
	if err := s.posts.AddLike(ctx, &models.Like{PostID: postID, UserID: userID}); err != nil {
		// Concurrent likes land on the unique index; keep the same message.
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeConflict {
			return nil, models.NewConflictError("User already liked this post")
		}
		return nil, err
	}
	updated, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return updated.Likes, nil
}

// Unlike removes the caller's like from a post. Unliking a post that was
// never liked is a conflict.
func (s *PostService) Unlike(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	liked := false
	for _, l := range post.Likes {
		if l.UserID == userID {
			liked = true
			break
		}
	}
	if !liked {
		return nil, models.NewConflictError("Post has not yet been liked")
	}
	if err := s.posts.RemoveLike(ctx, postID, userID); err != nil {
		return nil, err
	}
	updated, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return updated.Likes, nil
}

// AddComment appends a comment to a post and returns the updated comment list.
func (s *PostService) AddComment(ctx context.Context, userID, postID uint, text string) ([]models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
		Name:   author.Name,
		Avatar: author.Avatar,
	}
	if err := s.posts.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	updated, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return updated.Comments, nil
}

// RemoveComment deletes a comment from a post. Only the comment's author may
// remove it.
func (s *PostService) RemoveComment(ctx context.Context, userID, postID, commentID uint) ([]models.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	var target *models.Comment
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			target = &post.Comments[i]
			break
		}
	}
	if target == nil {
		return nil, models.NewNotFoundError("Comment does not exist")
	}
	if target.UserID != userID {
		return nil, models.NewForbiddenError("User not authorized")
	}

	if err := s.posts.RemoveComment(ctx, postID, commentID); err != nil {
		return nil, err
	}
	updated, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return updated.Comments, nil
}
