package services

import (
	"context"
	"strings"

	"blogaulas/apperr"
	"blogaulas/models"
	"blogaulas/policy"
)

const commentNotFound = "comment not found"

type CommentService struct {
	posts    PostStore
	comments CommentStore
	policy   *policy.Policy
	events   Publisher
}

func NewCommentService(posts PostStore, comments CommentStore, pol *policy.Policy, events Publisher) *CommentService {
	return &CommentService{posts: posts, comments: comments, policy: pol, events: orNop(events)}
}

// CreateComment needs no identity. When caller is known and no author label is
// given, the caller's username is used.
func (s *CommentService) CreateComment(ctx context.Context, caller *models.Identity, postID uint, req *models.CreateCommentRequest) (*models.Comment, error) {
	author, content := strings.TrimSpace(req.Author), strings.TrimSpace(req.Content)
	if author == "" && caller != nil {
		author = caller.Username
	}
	if author == "" || content == "" {
		return nil, apperr.New(apperr.Validation, "author and content are required")
	}

	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, storeErr(err, "find post", postNotFound)
	}
	if err := authorize(s.policy, caller, policy.CreateComment, policy.Resource{}, postNotFound); err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: postID, Author: author, Content: content}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, storeErr(err, "create comment", postNotFound)
	}

	s.events.Publish(EventCommentCreated, comment)
	return comment, nil
}

// UpdateComment changes the content only. postID scopes the lookup when non-zero.
func (s *CommentService) UpdateComment(ctx context.Context, caller *models.Identity, postID, id uint, req *models.UpdateCommentRequest) (*models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperr.New(apperr.Validation, "content is required")
	}

	comment, err := s.find(ctx, postID, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(s.policy, caller, policy.EditComment, policy.Resource{Comment: comment}, commentNotFound); err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, storeErr(err, "update comment", commentNotFound)
	}

	s.events.Publish(EventCommentUpdated, comment)
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, caller *models.Identity, postID, id uint) error {
	comment, err := s.find(ctx, postID, id)
	if err != nil {
		return err
	}
	if err := authorize(s.policy, caller, policy.DeleteComment, policy.Resource{Comment: comment}, commentNotFound); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return storeErr(err, "delete comment", commentNotFound)
	}

	s.events.Publish(EventCommentDeleted, map[string]uint{"id": id, "postId": comment.PostID})
	return nil
}

func (s *CommentService) find(ctx context.Context, postID, id uint) (*models.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "find comment", commentNotFound)
	}
	if postID != 0 && comment.PostID != postID {
		return nil, apperr.New(apperr.NotFound, commentNotFound)
	}
	return comment, nil
}
