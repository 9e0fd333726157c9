package services

import (
	"context"
	"strings"

	"blogaulas/apperr"
	"blogaulas/models"
	"blogaulas/policy"
)

const postNotFound = "post not found"

type PostService struct {
	posts  PostStore
	policy *policy.Policy
	events Publisher
}

func NewPostService(posts PostStore, pol *policy.Policy, events Publisher) *PostService {
	return &PostService{posts: posts, policy: pol, events: orNop(events)}
}

// ListPosts returns posts newest first. A non-empty q is matched verbatim,
// whitespace included, against title and content.
func (s *PostService) ListPosts(ctx context.Context, q string) ([]models.Post, error) {
	posts, err := s.posts.List(ctx, q)
	if err != nil {
		return nil, storeErr(err, "list posts", postNotFound)
	}
	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.FindWithComments(ctx, id)
	if err != nil {
		return nil, storeErr(err, "get post", postNotFound)
	}
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, caller *models.Identity, req *models.CreatePostRequest) (*models.Post, error) {
	title, content := strings.TrimSpace(req.Title), strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, apperr.New(apperr.Validation, "title and content are required")
	}
	if err := authorize(s.policy, caller, policy.CreatePost, policy.Resource{}, postNotFound); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    title,
		Content:  content,
		Author:   caller.Username,
		AuthorID: caller.ID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, storeErr(err, "create post", postNotFound)
	}

	s.events.Publish(EventPostCreated, post)
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, caller *models.Identity, id uint, req *models.UpdatePostRequest) (*models.Post, error) {
	title, content := strings.TrimSpace(req.Title), strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, apperr.New(apperr.Validation, "title and content are required")
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "find post", postNotFound)
	}
	if err := authorize(s.policy, caller, policy.EditPost, policy.Resource{Post: post}, postNotFound); err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, storeErr(err, "update post", postNotFound)
	}

	s.events.Publish(EventPostUpdated, post)
	return post, nil
}

// DeletePost removes the post together with its comments.
func (s *PostService) DeletePost(ctx context.Context, caller *models.Identity, id uint) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return storeErr(err, "find post", postNotFound)
	}
	if err := authorize(s.policy, caller, policy.DeletePost, policy.Resource{Post: post}, postNotFound); err != nil {
		return err
	}

	if err := s.posts.DeleteCascade(ctx, id); err != nil {
		return storeErr(err, "delete post", postNotFound)
	}

	s.events.Publish(EventPostDeleted, map[string]uint{"id": id})
	return nil
}
