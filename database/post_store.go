package database

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"blogaulas/models"
)

type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// List returns posts newest first. A non-empty q keeps posts whose title or
// content contains it, ignoring case.
func (s *PostStore) List(ctx context.Context, q string) ([]models.Post, error) {
	posts := []models.Post{}
	query := s.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if q != "" {
		pattern := "%" + escapeLike(q) + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}
	err := query.Find(&posts).Error
	return posts, translate(err, "list posts")
}

func (s *PostStore) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translate(err, "find post")
	}
	return &post, nil
}

func (s *PostStore) FindWithComments(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		First(&post, id).Error
	if err != nil {
		return nil, translate(err, "find post with comments")
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	return &post, nil
}

func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	return translate(s.db.WithContext(ctx).Create(post).Error, "create post")
}

func (s *PostStore) Update(ctx context.Context, post *models.Post) error {
	err := s.db.WithContext(ctx).Model(post).
		Select("title", "content", "updated_at").
		Updates(post).Error
	return translate(err, "update post")
}

// DeleteCascade removes the post and its comments in one transaction.
func (s *PostStore) DeleteCascade(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return errors.Wrap(err, "delete comments")
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete post row")
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err, "delete post")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
