package database

import (
	"context"

	"gorm.io/gorm"

	"blogaulas/models"
)

type CommentStore struct {
	db *gorm.DB
}

func NewCommentStore(db *gorm.DB) *CommentStore {
	return &CommentStore{db: db}
}

func (s *CommentStore) FindByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, translate(err, "find comment")
	}
	return &comment, nil
}

func (s *CommentStore) Create(ctx context.Context, comment *models.Comment) error {
	return translate(s.db.WithContext(ctx).Create(comment).Error, "create comment")
}

func (s *CommentStore) Update(ctx context.Context, comment *models.Comment) error {
	err := s.db.WithContext(ctx).Model(comment).
		Select("content", "updated_at").
		Updates(comment).Error
	return translate(err, "update comment")
}

func (s *CommentStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete comment")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete comment")
	}
	return nil
}
