// Package memstore is an in-memory stand-in for the gorm stores, used by
// service and HTTP tests. It returns the same gorm sentinel errors.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"blogaulas/models"
)

type Store struct {
	mu       sync.Mutex
	nextID   uint
	users    map[uint]models.User
	posts    map[uint]models.Post
	comments map[uint]models.Comment
	clock    time.Time

	// FailWith makes every call return this error when set.
	FailWith error
}

func New() *Store {
	return &Store{
		users:    map[uint]models.User{},
		posts:    map[uint]models.Post{},
		comments: map[uint]models.Comment{},
		clock:    time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (s *Store) Users() *Users       { return &Users{s} }
func (s *Store) Posts() *Posts       { return &Posts{s} }
func (s *Store) Comments() *Comments { return &Comments{s} }

// tick returns strictly increasing timestamps so ordering is deterministic.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) lock() (func(), error) {
	s.mu.Lock()
	if s.FailWith != nil {
		s.mu.Unlock()
		return nil, s.FailWith
	}
	return s.mu.Unlock, nil
}

type Users struct{ s *Store }

func (u *Users) Create(_ context.Context, user *models.User) error {
	unlock, err := u.s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	for _, existing := range u.s.users {
		if existing.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = u.s.id()
	user.CreatedAt = u.s.tick()
	user.UpdatedAt = user.CreatedAt
	u.s.users[user.ID] = *user
	return nil
}

func (u *Users) List(_ context.Context, role models.Role) ([]models.User, error) {
	unlock, err := u.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	out := []models.User{}
	for _, user := range u.s.users {
		if role == "" || user.Role == role {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (u *Users) FindByID(_ context.Context, id uint) (*models.User, error) {
	unlock, err := u.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (u *Users) FindByUsername(_ context.Context, username string) (*models.User, error) {
	unlock, err := u.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	for _, user := range u.s.users {
		if user.Username == username {
			found := user
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (u *Users) Update(_ context.Context, user *models.User) error {
	unlock, err := u.s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	existing, ok := u.s.users[user.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for id, other := range u.s.users {
		if id != user.ID && other.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	existing.Username = user.Username
	existing.PasswordHash = user.PasswordHash
	existing.UpdatedAt = u.s.tick()
	u.s.users[user.ID] = existing
	*user = existing
	return nil
}

func (u *Users) Delete(_ context.Context, id uint) error {
	unlock, err := u.s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	user, ok := u.s.users[id]
	if !ok || !user.Role.Deletable() {
		return gorm.ErrRecordNotFound
	}
	delete(u.s.users, id)
	return nil
}

type Posts struct{ s *Store }

func (p *Posts) List(_ context.Context, q string) ([]models.Post, error) {
	unlock, err := p.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	needle := strings.ToLower(q)
	out := []models.Post{}
	for _, post := range p.s.posts {
		if needle == "" ||
			strings.Contains(strings.ToLower(post.Title), needle) ||
			strings.Contains(strings.ToLower(post.Content), needle) {
			out = append(out, post)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (p *Posts) FindByID(_ context.Context, id uint) (*models.Post, error) {
	unlock, err := p.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	post, ok := p.s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &post, nil
}

func (p *Posts) FindWithComments(_ context.Context, id uint) (*models.Post, error) {
	unlock, err := p.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	post, ok := p.s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	post.Comments = []models.Comment{}
	for _, c := range p.s.comments {
		if c.PostID == id {
			post.Comments = append(post.Comments, c)
		}
	}
	sort.Slice(post.Comments, func(i, j int) bool { return post.Comments[i].ID < post.Comments[j].ID })
	return &post, nil
}

func (p *Posts) Create(_ context.Context, post *models.Post) error {
	unlock, err := p.s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	post.ID = p.s.id()
	post.CreatedAt = p.s.tick()
	post.UpdatedAt = post.CreatedAt
	p.s.posts[post.ID] = *post
	return nil
}

func (p *Posts) Update(_ context.Context, post *models.Post) error {
	unlock, err := p.s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	existing, ok := p.s.posts[post.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.Title = post.Title
	existing.Content = post.Content
	existing.UpdatedAt = p.s.tick()
	p.s.posts[post.ID] = existing
	*post = existing
	return nil
}

func (p *Posts) DeleteCascade(_ context.Context, id uint) error {
	unlock, err := p.s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := p.s.posts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for cid, c := range p.s.comments {
		if c.PostID == id {
			delete(p.s.comments, cid)
		}
	}
	delete(p.s.posts, id)
	return nil
}

type Comments struct{ s *Store }

func (c *Comments) FindByID(_ context.Context, id uint) (*models.Comment, error) {
	unlock, err := c.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	comment, ok := c.s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &comment, nil
}

func (c *Comments) Create(_ context.Context, comment *models.Comment) error {
	unlock, err := c.s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := c.s.posts[comment.PostID]; !ok {
		return gorm.ErrRecordNotFound
	}
	comment.ID = c.s.id()
	comment.CreatedAt = c.s.tick()
	comment.UpdatedAt = comment.CreatedAt
	c.s.comments[comment.ID] = *comment
	return nil
}

func (c *Comments) Update(_ context.Context, comment *models.Comment) error {
	unlock, err := c.s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	existing, ok := c.s.comments[comment.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.Content = comment.Content
	existing.UpdatedAt = c.s.tick()
	c.s.comments[comment.ID] = existing
	*comment = existing
	return nil
}

func (c *Comments) Delete(_ context.Context, id uint) error {
	unlock, err := c.s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := c.s.comments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(c.s.comments, id)
	return nil
}
