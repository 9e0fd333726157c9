// Package policy decides who may do what to posts, comments and users.
//
// Decide is pure: it never touches storage. Callers confirm that the target
// exists before asking, so a missing resource is reported as not found rather
// than as a denial.
package policy

import "blogaulas/models"

type Action string

const (
	ListPosts     Action = "posts:list"
	ReadPost      Action = "posts:read"
	CreatePost    Action = "posts:create"
	EditPost      Action = "posts:edit"
	DeletePost    Action = "posts:delete"
	CreateComment Action = "comments:create"
	EditComment   Action = "comments:edit"
	DeleteComment Action = "comments:delete"
	ListUsers     Action = "users:list"
	ReadUser      Action = "users:read"
	CreateUser    Action = "users:create"
	UpdateUser    Action = "users:update"
	DeleteUser    Action = "users:delete"
)

type Decision int

const (
	Deny Decision = iota
	Allow
	// Conceal denies and hides the target: the caller is told it does not exist.
	Conceal
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Conceal:
		return "conceal"
	}
	return "deny"
}

// Resource is the target of an action. Only the field matching the action is read.
type Resource struct {
	Post    *models.Post
	Comment *models.Comment
	User    *models.User
}

type Policy struct {
	// StrictPostOwnership limits post edit and delete to the post's owner or a teacher.
	// When false any authenticated caller may edit or delete any post.
	StrictPostOwnership bool
}

func New(strictPostOwnership bool) *Policy {
	return &Policy{StrictPostOwnership: strictPostOwnership}
}

func (p *Policy) Decide(caller *models.Identity, action Action, res Resource) Decision {
	switch action {
	case ListPosts, ReadPost, CreateComment:
		return Allow

	case CreatePost:
		return allowIf(caller.IsTeacher())

	case EditPost, DeletePost:
		if caller == nil {
			return Deny
		}
		if !p.StrictPostOwnership {
			return Allow
		}
		if caller.IsTeacher() {
			return Allow
		}
		return allowIf(res.Post != nil && res.Post.AuthorID == caller.ID)

	case EditComment:
		return allowIf(isCommentAuthor(caller, res.Comment))

	case DeleteComment:
		return allowIf(isCommentAuthor(caller, res.Comment) || caller.IsTeacher())

	case ListUsers, ReadUser, CreateUser, UpdateUser:
		return allowIf(caller.IsTeacher())

	case DeleteUser:
		if res.User != nil && !res.User.Role.Deletable() {
			return Conceal
		}
		return allowIf(caller.IsTeacher() && res.User != nil)
	}
	return Deny
}

// Authorship is a plain string match on the comment's author label.
func isCommentAuthor(caller *models.Identity, c *models.Comment) bool {
	return caller != nil && c != nil && caller.Username != "" && caller.Username == c.Author
}

func allowIf(ok bool) Decision {
	if ok {
		return Allow
	}
	return Deny
}
