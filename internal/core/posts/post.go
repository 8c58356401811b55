package posts

import (
	"time"
)

// PostRecord is a row of the posts table
type PostRecord struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	ID        string    `json:"id" db:"id"`
	CreatorID string    `json:"creatorId" db:"creator_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Likes     int       `json:"likes" db:"likes"`
	Dislikes  int       `json:"dislikes" db:"dislikes"`
	Comments  int       `json:"comments" db:"comments"`
}

// PostWithCreatorName is a post row joined with its creator's display name.
// Used on read paths.
type PostWithCreatorName struct {
	PostRecord
	CreatorName string `json:"creatorName" db:"creator_name"`
}

// Post is the in-memory post entity.
// Counters are only changed through its methods and never go below zero.
type Post struct {
	createdAt   time.Time
	updatedAt   time.Time
	id          string
	title       string
	content     string
	creatorID   string
	creatorName string
	likes       int
	dislikes    int
	comments    int
}

// NewPost creates a post with zeroed counters
func NewPost(id, title, content string, now time.Time, creatorID, creatorName string) *Post {
	return &Post{
		id:          id,
		title:       title,
		content:     content,
		createdAt:   now,
		updatedAt:   now,
		creatorID:   creatorID,
		creatorName: creatorName,
	}
}

// PostFromRecord rebuilds the entity from a stored row
func PostFromRecord(rec *PostRecord, creatorName string) *Post {
	return &Post{
		id:          rec.ID,
		title:       rec.Title,
		content:     rec.Content,
		likes:       nonNegative(rec.Likes),
		dislikes:    nonNegative(rec.Dislikes),
		comments:    nonNegative(rec.Comments),
		createdAt:   rec.CreatedAt,
		updatedAt:   rec.UpdatedAt,
		creatorID:   rec.CreatorID,
		creatorName: creatorName,
	}
}

// ID returns the post identifier
func (p *Post) ID() string { return p.id }

// Title returns the post title
func (p *Post) Title() string { return p.title }

// Content returns the post body
func (p *Post) Content() string { return p.content }

// Likes returns the number of like reactions
func (p *Post) Likes() int { return p.likes }

// Dislikes returns the number of dislike reactions
func (p *Post) Dislikes() int { return p.dislikes }

// Comments returns the comment counter, carried through unchanged
func (p *Post) Comments() int { return p.comments }

// CreatedAt returns when the post was created
func (p *Post) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the stored update timestamp
func (p *Post) UpdatedAt() time.Time { return p.updatedAt }

// CreatorID returns the id of the user who created the post
func (p *Post) CreatorID() string { return p.creatorID }

// CreatorName returns the creator's display name
func (p *Post) CreatorName() string { return p.creatorName }

// SetTitle replaces the title. The update timestamp is left alone.
func (p *Post) SetTitle(title string) { p.title = title }

// SetContent replaces the body. The update timestamp is left alone.
func (p *Post) SetContent(content string) { p.content = content }

// AddLike increments the like count
func (p *Post) AddLike() { p.likes++ }

// RemoveLike decrements the like count, stopping at zero
func (p *Post) RemoveLike() {
	if p.likes > 0 {
		p.likes--
	}
}

// AddDislike increments the dislike count
func (p *Post) AddDislike() { p.dislikes++ }

// RemoveDislike decrements the dislike count, stopping at zero
func (p *Post) RemoveDislike() {
	if p.dislikes > 0 {
		p.dislikes--
	}
}

// ToRecord flattens the entity into a store row
func (p *Post) ToRecord() *PostRecord {
	return &PostRecord{
		ID:        p.id,
		CreatorID: p.creatorID,
		Title:     p.title,
		Content:   p.content,
		Likes:     p.likes,
		Dislikes:  p.dislikes,
		Comments:  p.comments,
		CreatedAt: p.createdAt,
		UpdatedAt: p.updatedAt,
	}
}

// ToView builds the public listing shape
func (p *Post) ToView() PostView {
	return PostView{
		ID:        p.id,
		Title:     p.title,
		Content:   p.content,
		Likes:     p.likes,
		Dislikes:  p.dislikes,
		Comments:  p.comments,
		CreatedAt: p.createdAt,
		UpdatedAt: p.updatedAt,
		Creator: CreatorView{
			ID:   p.creatorID,
			Name: p.creatorName,
		},
	}
}

// PostView is the post shape returned by listings
type PostView struct {
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Creator   CreatorView `json:"creator"`
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Likes     int         `json:"likes"`
	Dislikes  int         `json:"dislikes"`
	Comments  int         `json:"comments"`
}

// CreatorView identifies the author of a post
type CreatorView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreatePostInput is the input of Service.CreatePost.
// In every input, Token is the raw credential as received by the transport.
type CreatePostInput struct {
	Title   string
	Content string
	Token   string
}

// GetPostsInput is the input of Service.GetPosts
type GetPostsInput struct {
	Token string
}

// EditPostInput is the input of Service.EditPost
type EditPostInput struct {
	IDToEdit string
	Title    string
	Content  string
	Token    string
}

// DeletePostInput is the input of Service.DeletePost
type DeletePostInput struct {
	IDToDelete string
	Token      string
}

// LikeOrDislikePostInput is the input of Service.LikeOrDislikePost.
// Like is true for a like and false for a dislike.
type LikeOrDislikePostInput struct {
	PostID string
	Token  string
	Like   bool
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
