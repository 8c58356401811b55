package posts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPost_ZeroCounters(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := NewPost("p1", "A", "B", now, "u1", "alice")

	assert.Equal(t, 0, p.Likes())
	assert.Equal(t, 0, p.Dislikes())
	assert.Equal(t, 0, p.Comments())
	assert.Equal(t, now, p.CreatedAt())
	assert.Equal(t, now, p.UpdatedAt())
	assert.Equal(t, "u1", p.CreatorID())
	assert.Equal(t, "alice", p.CreatorName())
}

func TestPost_CounterMethods(t *testing.T) {
	p := NewPost("p1", "A", "B", time.Now(), "u1", "alice")

	p.AddLike()
	p.AddLike()
	p.AddDislike()
	assert.Equal(t, 2, p.Likes())
	assert.Equal(t, 1, p.Dislikes())

	p.RemoveLike()
	p.RemoveDislike()
	assert.Equal(t, 1, p.Likes())
	assert.Equal(t, 0, p.Dislikes())
}

func TestPost_RemoveNeverGoesNegative(t *testing.T) {
	p := NewPost("p1", "A", "B", time.Now(), "u1", "alice")

	p.RemoveLike()
	p.RemoveDislike()

	assert.Equal(t, 0, p.Likes())
	assert.Equal(t, 0, p.Dislikes())
}

func TestPost_SetFields(t *testing.T) {
	p := NewPost("p1", "A", "B", time.Now(), "u1", "alice")
	p.SetTitle("new title")
	p.SetContent("new content")

	assert.Equal(t, "new title", p.Title())
	assert.Equal(t, "new content", p.Content())
}

func TestPost_RecordRoundTrip(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	rec := &PostRecord{
		ID:        "p1",
		CreatorID: "u1",
		Title:     "A",
		Content:   "B",
		Likes:     3,
		Dislikes:  2,
		Comments:  7,
		CreatedAt: created,
		UpdatedAt: updated,
	}

	p := PostFromRecord(rec, "alice")
	assert.Equal(t, rec, p.ToRecord())

	view := p.ToView()
	assert.Equal(t, "p1", view.ID)
	assert.Equal(t, 3, view.Likes)
	assert.Equal(t, 2, view.Dislikes)
	assert.Equal(t, 7, view.Comments)
	assert.Equal(t, CreatorView{ID: "u1", Name: "alice"}, view.Creator)
}

func TestPostFromRecord_ClampsCorruptCounters(t *testing.T) {
	p := PostFromRecord(&PostRecord{ID: "p1", Likes: -2, Dislikes: -1, Comments: -5}, "")

	assert.Equal(t, 0, p.Likes())
	assert.Equal(t, 0, p.Dislikes())
	assert.Equal(t, 0, p.Comments())
}
