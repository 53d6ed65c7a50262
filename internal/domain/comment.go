package domain

// MaxCommentLength is the longest accepted comment body.
const MaxCommentLength = 500

// Comment is a user remark on a book. One level of reply nesting is
// supported via ParentID; deleting a parent cascades to its replies.
//
// IsDeleted is a vestigial soft-delete flag carried over from an earlier
// schema revision. It is stored but never consulted: comment deletion is a
// hard delete. Kept so existing rows round-trip unchanged.
type Comment struct {
	Record
	BookID      string `json:"book_id"`
	AuthorID    string `json:"author_id"`
	AuthorName  string `json:"author_name,omitempty"`  // denormalized for display
	AvatarColor string `json:"avatar_color,omitempty"` // derived from AuthorID, never stored
	Content     string `json:"content"`
	ParentID    string `json:"parent_id,omitempty"`
	IsDeleted   bool   `json:"-"`
	LikeCount   int    `json:"like_count"`
	LikedByUser bool   `json:"liked_by_user,omitempty"` // relative to the requesting actor

	// Replies holds child comments in posting order. Populated by list
	// queries for top-level comments only.
	Replies []*Comment `json:"replies,omitempty"`
}

// IsReply reports whether the comment is nested under a parent.
func (c *Comment) IsReply() bool {
	return c.ParentID != ""
}
