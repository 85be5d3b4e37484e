package models

import "time"

// Reply is a single answer on a question. Replies exist only as part
// of their parent question and keep insertion order.
type Reply struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Question is a forum post with an ordered list of replies. The author
// field is the username recorded at creation time and is the only
// principal allowed to delete the question.
type Question struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	Replies   []Reply   `json:"replies"`
	CreatedAt time.Time `json:"createdAt"`
}
