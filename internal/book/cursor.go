package book

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCursor is returned when a cursor token cannot be decoded.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor counts how many records of the active result set are revealed.
// It holds no reference to the result set itself.
type Cursor struct {
	PageSize int
	Revealed int
}

// Reset starts a new result set with one page revealed.
func (c *Cursor) Reset(pageSize int) {
	c.PageSize = pageSize
	c.Revealed = pageSize
}

// Advance reveals one more page, saturating at math.MaxInt.
func (c *Cursor) Advance() {
	if c.Revealed > math.MaxInt-c.PageSize {
		c.Revealed = math.MaxInt
		return
	}
	c.Revealed += c.PageSize
}

// Remaining is how many records of a set of size n are still hidden.
func (c Cursor) Remaining(n int) int {
	return max(n-c.Revealed, 0)
}

// Window is how many records of a set of size n are shown.
func (c Cursor) Window(n int) int {
	return max(min(c.Revealed, n), 0)
}

// CursorData is the state carried by a page token between requests.
type CursorData struct {
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Revealed int    `json:"revealed"`
}

// Criteria returns the filter the token was issued for.
func (d CursorData) Criteria() Criteria {
	return Criteria{Title: d.Title, Author: d.Author, Genre: d.Genre}.Normalize()
}

// EncodeCursor encodes cursor data to a base64 string
func EncodeCursor(data CursorData) string {
	if data.Revealed <= 0 {
		return ""
	}
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(jsonBytes)
}

// DecodeCursor decodes a base64 cursor string to CursorData
func DecodeCursor(cursor string) (CursorData, error) {
	if cursor == "" {
		return CursorData{}, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return CursorData{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	var data CursorData
	if err := json.Unmarshal(decoded, &data); err != nil {
		return CursorData{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if data.Revealed < 0 {
		return CursorData{}, fmt.Errorf("%w: negative count", ErrInvalidCursor)
	}
	return data, nil
}
