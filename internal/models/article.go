package models

import "time"

// Article is the central content entity served by the content store.
// DocumentID is the stable store-assigned identifier used for detail
// lookups; the numeric ID is internal to the store.
type Article struct {
	ID          int        `json:"id"`
	DocumentID  string     `json:"documentId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content,omitempty"`
	Blocks      BlockList  `json:"blocks,omitempty"`
	Cover       *Media     `json:"cover,omitempty"`
	Category    *Category  `json:"category,omitempty"`
	Author      *Author    `json:"author,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// DisplayDate returns the publication date, falling back to the
// creation date for drafts that were never published.
func (a *Article) DisplayDate() time.Time {
	if a.PublishedAt != nil {
		return *a.PublishedAt
	}
	return a.CreatedAt
}

// Media is an uploaded file reference. URL may be relative to the
// content store's base URL.
type Media struct {
	ID              int    `json:"id"`
	Name            string `json:"name,omitempty"`
	URL             string `json:"url"`
	AlternativeText string `json:"alternativeText,omitempty"`
	Caption         string `json:"caption,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
	Mime            string `json:"mime,omitempty"`
}

// Category groups articles
type Category struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId,omitempty"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
}

// Author is the article byline
type Author struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Avatar *Media `json:"avatar,omitempty"`
}

// Pagination mirrors the store's pagination metadata
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// Meta is the metadata half of a store response envelope
type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ListEnvelope is the store's collection response: { data: [...], meta: {...} }
type ListEnvelope struct {
	Data []Article `json:"data"`
	Meta Meta      `json:"meta"`
}

// SingleEnvelope is the store's single-entity response: { data: {...} }
type SingleEnvelope struct {
	Data Article `json:"data"`
	Meta Meta    `json:"meta"`
}

// ErrorEnvelope is the store's error response body
type ErrorEnvelope struct {
	Error StoreError `json:"error"`
}

// StoreError is the error object inside an ErrorEnvelope
type StoreError struct {
	Status  int    `json:"status"`
	Name    string `json:"name"`
	Message string `json:"message"`
}
