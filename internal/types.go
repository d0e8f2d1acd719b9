// Package internal holds the small types shared across the translation
// pipeline.
package internal

// Citation is a source reference attached to a grounded translation.
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}
