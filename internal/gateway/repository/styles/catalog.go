// Package styles holds the catalogue of deliverable styles a client can
// browse and pin to a moodboard.
package styles

import "strings"

// Style is one catalogued visual reference.
type Style struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Tags       []string `json:"tags"`
	Mood       []string `json:"mood"`
	PreviewURL string   `json:"previewUrl"`
}

// Catalog is the built-in style set. Styles ship with the binary; client
// uploads become moodboard items, not catalogue entries.
var Catalog = []Style{
	{ID: "minimal-mono", Name: "Minimal Monochrome", Tags: []string{"minimal", "clean", "typography"}, Mood: []string{"calm", "premium"}, PreviewURL: "/static/styles/minimal-mono.jpg"},
	{ID: "bold-gradient", Name: "Bold Gradients", Tags: []string{"gradient", "vibrant", "modern"}, Mood: []string{"energetic", "playful"}, PreviewURL: "/static/styles/bold-gradient.jpg"},
	{ID: "editorial-serif", Name: "Editorial Serif", Tags: []string{"editorial", "serif", "magazine"}, Mood: []string{"authoritative", "refined"}, PreviewURL: "/static/styles/editorial-serif.jpg"},
	{ID: "hand-drawn", Name: "Hand Drawn", Tags: []string{"illustration", "sketch", "organic"}, Mood: []string{"friendly", "warm"}, PreviewURL: "/static/styles/hand-drawn.jpg"},
	{ID: "retro-print", Name: "Retro Print", Tags: []string{"retro", "print", "texture"}, Mood: []string{"nostalgic", "bold"}, PreviewURL: "/static/styles/retro-print.jpg"},
	{ID: "neon-dark", Name: "Neon on Dark", Tags: []string{"neon", "dark", "tech"}, Mood: []string{"edgy", "futuristic"}, PreviewURL: "/static/styles/neon-dark.jpg"},
	{ID: "pastel-soft", Name: "Soft Pastels", Tags: []string{"pastel", "soft", "rounded"}, Mood: []string{"gentle", "approachable"}, PreviewURL: "/static/styles/pastel-soft.jpg"},
	{ID: "corporate-blue", Name: "Corporate Blue", Tags: []string{"corporate", "professional", "blue"}, Mood: []string{"trustworthy", "serious"}, PreviewURL: "/static/styles/corporate-blue.jpg"},
	{ID: "photo-overlay", Name: "Photo Overlay", Tags: []string{"photo", "overlay", "cinematic"}, Mood: []string{"dramatic", "authentic"}, PreviewURL: "/static/styles/photo-overlay.jpg"},
	{ID: "geometric-flat", Name: "Geometric Flat", Tags: []string{"geometric", "flat", "abstract"}, Mood: []string{"structured", "modern"}, PreviewURL: "/static/styles/geometric-flat.jpg"},
}

// ByID looks up a catalogued style.
func ByID(id string) (Style, bool) {
	id = strings.TrimSpace(id)
	for _, s := range Catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Style{}, false
}
