package models

// Post is a read-only catalog entry. Content is raw markdown.
type Post struct {
	ID         int      `yaml:"id" json:"id"`
	Slug       string   `yaml:"slug" json:"slug"`
	Title      string   `yaml:"title" json:"title"`
	Date       string   `yaml:"date" json:"date"`
	Categories []string `yaml:"categories" json:"categories"`
	Excerpt    string   `yaml:"excerpt" json:"excerpt"`
	Content    string   `yaml:"content" json:"content"`
}

// HasCategory reports whether the post is labelled with name (exact match).
func (p Post) HasCategory(name string) bool {
	for _, c := range p.Categories {
		if c == name {
			return true
		}
	}
	return false
}

type Todo struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
