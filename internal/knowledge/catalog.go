package knowledge

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed data/*.json
var dataFS embed.FS

// Subsection is a sub-chapter of a knowledge section. It shares the parent
// section's read-time estimate.
type Subsection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Section is one addressable unit of the knowledge corpus. IDs are stable:
// the completed-section set and the tracking rows reference them.
type Section struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	Content           string       `json:"content"`
	Keywords          []string     `json:"keywords"`
	EstimatedReadTime int          `json:"estimatedReadTime"` // minutes
	Subsections       []Subsection `json:"subsections"`
}

// Article is a top-level knowledge article with its ordered sections
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Sections    []Section `json:"sections"`
}

// SectionRef locates a section or subsection inside the catalog
type SectionRef struct {
	ArticleID         string
	SectionID         string
	Title             string
	Content           string
	EstimatedReadTime int
}

// Catalog is the static knowledge corpus, loaded once from the embedded
// content files. It is read-only after Load.
type Catalog struct {
	articles []Article
	sections map[string]SectionRef
}

// Load parses the embedded content files into a catalog
func Load() (*Catalog, error) {
	entries, err := dataFS.ReadDir("data")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded content: %w", err)
	}

	c := &Catalog{sections: make(map[string]SectionRef)}

	// Deterministic article order regardless of embed ordering
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := dataFS.ReadFile("data/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		var article Article
		if err := json.Unmarshal(raw, &article); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		c.articles = append(c.articles, article)

		for _, section := range article.Sections {
			if err := c.index(article.ID, section.ID, section.Title, section.Content, section.EstimatedReadTime); err != nil {
				return nil, err
			}
			for _, sub := range section.Subsections {
				if err := c.index(article.ID, sub.ID, sub.Title, sub.Content, section.EstimatedReadTime); err != nil {
					return nil, err
				}
			}
		}
	}

	return c, nil
}

func (c *Catalog) index(articleID, sectionID, title, content string, readTime int) error {
	if _, exists := c.sections[sectionID]; exists {
		return fmt.Errorf("duplicate section id %q", sectionID)
	}
	c.sections[sectionID] = SectionRef{
		ArticleID:         articleID,
		SectionID:         sectionID,
		Title:             title,
		Content:           content,
		EstimatedReadTime: readTime,
	}
	return nil
}

// Articles returns all articles in stable order
func (c *Catalog) Articles() []Article {
	return c.articles
}

// Article returns one article by id
func (c *Catalog) Article(id string) (Article, bool) {
	for _, a := range c.articles {
		if a.ID == id {
			return a, true
		}
	}
	return Article{}, false
}

// Section looks up a section or subsection anywhere in the corpus
func (c *Catalog) Section(sectionID string) (SectionRef, bool) {
	ref, ok := c.sections[sectionID]
	return ref, ok
}

// AllSectionIDs returns the ids of every section and subsection, in article
// order. Its length is the fixed total the learning progress is derived
// against.
func (c *Catalog) AllSectionIDs() []string {
	var ids []string
	for _, article := range c.articles {
		for _, section := range article.Sections {
			ids = append(ids, section.ID)
			for _, sub := range section.Subsections {
				ids = append(ids, sub.ID)
			}
		}
	}
	return ids
}
