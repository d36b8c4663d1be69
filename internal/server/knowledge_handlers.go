package server

import (
	"log"
	"net/http"

	"github.com/example/maternal/internal/knowledge"
)

// articleSummary is the list view of an article
type articleSummary struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Sections    []sectionSummary `json:"sections"`
}

type sectionSummary struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Keywords          []string `json:"keywords,omitempty"`
	EstimatedReadTime int      `json:"estimatedReadTime"`
	Completed         bool     `json:"completed"`
	Subsections       []string `json:"subsections,omitempty"`
}

// sectionView is one section with its content rendered to HTML
type sectionView struct {
	ArticleID         string `json:"articleId"`
	SectionID         string `json:"sectionId"`
	Title             string `json:"title"`
	EstimatedReadTime int    `json:"estimatedReadTime"`
	HTML              string `json:"html"`
	Completed         bool   `json:"completed"`
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	articles := s.catalog.Articles()
	out := make([]articleSummary, 0, len(articles))
	for _, a := range articles {
		out = append(out, s.summarize(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	article, ok := s.catalog.Article(r.PathValue("articleID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown article")
		return
	}
	writeJSON(w, http.StatusOK, s.summarize(article))
}

func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request) {
	ref, ok := s.catalog.Section(r.PathValue("sectionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown section")
		return
	}

	html, err := knowledge.RenderHTML(ref.Content)
	if err != nil {
		log.Printf("server: failed to render section %s: %v", ref.SectionID, err)
		writeError(w, http.StatusInternalServerError, "failed to render section")
		return
	}

	writeJSON(w, http.StatusOK, sectionView{
		ArticleID:         ref.ArticleID,
		SectionID:         ref.SectionID,
		Title:             ref.Title,
		EstimatedReadTime: ref.EstimatedReadTime,
		HTML:              html,
		Completed:         s.progress.IsSectionCompleted(ref.SectionID),
	})
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.progress.LearningProgress())
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	s.progress.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) summarize(a knowledge.Article) articleSummary {
	summary := articleSummary{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Sections:    make([]sectionSummary, 0, len(a.Sections)),
	}
	for _, section := range a.Sections {
		entry := sectionSummary{
			ID:                section.ID,
			Title:             section.Title,
			Keywords:          section.Keywords,
			EstimatedReadTime: section.EstimatedReadTime,
			Completed:         s.progress.IsSectionCompleted(section.ID),
		}
		for _, sub := range section.Subsections {
			entry.Subsections = append(entry.Subsections, sub.ID)
		}
		summary.Sections = append(summary.Sections, entry)
	}
	return summary
}
