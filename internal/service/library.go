package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/JaredForchheimer/Hack-Coms/internal/config"
	"github.com/JaredForchheimer/Hack-Coms/internal/domain/models"
	"github.com/JaredForchheimer/Hack-Coms/internal/domain/repositories"
)

// Repositories bundles the per-entity repositories the library composes.
type Repositories struct {
	Projects     repositories.ProjectRepository
	TextSources  repositories.TextSourceRepository
	Summaries    repositories.SummaryRepository
	Translations repositories.TranslationRepository
	Videos       repositories.VideoRepository
	Links        repositories.LinkRepository
}

// SourceContent is a text source with all of its child collections.
type SourceContent struct {
	Source       models.TextSource    `json:"source"`
	Summaries    []models.Summary     `json:"summaries"`
	Translations []models.Translation `json:"translations"`
	Videos       []models.Video       `json:"videos"`
	Links        []models.Link        `json:"links"`
}

// CompleteProject is a project with its full source tree.
type CompleteProject struct {
	Project models.Project  `json:"project"`
	Sources []SourceContent `json:"sources"`
}

// ProjectStatistics summarizes the contents of one project.
type ProjectStatistics struct {
	ProjectID        int64    `json:"project_id"`
	ProjectName      string   `json:"project_name"`
	SourceCount      int64    `json:"source_count"`
	SummaryCount     int64    `json:"summary_count"`
	TranslationCount int64    `json:"translation_count"`
	VideoCount       int64    `json:"video_count"`
	LinkCount        int64    `json:"link_count"`
	Languages        []string `json:"languages"`
}

// SearchHit is one cross-entity search result.
type SearchHit struct {
	Type  string `json:"type"` // "text_source", "summary" or "translation"
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Library is the aggregate query layer over the repositories.
// GetCompleteProject and GetProjectStatistics run their reads inside one
// transaction scope so they see a single read-committed view rather than
// six independent ones; SearchAll issues plain reads per repository.
type Library struct {
	tx     repositories.TransactionManager
	repos  Repositories
	logger *slog.Logger
}

// NewLibrary creates a new library service.
func NewLibrary(tx repositories.TransactionManager, repos Repositories, logger *slog.Logger) *Library {
	return &Library{
		tx:     tx,
		repos:  repos,
		logger: logger,
	}
}

// GetCompleteProject assembles the project and its full source tree: every
// source with all of its summaries, translations, videos and links, each
// collection in insertion order.
func (l *Library) GetCompleteProject(ctx context.Context, projectID int64) (*CompleteProject, error) {
	var result *CompleteProject

	err := l.tx.ExecTx(ctx, func(txCtx context.Context) error {
		project, err := l.repos.Projects.GetByID(txCtx, projectID)
		if err != nil {
			return err
		}

		sources, err := l.allSources(txCtx, projectID)
		if err != nil {
			return err
		}

		tree := make([]SourceContent, 0, len(sources))
		for _, src := range sources {
			content, err := l.sourceContent(txCtx, src)
			if err != nil {
				return err
			}
			tree = append(tree, *content)
		}

		result = &CompleteProject{Project: *project, Sources: tree}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Debug("complete project assembled",
		"project_id", projectID,
		"sources", len(result.Sources),
	)
	return result, nil
}

func (l *Library) sourceContent(ctx context.Context, src models.TextSource) (*SourceContent, error) {
	content := SourceContent{Source: src}

	for offset := 0; ; offset += config.DefaultPageSize {
		page, err := l.repos.Summaries.GetBySourceID(ctx, src.ID, config.DefaultPageSize, offset)
		if err != nil {
			return nil, err
		}
		content.Summaries = append(content.Summaries, page...)
		if len(page) < config.DefaultPageSize {
			break
		}
	}
	for offset := 0; ; offset += config.DefaultPageSize {
		page, err := l.repos.Translations.GetBySourceID(ctx, src.ID, config.DefaultPageSize, offset)
		if err != nil {
			return nil, err
		}
		content.Translations = append(content.Translations, page...)
		if len(page) < config.DefaultPageSize {
			break
		}
	}
	for offset := 0; ; offset += config.DefaultPageSize {
		page, err := l.repos.Videos.GetBySourceID(ctx, src.ID, config.DefaultPageSize, offset)
		if err != nil {
			return nil, err
		}
		content.Videos = append(content.Videos, page...)
		if len(page) < config.DefaultPageSize {
			break
		}
	}
	for offset := 0; ; offset += config.DefaultPageSize {
		page, err := l.repos.Links.GetBySourceID(ctx, src.ID, config.DefaultPageSize, offset)
		if err != nil {
			return nil, err
		}
		content.Links = append(content.Links, page...)
		if len(page) < config.DefaultPageSize {
			break
		}
	}

	return &content, nil
}

func (l *Library) allSources(ctx context.Context, projectID int64) ([]models.TextSource, error) {
	var sources []models.TextSource
	for offset := 0; ; offset += config.DefaultPageSize {
		page, err := l.repos.TextSources.GetByProjectID(ctx, projectID, config.DefaultPageSize, offset)
		if err != nil {
			return nil, err
		}
		sources = append(sources, page...)
		if len(page) < config.DefaultPageSize {
			break
		}
	}
	return sources, nil
}

// GetProjectStatistics counts the project's children per type and collects
// the distinct translation languages.
func (l *Library) GetProjectStatistics(ctx context.Context, projectID int64) (*ProjectStatistics, error) {
	var stats *ProjectStatistics

	err := l.tx.ExecTx(ctx, func(txCtx context.Context) error {
		project, err := l.repos.Projects.GetByID(txCtx, projectID)
		if err != nil {
			return err
		}

		sources, err := l.allSources(txCtx, projectID)
		if err != nil {
			return err
		}

		s := &ProjectStatistics{
			ProjectID:   project.ID,
			ProjectName: project.Name,
			SourceCount: int64(len(sources)),
			Languages:   []string{},
		}

		languages := map[string]struct{}{}
		for _, src := range sources {
			content, err := l.sourceContent(txCtx, src)
			if err != nil {
				return err
			}
			s.SummaryCount += int64(len(content.Summaries))
			s.TranslationCount += int64(len(content.Translations))
			s.VideoCount += int64(len(content.Videos))
			s.LinkCount += int64(len(content.Links))
			for _, t := range content.Translations {
				languages[t.LanguageCode] = struct{}{}
			}
		}
		for lang := range languages {
			s.Languages = append(s.Languages, lang)
		}
		sort.Strings(s.Languages)

		stats = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// SearchAll runs the term against text source content, summary content and
// translation original text, returning tagged hits. Within each type the
// hits come back in insertion order.
func (l *Library) SearchAll(ctx context.Context, term string) ([]SearchHit, error) {
	hits := []SearchHit{}

	sources, err := l.repos.TextSources.SearchContent(ctx, term, 0, config.DefaultPageSize)
	if err != nil {
		return nil, err
	}
	for _, s := range sources {
		hits = append(hits, SearchHit{Type: "text_source", ID: s.ID, Title: s.Title})
	}

	summaries, err := l.repos.Summaries.SearchContent(ctx, term, "", config.DefaultPageSize)
	if err != nil {
		return nil, err
	}
	for _, s := range summaries {
		hits = append(hits, SearchHit{Type: "summary", ID: s.ID, Title: derefOr(s.Title, s.SummaryType)})
	}

	translations, err := l.repos.Translations.SearchText(ctx, term, config.DefaultPageSize)
	if err != nil {
		return nil, err
	}
	for _, t := range translations {
		hits = append(hits, SearchHit{Type: "translation", ID: t.ID, Title: derefOr(t.Title, t.LanguageCode)})
	}

	l.logger.Debug("cross-entity search", "term", term, "hits", len(hits))
	return hits, nil
}

func derefOr(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}
