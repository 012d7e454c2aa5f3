package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain"
	"github.com/JaredForchheimer/Hack-Coms/internal/domain/models"
	"github.com/JaredForchheimer/Hack-Coms/internal/domain/repositories"
)

// fakeTxManager runs the scope function directly and counts scopes so tests
// can assert multi-read operations share one.
type fakeTxManager struct {
	scopes int
}

func (f *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	f.scopes++
	return fn(ctx)
}

// The fakes embed their interface so only the methods a test exercises need
// implementing; anything else panics loudly.

type fakeProjectRepo struct {
	repositories.ProjectRepository
	projects map[int64]models.Project
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id int64) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, domain.NewNotFoundError("project", id)
	}
	return &p, nil
}

type fakeTextSourceRepo struct {
	repositories.TextSourceRepository
	byProject  map[int64][]models.TextSource
	searchHits []models.TextSource
}

func (f *fakeTextSourceRepo) GetByProjectID(_ context.Context, projectID int64, limit, offset int) ([]models.TextSource, error) {
	return page(f.byProject[projectID], limit, offset), nil
}

func (f *fakeTextSourceRepo) SearchContent(_ context.Context, term string, projectID int64, limit int) ([]models.TextSource, error) {
	return f.searchHits, nil
}

type fakeSummaryRepo struct {
	repositories.SummaryRepository
	bySource   map[int64][]models.Summary
	searchHits []models.Summary
}

func (f *fakeSummaryRepo) GetBySourceID(_ context.Context, sourceID int64, limit, offset int) ([]models.Summary, error) {
	return page(f.bySource[sourceID], limit, offset), nil
}

func (f *fakeSummaryRepo) SearchContent(_ context.Context, term, summaryType string, limit int) ([]models.Summary, error) {
	return f.searchHits, nil
}

type fakeTranslationRepo struct {
	repositories.TranslationRepository
	bySource   map[int64][]models.Translation
	searchHits []models.Translation
}

func (f *fakeTranslationRepo) GetBySourceID(_ context.Context, sourceID int64, limit, offset int) ([]models.Translation, error) {
	return page(f.bySource[sourceID], limit, offset), nil
}

func (f *fakeTranslationRepo) SearchText(_ context.Context, term string, limit int) ([]models.Translation, error) {
	return f.searchHits, nil
}

type fakeVideoRepo struct {
	repositories.VideoRepository
	bySource map[int64][]models.Video
}

func (f *fakeVideoRepo) GetBySourceID(_ context.Context, sourceID int64, limit, offset int) ([]models.Video, error) {
	return page(f.bySource[sourceID], limit, offset), nil
}

type fakeLinkRepo struct {
	repositories.LinkRepository
	bySource map[int64][]models.Link
}

func (f *fakeLinkRepo) GetBySourceID(_ context.Context, sourceID int64, limit, offset int) ([]models.Link, error) {
	return page(f.bySource[sourceID], limit, offset), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func strptr(s string) *string { return &s }

func testLibrary() (*Library, *fakeTxManager) {
	tx := &fakeTxManager{}

	sources := []models.TextSource{
		{ID: 10, ProjectID: 1, Title: "First"},
		{ID: 11, ProjectID: 1, Title: "Second"},
	}
	repos := Repositories{
		Projects: &fakeProjectRepo{projects: map[int64]models.Project{
			1: {ID: 1, Name: "Demo"},
		}},
		TextSources: &fakeTextSourceRepo{byProject: map[int64][]models.TextSource{1: sources}},
		Summaries: &fakeSummaryRepo{bySource: map[int64][]models.Summary{
			10: {{ID: 100, TextSourceID: 10, Content: "s1", SummaryType: "general"}},
		}},
		Translations: &fakeTranslationRepo{bySource: map[int64][]models.Translation{
			10: {
				{ID: 200, TextSourceID: 10, LanguageCode: "asl"},
				{ID: 201, TextSourceID: 10, LanguageCode: "ja"},
			},
			11: {{ID: 202, TextSourceID: 11, LanguageCode: "asl"}},
		}},
		Videos: &fakeVideoRepo{bySource: map[int64][]models.Video{
			11: {{ID: 300, TextSourceID: 11, FilePath: "/v.mp4"}},
		}},
		Links: &fakeLinkRepo{bySource: map[int64][]models.Link{
			10: {{ID: 400, TextSourceID: 10, URL: "https://example.com"}},
		}},
	}
	return NewLibrary(tx, repos, testLogger()), tx
}

func TestGetCompleteProject(t *testing.T) {
	lib, tx := testLibrary()

	got, err := lib.GetCompleteProject(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetCompleteProject() error = %v", err)
	}

	if tx.scopes != 1 {
		t.Errorf("ran in %d tx scopes, want 1", tx.scopes)
	}
	if got.Project.Name != "Demo" {
		t.Errorf("project name = %q, want Demo", got.Project.Name)
	}
	if len(got.Sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(got.Sources))
	}

	first := got.Sources[0]
	if first.Source.ID != 10 {
		t.Errorf("first source id = %d, want 10 (insertion order)", first.Source.ID)
	}
	if len(first.Summaries) != 1 || len(first.Translations) != 2 || len(first.Links) != 1 || len(first.Videos) != 0 {
		t.Errorf("first source children = %d summaries, %d translations, %d videos, %d links",
			len(first.Summaries), len(first.Translations), len(first.Videos), len(first.Links))
	}

	second := got.Sources[1]
	if len(second.Videos) != 1 || len(second.Summaries) != 0 {
		t.Errorf("second source children = %d videos, %d summaries", len(second.Videos), len(second.Summaries))
	}
}

func TestGetCompleteProjectNotFound(t *testing.T) {
	lib, _ := testLibrary()

	_, err := lib.GetCompleteProject(context.Background(), 999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGetProjectStatistics(t *testing.T) {
	lib, _ := testLibrary()

	stats, err := lib.GetProjectStatistics(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetProjectStatistics() error = %v", err)
	}

	if stats.ProjectID != 1 || stats.ProjectName != "Demo" {
		t.Errorf("project identity = %d/%q", stats.ProjectID, stats.ProjectName)
	}
	if stats.SourceCount != 2 {
		t.Errorf("SourceCount = %d, want 2", stats.SourceCount)
	}
	if stats.SummaryCount != 1 || stats.TranslationCount != 3 || stats.VideoCount != 1 || stats.LinkCount != 1 {
		t.Errorf("counts = %d/%d/%d/%d, want 1/3/1/1",
			stats.SummaryCount, stats.TranslationCount, stats.VideoCount, stats.LinkCount)
	}
	if want := []string{"asl", "ja"}; !reflect.DeepEqual(stats.Languages, want) {
		t.Errorf("Languages = %v, want %v", stats.Languages, want)
	}
}

func TestSearchAll(t *testing.T) {
	lib, _ := testLibrary()
	lib.repos.TextSources.(*fakeTextSourceRepo).searchHits = []models.TextSource{
		{ID: 10, Title: "First"},
	}
	lib.repos.Summaries.(*fakeSummaryRepo).searchHits = []models.Summary{
		{ID: 100, SummaryType: "general"},
		{ID: 101, Title: strptr("Named"), SummaryType: "general"},
	}
	lib.repos.Translations.(*fakeTranslationRepo).searchHits = []models.Translation{
		{ID: 200, LanguageCode: "asl"},
	}

	hits, err := lib.SearchAll(context.Background(), "first")
	if err != nil {
		t.Fatalf("SearchAll() error = %v", err)
	}

	want := []SearchHit{
		{Type: "text_source", ID: 10, Title: "First"},
		{Type: "summary", ID: 100, Title: "general"},
		{Type: "summary", ID: 101, Title: "Named"},
		{Type: "translation", ID: 200, Title: "asl"},
	}
	if !reflect.DeepEqual(hits, want) {
		t.Errorf("hits = %v, want %v", hits, want)
	}
}

func TestSearchAllEmpty(t *testing.T) {
	lib, _ := testLibrary()

	hits, err := lib.SearchAll(context.Background(), "nothing-matches")
	if err != nil {
		t.Fatalf("SearchAll() error = %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits, want 0", len(hits))
	}
}
