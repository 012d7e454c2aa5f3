// Command seed inserts a small demo hierarchy: one project with a text
// source carrying a summary, two translations, a video and a link. It prints
// the created ids so the rows are easy to find in psql.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/JaredForchheimer/Hack-Coms/internal/config"
	"github.com/JaredForchheimer/Hack-Coms/internal/domain/models"
	"github.com/JaredForchheimer/Hack-Coms/internal/repository/postgres"
	"github.com/JaredForchheimer/Hack-Coms/internal/service"
)

func main() {
	configFile := flag.String("config", "", "optional YAML config file (overrides environment)")
	logDir := flag.String("log-dir", "", "also write logs to a timestamped file in this directory")
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, closeLog, err := newLogger(cfg, *logDir)
	if err != nil {
		log.Fatalf("setup logging: %v", err)
	}
	defer closeLog()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	repoCfg := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	projects := postgres.NewProjectRepository(repoCfg)
	sources := postgres.NewTextSourceRepository(repoCfg)
	summaries := postgres.NewSummaryRepository(repoCfg)
	translations := postgres.NewTranslationRepository(repoCfg)
	videos := postgres.NewVideoRepository(repoCfg)
	links := postgres.NewLinkRepository(repoCfg)
	builder := service.NewTranslationBuilder(logger)

	desc := "Demo project seeded for local development"
	project := &models.Project{Name: "Demo Library", Description: &desc}
	if err := projects.Create(ctx, project); err != nil {
		log.Fatalf("seed project: %v", err)
	}
	fmt.Printf("project\t%d\n", project.ID)

	source := &models.TextSource{
		ProjectID:  project.ID,
		Title:      "Welcome Note",
		Content:    "Hello and welcome to the demo library. This note exists so the search and translation paths have something to chew on.",
		SourceType: models.DefaultSourceType,
	}
	if err := sources.Create(ctx, source); err != nil {
		log.Fatalf("seed text source: %v", err)
	}
	fmt.Printf("text_source\t%d\n", source.ID)

	summary := &models.Summary{
		TextSourceID: source.ID,
		Content:      "A short welcome note used as demo data.",
		SummaryType:  models.DefaultSummaryType,
	}
	if err := summaries.Create(ctx, summary); err != nil {
		log.Fatalf("seed summary: %v", err)
	}
	fmt.Printf("summary\t%d\n", summary.ID)

	for _, lang := range []string{"asl", "en"} {
		translation, err := builder.NewTranslation(source.ID, lang, nil, source.Content)
		if err != nil {
			log.Fatalf("build %s translation: %v", lang, err)
		}
		if err := translations.Create(ctx, translation); err != nil {
			log.Fatalf("seed %s translation: %v", lang, err)
		}
		fmt.Printf("translation\t%d\t%s\n", translation.ID, lang)
	}

	title := "Welcome clip"
	format := "mp4"
	duration := 42
	video := &models.Video{
		TextSourceID: source.ID,
		Title:        &title,
		FilePath:     "/media/demo/welcome.mp4",
		Format:       &format,
		Duration:     &duration,
	}
	if err := videos.Create(ctx, video); err != nil {
		log.Fatalf("seed video: %v", err)
	}
	fmt.Printf("video\t%d\n", video.ID)

	linkTitle := "Project homepage"
	link := &models.Link{
		TextSourceID: source.ID,
		URL:          "https://example.com/demo-library",
		Title:        &linkTitle,
	}
	if err := links.Create(ctx, link); err != nil {
		log.Fatalf("seed link: %v", err)
	}
	fmt.Printf("link\t%d\n", link.ID)

	logger.Info("seed complete", "project_id", project.ID)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load(), nil
}

func newLogger(cfg *config.Config, logDir string) (*slog.Logger, func(), error) {
	if logDir == "" {
		return config.NewLogger(os.Stdout, cfg.Debug), func() {}, nil
	}
	f, err := config.SetupLogFile(logDir, 10)
	if err != nil {
		return nil, nil, err
	}
	logger := config.NewLogger(io.MultiWriter(os.Stdout, f), cfg.Debug)
	return logger, func() { f.Close() }, nil
}
