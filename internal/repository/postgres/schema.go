package postgres

import (
	"context"
	"fmt"
)

// CreateSchema creates the six entity tables and their indexes if absent.
// Child tables declare ON DELETE CASCADE so a single delete on a cascade
// root removes the whole subtree atomically.
func CreateSchema(ctx context.Context, pool *Pool, tables *TableNames) error {
	stmts := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description TEXT,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
				metadata JSONB DEFAULT '{}'
			)`, tables.Projects),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				project_id BIGINT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				title VARCHAR(255) NOT NULL,
				content TEXT NOT NULL,
				source_type VARCHAR(50) DEFAULT 'text',
				source_url VARCHAR(500),
				created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
				metadata JSONB DEFAULT '{}'
			)`, tables.TextSources, tables.Projects),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				text_source_id BIGINT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				title VARCHAR(255),
				content TEXT NOT NULL,
				summary_type VARCHAR(50) DEFAULT 'general',
				created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
				metadata JSONB DEFAULT '{}'
			)`, tables.Summaries, tables.TextSources),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				text_source_id BIGINT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				language_code VARCHAR(10) NOT NULL,
				title VARCHAR(255),
				tokens JSONB NOT NULL,
				original_text TEXT,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
				metadata JSONB DEFAULT '{}'
			)`, tables.Translations, tables.TextSources),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				text_source_id BIGINT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				title VARCHAR(255),
				file_path VARCHAR(500) NOT NULL,
				file_url VARCHAR(500),
				file_size BIGINT,
				duration INTEGER,
				format VARCHAR(20),
				thumbnail_path VARCHAR(500),
				created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
				metadata JSONB DEFAULT '{}'
			)`, tables.Videos, tables.TextSources),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				text_source_id BIGINT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				url VARCHAR(500) NOT NULL,
				title VARCHAR(255),
				description TEXT,
				link_type VARCHAR(50) DEFAULT 'reference',
				is_active BOOLEAN DEFAULT TRUE,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
				metadata JSONB DEFAULT '{}'
			)`, tables.Links, tables.TextSources),
	}

	stmts = append(stmts, indexStatements(tables)...)

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return translateError(err, "create schema")
		}
	}
	return nil
}

func indexStatements(tables *TableNames) []string {
	idx := func(table, column string) string {
		return fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s(%s)",
			table, column, table, column)
	}
	return []string{
		idx(tables.Projects, "name"),
		idx(tables.Projects, "created_at"),
		idx(tables.TextSources, "project_id"),
		idx(tables.TextSources, "source_type"),
		idx(tables.Summaries, "text_source_id"),
		idx(tables.Summaries, "summary_type"),
		idx(tables.Translations, "text_source_id"),
		idx(tables.Translations, "language_code"),
		idx(tables.Videos, "text_source_id"),
		idx(tables.Videos, "format"),
		idx(tables.Links, "text_source_id"),
		idx(tables.Links, "link_type"),
		idx(tables.Links, "is_active"),
	}
}

// DropSchema removes all six tables. Children first, in case the tables were
// created without cascading foreign keys.
func DropSchema(ctx context.Context, pool *Pool, tables *TableNames) error {
	for _, table := range []string{
		tables.Links,
		tables.Videos,
		tables.Translations,
		tables.Summaries,
		tables.TextSources,
		tables.Projects,
	} {
		stmt := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return translateError(err, "drop schema")
		}
	}
	return nil
}
