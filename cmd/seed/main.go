// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

// Command seed loads CSV fixture data into the database.
//
// It expects the fixture files produced by the content team:
//
//	users.csv        id,username,email,role,bio,first_name,last_name
//	category.csv     id,name,slug
//	genre.csv        id,name,slug
//	titles.csv       id,name,year,category
//	genre_title.csv  id,title_id,genre_id
//	review.csv       id,title_id,text,author,score,pub_date
//	comments.csv     id,review_id,text,author,pub_date
//
// Catalog and social rows keep their CSV identifiers so cross-file references
// stay intact; account rows get fresh UUIDs and the numeric CSV user ids are
// remapped in memory. Existing rows are skipped, so the command is idempotent.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/kritikadev/kritika/internal/platform/config"
	"github.com/kritikadev/kritika/internal/platform/constants"
	"github.com/kritikadev/kritika/internal/platform/migration"
	pgstore "github.com/kritikadev/kritika/internal/platform/postgres"
	"github.com/kritikadev/kritika/internal/platform/sec"
	"github.com/kritikadev/kritika/pkg/uuidv7"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	dataDir := flag.String("data", "data/fixtures", "directory containing the CSV fixture files")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).
		With(slog.String("app", constants.AppName), slog.String("cmd", "seed"))

	_ = godotenv.Load()

	cfg, err := config.Load()
	must(log, err, "load configuration")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	seeder := &seeder{db: pool, dir: *dataDir, log: log, userIDs: make(map[string]string)}

	// Order matters: rows reference each other across files.
	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"users", seeder.users},
		{"categories", seeder.categories},
		{"genres", seeder.genres},
		{"titles", seeder.titles},
		{"title_genres", seeder.titleGenres},
		{"reviews", seeder.reviews},
		{"comments", seeder.comments},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			log.Error("seed step failed", slog.String("step", step.name), slog.Any("error", err))
			os.Exit(1)
		}
		log.Info("seed step completed", slog.String("step", step.name))
	}

	must(log, seeder.resetSequences(ctx), "reset sequences")
	log.Info("seed finished")
}

type seeder struct {
	db  *pgxpool.Pool
	dir string
	log *slog.Logger

	// userIDs maps the numeric CSV user id to the generated account UUID.
	userIDs map[string]string
}

func (s *seeder) users(ctx context.Context) error {
	rows, err := s.readCSV("users.csv")
	if err != nil {
		return err
	}
	for _, row := range rows {
		var id string
		err := s.db.QueryRow(ctx,
			`SELECT id FROM users.account WHERE email = $1`, row["email"],
		).Scan(&id)
		if err == nil {
			s.log.Info("user already exists", slog.String("email", row["email"]))
			s.userIDs[row["id"]] = id
			continue
		}

		id = uuidv7.New()
		role := row["role"]
		if role == "" {
			role = string(sec.RoleUser)
		}
		_, err = s.db.Exec(ctx,
			`INSERT INTO users.account (id, username, email, role, isstaff, bio, firstname, lastname, confirmationcode)
			 VALUES ($1, $2, $3, $4, FALSE, $5, $6, $7, '')`,
			id, row["username"], row["email"], role, row["bio"], row["first_name"], row["last_name"],
		)
		if err != nil {
			return fmt.Errorf("insert user %q: %w", row["username"], err)
		}
		s.userIDs[row["id"]] = id
	}
	return nil
}

func (s *seeder) categories(ctx context.Context) error {
	return s.slugTable(ctx, "category.csv", "catalog.category")
}

func (s *seeder) genres(ctx context.Context) error {
	return s.slugTable(ctx, "genre.csv", "catalog.genre")
}

// slugTable loads the shared id,name,slug layout of category.csv and genre.csv.
func (s *seeder) slugTable(ctx context.Context, file, table string) error {
	rows, err := s.readCSV(file)
	if err != nil {
		return err
	}
	for _, row := range rows {
		query := fmt.Sprintf(
			`INSERT INTO %s (id, name, slug) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, table)
		if _, err := s.db.Exec(ctx, query, row["id"], row["name"], row["slug"]); err != nil {
			return fmt.Errorf("insert %s %q: %w", table, row["slug"], err)
		}
	}
	return nil
}

func (s *seeder) titles(ctx context.Context) error {
	rows, err := s.readCSV("titles.csv")
	if err != nil {
		return err
	}
	for _, row := range rows {
		_, err := s.db.Exec(ctx,
			`INSERT INTO catalog.title (id, name, year, categoryid)
			 VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
			row["id"], row["name"], row["year"], row["category"],
		)
		if err != nil {
			return fmt.Errorf("insert title %q: %w", row["name"], err)
		}
	}
	return nil
}

func (s *seeder) titleGenres(ctx context.Context) error {
	rows, err := s.readCSV("genre_title.csv")
	if err != nil {
		return err
	}
	for _, row := range rows {
		_, err := s.db.Exec(ctx,
			`INSERT INTO catalog.titlegenre (titleid, genreid)
			 VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			row["title_id"], row["genre_id"],
		)
		if err != nil {
			return fmt.Errorf("link title %s genre %s: %w", row["title_id"], row["genre_id"], err)
		}
	}
	return nil
}

func (s *seeder) reviews(ctx context.Context) error {
	rows, err := s.readCSV("review.csv")
	if err != nil {
		return err
	}
	for _, row := range rows {
		authorID, ok := s.userIDs[row["author"]]
		if !ok {
			s.log.Warn("review author not found, skipping",
				slog.String("review_id", row["id"]), slog.String("author", row["author"]))
			continue
		}
		_, err := s.db.Exec(ctx,
			`INSERT INTO social.review (id, titleid, authorid, reviewtext, score, createdat)
			 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING`,
			row["id"], row["title_id"], authorID, row["text"], row["score"], parseTimestamp(row["pub_date"]),
		)
		if err != nil {
			return fmt.Errorf("insert review %s: %w", row["id"], err)
		}
	}
	return nil
}

func (s *seeder) comments(ctx context.Context) error {
	rows, err := s.readCSV("comments.csv")
	if err != nil {
		return err
	}
	for _, row := range rows {
		authorID, ok := s.userIDs[row["author"]]
		if !ok {
			s.log.Warn("comment author not found, skipping",
				slog.String("comment_id", row["id"]), slog.String("author", row["author"]))
			continue
		}
		_, err := s.db.Exec(ctx,
			`INSERT INTO social.comment (id, reviewid, authorid, commenttext, createdat)
			 VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`,
			row["id"], row["review_id"], authorID, row["text"], parseTimestamp(row["pub_date"]),
		)
		if err != nil {
			return fmt.Errorf("insert comment %s: %w", row["id"], err)
		}
	}
	return nil
}

// resetSequences bumps serial sequences past the explicit ids inserted above,
// so that rows created through the API do not collide with fixture rows.
func (s *seeder) resetSequences(ctx context.Context) error {
	tables := []string{"catalog.category", "catalog.genre", "catalog.title", "social.review", "social.comment"}
	for _, table := range tables {
		query := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', 'id'), GREATEST(COALESCE(MAX(id), 0), 1)) FROM %s`,
			table, table)
		if _, err := s.db.Exec(ctx, query); err != nil {
			return fmt.Errorf("reset sequence for %s: %w", table, err)
		}
	}
	return nil
}

// readCSV reads a header-keyed CSV file into one map per data row.
func (s *seeder) readCSV(name string) ([]map[string]string, error) {
	path := filepath.Join(s.dir, name)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		row := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseTimestamp handles the fixture timestamp format, falling back to now
// for rows without one.
func parseTimestamp(value string) time.Time {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed
	}
	return time.Now().UTC()
}

func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
