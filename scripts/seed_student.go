package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/khoahotran/educursus/adapters/embedding"
	"github.com/khoahotran/educursus/adapters/llm"
	"github.com/khoahotran/educursus/adapters/persistence"
	careerUC "github.com/khoahotran/educursus/internal/application/usecase/career"
	"github.com/khoahotran/educursus/internal/config"
	"github.com/khoahotran/educursus/internal/domain/student"
	"github.com/khoahotran/educursus/pkg/auth"
	"github.com/khoahotran/educursus/pkg/logger"
)

// Seeds a demo student (SEED_EMAIL, SEED_PASSWORD, SEED_NAME) and, when Ollama is
// configured, the career embeddings used by /careers/match.
func main() {
	fmt.Println("seeding educursus database...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	appLogger := logger.NewZapLogger(cfg.App.Env)
	ctx := context.Background()

	pool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	name := os.Getenv("SEED_NAME")
	if name == "" {
		name = "Demo Student"
	}

	if email != "" && password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			log.Fatalf("cannot hash password: %v", err)
		}
		err = persistence.NewPostgresStudentRepo(pool).Save(ctx, student.NewStudent(email, name, hash))
		switch {
		case errors.Is(err, student.ErrEmailTaken):
			fmt.Printf("student '%s' already exists, skipped\n", email)
		case err != nil:
			log.Fatalf("cannot add student: %v", err)
		default:
			fmt.Printf("added student '%s' successfully!\n", email)
		}
	}

	embedder, err := embedding.NewOllamaAdapter(cfg, appLogger)
	if err != nil {
		fmt.Printf("skipping career embeddings: %v\n", err)
		return
	}
	careers := careerUC.NewCareerUseCase(
		persistence.NewPostgresProfileRepo(pool, appLogger),
		persistence.NewPostgresRoadmapRepo(pool),
		persistence.NewPostgresCareerRepo(pool),
		persistence.NewPostgresSkillRepo(pool),
		llm.NewDisabledGenerator(),
		embedder,
		nil,
		appLogger,
	)
	if err := careers.SeedEmbeddings(ctx, true); err != nil {
		log.Fatalf("cannot seed career embeddings: %v", err)
	}
	fmt.Println("career embeddings seeded successfully!")
}
