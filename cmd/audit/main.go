package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/joshu-sajeev/contactrelay/internal/models"
	"github.com/joshu-sajeev/contactrelay/internal/storage/postgres"
	"go.uber.org/zap"
)

type submissionReader interface {
	Get(ctx context.Context, id uint) (*models.Submission, error)
	ListRecent(ctx context.Context, limit int) ([]models.Submission, error)
}

var errUsage = errors.New("usage: audit list [-n limit] | audit show <id>")

func main() {
	flag.Parse()

	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := postgres.LoadConfigFromEnv(ctx)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db, err := postgres.ConnectDB(ctx, cfg, zap.NewNop())
	if err != nil {
		log.Fatal("Connection failed:", err)
	}

	if err := run(ctx, postgres.NewSubmissionRepository(db), flag.Args(), os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run executes one subcommand against repo and writes JSON to w.
func run(ctx context.Context, repo submissionReader, args []string, w io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		limit := fs.Int("n", 20, "number of submissions to show")
		if err := fs.Parse(args[1:]); err != nil {
			return fmt.Errorf("list: %w", err)
		}

		subs, err := repo.ListRecent(ctx, *limit)
		if err != nil {
			return err
		}
		return enc.Encode(subs)

	case "show":
		if len(args) != 2 {
			return errUsage
		}
		id, err := strconv.ParseUint(args[1], 10, 0)
		if err != nil || id < 1 {
			return fmt.Errorf("invalid ID %q", args[1])
		}

		sub, err := repo.Get(ctx, uint(id))
		if err != nil {
			return err
		}
		return enc.Encode(sub)
	}

	return errUsage
}
