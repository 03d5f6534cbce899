package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"career-guidance/internal/domain/career"
	"career-guidance/internal/domain/riasec"
	"career-guidance/internal/infrastructure/cache"
	"career-guidance/internal/repository"
	"career-guidance/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type careerFile struct {
	Careers []careerEntry `yaml:"careers"`
}

type careerEntry struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Categories  []string `yaml:"categories"`
	Description string   `yaml:"description"`
	Education   string   `yaml:"education"`
	SalaryRange string   `yaml:"salary_range"`
	Outlook     string   `yaml:"outlook"`
}

// ParseCareers decodes a careers YAML document. Categories accept either
// the letter or the full name.
func ParseCareers(r io.Reader) ([]career.Career, error) {
	var f careerFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode careers: %w", err)
	}

	out := make([]career.Career, 0, len(f.Careers))
	seen := map[string]bool{}
	for i, e := range f.Careers {
		id := strings.TrimSpace(e.ID)
		title := strings.TrimSpace(e.Title)
		if id == "" || title == "" {
			return nil, fmt.Errorf("careers[%d]: id and title are required", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("careers[%d]: duplicate id %q", i, id)
		}
		seen[id] = true

		cats := make([]riasec.Category, 0, len(e.Categories))
		for _, s := range e.Categories {
			c, err := riasec.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("careers[%d] %s: %w", i, id, err)
			}
			cats = append(cats, c)
		}
		if len(cats) == 0 {
			return nil, fmt.Errorf("careers[%d] %s: at least one category is required", i, id)
		}

		out = append(out, career.Career{
			ID:          id,
			Title:       title,
			Categories:  cats,
			Description: strings.TrimSpace(e.Description),
			Education:   strings.TrimSpace(e.Education),
			SalaryRange: strings.TrimSpace(e.SalaryRange),
			Outlook:     strings.TrimSpace(e.Outlook),
		})
	}
	return out, nil
}

var importCareersCmd = &cobra.Command{
	Use:   "import-careers FILE",
	Short: "Upsert careers from a YAML file and drop cached searches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		careers, err := ParseCareers(f)
		_ = f.Close()
		if err != nil {
			return err
		}

		db, err := connect(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := repository.NewPostgresCareerRepository(db).Upsert(ctx, careers)
		if err != nil {
			return err
		}

		rc := cache.NewRedis(cfg.Redis, zl)
		defer rc.Close()
		if err := rc.DeleteByPattern(ctx, usecase.CareersSearchKeyPattern); err != nil {
			zl.Warn("search cache not cleared", zap.Error(err))
		}

		zl.Info("careers imported", zap.String("file", args[0]), zap.Int("rows", n))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCareersCmd)
}
