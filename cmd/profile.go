package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
	"github.com/phamm25/ai-chatbot/internal/dataset/outbound"
	"github.com/phamm25/ai-chatbot/internal/dataset/profile"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkguid"
)

type profileOptions struct {
	Format  string
	MaxMB   int64
	Timeout time.Duration
}

var profileOpts profileOptions

var profileCmd = &cobra.Command{
	Use:   "profile <file|url>",
	Short: "Profile a CSV file or URL and print its summary",
	Example: `  ai-chatbot profile ./sales.csv
  ai-chatbot profile https://example.com/data.csv --format json
  ai-chatbot profile ./big.csv --max-mb 50 --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProfile(cmd.Context(), cmd.OutOrStdout(), args[0], profileOpts)
	},
}

func init() {
	profileCmd.Flags().StringVarP(&profileOpts.Format, "format", "f", "text", "output format: text, json or yaml")
	profileCmd.Flags().Int64Var(&profileOpts.MaxMB, "max-mb", 20, "maximum CSV size in megabytes")
	profileCmd.Flags().DurationVar(&profileOpts.Timeout, "timeout", outbound.DefaultFetchTimeout, "fetch timeout for URLs")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(ctx context.Context, w io.Writer, source string, opts profileOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	maxBytes := profile.EffectiveLimit(opts.MaxMB << 20)

	data, name, err := readSource(ctx, source, maxBytes, opts.Timeout)
	if err != nil {
		return err
	}

	summary, err := profile.NewEngine(pkguid.NewUUID(), maxBytes).Profile(name, data)
	if err != nil {
		return fmt.Errorf("profile %s: %w", name, err)
	}

	return writeSummary(w, summary, opts.Format)
}

func readSource(ctx context.Context, source string, maxBytes int64, timeout time.Duration) ([]byte, string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		normalized, err := outbound.NormalizeURL(source)
		if err != nil {
			return nil, "", err
		}
		data, err := outbound.NewHTTPFetcher(timeout, maxBytes).Fetch(ctx, normalized)
		if err != nil {
			return nil, "", err
		}
		return data, outbound.NameFromURL(normalized), nil
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, "", err
	}
	if err := profile.CheckSize(info.Size(), maxBytes); err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, "", err
	}
	return data, filepath.Base(source), nil
}

func writeSummary(w io.Writer, summary entity.DatasetSummary, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		_, err := fmt.Fprintln(w, profile.RenderContext(summary))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case "yaml", "yml":
		// round-trip through JSON so the yaml keys follow the json tags
		raw, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}
