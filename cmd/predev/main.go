// Command predev drives the Pre.dev Architect API from the terminal.
//
// Usage:
//
//	predev fast --input "Build a task management app"
//	predev deep --input "Build an ERP system" --format markdown
//	predev status --id spec_123
//	predev list --status completed --limit 10
//	predev find --query "^Build" --endpoint fast_spec
//
// The API key is read from PREDEV_API_KEY (a .env file in the working
// directory is honored).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	predev "github.com/pre-dev-official/predev-go"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	ctx := context.Background()
	cmd := os.Args[1]
	args := os.Args[2:]

	var (
		result predev.Result
		err    error
	)

	switch cmd {
	case "fast":
		result, err = runSpec(ctx, "fast", args)
	case "deep":
		result, err = runSpec(ctx, "deep", args)
	case "status":
		result, err = runStatus(ctx, args)
	case "list":
		result, err = runList(ctx, args)
	case "find":
		result, err = runFind(ctx, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("render result: %v", err)
	}
	fmt.Println(string(out))
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: predev <fast|deep|status|list|find> [flags]")
}

// clientFlags registers the options shared by every subcommand.
func clientFlags(fs *flag.FlagSet) (enterprise *bool, baseURL *string) {
	enterprise = fs.Bool("enterprise", false, "Authenticate with the enterprise header")
	baseURL = fs.String("base-url", "", "Override the API base URL")
	return
}

func newClient(enterprise bool, baseURL string) (*predev.Client, error) {
	apiKey := os.Getenv("PREDEV_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("PREDEV_API_KEY environment variable not set")
	}

	var opts []predev.Option
	if enterprise {
		opts = append(opts, predev.WithEnterprise())
	}
	if baseURL != "" {
		opts = append(opts, predev.WithBaseURL(baseURL))
	}
	return predev.New(apiKey, opts...)
}

func runSpec(ctx context.Context, kind string, args []string) (predev.Result, error) {
	fs := flag.NewFlagSet(kind, flag.ExitOnError)
	enterprise, baseURL := clientFlags(fs)
	input := fs.String("input", "", "Project or feature description (required)")
	format := fs.String("format", "url", "Output format: url, json, or markdown")
	current := fs.String("context", "", "Description of the existing system, for feature additions")
	docURLs := fs.String("doc-urls", "", "Comma separated documentation URLs to consult")
	filePath := fs.String("file", "", "Path of a document to attach")
	async := fs.Bool("async", false, "Submit for background processing and return a spec ID")
	fs.Parse(args)

	if *input == "" {
		return nil, fmt.Errorf("--input is required")
	}

	client, err := newClient(*enterprise, *baseURL)
	if err != nil {
		return nil, err
	}

	req := predev.SpecRequest{
		Input:          *input,
		OutputFormat:   predev.OutputFormat(*format),
		CurrentContext: *current,
		DocURLs:        parseCSVList(*docURLs),
		Async:          *async,
	}
	if *filePath != "" {
		f, err := os.Open(*filePath)
		if err != nil {
			return nil, fmt.Errorf("open attachment: %w", err)
		}
		defer f.Close()
		req.File = &predev.File{Name: filepath.Base(*filePath), Reader: f}
	}

	if kind == "deep" {
		return client.DeepSpec(ctx, req)
	}
	return client.FastSpec(ctx, req)
}

func runStatus(ctx context.Context, args []string) (predev.Result, error) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	enterprise, baseURL := clientFlags(fs)
	id := fs.String("id", "", "Spec ID to poll (required)")
	fs.Parse(args)

	if *id == "" {
		return nil, fmt.Errorf("--id is required")
	}
	client, err := newClient(*enterprise, *baseURL)
	if err != nil {
		return nil, err
	}
	return client.GetSpecStatus(ctx, *id)
}

func runList(ctx context.Context, args []string) (predev.Result, error) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	enterprise, baseURL := clientFlags(fs)
	opts := listFlags(fs)
	fs.Parse(args)

	client, err := newClient(*enterprise, *baseURL)
	if err != nil {
		return nil, err
	}
	return client.ListSpecs(ctx, *opts)
}

func runFind(ctx context.Context, args []string) (predev.Result, error) {
	fs := flag.NewFlagSet("find", flag.ExitOnError)
	enterprise, baseURL := clientFlags(fs)
	query := fs.String("query", "", "Search regex matched against spec inputs (required)")
	opts := listFlags(fs)
	fs.Parse(args)

	if *query == "" {
		return nil, fmt.Errorf("--query is required")
	}
	client, err := newClient(*enterprise, *baseURL)
	if err != nil {
		return nil, err
	}
	return client.FindSpecs(ctx, *query, *opts)
}

func listFlags(fs *flag.FlagSet) *predev.ListOptions {
	opts := &predev.ListOptions{}
	fs.StringVar(&opts.Status, "status", "", "Filter by status (completed, failed, ...)")
	fs.StringVar(&opts.Endpoint, "endpoint", "", "Filter by endpoint (fast_spec or deep_spec)")
	fs.IntVar(&opts.Limit, "limit", 0, "Maximum number of specs to return")
	fs.IntVar(&opts.Skip, "skip", 0, "Number of specs to skip for pagination")
	return opts
}

func parseCSVList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
