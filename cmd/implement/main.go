// Command implement generates a specification with Pre.dev and hands it to
// Claude for implementation planning: the generated spec markdown is fetched
// and sent through Anthropic's Messages API, and Claude's plan is written to
// the output directory as a starting point for the build.
//
// Requires PREDEV_API_KEY and ANTHROPIC_API_KEY.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/joho/godotenv"

	predev "github.com/pre-dev-official/predev-go"
)

func main() {
	input := flag.String("input", "Build a simple todo list app with add, delete, and mark complete functionality. Use vanilla JavaScript and localStorage.", "Project description to generate a spec for")
	outDir := flag.String("out", "./implementation", "Directory for Claude's implementation plan")
	modelName := flag.String("model", "claude-sonnet-4-5", "Anthropic model ID")
	maxTokens := flag.Int("max-tokens", 8192, "Response token budget for Claude")
	flag.Parse()

	_ = godotenv.Load()
	ctx := context.Background()

	predevKey := os.Getenv("PREDEV_API_KEY")
	if predevKey == "" {
		log.Fatal("PREDEV_API_KEY environment variable not set")
	}
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		log.Fatal("ANTHROPIC_API_KEY environment variable not set")
	}

	client, err := predev.New(predevKey)
	if err != nil {
		log.Fatalf("create Pre.dev client: %v", err)
	}

	// Step 1: generate the specification.
	fmt.Println("Step 1: Generating specification with Pre.dev...")
	result, err := client.FastSpec(ctx, predev.SpecRequest{Input: *input})
	if err != nil {
		log.Fatalf("generate spec: %v", err)
	}

	specURL := result.CodingAgentSpecURL()
	if specURL == "" {
		specURL = result.HumanSpecURL()
	}
	if specURL == "" {
		log.Fatalf("response carried no spec URL: %v", result)
	}
	fmt.Printf("Spec generated: %s\n", specURL)

	// Step 2: fetch the raw markdown behind the spec URL.
	fmt.Println("Step 2: Fetching spec markdown...")
	specMarkdown, err := fetchSpecMarkdown(ctx, specURL)
	if err != nil {
		log.Fatalf("fetch spec: %v", err)
	}

	// Step 3: ask Claude for the implementation plan.
	fmt.Printf("Step 3: Asking %s for an implementation plan...\n", *modelName)
	plan, err := planWithClaude(ctx, *modelName, int64(*maxTokens), specMarkdown)
	if err != nil {
		log.Fatalf("plan with Claude: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}
	planPath := filepath.Join(*outDir, "IMPLEMENTATION.md")
	if err := os.WriteFile(planPath, []byte(plan), 0o644); err != nil {
		log.Fatalf("write plan: %v", err)
	}
	fmt.Printf("Implementation plan written to %s\n", planPath)
}

// fetchSpecMarkdown downloads the spec document. Hosted spec URLs serve raw
// markdown when the .md extension is appended.
func fetchSpecMarkdown(ctx context.Context, specURL string) (string, error) {
	if !strings.HasSuffix(specURL, ".md") {
		specURL += ".md"
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, specURL, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch spec markdown: %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read spec body: %w", err)
	}
	return string(body), nil
}

func planWithClaude(ctx context.Context, modelName string, maxTokens int64, specMarkdown string) (string, error) {
	cl := anthropic.NewClient(
		anthropicopt.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)

	prompt := fmt.Sprintf(`I have a project specification:

%s

Please produce a complete implementation plan for this project:

1. Read and understand all requirements, architecture, and acceptance criteria
2. List every file to create, with its full path and purpose
3. For each file, include the complete implementation code in a fenced block
4. Order the work milestone by milestone as the spec lays it out
5. Note any setup commands (package installs, migrations) where needed`, specMarkdown)

	msg, err := cl.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelName),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, cb := range msg.Content {
		if tb, ok := cb.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("model returned no text content")
	}
	return b.String(), nil
}
