package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/datefind/pkg/config"
	"github.com/ccollicutt/datefind/pkg/dateparse"
	"github.com/ccollicutt/datefind/pkg/detector"
	"github.com/ccollicutt/datefind/pkg/scan"
)

// sampleLines is the number of lines read from a source to test parsing.
const sampleLines = 10

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <config-file>",
		Short: "Diagnose common configuration issues",
		Long: `Diagnose common configuration issues.

This command checks your configuration file for common problems:
- Config file syntax and values
- Parser set and vocabulary overlay
- Source file existence and accessibility
- How many sample lines the configuration actually parses
- Check and webhook settings

Example:
  datefind diagnose datefind.yaml
  datefind diagnose -v datefind.yaml  # verbose output`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(commandContext(cmd), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(ctx context.Context, w io.Writer, configPath string, opts *DiagnoseOptions) error {
	results := []DiagnosticResult{}

	// 1. Check config file existence
	result := checkConfigExists(configPath)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	// 2. Parse config file
	cfg, result := checkConfigParseable(ctx, configPath)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	// 3. Build the parser set
	parsing, result := checkParsers(cfg, opts)
	results = append(results, result)

	// 4. Check sources
	results = append(results, checkSources(cfg)...)

	// 5. Parse sample lines
	if parsing != nil {
		results = append(results, checkParseRate(ctx, cfg, parsing, opts)...)
	}

	// 6. Checks and webhooks
	results = append(results, checkChecks(cfg, opts)...)
	results = append(results, checkWebhooks(cfg, opts)...)

	printDiagnostics(w, results, opts)
	return nil
}

func checkConfigExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Config File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Config file not found: %s", path)
		result.Suggests = []string{
			"Check the file path is correct",
			"Use 'datefind detect <file> --write-config datefind.yaml' to generate a starter config",
		}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access config file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		return result
	}
	if info.Size() == 0 {
		result.Status = "error"
		result.Message = "Config file is empty"
		result.Suggests = []string{
			"Use 'datefind detect <file> --write-config datefind.yaml' to generate a starter config",
		}
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

func checkConfigParseable(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Config Syntax",
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to load config: %v", err)
		msg := err.Error()
		switch {
		case strings.Contains(msg, "yaml"):
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		case strings.Contains(msg, "timezone"):
			result.Suggests = []string{"Use an IANA zone name such as Europe/Berlin or UTC"}
		case strings.Contains(msg, "reference"):
			result.Suggests = []string{"Use RFC 3339, e.g. 2024-01-15T09:00:00Z"}
		case strings.Contains(msg, "vocabulary"):
			result.Suggests = []string{"Check the vocabulary_file path and that its language matches the config"}
		}
		return nil, result
	}

	result.Status = "ok"
	result.Message = "Config file parsed successfully"
	result.Details = []string{
		fmt.Sprintf("Language: %s", cfg.Language),
		fmt.Sprintf("Day-month order: %s", cfg.Order()),
		fmt.Sprintf("Time zone: %s", cfg.Location()),
		fmt.Sprintf("Sources: %d", len(cfg.Sources)),
	}
	return cfg, result
}

func checkParsers(cfg *config.Config, opts *DiagnoseOptions) (*dateparse.Configuration, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Parsers",
	}

	parsing, err := cfg.Build(nil)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot build parsers: %v", err)
		result.Suggests = []string{"Check disabled_parsers against 'datefind validate' output"}
		return nil, result
	}

	names := parsing.ParserNames()
	if len(names) == 0 {
		result.Status = "error"
		result.Message = "Every parser is disabled"
		result.Suggests = []string{"Remove entries from disabled_parsers"}
		return parsing, result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("%d parser(s) enabled", len(names))
	if cfg.VocabularyFile != "" {
		result.Message += fmt.Sprintf(", vocabulary overlay %s", filepath.Base(cfg.VocabularyFile))
	}
	if opts.Verbose {
		result.Details = names
	}
	return parsing, result
}

func checkSources(cfg *config.Config) []DiagnosticResult {
	results := []DiagnosticResult{}

	if len(cfg.Sources) == 0 {
		results = append(results, DiagnosticResult{
			Check:   "Sources",
			Status:  "warning",
			Message: "No sources defined",
			Suggests: []string{
				"Pass files to 'datefind scan' or add a sources section",
				"Example: sources:\n  - notes/*.md",
			},
		})
		return results
	}

	totalFiles := 0
	for _, source := range cfg.Sources {
		result := DiagnosticResult{
			Check: fmt.Sprintf("Source: %s", source),
		}

		switch {
		case source == scan.Stdin:
			result.Status = "ok"
			result.Message = "Standard input"
			totalFiles++
		case strings.ContainsAny(source, "*?["):
			matches, err := filepath.Glob(source)
			if err != nil {
				result.Status = "error"
				result.Message = fmt.Sprintf("Invalid glob pattern: %v", err)
			} else if len(matches) == 0 {
				result.Status = "warning"
				result.Message = "Glob pattern matches no files"
				result.Suggests = []string{
					"Check if the files exist at this path",
					"Verify the glob pattern syntax",
				}
			} else {
				result.Status = "ok"
				result.Message = fmt.Sprintf("Matches %d file(s)", len(matches))
				result.Details = append(result.Details, matches...)
				totalFiles += len(matches)
			}
		default:
			info, err := os.Stat(source)
			if os.IsNotExist(err) {
				result.Status = "error"
				result.Message = "File does not exist"
				result.Suggests = []string{
					"Check if the file path is correct",
					"Relative paths are resolved against the working directory",
				}
			} else if err != nil {
				result.Status = "error"
				result.Message = fmt.Sprintf("Cannot access file: %v", err)
				result.Suggests = []string{"Check file permissions"}
			} else if info.IsDir() {
				result.Status = "error"
				result.Message = "Path is a directory, not a file"
				result.Suggests = []string{
					"Use a glob pattern to match files in directory",
					"Example: notes/*.md",
				}
			} else if info.Size() == 0 {
				result.Status = "warning"
				result.Message = "File is empty (0 bytes)"
			} else {
				result.Status = "ok"
				result.Message = fmt.Sprintf("File exists (%d bytes)", info.Size())
				totalFiles++
			}
		}
		results = append(results, result)
	}

	if totalFiles == 0 {
		results = append(results, DiagnosticResult{
			Check:   "Sources Summary",
			Status:  "error",
			Message: "No accessible files found",
			Suggests: []string{
				"Ensure at least one source exists and is readable",
			},
		})
	}

	return results
}

// checkParseRate parses the first lines of the first readable source.
func checkParseRate(ctx context.Context, cfg *config.Config, parsing *dateparse.Configuration, opts *DiagnoseOptions) []DiagnosticResult {
	results := []DiagnosticResult{}
	reference := cfg.ReferenceTime(time.Now())

	for _, source := range cfg.Sources {
		if source == scan.Stdin {
			continue
		}
		files, _ := filepath.Glob(source)
		if len(files) == 0 {
			continue
		}

		file := files[0]
		testResult := DiagnosticResult{
			Check: fmt.Sprintf("Parse Test: %s", filepath.Base(file)),
		}

		lines, err := headLines(file, sampleLines)
		if err != nil {
			testResult.Status = "warning"
			testResult.Message = fmt.Sprintf("Cannot read file: %v", err)
			results = append(results, testResult)
			continue
		}
		if len(lines) == 0 {
			continue
		}

		matchCount := 0
		var sampleMatch, sampleFail string
		for _, line := range lines {
			res := parsing.Parse(line, reference)
			if res.IsPresent() {
				matchCount++
				if sampleMatch == "" {
					sampleMatch = fmt.Sprintf("%s  => %s", truncate(line, 60), res)
				}
			} else if sampleFail == "" {
				sampleFail = line
			}
		}

		switch {
		case matchCount == 0:
			testResult.Status = "error"
			testResult.Message = "No sample line holds a date or time"
			testResult.Suggests = []string{
				"The language or vocabulary may not fit this file",
				"Use 'datefind detect " + file + "' to find better settings",
			}
			if sampleFail != "" {
				testResult.Details = []string{
					"Sample line without a date:",
					truncate(sampleFail, 80),
				}
			}
			testResult.Suggests = append(testResult.Suggests, detectSuggestions(ctx, cfg, file)...)
		case matchCount < len(lines)/2:
			testResult.Status = "warning"
			testResult.Message = fmt.Sprintf("Only %d/%d sample lines hold a date or time", matchCount, len(lines))
			if sampleFail != "" {
				testResult.Details = []string{
					"Sample line without a date:",
					truncate(sampleFail, 80),
				}
			}
		default:
			testResult.Status = "ok"
			testResult.Message = fmt.Sprintf("%d/%d sample lines hold a date or time", matchCount, len(lines))
			if opts.Verbose && sampleMatch != "" {
				testResult.Details = []string{
					"Sample match:",
					sampleMatch,
				}
			}
		}

		results = append(results, testResult)
		break // Only test first matching file
	}

	return results
}

// detectSuggestions runs the detector and suggests settings that differ
// from the current ones.
func detectSuggestions(ctx context.Context, cfg *config.Config, file string) []string {
	d := detector.New(detector.WithSampleSize(sampleLines), detector.WithReference(cfg.ReferenceTime(time.Now())))
	result, err := d.DetectFromFile(ctx, file)
	if err != nil {
		return nil
	}

	var suggests []string
	if best := result.BestMatch(); best != nil && best.Language != cfg.Language {
		suggests = append(suggests, fmt.Sprintf("Detected language: %s (try language: %s)", best.Language, best.Language))
	}
	if result.Evidence.Total() > 0 && result.Order != cfg.Order() {
		suggests = append(suggests, fmt.Sprintf("Detected day-month order: %s", result.Order))
	}
	return suggests
}

func headLines(path string, n int) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided source paths from config
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && len(lines) < n {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func checkChecks(cfg *config.Config, opts *DiagnoseOptions) []DiagnosticResult {
	checks := cfg.Checks
	if checks.MaxGap == 0 && checks.MinLines == 0 && !checks.Order {
		if !opts.Verbose {
			return nil
		}
		return []DiagnosticResult{{
			Check:   "Checks",
			Status:  "ok",
			Message: "No timeline checks configured (optional)",
		}}
	}

	result := DiagnosticResult{
		Check:   "Checks",
		Status:  "ok",
		Message: describeChecks(checks),
	}
	if checks.MinLines > 0 && checks.MaxGap == 0 && !checks.Order {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Only min_lines (%d) is checked", checks.MinLines)
		result.Suggests = []string{"Set max_gap to also report long silences between dated lines"}
	}
	return []DiagnosticResult{result}
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Fprintln(w, "=== datefind Configuration Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before scanning.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nConfiguration is usable but has warnings.")
	} else {
		fmt.Fprintln(w, "\nConfiguration looks good!")
	}
}

func checkWebhooks(cfg *config.Config, opts *DiagnoseOptions) []DiagnosticResult {
	results := []DiagnosticResult{}

	if len(cfg.Webhooks) == 0 {
		if opts.Verbose {
			results = append(results, DiagnosticResult{
				Check:   "Webhooks",
				Status:  "ok",
				Message: "No webhooks configured (optional)",
			})
		}
		return results
	}

	for _, wh := range cfg.Webhooks {
		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		result := DiagnosticResult{
			Check: fmt.Sprintf("Webhook: %s", name),
		}

		// Webhooks were validated on load, so only their settings are reported.
		if wh.Trigger == config.WebhookTriggerNever {
			result.Status = "warning"
			result.Message = "Webhook is disabled (trigger: never)"
			result.Suggests = []string{"Remove the webhook or set trigger to on_issues or always"}
		} else {
			result.Status = "ok"
			result.Message = fmt.Sprintf("Trigger: %s", wh.Trigger)
			if opts.Verbose {
				result.Details = []string{
					fmt.Sprintf("URL: %s", wh.URL),
					fmt.Sprintf("Timeout: %s", wh.Timeout),
				}
				if wh.Token != "" {
					result.Details = append(result.Details, "Token: configured")
				}
			}
		}

		results = append(results, result)
	}

	if opts.Verbose {
		for _, wh := range cfg.Webhooks {
			if wh.URL == "" {
				continue
			}

			name := wh.Name
			if name == "" {
				name = wh.URL
			}

			result := checkWebhookConnectivity(wh)
			result.Check = fmt.Sprintf("Webhook Connectivity: %s", name)
			results = append(results, result)
		}
	}

	return results
}

func checkWebhookConnectivity(wh config.WebhookConfig) DiagnosticResult {
	result := DiagnosticResult{}

	// A HEAD request only checks that the endpoint is reachable.
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	req, err := http.NewRequest(http.MethodHead, wh.URL, nil)
	if err != nil {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Cannot create request: %v", err)
		return result
	}

	if wh.Token != "" {
		req.Header.Set("Authorization", "Bearer "+wh.Token)
	}

	resp, err := client.Do(req)
	if err != nil {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Cannot connect: %v", err)
		result.Suggests = []string{
			"Check if the webhook URL is correct",
			"Verify network connectivity",
		}
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.Status = "ok"
		result.Message = fmt.Sprintf("Reachable (status %d)", resp.StatusCode)
	} else {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Reachable but returned status %d", resp.StatusCode)
		result.Suggests = []string{
			"The endpoint may require POST method (will work during actual webhook send)",
			"Check authentication if using a token",
		}
	}

	return result
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
