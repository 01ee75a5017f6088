package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dowserhq/dowser/internal/api"
	"github.com/dowserhq/dowser/internal/config"
	"github.com/dowserhq/dowser/internal/research"
	"github.com/dowserhq/dowser/internal/roles"
	"github.com/dowserhq/dowser/internal/state"
	"github.com/dowserhq/dowser/internal/tui"
	"github.com/dowserhq/dowser/internal/watch"
	"github.com/dowserhq/dowser/pkg/models"
)

type engineResult struct {
	state *models.ResearchState
	err   error
}

var (
	researchPlain       bool
	researchNoSave      bool
	researchMaxIter     int
	researchThreshold   int
	researchFinderModel string
	researchCriticModel string
	researchPromptsPath string
	researchDebugLog    string
)

var researchCmd = &cobra.Command{
	Use:   "research \"question\"",
	Short: "Research a question iteratively",
	Long: `Research a question by decomposing it into subtasks, refining each
subtask until the evaluator accepts the findings, and synthesizing a final
report.

Progress is shown in a live view by default; use --plain for line-oriented
output suitable for logs and pipes. Drop a file named "stop" into the .dowser
directory to cancel a running session at the next checkpoint.

Examples:
  dowser research "compare raft and paxos leader election"
  dowser research --plain --max-iterations 3 "what is io_uring?"`,
	Args: cobra.ExactArgs(1),
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().BoolVar(&researchPlain, "plain", false, "Line-oriented output instead of the live view")
	researchCmd.Flags().BoolVar(&researchNoSave, "no-save", false, "Skip recording the session to history")
	researchCmd.Flags().IntVar(&researchMaxIter, "max-iterations", 0, "Refinement budget per subtask (default from config)")
	researchCmd.Flags().IntVar(&researchThreshold, "quality-threshold", 0, "Accepting evaluator score, 1-10 (default from config)")
	researchCmd.Flags().StringVar(&researchFinderModel, "finder-model", "", "Model for the finder role")
	researchCmd.Flags().StringVar(&researchCriticModel, "critic-model", "", "Model for the critic role")
	researchCmd.Flags().StringVar(&researchPromptsPath, "prompts", "", "Path to a prompt profile YAML file")
	researchCmd.Flags().StringVar(&researchDebugLog, "debug-log", "", "Path for the engine debug log")
}

func runResearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyResearchFlags(cfg)

	finder, critic, trackers, err := buildRoles(cfg)
	if err != nil {
		return err
	}

	promptsPath := researchPromptsPath
	if promptsPath == "" {
		promptsPath = config.DefaultPromptsPath()
	}
	prompts, err := config.LoadPrompts(promptsPath)
	if err != nil {
		return fmt.Errorf("loading prompts: %w", err)
	}

	logger, err := research.NewDebugLogger(cfg.Research.DebugLog)
	if err != nil {
		return fmt.Errorf("opening debug log: %w", err)
	}
	defer logger.Close()

	emitter := research.NewEmitter(64)
	engine := research.NewEngine(finder, critic,
		research.WithMaxIterations(cfg.Research.MaxIterations),
		research.WithQualityThreshold(cfg.Research.QualityThreshold),
		research.WithPrompts(prompts),
		research.WithEmitter(emitter),
		research.WithLogger(logger),
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()

	if watcher, err := watch.Start(".dowser", cancel); err == nil {
		defer watcher.Close()
	}

	result, runErr := runWithProgress(ctx, cancel, engine, emitter, query)
	if runErr != nil {
		return runErr
	}

	fmt.Println()
	fmt.Println(result.FinalSynthesis)

	input, output := trackers.totals()
	faint := color.New(color.Faint)
	faint.Printf("\n%d iterations, %d input / %d output tokens ($%.4f)\n",
		len(result.Iterations), input, output, trackers.cost())

	if !researchNoSave {
		if err := saveToHistory(result, input, output); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record session: %v\n", err)
		}
	}
	return nil
}

// runWithProgress runs the engine while draining progress events, either
// into the live bubbletea view or as plain colored lines.
func runWithProgress(ctx context.Context, cancel context.CancelFunc, engine *research.Engine, emitter *research.Emitter, query string) (*models.ResearchState, error) {
	done := make(chan engineResult, 1)
	go func() {
		st, err := engine.Research(ctx, query)
		emitter.Close()
		done <- engineResult{state: st, err: err}
	}()

	if researchPlain {
		printPlainEvents(emitter.Events())
	} else {
		program := tea.NewProgram(tui.NewModel(query, emitter.Events()))
		if _, err := program.Run(); err != nil {
			printPlainEvents(emitter.Events())
		} else {
			// The view exiting early means the user quit; raw terminal
			// mode swallows ctrl+c as a key, so cancel here and discard
			// the rest so the engine never backs up on a full channel.
			cancel()
			go func() {
				for range emitter.Events() {
				}
			}()
		}
	}

	res := <-done
	if res.err != nil {
		return nil, fmt.Errorf("research failed: %w", res.err)
	}
	return res.state, nil
}

func printPlainEvents(events <-chan research.Event) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	for ev := range events {
		switch ev.Type {
		case research.EventIterationScored:
			fmt.Printf("  subtask %d iteration %d scored %d/10\n", ev.SubtaskID, ev.Iteration, ev.Score)
		case research.EventSubtaskCompleted:
			green.Printf("✓ subtask %d completed at %d/10\n", ev.SubtaskID, ev.Score)
		case research.EventDiagnostic:
			yellow.Printf("⚠ %s\n", ev.Message)
		default:
			fmt.Println(ev.Message)
		}
	}
}

// applyResearchFlags overlays command-line flags onto the loaded config.
func applyResearchFlags(cfg *config.Config) {
	if researchMaxIter > 0 {
		cfg.Research.MaxIterations = researchMaxIter
	}
	if researchThreshold > 0 {
		cfg.Research.QualityThreshold = researchThreshold
	}
	if researchFinderModel != "" {
		cfg.Anthropic.FinderModel = researchFinderModel
	}
	if researchCriticModel != "" {
		cfg.Anthropic.CriticModel = researchCriticModel
	}
	if researchDebugLog != "" {
		cfg.Research.DebugLog = researchDebugLog
	}
}

// buildRoles constructs the finder and critic over one client each, so the
// two roles can run different models.
func buildRoles(cfg *config.Config) (roles.Finder, roles.Critic, *trackerSet, error) {
	finderClient, err := newClient(cfg, cfg.Anthropic.FinderModel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating finder client: %w", err)
	}
	criticClient, err := newClient(cfg, cfg.Anthropic.CriticModel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating critic client: %w", err)
	}

	finder, ok := roles.NewClaude(roles.KindFinder, finderClient)
	if !ok {
		return nil, nil, nil, fmt.Errorf("finder role unavailable")
	}
	critic, ok := roles.NewClaude(roles.KindCritic, criticClient)
	if !ok {
		return nil, nil, nil, fmt.Errorf("critic role unavailable")
	}

	return finder, critic, &trackerSet{finderClient.Tracker(), criticClient.Tracker()}, nil
}

func newClient(cfg *config.Config, model string) (*api.Client, error) {
	return api.NewClient(api.ClientConfig{
		Model:         anthropic.Model(model),
		APIKey:        cfg.Anthropic.APIKey,
		UseAWSBedrock: cfg.Bedrock.Enabled,
		AWSRegion:     cfg.Bedrock.Region,
		AWSProfile:    cfg.Bedrock.Profile,
	})
}

func saveToHistory(result *models.ResearchState, input, output int64) error {
	db, err := state.Open(state.DefaultPath())
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return err
	}
	return db.SaveResult(result, input, output)
}

// trackerSet aggregates token usage across the per-role clients.
type trackerSet []*api.TokenTracker

func (t *trackerSet) totals() (input, output int64) {
	for _, tr := range *t {
		in, out := tr.Total()
		input += in
		output += out
	}
	return input, output
}

func (t *trackerSet) cost() float64 {
	var total float64
	for _, tr := range *t {
		total += tr.Cost()
	}
	return total
}
