package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/rfp-responder/internal/ai"
	"github.com/spigell/rfp-responder/internal/pipeline"
)

const (
	PromptSummary    = "Show extracted summary"
	PromptMatches    = "Show catalog matches"
	PromptPricing    = "Show pricing"
	PromptToFile     = "Dump estimate to file"
	PromptCoverNote  = "Draft cover note"
	PromptExit       = "Exit"
	stdinPlaceholder = "-"
)

var errExit = errors.New("exit requested")

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Extract requirements from an RFP, match it against the catalog and price it",
	Long:  "Reads the RFP text from the given file, or from stdin when the file is omitted or '-'.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		process(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolP("auto-approve", "y", false, "print the estimate as JSON and exit without prompting")
	processCmd.Flags().StringP("output", "o", "", "write the estimate as JSON to this file")

	viper.BindPFlag("output", processCmd.Flags().Lookup("output"))
}

func process(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, config, p := setup()

	text, err := readRFP(cmd.InOrStdin(), args)
	if err != nil {
		logger.Fatal("reading the rfp", zap.Error(err))
	}

	logger.Info("processing the rfp", zap.String("version", version), zap.Int("length", len(text)))

	result, err := p.Process(ctx, text)
	if err != nil {
		logger.Fatal("processing the rfp", zap.Error(err))
	}

	if output := viper.GetString("output"); output != "" {
		if err := result.ToFile(output); err != nil {
			logger.Fatal("writing the estimate", zap.Error(err), zap.String("filename", output))
		}
		logger.Info("estimate written", zap.String("filename", output))
	}

	if autoApprove, _ := cmd.Flags().GetBool("auto-approve"); autoApprove {
		if err := result.WriteJSON(cmd.OutOrStdout()); err != nil {
			logger.Fatal("printing the estimate", zap.Error(err))
		}
		return
	}

	drafter, err := newDrafter(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("cover note drafting is disabled", zap.Error(err))
	}

	items := []string{PromptSummary, PromptMatches, PromptPricing, PromptToFile}
	if drafter != nil {
		items = append(items, PromptCoverNote)
	}
	items = append(items, PromptExit)

	prompt := promptui.Select{
		Label: fmt.Sprintf("%s: grand total %d. What next?", result.Summary.Title, result.GrandTotal),
		Items: items,
		Size:  len(items),
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, cmd.OutOrStdout(), action, result, drafter, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Error("action failed", zap.String("action", action), zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, out io.Writer, action string, result *pipeline.Result, drafter ai.Drafter, logger *zap.Logger) error {
	switch action {
	case PromptSummary:
		fmt.Fprintln(out, result.SummaryReport())
		return nil
	case PromptMatches:
		fmt.Fprintln(out, result.MatchesReport())
		return nil
	case PromptPricing:
		fmt.Fprintln(out, result.PricingReport())
		return nil
	case PromptToFile:
		filename, err := result.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump estimate to file: %w", err)
		}
		logger.Info("dumping estimate to file", zap.String("filename", filename))
		return nil
	case PromptCoverNote:
		if drafter == nil {
			return errors.New("cover note drafting is not configured")
		}
		note, err := drafter.Draft(ctx, result)
		if err != nil {
			return fmt.Errorf("draft cover note: %w", err)
		}
		logger.Info("cover note drafted", zap.String("model", note.Model))
		fmt.Fprintln(out, note.Text)
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// readRFP reads the RFP text from the file named in args or from stdin.
func readRFP(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == stdinPlaceholder {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read rfp file: %w", err)
	}
	return string(data), nil
}
