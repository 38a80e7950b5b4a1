package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/obraflow/obraflow/internal/metrics"
	"github.com/obraflow/obraflow/internal/pipeline"
)

var askCmd = &cobra.Command{
	Use:   "ask [pregunta]",
	Short: "Ask the assistant a question from the terminal",
	Long:  `Answers one question about your organization's finances, or starts an interactive session with --interactive.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().String("org", "", "organization ID (required)")
	askCmd.Flags().String("user", "cli", "user ID attached to the request")
	askCmd.Flags().BoolP("interactive", "i", false, "interactive question loop")
	askCmd.MarkFlagRequired("org")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	orgID, _ := cmd.Flags().GetString("org")
	userID, _ := cmd.Flags().GetString("user")
	interactive, _ := cmd.Flags().GetBool("interactive")

	if !interactive && len(args) == 0 {
		return fmt.Errorf("pass a question or use --interactive")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := buildApp(cfg, metrics.Nop{})
	if err != nil {
		return err
	}
	defer a.Close()

	req := pipeline.ReqContext{UserID: userID, OrganizationID: orgID, Language: "es"}
	ctx := context.Background()

	if !interactive {
		return answerOne(ctx, a, args[0], req)
	}

	fmt.Println("ObraFlow interactivo. Escribí tu pregunta (o \"salir\").")
	for {
		prompt := promptui.Prompt{Label: "Pregunta"}
		question, err := prompt.Run()
		if err != nil {
			// Ctrl-C / Ctrl-D end the session.
			return nil
		}
		question = strings.TrimSpace(question)
		if question == "" {
			continue
		}
		if strings.EqualFold(question, "salir") {
			return nil
		}
		if err := answerOne(ctx, a, question, req); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func answerOne(ctx context.Context, a *app, question string, req pipeline.ReqContext) error {
	resp, err := a.assistant.Answer(ctx, question, req)
	if err != nil {
		return err
	}

	fmt.Println(resp.Text)
	if verbose && resp.Context != nil {
		sum := pipeline.Metrics(resp.Context)
		fmt.Printf("\n[%s en %s, cache=%v]\n", resp.Context.Metadata.Phase, sum.TotalTime, sum.CacheHit)
	}
	return nil
}
