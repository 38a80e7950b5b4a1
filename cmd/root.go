package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "obraflow",
	Short: "Asistente financiero conversacional para obras de construcción",
	Long: `ObraFlow entiende preguntas en español sobre las finanzas de tus
obras: gastos, ingresos, saldos, proyectos, contactos, billeteras y
categorías. Resuelve entidades con datos de tu organización, clasifica
la intención y delega la respuesta final en un LLM.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".obraflow.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
