package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lueurxax/glint/internal/app"
	"github.com/lueurxax/glint/internal/platform/config"
	"github.com/lueurxax/glint/internal/process/podcast"
)

func newGenerateCommand() *cobra.Command {
	var (
		req        podcast.Request
		speed      float64
		showScript bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the podcast pipeline once and print the audio path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("speed") {
				req.Speed = &speed
			}

			return withApp(cmd.Context(), func(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) error {
				episode, err := app.New(cfg, logger).RunGenerate(ctx, req)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()

				if showScript {
					fmt.Fprintln(out, episode.Script)
					fmt.Fprintln(out)
				}

				fmt.Fprintln(out, episode.AudioPath)

				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&req.Categories, "category", "c", nil, "News categories (repeat or comma-separate)")
	flags.StringVar(&req.Style, "style", "", "Presentation style")
	flags.StringVar(&req.Career, "career", "", "Listener career used for personalization")
	flags.StringVar(&req.Voice, "voice", "", "TTS voice")
	flags.Float64Var(&speed, "speed", 1.0, "TTS speed between 0.25 and 4.0")
	flags.StringVar(&req.Provider, "provider", "", "LLM provider")
	flags.StringVar(&req.Model, "model", "", "LLM model")
	flags.IntVar(&req.LengthMinutes, "minutes", 0, "Target episode length in minutes")
	flags.BoolVar(&showScript, "script", false, "Also print the generated script")

	return cmd
}
