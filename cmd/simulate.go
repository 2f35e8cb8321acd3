package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/fighter-timeline/internal/scroll"
	"github.com/JakeFAU/fighter-timeline/internal/timeline"
)

func newSimulateCmd() *cobra.Command {
	var (
		geometry  scroll.Geometry
		fighterID int64
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Drives one scroll run against fixed geometry",
		Long: `Runs the scroll engine in real time against a container with fixed
geometry and logs every scroll command. With --id the fighter is parsed first
and the run is skipped when the biography has too few events.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			logger := a.Logger.Named("simulate")

			label := ""
			if fighterID > 0 {
				view, err := a.Highlights.Build(cmd.Context(), fighterID)
				if err != nil {
					return fmt.Errorf("load fighter %d: %w", fighterID, err)
				}
				if view.Mode != timeline.ModeTimeline {
					logger.Info("not enough events for a timeline; nothing to scroll",
						zap.Int64("fighter_id", fighterID),
						zap.Int("events", len(view.Events)),
					)
					return nil
				}
				label = view.Fighter.Label()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			pos := scroll.PositionerFunc(func(offset float64, mode scroll.Mode) {
				logger.Info("scroll", zap.Float64("offset", offset), zap.String("mode", string(mode)))
			})
			run, ok := a.Engine.Start(ctx, scroll.StaticGeometry(geometry), pos, scroll.WithLabel(label))
			if !ok {
				return fmt.Errorf("container unavailable")
			}
			<-run.Done()

			logger.Info("run finished",
				zap.Stringer("run_id", run.ID()),
				zap.String("outcome", string(run.Outcome())),
			)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), run.Outcome())
			return err
		},
	}
	cmd.Flags().Float64Var(&geometry.Top, "top", 600, "container offset from the document top")
	cmd.Flags().Float64Var(&geometry.Height, "height", 2400, "container height")
	cmd.Flags().Float64Var(&geometry.ViewportHeight, "viewport", 900, "viewport height")
	cmd.Flags().Int64Var(&fighterID, "id", 0, "fighter ID to parse before scrolling")
	return cmd
}
