package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bdr-au/dataquality/storage"
)

func runsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List or inspect archived assessment runs",
		Long: `Runs lists assessment runs previously archived with --publish, or
shows the full summary of one run when a run ID is given. Requires a
reachable NATS server.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := slog.Default()

			cfg, err := loadConfig(configPath, logger)
			if err != nil {
				return err
			}

			nc, err := connectToNATS(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer nc.Close(ctx)

			js, err := nc.JetStream()
			if err != nil {
				return fmt.Errorf("get jetstream: %w", err)
			}
			archive, err := storage.NewArchive(ctx, js)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				return showRun(cmd, archive, args[0])
			}
			return listRuns(cmd, archive)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML, overrides discovery)")

	return cmd
}

func listRuns(cmd *cobra.Command, archive *storage.Archive) error {
	records, err := archive.ListRuns(cmd.Context())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		cmd.Println("no archived runs")
		return nil
	}
	for _, r := range records {
		cmd.Printf("%s  %s  observations=%d results=%d\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Observations, r.Results)
	}
	return nil
}

func showRun(cmd *cobra.Command, archive *storage.Archive, id string) error {
	r, err := archive.GetRun(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("run %s: %w", id, err)
	}

	cmd.Printf("Run:          %s\n", r.ID)
	cmd.Printf("Started:      %s\n", r.StartedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("Inputs:       %v\n", r.Inputs)
	cmd.Printf("Observations: %d\n", r.Observations)
	cmd.Printf("Results:      %d\n", r.Results)
	for _, s := range r.Skipped {
		cmd.Printf("Skipped:      %s (%s)\n", s.Dimension, s.Reason)
	}
	for _, uc := range r.UseCases {
		if uc.Error != "" {
			cmd.Printf("Use case:     %s aborted (%s)\n", uc.Name, uc.Error)
			continue
		}
		cmd.Printf("Use case:     %s %d/%d\n", uc.Name, uc.Satisfied, uc.Total)
	}
	for _, m := range r.Methods {
		if m.Error != "" {
			cmd.Printf("Method:       %s aborted (%s)\n", m.Name, m.Error)
			continue
		}
		cmd.Printf("Method:       %s FFP1=%d FFP2=%d FFP3=%d\n",
			m.Name, m.TierCounts["FFP1"], m.TierCounts["FFP2"], m.TierCounts["FFP3"])
	}
	return nil
}
