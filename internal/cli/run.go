package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kjorgen/schedcore/internal/export"
	"github.com/kjorgen/schedcore/internal/jobexpr"
	"github.com/kjorgen/schedcore/internal/scheduler"
	"github.com/kjorgen/schedcore/internal/store"
	"github.com/kjorgen/schedcore/internal/validate"
	"github.com/kjorgen/schedcore/pkg/model"

	"github.com/google/uuid"
)

func newRunCmd() *cobra.Command {
	var dbPath, s3Bucket, s3Region string

	cmd := &cobra.Command{
		Use:   "run <instance-file>",
		Short: "Compute and persist a schedule for the given instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := loadInstance(args[0])
			if err != nil {
				return err
			}

			started := time.Now()
			sched, computeErr := scheduler.ComputeSchedule(&inst, logger)
			duration := time.Since(started)

			run := &model.Run{
				ID:            "run_" + uuid.New().String(),
				SubmittedAt:   started.UTC(),
				Instance:      inst,
				DurationNanos: duration.Nanoseconds(),
			}
			if computeErr != nil {
				run.Failure = computeErr.Error()
			} else {
				run.Schedule = sched
			}

			if dbPath != "" {
				st, err := store.NewSQLiteStore(dbPath, logger)
				if err != nil {
					return fmt.Errorf("open store: %w", err)
				}
				defer st.Close()
				if err := st.Migrate(cmd.Context()); err != nil {
					return fmt.Errorf("migrate store: %w", err)
				}
				if err := st.SaveRun(cmd.Context(), run); err != nil {
					return fmt.Errorf("save run: %w", err)
				}
			}

			if computeErr == nil && s3Bucket != "" {
				if err := exportSchedule(cmd.Context(), s3Bucket, s3Region, run); err != nil {
					return err
				}
			}

			printRun(cmd, run)

			if computeErr != nil {
				return computeErr
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path to persist the run (skipped if empty)")
	cmd.Flags().StringVar(&s3Bucket, "s3-bucket", "", "S3 bucket to upload the schedule to on success")
	cmd.Flags().StringVar(&s3Region, "s3-region", "", "AWS region for --s3-bucket (defaults to the SDK's own resolution)")

	return cmd
}

func exportSchedule(ctx context.Context, bucket, region string, run *model.Run) error {
	exporter, err := export.NewS3Exporter(ctx, region, logger)
	if err != nil {
		return fmt.Errorf("build s3 exporter: %w", err)
	}
	return exporter.Upload(ctx, bucket, run.ID+".json", &run.Schedule)
}

// printRun prints a human summary when stdout is a terminal, or raw JSON
// for piping otherwise, per SPEC_FULL.md §4.12.
func printRun(cmd *cobra.Command, run *model.Run) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.Encode(run)
		return
	}

	out := cmd.OutOrStdout()
	if !run.Succeeded() {
		fmt.Fprintf(out, "Run %s failed: %s\n", run.ID, run.Failure)
		return
	}

	fmt.Fprintf(out, "Run %s\n", run.ID)
	fmt.Fprintf(out, "  Jobs:      %s\n", humanize.Comma(int64(len(run.Instance.Jobs))))
	fmt.Fprintf(out, "  Makespan:  %d\n", run.Schedule.Makespan())
	fmt.Fprintf(out, "  Computed:  %s (submitted %s)\n", time.Duration(run.DurationNanos), humanize.Time(run.SubmittedAt))
}

// resolveJobExprContext exists so validate-before-schedule error messages
// (see newValidateCmd) run the same expression-resolution pass as the
// scheduler core itself.
func resolveJobExprContext(inst *model.Instance) *model.Failure {
	inst.Normalize()

	ev := jobexpr.NewEvaluator()
	for i := range inst.Jobs {
		ctx := jobexpr.Context{Index: i, JobCount: len(inst.Jobs), MachineCount: len(inst.MachineSpeeds)}
		if f := ev.Resolve(&inst.Jobs[i], ctx); f != nil {
			return f
		}
	}
	return validate.Instance(inst, logger)
}
