package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/maastricht-university/coref-chains/chain"
	cfg "github.com/maastricht-university/coref-chains/config"
	"github.com/maastricht-university/coref-chains/export"
	"github.com/maastricht-university/coref-chains/orchestrator"
)

var (
	configPath string
	logLevel   string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "corefchains",
		Short:         "Build speaker-aware anaphoric chains from dialogue coreference clusters",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default config/$CONFIG_ENV/config.yaml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override pipeline.log_level")
	root.AddCommand(runCmd(), showCmd())
	return root
}

func loadConfig() (*cfg.Root, error) {
	conf, err := cfg.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		conf.Pipeline.LogLvl = logLevel
	}
	return conf, nil
}

func runCmd() *cobra.Command {
	var n, workers int
	var csvPath, transitionsPath, sqlitePath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process dialogues 0..N-1 and export their chains",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				conf.Batch.Workers = workers
			}
			if cmd.Flags().Changed("dialogues") {
				conf.Batch.Dialogues = n
			}
			if cmd.Flags().Changed("csv") {
				conf.Export.CSV = csvPath
			}
			if cmd.Flags().Changed("transitions-csv") {
				conf.Export.TransitionsCSV = transitionsPath
			}
			if cmd.Flags().Changed("sqlite") {
				conf.Export.SQLite = sqlitePath
			}
			if err := conf.Validate(); err != nil {
				return err
			}
			log := conf.Logger()
			p, err := orchestrator.NewPipeline(conf, log)
			if err != nil {
				return err
			}

			sink, err := openSinks(conf.Export)
			if err != nil {
				return err
			}
			log.WithField("dialogues", conf.Batch.Dialogues).Infof("%s starting…", conf.Pipeline.Name)
			sum, runErr := p.Run(cmd.Context(), conf.Batch.Dialogues, sink)
			if err := errors.Join(runErr, sink.Close()); err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"run_id": sum.RunID,
				"failed": sum.Failed,
				"flows":  len(sum.Flows),
			}).Info("done")
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "dialogues", "n", 0, "number of dialogues (overrides batch.dialogues)")
	cmd.Flags().IntVar(&workers, "workers", 1, "dialogues processed in parallel")
	cmd.Flags().StringVar(&csvPath, "csv", "", "mention CSV output (overrides export.csv)")
	cmd.Flags().StringVar(&transitionsPath, "transitions-csv", "", "transition CSV output")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite output")
	return cmd
}

func openSinks(e cfg.Export) (export.Sink, error) {
	var sinks []export.Sink
	if e.CSV != "" {
		s, err := export.NewCSVSink(e.CSV, e.TransitionsCSV)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if e.SQLite != "" {
		s, err := export.NewSQLiteSink(e.SQLite)
		if err != nil {
			export.Multi(sinks...).Close()
			return nil, err
		}
		sinks = append(sinks, s)
	}
	return export.Multi(sinks...), nil
}

func showCmd() *cobra.Command {
	var id int
	cmd := &cobra.Command{
		Use:   "show <conv_id>",
		Short: "Print the chains, traces and transitions of one dialogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := fmt.Sscan(args[0], &id); err != nil {
				return fmt.Errorf("conv_id: %w", err)
			}
			conf, err := loadConfig()
			if err != nil {
				return err
			}
			p, err := orchestrator.NewPipeline(conf, conf.Logger())
			if err != nil {
				return err
			}
			res, err := p.ProcessDialogue(cmd.Context(), id)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	return cmd
}

func printResult(w io.Writer, res *orchestrator.Result) {
	st := res.Stats
	fmt.Fprintf(w, "dialogue %d: %d turns, %d clusters, %d mentions (%d dropped), %d chains (%d skipped)\n",
		res.ConvID, st.Turns, st.Clusters, st.Mentions, st.DroppedMentions, st.Chains, st.SkippedClusters)
	for i, c := range res.Chains {
		fmt.Fprintf(w, "\n#%d %s\n", i, c)
		for _, r := range c.TabularTrace() {
			fmt.Fprintf(w, "  turn %-3d %-4s %-3s %s\n", r.TurnID, r.Speaker, r.Form, r.Text)
		}
		for _, t := range c.Transitions() {
			fmt.Fprintf(w, "  %s -> %s  turns %d->%d  %s cross=%t\n",
				t.StartForm, t.EndForm, t.TurnStart, t.TurnEnd, t.SpeakerChain, t.IsCrossSpeaker)
		}
	}
	if flows := chain.CountFlows(res.Chains); len(flows) > 0 {
		fmt.Fprintln(w, "\nflows:")
		for _, f := range flows {
			fmt.Fprintf(w, "  %-2s -> %-2s %d (cross-speaker %d)\n", f.From, f.To, f.Count, f.CrossSpeaker)
		}
	}
}
