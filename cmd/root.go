package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/intent-sim/intent-sim/intent"
)

var (
	// CLI flags
	logLevel    string // log verbosity level
	vocabPath   string // optional YAML keyword vocabulary override
	termsPath   string // optional YAML provider terms override
	clusterPath string // YAML cluster description (hosts, candidates, vm)
	userID      string // user identity for history tracking
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "intent-sim",
	Short: "Intent-driven cloud resource decision pipeline",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// extractCmd parses free text into a priority vector and explains the result.
var extractCmd = &cobra.Command{
	Use:   "extract [text]",
	Short: "Parse a natural-language request into a priority vector",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vocab, err := loadVocab()
		if err != nil {
			return err
		}
		extractor := intent.NewExtractor(vocab)
		fmt.Fprint(cmd.OutOrStdout(), extractor.Explain(args[0]))
		return nil
	},
}

// decideCmd runs the full pipeline for one request against a cluster file:
// extract, learn/predict, negotiate, pick a candidate configuration, place
// the VM.
var decideCmd = &cobra.Command{
	Use:   "decide [text]",
	Short: "Run the full decision pipeline for a request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vocab, err := loadVocab()
		if err != nil {
			return err
		}
		terms, err := loadTerms()
		if err != nil {
			return err
		}
		cluster, err := LoadClusterSpec(clusterPath)
		if err != nil {
			return err
		}

		extractor := intent.NewExtractor(vocab)
		tracker := intent.NewTracker(intent.NewHistoryStore())
		negotiator := intent.NewNegotiator(terms)
		var engine intent.TradeoffEngine
		var placement intent.PlacementPolicy

		v := extractor.Extract(args[0])
		tracker.Learn(userID, v)
		logrus.Infof("extracted %v", v)

		contract := negotiator.Negotiate(v)
		logrus.Infof("negotiated %v", contract)
		if !contract.Accepted {
			logrus.Warn("contract not accepted by provider; proceeding with unaccepted terms")
		}

		costs, latencies := cluster.CandidateArrays()
		best := engine.FindBest(costs, latencies, v)
		chosen := cluster.Candidates[best]
		logrus.Infof("best configuration: %s (cost=$%.2f/hr latency=%.1fms, meets contract: %t)",
			chosen.Name, chosen.Cost, chosen.Latency,
			engine.MeetsContract(chosen.Cost, chosen.Latency, contract))
		logrus.Infof("pareto score: %.3f", engine.ParetoScore(chosen.Cost, chosen.Latency))

		decision, err := placement.SelectHost(cluster.VM, cluster.Hosts, v)
		if err != nil {
			return fmt.Errorf("placing vm %s: %w", cluster.VM.ID, err)
		}
		logrus.Infof("placed vm %s on host %s (score=%.2f)", cluster.VM.ID, decision.HostID, decision.Score)

		fmt.Fprintf(cmd.OutOrStdout(), "configuration: %s\ncontract: %s\nhost: %s\n",
			chosen.Name, contract.ID, decision.HostID)
		return nil
	},
}

func loadVocab() (intent.Vocabulary, error) {
	if vocabPath == "" {
		return intent.DefaultVocabulary(), nil
	}
	return intent.LoadVocabulary(vocabPath)
}

func loadTerms() (intent.ProviderTerms, error) {
	if termsPath == "" {
		return intent.DefaultProviderTerms(), nil
	}
	return intent.LoadProviderTerms(termsPath)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&vocabPath, "vocab", "", "Path to a YAML keyword vocabulary (default: built-in)")

	decideCmd.Flags().StringVar(&termsPath, "terms", "", "Path to YAML provider terms (default: built-in)")
	decideCmd.Flags().StringVar(&clusterPath, "cluster", "", "Path to YAML cluster description")
	decideCmd.Flags().StringVar(&userID, "user", "default", "User id for intent history")
	_ = decideCmd.MarkFlagRequired("cluster")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(decideCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
