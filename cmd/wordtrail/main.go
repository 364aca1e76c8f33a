package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wordtrail/wordtrail/internal/profile"
	"github.com/wordtrail/wordtrail/server/service/achievement"
	"github.com/wordtrail/wordtrail/server/service/review"
	"github.com/wordtrail/wordtrail/server/service/wordbook"
	"github.com/wordtrail/wordtrail/store"
	"github.com/wordtrail/wordtrail/store/db"
)

const (
	version = "0.4.0"
)

var rootCmd = &cobra.Command{
	Use:     "wordtrail",
	Short:   "A personal vocabulary trainer with spaced-repetition review",
	Version: version,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a tab-separated word list into a new wordbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := newStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		words, err := readWordFile(args[0])
		if err != nil {
			return err
		}

		name := viper.GetString("import.name")
		if name == "" {
			name = strings.TrimSuffix(args[0], ".tsv")
		}

		svc := wordbook.NewService(s)
		book, err := svc.Create(ctx, name, "", args[0], "import")
		if err != nil {
			return err
		}
		inserted, err := svc.Import(ctx, book.ID, words)
		if err != nil {
			return err
		}
		if viper.GetBool("import.activate") {
			if err := svc.SetActive(ctx, book.ID); err != nil {
				return err
			}
		}
		fmt.Printf("imported %d words into wordbook %q (id %d)\n", inserted, book.Name, book.ID)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-wordbook counts and achievement progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := newStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		svc := wordbook.NewService(s)
		for _, book := range svc.List(ctx) {
			stats := svc.Stats(ctx, book.ID)
			if stats == nil {
				continue
			}
			marker := " "
			if stats.IsActive {
				marker = "*"
			}
			fmt.Printf("%s %-24s total=%d new=%d due=%d learned=%d\n",
				marker, stats.Name, stats.TotalCount, stats.NewCount, stats.ReviewCount, stats.LearnedCount)
		}

		tracker := achievement.NewTracker(s)
		if err := tracker.Init(ctx); err != nil {
			return err
		}
		defer tracker.Close()
		for _, ach := range tracker.List() {
			state := fmt.Sprintf("%3.0f%%", ach.Progress*100)
			if ach.Unlocked() {
				state = "done"
			}
			fmt.Printf("  [%s] %s\n", state, ach.Name)
		}
		return nil
	},
}

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List the words due for review today",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := newStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := newProfile()
		if err != nil {
			return err
		}
		svc := review.NewService(s, p, nil)
		words := svc.FetchDueWords(ctx)
		if len(words) == 0 {
			fmt.Println("no words due today")
			return nil
		}
		for _, w := range words {
			fmt.Printf("%-20s %s\n", w.Text, w.Meaning)
		}
		return nil
	},
}

func newProfile() (*profile.Profile, error) {
	p := &profile.Profile{
		Mode:            viper.GetString("mode"),
		Data:            viper.GetString("data"),
		Driver:          viper.GetString("driver"),
		DSN:             viper.GetString("dsn"),
		Version:         version,
		DailyNewGoal:    viper.GetInt("daily-new-goal"),
		DailyReviewGoal: viper.GetInt("daily-review-goal"),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func newStore(ctx context.Context) (*store.Store, error) {
	p, err := newProfile()
	if err != nil {
		return nil, err
	}
	driver, err := db.NewDBDriver(p)
	if err != nil {
		return nil, err
	}
	s := store.New(driver, p)
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// readWordFile parses a tab-separated word list:
// word<TAB>meaning[<TAB>uk-phonetic<TAB>us-phonetic<TAB>example]
func readWordFile(path string) ([]*store.Word, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	words := make([]*store.Word, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		word := &store.Word{
			Text:    fields[0],
			Meaning: fields[1],
			Status:  store.WordStatusNew,
		}
		if len(fields) > 2 {
			word.UKPhonetic = fields[2]
		}
		if len(fields) > 3 {
			word.USPhonetic = fields[3]
		}
		if len(fields) > 4 {
			word.Example = fields[4]
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func init() {
	rootCmd.PersistentFlags().String("mode", "dev", `mode of the application, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("data", ".", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", "database driver")
	rootCmd.PersistentFlags().String("dsn", "", "database source name")
	rootCmd.PersistentFlags().Int("daily-new-goal", 10, "daily new-word goal")
	rootCmd.PersistentFlags().Int("daily-review-goal", 50, "daily review-word goal")

	cobra.CheckErr(viper.BindPFlags(rootCmd.PersistentFlags()))

	importCmd.Flags().String("name", "", "wordbook name")
	importCmd.Flags().Bool("activate", false, "set the imported wordbook active")
	cobra.CheckErr(viper.BindPFlag("import.name", importCmd.Flags().Lookup("name")))
	cobra.CheckErr(viper.BindPFlag("import.activate", importCmd.Flags().Lookup("activate")))

	viper.SetEnvPrefix("wordtrail")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(importCmd, statsCmd, dueCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
