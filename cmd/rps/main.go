package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"rps/internal/bootstrap"
	"rps/internal/platform/config"
	"rps/internal/platform/logging"
)

var version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// flagKeys maps persistent flags to config keys.
var flagKeys = map[string]string{
	"config":          "config",
	"data-dir":        "data_dir",
	"store-driver":    "store.driver",
	"store-path":      "store.path",
	"store-dsn":       "store.dsn",
	"capacity":        "store.capacity",
	"seed":            "game.seed",
	"opponent-plugin": "opponent.plugin",
	"log-level":       "log.level",
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "rps",
		Short:         "Rock, paper, scissors in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, v)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml)")
	flags.String("data-dir", "", "directory for the database and the debug log")
	flags.String("store-driver", "", "saved game store: sqlite or postgres")
	flags.String("store-path", "", "sqlite database file")
	flags.String("store-dsn", "", "postgres connection string")
	flags.Int("capacity", 0, "max number of saved games")
	flags.Int64("seed", 0, "opponent seed, 0 picks one at random")
	flags.String("opponent-plugin", "", "opponent plugin binary")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(flagKeys[f.Name], f)
	})

	root.AddCommand(newPlayCmd(v))
	root.AddCommand(newTUICmd(v))
	root.AddCommand(newSavesCmd(v))
	root.AddCommand(newVersionCmd())
	return root
}

type session struct {
	app  *bootstrap.App
	logs *logging.Result
}

func (s session) Close() {
	_ = s.app.Close()
	_ = s.logs.Close()
}

func loadApp(ctx context.Context, v *viper.Viper) (session, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return session{}, fmt.Errorf("load config: %w", err)
	}
	logs, err := logging.Setup(cfg.Log)
	if err != nil {
		return session{}, fmt.Errorf("setup logging: %w", err)
	}
	app, err := bootstrap.New(ctx, cfg, logs.Logger)
	if err != nil {
		logs.Logger.Error("startup failed", "error", err)
		_ = logs.Close()
		return session{}, err
	}
	return session{app: app, logs: logs}, nil
}

func runPlay(cmd *cobra.Command, v *viper.Viper) error {
	s, err := loadApp(cmd.Context(), v)
	if err != nil {
		return err
	}
	defer s.Close()
	return bootstrap.RunConsole(cmd.Context(), s.app, cmd.InOrStdin(), cmd.OutOrStdout())
}

func newPlayCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in line mode (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, v)
		},
	}
}

func newTUICmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Play in the full-screen terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadApp(cmd.Context(), v)
			if err != nil {
				return err
			}
			defer s.Close()
			return bootstrap.RunTUI(cmd.Context(), s.app)
		},
	}
}

func newSavesCmd(v *viper.Viper) *cobra.Command {
	saves := &cobra.Command{Use: "saves", Short: "Inspect saved games"}

	saves.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved games, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadApp(cmd.Context(), v)
			if err != nil {
				return err
			}
			defer s.Close()
			games, err := s.app.GameCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(games) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no saved games")
				return nil
			}
			for _, g := range games {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\twon=%d\tlost=%d\t%s\n", g.ID, g.GamesWon, g.GamesLost, g.SavedAt.Format("2006-01-02T15:04:05Z07:00"))
			}
			return nil
		},
	})

	var asYAML bool
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one saved game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadApp(cmd.Context(), v)
			if err != nil {
				return err
			}
			defer s.Close()
			g, err := s.app.GameCLI.Show(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if asYAML {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				defer func() { _ = enc.Close() }()
				return enc.Encode(g)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(),
				"id: %s\ngames: won %d, lost %d\nround: %d/%d\nrounds: won %d, lost %d, draws %d\nlast choices: %s vs %s\nsaved: %s\n",
				g.ID, g.GamesWon, g.GamesLost, g.CurrentRound, g.MaxRounds, g.RoundsWon, g.RoundsLost, g.TotalDraws,
				orDash(g.UserChoice), orDash(g.OpponentChoice), g.SavedAt.Format("2006-01-02T15:04:05Z07:00"))
			return nil
		},
	}
	show.Flags().BoolVar(&asYAML, "yaml", false, "print as yaml")
	saves.AddCommand(show)

	saves.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadApp(cmd.Context(), v)
			if err != nil {
				return err
			}
			defer s.Close()
			id := strings.TrimSpace(args[0])
			if err := s.app.GameCLI.Delete(cmd.Context(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	})
	return saves
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
