// Command notes is the game notes CLI.
//
// Usage:
//
//	gamenotes generate --team "Kansas Jayhawks"
//	gamenotes generate --team "Iowa Hawkeyes" --gender FEMALE --season 2024-25
//	gamenotes team-stats --team "Kansas Jayhawks"
//	gamenotes player-stats --team "Kansas Jayhawks"
//	gamenotes player-stats --players "Ayo Carter,Ben Dawson"
//	gamenotes quads --team "Kansas Jayhawks"
//	gamenotes roster --team "Kansas Jayhawks"
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/courtsidelabs/gamenotes/internal/config"
	"github.com/courtsidelabs/gamenotes/internal/export"
	"github.com/courtsidelabs/gamenotes/internal/narrative"
	"github.com/courtsidelabs/gamenotes/internal/pipeline"
	"github.com/courtsidelabs/gamenotes/internal/provider/cbb"
	"github.com/courtsidelabs/gamenotes/internal/ranker"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// teamFlags are shared by every subcommand.
type teamFlags struct {
	team     string
	gender   string
	season   string
	division int
}

func (f *teamFlags) register(cmd *cobra.Command) {
	f.registerOptional(cmd)
	cmd.MarkFlagRequired("team")
}

func (f *teamFlags) registerOptional(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.team, "team", "", "Full team name, e.g. \"Kansas Jayhawks\"")
	cmd.Flags().StringVar(&f.gender, "gender", "MALE", "MALE or FEMALE")
	cmd.Flags().StringVar(&f.season, "season", "", "Season as YYYY-YY (defaults to current)")
	cmd.Flags().IntVar(&f.division, "division", 1, "Division")
}

func (f *teamFlags) params() pipeline.Params {
	return pipeline.Params{
		TeamName:   f.team,
		Gender:     f.gender,
		Season:     f.season,
		DivisionID: f.division,
	}
}

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "gamenotes",
		Short:         "College basketball game notes generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(generateCmd())
	root.AddCommand(teamStatsCmd())
	root.AddCommand(playerStatsCmd())
	root.AddCommand(quadsCmd())
	root.AddCommand(rosterCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// deps are the wired services a command body works with.
type deps struct {
	client *cbb.Client
	engine *ranker.Engine
	pipe   *pipeline.Pipeline
}

// runWith loads config, sets up signal handling, and builds the pipeline
// before handing control to the command body.
func runWith(fn func(ctx context.Context, cfg *config.Config, d deps) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	client := cbb.NewClient(cfg.CBBBaseURL, cfg.CBBAPIKey, cfg.CBBRequestsPer, logger)
	engine := ranker.New(client, logger)
	gen := narrative.NewChatClient(narrative.ChatConfig{
		BaseURL:     cfg.MistralBaseURL,
		APIKey:      cfg.MistralAPIKey,
		Model:       cfg.NotesModel,
		Temperature: cfg.NotesTemperature,
	})

	return fn(ctx, cfg, deps{
		client: client,
		engine: engine,
		pipe:   pipeline.New(client, engine, gen, logger),
	})
}

// --------------------------------------------------------------------------
// generate command
// --------------------------------------------------------------------------

func generateCmd() *cobra.Command {
	var flags teamFlags
	var outDir string
	var noExport bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate narrative game notes for a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(func(ctx context.Context, cfg *config.Config, d deps) error {
				start := time.Now()
				res, err := d.pipe.Run(ctx, flags.params())
				if err != nil {
					return err
				}

				fmt.Println(res.Notes)

				if !noExport {
					dir := outDir
					if dir == "" {
						dir = cfg.ExportDir
					}
					path, err := export.WriteNotes(dir, res.Team.FullName(), res.Notes, time.Now())
					if err != nil {
						return fmt.Errorf("export notes: %w", err)
					}
					fmt.Fprintf(os.Stderr, "\nSaved to %s (%s)\n", path, time.Since(start).Round(time.Second))
				}
				return nil
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (defaults to EXPORT_DIR)")
	cmd.Flags().BoolVar(&noExport, "no-export", false, "Print notes without writing a file")
	return cmd
}

// --------------------------------------------------------------------------
// inspection commands
// --------------------------------------------------------------------------

func teamStatsCmd() *cobra.Command {
	var flags teamFlags
	cmd := &cobra.Command{
		Use:   "team-stats",
		Short: "Show the ranked season stat line for a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(func(ctx context.Context, cfg *config.Config, d deps) error {
				res, err := d.pipe.Collect(ctx, flags.params())
				if err != nil {
					return err
				}
				fmt.Printf("%s (%s)\n\n", res.Team.FullName(), res.Season)
				for _, row := range res.Payload.TeamStats.Rows {
					renderRankedRow(os.Stdout, row, res.Payload.TeamStats.Key)
				}
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func playerStatsCmd() *cobra.Command {
	var flags teamFlags
	var players []string
	cmd := &cobra.Command{
		Use:   "player-stats",
		Short: "Show ranked season stats for a team's top players, or for named players",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.team == "" && len(players) == 0 {
				return fmt.Errorf("either --team or --players is required")
			}
			return runWith(func(ctx context.Context, cfg *config.Config, d deps) error {
				if len(players) > 0 {
					return namedPlayerStats(ctx, d, flags, players)
				}

				res, err := d.pipe.Collect(ctx, flags.params())
				if err != nil {
					return err
				}
				names := make(map[int64]string, len(res.Payload.Roster))
				for _, entry := range res.Payload.Roster {
					names[entry.PlayerID] = entry.FullName
				}
				key := res.Payload.PlayerStats.Key
				for _, row := range res.Payload.PlayerStats.Rows {
					if id, ok := rowID(row, key); ok {
						fmt.Printf("%s\n", names[id])
					}
					renderRankedRow(os.Stdout, row, key)
					fmt.Println()
				}
				return nil
			})
		},
	}
	flags.registerOptional(cmd)
	cmd.Flags().StringSliceVar(&players, "players", nil, "Player full names to look up instead of the roster")
	return cmd
}

// namedPlayerStats resolves player ids by full name and ranks just those
// players. Ranks are still computed over the full population.
func namedPlayerStats(ctx context.Context, d deps, flags teamFlags, players []string) error {
	season := flags.season
	if season == "" {
		season = cbb.CurrentSeason(time.Now(), 0)
	}
	comp, err := d.client.FindCompetition(ctx, cbb.SeasonCompetitionName(season, flags.gender), flags.gender)
	if err != nil {
		return fmt.Errorf("resolve competition: %w", err)
	}

	ids := make([]int64, 0, len(players))
	names := make(map[int64]string, len(players))
	for _, name := range players {
		id, err := d.client.FindPlayerID(ctx, name, comp.CompetitionID, flags.division)
		if err != nil {
			return fmt.Errorf("resolve player %q: %w", name, err)
		}
		ids = append(ids, id)
		names[id] = name
	}

	table, err := d.engine.PlayerSeasonRanks(ctx, comp.CompetitionID, flags.division, ids)
	if err != nil {
		return err
	}
	for _, row := range table.Rows {
		if id, ok := rowID(row, table.Key); ok {
			fmt.Printf("%s\n", names[id])
		}
		renderRankedRow(os.Stdout, row, table.Key)
		fmt.Println()
	}
	return nil
}

func quadsCmd() *cobra.Command {
	var flags teamFlags
	cmd := &cobra.Command{
		Use:   "quads",
		Short: "Show per-game averages split by opponent quad group",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(func(ctx context.Context, cfg *config.Config, d deps) error {
				res, err := d.pipe.Collect(ctx, flags.params())
				if err != nil {
					return err
				}
				fmt.Printf("%s (%s)\n\n", res.Team.FullName(), res.Season)
				renderQuadTable(os.Stdout, res.Payload.QuadSplits)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func rosterCmd() *cobra.Command {
	var flags teamFlags
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Show the top six players by minutes then usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(func(ctx context.Context, cfg *config.Config, d deps) error {
				res, err := d.pipe.Collect(ctx, flags.params())
				if err != nil {
					return err
				}
				fmt.Printf("%s (%s)\n\n", res.Team.FullName(), res.Season)
				renderRoster(os.Stdout, res.Payload.Roster)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}
