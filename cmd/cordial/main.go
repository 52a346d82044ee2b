package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shorebird/cordial"
	"github.com/shorebird/cordial/auditlog"
	"github.com/shorebird/cordial/internal/archive"
	"github.com/shorebird/cordial/internal/config"
	"github.com/shorebird/cordial/internal/export"
	"github.com/shorebird/cordial/rest"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cordial",
		Short: "cordial is a Discord audit log client and archiver",
	}

	var configPath string
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	rootCmd.AddCommand(fetchCmd(&configPath))
	rootCmd.AddCommand(archiveCmd(&configPath))
	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func fetchCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Stream a guild's audit log to stdout as JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := setupLogger(cfg.Logging)

			client, guildID, err := clientFromFlags(cfg, cmd, log)
			if err != nil {
				return err
			}

			opts, err := iteratorOptionsFromFlags(cmd)
			if err != nil {
				return err
			}

			it := auditlog.NewIterator(client.GuildAuditLog, guildID, opts)
			enc := json.NewEncoder(os.Stdout)
			count := 0
			for {
				entry, err := it.Next(cmd.Context())
				if errors.Is(err, auditlog.Done) {
					break
				}
				if err != nil {
					return fmt.Errorf("failed to fetch audit log: %w", err)
				}
				if err := enc.Encode(entry); err != nil {
					return err
				}
				count++
			}

			log.Info().Int("entries", count).Msg("fetch completed")
			return nil
		},
	}
	addFetchFlags(cmd)
	cmd.Flags().Int("limit", 0, "stop after this many entries (0 = all)")
	return cmd
}

func archiveCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive a guild's audit log into the local database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := setupLogger(cfg.Logging)

			client, guildID, err := clientFromFlags(cfg, cmd, log)
			if err != nil {
				return err
			}

			store, err := setupArchive(cfg.Archive, log)
			if err != nil {
				return fmt.Errorf("failed to setup archive: %w", err)
			}
			defer store.Close()

			ctx := cmd.Context()
			last, err := store.LastEntryID(ctx, guildID)
			if err != nil {
				return fmt.Errorf("failed to read archive cursor: %w", err)
			}
			if last != 0 {
				log.Info().Str("entry_id", last.String()).Msg("resuming after newest archived entry")
			}

			opts, err := iteratorOptionsFromFlags(cmd)
			if err != nil {
				return err
			}

			it := auditlog.NewIterator(client.GuildAuditLog, guildID, opts)
			var batch []auditlog.Entry
			saved := 0
			for {
				entry, err := it.Next(ctx)
				if errors.Is(err, auditlog.Done) {
					break
				}
				if err != nil {
					return fmt.Errorf("failed to fetch audit log: %w", err)
				}
				// Entries arrive newest first, so hitting an archived id
				// means the rest is already stored.
				if last != 0 && entry.ID <= last {
					break
				}
				batch = append(batch, *entry)
				if len(batch) >= 100 {
					if err := store.SaveEntries(ctx, guildID, batch); err != nil {
						return fmt.Errorf("failed to save entries: %w", err)
					}
					saved += len(batch)
					batch = batch[:0]
				}
			}
			if len(batch) > 0 {
				if err := store.SaveEntries(ctx, guildID, batch); err != nil {
					return fmt.Errorf("failed to save entries: %w", err)
				}
				saved += len(batch)
			}

			log.Info().Int("entries", saved).Msg("archive completed")
			return nil
		},
	}
	addFetchFlags(cmd)
	return cmd
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the local audit log archive over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log := setupLogger(cfg.Logging)

			store, err := setupArchive(cfg.Archive, log)
			if err != nil {
				return fmt.Errorf("failed to setup archive: %w", err)
			}
			defer store.Close()

			server := export.NewServer(cfg.Export, store, log)
			go func() {
				if err := server.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("server error")
				}
			}()

			log.Info().
				Str("version", cordial.Version).
				Int("port", cfg.Export.Port).
				Str("archive", cfg.Archive.Path).
				Msg("cordial export server is running")

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			log.Info().Msg("shutting down...")

			if err := server.Shutdown(10 * time.Second); err != nil {
				log.Error().Err(err).Msg("server shutdown error")
			}

			log.Info().Msg("cordial stopped")
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cordial v%s\n", cordial.Version)
		},
	}
}

func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().String("guild", "", "guild id (required)")
	cmd.Flags().String("user", "", "only entries by this user id")
	cmd.Flags().Int("action", 0, "only entries with this action type")
}

func clientFromFlags(cfg *config.Config, cmd *cobra.Command, log zerolog.Logger) (*rest.Client, cordial.Snowflake, error) {
	if cfg.API.Token == "" {
		return nil, 0, fmt.Errorf("api.token is required (set CORDIAL_API_TOKEN or the config file)")
	}

	guild, _ := cmd.Flags().GetString("guild")
	if guild == "" {
		return nil, 0, fmt.Errorf("--guild is required")
	}
	guildID, err := cordial.ParseSnowflake(guild)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid guild id: %w", err)
	}

	client := rest.NewClient(cfg.API.Token, cfg.API.Timeout, log)
	if cfg.API.BaseURL != "" {
		client.BaseURL = cfg.API.BaseURL
	}
	return client, guildID, nil
}

func iteratorOptionsFromFlags(cmd *cobra.Command) (auditlog.IteratorOptions, error) {
	var opts auditlog.IteratorOptions

	if user, _ := cmd.Flags().GetString("user"); user != "" {
		userID, err := cordial.ParseSnowflake(user)
		if err != nil {
			return opts, fmt.Errorf("invalid user id: %w", err)
		}
		opts.UserID = userID
	}
	if action, _ := cmd.Flags().GetInt("action"); action != 0 {
		opts.ActionType = auditlog.EventType(action)
	}
	if cmd.Flags().Lookup("limit") != nil {
		opts.Limit, _ = cmd.Flags().GetInt("limit")
	}
	return opts, nil
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func setupArchive(cfg config.ArchiveConfig, log zerolog.Logger) (archive.Store, error) {
	log.Info().Str("path", cfg.Path).Msg("using SQLite archive")
	store, err := archive.NewSQLite(cfg.Path)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(context.Background()); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
