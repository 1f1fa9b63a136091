package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"ai_text_improver/logging"
	"ai_text_improver/render"
	"ai_text_improver/revision"
	"ai_text_improver/server"
	"ai_text_improver/settings"
	"ai_text_improver/tui"
)

const (
	envAPIKey       = "OPENAI_API_KEY"
	defaultAddr     = "127.0.0.1:8080"
	shutdownTimeout = 5 * time.Second
)

// app is the state shared by every command once settings are loaded.
type app struct {
	configPath string
	debug      bool

	store *settings.FileStore
	cfg   settings.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "ai_text_improver",
		Short:         "Rewrite text with a chat-completion model",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(); err != nil {
				return err
			}
			log := logging.New(cmd.ErrOrStderr(), logging.Level(a.debug), true)
			cmd.SetContext(logging.NewContext(cmd.Context(), log))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to settings.yaml (default: user config dir)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logs")

	root.AddCommand(newReviseCmd(a), newServeCmd(a), newKeyCmd(a))
	return root
}

func (a *app) load() error {
	path := a.configPath
	if path == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	store, err := settings.OpenFileStore(path)
	if err != nil {
		return err
	}
	cfg, err := settings.Load(store)
	if err != nil {
		return errors.Errorf("%s: %w", path, err)
	}
	a.store, a.cfg = store, cfg
	return nil
}

func (a *app) reviser(log zerolog.Logger) (*revision.Reviser, error) {
	llm, err := revision.NewOpenAIClient(
		&revision.LLMSettings{BaseURL: a.cfg.BaseURL},
		&http.Client{Timeout: a.cfg.Timeout},
	)
	if err != nil {
		return nil, err
	}
	return revision.NewReviser(llm, logging.Observer{Log: log})
}

// runTUI owns the terminal, so logs go to a file beside the settings.
func (a *app) runTUI(ctx context.Context) error {
	logPath := settings.LogPath(a.store.Path())
	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
		return errors.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return errors.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	log := logging.New(f, logging.Level(a.debug), false)
	r, err := a.reviser(log)
	if err != nil {
		return err
	}
	m := tui.New(tui.Config{
		Reviser: r,
		Store:   a.store,
		Timeout: a.cfg.Timeout,
		Log:     log,
	})
	log.Info().Str("settings", a.store.Path()).Msg("starting tui")
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Errorf("running tui: %w", err)
	}
	return nil
}

func newReviseCmd(a *app) *cobra.Command {
	var (
		toneName   string
		readable   bool
		formatName string
	)
	cmd := &cobra.Command{
		Use:   "revise [text...]",
		Short: "Revise text from arguments or stdin and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			tone, err := revision.ParseTone(toneName)
			if err != nil {
				return err
			}
			format, err := render.ParseFormat(formatName)
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Errorf("reading stdin: %w", err)
				}
				text = strings.TrimSpace(string(data))
			}
			if text == "" {
				return errors.New("no text to revise")
			}

			credential := settings.APIKey(a.store)
			if credential == "" {
				credential = strings.TrimSpace(os.Getenv(envAPIKey))
			}
			if credential == "" {
				return errors.Errorf("api key not configured: run `key set` or export %s", envAPIKey)
			}

			r, err := a.reviser(logging.FromContext(cmd.Context()))
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Timeout)
			defer cancel()
			out, err := r.Revise(ctx, revision.Request{
				Text:       text,
				Config:     revision.Config{Tone: tone, ImproveReadability: readable},
				Credential: credential,
			})
			if err != nil {
				return err
			}

			rendered, err := render.Render(out, format)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), rendered)
			return err
		},
	}
	cmd.Flags().StringVar(&toneName, "tone", string(revision.ToneOriginal), "tone: original, formal or playful")
	cmd.Flags().BoolVar(&readable, "readable", false, "improve readability instead of only fixing grammar")
	cmd.Flags().StringVar(&formatName, "format", string(render.FormatText), "output format: text or html")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the revision endpoint over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logging.FromContext(cmd.Context())
			r, err := a.reviser(log)
			if err != nil {
				return err
			}
			srv, err := server.New(r, a.store, a.cfg.Timeout, log)
			if err != nil {
				return err
			}
			hs := &http.Server{
				Addr:              addr,
				Handler:           srv.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				log.Info().Str("addr", addr).Msg("starting web server")
				if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return errors.Errorf("listening on %s: %w", addr, err)
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				log.Info().Msg("shutting down web server")
				return hs.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "http listen address")
	return cmd
}

func newKeyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored OpenAI API key",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <api-key>",
			Short: "Save the API key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if strings.TrimSpace(args[0]) == "" {
					return errors.New("api key is empty")
				}
				if err := settings.SaveAPIKey(a.store, args[0]); err != nil {
					return err
				}
				logging.NewConsole(cmd.OutOrStdout()).Success("API key saved to " + a.store.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "unset",
			Short: "Remove the stored API key",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := settings.SaveAPIKey(a.store, ""); err != nil {
					return err
				}
				logging.NewConsole(cmd.OutOrStdout()).Info("API key removed")
				return nil
			},
		},
	)
	return cmd
}
