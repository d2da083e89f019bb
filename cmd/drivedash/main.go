package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/drivedash/drivedash"
	"github.com/drivedash/drivedash/cache"
	"github.com/drivedash/drivedash/command"
	"github.com/drivedash/drivedash/config"
	"github.com/drivedash/drivedash/drive"
	"github.com/drivedash/drivedash/httpd"
	"github.com/drivedash/drivedash/session"
	"github.com/drivedash/drivedash/upload"
	"github.com/drivedash/drivedash/utils"
)

var (
	flagSort   string
	flagFilter string
	flagSearch string
	flagLimit  int64
	flagParent string
	flagAddr   string
)

var rootCmd = &cobra.Command{
	Use:           "drivedash",
	Short:         "Browse and manage a Google Drive account from the terminal",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app wires the long-lived core: one remote client per process, shared by the
// query store and the commander.
type app struct {
	cfg       *config.Config
	store     *cache.Store
	commander *command.Commander
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}

	sess, err := session.FromFiles(ctx, cfg.CredentialsPath, cfg.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("no usable session, run 'drivedash auth' first: %w", err)
	}

	remote := drive.NewRemote(
		drive.WithSession(sess),
		drive.WithTokenSource(sess.TokenSource()),
		drive.WithPageSize(cfg.PageSize),
	)
	store := cache.NewStore(remote, sess)
	pipeline := upload.NewPipeline(sess)
	commander := command.NewCommander(remote, pipeline, store, command.WithNotifier(colorNotifier{}))

	return &app{cfg: cfg, store: store, commander: commander}, nil
}

func readConfig() (*config.Config, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	return config.ReadFromFile(path)
}

// colorNotifier prints command notifications the way the dashboard toasts
// them.
type colorNotifier struct{}

func (colorNotifier) Notify(n command.Notification) {
	if n.Ok {
		color.Green("%s: %s", n.Title, n.Detail)
		return
	}
	color.Red("%s: %s", n.Title, n.Detail)
	if n.Err != nil {
		fmt.Fprintf(os.Stderr, "  detail: %v\n", n.Err)
	}
}

func printListing(res cache.Result[[]drivedash.FileEntity]) error {
	if !res.Ready {
		fmt.Println("session not ready")
		return nil
	}
	if res.Err != nil {
		color.Yellow("refresh failed, showing last known listing: %v", res.Err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	now := time.Now()
	for _, e := range res.Data {
		star := " "
		if e.Starred {
			star = "*"
		}
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n",
			e.ID, star, e.Name, e.Type(), utils.FormatSize(e.Size),
			utils.FormatRelativeTime(e.ModifiedTime, now))
	}
	return w.Flush()
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List files and folders",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		d := drivedash.QueryDescriptor{
			SortBy:   drivedash.SortKey(flagSort),
			FilterBy: drivedash.FilterKey(flagFilter),
			Search:   flagSearch,
		}
		res := a.store.Files(cmd.Context(), d)
		if err := printListing(res); err != nil {
			return err
		}
		if res.Ready && res.Err != nil && len(res.Data) == 0 {
			return res.Err
		}
		return nil
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently modified files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		return printListing(a.store.Recent(cmd.Context(), flagLimit))
	},
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List starred files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		return printListing(a.store.Favorites(cmd.Context()))
	},
}

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show storage usage",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		res := a.store.Quota(cmd.Context())
		if !res.Ready {
			fmt.Println("session not ready")
			return nil
		}
		fmt.Printf("%s of %s used\n", utils.FormatSize(res.Data.Usage), utils.FormatSize(res.Data.Limit))
		return nil
	},
}

func starCmd(use string, starred bool) *cobra.Command {
	short := "Add a file to favorites"
	if !starred {
		short = "Remove a file from favorites"
	}
	return &cobra.Command{
		Use:   use + " <file-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			a.commander.ToggleStar(cmd.Context(), args[0], starred)
			return nil
		},
	}
}

var rmCmd = &cobra.Command{
	Use:   "rm <file-id>",
	Short: "Move a file to trash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		a.commander.Delete(cmd.Context(), args[0])
		return nil
	},
}

var shareCmd = &cobra.Command{
	Use:   "share <file-id>",
	Short: "Create a shareable link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		link, n := a.commander.CreateShareLink(cmd.Context(), args[0])
		if n.Ok {
			fmt.Println(link)
		}
		return nil
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a local file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck
		info, err := f.Stat()
		if err != nil {
			return err
		}

		src := upload.Source{
			Name:     filepath.Base(args[0]),
			Size:     info.Size(),
			ParentID: flagParent,
			Reader:   f,
		}
		last := -1
		a.commander.Upload(cmd.Context(), src, func(pct float64) {
			step := int(pct / 10)
			if step > last {
				last = step
				fmt.Printf("\r%3.0f%%", pct)
			}
		})
		fmt.Println()
		return nil
	},
}

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		folder, n := a.commander.CreateFolder(cmd.Context(), args[0], flagParent)
		if n.Ok {
			fmt.Println(folder.ID)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard JSON API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		addr := flagAddr
		if addr == "" {
			addr = a.cfg.ListenAddr
		}
		srv := httpd.NewServer(a.store, a.commander)
		fmt.Printf("listening on %s\n", addr)
		return http.ListenAndServe(addr, srv.Handler(os.Stdout))
	},
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize access and cache the token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}
		oauthCfg, err := session.LoadOAuthConfig(cfg.CredentialsPath)
		if err != nil {
			return err
		}

		url := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
		fmt.Printf("Open the following link in your browser, then paste the code:\n%s\n\ncode: ", url)
		var code string
		if _, err := fmt.Scan(&code); err != nil {
			return fmt.Errorf("reading authorization code: %w", err)
		}

		tok, err := oauthCfg.Exchange(cmd.Context(), code)
		if err != nil {
			return fmt.Errorf("exchanging authorization code: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(cfg.TokenPath), 0700); err != nil {
			return err
		}
		if err := session.SaveToken(cfg.TokenPath, tok); err != nil {
			return err
		}
		color.Green("token saved to %s", cfg.TokenPath)
		return nil
	},
}

func init() {
	lsCmd.Flags().StringVar(&flagSort, "sort", "", "sort key: name, modifiedTime, size, starred")
	lsCmd.Flags().StringVar(&flagFilter, "filter", "", "filter key: all, documents, images, folders")
	lsCmd.Flags().StringVar(&flagSearch, "search", "", "free-text name search")
	recentCmd.Flags().Int64Var(&flagLimit, "limit", 0, "listing size (default 5)")
	uploadCmd.Flags().StringVar(&flagParent, "parent", "", "target folder id (default root)")
	mkdirCmd.Flags().StringVar(&flagParent, "parent", "", "parent folder id (default root)")
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (default from config)")

	rootCmd.AddCommand(
		authCmd,
		lsCmd,
		recentCmd,
		favoritesCmd,
		quotaCmd,
		starCmd("star", true),
		starCmd("unstar", false),
		rmCmd,
		shareCmd,
		uploadCmd,
		mkdirCmd,
		serveCmd,
	)
}
