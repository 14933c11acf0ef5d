package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hibiscus/pkg/adminclient"
)

type rootOptions struct {
	server      string
	sessionPath string
	timeout     time.Duration
	verbose     bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "adminctl",
		Short:        "Manage the Hibiscus Holiday admin session, tours and inquiries",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.server, "server", envOr("HIBISCUS_SERVER", "http://localhost:5000"), "API base URL")
	root.PersistentFlags().StringVar(&opts.sessionPath, "session", "", "session file (default is the user config dir)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log client diagnostics")

	root.AddCommand(
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newVerifyCommand(opts),
		newWatchCommand(opts),
		newResetCommand(opts),
		newToursCommand(opts),
		newInquiriesCommand(opts),
	)
	return root
}

func (o *rootOptions) client() (*adminclient.Client, error) {
	path := o.sessionPath
	if path == "" {
		p, err := adminclient.DefaultSessionPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	logger := zap.NewNop()
	if o.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		logger = l
	}

	c := adminclient.New(o.server, adminclient.NewFileSessionStore(path), adminclient.WithLogger(logger))
	c.HTTP.Timeout = o.timeout
	return c, nil
}

func newLoginCommand(opts *rootOptions) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			session, err := c.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if session.Offline {
				cmd.Println("Server unreachable, logged in offline with the default credentials.")
				return nil
			}
			cmd.Printf("Logged in as %s (password version %d)\n", session.Username, session.PasswordVersion)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", adminclient.DefaultUsername, "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			if err := c.Logout(); err != nil {
				return err
			}
			cmd.Println("Logged out.")
			return nil
		},
	}
}

func newVerifyCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the stored session against the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			outcome, err := c.Verify(cmd.Context())
			switch outcome {
			case adminclient.VerifyValid:
				cmd.Println("Session is valid.")
				return nil
			case adminclient.VerifyInvalidated:
				return adminclient.ErrSessionInvalidated
			default:
				if err == nil {
					err = fmt.Errorf("session state unknown")
				}
				return err
			}
		},
	}
}

func newWatchCommand(opts *rootOptions) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep checking the session until it is invalidated or interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = c.Watch(ctx, interval, func() {
				cmd.Println("Password was changed elsewhere. Please log in again.")
			})
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", adminclient.DefaultVerifyInterval, "time between checks")
	return cmd
}

func newResetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore default admin credentials and end every session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			version, err := c.Reset(cmd.Context())
			if err != nil {
				return err
			}
			_ = c.Logout()
			cmd.Printf("Credentials reset (password version %d). Log in again.\n", version)
			return nil
		},
	}
}

func newToursCommand(opts *rootOptions) *cobra.Command {
	tours := &cobra.Command{Use: "tours", Short: "Inspect and curate tours"}

	tours.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tours",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			list, err := c.ListTours(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tDAYS\tPRICE\tFEATURED\tPOPUP")
			for _, t := range list {
				fmt.Fprintf(w, "%s\t%s\t%d\t%.0f\t%t\t%t\n", t.ID, t.Title, t.Days, t.Price, t.Featured, t.ShowInPopup)
			}
			return w.Flush()
		},
	})

	tours.AddCommand(&cobra.Command{
		Use:   "popup <id>",
		Short: "Show one tour in the site popup and hide the rest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			if err := c.SetPopupTour(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Printf("Popup tour set to %s\n", args[0])
			return nil
		},
	})
	return tours
}

func newInquiriesCommand(opts *rootOptions) *cobra.Command {
	inquiries := &cobra.Command{Use: "inquiries", Short: "Work the inquiry inbox"}

	inquiries.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List inquiries, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			list, err := c.ListInquiries(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tSTATUS\tNAME\tEMAIL\tTRIP")
			for _, i := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", i.ID, i.Date, i.Status, i.Name, i.Email, i.TripLocation)
			}
			return w.Flush()
		},
	})

	inquiries.AddCommand(&cobra.Command{
		Use:   "read <id>",
		Short: "Mark an inquiry as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			return c.MarkInquiryRead(cmd.Context(), args[0])
		},
	})

	inquiries.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an inquiry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			return c.DeleteInquiry(cmd.Context(), args[0])
		},
	})
	return inquiries
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
