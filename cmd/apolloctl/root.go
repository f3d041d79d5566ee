package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dalemusser/apollo/internal/app/apiclient"
	"github.com/dalemusser/apollo/internal/app/system/listctl"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultServer = "http://localhost:8080"

// errSignedOut is returned when a command needs a session and there is none.
var errSignedOut = errors.New("not signed in; run `apolloctl login` first")

// cli carries the state shared by every command.
type cli struct {
	server    string
	tokenFile string
	verbose   bool

	out    io.Writer
	errOut io.Writer
	log    *zap.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut, log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "apolloctl",
		Short:         "Apollo back-office from the terminal",
		Long:          `apolloctl manages users, teams (associações) and requests (solicitações) on an Apollo server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.log.Sync()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	server := os.Getenv("APOLLO_SERVER")
	if server == "" {
		server = defaultServer
	}
	root.PersistentFlags().StringVar(&c.server, "server", server, "Apollo API base URL (env APOLLO_SERVER)")
	root.PersistentFlags().StringVar(&c.tokenFile, "token-file", "", "Where the session token is kept (default ~/.apolloctl/token)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log HTTP traffic to stderr")

	root.AddCommand(
		c.loginCmd(),
		c.signupCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.plansCmd(),
		c.invitationCmd(),
		c.passwordResetCmd(),
		entityCmd(c, usersKind),
		entityCmd(c, teamsKind),
		entityCmd(c, requestsKind),
	)
	return root
}

func (c *cli) setup() error {
	if c.tokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("locating home directory: %w", err)
		}
		c.tokenFile = filepath.Join(home, ".apolloctl", "token")
	}
	if c.verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		logger, err := cfg.Build()
		if err != nil {
			return err
		}
		c.log = logger
	}
	return nil
}

// anonymous builds a client that sends no token, for sign-in and public
// endpoints.
func (c *cli) anonymous() *apiclient.Client {
	return apiclient.New(c.server, nil, c.log)
}

// client builds an API client whose 401/403 answers end the stored session.
func (c *cli) client() *apiclient.Client {
	api := apiclient.New(c.server, fileToken(c.tokenFile), c.log)
	api.OnUnauthorized = func(status int) {
		if err := clearToken(c.tokenFile); err != nil {
			c.log.Warn("could not remove token file", zap.Error(err))
		}
		fmt.Fprintln(c.errOut, "Sessão encerrada. Faça login novamente.")
	}
	return api
}

// session returns a client and the signed-in user's info.
func (c *cli) session(ctx context.Context) (*apiclient.Client, apiclient.UserInfo, error) {
	if fileToken(c.tokenFile).Token() == "" {
		return nil, apiclient.UserInfo{}, errSignedOut
	}
	api := c.client()
	info, err := api.UserInfo(ctx)
	if err != nil {
		return nil, apiclient.UserInfo{}, err
	}
	return api, info, nil
}

// notifier prints controller notifications the way toasts would show them.
func (c *cli) notifier() listctl.Notifier {
	return listctl.NotifierFunc(func(n listctl.Notification) {
		switch n.Level {
		case listctl.LevelSuccess:
			fmt.Fprintln(c.out, "✔", n.Message)
		default:
			fmt.Fprintln(c.errOut, "✖", n.Message)
		}
	})
}
