package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/minepkg/xsboot/internals/commands"
	"github.com/minepkg/xsboot/internals/credentials"
	"github.com/minepkg/xsboot/internals/globals"
	"github.com/minepkg/xsboot/internals/utils"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
)

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage credentials of private repositories",
}

func init() {
	setRunner := &credentialsSetRunner{}
	set := commands.New(&cobra.Command{
		Use:   "set <host>",
		Short: "Stores credentials for a repository host",
		Long: `Stores credentials for a repository host in the system keyring
(or a file in the config directory if no keyring is available).
Requests to this host are authenticated with them.`,
		Example: strings.Join([]string{
			"  xsboot credentials set repo.example.com --user jane",
			"  xsboot credentials set repo.example.com --token",
		}, "\n"),
		Args: cobra.ExactArgs(1),
	}, setRunner)
	set.Flags().StringVarP(&setRunner.user, "user", "u", "", "user name for basic auth")
	set.Flags().BoolVar(&setRunner.token, "token", false, "use a bearer token instead of user and password")

	remove := commands.New(&cobra.Command{
		Use:   "remove <host>",
		Short: "Removes the credentials of a repository host",
		Args:  cobra.ExactArgs(1),
	}, &credentialsRemoveRunner{})

	list := commands.New(&cobra.Command{
		Use:   "list",
		Short: "Lists hosts with stored credentials",
		Args:  cobra.NoArgs,
	}, &credentialsListRunner{})

	credentialsCmd.AddCommand(set.Command, remove.Command, list.Command)
	rootCmd.AddCommand(credentialsCmd)
}

// hostOf accepts a host or an url
func hostOf(arg string) (string, error) {
	if strings.Contains(arg, "://") {
		u, err := url.Parse(arg)
		if err != nil {
			return "", err
		}
		arg = u.Host
	}
	if arg == "" || strings.ContainsAny(arg, "/ ") {
		return "", fmt.Errorf("invalid host %q", arg)
	}
	return credentials.NormalizeHost(arg), nil
}

type credentialsSetRunner struct {
	user  string
	token bool
}

func (c *credentialsSetRunner) RunE(cmd *cobra.Command, args []string) error {
	host, err := hostOf(args[0])
	if err != nil {
		return err
	}
	if !utils.IsInteractive() {
		return &commands.CliError{
			Text:        "credentials can only be set interactively",
			Suggestions: []string{"Run this command in a terminal"},
		}
	}

	store, err := credentials.New(globals.GlobalDir)
	if err != nil {
		return err
	}

	creds := &credentials.Credentials{Host: host, User: c.user}
	secretLabel := "Password"
	if c.token {
		secretLabel = "Token"
	} else if creds.User == "" {
		creds.User, err = utils.StringPrompt(&promptui.Prompt{Label: "User"})
		if err != nil {
			return err
		}
	}

	secret, err := utils.StringPrompt(&promptui.Prompt{
		Label: secretLabel,
		Mask:  '*',
		Validate: func(s string) error {
			if s == "" {
				return errors.New("may not be empty")
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	if c.token {
		creds.Token = &oauth2.Token{AccessToken: secret, TokenType: "Bearer"}
	} else {
		creds.Password = secret
	}

	if err := store.Set(creds); err != nil {
		return err
	}
	if store.NoKeyRingMode {
		logger.Warn("No keyring available. Credentials are stored in " + globals.GlobalDir)
	}
	logger.Info(" ✓ Stored credentials for " + host)
	return nil
}

type credentialsRemoveRunner struct{}

func (c *credentialsRemoveRunner) RunE(cmd *cobra.Command, args []string) error {
	host, err := hostOf(args[0])
	if err != nil {
		return err
	}
	store, err := credentials.New(globals.GlobalDir)
	if err != nil {
		return err
	}
	if err := store.Remove(host); err != nil {
		if errors.Is(err, credentials.ErrNoCredentials) {
			logger.Warn("No credentials stored for " + host)
			return nil
		}
		return err
	}
	logger.Info(" ✓ Removed credentials for " + host)
	return nil
}

type credentialsListRunner struct{}

func (c *credentialsListRunner) RunE(cmd *cobra.Command, args []string) error {
	store, err := credentials.New(globals.GlobalDir)
	if err != nil {
		return err
	}
	hosts := store.Hosts()
	if len(hosts) == 0 {
		logger.Info("No credentials stored")
		return nil
	}
	for _, host := range hosts {
		creds, _ := store.Get(host)
		kind := "user " + creds.User
		if creds.Token != nil {
			kind = "token"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", host, kind)
	}
	return nil
}
