package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/mudithakuruppu/employeemanagement-ui/internal/auth"
	"github.com/spf13/cobra"
)

var credentialOpts struct {
	name     string
	email    string
	password string
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session locally",
	RunE: withDependencies(func(cmd *cobra.Command, _ []string, deps *Dependencies) error {
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}
		resp, err := deps.Auth.Login(cmd.Context(), auth.LoginDTO{
			Email:    credentialOpts.email,
			Password: password,
		})
		if err != nil {
			return err
		}
		if err := deps.Session.Set(cmd.Context(), resp); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", resp.User.Name, resp.User.Email)
		return nil
	}),
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	RunE: withDependencies(func(cmd *cobra.Command, _ []string, deps *Dependencies) error {
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}
		resp, err := deps.Auth.Signup(cmd.Context(), auth.SignupDTO{
			Name:     credentialOpts.name,
			Email:    credentialOpts.email,
			Password: password,
		})
		if err != nil {
			return err
		}
		if err := deps.Session.Set(cmd.Context(), resp); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s <%s>\n", resp.User.Name, resp.User.Email)
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: withDependencies(func(cmd *cobra.Command, _ []string, deps *Dependencies) error {
		if err := deps.Session.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: withDependencies(func(cmd *cobra.Command, _ []string, deps *Dependencies) error {
		out := cmd.OutOrStdout()
		user, ok := deps.Session.User()
		if !ok {
			fmt.Fprintln(out, "Not signed in")
			return nil
		}
		fmt.Fprintf(out, "%s <%s> (id %d)\n", user.Name, user.Email, user.ID)
		if exp, ok := deps.Session.ExpiresAt(); ok {
			fmt.Fprintf(out, "Token expires %s\n", exp.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	}),
}

// readPassword takes --password, or one line from stdin when the flag is absent.
func readPassword(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("password") {
		return credentialOpts.password, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringVar(&credentialOpts.email, "email", "", "account email")
		c.Flags().StringVar(&credentialOpts.password, "password", "", "account password (read from stdin when omitted)")
	}
	signupCmd.Flags().StringVar(&credentialOpts.name, "name", "", "display name")
}
