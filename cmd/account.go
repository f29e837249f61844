package cmd

import (
	"errors"
	"fmt"
	"time"

	"Inshpho/client"

	"github.com/spf13/cobra"
)

var (
	accountFirstName string
	accountLastName  string
	accountEmail     string
	accountPassword  string
)

func apiClient() *client.Client {
	return client.New(cfg.APIBaseURL)
}

func sessionStore() *client.SessionStore {
	return client.NewSessionStore(cfg.SessionFile)
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and save the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := apiClient().Register(cmd.Context(), client.RegisterRequest{
			FirstName: accountFirstName,
			LastName:  accountLastName,
			Email:     accountEmail,
			Password:  accountPassword,
		})
		if err != nil {
			return err
		}
		if err := sessionStore().Save(&client.Session{
			Token:    res.Token,
			Username: res.Username,
			Email:    accountEmail,
			Server:   cfg.APIBaseURL,
			SavedAt:  time.Now().UTC(),
		}); err != nil {
			return err
		}
		fmt.Printf("Registered as %s\n", res.Username)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and save the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := apiClient().Login(cmd.Context(), accountEmail, accountPassword)
		if err != nil {
			return err
		}
		if err := sessionStore().Save(&client.Session{
			Token:    res.Token,
			Username: res.Username,
			UserID:   res.UserID,
			Email:    res.Email,
			Server:   cfg.APIBaseURL,
			SavedAt:  time.Now().UTC(),
		}); err != nil {
			return err
		}
		fmt.Printf("Logged in as %s\n", res.Username)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the profile of the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := sessionStore().Load()
		if err != nil {
			if errors.Is(err, client.ErrNotLoggedIn) {
				return fmt.Errorf("not logged in; run `inshpho login` first")
			}
			return err
		}
		server := sess.Server
		if server == "" {
			server = cfg.APIBaseURL
		}

		user, err := client.New(server).Me(cmd.Context(), sess.Token)
		if err != nil {
			return err
		}
		fmt.Printf("id:       %s\n", user.ID)
		fmt.Printf("username: %s\n", user.Username)
		fmt.Printf("email:    %s\n", user.Email)
		if user.Feedback != "" {
			fmt.Printf("feedback: %s\n", user.Feedback)
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sessionStore().Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&accountFirstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&accountLastName, "last-name", "", "last name")
	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringVarP(&accountEmail, "email", "e", "", "account email")
		c.Flags().StringVarP(&accountPassword, "password", "p", "", "account password")
		_ = c.MarkFlagRequired("email")
		_ = c.MarkFlagRequired("password")
	}
	_ = registerCmd.MarkFlagRequired("first-name")
	_ = registerCmd.MarkFlagRequired("last-name")

	rootCmd.AddCommand(registerCmd, loginCmd, whoamiCmd, logoutCmd)
}
