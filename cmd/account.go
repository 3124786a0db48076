package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/alfanumrik/internal/auth"
	"github.com/abhisek/alfanumrik/internal/ui/theme"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		grade, _ := cmd.Flags().GetString("grade")
		password, err := passwordFlag(cmd)
		if err != nil {
			return err
		}
		if _, ok := a.catalog.Grade(grade); !ok {
			return fmt.Errorf("unknown grade %q; see `alfanumrik curriculum`", grade)
		}

		p, err := a.auth.Signup(cmd.Context(), auth.SignupInput{Name: name, Email: email, Password: password, Grade: grade})
		if errors.Is(err, auth.ErrAccountExists) {
			return errors.New("an account with this email already exists; try `alfanumrik login`")
		}
		if err != nil {
			return err
		}
		fmt.Println(theme.Good.Render("Welcome, " + p.Name + "!"))
		printProfile(p)
		return nil
	}),
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, err := passwordFlag(cmd)
		if err != nil {
			return err
		}
		p, err := a.auth.Login(cmd.Context(), email, password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return errors.New("invalid email or password")
		}
		if err != nil {
			return err
		}
		fmt.Println(theme.Good.Render("Signed in as " + p.Name))
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if err := a.auth.Logout(); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in student",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if a.auth.State() == auth.StateAnonymous {
			fmt.Println(theme.Hint.Render("Not signed in."))
			return nil
		}
		printProfile(a.auth.Current())
		return nil
	}),
}

// passwordFlag reads --password, or one line from stdin when the flag is "-"
// or missing.
func passwordFlag(cmd *cobra.Command) (string, error) {
	pw, _ := cmd.Flags().GetString("password")
	if pw != "" && pw != "-" {
		return pw, nil
	}
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printProfile(p *auth.Profile) {
	rows := []string{
		theme.Label.Render("Name") + p.Name,
		theme.Label.Render("Email") + p.Email,
		theme.Label.Render("Grade") + p.Grade,
		theme.Label.Render("Records") + fmt.Sprint(len(p.Performance)),
	}
	fmt.Println(theme.Card.Render(strings.Join(rows, "\n")))
}

func init() {
	signupCmd.Flags().String("name", "", "Student name")
	signupCmd.Flags().String("email", "", "Email address")
	signupCmd.Flags().String("grade", "", `Grade level, e.g. "Grade 7"`)
	signupCmd.Flags().String("password", "", `Password ("-" or empty reads it from stdin)`)
	for _, f := range []string{"name", "email", "grade"} {
		_ = signupCmd.MarkFlagRequired(f)
	}

	loginCmd.Flags().String("email", "", "Email address")
	loginCmd.Flags().String("password", "", `Password ("-" or empty reads it from stdin)`)
	_ = loginCmd.MarkFlagRequired("email")
}
