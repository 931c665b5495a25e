package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/octabyte/skillswap-client/models"
	"github.com/octabyte/skillswap-client/navigator"
)

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commandOrder = []string{"login", "register", "logout", "whoami", "google", "users", "leaderboard"}

var commands = map[string]command{
	"login":       {"log in with email and password", loginCmd},
	"register":    {"create an account", registerCmd},
	"logout":      {"end the current session", logoutCmd},
	"whoami":      {"show the logged in user", whoamiCmd},
	"google":      {"log in with Google", googleCmd},
	"users":       {"list public profiles", usersCmd},
	"leaderboard": {"show the teaching leaderboard", leaderboardCmd},
}

// terminalNavigator prints navigations: absolute URLs are for the browser,
// paths are pages of the web app.
func terminalNavigator(out io.Writer) navigator.Navigator {
	return navigator.Func(func(_ context.Context, target string) {
		if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
			fmt.Fprintf(out, "Open this address in your browser:\n  %s\n", target)
			return
		}
		fmt.Fprintf(out, "-> %s\n", target)
	})
}

func newFlagSet(a *app, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", label)
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func loginCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password, prompted when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		var err error
		if *password, err = a.prompt("Password"); err != nil {
			return err
		}
	}

	user, err := a.client.Session.Login(ctx, models.Credentials{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", displayName(user))
	return nil
}

func registerCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "register")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password, prompted when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		var err error
		if *password, err = a.prompt("Password"); err != nil {
			return err
		}
	}

	user, err := a.client.Session.Register(ctx, models.Registration{Name: *name, Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome to SkillSwap, %s\n", displayName(user))
	return nil
}

func logoutCmd(ctx context.Context, a *app, _ []string) error {
	a.client.Session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func whoamiCmd(_ context.Context, a *app, _ []string) error {
	s, ok := a.client.Session.Session()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name\t%s\n", s.User.Name())
	fmt.Fprintf(w, "Email\t%s\n", s.User.Email())
	fmt.Fprintf(w, "ID\t%s\n", s.User.ID())
	if badge := s.User.BadgeLevel(); badge != "" {
		fmt.Fprintf(w, "Badge\t%s\n", badge)
	}
	if expiry, ok := s.AccessTokenExpiry(); ok {
		fmt.Fprintf(w, "Token expires\t%s\n", expiry.Local().Format(time.RFC1123))
	}
	return w.Flush()
}

func googleCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "google")
	redirect := fs.String("redirect", "", "page to open after logging in")
	timeout := fs.Duration("timeout", 5*time.Minute, "how long to wait for the callback")
	if err := fs.Parse(args); err != nil {
		return err
	}

	server := a.client.CallbackServer()
	if err := server.Start(); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	fmt.Fprintf(a.out, "Waiting for the Google callback on %s\n", server.CallbackURL())

	if err := a.client.Session.BeginGoogleLogin(ctx, *redirect); err != nil {
		return err
	}

	waitCtx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()
	out, err := server.Wait(waitCtx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, out.Message)
	navigator.After(ctx, terminalNavigator(a.out), out.Delay, out.Target)
	return out.Err
}

func usersCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "users")
	search := fs.String("search", "", "filter by name, skill or bio")
	all := fs.Bool("all", false, "include private profiles")
	if err := fs.Parse(args); err != nil {
		return err
	}

	query := models.UserQuery{Search: *search}
	if *all {
		public := false
		query.PublicOnly = &public
	}

	users, err := a.client.Users.List(ctx, query)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTEACHES\tLEARNS")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID(), u.Name(),
			strings.Join(u.SkillsTeach(), ", "), strings.Join(u.SkillsLearn(), ", "))
	}
	return w.Flush()
}

func leaderboardCmd(ctx context.Context, a *app, _ []string) error {
	entries, err := a.client.Badges.Leaderboard(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tNAME\tTAUGHT\tBADGE")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", e.Rank, e.Name, e.TotalSessionsTaught, e.BadgeLevel)
	}
	return w.Flush()
}

func displayName(u models.User) string {
	if name := u.Name(); name != "" {
		return name
	}
	if email := u.Email(); email != "" {
		return email
	}
	return u.ID()
}
