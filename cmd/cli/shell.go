package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/browse"
	"github.com/ApexArbiter/SmitFinalHachkthon/internal/catalog"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/client"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

const loadingTick = 200 * time.Millisecond

type shell struct {
	out     io.Writer
	api     *client.Client
	screen  *browse.Screen
	session *client.Session
	log     *zap.Logger
}

// handle runs one command line and reports whether the shell should exit.
func (sh *shell) handle(ctx context.Context, input string) bool {
	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch cmd {
	case "exit", "quit", "q":
		return true

	case "help", "?":
		sh.printHelp()

	case "health", "h":
		sh.health(ctx)

	case "register":
		if len(args) < 3 {
			sh.usage("register <email> <password> <name>")
			return false
		}
		sh.register(ctx, args[0], args[1], strings.Join(args[2:], " "))

	case "login":
		if len(args) != 2 {
			sh.usage("login <email> <password>")
			return false
		}
		sh.login(ctx, args[0], args[1])

	case "logout":
		sh.logout(ctx)

	case "refresh", "r":
		if sh.requireSession() {
			sh.refresh(ctx)
		}

	case "list", "ls":
		if sh.requireSession() {
			sh.printEvents()
		}

	case "cat", "c":
		if rest == "" {
			sh.printCategories()
			return false
		}
		name, ok := resolveCategory(rest)
		if !ok {
			sh.fail("unknown category %q", rest)
			sh.printCategories()
			return false
		}
		if active := sh.screen.SelectCategory(name); active == "" {
			sh.ok("showing all categories")
		} else {
			sh.ok("showing %s", active)
		}
		sh.printEvents()

	case "search", "/":
		sh.screen.SetQuery(rest)
		if rest == "" {
			sh.ok("search cleared")
		} else {
			sh.ok("search text kept; it does not narrow the list yet")
		}
		sh.printEvents()

	case "show", "s":
		if len(args) != 1 {
			sh.usage("show <number|id>")
			return false
		}
		if sh.requireSession() {
			sh.show(ctx, args[0])
		}

	case "new":
		if sh.requireSession() {
			sh.create(ctx, rest)
		}

	default:
		sh.fail("unknown command %q, type 'help'", cmd)
	}
	return false
}

func (sh *shell) register(ctx context.Context, email, password, name string) {
	u, err := sh.api.Register(ctx, models.RegisterRequest{Email: email, Name: name, Password: password})
	if err != nil {
		sh.fail("%v", err)
		return
	}
	sh.ok("registered %s, now 'login %s <password>'", u.Email, u.Email)
}

func (sh *shell) login(ctx context.Context, email, password string) {
	if sh.session != nil {
		sh.fail("already signed in as %s, 'logout' first", sh.session.User.Email)
		return
	}

	sess, err := sh.api.Login(ctx, email, password)
	if errors.Is(err, client.ErrUnauthorized) {
		sh.fail("wrong email or password")
		return
	}
	if err != nil {
		sh.fail("%v", err)
		return
	}

	sh.session = sess
	sh.screen.Attach(sess)
	sh.ok("signed in as %s", sess.User.Name)
	sh.refresh(ctx)
}

// logout never blocks the user: a failed server call is logged by the
// screen and the user stays signed in.
func (sh *shell) logout(ctx context.Context) {
	if sh.session == nil {
		sh.fail("not signed in")
		return
	}
	if !sh.screen.Logout(ctx) {
		sh.fail("could not sign out, try again")
		return
	}
	sh.session = nil
	sh.ok("signed out")
}

// refresh fetches on a goroutine so the loading indicator can render
// while the request is pending.
func (sh *shell) refresh(ctx context.Context) {
	done := make(chan error, 1)
	go func() { done <- sh.screen.Fetch(ctx) }()

	ticker := time.NewTicker(loadingTick)
	defer ticker.Stop()

	fmt.Fprintf(sh.out, "  %sloading%s", Dim, Reset)
	for {
		select {
		case err := <-done:
			fmt.Fprintln(sh.out)
			switch {
			case errors.Is(err, client.ErrUnauthorized):
				sh.fail("session expired, 'logout' and sign in again")
			case err != nil:
				sh.fail("could not load events")
			}
			sh.printEvents()
			return
		case <-ticker.C:
			if sh.screen.Loading() {
				fmt.Fprint(sh.out, ".")
			}
		}
	}
}

func (sh *shell) show(ctx context.Context, ref string) {
	id := ref
	if n, err := strconv.Atoi(ref); err == nil {
		visible := sh.screen.Visible()
		if n < 1 || n > len(visible) {
			sh.fail("no event #%d", n)
			return
		}
		id = visible[n-1].ID
	}

	ev, err := sh.session.GetEvent(ctx, id)
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		sh.fail("event not found")
		return
	}
	if err != nil {
		sh.fail("%v", err)
		return
	}
	sh.printEvent(ev)
}

// create parses "title | category | price | date | location".
func (sh *shell) create(ctx context.Context, line string) {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		sh.usage("new <title> | <category> [| price | date | location]")
		return
	}

	req := models.CreateEventRequest{Title: parts[0], Category: parts[1]}
	if name, ok := resolveCategory(parts[1]); ok {
		req.Category = name
	}
	if len(parts) > 2 && parts[2] != "" {
		price, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			sh.fail("price must be a number")
			return
		}
		req.Price = price
	}
	if len(parts) > 3 {
		req.Date = parts[3]
	}
	if len(parts) > 4 {
		req.Location = parts[4]
	}

	ev, err := sh.session.CreateEvent(ctx, req)
	if err != nil {
		sh.fail("%v", err)
		return
	}
	sh.ok("created %s", ev.Title)
	sh.refresh(ctx)
}

func (sh *shell) health(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sh.api.BaseURL+"/health", nil)
	if err != nil {
		sh.fail("%v", err)
		return
	}
	resp, err := sh.api.HTTP.Do(req)
	if err != nil {
		fmt.Fprintf(sh.out, "  %s[-]%s %-12s %soffline%s\n", Red, Reset, "api", Red, Reset)
		return
	}
	resp.Body.Close()
	fmt.Fprintf(sh.out, "  %s[+]%s %-12s %sok%s\n", Green, Reset, "api", Green, Reset)
}

func (sh *shell) requireSession() bool {
	if sh.session == nil {
		sh.fail("not signed in, 'login <email> <password>' first")
		return false
	}
	return true
}

// resolveCategory accepts a selector number or a case-insensitive name.
func resolveCategory(ref string) (string, bool) {
	for _, c := range catalog.Categories {
		if ref == c.ID || strings.EqualFold(ref, c.Name) {
			return c.Name, true
		}
	}
	return "", false
}
