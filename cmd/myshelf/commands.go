package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/myshelf/internal/application/usecase"
	"github.com/tesso57/myshelf/internal/infrastructure/feed"
	"github.com/tesso57/myshelf/internal/infrastructure/session"
	"github.com/tesso57/myshelf/internal/infrastructure/shelfstore"
	"github.com/tesso57/myshelf/internal/presentation/tui"
	"github.com/tesso57/myshelf/internal/presentation/tui/state"
)

// HomeCmd opens the TUI on the home feed.
type HomeCmd struct{}

func (c *HomeCmd) Run(app *App) error {
	return runTUI(app, state.HomeView)
}

// EventCmd opens the TUI on the event page.
type EventCmd struct{}

func (c *EventCmd) Run(app *App) error {
	return runTUI(app, state.EventView)
}

func newServices(app *App) tui.Services {
	books := shelfstore.Books{Store: app.Store}
	catalogSvc := usecase.NewCatalogService(books)
	profiles := usecase.NewProfileService(shelfstore.Members{Store: app.Store}, app.Logger)
	identity := session.FromSettings(app.Config.Settings.Session)
	return tui.Services{
		Composer: usecase.NewFeedComposer(catalogSvc, profiles, identity, app.Logger),
		Details:  usecase.NewDetailService(books),
		Events:   usecase.NewEventService(shelfstore.Events{Store: app.Store}, app.Logger),
		Logger:   app.Logger,
	}
}

func runTUI(app *App, start state.Session) error {
	m := tui.NewModel(app.Config.Settings, newServices(app), tui.WithStartSession(start))
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(app.Ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// SeedCmd loads a YAML seed file into the store.
type SeedCmd struct {
	File string `arg:"" type:"existingfile" help:"Seed file."`
}

func (c *SeedCmd) Run(app *App) error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	seed, err := shelfstore.ParseSeed(f)
	if err != nil {
		return err
	}
	report, err := shelfstore.Seed(app.Ctx, app.Store, seed)
	if err != nil {
		return err
	}
	app.Logger.Info(app.Ctx, "seed finished", "file", c.File, "books", report.Books, "members", report.Members, "events", report.Events)
	_, err = fmt.Fprintf(app.Out, "seeded %d books, %d members, %d events\n", report.Books, report.Members, report.Events)
	return err
}

// ImportFeedCmd copies feed entries into the books collection.
type ImportFeedCmd struct {
	URLs    []string      `arg:"" name:"url" help:"Feed URLs."`
	Timeout time.Duration `help:"Timeout per feed." default:"30s"`
}

func (c *ImportFeedCmd) Run(app *App) error {
	svc := usecase.NewCatalogImportService(feed.Reader{Timeout: c.Timeout}, shelfstore.Books{Store: app.Store}, app.Logger)
	for _, url := range c.URLs {
		report, err := svc.Import(app.Ctx, url)
		if err != nil {
			return fmt.Errorf("import %s: %w", url, err)
		}
		if _, err := fmt.Fprintf(app.Out, "%s: read %d, written %d, skipped %d\n", url, report.Read, report.Written, report.Skipped); err != nil {
			return err
		}
	}
	return nil
}

// MemberCmd groups member subcommands.
type MemberCmd struct {
	Set MemberSetCmd `cmd:"" help:"Create or update a member profile."`
}

// MemberSetCmd merges the given fields into a member document.
type MemberSetCmd struct {
	ID         string `arg:"" optional:"" help:"Member id. Defaults to the configured session member."`
	Name       string `help:"Full name."`
	Tier       string `help:"Membership tier." enum:"keep,premium,standard" default:"keep"`
	Genre      string `help:"Last read genre."`
	ClearGenre bool   `help:"Remove the last read genre."`
	Use        bool   `help:"Make this member the configured session member."`
}

func (c *MemberSetCmd) update() shelfstore.ProfileUpdate {
	var upd shelfstore.ProfileUpdate
	if name := strings.TrimSpace(c.Name); name != "" {
		upd.FullName = new(name)
	}
	switch c.Tier {
	case "premium":
		upd.IsPremium = new(true)
	case "standard":
		upd.IsPremium = new(false)
	}
	switch {
	case c.ClearGenre:
		upd.LastReadGenre = new("")
	case strings.TrimSpace(c.Genre) != "":
		upd.LastReadGenre = new(strings.TrimSpace(c.Genre))
	}
	return upd
}

func (c *MemberSetCmd) Run(app *App) error {
	id := strings.TrimSpace(c.ID)
	if id == "" {
		id = app.Config.Settings.Session.MemberID
	}
	profile, err := shelfstore.Members{Store: app.Store}.Update(app.Ctx, id, c.update())
	if err != nil {
		return err
	}
	if c.Use {
		if err := app.Config.SetMember(id, profile.FullName); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}
	_, err = fmt.Fprintf(app.Out, "member %s: %s\n", id, describeTier(profile.IsPremium))
	return err
}

func describeTier(premium bool) string {
	if premium {
		return "premium"
	}
	return "standard"
}

// TokenCmd prints a signed session token.
type TokenCmd struct {
	Member string        `help:"Member id. Defaults to the configured session member."`
	Name   string        `help:"Full name carried in the token."`
	TTL    time.Duration `name:"ttl" help:"Token lifetime; zero never expires." default:"720h"`
}

func (c *TokenCmd) Run(app *App) error {
	sess := app.Config.Settings.Session
	member := strings.TrimSpace(c.Member)
	if member == "" {
		member = sess.MemberID
	}
	name := c.Name
	if name == "" && member == sess.MemberID {
		name = sess.MemberName
	}
	token, err := session.IssueToken(sess.Secret, member, name, c.TTL)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(app.Out, token)
	return err
}
