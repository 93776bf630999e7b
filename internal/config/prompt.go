package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
████████╗ █████╗ ██╗     ██╗  ██╗   ██╗
╚══██╔══╝██╔══██╗██║     ██║  ╚██╗ ██╔╝
   ██║   ███████║██║     ██║   ╚████╔╝
   ██║   ██╔══██║██║     ██║    ╚██╔╝
   ██║   ██║  ██║███████╗███████╗██║
   ╚═╝   ╚═╝  ╚═╝╚══════╝╚══════╝╚═╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	DefaultRate string
	Driver      string
}

// WithPromptConfig returns an Option that asks for the most important
// settings when no config file exists yet.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		return applyPromptOptions(c, opts)
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		DefaultRate: "0",
		Driver:      DriverBolt,
	}

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure tally for the first time.
Enter your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'tally edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default hourly rate").
				Description("Used when a session is started without --rate").
				Value(&opts.DefaultRate).
				Validate(func(s string) error {
					_, err := parseRate(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should sessions be stored?").
				Options(
					huh.NewOption("Embedded key-value file (bbolt)", DriverBolt).Selected(true),
					huh.NewOption("SQLite database", DriverSQLite),
				).
				Value(&opts.Driver),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

func parseRate(s string) (float64, error) {
	rate, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}

	if rate < 0 {
		return 0, errNegativeRate.Fmt(rate)
	}

	return rate, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) error {
	rate, err := parseRate(opts.DefaultRate)
	if err != nil {
		return err
	}

	c.Session.DefaultRate = rate
	c.Store.Driver = opts.Driver

	return nil
}
