// Package setup is the first-run configuration wizard.
package setup

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/paineldocafe/panel/internal/clients"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#A87A2E", Dark: "#C4A35A"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

type wizardYaml struct {
	ListenAddr      string        `yaml:"listen_addr"`
	QuotesURL       string        `yaml:"quotes_url,omitempty"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	HistoryDir      string        `yaml:"history_dir"`
	UserID          string        `yaml:"user_id,omitempty"`
	Weather         struct {
		Location  string  `yaml:"location"`
		Latitude  float64 `yaml:"latitude"`
		Longitude float64 `yaml:"longitude"`
		Timezone  string  `yaml:"timezone"`
	} `yaml:"weather"`
}

// RunTUI launches the terminal configuration wizard and writes
// config.gen.yaml on confirmation.
func RunTUI() error {
	var (
		listenAddr         = ":8085"
		quotesURL          string
		pollIntervalStr    = "1m"
		refreshIntervalStr = "5m"
		historyDir         = "./wal/pricehistory"
		userID             string
		cityQuery          string
		confirm            bool
	)

	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("PANEL CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Let's get your coffee panel running.\n"))

	fmt.Println(stepStyle.Render("STEP 1: SERVER"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("HTTP Listen Address").
				Description("Host:port the API binds to").
				Value(&listenAddr),
			huh.NewInput().
				Title("Quote Feed URL").
				Description("Leave empty for the default public feed").
				Value(&quotesURL),
			huh.NewInput().
				Title("Inventory Owner User ID").
				Description("Leave empty to read all inventory rows").
				Value(&userID),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("PANEL CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: TIMING"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Quote Poll Interval").
				Description("Duration string (e.g. 30s, 1m)").
				Value(&pollIntervalStr).
				Validate(validateDuration),
			huh.NewInput().
				Title("Analytics Refresh Interval").
				Description("Duration string (e.g. 5m, 15m)").
				Value(&refreshIntervalStr).
				Validate(validateDuration),
			huh.NewInput().
				Title("Price History Directory").
				Value(&historyDir),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("PANEL CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: WEATHER LOCATION"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("City Name").
				Description("Leave empty for Vitória, ES").
				Value(&cityQuery),
		),
	).Run()
	if err != nil {
		return err
	}

	location := clients.DefaultLocation
	if cityQuery != "" {
		location, err = pickCity(cityQuery)
		if err != nil {
			return err
		}
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("PANEL CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Listen: %s\nQuote feed: %s\nPoll: %s\nRefresh: %s\nWeather: %s\n",
		listenAddr, orDefault(quotesURL, "(default)"), pollIntervalStr, refreshIntervalStr, location.Name,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	pollInterval, _ := time.ParseDuration(pollIntervalStr)
	refreshInterval, _ := time.ParseDuration(refreshIntervalStr)

	cfg := wizardYaml{
		ListenAddr:      listenAddr,
		QuotesURL:       quotesURL,
		PollInterval:    pollInterval,
		RefreshInterval: refreshInterval,
		HistoryDir:      historyDir,
		UserID:          userID,
	}
	cfg.Weather.Location = location.Name
	cfg.Weather.Latitude = location.Latitude
	cfg.Weather.Longitude = location.Longitude
	cfg.Weather.Timezone = location.Timezone

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	filename := "config.gen.yaml"
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s", filename)))
	time.Sleep(1500 * time.Millisecond) // small pause to read success message
	return nil
}

// pickCity searches the geocoding API and lets the user choose a match.
func pickCity(query string) (clients.Location, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	results, err := clients.NewWeatherClient().SearchCities(ctx, query)
	if err != nil {
		return clients.Location{}, fmt.Errorf("city search failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("No matches, keeping the default location."))
		return clients.DefaultLocation, nil
	}

	options := make([]huh.Option[int], 0, len(results))
	for i, result := range results {
		label := result.Name
		if result.Admin1 != "" {
			label += ", " + result.Admin1
		}
		label += " (" + result.CountryCode + ")"
		options = append(options, huh.NewOption(label, i))
	}

	var picked int
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Select City").
				Options(options...).
				Value(&picked),
		),
	).Run()
	if err != nil {
		return clients.Location{}, err
	}

	chosen := results[picked]
	name := chosen.Name
	if chosen.Admin1 != "" {
		name += ", " + chosen.Admin1
	}
	return clients.Location{
		Name:      name,
		Latitude:  chosen.Latitude,
		Longitude: chosen.Longitude,
		Timezone:  chosen.Timezone,
	}, nil
}

func validateDuration(s string) error {
	if _, err := time.ParseDuration(s); err != nil {
		return fmt.Errorf("must be a duration like 30s or 5m")
	}
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
