package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/andybalholm/cascadia"
)

// Validation errors returned by Config.Validate.
var (
	ErrMissingDebugURL      = errors.New("debug URL is required")
	ErrMissingSearchURL     = errors.New("base search URL is required")
	ErrInvalidMinSquareFeet = errors.New("minimum square feet must be non-negative")
	ErrInvalidPageCap       = errors.New("page cap must be at least 1")
	ErrNegativeDelay        = errors.New("delays must be non-negative")
	ErrMissingOutputName    = errors.New("output base name is required")
	ErrInvalidLocator       = errors.New("locator is not a valid CSS selector")
)

type Config struct {
	// DebugURL is the remote-debugging endpoint of an already running browser.
	DebugURL string

	BaseSearchURL string
	SiteOrigin    string

	MinSquareFeet  int
	ScrapeAllPages bool
	PageCap        int

	DiscoverySettle time.Duration
	InterTabDelay   time.Duration
	SettleDelay     time.Duration
	PageTimeout     time.Duration

	MaskAutomation bool

	OutputDir  string
	OutputBase string

	Locators  Locators
	Shortlist Shortlist
	Postgres  Postgres
}

// Locators name the DOM positions listing fields are read from. Container
// and PageTotal are matched against the document, the rest are relative to
// one listing container.
type Locators struct {
	Container     string
	Price         string
	SquareFootage string
	Address       string
	PageTotal     string
}

// Shortlist is the price / area window printed after the market report.
type Shortlist struct {
	Cities   []string
	MinPrice float64
	MaxPrice float64
	MinSqft  int
	MaxSqft  int
}

type Postgres struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

const searchURL = "https://www.realtor.ca/map#ZoomLevel=10&Center=49.058181%2C-122.198065" +
	"&LatitudeMax=49.33682&LongitudeMax=-120.93601&LatitudeMin=48.77797&LongitudeMin=-123.46012" +
	"&view=list&Sort=6-D&PGeoIds=g30_c2c4ud6q&GeoName=Fraser%20Valley%2C%20BC" +
	"&PropertyTypeGroupID=1&TransactionTypeId=2&PropertySearchTypeId=0" +
	"&PriceMin=500000&PriceMax=700000&BedRange=3-0&BathRange=2-0&Currency=CAD" +
	"&HiddenListingIds=&IncludeHiddenListings=false"

func DefaultConfig() *Config {
	return &Config{
		DebugURL:        "http://127.0.0.1:9222",
		BaseSearchURL:   searchURL,
		SiteOrigin:      "https://www.realtor.ca",
		MinSquareFeet:   1800,
		ScrapeAllPages:  true,
		PageCap:         2,
		DiscoverySettle: 6 * time.Second,
		InterTabDelay:   1 * time.Second,
		SettleDelay:     5 * time.Second,
		PageTimeout:     60 * time.Second,
		MaskAutomation:  true,
		OutputDir:       ".",
		OutputBase:      "listings",
		Locators:        DefaultLocators(),
		Shortlist: Shortlist{
			MinPrice: 500000,
			MaxPrice: 650000,
			MinSqft:  800,
			MaxSqft:  3000,
		},
		Postgres: Postgres{
			Enabled:  false,
			Host:     "localhost",
			Port:     5433,
			User:     "postgres",
			Password: "postgres",
			Name:     "realtor_scraper",
			SSLMode:  "disable",
		},
	}
}

// DefaultLocators mirror the realtor.ca list view markup.
func DefaultLocators() Locators {
	return Locators{
		Container:     "#listInnerCon > div > div > a",
		Price:         "div > div:nth-child(2) > div:nth-child(1) > div:nth-child(2)",
		SquareFootage: "div > div:nth-child(2) > div:nth-child(2) > div:nth-child(3) > div:nth-child(1) > div:nth-child(2)",
		Address:       "div > div:nth-child(2) > div:nth-child(1) > div:nth-child(3)",
		PageTotal:     "#ListViewPagination_Bottom > div > div > div > span:nth-of-type(2)",
	}
}

func (c *Config) Validate() error {
	if c.DebugURL == "" {
		return ErrMissingDebugURL
	}
	if c.BaseSearchURL == "" {
		return ErrMissingSearchURL
	}
	if c.MinSquareFeet < 0 {
		return ErrInvalidMinSquareFeet
	}
	if c.PageCap < 1 {
		return ErrInvalidPageCap
	}
	if c.DiscoverySettle < 0 || c.InterTabDelay < 0 || c.SettleDelay < 0 || c.PageTimeout < 0 {
		return ErrNegativeDelay
	}
	if c.OutputBase == "" {
		return ErrMissingOutputName
	}
	return c.Locators.Validate()
}

// Validate parses every locator so a typo fails before the browser is touched.
func (l Locators) Validate() error {
	fields := []struct {
		name, sel string
	}{
		{"container", l.Container},
		{"price", l.Price},
		{"square footage", l.SquareFootage},
		{"address", l.Address},
		{"page total", l.PageTotal},
	}
	for _, f := range fields {
		if _, err := cascadia.Parse(f.sel); err != nil {
			return fmt.Errorf("%w: %s %q: %v", ErrInvalidLocator, f.name, f.sel, err)
		}
	}
	return nil
}
