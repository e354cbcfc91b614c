// Command shipctl prints the shipping configuration served by the API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ziplofy-shipping/internal/apiclient"
	"ziplofy-shipping/internal/config"
	"ziplofy-shipping/internal/domain"
	"ziplofy-shipping/internal/logger"
	"ziplofy-shipping/internal/refcache"
)

const usage = `usage: shipctl [-api URL] <command> [id]

commands:
  profiles <storeId>      shipping profiles of a store
  zones <profileId>       zones of a profile with their states
  rates <zoneId>          rates of a zone
  countries               all countries
  states <countryId>      states of a country
`

func main() {
	cfg := config.FromEnv()
	baseURL := flag.String("api", cfg.APIBaseURL, "Shipping API base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	log := logger.New(cfg.LogLevel, "console").Named("shipctl")
	defer func() { _ = log.Sync() }()

	cli := newCLI(apiclient.New(*baseURL, cfg.APITimeout), os.Stdout, log)
	if err := cli.run(context.Background(), flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "shipctl:", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

type api interface {
	ListProfiles(ctx context.Context, storeID string) ([]domain.ShippingProfileDetail, error)
	ListZones(ctx context.Context, profileID string) ([]domain.ShippingZone, error)
	ListRates(ctx context.Context, zoneID string) ([]domain.ShippingZoneRate, error)
	ListCountries(ctx context.Context) ([]domain.Country, error)
	ListStates(ctx context.Context, countryID string) ([]domain.State, error)
}

type cli struct {
	api    api
	out    io.Writer
	states *refcache.Cache[[]domain.State]
}

func newCLI(client api, out io.Writer, log *zap.Logger) *cli {
	return &cli{
		api: client,
		out: out,
		// zones listings revisit the same countries; fetch each one's states once
		states: refcache.New[[]domain.State](refcache.NewMemoryStore[[]domain.State](), client.ListStates, 0, log),
	}
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	if cmd == "countries" {
		return c.countries(ctx)
	}
	if len(rest) != 1 {
		return errUsage
	}
	id := rest[0]
	switch cmd {
	case "profiles":
		return c.profiles(ctx, id)
	case "zones":
		return c.zones(ctx, id)
	case "rates":
		return c.rates(ctx, id)
	case "states":
		return c.listStates(ctx, id)
	default:
		return errUsage
	}
}

func (c *cli) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
}

func (c *cli) profiles(ctx context.Context, storeID string) error {
	profiles, err := c.api.ListProfiles(ctx, storeID)
	if err != nil {
		return err
	}
	w := c.table()
	fmt.Fprintln(w, "ID\tNAME\tZONES\tVARIANTS\tLOCATIONS")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", p.ID, p.ProfileName, len(p.ShippingZoneIDs), len(p.ProductVariants), len(p.LocationSettings))
	}
	return w.Flush()
}

func (c *cli) zones(ctx context.Context, profileID string) error {
	zones, err := c.api.ListZones(ctx, profileID)
	if err != nil {
		return err
	}
	w := c.table()
	fmt.Fprintln(w, "ID\tZONE\tCOUNTRY\tSTATES")
	for _, z := range zones {
		for _, zc := range z.Countries {
			scope, err := c.scope(ctx, zc)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", z.ID, z.ZoneName, zc.CountryISO2, scope)
		}
	}
	return w.Flush()
}

// scope names the selected states of a zone country, or "all".
func (c *cli) scope(ctx context.Context, zc domain.ZoneCountry) (string, error) {
	if len(zc.StateIDs) == 0 {
		return "all", nil
	}
	states, err := c.states.GetOrFetch(ctx, zc.CountryID)
	if err != nil {
		return "", fmt.Errorf("states of %s: %w", zc.CountryISO2, err)
	}
	names := make(map[string]string, len(states))
	for _, s := range states {
		names[s.ID] = s.Name
	}
	out := make([]string, 0, len(zc.StateIDs))
	for _, id := range zc.StateIDs {
		if n, ok := names[id]; ok {
			out = append(out, n)
		} else {
			out = append(out, id)
		}
	}
	return fmt.Sprintf("%s (%d/%d)", strings.Join(out, ", "), zc.SelectedStatesCount, zc.TotalStatesCount), nil
}

func (c *cli) rates(ctx context.Context, zoneID string) error {
	rates, err := c.api.ListRates(ctx, zoneID)
	if err != nil {
		return err
	}
	w := c.table()
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tPRICE\tCONDITION")
	for _, r := range rates {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.CustomRateName, r.RateType, r.Price.StringFixed(2), condition(&r))
	}
	return w.Flush()
}

func condition(r *domain.ShippingZoneRate) string {
	switch r.PricingState() {
	case domain.ConditionalByWeight:
		return "weight " + bounds(r.MinWeight, r.MaxWeight)
	case domain.ConditionalByPrice:
		return "price " + bounds(r.MinPrice, r.MaxPrice)
	default:
		return "-"
	}
}

func bounds(lo, hi *decimal.Decimal) string {
	str := func(v *decimal.Decimal) string {
		if v == nil {
			return "*"
		}
		return v.String()
	}
	return str(lo) + ".." + str(hi)
}

func (c *cli) countries(ctx context.Context) error {
	countries, err := c.api.ListCountries(ctx)
	if err != nil {
		return err
	}
	w := c.table()
	fmt.Fprintln(w, "ID\tISO2\tNAME")
	for _, ct := range countries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ct.ID, ct.ISO2, ct.Name)
	}
	return w.Flush()
}

func (c *cli) listStates(ctx context.Context, countryID string) error {
	states, err := c.states.GetOrFetch(ctx, countryID)
	if err != nil {
		return err
	}
	w := c.table()
	fmt.Fprintln(w, "ID\tCODE\tNAME")
	for _, s := range states {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Code, s.Name)
	}
	return w.Flush()
}
