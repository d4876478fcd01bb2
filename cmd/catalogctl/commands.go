package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"agrimart-be/internal/catalog"
	"agrimart-be/internal/logger"
	"agrimart-be/internal/product"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	outputJSON  = "json"
	outputTable = "table"
)

// cli holds the state shared by the subcommands of one root command.
type cli struct {
	v        *viper.Viper
	products []catalog.Product
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Query the agricultural product catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cfg := c.v.GetString("config"); cfg != "" {
				c.v.SetConfigFile(cfg)
				if err := c.v.ReadInConfig(); err != nil {
					return err
				}
			}
			if err := initLogger(c.v.GetString("log-level")); err != nil {
				return err
			}
			return c.load(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.String("catalog", "", "catalog JSON file (default: bundled seed catalog)")
	pf.StringP("output", "o", outputTable, "output format: table|json")
	pf.String("config", "", "config file")
	pf.String("log-level", "warn", "log level")
	for _, name := range []string{"catalog", "output", "config", "log-level"} {
		_ = c.v.BindPFlag(name, pf.Lookup(name))
	}
	c.v.SetEnvPrefix("AGRIMART")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	root.AddCommand(c.queryCmd(), c.facetsCmd(), c.locationsCmd())
	return root
}

func initLogger(level string) error {
	l, err := logger.New("development", level)
	if err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	logger.Replace(l)
	return nil
}

func (c *cli) load(ctx context.Context) error {
	var src product.Source = product.SeedSource{}
	if path := c.v.GetString("catalog"); path != "" {
		src = product.FileSource{Path: path}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	products, err := src.LoadCatalog(ctx)
	if err != nil {
		return err
	}
	c.products = products
	logger.L().Debug("catalog loaded", zap.Int("count", len(products)))
	return nil
}

func (c *cli) output() (string, error) {
	out := strings.ToLower(c.v.GetString("output"))
	if out != outputJSON && out != outputTable {
		return "", fmt.Errorf("unknown output format %q (use table or json)", out)
	}
	return out, nil
}

/* ---------- QUERY ---------- */

func (c *cli) queryCmd() *cobra.Command {
	spec := catalog.DefaultQuerySpec()
	var sortKey string
	maxPrice := -1.0

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter, sort and paginate the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := c.output()
			if err != nil {
				return err
			}
			spec.SortKey = catalog.ParseSortKey(sortKey)
			spec.PriceRange.Max = math.Inf(1)
			if maxPrice >= 0 {
				spec.PriceRange.Max = maxPrice
			}

			res := catalog.Query(c.products, spec)
			if format == outputJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return writeResultTable(cmd.OutOrStdout(), res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&spec.SearchText, "search", "", "match name, description or variety")
	f.StringVar(&spec.Category, "category", catalog.All, "category or subcategory")
	f.StringVar(&spec.Location, "location", catalog.All, "location; unknown locations fall back to similar ones")
	f.Float64Var(&spec.PriceRange.Min, "min-price", 0, "minimum price")
	f.Float64Var(&maxPrice, "max-price", -1, "maximum price (negative means unbounded)")
	f.Float64Var(&spec.MinRating, "min-rating", 0, "minimum rating 0-5")
	f.BoolVar(&spec.RequireInStock, "in-stock", false, "only products with stock")
	f.BoolVar(&spec.RequireOrganic, "organic", false, "only organic products")
	f.StringVar(&sortKey, "sort", string(catalog.SortFeatured), "featured|price-asc|price-desc|rating|newest|name")
	f.IntVar(&spec.Page, "page", 1, "page number")
	f.IntVar(&spec.PageSize, "page-size", catalog.DefaultPageSize, "results per page")
	return cmd
}

/* ---------- FACETS ---------- */

func (c *cli) facetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "Summarize the filter options the catalog offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := c.output()
			if err != nil {
				return err
			}
			f := catalog.Facets(c.products)
			if format == outputJSON {
				return writeJSON(cmd.OutOrStdout(), f)
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("FACET", "VALUE").
				Row("categories", strings.Join(f.Categories, ", ")).
				Row("locations", strings.Join(f.Locations, ", ")).
				Row("price", fmt.Sprintf("%s - %s", money(f.PriceBounds.Min), money(f.PriceBounds.Max))).
				Row("in stock", strconv.Itoa(f.InStock)).
				Row("out of stock", strconv.Itoa(f.OutOfStock)).
				Row("organic", strconv.Itoa(f.Organic)).
				Row("total", strconv.Itoa(f.Total))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return err
		},
	}
}

/* ---------- LOCATIONS ---------- */

func (c *cli) locationsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "locations <query>",
		Short: "Suggest catalog locations similar to query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.output()
			if err != nil {
				return err
			}
			locs := catalog.SimilarLocations(c.products, args[0], limit)
			if format == outputJSON {
				return writeJSON(cmd.OutOrStdout(), locs)
			}
			for _, l := range locs {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), l); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", catalog.MaxSimilarLocations, "maximum suggestions (0 for all)")
	return cmd
}

/* ---------- OUTPUT ---------- */

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResultTable(w io.Writer, res catalog.QueryResult) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "CATEGORY", "LOCATION", "PRICE", "RATING", "STOCK")
	for _, p := range res.Items {
		t.Row(
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Category,
			p.Location,
			money(p.Price)+"/"+p.Unit,
			strconv.FormatFloat(p.Rating, 'f', 1, 64),
			strconv.Itoa(p.StockQuantity),
		)
	}

	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return err
	}
	if res.UsedFallback() {
		if _, err := fmt.Fprintf(w, "No exact location match; showing %s\n", strings.Join(res.UsedFallbackLocations, ", ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "page %d of %d, %d matched\n", res.Page, res.TotalPages, res.TotalMatched)
	return err
}

func money(v float64) string {
	if math.IsInf(v, 0) {
		return "∞"
	}
	return "₹" + strconv.FormatFloat(v, 'f', 2, 64)
}

