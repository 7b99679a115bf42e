// Package command provides CLI command definitions for estate-cli.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nainaland/estate-go/internal/cli/output"
	"github.com/nainaland/estate-go/internal/core/domain"
)

// PropertyCommand returns the property subcommand group.
func PropertyCommand() *cli.Command {
	return &cli.Command{
		Name:    "property",
		Aliases: []string{"prop"},
		Usage:   "Browse and manage property listings",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all properties",
				Action: propertyList,
			},
			{
				Name:  "featured",
				Usage: "List featured properties",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum results (server default when omitted)",
					},
				},
				Action: propertyFeatured,
			},
			{
				Name:      "search",
				Usage:     "Search properties by free text",
				ArgsUsage: "QUERY",
				Action:    propertySearch,
			},
			{
				Name:      "get",
				Usage:     "Show one property",
				ArgsUsage: "ID",
				Action:    propertyGet,
			},
			{
				Name:  "add",
				Usage: "Create a property listing (requires login)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true, Usage: "Listing title"},
					&cli.StringFlag{Name: "description", Required: true, Usage: "Listing description"},
					&cli.Int64Flag{Name: "price", Required: true, Usage: "Price"},
					&cli.StringFlag{Name: "location", Required: true, Usage: "Location"},
					&cli.StringFlag{Name: "address", Required: true, Usage: "Street address"},
					&cli.StringFlag{Name: "type", Required: true, Usage: "Property type (e.g., land, villa)"},
					&cli.Int64Flag{Name: "area", Usage: "Area size"},
					&cli.StringFlag{Name: "area-unit", Usage: "Area unit: sqft, gunta, acre"},
					&cli.IntFlag{Name: "bedrooms", Usage: "Bedroom count"},
					&cli.IntFlag{Name: "bathrooms", Usage: "Bathroom count"},
					&cli.BoolFlag{Name: "featured", Usage: "Mark as featured"},
					&cli.BoolFlag{Name: "rent", Usage: "List for rent instead of sale"},
					&cli.StringSliceFlag{Name: "image", Usage: "Image URL (repeatable)"},
				},
				Action: propertyAdd,
			},
		},
	}
}

func propertyList(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return err
	}

	properties, err := cl.Properties(c.Context)
	if err != nil {
		return err
	}
	return renderProperties(c, properties)
}

func propertyFeatured(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return err
	}

	properties, err := cl.FeaturedProperties(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}
	return renderProperties(c, properties)
}

func propertySearch(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: estate-cli property search QUERY")
	}

	cl, err := newClient(c)
	if err != nil {
		return err
	}

	properties, err := cl.SearchProperties(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	return renderProperties(c, properties)
}

func propertyGet(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: estate-cli property get ID")
	}

	var id int64
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &id); err != nil {
		return fmt.Errorf("invalid property id %q", c.Args().First())
	}

	cl, err := newClient(c)
	if err != nil {
		return err
	}

	property, err := cl.Property(c.Context, id)
	if err != nil {
		return err
	}
	return renderJSON(property)
}

func propertyAdd(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return err
	}

	property := &domain.Property{
		Title:        c.String("title"),
		Description:  c.String("description"),
		Price:        c.Int64("price"),
		Location:     c.String("location"),
		Address:      c.String("address"),
		PropertyType: c.String("type"),
		Area:         c.Int64("area"),
		AreaUnit:     c.String("area-unit"),
		Bedrooms:     c.Int("bedrooms"),
		Bathrooms:    c.Int("bathrooms"),
		Featured:     c.Bool("featured"),
		ForSale:      !c.Bool("rent"),
		ImageURLs:    c.StringSlice("image"),
	}

	created, err := cl.CreateProperty(c.Context, property)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Created property %d\n", created.ID)
	return renderJSON(created)
}

func renderProperties(c *cli.Context, properties []*domain.Property) error {
	table := output.NewTable("ID", "TITLE", "TYPE", "PRICE", "LOCATION", "FEATURED")
	for _, p := range properties {
		table.AddRow(p.ID, output.Truncate(p.Title, 40), p.PropertyType, p.Price, output.Truncate(p.Location, 30), p.Featured)
	}
	return render(c, table, properties)
}
