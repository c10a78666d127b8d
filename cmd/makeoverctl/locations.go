package main

import (
	"github.com/spf13/cobra"

	"github.com/Suyog-Rijal/Makeover-me-backend/cmd/makeoverctl/ui"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/location"
)

func locationCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Manage regions, cities and areas",
	}

	repo := func(cmd *cobra.Command) (*location.Repository, error) {
		db, err := e.database(cmd.Context())
		if err != nil {
			return nil, err
		}
		return location.NewRepository(db), nil
	}

	created := func(p *location.Place) {
		ui.PrintSuccess("Created " + p.ID + ".")
		ui.PrintRow("Name", p.Name)
	}

	addRegion := &cobra.Command{
		Use:   "add-region <name>",
		Short: "Create a region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo(cmd)
			if err != nil {
				return err
			}
			p, err := r.CreateRegion(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			created(p)
			return nil
		},
	}

	addCity := &cobra.Command{
		Use:   "add-city <region-id> <name>",
		Short: "Create a city in a region",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo(cmd)
			if err != nil {
				return err
			}
			p, err := r.CreateCity(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			created(p)
			return nil
		},
	}

	addArea := &cobra.Command{
		Use:   "add-area <city-id> <name>",
		Short: "Create an area in a city",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo(cmd)
			if err != nil {
				return err
			}
			p, err := r.CreateArea(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			created(p)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List regions, or the cities of --region, or the areas of --city",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo(cmd)
			if err != nil {
				return err
			}
			regionID, _ := cmd.Flags().GetString("region")
			cityID, _ := cmd.Flags().GetString("city")

			var places []location.Place
			switch {
			case regionID != "":
				places, err = r.ListCities(cmd.Context(), regionID)
			case cityID != "":
				places, err = r.ListAreas(cmd.Context(), cityID)
			default:
				places, err = r.ListRegions(cmd.Context())
			}
			if err != nil {
				return err
			}
			for _, p := range places {
				ui.PrintRow(p.ID, p.Name)
			}
			return nil
		},
	}
	list.Flags().String("region", "", "Region ID")
	list.Flags().String("city", "", "City ID")
	list.MarkFlagsMutuallyExclusive("region", "city")

	cmd.AddCommand(addRegion, addCity, addArea, list)
	return cmd
}
