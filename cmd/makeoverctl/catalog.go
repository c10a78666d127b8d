package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Suyog-Rijal/Makeover-me-backend/cmd/makeoverctl/ui"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/catalog"
)

func catalogCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage categories and products",
	}

	repo := func(cmd *cobra.Command) (*catalog.Repository, error) {
		db, err := e.database(cmd.Context())
		if err != nil {
			return nil, err
		}
		return catalog.NewRepository(db), nil
	}

	addCategory := &cobra.Command{
		Use:   "add-category <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo(cmd)
			if err != nil {
				return err
			}
			description, _ := cmd.Flags().GetString("description")
			image, _ := cmd.Flags().GetString("image")

			c, err := r.CreateCategory(cmd.Context(), catalog.NewCategory{Name: args[0], Description: description, Image: image})
			if err != nil {
				return err
			}
			ui.PrintSuccess("Category created.")
			ui.PrintRow("Name", c.Name)
			ui.PrintRow("Slug", c.Slug)
			return nil
		},
	}
	addCategory.Flags().String("description", "", "Category description")
	addCategory.Flags().String("image", "", "Image URL")

	addSubcategory := &cobra.Command{
		Use:   "add-subcategory <category-slug> <name>",
		Short: "Create a subcategory under a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo(cmd)
			if err != nil {
				return err
			}
			description, _ := cmd.Flags().GetString("description")

			sc, err := r.CreateSubcategory(cmd.Context(), args[0], catalog.NewCategory{Name: args[1], Description: description})
			if err != nil {
				return err
			}
			ui.PrintSuccess("Subcategory created.")
			ui.PrintRow("Slug", sc.Slug)
			return nil
		},
	}
	addSubcategory.Flags().String("description", "", "Subcategory description")

	addProduct := &cobra.Command{
		Use:   "add-product",
		Short: "Create a product, prompting for missing fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo(cmd)
			if err != nil {
				return err
			}

			var in ui.ProductInput
			in.CategorySlug, _ = cmd.Flags().GetString("category")
			in.Name, _ = cmd.Flags().GetString("name")
			in.Description, _ = cmd.Flags().GetString("description")
			in.Price, _ = cmd.Flags().GetString("price")
			in.Stock, _ = cmd.Flags().GetString("stock")
			images, _ := cmd.Flags().GetStringSlice("image")

			// Interactive mode
			if in.CategorySlug == "" || in.Name == "" || in.Price == "" || in.Stock == "" {
				categories, err := r.ListCategories(cmd.Context())
				if err != nil {
					return err
				}
				if len(categories) == 0 {
					return errors.New("create a category first")
				}
				opts := make([]huh.Option[string], 0, len(categories))
				for _, c := range categories {
					opts = append(opts, huh.NewOption(c.Name, c.Slug))
				}
				if err := ui.RunProductForm(&in, opts); err != nil {
					return fmt.Errorf("form cancelled: %w", err)
				}
			}

			price, err := catalog.ParseMoney(strings.TrimSpace(in.Price))
			if err != nil {
				return fmt.Errorf("price %q: %w", in.Price, err)
			}
			stock, err := strconv.Atoi(strings.TrimSpace(in.Stock))
			if err != nil {
				return fmt.Errorf("stock %q: %w", in.Stock, err)
			}

			p, err := r.CreateProduct(cmd.Context(), catalog.NewProduct{
				CategorySlug: in.CategorySlug,
				Name:         in.Name,
				Description:  in.Description,
				UnitPrice:    price,
				Stock:        stock,
				Images:       images,
			})
			if err != nil {
				return err
			}
			ui.PrintSuccess("Product created.")
			ui.PrintRow("Slug", p.Slug)
			ui.PrintRow("Price", p.UnitPrice.String())
			return nil
		},
	}
	addProduct.Flags().String("category", "", "Category slug")
	addProduct.Flags().String("name", "", "Product name")
	addProduct.Flags().String("description", "", "Product description")
	addProduct.Flags().String("price", "", "Unit price, e.g. 12.50")
	addProduct.Flags().String("stock", "", "Units in stock")
	addProduct.Flags().StringSlice("image", nil, "Image URL, repeatable")

	seedFlags := &cobra.Command{
		Use:   "seed-flags",
		Short: "Randomly assign featured and promotional flags to every product",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirmed(cmd, "Reassign promotional flags?", "Current flags on every product are overwritten.")
			if err != nil || !ok {
				return err
			}
			r, err := repo(cmd)
			if err != nil {
				return err
			}

			seed, _ := cmd.Flags().GetUint64("seed")
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			n, err := r.SeedPromotionFlags(cmd.Context(), rand.New(rand.NewPCG(seed, seed>>1)))
			if err != nil {
				return err
			}
			ui.PrintSuccess(fmt.Sprintf("Updated %d products.", n))
			ui.PrintRow("Seed", strconv.FormatUint(seed, 10))
			return nil
		},
	}
	seedFlags.Flags().Uint64("seed", 0, "Random seed for reproducible runs")

	cmd.AddCommand(addCategory, addSubcategory, addProduct, seedFlags)
	return cmd
}
