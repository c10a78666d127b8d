package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// Confirm asks a yes/no question. Declining is not an error.
func Confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(huh.ThemeCatppuccin()).Run()
	if err != nil {
		return false, fmt.Errorf("prompt cancelled: %w", err)
	}
	return ok, nil
}

// ProductInput is the operator form for a new product.
type ProductInput struct {
	CategorySlug string
	Name         string
	Description  string
	Price        string
	Stock        string
}

// RunProductForm fills the empty fields of in interactively.
func RunProductForm(in *ProductInput, categories []huh.Option[string]) error {
	required := func(label string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", label)
			}
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(categories...).
				Value(&in.CategorySlug),
			huh.NewInput().
				Title("Name").
				Value(&in.Name).
				Validate(required("name")),
			huh.NewText().
				Title("Description").
				Value(&in.Description),
			huh.NewInput().
				Title("Unit price").
				Placeholder("12.50").
				Value(&in.Price).
				Validate(required("price")),
			huh.NewInput().
				Title("Stock").
				Value(&in.Stock).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return errors.New("stock must be a whole number")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	return form.Run()
}

func PrintTitle(msg string) {
	fmt.Println(headingStyle.Render(msg))
}

func PrintSuccess(msg string) {
	fmt.Println(doneStyle.Render("✓ " + msg))
}

// PrintRow prints an indented label and value with the labels aligned.
func PrintRow(label, value string) {
	fmt.Println("  " + labelStyle.Render(label) + value)
}

func PrintError(msg string) {
	fmt.Println(failStyle.Render("✗ " + msg))
}
