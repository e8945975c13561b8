// SPDX-License-Identifier: MIT

// Package tui is the interactive terminal customizer
package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/thatcatcamp/themery/internal/themes"
)

// ErrAborted is returned when a user cancels the interactive flow
var ErrAborted = errors.New("customization aborted by user")

// Selection is what the customizer produced
type Selection struct {
	Config themes.ExportConfig
	Format themes.Format
}

// CustomizeForm walks the user through theme, radius, colors and output
// format. Anything invalid in prefill falls back to the defaults.
func CustomizeForm(prefill Selection) (*Selection, error) {
	accessible := os.Getenv("ACCESSIBLE") != ""

	sel := normalize(prefill)
	radius := sel.Config.Radius

	themeField := huh.NewSelect[string]().
		Title("Theme").
		Options(themeOptions(sel.Config.Theme)...).
		Value(&sel.Config.Theme).
		Height(selectHeight(len(themes.ListThemes())+1, 14))

	radiusField := huh.NewSelect[float64]().
		Title("Radius").
		Options(radiusOptions(radius)...).
		Value(&radius)

	customGroup := huh.NewGroup(
		huh.NewInput().
			Title("Base color").
			Placeholder(themes.DefaultBaseColor).
			Value(&sel.Config.BaseColor).
			Validate(validateHex),
		huh.NewInput().
			Title("Primary color").
			Placeholder(themes.DefaultPrimaryColor).
			Value(&sel.Config.PrimaryColor).
			Validate(validateHex),
	).WithHideFunc(func() bool {
		return sel.Config.Theme != themes.CustomThemeName
	})

	formatField := huh.NewSelect[themes.Format]().
		Title("Output").
		Options(formatOptions(sel.Format)...).
		Value(&sel.Format)

	confirm := true
	preview := huh.NewNote().
		Title("Preview").
		DescriptionFunc(func() string {
			cfg := sel.Config.WithRadius(radius)
			return Summary(cfg, sel.Format)
		}, &sel)

	confirmField := huh.NewConfirm().
		Title("Print the theme code?").
		Value(&confirm)

	if err := runForm(accessible,
		huh.NewGroup(themeField, radiusField),
		customGroup,
		huh.NewGroup(formatField),
		huh.NewGroup(preview, confirmField),
	); err != nil {
		return nil, err
	}
	if !confirm {
		return nil, ErrAborted
	}

	sel.Config = sel.Config.WithRadius(radius)
	sel.Config.BaseColor = strings.TrimSpace(sel.Config.BaseColor)
	sel.Config.PrimaryColor = strings.TrimSpace(sel.Config.PrimaryColor)
	return &sel, nil
}

func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

func normalize(in Selection) Selection {
	out := Selection{Config: themes.DefaultExportConfig(), Format: themes.FormatV4}
	out.Config = out.Config.
		WithTheme(in.Config.Theme).
		WithRadius(in.Config.Radius).
		WithBaseColor(in.Config.BaseColor).
		WithPrimaryColor(in.Config.PrimaryColor)
	if _, err := themes.ParseFormat(string(in.Format)); err == nil {
		out.Format = in.Format
	}
	return out
}

func validateHex(s string) error {
	if !themes.ValidHex(strings.TrimSpace(s)) {
		return fmt.Errorf("use a #RRGGBB color")
	}
	return nil
}

func themeOptions(current string) []huh.Option[string] {
	var opts []huh.Option[string]
	for _, t := range themes.ListThemes() {
		opts = append(opts, huh.NewOption(t.DisplayLabel(), t.Name).Selected(t.Name == current))
	}
	opts = append(opts, huh.NewOption("Custom", themes.CustomThemeName).Selected(current == themes.CustomThemeName))
	return opts
}

func radiusOptions(current float64) []huh.Option[float64] {
	var opts []huh.Option[float64]
	for _, r := range themes.Radii {
		opts = append(opts, huh.NewOption(themes.FormatRadius(r)+"rem", r).Selected(r == current))
	}
	return opts
}

func formatOptions(current themes.Format) []huh.Option[themes.Format] {
	var opts []huh.Option[themes.Format]
	for _, f := range themes.Formats {
		opts = append(opts, huh.NewOption(f.Label(), f).Selected(f == current))
	}
	return opts
}

func selectHeight(n, limit int) int {
	if n+2 < limit {
		return n + 2
	}
	return limit
}
