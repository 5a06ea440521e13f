package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/hostplay/hostplay/backend"
	"github.com/hostplay/hostplay/color"
	"github.com/hostplay/hostplay/constant"
	"github.com/hostplay/hostplay/driver"
	"github.com/hostplay/hostplay/filesystem"
	"github.com/hostplay/hostplay/icon"
	"github.com/hostplay/hostplay/open"
	"github.com/hostplay/hostplay/style"
	"github.com/hostplay/hostplay/util"
	"github.com/hostplay/hostplay/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(backendsCmd)
}

// backendsCmd groups the commands managing hosted player definitions.
var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "Manage built-in and custom player backends",
}

func init() {
	backendsCmd.AddCommand(backendsListCmd)

	backendsListCmd.Flags().BoolP("raw", "r", false, "Print names only")
	backendsListCmd.Flags().BoolP("custom", "c", false, "Show only custom Lua backends")
	backendsListCmd.Flags().BoolP("builtin", "b", false, "Show only built-in backends")

	backendsListCmd.MarkFlagsMutuallyExclusive("custom", "builtin")
	backendsListCmd.SetOut(os.Stdout)
}

// backendsListCmd lists every backend serve can drive.
var backendsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backends",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			raw     = lo.Must(cmd.Flags().GetBool("raw"))
			custom  = lo.Must(cmd.Flags().GetBool("custom"))
			builtin = lo.Must(cmd.Flags().GetBool("builtin"))
		)

		backends := lo.Filter(backend.All(), func(b *backend.Backend, _ int) bool {
			switch {
			case custom:
				return b.IsCustom()
			case builtin:
				return !b.IsCustom()
			default:
				return true
			}
		})

		for _, b := range backends {
			if raw {
				cmd.Println(b.Name)
				continue
			}

			kind := style.Faint("builtin")
			if b.IsCustom() {
				kind = style.Fg(color.Yellow)("custom")
			}

			cmd.Printf(
				"%s %s %s %s\n",
				icon.Get(icon.Backend),
				style.Bold(b.Name),
				style.Fg(color.Purple)(string(b.Family)),
				kind,
			)
			cmd.Printf("  %s %s\n", icon.Get(icon.Link), style.Faint(b.URL))
		}
	},
}

func init() {
	backendsCmd.AddCommand(backendsRemoveCmd)

	backendsRemoveCmd.Flags().StringArrayP("name", "n", []string{}, "Name of the custom backend to remove")
	lo.Must0(backendsRemoveCmd.RegisterFlagCompletionFunc("name", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		customs, err := backend.Customs()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		return lo.Map(customs, func(b *backend.Backend, _ int) string {
			return b.Name
		}), cobra.ShellCompDirectiveNoFileComp
	}))
}

// backendsRemoveCmd deletes custom backend scripts.
var backendsRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove custom Lua backends",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range lo.Must(cmd.Flags().GetStringArray("name")) {
			path := filepath.Join(where.Backends(), name+constant.CustomBackendExtension)
			handleErr(filesystem.API().Remove(path))
			fmt.Printf("%s removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}

func init() {
	backendsCmd.AddCommand(backendsGenCmd)

	backendsGenCmd.Flags().StringP("name", "n", "", "Name of the new backend")
	backendsGenCmd.Flags().StringP("url", "u", "", "URL of the player page")
	backendsGenCmd.Flags().BoolP("open", "o", false, "Open the generated script")
	backendsGenCmd.Flags().String("with", "", "Application to open the script with")
	backendsGenCmd.Flags().StringP("family", "f", string(driver.Direct), "How the player advances: direct, peek or peek-artist")
	lo.Must0(backendsGenCmd.RegisterFlagCompletionFunc("family", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(driver.Families, func(f driver.Family, _ int) string {
			return string(f)
		}), cobra.ShellCompDirectiveNoFileComp
	}))

	lo.Must0(backendsGenCmd.MarkFlagRequired("name"))
	lo.Must0(backendsGenCmd.MarkFlagRequired("url"))
}

// backendsGenCmd scaffolds a Lua backend to fill in with selectors.
var backendsGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a new Lua backend from a template",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		family, err := driver.ParseFamily(lo.Must(cmd.Flags().GetString("family")))
		handleErr(err)

		author := "Anonymous"
		if usr, err := user.Current(); err == nil {
			author = usr.Username
		}

		s := struct {
			Name   string
			URL    string
			Family driver.Family
			Author string
			Global string
		}{
			Name:   lo.Must(cmd.Flags().GetString("name")),
			URL:    lo.Must(cmd.Flags().GetString("url")),
			Family: family,
			Author: author,
			Global: constant.BackendGlobal,
		}

		funcMap := template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
			"max":    util.Max[int],
		}

		tmpl, err := template.New("backend").Funcs(funcMap).Parse(constant.BackendTemplate)
		handleErr(err)

		target := filepath.Join(where.Backends(), util.SanitizeFilename(s.Name)+constant.CustomBackendExtension)
		f, err := filesystem.API().Create(target)
		handleErr(err)

		err = tmpl.Execute(f, s)
		util.Ignore(f.Close)
		handleErr(err)
		cmd.Println(target)

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(target, lo.Must(cmd.Flags().GetString("with"))))
		}
	},
}
