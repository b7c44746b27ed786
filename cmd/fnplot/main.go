// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

// fnplot plots y = f(x) for x in -10..10 and typesets the expression as LaTeX, updating both as the
// expression is edited.
//
// Usage:
//
//	fnplot [-ui=web|terminal|notebook] [-addr=127.0.0.1:8080] [-set="chart=margaid;typeset=markdown;..."] [expressions...]
//
// With -ui=notebook, for the Jupyter bash_kernel, the default expression is plotted and then each of the
// expressions given as arguments, updating the same output cell.
package main

import (
	"context"
	"flag"
	"fmt"
	"html"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/jorgemunozl/fnplot/pkg/chart"
	"github.com/jorgemunozl/fnplot/pkg/coordinator"
	"github.com/jorgemunozl/fnplot/pkg/typeset"
	"github.com/jorgemunozl/fnplot/ui/bashkernel"
	"github.com/jorgemunozl/fnplot/ui/commandline"
	"github.com/jorgemunozl/fnplot/ui/terminal"
	"github.com/jorgemunozl/fnplot/ui/web"
)

var (
	flagUI = flag.String("ui", defaultUI(), `Front end: "web" serves a local page, "terminal" reads expressions `+
		`from the standard input, "notebook" displays the expressions given as arguments in a Jupyter bash_kernel notebook.`)
	flagAddr = flag.String("addr", web.DefaultAddr, "Address for the web front end. "+
		"Keep it on the loopback interface: fnplot is meant for a single local user.")
)

// defaultUI is "notebook" when running from a bash_kernel cell, and "web" otherwise.
func defaultUI() string {
	if bashkernel.IsBashNotebook() {
		return "notebook"
	}
	return "web"
}

func main() {
	klog.InitFlags(nil)
	settings := commandline.DefaultSettings()
	flagSettings := commandline.CreateSettingsFlag(settings, "")
	flag.Parse()

	keysSet, err := commandline.ParseSettings(settings, *flagSettings)
	if err != nil {
		klog.Errorf("Invalid -set: %+v", err)
		os.Exit(1)
	}
	if *flagUI == "terminal" && !slices.Contains(keysSet, "chart") {
		// HTML and images can't be shown in a terminal.
		settings.Chart = "terminal"
	}
	if len(keysSet) > 0 {
		klog.V(1).Infof("Settings:\n%s", commandline.SprintModifiedSettings(settings, keysSet))
	}
	charts := must.M1(commandline.NewChartRenderer(settings, os.Stdout))
	typesetter := must.M1(commandline.NewTypesetter(settings))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *flagUI {
	case "web":
		server := web.New(settings.CoordinatorConfig(), charts, typesetter)
		err = server.ListenAndServe(ctx, *flagAddr)
	case "terminal":
		c := coordinator.New(settings.CoordinatorConfig(), charts, terminal.NewSurface(os.Stdout), typesetter)
		err = terminal.NewREPL(c, os.Stdin, os.Stdout).Run(ctx)
	case "notebook":
		err = runNotebook(settings, charts, typesetter, flag.Args())
	default:
		err = fmt.Errorf("unknown -ui=%q, valid values are \"web\", \"terminal\" or \"notebook\"", *flagUI)
	}
	if err != nil && ctx.Err() == nil {
		klog.Errorf("fnplot failed: %+v", err)
		os.Exit(1)
	}
}

// runNotebook plots the default expression and then each of expressions, in a bash_kernel notebook.
// The markup is displayed in its own cell, also updated in place.
func runNotebook(settings *commandline.Settings, charts chart.Renderer, typesetter typeset.Renderer, expressions []string) error {
	surface := bashkernel.New(os.Stdout)
	c := coordinator.New(settings.CoordinatorConfig(), charts, surface, typesetter)
	markupId := surface.DisplayId("markup", chart.KindHTML)
	showMarkup := func(update coordinator.Update) error {
		content := update.Markup
		if update.Error != "" {
			content += "<pre>" + html.EscapeString(update.Error) + "</pre>"
		}
		return surface.OutputHTML(content, markupId)
	}
	if err := showMarkup(c.Start()); err != nil {
		return err
	}
	for _, text := range expressions {
		if err := showMarkup(c.OnExpressionChanged(text)); err != nil {
			return err
		}
	}
	return nil
}
