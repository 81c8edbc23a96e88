package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/weft-ui/weft/cmd/weft/internal/config"
	"github.com/weft-ui/weft/cmd/weft/internal/page"
	"github.com/weft-ui/weft/pkg/core"
	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/errors"
	"github.com/weft-ui/weft/pkg/reactive"
	"github.com/weft-ui/weft/showcase"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render the showcase into the host page",
		Long: `Render the showcase application into the host page and print the
resulting HTML.

The host page is built from weft.yaml in DIR (default: current directory).
After the first render a scripted interaction clicks the counter, types a
name and completes a todo, so the output shows the updated bindings.

Flags:
  --out FILE      Write HTML to FILE instead of stdout
  --title TITLE   Page and heading title (default: app.title from weft.yaml)
  --static        Skip the scripted interaction`,
		Usage: "weft render [--out FILE] [--title TITLE] [--static] [DIR]",
		Run:   runRender,
	})
}

type renderArgs struct {
	out    string
	title  string
	static bool
}

func parseRenderArgs(args []string) (renderArgs, []string, error) {
	var opts renderArgs
	var rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--out" || arg == "--title":
			v, err := flagValue(args, i)
			if err != nil {
				return opts, nil, err
			}
			if arg == "--out" {
				opts.out = v
			} else {
				opts.title = v
			}
			i++
		case strings.HasPrefix(arg, "--out="):
			opts.out = strings.TrimPrefix(arg, "--out=")
		case strings.HasPrefix(arg, "--title="):
			opts.title = strings.TrimPrefix(arg, "--title=")
		case arg == "--static":
			opts.static = true
		case strings.HasPrefix(arg, "-"):
			return opts, nil, fmt.Errorf("unknown flag: %s", arg)
		default:
			rest = append(rest, arg)
		}
	}
	return opts, rest, nil
}

func runRender(args []string) error {
	opts, rest, err := parseRenderArgs(args)
	if err != nil {
		return err
	}
	dir, err := targetDir(rest)
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(dir)
	if err != nil {
		return err
	}

	if cfg.VerboseErrors {
		prev := errors.Handler()
		errors.SetHandler(&errors.LogHandler{Verbose: true})
		defer errors.SetHandler(prev)
	}

	doc, err := renderShowcase(cfg, opts)
	if err != nil {
		return err
	}

	if opts.out == "" {
		return doc.Render(stdout)
	}
	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.out, err)
	}
	if err := doc.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", opts.out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Rendered %s (%s) into %s\n", cfg.AppName, cfg.Root, opts.out)
	return nil
}

// renderShowcase builds the host page, renders the showcase into it and
// plays the scripted interaction unless opts.static is set.
func renderShowcase(cfg *config.Resolved, opts renderArgs) (*dom.Document, error) {
	host := hostOptions(cfg, opts.title)
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(page.Write(pw, host))
	}()
	doc, err := dom.Parse(pr)
	pr.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to parse host page: %w", err)
	}

	s := core.NewSession(doc,
		core.WithRootMarker(core.DefaultRootAttr, cfg.RootMarker),
		core.WithHubOptions(reactive.WithDispatchLimit(cfg.DispatchLimit)),
	)
	app, err := showcase.New(s, host.Title)
	if err != nil {
		return nil, err
	}
	if err := app.Render(); err != nil {
		return nil, err
	}
	if !opts.static {
		if err := showcase.Play(doc, showcase.Script); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
