package cmd

import (
	"fmt"
	"strings"

	"github.com/weft-ui/weft/cmd/weft/internal/config"
	"github.com/weft-ui/weft/cmd/weft/internal/page"
	"github.com/weft-ui/weft/showcase"
)

func init() {
	RegisterCommand(&Command{
		Name:  "page",
		Short: "Print the host page",
		Long: `Print the host page the showcase renders into.

The page carries the mount element (data-is), a named component marker in
the header and a named list marker in the footer. Settings come from
weft.yaml in DIR (default: current directory).

Flags:
  --title TITLE   Page title (default: app.title from weft.yaml)`,
		Usage: "weft page [--title TITLE] [DIR]",
		Run:   runPage,
	})
}

func runPage(args []string) error {
	opts, rest, err := parsePageArgs(args)
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
	return page.Write(stdout, hostOptions(cfg, opts.title))
}

type pageArgs struct {
	title string
}

func parsePageArgs(args []string) (pageArgs, []string, error) {
	var opts pageArgs
	var rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--title":
			v, err := flagValue(args, i)
			if err != nil {
				return opts, nil, err
			}
			opts.title = v
			i++
		case strings.HasPrefix(arg, "--title="):
			opts.title = strings.TrimPrefix(arg, "--title=")
		case strings.HasPrefix(arg, "-"):
			return opts, nil, fmt.Errorf("unknown flag: %s", arg)
		default:
			rest = append(rest, arg)
		}
	}
	return opts, rest, nil
}

// targetDir returns the single optional directory argument. Without one it
// is the enclosing Go module root, or the current directory outside a module.
func targetDir(rest []string) (string, error) {
	switch len(rest) {
	case 0:
		if root, err := config.FindProjectRoot(); err == nil {
			return root, nil
		}
		return ".", nil
	case 1:
		return rest[0], nil
	default:
		return "", fmt.Errorf("expected at most one directory, got %d arguments", len(rest))
	}
}

// hostOptions builds page options from resolved config. A non-empty title
// overrides the configured one.
func hostOptions(cfg *config.Resolved, title string) page.Options {
	if title == "" {
		title = cfg.Title
	}
	return page.Options{
		Title:      title,
		RootMarker: cfg.RootMarker,
		Banner:     showcase.BannerName,
		Links:      showcase.LinksName,
	}
}
