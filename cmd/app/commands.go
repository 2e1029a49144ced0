package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/starford/bindrune/internal"
	"github.com/starford/bindrune/internal/editor"
	"github.com/starford/bindrune/internal/fetch"
	"github.com/starford/bindrune/internal/linkservice"
	"github.com/starford/bindrune/internal/mcpserver"
	"github.com/starford/bindrune/internal/render"
	"github.com/starford/bindrune/internal/store"
)

// openService builds the service stack from the resolved config. The
// returned close function must be called when the command finishes.
func openService(cmd *cli.Command) (*linkservice.Service, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open archive: %w", err)
	}
	extractor := fetch.NewHTTP(cfg.Fetch.Timeout(), cfg.Fetch.UserAgent)
	return linkservice.New(st, extractor), func() { st.Close() }, nil
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Archive a URL with its distilled page content",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "tag",
				Aliases: []string{"t"},
				Usage:   "Tag to apply (repeatable)",
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "Title override (defaults to the page title)",
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Description override (defaults to the page excerpt)",
			},
			&cli.BoolFlag{
				Name:    "note",
				Aliases: []string{"n"},
				Usage:   "Open the editor to attach a note",
			},
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "Attach a note with the given text",
			},
			&cli.StringFlag{
				Name:  "related-link",
				Usage: "URL of a related link to record",
			},
			&cli.StringFlag{
				Name:  "relation",
				Usage: "How the related link relates (e.g. 'discussed at')",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			url := cmd.Args().First()
			if url == "" {
				return fmt.Errorf("usage: bindrune add <url>")
			}

			note := cmd.String("message")
			if cmd.Bool("note") {
				edited, err := editor.Edit(note)
				if err != nil {
					return err
				}
				note = edited
			}

			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := svc.Add(ctx, linkservice.AddInput{
				URL:         url,
				Title:       cmd.String("title"),
				Description: cmd.String("description"),
				Tags:        cmd.StringSlice("tag"),
				Note:        note,
				RelatedURL:  cmd.String("related-link"),
				Relation:    cmd.String("relation"),
			}); err != nil {
				return err
			}
			fmt.Printf("Added %s\n", url)
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List archived links, newest first",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "tag",
				Aliases: []string{"t"},
				Usage:   "Only show links carrying this tag (repeatable)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			links, err := svc.List(ctx, cmd.StringSlice("tag"))
			if err != nil {
				return err
			}
			fmt.Println(render.LinkList(links))
			return nil
		},
	}
}

func noteCommand() *cli.Command {
	return &cli.Command{
		Name:      "note",
		Usage:     "Write or append to a standalone titled note",
		ArgsUsage: "[title]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "tag",
				Aliases: []string{"t"},
				Usage:   "Tag to apply (repeatable)",
			},
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "Append the given text instead of opening the editor",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			title := cmd.Args().First()
			if title == "" {
				title = time.Now().UTC().Format("2006-01-02 15:04:05")
			}

			existing, err := svc.NoteContent(ctx, title)
			if err != nil {
				return err
			}

			content := existing
			if msg := cmd.String("message"); msg != "" {
				if content != "" {
					content += "\n\n"
				}
				content += msg
			} else {
				content, err = editor.Edit(content)
				if err != nil {
					return err
				}
			}
			if content == "" {
				fmt.Println("Empty note, nothing saved")
				return nil
			}

			if err := svc.SaveNote(ctx, title, content, cmd.StringSlice("tag")); err != nil {
				return err
			}
			fmt.Printf("Saved note %q\n", title)
			return nil
		},
	}
}

func removeCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Remove a link and/or note matching a URL or title",
		ArgsUsage: "<url-or-title>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			item := cmd.Args().First()
			if item == "" {
				return fmt.Errorf("usage: bindrune remove <url-or-title>")
			}

			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := svc.Remove(ctx, item)
			if err != nil {
				return err
			}
			switch {
			case res.Link && res.Note:
				fmt.Printf("Removed link and note for %s\n", item)
			case res.Link:
				fmt.Printf("Removed link %s\n", item)
			case res.Note:
				fmt.Printf("Removed note %s\n", item)
			default:
				fmt.Printf("%s not found\n", item)
			}
			return nil
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Full-text search through archived page content",
		ArgsUsage: "<term>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			term := cmd.Args().First()
			if term == "" {
				return fmt.Errorf("usage: bindrune search <term>")
			}

			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			links, err := svc.Search(ctx, term)
			if err != nil {
				return err
			}
			fmt.Println(render.LinkList(links))
			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one link with its tags, note, and related links",
		ArgsUsage: "<url-title-or-id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			item := cmd.Args().First()
			if item == "" {
				return fmt.Errorf("usage: bindrune show <url-title-or-id>")
			}

			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			sel := store.ByTerm(item)
			if id, err := uuid.Parse(item); err == nil {
				sel = store.ByID(id)
			}

			d, err := svc.Show(ctx, sel)
			if err != nil {
				return err
			}
			fmt.Println(render.LinkDetail(d))
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the REST API server",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
				return fmt.Errorf("app run error: %w", err)
			}
			return nil
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP server on stdin/stdout",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			return mcpserver.New(svc).ServeStdio()
		},
	}
}
