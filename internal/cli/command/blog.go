// Package command provides CLI command definitions for estate-cli.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nainaland/estate-go/internal/cli/output"
	"github.com/nainaland/estate-go/internal/core/domain"
)

// BlogCommand returns the blog subcommand group.
func BlogCommand() *cli.Command {
	return &cli.Command{
		Name:  "blog",
		Usage: "Browse and manage blog posts",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all blog posts",
				Action: blogList,
			},
			{
				Name:  "recent",
				Usage: "List the most recent posts",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum results (server default when omitted)",
					},
				},
				Action: blogRecent,
			},
			{
				Name:      "get",
				Usage:     "Show one post by id or slug",
				ArgsUsage: "ID_OR_SLUG",
				Action:    blogGet,
			},
			{
				Name:  "add",
				Usage: "Create a blog post (requires login)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true, Usage: "Post title"},
					&cli.StringFlag{Name: "slug", Required: true, Usage: "URL slug (unique)"},
					&cli.StringFlag{Name: "content", Required: true, Usage: "Post body"},
					&cli.StringFlag{Name: "summary", Usage: "Short summary"},
					&cli.StringFlag{Name: "author", Usage: "Author name"},
					&cli.StringFlag{Name: "category", Usage: "Category"},
					&cli.StringFlag{Name: "image", Usage: "Cover image URL"},
				},
				Action: blogAdd,
			},
		},
	}
}

func blogList(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return err
	}

	posts, err := cl.BlogPosts(c.Context)
	if err != nil {
		return err
	}
	return renderPosts(c, posts)
}

func blogRecent(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return err
	}

	posts, err := cl.RecentBlogPosts(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}
	return renderPosts(c, posts)
}

func blogGet(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: estate-cli blog get ID_OR_SLUG")
	}

	cl, err := newClient(c)
	if err != nil {
		return err
	}

	post, err := cl.BlogPost(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	return renderJSON(post)
}

func blogAdd(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return err
	}

	post := &domain.BlogPost{
		Title:    c.String("title"),
		Slug:     c.String("slug"),
		Content:  c.String("content"),
		Summary:  c.String("summary"),
		Author:   c.String("author"),
		Category: c.String("category"),
		ImageURL: c.String("image"),
	}

	created, err := cl.CreateBlogPost(c.Context, post)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Created blog post %d (%s)\n", created.ID, created.Slug)
	return renderJSON(created)
}

func renderPosts(c *cli.Context, posts []*domain.BlogPost) error {
	table := output.NewTable("ID", "SLUG", "TITLE", "AUTHOR", "CREATED")
	for _, p := range posts {
		table.AddRow(p.ID, p.Slug, output.Truncate(p.Title, 40), p.Author, p.CreatedAt)
	}
	return render(c, table, posts)
}
