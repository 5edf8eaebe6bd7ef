// Command chatmark renders chat-flavoured markdown to the terminal.
//
// Usage:
//
//	chatmark [flags] [file|glob ...]
//
// With no arguments the message is read from stdin. Globs accept ** to
// match across directories.
//
// Flags:
//
//	-width int           Wrap width in columns (default 80)
//	-edited              Append an edited indicator
//	-mentions string     Comma-separated mention keys to highlight, e.g. @bob,@here
//	-case-sensitive      Match mention keys exactly
//	-math                Render latex code blocks as math
//	-inline-math         Render $...$ as inline math
//	-no-mentions         Render @mentions as plain text
//	-no-channels         Render ~channels as plain text
//	-no-hashtags         Render #hashtags as plain text
//	-no-gallery          Mark images as not interactive
//	-schemes string      Comma-separated URL schemes links may use (default: any)
//	-hashtag-min int     Minimum hashtag length (default 3)
//	-images string       Path to a JSON file of image metadata keyed by source
//	-layout-width int    Maximum image display width in pixels
//	-json                Print the rendered document as JSON
//	-tree                Print the transformed syntax tree as JSON
//	-tui                 Open the messages in an interactive viewer
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fwojciec/chatmark"
	"github.com/fwojciec/chatmark/ansi"
	bt "github.com/fwojciec/chatmark/bubbletea"
	"github.com/fwojciec/chatmark/fs"
	"github.com/fwojciec/chatmark/goldmark"
	chatjson "github.com/fwojciec/chatmark/json"
)

const stdinTitle = "stdin"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "chatmark: %v\n", err)
		os.Exit(1)
	}
}

// config is the parsed command line.
type config struct {
	width         int
	edited        bool
	mentions      string
	caseSensitive bool
	math          bool
	inlineMath    bool
	noMentions    bool
	noChannels    bool
	noHashtags    bool
	noGallery     bool
	schemes       string
	hashtagMin    int
	images        string
	layoutWidth   int
	json          bool
	tree          bool
	tui           bool
	args          []string
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fset := flag.NewFlagSet("chatmark", flag.ContinueOnError)
	fset.IntVar(&cfg.width, "width", 80, "Wrap width in columns")
	fset.BoolVar(&cfg.edited, "edited", false, "Append an edited indicator")
	fset.StringVar(&cfg.mentions, "mentions", "", "Comma-separated mention keys to highlight")
	fset.BoolVar(&cfg.caseSensitive, "case-sensitive", false, "Match mention keys exactly")
	fset.BoolVar(&cfg.math, "math", false, "Render latex code blocks as math")
	fset.BoolVar(&cfg.inlineMath, "inline-math", false, "Render $...$ as inline math")
	fset.BoolVar(&cfg.noMentions, "no-mentions", false, "Render @mentions as plain text")
	fset.BoolVar(&cfg.noChannels, "no-channels", false, "Render ~channels as plain text")
	fset.BoolVar(&cfg.noHashtags, "no-hashtags", false, "Render #hashtags as plain text")
	fset.BoolVar(&cfg.noGallery, "no-gallery", false, "Mark images as not interactive")
	fset.StringVar(&cfg.schemes, "schemes", "", "Comma-separated URL schemes links may use (default: any)")
	fset.IntVar(&cfg.hashtagMin, "hashtag-min", chatmark.DefaultMinimumHashtagLength, "Minimum hashtag length")
	fset.StringVar(&cfg.images, "images", "", "Path to a JSON file of image metadata keyed by source")
	fset.IntVar(&cfg.layoutWidth, "layout-width", 0, "Maximum image display width in pixels")
	fset.BoolVar(&cfg.json, "json", false, "Print the rendered document as JSON")
	fset.BoolVar(&cfg.tree, "tree", false, "Print the transformed syntax tree as JSON")
	fset.BoolVar(&cfg.tui, "tui", false, "Open the messages in an interactive viewer")
	if err := fset.Parse(args); err != nil {
		return config{}, err
	}
	cfg.args = fset.Args()

	modes := 0
	for _, on := range []bool{cfg.json, cfg.tree, cfg.tui} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return config{}, errors.New("-json, -tree and -tui are mutually exclusive")
	}
	if cfg.width < 0 {
		return config{}, fmt.Errorf("invalid width: %d", cfg.width)
	}
	return cfg, nil
}

// options builds render options from the flags, loading image metadata
// when a path is given.
func (c config) options() (chatmark.Options, error) {
	opts := chatmark.ThemeOptions(chatmark.DefaultTheme())
	opts.Edited = c.edited
	opts.EnableMath = c.math
	opts.EnableInlineMath = c.inlineMath
	opts.DisableMentions = c.noMentions
	opts.DisableChannelLinks = c.noChannels
	opts.DisableHashtags = c.noHashtags
	opts.DisableGallery = c.noGallery
	opts.MinimumHashtagLength = c.hashtagMin
	opts.LayoutWidth = c.layoutWidth
	for _, k := range splitList(c.mentions) {
		opts.MentionKeys = append(opts.MentionKeys, chatmark.MentionKey{Key: k, CaseSensitive: c.caseSensitive})
	}
	if schemes := splitList(c.schemes); len(schemes) > 0 {
		opts.AutolinkedSchemes = schemes
	}
	if c.images != "" {
		images, err := chatjson.LoadImages(c.images)
		if err != nil {
			return chatmark.Options{}, fmt.Errorf("load images: %w", err)
		}
		opts.Images = images
	}
	return opts, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}
	opts, err := cfg.options()
	if err != nil {
		return err
	}
	pipeline, err := chatmark.NewPipeline(goldmark.NewParser(), opts)
	if err != nil {
		return err
	}
	sources, err := readSources(cfg.args, stdin)
	if err != nil {
		return err
	}

	if cfg.tui {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		messages := make([]bt.Message, len(sources))
		for i, src := range sources {
			messages[i] = bt.Message{Title: src.Path, Source: src.Content}
		}
		model := bt.New(ansi.NewDisplay(pipeline), messages, chatmark.DefaultTheme())
		if err := bt.Run(ctx, model); err != nil {
			return fmt.Errorf("TUI: %w", err)
		}
		return nil
	}
	return write(stdout, pipeline, cfg, sources)
}

// readSources expands the arguments into files, or reads stdin when
// there are none.
func readSources(args []string, stdin io.Reader) ([]fs.Source, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []fs.Source{{Path: stdinTitle, Content: string(data)}}, nil
	}
	paths, err := fs.Expand(args)
	if err != nil {
		return nil, err
	}
	return fs.Read(paths)
}

// write prints each source in the selected format. Terminal output separates
// messages with a blank line; JSON output is one document per source.
func write(w io.Writer, p *chatmark.Pipeline, cfg config, sources []fs.Source) error {
	display := ansi.NewDisplay(p)
	for i, src := range sources {
		var out []byte
		switch {
		case cfg.json:
			result, err := p.Render(src.Content)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Path, err)
			}
			if out, err = chatjson.MarshalDocument(result.Root); err != nil {
				return fmt.Errorf("%s: %w", src.Path, err)
			}
		case cfg.tree:
			tree, err := p.Tree(src.Content)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Path, err)
			}
			if out, err = chatjson.MarshalTree(tree); err != nil {
				return fmt.Errorf("%s: %w", src.Path, err)
			}
		default:
			s, err := display.Display(src.Content, cfg.width)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Path, err)
			}
			if i > 0 {
				s = "\n" + s
			}
			out = []byte(s)
		}
		if _, err := fmt.Fprintf(w, "%s\n", out); err != nil {
			return err
		}
	}
	return nil
}
