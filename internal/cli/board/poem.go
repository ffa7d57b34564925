package board

import (
	"context"
	"fmt"

	"github.com/julianstephens/wagebar/internal/cli"
	"github.com/julianstephens/wagebar/internal/display"
)

type PoemCmd struct {
	Strict bool `help:"Fail instead of printing the fallback quote when the service is unreachable."`
}

func (c *PoemCmd) Run(ctx *cli.Context) error {
	if ctx.Poems == nil {
		return fmt.Errorf("poem client is not configured")
	}

	out := display.PoemFields{
		Text:   func(s string) { ctx.Println(s) },
		Author: func(s string) { ctx.Println(s) },
	}

	if c.Strict {
		p, err := ctx.Poems.Fetch(context.Background())
		if err != nil {
			return fmt.Errorf("failed to fetch poem: %w", err)
		}
		out.Show(p)
		return nil
	}

	out.Show(ctx.Poems.FetchOrFallback(context.Background()))
	return nil
}
