package page

import (
	"context"

	"github.com/autopunish/panelctl/internal/markup"
)

// loadRegion is the shared shape of every read operation: a loading
// affordance in the target region, one call, the rendered result on success,
// an inline region-scoped error on failure. Errors never propagate past here.
// A completion that arrives after navigation is dropped.
func loadRegion(pc *Context, region, what string, fetch func(ctx context.Context) (string, error)) {
	pc.Doc.Set(region, markup.Loading(what))

	ctx, cancel := pc.CallCtx()
	defer cancel()

	rendered, err := fetch(ctx)
	if !pc.Alive() {
		return
	}
	if err != nil {
		pc.Log.WithError(err).Error("Failed to load " + what)
		pc.Doc.Set(region, markup.Error("Could not load "+what+": "+err.Error()))
		return
	}
	pc.Doc.Set(region, rendered)
}

// setIfAlive writes a region only while the page is still mounted
func setIfAlive(pc *Context, region, rendered string) {
	if !pc.Alive() {
		return
	}
	pc.Doc.Set(region, rendered)
}
