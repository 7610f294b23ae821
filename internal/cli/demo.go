package cli

import (
	"context"
	"fmt"
)

// DemoSeedCmd asks the backend to load its demo dataset. The backend
// keeps the operation idempotent, so running it twice is harmless.
type DemoSeedCmd struct{}

func (c *DemoSeedCmd) Run(cliCtx *Context) error {
	if err := cliCtx.Client.SeedDemo(context.Background()); err != nil {
		return err
	}
	fmt.Println("Demo data seeded. Run 'driftmirror' to look around.")
	return nil
}
