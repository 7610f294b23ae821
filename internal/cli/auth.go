package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/driftmirror/driftmirror-cli/internal/credential"
)

// AuthSetTokenCmd stores the backend bearer token in the system keyring.
type AuthSetTokenCmd struct {
	Token string `arg:"" optional:"" help:"Token value. Read from stdin when omitted, which keeps it out of shell history."`
}

func (c *AuthSetTokenCmd) Run(cliCtx *Context) error {
	token := strings.TrimSpace(c.Token)
	if token == "" {
		fmt.Fprint(os.Stderr, "Token: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading token: %w", err)
		}
		token = strings.TrimSpace(line)
	}
	if token == "" {
		return fmt.Errorf("no token given")
	}

	if err := credential.Set(credential.TokenKey, token); err != nil {
		return err
	}
	fmt.Println("Token stored in the system keyring.")
	return nil
}

// AuthClearTokenCmd removes the stored token.
type AuthClearTokenCmd struct{}

func (c *AuthClearTokenCmd) Run(cliCtx *Context) error {
	err := credential.Delete(credential.TokenKey)
	if errors.Is(err, credential.ErrNotFound) {
		fmt.Println("No token was stored.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("Token removed.")
	return nil
}

// AuthStatusCmd reports whether a token is stored.
type AuthStatusCmd struct{}

func (c *AuthStatusCmd) Run(cliCtx *Context) error {
	token, err := credential.Get(credential.TokenKey)
	if errors.Is(err, credential.ErrNotFound) {
		fmt.Println("No token stored. Requests go out unauthenticated, which local backends accept.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("A token is stored (%d characters). Requests carry it as a bearer token.\n", len(token))
	return nil
}
