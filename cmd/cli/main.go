// Command cli is a small operator tool for the videovault auth API:
//
//	cli -s http://localhost:8080 register
//	cli -s http://localhost:8080 login
//	cli -s http://localhost:8080 whoami <access-token>
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mpashkov/videovault/internal/client"
)

func main() {
	server := flag.String("s", "http://localhost:8080", "server base URL")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: cli [-s server] register|login|whoami")
		os.Exit(2)
	}

	api := client.New(*server)
	ctx := context.Background()

	var err error
	switch flag.Arg(0) {
	case "register":
		err = runRegister(ctx, api)
	case "login":
		err = runLogin(ctx, api)
	case "whoami":
		err = runWhoami(ctx, api, flag.Arg(1))
	default:
		err = fmt.Errorf("unknown command %q", flag.Arg(0))
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func promptCredentials() (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Enter login")
	login, err := reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	login = strings.TrimSpace(login)

	fmt.Println("Enter password")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", "", err
	}

	return login, string(password), nil
}

func runRegister(ctx context.Context, api *client.APIClient) error {
	login, password, err := promptCredentials()
	if err != nil {
		return err
	}

	user, err := api.Register(ctx, login, password)
	if err != nil {
		return err
	}

	fmt.Printf("registered %s (id=%d)\n", user.Login, user.ID)
	return nil
}

func runLogin(ctx context.Context, api *client.APIClient) error {
	login, password, err := promptCredentials()
	if err != nil {
		return err
	}

	user, pair, err := api.Login(ctx, login, password)
	if err != nil {
		return err
	}

	fmt.Printf("logged in as %s (id=%d)\n", user.Login, user.ID)
	fmt.Printf("access token:  %s\n", pair.AccessToken)
	fmt.Printf("refresh token: %s\n", pair.RefreshToken)
	return nil
}

func runWhoami(ctx context.Context, api *client.APIClient, token string) error {
	if token == "" {
		return fmt.Errorf("whoami requires an access token argument")
	}

	user, err := api.Me(ctx, token)
	if err != nil {
		return err
	}

	fmt.Printf("%s (id=%d)\n", user.Login, user.ID)
	return nil
}
