package flow

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"golang.org/x/oauth2"
)

// BrowserFlow runs the authorization code grant through the system browser
// with a loopback redirect endpoint.
type BrowserFlow struct{}

func (s *BrowserFlow) Token(ctx context.Context, config *oauth2.Config, options ...Option) (*oauth2.Token, error) {
	opts := NewOptions(options)
	server, err := NewEndpoint()
	if err != nil {
		return nil, fmt.Errorf("failed to create callback endpoint %v", err)
	}
	go server.Start()

	//local server will wait for callback
	redirectURL := fmt.Sprintf("http://localhost:%v/callback", server.Port)
	if opts.redirectURI != "" {
		redirectURL = opts.redirectURI
	}

	URL, err := buildAuthCodeURL(redirectURL, config, opts)
	if err != nil {
		return nil, err
	}
	cmd := openBrowser(URL)
	if err = cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start browser %v", err)
	}
	defer func() {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	}()
	if err = server.Wait(); err != nil {
		return nil, err
	}
	code := server.AuthCode()
	if code == "" {
		return nil, fmt.Errorf("failed to find auth code")
	}

	scopes := append(config.Scopes, opts.scopes...)
	verifier, _ := opts.CodeVerifier()
	tkn, err := config.Exchange(ctx, code,
		oauth2.SetAuthURLParam("scope", strings.Join(scopes, " ")),
		oauth2.SetAuthURLParam("state", opts.State()),
		oauth2.SetAuthURLParam("redirect_uri", redirectURL),
		oauth2.SetAuthURLParam("grant_type", "authorization_code"),
		oauth2.SetAuthURLParam("code_verifier", verifier),
	)
	if tkn == nil && err == nil {
		err = fmt.Errorf("failed to get token")
	}
	return tkn, err
}

func openBrowser(URL string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", URL)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", URL)
	default:
		return exec.Command("xdg-open", URL)
	}
}

func NewBrowserFlow() *BrowserFlow {
	return &BrowserFlow{}
}
