package flow

import (
	"fmt"
	"net"
	"net/http"
	"sync"
)

// Endpoint is a loopback HTTP listener that captures the authorization
// code delivered to the redirect URI.
type Endpoint struct {
	Port     int
	listener net.Listener
	server   *http.Server

	mux   sync.Mutex
	code  string
	state string
	done  chan struct{}
	err   error
}

func NewEndpoint() (*Endpoint, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	ret := &Endpoint{
		Port:     listener.Addr().(*net.TCPAddr).Port,
		listener: listener,
		done:     make(chan struct{}),
	}
	handler := http.NewServeMux()
	handler.HandleFunc("/callback", ret.handleCallback)
	ret.server = &http.Server{Handler: handler}
	return ret, nil
}

// Start serves until the callback arrives; run it on its own goroutine.
func (e *Endpoint) Start() {
	_ = e.server.Serve(e.listener)
}

func (e *Endpoint) handleCallback(w http.ResponseWriter, r *http.Request) {
	e.mux.Lock()
	if errorMessage := r.URL.Query().Get("error"); errorMessage != "" {
		e.err = fmt.Errorf("authorization failed: %s", errorMessage)
	}
	e.code = r.URL.Query().Get("code")
	e.state = r.URL.Query().Get("state")
	e.mux.Unlock()

	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte("<html><body>Authorization complete, you may close this window.</body></html>"))
	close(e.done)
}

// Wait blocks until the callback was handled, then shuts the listener down.
func (e *Endpoint) Wait() error {
	<-e.done
	_ = e.server.Close()
	e.mux.Lock()
	defer e.mux.Unlock()
	return e.err
}

func (e *Endpoint) AuthCode() string {
	e.mux.Lock()
	defer e.mux.Unlock()
	return e.code
}

func (e *Endpoint) State() string {
	e.mux.Lock()
	defer e.mux.Unlock()
	return e.state
}
