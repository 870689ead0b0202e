//go:build !tinygo

package qliic

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/net/websocket"
)

// Server runs a thing on metal and serves the thing's state over HTTP,
// websockets, and (optionally) MQTT
type Server struct {
	http.Server `json:"-"`
	thinger     Thinger
	bus         *Bus
	injector    *Injector
	metrics     *metrics
	mux         *http.ServeMux
	user        string
	passwd      string
}

func NewServer(thinger Thinger) *Server {
	var s Server

	s.thinger = thinger
	s.metrics = newMetrics(thinger)

	s.bus = NewBus("server bus", s.connect, s.disconnect)
	s.bus.Handle("", s.handle)
	s.injector = NewInjector("server injector", s.bus)

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/", s.basicAuth(s.serveState))
	s.mux.HandleFunc("/ws/", s.basicAuth(s.serveWebSocket))
	s.mux.Handle("/metrics", s.basicAuth(s.metrics.handler().ServeHTTP))
	s.Handler = s.mux

	return &s
}

// BasicAuth sets the HTTP basic authentication credentials.  An empty user
// disables authentication.
func (s *Server) BasicAuth(user, passwd string) {
	s.user, s.passwd = user, passwd
}

func (s *Server) connect(sock Socketer) {
	s.metrics.sockets.Inc()
}

func (s *Server) disconnect(sock Socketer) {
	s.metrics.sockets.Dec()
}

func (s *Server) handle(msg *Msg) {
	path := dispatch(s.thinger, msg)
	s.metrics.observe(path)
}

func (s *Server) serveState(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.thinger.Lock()
	state, err := json.Marshal(s.thinger)
	s.thinger.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(state)
}

func (s *Server) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	ws := newWebSocket(r.URL, r.RemoteAddr, s.bus)
	serv := websocket.Server{Handler: websocket.Handler(ws.serve)}
	serv.ServeHTTP(w, r)
}

// DialWebSocket connects to a hub at rawURL, announcing the thing on each
// (re)connect.  Dial runs in the background, retrying until the server exits.
func (s *Server) DialWebSocket(user, passwd, rawURL string, announce *Msg) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing hub url: %w", err)
	}
	ws := newWebSocket(u, "", s.bus)
	go ws.Dial(user, passwd, announce)
	return nil
}

// Run the thing.  If Addr is set, the HTTP server is started in the
// background.  Run does not return.
func (s *Server) Run() {
	if s.Addr != "" {
		go func() {
			Logf("Listening on %s", s.Addr)
			if err := s.ListenAndServe(); err != nil {
				Logf("HTTP server exited: %s", err.Error())
			}
		}()
	}
	s.thinger.SetFlag(ThingFlagMetal)
	s.thinger.Run(s.injector)
}

func (s *Server) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(writer http.ResponseWriter, r *http.Request) {

		// skip basic authentication if no user
		if s.user == "" {
			next.ServeHTTP(writer, r)
			return
		}

		ruser, rpasswd, ok := r.BasicAuth()

		if ok {
			userHash := sha256.Sum256([]byte(s.user))
			passHash := sha256.Sum256([]byte(s.passwd))
			ruserHash := sha256.Sum256([]byte(ruser))
			rpassHash := sha256.Sum256([]byte(rpasswd))

			// https://www.alexedwards.net/blog/basic-authentication-in-go
			userMatch := (subtle.ConstantTimeCompare(userHash[:], ruserHash[:]) == 1)
			passMatch := (subtle.ConstantTimeCompare(passHash[:], rpassHash[:]) == 1)

			if userMatch && passMatch {
				next.ServeHTTP(writer, r)
				return
			}
		}

		writer.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
		http.Error(writer, "Unauthorized", http.StatusUnauthorized)
	})
}
