/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Wordbox browser game
//
// A player picks a word list file in the browser. The page reads it and sends
// the text over a websocket; the server builds the game from it and shows the
// letters. Each guess is checked on the server and answered with a toast
// notification, and every change to the game is pushed back as a state
// snapshot.
//
// Features:
// - One game per ID: /path/:gameid, /path/:gameid/ws and /path/:gameid/qr
// - Every game owns a single wordgame.Session driven by its hub's run loop
// - Reloading the page (or opening the link elsewhere) resumes the same game
// - Notifications go only to the connection that caused them
// - State snapshots go to every connection of the game
// - Games auto-reaped after a configurable idle timeout
// - Random 8-char game IDs via crypto/rand, with server-side collision check
// - QR code of the game link, for continuing on a phone

package main

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/Seednode/wordbox/games/wordgame"
)

// Messages coming from clients
type ClientMessage struct {
	Type string `json:"type"`           // "load", "guess"
	Name string `json:"name,omitempty"` // load: file name
	Text string `json:"text,omitempty"` // load: file contents
	Word string `json:"word,omitempty"` // guess
}

// NotificationMessage is sent to a single client after a load or a guess.
type NotificationMessage struct {
	Type string `json:"type"` // "notification"
	wordgame.Notification
}

// StateMessage is broadcast on connect and whenever the game changes.
type StateMessage struct {
	Type       string   `json:"type"` // "state"
	Loaded     bool     `json:"loaded"`
	Letters    string   `json:"letters"`
	FoundWords []string `json:"found_words"`
	Score      int      `json:"score"`
	Solutions  int      `json:"solutions"`
	Words      int      `json:"words"`
}

func newStateMessage(st wordgame.State) StateMessage {
	found := st.Found
	if found == nil {
		found = []string{}
	}

	return StateMessage{
		Type:       "state",
		Loaded:     st.Loaded,
		Letters:    st.Letters,
		FoundWords: found,
		Score:      st.Score,
		Solutions:  st.Solutions,
		Words:      st.Words,
	}
}

func newNotificationMessage(n wordgame.Notification) NotificationMessage {
	return NotificationMessage{
		Type:         "notification",
		Notification: n,
	}
}

type Client struct {
	id   string
	conn *websocket.Conn
	send chan any
}

type loadRequest struct {
	client *Client
	msg    ClientMessage
}

type guessRequest struct {
	client *Client
	msg    ClientMessage
}

type Hub struct {
	id      string
	session *wordgame.Session
	clients map[*Client]bool

	register chan *Client
	unreg    chan *Client
	loads    chan loadRequest
	guesses  chan guessRequest

	done      chan struct{}
	closeOnce sync.Once

	mu sync.RWMutex

	createdAt  time.Time
	lastActive time.Time
	closed     bool
}

func newHub(gameID string) *Hub {
	now := time.Now()
	return &Hub{
		id:         gameID,
		session:    wordgame.New(),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		loads:      make(chan loadRequest),
		guesses:    make(chan guessRequest),
		done:       make(chan struct{}),
		createdAt:  now,
		lastActive: now,
	}
}

// run owns h.session. It returns once the hub is closed.
func (h *Hub) run(cfg *Config) {
	for {
		select {
		case <-h.done:
			return

		case c := <-h.register:
			h.mu.Lock()
			h.lastActive = time.Now()

			if h.closed {
				close(c.send)
				h.mu.Unlock()
				continue
			}

			h.clients[c] = true
			h.sendLocked(c, newStateMessage(h.session.State()))
			h.mu.Unlock()

			logf(cfg, "GAMES: Client %s connected to %s", c.id, h.id)

		case c := <-h.unreg:
			h.mu.Lock()
			h.lastActive = time.Now()

			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

			logf(cfg, "GAMES: Client %s left %s", c.id, h.id)

		case lr := <-h.loads:
			h.handleLoad(cfg, lr)

		case gr := <-h.guesses:
			h.handleGuess(cfg, gr)
		}
	}
}

// sendLocked queues msg for c, dropping the client if its buffer is full.
// Assumes h.mu is held.
func (h *Hub) sendLocked(c *Client, msg any) {
	if _, ok := h.clients[c]; !ok {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) broadcastStateLocked() {
	msg := newStateMessage(h.session.State())

	for c := range h.clients {
		h.sendLocked(c, msg)
	}
}

// handleLoad replaces the hub's game with the uploaded word list. A rejected
// list leaves the current game in place.
func (h *Hub) handleLoad(cfg *Config, lr loadRequest) {
	name := lr.msg.Name
	if name == "" {
		name = "word list"
	}
	size := humanReadableSize(int64(len(lr.msg.Text)))

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	if err := h.session.Load(lr.msg.Text); err != nil {
		n, _ := wordgame.Notify(wordgame.Result{}, err)
		h.sendLocked(lr.client, newNotificationMessage(n))

		logf(cfg, "GAMES: Rejected %q (%s) in %s: %v", name, size, h.id, err)

		return
	}

	st := h.session.State()

	h.sendLocked(lr.client, newNotificationMessage(wordgame.Notification{
		Severity: wordgame.SeveritySuccess,
		Message:  fmt.Sprintf("Loaded %d words from %s", st.Words, name),
	}))
	h.broadcastStateLocked()

	logf(cfg, "GAMES: Loaded %q (%s, %d words, letters %s) in %s", name, size, st.Words, st.Letters, h.id)
}

// handleGuess checks a guess against the hub's game.
func (h *Hub) handleGuess(cfg *Config, gr guessRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	res, err := h.session.Guess(gr.msg.Word)

	n, ok := wordgame.Notify(res, err)
	if !ok {
		return
	}

	h.sendLocked(gr.client, newNotificationMessage(n))

	if !res.Accepted() {
		logf(cfg, "GAMES: Rejected guess %q in %s: %v", gr.msg.Word, h.id, err)

		return
	}

	h.broadcastStateLocked()

	logf(cfg, "GAMES: Accepted %q in %s (score %d)", res.Word, h.id, res.Score)
}

// join hands c to the run loop. It reports false if the hub has been closed.
func (h *Hub) join(c *Client) bool {
	select {
	case <-h.done:
		return false
	default:
	}

	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unreg <- c:
	case <-h.done:
	}
}

func (h *Hub) submitLoad(lr loadRequest) {
	select {
	case h.loads <- lr:
	case <-h.done:
	}
}

func (h *Hub) submitGuess(gr guessRequest) {
	select {
	case h.guesses <- gr:
	case <-h.done:
	}
}

func (h *Hub) idleSince() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.lastActive
}

// closeAll stops the run loop and disconnects every client.
func (h *Hub) closeAll() {
	h.closeOnce.Do(func() {
		close(h.done)
	})

	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true

	for c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// GameManager holds a set of hubs keyed by game ID, so each $path/$gameid
// is its own isolated game.
type GameManager struct {
	mu          sync.Mutex
	hubs        map[string]*Hub
	idleTimeout time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

func newGameManager(idleTimeout time.Duration) *GameManager {
	gm := &GameManager{
		hubs:        make(map[string]*Hub),
		idleTimeout: idleTimeout,
		stop:        make(chan struct{}),
	}
	if idleTimeout > 0 {
		go gm.reaperLoop()
	}
	return gm
}

func (gm *GameManager) getHub(cfg *Config, gameID string) *Hub {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[gameID]; ok {
		return hub
	}

	hub := newHub(gameID)
	gm.hubs[gameID] = hub
	go hub.run(cfg)
	return hub
}

// newGameID generates a crypto-random game ID and ensures it doesn't
// collide with existing games.
func (gm *GameManager) newGameID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 8)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := string(out)

		gm.mu.Lock()
		_, exists := gm.hubs[id]
		gm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

// reaperLoop periodically removes hubs that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop() {
	ticker := time.NewTicker(gm.idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-gm.stop:
			return
		case <-ticker.C:
		}

		cutoff := time.Now().Add(-gm.idleTimeout)

		gm.mu.Lock()
		for id, hub := range gm.hubs {
			if hub.idleSince().Before(cutoff) {
				delete(gm.hubs, id)
				go hub.closeAll()
			}
		}
		gm.mu.Unlock()
	}
}

// Close stops the reaper and ends every game.
func (gm *GameManager) Close() {
	gm.stopOnce.Do(func() {
		close(gm.stop)
	})

	gm.mu.Lock()
	defer gm.mu.Unlock()

	for id, hub := range gm.hubs {
		delete(gm.hubs, id)
		hub.closeAll()
	}
}

// WebSocket handler that picks the hub based on :gameid
func serveWSForManager(cfg *Config, gm *GameManager, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		hub := gm.getHub(cfg, gameID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			errs <- fmt.Errorf("websocket upgrade for %s from %s: %w", gameID, realIP(r), err)
			return
		}
		conn.SetReadLimit(cfg.maxUpload)

		client := &Client{
			id:   uuid.NewString(),
			conn: conn,
			send: make(chan any, 8),
		}

		if !hub.join(client) {
			_ = conn.Close()
			return
		}

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.leave(c)
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "load":
			h.submitLoad(loadRequest{
				client: c,
				msg:    msg,
			})
		case "guess":
			h.submitGuess(guessRequest{
				client: c,
				msg:    msg,
			})
		default:
			// ignore unknown types
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// gameURL rebuilds the public URL of the game page from a request to
// /.../:gameid/qr. X-Forwarded-Proto is honoured only for http and https.
func gameURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	switch proto := strings.ToLower(r.Header.Get("X-Forwarded-Proto")); proto {
	case "http", "https":
		scheme = proto
	}

	return scheme + "://" + r.Host + strings.TrimSuffix(r.URL.Path, "/qr")
}

// QR handler: generates a PNG QR code for the current game URL using go-qrcode.
func qrHandler(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		url := gameURL(r)

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(cfg, w)

		if _, err := w.Write(png); err != nil {
			errs <- err
		}
	}
}

func getIndexHandler(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		data, err := assets.ReadFile("assets/words/index.html")
		if err != nil {
			errs <- err
			http.Error(w, "page unavailable", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		if _, err := w.Write(data); err != nil {
			errs <- err
		}
	}
}

// redirectNewGame handles GET /path by generating a new random game ID
// (with server-side collision detection) and redirecting to /path/:gameid.
func redirectNewGame(cfg *Config, path string, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gameID := gm.newGameID()
		logf(cfg, "GAMES: Created game %s/%s for %s", path, gameID, realIP(r))
		http.Redirect(w, r, cfg.prefix+path+"/"+gameID, http.StatusTemporaryRedirect)
	}
}

// registerWordGame sets up routes so that:
//   - $path                  → redirects to new random game (8-char ID)
//   - $path/:gameid          → HTML client
//   - $path/:gameid/ws       → WebSocket for that game
//   - $path/:gameid/qr       → PNG QR code for that game URL
func registerWordGame(cfg *Config, path string, mux *httprouter.Router, errs chan<- error) *GameManager {
	gm := newGameManager(cfg.sessionTimeout)

	mux.GET(cfg.prefix+path, redirectNewGame(cfg, path, gm))

	mux.GET(cfg.prefix+path+"/:gameid", getIndexHandler(cfg, errs))

	// Shared assets (no gameid in route)
	mux.GET(cfg.prefix+"/assets/*asset", serveAssets(cfg, errs))

	mux.GET(cfg.prefix+path+"/:gameid/ws", serveWSForManager(cfg, gm, errs))

	mux.GET(cfg.prefix+path+"/:gameid/qr", qrHandler(cfg, errs))

	return gm
}
