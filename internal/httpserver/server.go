// internal/httpserver/server.go
//
// HTTP server wiring for the game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game creation: POST /game/new, POST /daily/new. Both hand back a
//     signed game token (also set as a cookie).
//   - Token-gated game endpoints under /game/{id}: state, key, guess,
//     reset, share and the websocket channel.
//
// Notes:
//   - CORS is origin‑aware and credentials‑enabled (so cookies work).
//   - Engines are only touched inside store.Update/View callbacks.
//   - The websocket route sits outside the timeout middleware.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/daily"
	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/share"
	"github.com/robalobadob/wordle/internal/store"
	"github.com/robalobadob/wordle/internal/words"
)

// Options configures a Server.
type Options struct {
	ClientOrigin  string           // allowed CORS / websocket origin
	SessionSecret []byte           // HMAC key for game tokens
	SessionTTL    time.Duration    // token and cookie lifetime
	Secure        bool             // production cookies
	DailySalt     string           // daily answer salt
	ShareLink     string           // appended to share text
	Now           func() time.Time // clock, defaults to time.Now
}

// Server bundles router, session store and word list.
type Server struct {
	r        *chi.Mux
	store    store.Store
	list     *words.List
	src      words.Source
	opts     Options
	upgrader websocket.Upgrader
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, list *words.List, src words.Source, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), store: st, list: list, src: src, opts: opts}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(s.cors)          // credentials-friendly CORS

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"wordle-go","endpoints":["/health","POST /game/new","POST /daily/new","/game/{id}/*"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			a, g := s.list.Stats()
			writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g})
		})

		r.Post("/game/new", s.handleNewGame)
		r.Post("/daily/new", s.handleNewDaily)

		r.Group(func(r chi.Router) {
			r.Use(s.requireGameToken)
			r.Get("/game/{id}", s.handleState)
			r.Post("/game/{id}/key", s.handleKey)
			r.Post("/game/{id}/guess", s.handleGuess)
			r.Post("/game/{id}/reset", s.handleReset)
			r.Get("/game/{id}/share", s.handleShare)
		})
	})

	s.r.With(s.requireGameToken).Get("/game/{id}/ws", s.handleWS)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorRes{Error: "not_found", Message: r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return hs.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.opts.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new and /daily/new.
type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	GameID string     `json:"gameId"`
	Token  string     `json:"token"`
	Daily  string     `json:"daily,omitempty"`
	State  game.State `json:"state"`
}

// moveRes is returned by every call that changes a game.
type moveRes struct {
	Guess *game.ScoredGuess `json:"guess,omitempty"`
	State game.State        `json:"state"`
}

// errorRes is the JSON error body. State is included when a game rejected
// a move so the client can redraw without another request.
type errorRes struct {
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	State   *game.State `json:"state,omitempty"`
}

// handleNewGame starts a free-play game with a random (or fixed) answer.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	var (
		e   *game.Engine
		err error
	)
	if req.Answer != "" {
		e, err = game.NewWithAnswer(s.list, s.src, req.Answer)
	} else {
		e, err = game.New(s.list, s.src)
	}
	if err != nil {
		s.writeGameError(w, err, nil)
		return
	}
	s.startSession(w, r, e, "")
}

// handleNewDaily starts a game whose answer is fixed for the current UTC day.
func (s *Server) handleNewDaily(w http.ResponseWriter, r *http.Request) {
	now := s.opts.Now()
	e, err := game.New(s.list, daily.NewSource(now, s.opts.DailySalt))
	if err != nil {
		s.writeGameError(w, err, nil)
		return
	}
	s.startSession(w, r, e, daily.DateKey(now))
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request, e *game.Engine, day string) {
	id, err := s.store.Create(r.Context(), e, day)
	if err != nil {
		log.Error().Err(err).Msg("create game")
		writeJSON(w, http.StatusInternalServerError, errorRes{Error: "save_failed"})
		return
	}
	tok, exp, err := s.signGameToken(id)
	if err != nil {
		log.Error().Err(err).Str("gameId", id).Msg("sign game token")
		writeJSON(w, http.StatusInternalServerError, errorRes{Error: "sign_failed"})
		return
	}
	s.setGameCookie(w, tok, exp)

	log.Info().Str("gameId", id).Str("daily", day).Msg("game started")
	writeJSON(w, http.StatusOK, newGameRes{GameID: id, Token: tok, Daily: day, State: e.Snapshot()})
}

// handleState returns the current snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var st game.State
	err := s.store.View(r.Context(), chi.URLParam(r, "id"), func(sess *store.Session) error {
		st = sess.Engine.Snapshot()
		return nil
	})
	if err != nil {
		s.writeGameError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, moveRes{State: st})
}

type keyReq struct {
	Key string `json:"key"`
}

// handleKey applies one keyboard key (letter, DEL or ENTER).
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json"})
		return
	}
	s.move(w, r, func(e *game.Engine) (*game.ScoredGuess, error) {
		return e.Key(req.Key)
	})
}

type guessReq struct {
	Guess string `json:"guess"`
}

// handleGuess submits a whole word at once.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json"})
		return
	}
	s.move(w, r, func(e *game.Engine) (*game.ScoredGuess, error) {
		sg, err := e.Guess(req.Guess)
		if err != nil {
			return nil, err
		}
		return &sg, nil
	})
}

// handleReset discards the game and starts over with a new answer.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.move(w, r, func(e *game.Engine) (*game.ScoredGuess, error) {
		return nil, e.Reset()
	})
}

// handleShare returns the share text of a finished game.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	var st game.State
	err := s.store.View(r.Context(), chi.URLParam(r, "id"), func(sess *store.Session) error {
		st = sess.Engine.Snapshot()
		return nil
	})
	if err != nil {
		s.writeGameError(w, err, nil)
		return
	}
	if !st.Status.Terminal() {
		writeJSON(w, http.StatusConflict, errorRes{Error: "game_in_progress", State: &st})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": share.Text(st, s.opts.ShareLink)})
}

// move runs fn against the game named in the URL and writes the outcome.
func (s *Server) move(w http.ResponseWriter, r *http.Request, fn func(*game.Engine) (*game.ScoredGuess, error)) {
	id := chi.URLParam(r, "id")
	res, moveErr, err := s.apply(r.Context(), id, fn)
	if err != nil {
		s.writeGameError(w, err, nil)
		return
	}
	if moveErr != nil {
		s.writeGameError(w, moveErr, &res.State)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// apply is shared by the HTTP and websocket paths. err reports store
// failures; moveErr reports a rejected move, in which case res.State is
// still the current snapshot.
func (s *Server) apply(ctx context.Context, id string, fn func(*game.Engine) (*game.ScoredGuess, error)) (res moveRes, moveErr, err error) {
	err = s.store.Update(ctx, id, func(sess *store.Session) error {
		before := sess.Engine.Status()
		res.Guess, moveErr = fn(sess.Engine)
		res.State = sess.Engine.Snapshot()
		if !before.Terminal() && res.State.Status.Terminal() {
			log.Info().
				Str("gameId", id).
				Str("status", string(res.State.Status)).
				Int("turns", len(res.State.History)).
				Msg("game finished")
		}
		return nil
	})
	return res, moveErr, err
}

// writeGameError maps core and store errors to HTTP responses.
func (s *Server) writeGameError(w http.ResponseWriter, err error, st *game.State) {
	status, body := errorBody(err)
	body.State = st
	writeJSON(w, status, body)
}

// errorBody picks the status code and JSON error for err.
func errorBody(err error) (int, errorRes) {
	switch {
	case errors.Is(err, game.ErrGuessTooShort):
		return http.StatusBadRequest, errorRes{Error: "guess_too_short", Message: "Guess too short!"}
	case errors.Is(err, game.ErrGuessNotInWordList):
		return http.StatusBadRequest, errorRes{Error: "not_in_word_list", Message: "Guess not in word list!"}
	case errors.Is(err, game.ErrGameOver):
		return http.StatusConflict, errorRes{Error: "game_finished", Message: "Game is over."}
	case errors.Is(err, game.ErrInvalidAnswer):
		return http.StatusBadRequest, errorRes{Error: "invalid_answer", Message: err.Error()}
	case errors.Is(err, words.ErrEmptyAnswerSet):
		log.Error().Err(err).Msg("no answers loaded")
		return http.StatusServiceUnavailable, errorRes{Error: "no_answers"}
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, errorRes{Error: "not_found"}
	}
	log.Error().Err(err).Msg("game request failed")
	return http.StatusInternalServerError, errorRes{Error: "internal"}
}

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
