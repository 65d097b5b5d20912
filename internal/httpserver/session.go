// internal/httpserver/session.go
//
// Game ownership tokens.
// Creating a game returns an HS256 JWT whose "gid" claim names the game.
// Every /game/{id} route requires a token for that id, read from
//   - Authorization: Bearer <token>
//   - the game cookie
//   - the "token" query parameter (browsers cannot set headers on websockets)
//
// This keeps one game owned by one client without server-side accounts.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

const gameCookieName = "wordle_game"

// gameClaims are the JWT claims of a game token.
type gameClaims struct {
	GameID string `json:"gid"`
	jwt.RegisteredClaims
}

// signGameToken creates a token for game id, valid for the session TTL.
func (s *Server) signGameToken(id string) (string, time.Time, error) {
	now := s.opts.Now()
	exp := now.Add(s.opts.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, gameClaims{
		GameID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString(s.opts.SessionSecret)
	return ss, exp, err
}

// parseGameToken verifies tok and returns the game id it grants.
func (s *Server) parseGameToken(tok string) (string, error) {
	claims := &gameClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.opts.SessionSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.opts.Now),
	)
	if err != nil {
		return "", err
	}
	if !t.Valid || claims.GameID == "" {
		return "", errors.New("invalid token")
	}
	return claims.GameID, nil
}

// requireGameToken rejects requests without a valid token for {id}.
func (s *Server) requireGameToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerOrCookie(r)
		if tok == "" {
			writeJSON(w, http.StatusUnauthorized, errorRes{Error: "unauthorized"})
			return
		}
		gid, err := s.parseGameToken(tok)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorRes{Error: "invalid_token"})
			return
		}
		if gid != chi.URLParam(r, "id") {
			writeJSON(w, http.StatusForbidden, errorRes{Error: "forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// setGameCookie writes the game token cookie with appropriate security attributes.
func (s *Server) setGameCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.Secure {
		sameSite = http.SameSiteNoneMode // required for third‑party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     gameCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header, the game
// cookie or the token query parameter, in that order.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(gameCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.URL.Query().Get("token")
}
