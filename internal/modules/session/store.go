package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/shop"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/view"
	"github.com/Enthunya/mekgoro-tbos/internal/ui"
)

const (
	CookieName      = "mekgoro_session"
	FlashCookieName = "mekgoro_flash"

	flashTTL = 5 * time.Minute
)

var errSigningMethod = errors.New("unexpected signing method")

type stateClaims struct {
	Shop *shop.Shop `json:"shop,omitempty"`
	View view.ID    `json:"view"`
	jwt.StandardClaims
}

type flashClaims struct {
	Notices []ui.Notice `json:"notices"`
	jwt.StandardClaims
}

// Store keeps State in an HS256-signed cookie.
type Store struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewStore(secret string, ttl time.Duration, secure bool) *Store {
	return &Store{secret: []byte(secret), ttl: ttl, secure: secure}
}

// Load reads the session cookie. A missing, tampered or expired cookie loads
// as Initial.
func (s *Store) Load(r *http.Request) State {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return Initial()
	}
	var cl stateClaims
	if err := s.parse(c.Value, &cl); err != nil {
		return Initial()
	}
	if cl.Shop == nil {
		return Initial()
	}
	return State{Shop: cl.Shop}.Navigate(cl.View)
}

// Save writes st to the response. Saving the signed-out state clears the cookie.
func (s *Store) Save(w http.ResponseWriter, st State) error {
	if !st.Authenticated() {
		s.Clear(w)
		return nil
	}
	now := time.Now()
	token, err := s.sign(&stateClaims{
		Shop: st.Shop,
		View: st.View,
		StandardClaims: jwt.StandardClaims{
			Subject:   st.Shop.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	})
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	http.SetCookie(w, s.cookie(CookieName, token, int(s.ttl.Seconds())))
	return nil
}

// Clear removes the session cookie.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie(CookieName, "", -1))
}

// AddFlash stores notices to be shown by the next rendered page.
func (s *Store) AddFlash(w http.ResponseWriter, notices ...ui.Notice) error {
	if len(notices) == 0 {
		return nil
	}
	token, err := s.sign(&flashClaims{
		Notices: notices,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(flashTTL).Unix(),
		},
	})
	if err != nil {
		return fmt.Errorf("sign flash: %w", err)
	}
	http.SetCookie(w, s.cookie(FlashCookieName, token, int(flashTTL.Seconds())))
	return nil
}

// TakeFlash returns the pending notices and clears them.
func (s *Store) TakeFlash(w http.ResponseWriter, r *http.Request) []ui.Notice {
	c, err := r.Cookie(FlashCookieName)
	if err != nil {
		return nil
	}
	http.SetCookie(w, s.cookie(FlashCookieName, "", -1))
	var cl flashClaims
	if err := s.parse(c.Value, &cl); err != nil {
		return nil
	}
	return cl.Notices
}

func (s *Store) sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Store) parse(token string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errSigningMethod
		}
		return s.secret, nil
	})
	return err
}

func (s *Store) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
