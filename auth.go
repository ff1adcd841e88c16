package account

import (
	"crypto/rand"
	"crypto/sha1"
	"fmt"
	"net/http"
	"time"

	authService "github.com/go-pkgz/auth"
	"github.com/go-pkgz/auth/avatar"
	authtoken "github.com/go-pkgz/auth/token"
	"github.com/golang-jwt/jwt"
	"github.com/n10ty/account/token"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const defaultTokenDuration = 15 * time.Minute

// identity reads the caller of a request from its JWT. Issuing tokens on
// login is left to the host application; Token exists for tooling and tests.
type identity struct {
	config     *Config
	auth       *authService.Service
	jwtService *authtoken.Service
	trace      func(http.Handler) http.Handler
}

func newIdentity(config *Config) *identity {
	opts := config.toLibCfg()
	a := authService.NewService(opts)

	jwtService := authtoken.NewService(authtoken.Opts{
		SecretReader:   opts.SecretReader,
		SecureCookies:  opts.SecureCookies,
		TokenDuration:  opts.TokenDuration,
		CookieDuration: opts.CookieDuration,
		DisableXSRF:    opts.DisableXSRF,
		DisableIAT:     opts.DisableIAT,
		SendJWTHeader:  opts.SendJWTHeader,
		Issuer:         config.Host,
		SameSite:       opts.SameSiteCookie,
	})

	m := a.Middleware()
	return &identity{
		config:     config,
		auth:       a,
		jwtService: jwtService,
		trace:      m.Trace,
	}
}

func (cfg *Config) toLibCfg() authService.Opts {
	return authService.Opts{
		SecretReader: authtoken.SecretFunc(func(aud string) (string, error) {
			return cfg.Secret, nil
		}),
		SecureCookies:  true,
		DisableXSRF:    cfg.DisableXSRF,
		DisableIAT:     false,
		SameSiteCookie: http.SameSiteStrictMode,
		TokenDuration:  cfg.TokenDuration,
		CookieDuration: cfg.CookieDuration,
		Issuer:         cfg.Host,
		URL:            "/",
		SendJWTHeader:  true,
		AvatarStore:    avatar.NewNoOp(),
		Logger:         logf(log.Debugf),
	}
}

// Token signs a JWT carrying the principal and its authorities.
func (i *identity) Token(p token.Principal) (string, error) {
	cid, err := randToken()
	if err != nil {
		return "", err
	}

	u := p.User()
	if u.ID == "" {
		u.ID = authtoken.HashID(sha1.New(), p.Name)
	}

	ttl := i.config.TokenDuration
	if ttl <= 0 {
		ttl = defaultTokenDuration
	}

	claims := authtoken.Claims{
		User: &u,
		StandardClaims: jwt.StandardClaims{
			Id:        cid,
			Issuer:    i.config.Host,
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}
	return i.jwtService.Token(claims)
}

// IssueToken signs a JWT for p with the identity settings of config, without
// opening storage or mounting routes.
func IssueToken(config *Config, p token.Principal) (string, error) {
	return newIdentity(config).Token(p)
}

func randToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "can't get random")
	}
	s := sha1.New()
	if _, err := s.Write(b); err != nil {
		return "", errors.Wrap(err, "can't write randoms to sha1")
	}
	return fmt.Sprintf("%x", s.Sum(nil)), nil
}
