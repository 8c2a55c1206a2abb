package echoapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/educamais/educamais/core"
	"github.com/educamais/educamais/core/session"
	"github.com/educamais/educamais/core/teacher"
)

const tokenAudience = "professores"

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	Name         string           `json:"name,omitempty"`
	Email        string           `json:"email,omitempty"`
	OrigIssuedAt *jwt.NumericDate `json:"orig_iat,omitempty"`
}

// Session returns the teacher session the token stands for.
func (c Claims) Session() (session.Session, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil || id <= 0 {
		return session.Session{}, session.ErrNoSession
	}
	return session.Session{TeacherID: id, TeacherName: c.Name}, nil
}

// Auth issues and checks HS256 tokens signed with the app secret key.
type Auth struct {
	issuer          string
	key             []byte
	lifetime        time.Duration
	refreshLifetime time.Duration
}

func NewAuth(conf *core.Config) *Auth {
	return &Auth{
		issuer:          conf.AppName,
		key:             []byte(conf.SecretKey),
		lifetime:        conf.Server.JWTExpirationDelta,
		refreshLifetime: conf.Server.JWTRefreshExpirationDelta,
	}
}

// Claims returns the claims of a token for t. origIssuedAt is the login time of a refreshed token.
func (a *Auth) Claims(t teacher.Teacher, origIssuedAt ...time.Time) *Claims {
	now := time.Now()
	orig := now
	if len(origIssuedAt) > 0 {
		orig = origIssuedAt[0]
	}
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.issuer,
			Subject:   strconv.Itoa(t.ID),
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(a.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Name:         t.Name,
		Email:        t.Email,
		OrigIssuedAt: jwt.NewNumericDate(orig),
	}
}

// GenerateToken generates a signed JWT token string representing the teacher Claims.
func (a *Auth) GenerateToken(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(a.key)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func (a *Auth) parse(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.key, nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	if !claims.VerifyAudience(tokenAudience, true) || !claims.VerifyIssuer(a.issuer, true) {
		return nil, errInvalidToken
	}
	return claims, nil
}

// Middleware authenticates the bearer token and puts its session into the request context.
func (a *Auth) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			authz := ctx.Request().Header.Get(echo.HeaderAuthorization)
			tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
			if authz == "" || tokenStr == authz || tokenStr == "" {
				return errMissingToken
			}

			claims, err := a.parse(tokenStr)
			if err != nil {
				return err
			}
			sess, err := claims.Session()
			if err != nil {
				return errInvalidToken
			}

			ctx.Set(contextClaimsKey, claims)
			req := ctx.Request()
			ctx.SetRequest(req.WithContext(session.NewContext(req.Context(), sess)))
			return next(ctx)
		}
	}
}

const contextClaimsKey = "claims"

func getContextClaims(ctx echo.Context) (Claims, error) {
	if claims, ok := ctx.Get(contextClaimsKey).(*Claims); ok {
		return *claims, nil
	}
	return Claims{}, errUnauthorized
}

// refreshToken issues a new token for the authenticated teacher, until refreshLifetime after the login.
func (a *Auth) refreshToken(ctx echo.Context, svc *teacher.Service) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", err
	}
	t, err := svc.Current(ctx.Request().Context())
	if err != nil {
		return "", errors.Wrap(err, "getting current teacher")
	}

	orig := claims.IssuedAt
	if claims.OrigIssuedAt != nil {
		orig = claims.OrigIssuedAt
	}
	if orig == nil || time.Now().After(orig.Add(a.refreshLifetime)) {
		return "", errRefreshExpired
	}

	token, err := a.GenerateToken(a.Claims(t, orig.Time))
	return token, errors.Wrap(err, "generating token")
}
