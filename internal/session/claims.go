package session

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/sms-console/internal/models"
)

var parser = jwt.NewParser()

// Decode reads the claims of a bearer token without verifying its signature
// and without any network access; the backends stay the authority on
// validity. A malformed token, or one without a role claim, decodes to no
// session. An unrecognised role is kept so the guard can answer
// unauthorized instead of sending the user back to login.
func Decode(token string) (*models.Session, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, false
	}

	role := models.UserRole(stringClaim(claims, "role"))
	if role == "" {
		return nil, false
	}

	sess := &models.Session{
		SubjectID: firstClaim(claims, "id", "userId", "sub"),
		MemberID:  stringClaim(claims, "memberId"),
		Role:      role,
		SchoolID:  stringClaim(claims, "schoolId"),
		Name:      firstClaim(claims, "user_name", "username", "name"),
		Token:     token,
	}
	if exp, ok := expiry(claims); ok {
		sess.ExpiresAt = &exp
	}
	return sess, true
}

func firstClaim(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if v := stringClaim(claims, key); v != "" {
			return v
		}
	}
	return ""
}

func stringClaim(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func expiry(claims jwt.MapClaims) (time.Time, bool) {
	switch v := claims["exp"].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return time.Time{}, false
		}
		sec, frac := math.Modf(v)
		return time.Unix(int64(sec), int64(frac*1e9)), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(int64(f), 0), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(int64(f), 0), true
	default:
		return time.Time{}, false
	}
}
