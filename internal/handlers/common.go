package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"daycare-backend/internal/apperr"
	"daycare-backend/internal/middleware"
	"daycare-backend/pkg/utils"
)

func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Invalid("Invalid request body")
	}
	return nil
}

func pathID(r *http.Request, key string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[key])
	if err != nil || id <= 0 {
		return 0, apperr.Invalid("Invalid ID")
	}
	return id, nil
}

// respondError logs server-side failures with the request id and writes
// the error envelope.
func respondError(logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		logger.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	utils.Error(w, err)
}

func setTokenCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearTokenCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// withToken flattens a user record into a map and adds the session token,
// matching the login payload {...user, token}.
func withToken(user interface{}, token string) (utils.Fields, error) {
	raw, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	data := utils.Fields{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	data["token"] = token
	return data, nil
}
