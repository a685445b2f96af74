// internal/app/features/userinfo/handler.go
package userinfo

import (
	"net/http"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/auth"
)

// Handler serves the identity of the current session.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type userInfo struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	ID              string `json:"id"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	Role            string `json:"role"`
}

// ServeUserInfo handles GET /me. It always answers 200; anonymous callers
// get isAuthenticated=false and empty fields.
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.WriteJSON(w, http.StatusOK, userInfo{})
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, userInfo{
		IsAuthenticated: true,
		ID:              user.ID,
		Name:            user.Name,
		Username:        user.Username,
		Role:            user.Role,
	})
}
