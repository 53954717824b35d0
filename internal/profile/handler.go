package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/coverdesk/api-operations/internal/apperrors"
	"github.com/coverdesk/api-operations/internal/auth"
	"github.com/coverdesk/api-operations/internal/database"
	"github.com/coverdesk/api-operations/internal/notify"
	"github.com/coverdesk/api-operations/internal/query"
	"github.com/coverdesk/api-operations/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// onboardTimeout bounds the profile detail fill during admin onboarding; on
// expiry the account exists and can log in, the details stay pending.
const onboardTimeout = 5 * time.Second

const resetTokenTTL = 2 * time.Hour

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success  bool     `json:"success"`
	Token    string   `json:"token,omitempty"`
	Redirect string   `json:"redirect,omitempty"`
	Profile  *Profile `json:"profile,omitempty"`
	Error    string   `json:"error,omitempty"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Company  *uint  `json:"companyId"`
}

type roleFixRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Handler struct {
	Store      *database.Store
	Repository Repository
	Notifier   *notify.Notifier
	Log        *zap.Logger
}

func NewHandler(store *database.Store, n *notify.Notifier, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Store: store, Repository: NewRepository(), Notifier: n, Log: log}
}

// Login authenticates by email/password and returns a token plus the
// role-based redirect. Failures resolve to success:false, never a panic.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	p, err := h.Repository.GetByEmail(h.Store.App, req.Email)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(loginResponse{Success: false, Error: "invalid credentials"})
		return
	}
	if !utils.CheckPassword(p.PasswordHash, req.Password) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(loginResponse{Success: false, Error: "invalid credentials"})
		return
	}

	// A session with no resolvable role is mis-configured: remediation, not a
	// silent default.
	if p.Role == "" {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(loginResponse{
			Success: false,
			Error:   "your account has no role assigned; sign out and contact an administrator",
		})
		return
	}

	token, err := auth.GenerateToken(p.ID, p.UserID, p.Role)
	if err != nil {
		h.Log.Error("token generation failed", zap.Error(err))
		apperrors.RespondOp(w, err, apperrors.OpAuth)
		return
	}

	json.NewEncoder(w).Encode(loginResponse{
		Success:  true,
		Token:    token,
		Redirect: auth.RedirectPath(p.Role),
		Profile:  p,
	})
}

// Signup registers a client-role account. Elevated roles come only from
// admin onboarding.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		apperrors.RespondOp(w, err, apperrors.OpAuth)
		return
	}
	p := Profile{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         auth.RoleClient,
		CompanyID:    req.Company,
	}
	if err := h.Repository.Save(h.Store.App, &p); err != nil {
		apperrors.RespondOp(w, err, apperrors.OpAuth)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// CreateUser is the admin onboarding path: it provisions an identity with any
// role, using the service handle because the new profile row belongs to a
// different user than the caller. The credential row is written first; the
// profile detail fill is raced against a timeout and left pending on expiry.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}
	role := req.Role
	if role == "" {
		role = auth.RoleClient
	}
	if role != auth.RoleAdmin && role != auth.RoleAgent && role != auth.RoleClient {
		http.Error(w, "invalid role", http.StatusBadRequest)
		return
	}

	if !h.Store.HasServiceRole() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": database.ErrServiceRoleUnavailable.Error()})
		return
	}

	password := req.Password
	if password == "" {
		generated, err := utils.TemporaryPassword()
		if err != nil {
			apperrors.Respond(w, err)
			return
		}
		password = generated
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		apperrors.Respond(w, err)
		return
	}

	// The credential row is the account; it is written synchronously and any
	// failure surfaces as a failure.
	p := Profile{
		UserID:            uuid.NewString(),
		Email:             req.Email,
		PasswordHash:      hash,
		Role:              role,
		CreatedBy:         auth.Role(r),
		MustResetPassword: req.Password == "",
	}
	if err := CreateWithServiceRole(h.Store.Service, &p); err != nil {
		apperrors.Respond(w, err)
		return
	}

	// The detail fill is best-effort, bounded so onboarding never hangs on a
	// slow write. On expiry the account already works; the details can be
	// completed through a later profile update.
	if req.FullName != "" || req.Phone != "" || req.Company != nil {
		ctx, cancel := context.WithTimeout(r.Context(), onboardTimeout)
		defer cancel()
		details := Profile{FullName: req.FullName, Phone: req.Phone, CompanyID: req.Company}
		updated, err := h.Repository.Update(h.Store.Service.WithContext(ctx), p.ID, &details)
		if err != nil {
			if ctx.Err() != nil {
				h.Log.Warn("profile detail fill timed out during onboarding", zap.String("email", req.Email))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusAccepted)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"id":     p.ID,
					"status": "user created; profile details pending",
				})
				return
			}
			apperrors.Respond(w, err)
			return
		}
		p = *updated
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// Me returns the profile behind the session token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := h.Repository.GetByID(h.Store.App, auth.UserID(r))
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// RequestReset starts the out-of-band password reset flow. It answers 202
// whether or not the email exists.
func (h *Handler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	if p, err := h.Repository.GetByEmail(h.Store.App, req.Email); err == nil {
		reset := PasswordReset{
			ProfileID: p.ID,
			Token:     uuid.NewString(),
			ExpiresAt: time.Now().Add(resetTokenTTL),
		}
		if err := h.Repository.CreateReset(h.Store.App, &reset); err != nil {
			h.Log.Error("could not persist reset token", zap.Error(err))
		} else {
			h.Notifier.PasswordReset(p.Email, reset.Token)
		}
	}
	w.WriteHeader(http.StatusAccepted)
}

// ConfirmReset exchanges a valid token for a new password hash.
func (h *Handler) ConfirmReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		http.Error(w, "password is required", http.StatusBadRequest)
		return
	}

	reset, err := h.Repository.GetReset(h.Store.App, req.Token)
	if err != nil || reset.UsedAt != nil || time.Now().After(reset.ExpiresAt) {
		http.Error(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	if err := h.Repository.SetPassword(h.Store.App, reset.ProfileID, hash); err != nil {
		apperrors.Respond(w, err)
		return
	}
	now := time.Now()
	if err := h.Repository.MarkResetUsed(h.Store.App, reset.ID, now); err != nil {
		h.Log.Error("could not mark reset token used", zap.Error(err))
	}
	w.WriteHeader(http.StatusOK)
}

// FixRole reassigns a profile's role by email. Admin-gated; runs on the
// service handle since the target row may be invisible to the caller.
func (h *Handler) FixRole(w http.ResponseWriter, r *http.Request) {
	var req roleFixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Role != auth.RoleAdmin && req.Role != auth.RoleAgent && req.Role != auth.RoleClient {
		http.Error(w, "invalid role", http.StatusBadRequest)
		return
	}
	if !h.Store.HasServiceRole() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": database.ErrServiceRoleUnavailable.Error()})
		return
	}
	if err := h.Repository.SetRole(h.Store.Service, req.Email, req.Role); err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// List returns profiles (admin only).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	opts := query.FromRequest(r, "role", "company_id")
	list, err := h.Repository.List(h.Store.App, opts)
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if auth.Role(r) != auth.RoleAdmin && uint(id) != auth.UserID(r) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	p, err := h.Repository.GetByID(h.Store.App, uint(id))
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if auth.Role(r) != auth.RoleAdmin && uint(id) != auth.UserID(r) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	var changes Profile
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if changes.Role != "" && auth.Role(r) != auth.RoleAdmin {
		http.Error(w, "only admins may change roles", http.StatusForbidden)
		return
	}
	updated, err := h.Repository.Update(h.Store.App, uint(id), &changes)
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Delete(h.Store.App, uint(id)); err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
