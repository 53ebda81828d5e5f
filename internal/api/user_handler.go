package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/calebm/taskman-api/internal/api/shared"
	"github.com/calebm/taskman-api/internal/domain"
	"github.com/calebm/taskman-api/internal/platform/logger"
	"github.com/calebm/taskman-api/internal/service/auth"
	"github.com/calebm/taskman-api/internal/store"
)

// UserHandler handles user-related API requests.
type UserHandler struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	validator *validator.Validate
	logger    *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	log *slog.Logger,
) *UserHandler {
	if log == nil {
		log = slog.Default()
	}

	return &UserHandler{
		userStore: userStore,
		hasher:    hasher,
		validator: NewValidator(),
		logger:    log.With(slog.String("component", "user_handler")),
	}
}

// Register handles POST /users.
// It hashes the password, stores the user, and returns the persisted row
// (201) without any password field. A duplicate username or email yields
// 409.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterUserRequest

	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// The plaintext password goes no further than this hash call.
	hashedPassword, err := h.hasher.Hash(req.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create user", err)
		return
	}

	user, err := domain.NewUser(req.Username, req.Email, hashedPassword)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	created, err := h.userStore.Create(r.Context(), user)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, created)
}
