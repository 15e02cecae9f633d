package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"propertyhub-api/internal/middleware"
	"propertyhub-api/internal/model"
	"propertyhub-api/internal/repository"
	"propertyhub-api/pkg/hash"
	"propertyhub-api/pkg/jwtutil"
	"propertyhub-api/pkg/logger"
	"propertyhub-api/prometheus"
)

// AuthHandler serves signup, login and the session-scoped user operations.
// Stores are injected at startup; there is no ambient database state here.
type AuthHandler struct {
	Users      UserStore
	Properties PropertyStore
	DBName     string
}

func NewAuthHandler(users UserStore, properties PropertyStore, dbName string) *AuthHandler {
	return &AuthHandler{Users: users, Properties: properties, DBName: dbName}
}

// Signup registers a new user and issues a session token.
func (h *AuthHandler) Signup(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.SignupCounter.Inc()

	var req model.SignupInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse signup request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}

	ctx := c.Request().Context()

	// Reject registered emails before any write happens
	defer prometheus.TrackDBOperation("query")(time.Now())
	if _, err := h.Users.FindByEmail(ctx, req.Email); err == nil {
		log.Error("User already exists", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User with this email already exists"})
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Error("Failed to check existing user", zap.Error(err))
		prometheus.RecordAuthError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error during registration"})
	}

	if len(req.Password) < model.MinPasswordLength {
		prometheus.RecordAuthError("weak_password")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Password must be at least 6 characters long"})
	}

	if errs := req.Validate(); len(errs) > 0 {
		prometheus.RecordAuthError("validation_failed")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Validation error", "errors": errs})
	}

	// Hash password before persistence
	hashed, err := hash.Password(req.Password)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error during registration"})
	}

	user := model.NewUser(req.FirstName, req.LastName, req.Email, req.Phone, hashed, req.UserType)

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.Users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// Lost the race against a concurrent signup for the same email
			prometheus.RecordAuthError("email_already_exists")
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email already exists"})
		}
		log.Error("Failed to create user", zap.Error(err))
		prometheus.RecordAuthError("user_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error during registration"})
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, user.UserType)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error during registration"})
	}
	prometheus.IncreaseActiveTokens()

	log.Info("User registered", zap.String("email", user.Email), zap.String("user_id", user.ID.Hex()))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"token":   token,
		"user": map[string]interface{}{
			"id":              user.ID.Hex(),
			"firstName":       user.FirstName,
			"lastName":        user.LastName,
			"email":           user.Email,
			"phone":           user.Phone,
			"userType":        user.UserType,
			"isEmailVerified": user.IsEmailVerified,
		},
	})
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password answer with the same generic message; only a deactivated
// account gets its own.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}

	if req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_login")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email and password are required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.Users.FindByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Error("Failed to look up user", zap.Error(err))
			prometheus.RecordAuthError("db_error")
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error during login"})
		}
		log.Error("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid email or password"})
	}

	if !user.IsActive {
		log.Error("Deactivated account login attempt", zap.String("email", req.Email))
		prometheus.RecordAuthError("account_deactivated")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Account has been deactivated. Please contact support."})
	}

	if !hash.Compare(user.Password, req.Password) {
		log.Error("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid email or password"})
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, user.UserType)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error during login"})
	}
	prometheus.IncreaseActiveTokens()

	log.Info("User logged in", zap.String("email", user.Email))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   token,
		"user": map[string]interface{}{
			"id":              user.ID.Hex(),
			"firstName":       user.FirstName,
			"lastName":        user.LastName,
			"email":           user.Email,
			"phone":           user.Phone,
			"userType":        user.UserType,
			"isEmailVerified": user.IsEmailVerified,
			"avatar":          user.Avatar,
			"preferences":     user.Preferences,
		},
	})
}

// GetProfile returns the authenticated user with saved-property references
// resolved to full records. The credential hash never leaves the server.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAuthOperation("profile_access")

	userID, ok := sessionUserID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
	}

	ctx := c.Request().Context()

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		log.Error("Failed to load profile", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	saved, err := h.Properties.FindByIDs(ctx, user.SavedProperties)
	if err != nil {
		log.Error("Failed to resolve saved properties", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": model.PublicUser{User: *user, SavedProperties: saved},
	})
}

// UpdateProfile applies a partial update to the authenticated user. Email and
// password changes are stripped here; they have dedicated operations.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAuthOperation("profile_update")

	userID, ok := sessionUserID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
	}

	var req model.ProfileUpdateInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse profile update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}

	if errs := req.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Validation error", "errors": errs})
	}

	fields := bson.M{}
	if req.FirstName != nil {
		fields["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["lastName"] = *req.LastName
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}
	if req.UserType != nil {
		fields["userType"] = *req.UserType
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Preferences != nil {
		fields["preferences"] = *req.Preferences
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	user, err := h.Users.UpdateFields(c.Request().Context(), userID, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		log.Error("Failed to update profile", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	log.Info("Profile updated", zap.String("user_id", userID.Hex()))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// ChangePassword verifies the current password and replaces the stored hash.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAuthOperation("password_change")

	userID, ok := sessionUserID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse change-password request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Current password and new password are required"})
	}
	if len(req.NewPassword) < model.MinPasswordLength {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Validation error",
			"errors":  []string{"Password must be at least 6 characters"},
		})
	}

	ctx := c.Request().Context()

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		log.Error("Failed to load user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	if !hash.Compare(user.Password, req.CurrentPassword) {
		prometheus.RecordAuthError("invalid_current_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Current password is incorrect"})
	}

	// Same explicit pre-persistence hashing step as signup
	hashed, err := hash.Password(req.NewPassword)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.Users.UpdatePassword(ctx, userID, hashed); err != nil {
		log.Error("Failed to update password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	log.Info("Password changed", zap.String("user_id", userID.Hex()))
	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully"})
}

// Logout acknowledges the request. The server keeps no token state, so the
// presented token stays technically valid until expiry; a documented
// limitation, not a bug.
func (h *AuthHandler) Logout(c echo.Context) error {
	prometheus.RecordAuthOperation("logout")
	prometheus.DecreaseActiveTokens()
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

// DebugUsersCount reports the user count. Mounted only outside production.
func (h *AuthHandler) DebugUsersCount(c echo.Context) error {
	count, err := h.Users.Count(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Debug endpoint error", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"db": h.DBName, "users": count})
}

// sessionUserID extracts the requester's user ID placed in context by the
// auth middleware.
func sessionUserID(c echo.Context) (primitive.ObjectID, bool) {
	raw, ok := c.Get(middleware.UserIDKey).(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
