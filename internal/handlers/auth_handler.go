// Package handlers implements the handlers for the different routes of the
// server to handle the incoming HTTP requests.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"voyago/internal/managers"
	"voyago/internal/schemas"
	"voyago/internal/utils"
)

// AuthHdl defines the interface for handling authentication requests.
type AuthHdl interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	VerifyEmail(c *gin.Context)
	ForgotPassword(c *gin.Context)
	ResetPassword(c *gin.Context)
	Me(c *gin.Context)
	ChangePassword(c *gin.Context)
}

// AuthHandler provides methods to handle authentication requests.
type AuthHandler struct {
	DatabaseManager managers.DatabaseMgr
	JWTManager      managers.JWTMgr
	MailManager     managers.MailMgr
}

// NewAuthHandler returns a new AuthHandler with the provided managers.
func NewAuthHandler(databaseManager *managers.DatabaseMgr, jwtManager *managers.JWTMgr, mailManager *managers.MailMgr) AuthHdl {
	return &AuthHandler{
		DatabaseManager: *databaseManager,
		JWTManager:      *jwtManager,
		MailManager:     *mailManager,
	}
}

var errEmailTaken = errors.New("email already registered")
var errUsernameTaken = errors.New("username already registered")
var errInvalidToken = errors.New("invalid verification token")
var errInvalidCredentials = errors.New("invalid credentials")
var errUserNotActivated = errors.New("user not activated")
var errInvalidResetToken = errors.New("invalid or expired reset token")
var errIncorrectPassword = errors.New("incorrect password")

// resetTokenTTL is how long a password-reset token stays valid.
const resetTokenTTL = 24 * time.Hour

// Register creates a new inactive user and mails the verification token.
// Duplicate email or username yields a conflict.
func (handler *AuthHandler) Register(c *gin.Context) {
	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	registrationRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.RegistrationRequest)

	var takenEmail, takenUsername string
	queryString := "SELECT email, username FROM travel_schema.users WHERE email = $1 OR username = $2"
	row := tx.QueryRow(c, queryString, registrationRequest.Email, registrationRequest.Username)
	if scanErr := row.Scan(&takenEmail, &takenUsername); scanErr == nil {
		if takenEmail == registrationRequest.Email {
			err = errEmailTaken
			utils.WriteAndLogError(c, schemas.EmailTaken, http.StatusConflict, err)
			return
		}
		err = errUsernameTaken
		utils.WriteAndLogError(c, schemas.UsernameTaken, http.StatusConflict, err)
		return
	} else if !errors.Is(scanErr, pgx.ErrNoRows) {
		err = scanErr
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registrationRequest.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	verificationToken, err := utils.GenerateOpaqueToken()
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	userId := uuid.New()
	createdAt := time.Now()

	queryString = `INSERT INTO travel_schema.users
		(user_id, email, username, password, full_name, is_active, is_superuser, verification_token, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, FALSE, $6, $7)`
	if _, err = tx.Exec(c, queryString, userId, registrationRequest.Email, registrationRequest.Username,
		hashedPassword, registrationRequest.FullName, verificationToken, createdAt); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	go func() {
		if mailErr := handler.MailManager.SendVerificationMail(registrationRequest.Email,
			registrationRequest.Username, verificationToken); mailErr != nil {
			utils.LogMessage("error", "Error sending verification mail: "+mailErr.Error())
		}
	}()

	userDto := &schemas.UserDTO{
		UserID:   userId.String(),
		Email:    registrationRequest.Email,
		Username: registrationRequest.Username,
		FullName: registrationRequest.FullName,
	}

	utils.WriteAndLogResponse(c, userDto, http.StatusCreated)
}

// Login verifies the credentials and returns a bearer token. Credentials are
// checked before the active flag, so a wrong password on an unverified
// account still reads as invalid credentials.
func (handler *AuthHandler) Login(c *gin.Context) {
	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	loginRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.LoginRequest)

	var userId uuid.UUID
	var hashedPassword string
	var isActive bool
	queryString := "SELECT user_id, password, is_active FROM travel_schema.users WHERE email = $1"
	row := tx.QueryRow(c, queryString, loginRequest.Email)
	if err = row.Scan(&userId, &hashedPassword, &isActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.InvalidCredentials, http.StatusUnauthorized, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(loginRequest.Password)); err != nil {
		err = errInvalidCredentials
		utils.WriteAndLogError(c, schemas.InvalidCredentials, http.StatusUnauthorized, err)
		return
	}

	if !isActive {
		err = errUserNotActivated
		utils.WriteAndLogError(c, schemas.UserNotActivated, http.StatusUnauthorized, err)
		return
	}

	queryString = "UPDATE travel_schema.users SET last_login = $1 WHERE user_id = $2"
	if _, err = tx.Exec(c, queryString, time.Now(), userId); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	token, err := handler.JWTManager.GenerateJWT(userId.String())
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	tokenDto := &schemas.TokenDTO{
		AccessToken: token,
		TokenType:   "bearer",
	}

	utils.WriteAndLogResponse(c, tokenDto, http.StatusOK)
}

// VerifyEmail activates the account whose email and verification token match.
// The update and the match run as one statement, so a wrong token touches
// nothing.
func (handler *AuthHandler) VerifyEmail(c *gin.Context) {
	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	verifyRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.VerifyEmailRequest)

	queryString := `UPDATE travel_schema.users
		SET is_active = TRUE, email_verified_at = $1, verification_token = NULL
		WHERE email = $2 AND verification_token = $3`
	commandTag, err := tx.Exec(c, queryString, time.Now(), verifyRequest.Email, verifyRequest.Token)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if commandTag.RowsAffected() == 0 {
		err = errInvalidToken
		utils.WriteAndLogError(c, schemas.InvalidToken, http.StatusNotFound, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{Message: "Email verified successfully"}, http.StatusOK)
}

// ForgotPassword issues a reset token for known accounts. The response is the
// same whether or not the email exists, so the endpoint does not leak which
// addresses are registered.
func (handler *AuthHandler) ForgotPassword(c *gin.Context) {
	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	forgotRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.ForgotPasswordRequest)
	genericResponse := &schemas.MessageDTO{Message: "If the email exists, a password reset link will be sent"}

	var userId uuid.UUID
	var username string
	queryString := "SELECT user_id, username FROM travel_schema.users WHERE email = $1"
	row := tx.QueryRow(c, queryString, forgotRequest.Email)
	if scanErr := row.Scan(&userId, &username); scanErr != nil {
		if errors.Is(scanErr, pgx.ErrNoRows) {
			if err = utils.CommitTransaction(c, tx); err != nil {
				return
			}
			utils.WriteAndLogResponse(c, genericResponse, http.StatusOK)
			return
		}
		err = scanErr
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	resetToken, err := utils.GenerateOpaqueToken()
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	queryString = "UPDATE travel_schema.users SET reset_token = $1, reset_token_expires = $2 WHERE user_id = $3"
	if _, err = tx.Exec(c, queryString, resetToken, time.Now().Add(resetTokenTTL), userId); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	email := forgotRequest.Email
	go func() {
		if mailErr := handler.MailManager.SendPasswordResetMail(email, username, resetToken); mailErr != nil {
			utils.LogMessage("error", "Error sending password reset mail: "+mailErr.Error())
		}
	}()

	utils.WriteAndLogResponse(c, genericResponse, http.StatusOK)
}

// ResetPassword sets a new password when the reset token matches and has not
// expired. The token is single use; a successful reset clears it.
func (handler *AuthHandler) ResetPassword(c *gin.Context) {
	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	resetRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.ResetPasswordRequest)

	var userId uuid.UUID
	var expiresAt *time.Time
	queryString := "SELECT user_id, reset_token_expires FROM travel_schema.users WHERE email = $1 AND reset_token = $2"
	row := tx.QueryRow(c, queryString, resetRequest.Email, resetRequest.Token)
	if err = row.Scan(&userId, &expiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.InvalidResetToken, http.StatusBadRequest, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if expiresAt == nil || expiresAt.Before(time.Now()) {
		err = errInvalidResetToken
		utils.WriteAndLogError(c, schemas.InvalidResetToken, http.StatusBadRequest, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(resetRequest.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	queryString = `UPDATE travel_schema.users
		SET password = $1, reset_token = NULL, reset_token_expires = NULL, password_changed_at = $2
		WHERE user_id = $3`
	if _, err = tx.Exec(c, queryString, hashedPassword, time.Now(), userId); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{Message: "Password reset successfully"}, http.StatusOK)
}

// Me returns the authenticated user's profile.
func (handler *AuthHandler) Me(c *gin.Context) {
	userId := c.Value(utils.UserIdKey.String()).(string)

	user := &schemas.UserDTO{}
	var emailVerifiedAt, lastLogin *time.Time
	queryString := `SELECT user_id, email, username, full_name, is_active, is_superuser, email_verified_at, last_login
		FROM travel_schema.users WHERE user_id = $1`
	row := handler.DatabaseManager.GetPool().QueryRow(c, queryString, userId)
	if err := row.Scan(&user.UserID, &user.Email, &user.Username, &user.FullName, &user.IsActive,
		&user.IsSuperuser, &emailVerifiedAt, &lastLogin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.UserNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	user.EmailVerifiedAt = formatTimePtr(emailVerifiedAt)
	user.LastLogin = formatTimePtr(lastLogin)

	utils.WriteAndLogResponse(c, user, http.StatusOK)
}

// ChangePassword replaces the password after verifying the current one.
func (handler *AuthHandler) ChangePassword(c *gin.Context) {
	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	changeRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.ChangePasswordRequest)
	userId := c.Value(utils.UserIdKey.String()).(string)

	var hashedPassword string
	queryString := "SELECT password FROM travel_schema.users WHERE user_id = $1"
	row := tx.QueryRow(c, queryString, userId)
	if err = row.Scan(&hashedPassword); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(changeRequest.CurrentPassword)); err != nil {
		err = errIncorrectPassword
		utils.WriteAndLogError(c, schemas.IncorrectPassword, http.StatusBadRequest, err)
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(changeRequest.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	queryString = "UPDATE travel_schema.users SET password = $1, password_changed_at = $2 WHERE user_id = $3"
	if _, err = tx.Exec(c, queryString, newHash, time.Now(), userId); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{Message: "Password changed successfully"}, http.StatusOK)
}

// formatTimePtr renders an optional timestamp as RFC 3339 for the API.
func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
